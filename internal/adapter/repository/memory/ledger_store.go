package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/api-sage/account-ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/account-ledger-service/internal/domain"
)

// LedgerStore keeps the ledger in process memory behind a single mutex.
// Atomically stages writes on copies and swaps them in only when the
// closure succeeds, so a failed operation leaves no partial state.
type LedgerStore struct {
	mu           sync.Mutex
	nextID       int64
	accounts     map[string]domain.Account
	transactions []domain.Transaction
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{accounts: make(map[string]domain.Account)}
}

func (s *LedgerStore) FindAccount(_ context.Context, iban string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return findAccount(s.accounts, iban)
}

func (s *LedgerStore) FindAccountsByType(_ context.Context, types []domain.AccountType) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return findAccountsByType(s.accounts, types), nil
}

func (s *LedgerStore) SaveAccount(_ context.Context, account domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveAccount(s.accounts, account, s.newID), nil
}

func (s *LedgerStore) SaveTransaction(_ context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := saveTransaction(&s.transactions, transaction, s.newID)
	return saved, nil
}

func (s *LedgerStore) FindTransactionsByIBAN(_ context.Context, iban string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return findTransactionsByIBAN(s.transactions, iban), nil
}

func (s *LedgerStore) Atomically(ctx context.Context, fn func(ctx context.Context, store repo_interfaces.LedgerStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := &session{
		store:        s,
		accounts:     make(map[string]domain.Account, len(s.accounts)),
		transactions: make([]domain.Transaction, len(s.transactions)),
	}
	for iban, account := range s.accounts {
		staged.accounts[iban] = account
	}
	copy(staged.transactions, s.transactions)

	if err := fn(ctx, staged); err != nil {
		return err
	}

	s.accounts = staged.accounts
	s.transactions = staged.transactions
	return nil
}

func (s *LedgerStore) newID() string {
	s.nextID++
	return strconv.FormatInt(s.nextID, 10)
}

// session is the store view handed to Atomically closures. The parent
// mutex is already held, so it operates on the staged copies lock-free.
type session struct {
	store        *LedgerStore
	accounts     map[string]domain.Account
	transactions []domain.Transaction
}

func (s *session) FindAccount(_ context.Context, iban string) (domain.Account, error) {
	return findAccount(s.accounts, iban)
}

func (s *session) FindAccountsByType(_ context.Context, types []domain.AccountType) ([]domain.Account, error) {
	return findAccountsByType(s.accounts, types), nil
}

func (s *session) SaveAccount(_ context.Context, account domain.Account) (domain.Account, error) {
	return saveAccount(s.accounts, account, s.store.newID), nil
}

func (s *session) SaveTransaction(_ context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	return saveTransaction(&s.transactions, transaction, s.store.newID), nil
}

func (s *session) FindTransactionsByIBAN(_ context.Context, iban string) ([]domain.Transaction, error) {
	return findTransactionsByIBAN(s.transactions, iban), nil
}

func (s *session) Atomically(ctx context.Context, fn func(ctx context.Context, store repo_interfaces.LedgerStore) error) error {
	return fn(ctx, s)
}

func findAccount(accounts map[string]domain.Account, iban string) (domain.Account, error) {
	account, ok := accounts[iban]
	if !ok {
		return domain.Account{}, domain.NewNotFound(iban)
	}
	return account, nil
}

func findAccountsByType(accounts map[string]domain.Account, types []domain.AccountType) []domain.Account {
	out := make([]domain.Account, 0)
	for _, account := range accounts {
		for _, accountType := range types {
			if account.Type == accountType {
				out = append(out, account)
				break
			}
		}
	}
	return out
}

func saveAccount(accounts map[string]domain.Account, account domain.Account, newID func() string) domain.Account {
	now := time.Now().UTC()
	if existing, ok := accounts[account.IBAN]; ok {
		account.ID = existing.ID
		account.CreatedAt = existing.CreatedAt
	} else {
		account.ID = newID()
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	accounts[account.IBAN] = account
	return account
}

func saveTransaction(transactions *[]domain.Transaction, transaction domain.Transaction, newID func() string) domain.Transaction {
	transaction.ID = newID()
	transaction.CreatedAt = time.Now().UTC()
	*transactions = append(*transactions, transaction)
	return transaction
}

func findTransactionsByIBAN(transactions []domain.Transaction, iban string) []domain.Transaction {
	out := make([]domain.Transaction, 0)
	for _, transaction := range transactions {
		if transaction.FromIBAN == iban || transaction.ToIBAN == iban {
			out = append(out, transaction)
		}
	}
	return out
}
