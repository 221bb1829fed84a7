package repo_interfaces

import (
	"context"

	"github.com/api-sage/account-ledger-service/internal/domain"
)

// LedgerStore persists accounts and transaction records.
//
// Atomically runs fn against a store view whose calls form one atomic unit
// of work: either every write inside fn becomes visible, or none does.
// Reads inside fn are isolated against concurrent movements on the same
// accounts.
type LedgerStore interface {
	FindAccount(ctx context.Context, iban string) (domain.Account, error)
	FindAccountsByType(ctx context.Context, types []domain.AccountType) ([]domain.Account, error)
	SaveAccount(ctx context.Context, account domain.Account) (domain.Account, error)
	SaveTransaction(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	FindTransactionsByIBAN(ctx context.Context, iban string) ([]domain.Transaction, error)
	Atomically(ctx context.Context, fn func(ctx context.Context, store LedgerStore) error) error
}
