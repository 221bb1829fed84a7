package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/account-ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/account-ledger-service/internal/domain"
	"github.com/api-sage/account-ledger-service/internal/logger"
	"github.com/lib/pq"
)

type LedgerStore struct {
	db *sql.DB
	tx *sql.Tx
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *LedgerStore) querier() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

const accountColumns = `id, iban, type, balance, routing_number, reference_account_iban, customer_id, created_at, updated_at`

func (s *LedgerStore) FindAccount(ctx context.Context, iban string) (domain.Account, error) {
	query := `
SELECT ` + accountColumns + `
FROM accounts
WHERE iban = $1`
	if s.tx != nil {
		// Row lock so concurrent movements on the same account serialize.
		query += `
FOR UPDATE`
	}

	account, err := scanAccount(s.querier().QueryRowContext(ctx, query, iban))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.NewNotFound(iban)
		}
		logger.Error("ledger store find account failed", err, logger.Fields{
			"iban": iban,
		})
		return domain.Account{}, fmt.Errorf("find account: %w", err)
	}

	return account, nil
}

func (s *LedgerStore) FindAccountsByType(ctx context.Context, types []domain.AccountType) ([]domain.Account, error) {
	typeValues := make([]string, 0, len(types))
	for _, accountType := range types {
		typeValues = append(typeValues, string(accountType))
	}

	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE type = ANY($1)
ORDER BY iban`

	rows, err := s.querier().QueryContext(ctx, query, pq.Array(typeValues))
	if err != nil {
		logger.Error("ledger store find accounts by type failed", err, logger.Fields{
			"accountTypes": typeValues,
		})
		return nil, fmt.Errorf("find accounts by type: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, nil
}

func (s *LedgerStore) SaveAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (
	iban,
	type,
	balance,
	routing_number,
	reference_account_iban,
	customer_id
) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (iban) DO UPDATE
SET type = EXCLUDED.type,
    balance = EXCLUDED.balance,
    routing_number = EXCLUDED.routing_number,
    reference_account_iban = EXCLUDED.reference_account_iban,
    customer_id = EXCLUDED.customer_id,
    updated_at = NOW()
RETURNING id, created_at, updated_at`

	if err := s.querier().QueryRowContext(
		ctx,
		query,
		account.IBAN,
		account.Type,
		account.Balance,
		account.RoutingNumber,
		account.ReferenceAccountIBAN,
		account.CustomerID,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		logger.Error("ledger store save account failed", err, logger.Fields{
			"iban": account.IBAN,
		})
		return domain.Account{}, fmt.Errorf("save account: %w", err)
	}

	return account, nil
}

func (s *LedgerStore) SaveTransaction(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	const query = `
INSERT INTO transactions (
	from_iban,
	to_iban,
	amount,
	type
) VALUES ($1, $2, $3, $4)
RETURNING id, created_at`

	if err := s.querier().QueryRowContext(
		ctx,
		query,
		transaction.FromIBAN,
		transaction.ToIBAN,
		transaction.Amount,
		transaction.Type,
	).Scan(&transaction.ID, &transaction.CreatedAt); err != nil {
		logger.Error("ledger store save transaction failed", err, logger.Fields{
			"fromIban": transaction.FromIBAN,
			"toIban":   transaction.ToIBAN,
			"type":     transaction.Type,
		})
		return domain.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	return transaction, nil
}

func (s *LedgerStore) FindTransactionsByIBAN(ctx context.Context, iban string) ([]domain.Transaction, error) {
	const query = `
SELECT id, from_iban, to_iban, amount, type, created_at
FROM transactions
WHERE from_iban = $1 OR to_iban = $1
ORDER BY created_at`

	rows, err := s.querier().QueryContext(ctx, query, iban)
	if err != nil {
		logger.Error("ledger store find transactions failed", err, logger.Fields{
			"iban": iban,
		})
		return nil, fmt.Errorf("find transactions by iban: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(
			&transaction.ID,
			&transaction.FromIBAN,
			&transaction.ToIBAN,
			&transaction.Amount,
			&transaction.Type,
			&transaction.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return transactions, nil
}

func (s *LedgerStore) Atomically(ctx context.Context, fn func(ctx context.Context, store repo_interfaces.LedgerStore) error) error {
	if s.tx != nil {
		return fn(ctx, s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("ledger store begin tx failed", err, nil)
		return fmt.Errorf("begin ledger transaction: %w", err)
	}

	scoped := &LedgerStore{db: s.db, tx: tx}
	if err := fn(ctx, scoped); err != nil {
		_ = tx.Rollback()
		return asConflict(err)
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		logger.Error("ledger store commit tx failed", err, nil)
		return asConflict(fmt.Errorf("commit ledger transaction: %w", err))
	}

	return nil
}

// asConflict surfaces serialization failures and deadlocks as the retryable
// conflict kind; everything else passes through untouched.
func asConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case "40001", "40P01":
			return domain.NewConflict("concurrent ledger update, retry the operation", err)
		}
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var account domain.Account
	var referenceAccountIBAN sql.NullString

	if err := row.Scan(
		&account.ID,
		&account.IBAN,
		&account.Type,
		&account.Balance,
		&account.RoutingNumber,
		&referenceAccountIBAN,
		&account.CustomerID,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return domain.Account{}, err
	}

	if referenceAccountIBAN.Valid {
		value := referenceAccountIBAN.String
		account.ReferenceAccountIBAN = &value
	}

	return account, nil
}
