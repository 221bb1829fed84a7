package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/account-ledger-service/internal/adapter/repository/memory"
	"github.com/api-sage/account-ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/account-ledger-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(iban string, accountType domain.AccountType, balance string) domain.Account {
	return domain.Account{
		IBAN:          iban,
		Type:          accountType,
		Balance:       decimal.RequireFromString(balance),
		RoutingNumber: 12345,
		CustomerID:    "1",
	}
}

func TestSaveAccountAssignsIDAndTimestamps(t *testing.T) {
	store := memory.NewLedgerStore()

	saved, err := store.SaveAccount(context.Background(), newAccount("DE89370400440532013000", domain.AccountTypeChecking, "100.00"))
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.False(t, saved.UpdatedAt.IsZero())
}

func TestSaveAccountUpsertsByIBAN(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	first, err := store.SaveAccount(ctx, newAccount("DE89370400440532013000", domain.AccountTypeChecking, "100.00"))
	require.NoError(t, err)

	updated := first
	updated.Balance = decimal.RequireFromString("250.00")
	second, err := store.SaveAccount(ctx, updated)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	found, err := store.FindAccount(ctx, "DE89370400440532013000")
	require.NoError(t, err)
	assert.True(t, found.Balance.Equal(decimal.RequireFromString("250.00")))
}

func TestFindAccountNotFound(t *testing.T) {
	store := memory.NewLedgerStore()

	_, err := store.FindAccount(context.Background(), "DE00000000000000000000")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestFindAccountsByType(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	_, err := store.SaveAccount(ctx, newAccount("DE89370400440532013000", domain.AccountTypeChecking, "100.00"))
	require.NoError(t, err)
	_, err = store.SaveAccount(ctx, newAccount("DE75512108001245126199", domain.AccountTypeSavings, "100.00"))
	require.NoError(t, err)
	_, err = store.SaveAccount(ctx, newAccount("DE56500105177124582257", domain.AccountTypePrivateLoan, "100.00"))
	require.NoError(t, err)

	accounts, err := store.FindAccountsByType(ctx, []domain.AccountType{domain.AccountTypeChecking, domain.AccountTypePrivateLoan})
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	for _, account := range accounts {
		assert.NotEqual(t, domain.AccountTypeSavings, account.Type)
	}

	none, err := store.FindAccountsByType(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFindTransactionsByIBANMatchesEitherSide(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	_, err := store.SaveTransaction(ctx, domain.Transaction{
		ToIBAN: "DE89370400440532013000",
		Amount: decimal.RequireFromString("10.00"),
		Type:   domain.TransactionTypeDeposit,
	})
	require.NoError(t, err)
	_, err = store.SaveTransaction(ctx, domain.Transaction{
		FromIBAN: "DE89370400440532013000",
		ToIBAN:   "DE07500105176735774838",
		Amount:   decimal.RequireFromString("20.00"),
		Type:     domain.TransactionTypeTransfer,
	})
	require.NoError(t, err)
	_, err = store.SaveTransaction(ctx, domain.Transaction{
		FromIBAN: "DE07500105176735774838",
		Amount:   decimal.RequireFromString("5.00"),
		Type:     domain.TransactionTypeWithdraw,
	})
	require.NoError(t, err)

	transactions, err := store.FindTransactionsByIBAN(ctx, "DE89370400440532013000")
	require.NoError(t, err)
	assert.Len(t, transactions, 2)

	otherSide, err := store.FindTransactionsByIBAN(ctx, "DE07500105176735774838")
	require.NoError(t, err)
	assert.Len(t, otherSide, 2)
}

func TestAtomicallyDiscardsWritesOnError(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	_, err := store.SaveAccount(ctx, newAccount("DE89370400440532013000", domain.AccountTypeChecking, "100.00"))
	require.NoError(t, err)

	failure := errors.New("rule violation")
	err = store.Atomically(ctx, func(ctx context.Context, staged repo_interfaces.LedgerStore) error {
		account, err := staged.FindAccount(ctx, "DE89370400440532013000")
		require.NoError(t, err)

		account.Balance = decimal.Zero
		_, err = staged.SaveAccount(ctx, account)
		require.NoError(t, err)

		_, err = staged.SaveTransaction(ctx, domain.Transaction{
			FromIBAN: "DE89370400440532013000",
			Amount:   decimal.RequireFromString("100.00"),
			Type:     domain.TransactionTypeWithdraw,
		})
		require.NoError(t, err)

		return failure
	})
	require.ErrorIs(t, err, failure)

	account, err := store.FindAccount(ctx, "DE89370400440532013000")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("100.00")))

	transactions, err := store.FindTransactionsByIBAN(ctx, "DE89370400440532013000")
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestAtomicallyCommitsWritesOnSuccess(t *testing.T) {
	store := memory.NewLedgerStore()
	ctx := context.Background()

	_, err := store.SaveAccount(ctx, newAccount("DE89370400440532013000", domain.AccountTypeChecking, "100.00"))
	require.NoError(t, err)

	err = store.Atomically(ctx, func(ctx context.Context, staged repo_interfaces.LedgerStore) error {
		account, err := staged.FindAccount(ctx, "DE89370400440532013000")
		if err != nil {
			return err
		}

		account.Balance = account.Balance.Sub(decimal.RequireFromString("40.00"))
		if _, err := staged.SaveAccount(ctx, account); err != nil {
			return err
		}

		_, err = staged.SaveTransaction(ctx, domain.Transaction{
			FromIBAN: "DE89370400440532013000",
			Amount:   decimal.RequireFromString("40.00"),
			Type:     domain.TransactionTypeWithdraw,
		})
		return err
	})
	require.NoError(t, err)

	account, err := store.FindAccount(ctx, "DE89370400440532013000")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.RequireFromString("60.00")))

	transactions, err := store.FindTransactionsByIBAN(ctx, "DE89370400440532013000")
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.NotEmpty(t, transactions[0].ID)
	assert.False(t, transactions[0].CreatedAt.IsZero())
}
