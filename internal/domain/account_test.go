package domain_test

import (
	"testing"

	"github.com/api-sage/account-ledger-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountTypeAllowedOperations(t *testing.T) {
	tests := []struct {
		accountType domain.AccountType
		want        []domain.Operation
	}{
		{
			accountType: domain.AccountTypeChecking,
			want:        []domain.Operation{domain.OperationDeposit, domain.OperationWithdraw, domain.OperationTransfer},
		},
		{
			accountType: domain.AccountTypeSavings,
			want:        []domain.Operation{domain.OperationDeposit, domain.OperationWithdraw, domain.OperationReferenceTransfer},
		},
		{
			accountType: domain.AccountTypePrivateLoan,
			want:        []domain.Operation{domain.OperationDeposit},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.accountType.AllowedOperations())
		})
	}
}

func TestAccountTypePermits(t *testing.T) {
	assert.True(t, domain.AccountTypeChecking.Permits(domain.OperationTransfer))
	assert.False(t, domain.AccountTypeChecking.Permits(domain.OperationReferenceTransfer))

	assert.True(t, domain.AccountTypeSavings.Permits(domain.OperationWithdraw))
	assert.True(t, domain.AccountTypeSavings.Permits(domain.OperationReferenceTransfer))
	assert.False(t, domain.AccountTypeSavings.Permits(domain.OperationTransfer))

	assert.True(t, domain.AccountTypePrivateLoan.Permits(domain.OperationDeposit))
	assert.False(t, domain.AccountTypePrivateLoan.Permits(domain.OperationWithdraw))
	assert.False(t, domain.AccountTypePrivateLoan.Permits(domain.OperationTransfer))
}

func TestParseAccountType(t *testing.T) {
	parsed, err := domain.ParseAccountType(" savings ")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountTypeSavings, parsed)

	_, err = domain.ParseAccountType("MONEY_MARKET")
	require.Error(t, err)
	assert.Equal(t, domain.KindMalformedInput, domain.KindOf(err))
}

func TestParseTransactionType(t *testing.T) {
	parsed, err := domain.ParseTransactionType("transfer")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionTypeTransfer, parsed)

	_, err = domain.ParseTransactionType("REFUND")
	require.Error(t, err)
	assert.Equal(t, domain.KindMalformedInput, domain.KindOf(err))
}
