package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking    AccountType = "CHECKING"
	AccountTypeSavings     AccountType = "SAVINGS"
	AccountTypePrivateLoan AccountType = "PRIVATE_LOAN"
)

type Operation string

const (
	OperationDeposit           Operation = "DEPOSIT"
	OperationWithdraw          Operation = "WITHDRAW"
	OperationTransfer          Operation = "TRANSFER"
	OperationReferenceTransfer Operation = "REFERENCE_TRANSFER"
)

// accountTypeOperations is the source of truth for permission checks.
// Adding an account type means adding one entry here.
var accountTypeOperations = map[AccountType][]Operation{
	AccountTypeChecking:    {OperationDeposit, OperationWithdraw, OperationTransfer},
	AccountTypeSavings:     {OperationDeposit, OperationWithdraw, OperationReferenceTransfer},
	AccountTypePrivateLoan: {OperationDeposit},
}

func (t AccountType) AllowedOperations() []Operation {
	ops := accountTypeOperations[t]
	out := make([]Operation, len(ops))
	copy(out, ops)
	return out
}

func (t AccountType) Permits(op Operation) bool {
	for _, allowed := range accountTypeOperations[t] {
		if allowed == op {
			return true
		}
	}
	return false
}

func ParseAccountType(value string) (AccountType, error) {
	switch AccountType(strings.ToUpper(strings.TrimSpace(value))) {
	case AccountTypeChecking:
		return AccountTypeChecking, nil
	case AccountTypeSavings:
		return AccountTypeSavings, nil
	case AccountTypePrivateLoan:
		return AccountTypePrivateLoan, nil
	default:
		return "", NewMalformedInput(fmt.Sprintf("unknown account type %q", value))
	}
}

type Account struct {
	ID                   string
	IBAN                 string
	Type                 AccountType
	Balance              decimal.Decimal
	RoutingNumber        int
	ReferenceAccountIBAN *string
	CustomerID           string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
