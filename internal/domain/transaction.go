package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

func ParseTransactionType(value string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(value))) {
	case TransactionTypeDeposit:
		return TransactionTypeDeposit, nil
	case TransactionTypeWithdraw:
		return TransactionTypeWithdraw, nil
	case TransactionTypeTransfer:
		return TransactionTypeTransfer, nil
	default:
		return "", NewMalformedInput(fmt.Sprintf("unknown transaction type %q", value))
	}
}

// Transaction is the immutable record of a completed money movement.
// FromIBAN is empty for deposits, ToIBAN is empty for withdrawals.
type Transaction struct {
	ID        string
	FromIBAN  string
	ToIBAN    string
	Amount    decimal.Decimal
	Type      TransactionType
	CreatedAt time.Time
}
