package models

import (
	"strings"
	"time"

	"github.com/api-sage/account-ledger-service/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRequest struct {
	FromIBAN string          `json:"fromIban"`
	ToIBAN   string          `json:"toIban"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
}

func (r TransactionRequest) Validate() error {
	var errs []string

	transactionType, typeErr := domain.ParseTransactionType(r.Type)
	if typeErr != nil {
		errs = append(errs, "type must be one of DEPOSIT, WITHDRAW, TRANSFER")
	}

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	fromIBAN := strings.TrimSpace(r.FromIBAN)
	toIBAN := strings.TrimSpace(r.ToIBAN)

	switch transactionType {
	case domain.TransactionTypeDeposit:
		if toIBAN == "" {
			errs = append(errs, "toIban is required for deposits")
		}
	case domain.TransactionTypeWithdraw:
		if fromIBAN == "" {
			errs = append(errs, "fromIban is required for withdrawals")
		}
	case domain.TransactionTypeTransfer:
		if fromIBAN == "" {
			errs = append(errs, "fromIban is required for transfers")
		}
		if toIBAN == "" {
			errs = append(errs, "toIban is required for transfers")
		}
		if fromIBAN != "" && fromIBAN == toIBAN {
			errs = append(errs, "fromIban and toIban cannot be the same")
		}
	}

	if len(errs) > 0 {
		return domain.NewMalformedInput(strings.Join(errs, "; "))
	}
	return nil
}

// ToCommand validates the request and converts it into the engine's
// transaction command.
func (r TransactionRequest) ToCommand() (domain.Transaction, error) {
	if err := r.Validate(); err != nil {
		return domain.Transaction{}, err
	}

	transactionType, err := domain.ParseTransactionType(r.Type)
	if err != nil {
		return domain.Transaction{}, err
	}

	return domain.Transaction{
		FromIBAN: strings.TrimSpace(r.FromIBAN),
		ToIBAN:   strings.TrimSpace(r.ToIBAN),
		Amount:   r.Amount,
		Type:     transactionType,
	}, nil
}

type TransactionResponse struct {
	FromIBAN  string `json:"fromIban,omitempty"`
	ToIBAN    string `json:"toIban,omitempty"`
	Amount    string `json:"amount"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt"`
}

func NewTransactionResponse(transaction domain.Transaction) TransactionResponse {
	return TransactionResponse{
		FromIBAN:  transaction.FromIBAN,
		ToIBAN:    transaction.ToIBAN,
		Amount:    transaction.Amount.StringFixedBank(2),
		Type:      string(transaction.Type),
		CreatedAt: transaction.CreatedAt.UTC().Format(time.RFC3339),
	}
}
