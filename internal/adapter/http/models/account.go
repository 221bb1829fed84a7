package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/account-ledger-service/internal/domain"
)

type AccountResponse struct {
	IBAN                 string `json:"iban"`
	Type                 string `json:"type"`
	Balance              string `json:"balance"`
	RoutingNumber        int    `json:"routingNumber"`
	ReferenceAccountIBAN string `json:"referenceAccountIban,omitempty"`
	CustomerID           string `json:"customerId"`
	CreatedAt            string `json:"createdAt"`
	UpdatedAt            string `json:"updatedAt"`
}

func NewAccountResponse(account domain.Account) AccountResponse {
	response := AccountResponse{
		IBAN:          account.IBAN,
		Type:          string(account.Type),
		Balance:       account.Balance.StringFixedBank(2),
		RoutingNumber: account.RoutingNumber,
		CustomerID:    account.CustomerID,
		CreatedAt:     account.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     account.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if account.ReferenceAccountIBAN != nil {
		response.ReferenceAccountIBAN = *account.ReferenceAccountIBAN
	}
	return response
}

type BalanceResponse struct {
	IBAN    string `json:"iban"`
	Balance string `json:"balance"`
}

func NewBalanceResponse(account domain.Account) BalanceResponse {
	return BalanceResponse{
		IBAN:    account.IBAN,
		Balance: account.Balance.StringFixedBank(2),
	}
}

// ParseAccountTypes parses the required comma-separated accountTypes query
// parameter. An empty parameter or an unknown tag is a caller error.
func ParseAccountTypes(raw string) ([]domain.AccountType, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, domain.NewMalformedInput("accountTypes query parameter is required")
	}

	parts := strings.Split(raw, ",")
	types := make([]domain.AccountType, 0, len(parts))
	for _, part := range parts {
		accountType, err := domain.ParseAccountType(part)
		if err != nil {
			return nil, domain.NewMalformedInput(fmt.Sprintf("unknown account type %q", strings.TrimSpace(part)))
		}
		types = append(types, accountType)
	}
	return types, nil
}
