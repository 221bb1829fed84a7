package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/api-sage/account-ledger-service/internal/adapter/http/models"
	"github.com/api-sage/account-ledger-service/internal/commons"
	"github.com/api-sage/account-ledger-service/internal/domain"
)

type AccountService interface {
	GetAccounts(ctx context.Context, accountTypes []domain.AccountType) ([]models.AccountResponse, error)
	GetBalance(ctx context.Context, iban string) (models.BalanceResponse, error)
	GetAccountTransactionHistory(ctx context.Context, iban string) ([]models.TransactionResponse, error)
	ApplyTransaction(ctx context.Context, req models.TransactionRequest) (models.TransactionResponse, error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/accounts", c.getAccounts)
	mux.HandleFunc("/api/v1/accounts/balance", c.getBalance)
	mux.HandleFunc("/api/v1/accounts/transactions", c.getTransactionHistory)
	mux.HandleFunc("/api/v1/accounts/transaction", c.applyTransaction)
}

func (c *AccountController) getAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		writeStatus[[]models.AccountResponse](w, r, http.StatusMethodNotAllowed, "method not allowed", start)
		return
	}

	accountTypes, err := models.ParseAccountTypes(r.URL.Query().Get("accountTypes"))
	if err != nil {
		writeDomainError[[]models.AccountResponse](w, r, err, start)
		return
	}

	accounts, err := c.service.GetAccounts(r.Context(), accountTypes)
	if err != nil {
		writeDomainError[[]models.AccountResponse](w, r, err, start)
		return
	}

	response := commons.SuccessResponse("Accounts retrieved", accounts)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) getBalance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		writeStatus[models.BalanceResponse](w, r, http.StatusMethodNotAllowed, "method not allowed", start)
		return
	}

	iban := r.URL.Query().Get("iban")
	if iban == "" {
		writeStatus[models.BalanceResponse](w, r, http.StatusBadRequest, "iban query parameter is required", start)
		return
	}

	balance, err := c.service.GetBalance(r.Context(), iban)
	if err != nil {
		writeDomainError[models.BalanceResponse](w, r, err, start)
		return
	}

	response := commons.SuccessResponse("Balance retrieved", balance)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) getTransactionHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		writeStatus[[]models.TransactionResponse](w, r, http.StatusMethodNotAllowed, "method not allowed", start)
		return
	}

	iban := r.URL.Query().Get("iban")
	if iban == "" {
		writeStatus[[]models.TransactionResponse](w, r, http.StatusBadRequest, "iban query parameter is required", start)
		return
	}

	history, err := c.service.GetAccountTransactionHistory(r.Context(), iban)
	if err != nil {
		writeDomainError[[]models.TransactionResponse](w, r, err, start)
		return
	}

	response := commons.SuccessResponse("Transaction history retrieved", history)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) applyTransaction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPatch {
		writeStatus[models.TransactionResponse](w, r, http.StatusMethodNotAllowed, "method not allowed", start)
		return
	}

	var req models.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	result, err := c.service.ApplyTransaction(r.Context(), req)
	if err != nil {
		writeDomainError[models.TransactionResponse](w, r, err, start)
		return
	}

	response := commons.SuccessResponse("Transaction successful", result)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

// statusForError is the single mapping from error kinds to status codes.
func statusForError(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindNotPermitted, domain.KindMalformedInput:
		return http.StatusBadRequest
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func messageForError(err error) string {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) && domainErr.Kind != domain.KindUnclassified {
		return domainErr.Message
	}
	return "Unable to process request right now"
}

func writeDomainError[T any](w http.ResponseWriter, r *http.Request, err error, start time.Time) {
	logError(r, err, nil)
	status := statusForError(err)
	response := commons.ErrorResponse[T](messageForError(err))
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func writeStatus[T any](w http.ResponseWriter, r *http.Request, status int, message string, start time.Time) {
	response := commons.ErrorResponse[T](message)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
