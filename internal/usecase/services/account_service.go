package services

import (
	"context"

	"github.com/api-sage/account-ledger-service/internal/adapter/http/models"
	"github.com/api-sage/account-ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/account-ledger-service/internal/domain"
	"github.com/api-sage/account-ledger-service/internal/logger"
)

// AccountService is the money-movement engine and the read side of the
// ledger. Every mutation runs as one atomic unit of work against the
// ledger store: rule checks happen before any write, and a failed rule
// leaves no partial state behind.
type AccountService struct {
	store repo_interfaces.LedgerStore
}

func NewAccountService(store repo_interfaces.LedgerStore) *AccountService {
	return &AccountService{store: store}
}

func (s *AccountService) ApplyTransaction(ctx context.Context, req models.TransactionRequest) (models.TransactionResponse, error) {
	logger.Info("account service apply transaction", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	command, err := req.ToCommand()
	if err != nil {
		return models.TransactionResponse{}, err
	}

	var created domain.Transaction
	switch command.Type {
	case domain.TransactionTypeDeposit:
		created, err = s.deposit(ctx, command)
	case domain.TransactionTypeWithdraw:
		created, err = s.withdraw(ctx, command)
	case domain.TransactionTypeTransfer:
		created, err = s.transfer(ctx, command)
	}
	if err != nil {
		logger.Error("account service apply transaction failed", err, logger.Fields{
			"type": command.Type,
		})
		return models.TransactionResponse{}, err
	}

	return models.NewTransactionResponse(created), nil
}

func (s *AccountService) deposit(ctx context.Context, command domain.Transaction) (domain.Transaction, error) {
	var created domain.Transaction
	err := s.store.Atomically(ctx, func(ctx context.Context, store repo_interfaces.LedgerStore) error {
		account, err := store.FindAccount(ctx, command.ToIBAN)
		if err != nil {
			return err
		}

		account.Balance = account.Balance.Add(command.Amount)
		if _, err := store.SaveAccount(ctx, account); err != nil {
			return err
		}

		created, err = store.SaveTransaction(ctx, domain.Transaction{
			ToIBAN: command.ToIBAN,
			Amount: command.Amount,
			Type:   domain.TransactionTypeDeposit,
		})
		return err
	})
	return created, err
}

func (s *AccountService) withdraw(ctx context.Context, command domain.Transaction) (domain.Transaction, error) {
	var created domain.Transaction
	err := s.store.Atomically(ctx, func(ctx context.Context, store repo_interfaces.LedgerStore) error {
		account, err := store.FindAccount(ctx, command.FromIBAN)
		if err != nil {
			return err
		}

		if !account.Type.Permits(domain.OperationWithdraw) {
			return domain.NewNotPermitted(domain.MsgOperationNotPermitted)
		}
		if account.Balance.LessThan(command.Amount) {
			return domain.NewNotPermitted(domain.MsgInsufficientFunds)
		}

		account.Balance = account.Balance.Sub(command.Amount)
		if _, err := store.SaveAccount(ctx, account); err != nil {
			return err
		}

		created, err = store.SaveTransaction(ctx, domain.Transaction{
			FromIBAN: command.FromIBAN,
			Amount:   command.Amount,
			Type:     domain.TransactionTypeWithdraw,
		})
		return err
	})
	return created, err
}

func (s *AccountService) transfer(ctx context.Context, command domain.Transaction) (domain.Transaction, error) {
	var created domain.Transaction
	err := s.store.Atomically(ctx, func(ctx context.Context, store repo_interfaces.LedgerStore) error {
		accountFrom, err := store.FindAccount(ctx, command.FromIBAN)
		if err != nil {
			return err
		}
		accountTo, err := store.FindAccount(ctx, command.ToIBAN)
		if err != nil {
			return err
		}

		if accountFrom.Balance.LessThan(command.Amount) {
			return domain.NewNotPermitted(domain.MsgInsufficientFunds)
		}
		if err := validateTransferPermission(accountFrom, accountTo); err != nil {
			return err
		}

		accountFrom.Balance = accountFrom.Balance.Sub(command.Amount)
		accountTo.Balance = accountTo.Balance.Add(command.Amount)

		if _, err := store.SaveAccount(ctx, accountFrom); err != nil {
			return err
		}
		if _, err := store.SaveAccount(ctx, accountTo); err != nil {
			return err
		}

		created, err = store.SaveTransaction(ctx, domain.Transaction{
			FromIBAN: command.FromIBAN,
			ToIBAN:   command.ToIBAN,
			Amount:   command.Amount,
			Type:     domain.TransactionTypeTransfer,
		})
		return err
	})
	return created, err
}

func validateTransferPermission(accountFrom domain.Account, accountTo domain.Account) error {
	switch {
	case accountFrom.Type.Permits(domain.OperationTransfer):
		return nil
	case accountFrom.Type.Permits(domain.OperationReferenceTransfer):
		if accountFrom.ReferenceAccountIBAN == nil || *accountFrom.ReferenceAccountIBAN != accountTo.IBAN {
			return domain.NewNotPermitted(domain.MsgOperationNotPermitted)
		}
		return nil
	default:
		return domain.NewNotPermitted(domain.MsgOperationNotPermitted)
	}
}

func (s *AccountService) GetBalance(ctx context.Context, iban string) (models.BalanceResponse, error) {
	account, err := s.store.FindAccount(ctx, iban)
	if err != nil {
		logger.Error("account service get balance failed", err, logger.Fields{
			"iban": iban,
		})
		return models.BalanceResponse{}, err
	}

	return models.NewBalanceResponse(account), nil
}

func (s *AccountService) GetAccounts(ctx context.Context, accountTypes []domain.AccountType) ([]models.AccountResponse, error) {
	if len(accountTypes) == 0 {
		return []models.AccountResponse{}, nil
	}

	accounts, err := s.store.FindAccountsByType(ctx, accountTypes)
	if err != nil {
		logger.Error("account service get accounts failed", err, logger.Fields{
			"accountTypes": accountTypes,
		})
		return nil, err
	}

	responses := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, models.NewAccountResponse(account))
	}
	return responses, nil
}

func (s *AccountService) GetAccountTransactionHistory(ctx context.Context, iban string) ([]models.TransactionResponse, error) {
	if _, err := s.store.FindAccount(ctx, iban); err != nil {
		logger.Error("account service get transaction history failed", err, logger.Fields{
			"iban": iban,
		})
		return nil, err
	}

	transactions, err := s.store.FindTransactionsByIBAN(ctx, iban)
	if err != nil {
		logger.Error("account service get transaction history failed", err, logger.Fields{
			"iban": iban,
		})
		return nil, err
	}

	responses := make([]models.TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		responses = append(responses, models.NewTransactionResponse(transaction))
	}
	return responses, nil
}
