// Package account provides the business logic for the ledger: account
// creation, reads, deletion, and atomic transfers between accounts. All
// mutating logic lives here; the HTTP layer only decodes requests and maps
// errors to status codes.
package account

import (
	"context"
	"log/slog"

	"github.com/fintechlab/accounts/pkg/domain/account"
	"github.com/fintechlab/accounts/pkg/repository"
)

// Service orchestrates the ledger store and history log. It owns both
// lifecycles: no other component mutates accounts or history directly.
type Service struct {
	store   repository.Store
	history repository.History
	logger  *slog.Logger
}

// New creates a Service with the provided store, history log and logger.
func New(store repository.Store, history repository.History, logger *slog.Logger) *Service {
	return &Service{store: store, history: history, logger: logger}
}

// CreateAccount validates the inputs, persists a new account and returns its
// fresh id. Violated invariants are rejected before any state is mutated.
func (s *Service) CreateAccount(ctx context.Context, owner string, limit, balance float64) (string, error) {
	a, err := account.New().
		WithOwner(owner).
		WithLimit(limit).
		WithBalance(balance).
		Build()
	if err != nil {
		s.logger.Warn("account creation rejected", "owner", owner, "error", err)
		return "", err
	}
	if err := s.store.Create(ctx, a); err != nil {
		s.logger.Error("account creation failed", "owner", owner, "error", err)
		return "", err
	}
	s.logger.Info("account created", "accountID", a.ID, "owner", a.Owner)
	return a.ID, nil
}

// GetAccount returns the account with the given id.
func (s *Service) GetAccount(ctx context.Context, id string) (*account.Account, error) {
	return s.store.Get(ctx, id)
}

// GetBalance returns the current balance of the account with the given id.
func (s *Service) GetBalance(ctx context.Context, id string) (float64, error) {
	a, err := s.store.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return a.Balance, nil
}

// ListAccounts returns every account in the ledger.
func (s *Service) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	return s.store.ListAll(ctx)
}

// ListAccountsByOwner returns the accounts held by the given owner.
func (s *Service) ListAccountsByOwner(ctx context.Context, owner string) ([]*account.Account, error) {
	return s.store.ListByOwner(ctx, owner)
}

// DeleteAccount removes the account and its history irrevocably. Deletion is
// unconditional: no zero-balance check is performed.
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("account deleted", "accountID", id)
	return nil
}

// GetHistory returns the account's audit trail in insertion order.
func (s *Service) GetHistory(ctx context.Context, id string) ([]account.HistoryEntry, error) {
	return s.history.ListFor(ctx, id)
}

// Transfer moves amount from the source account to the target account.
//
// Preconditions are checked in a fixed order, first failure wins: target id
// present, amount positive, source not equal to target, source exists,
// target exists, amount within the source's single withdraw limit, amount
// covered by the source's balance. Only then is the mutation applied, by
// Store.ApplyTransfer, whose atomic scope covers both balance updates and
// both history entries; the store re-verifies the limit and funds invariants
// inside that scope, so racing transfers cannot overspend.
func (s *Service) Transfer(ctx context.Context, sourceID, targetID string, amount float64) error {
	logger := s.logger.With("sourceID", sourceID, "targetID", targetID, "amount", amount)
	if targetID == "" {
		return account.ErrEmptyTarget
	}
	if amount <= 0 {
		return account.ErrAmountMustBePositive
	}
	if sourceID == targetID {
		return account.ErrSameAccount
	}
	src, err := s.store.Get(ctx, sourceID)
	if err != nil {
		return err
	}
	if _, err := s.store.Get(ctx, targetID); err != nil {
		return err
	}
	if amount > src.SingleWithdrawLimit {
		logger.Warn("transfer rejected", "error", account.ErrWithdrawLimitExceeded, "limit", src.SingleWithdrawLimit)
		return account.ErrWithdrawLimitExceeded
	}
	if amount > src.Balance {
		logger.Warn("transfer rejected", "error", account.ErrInsufficientFunds)
		return account.ErrInsufficientFunds
	}

	sourceAfter, targetAfter, err := s.store.ApplyTransfer(ctx, sourceID, targetID, amount)
	if err != nil {
		logger.Error("transfer failed", "error", err)
		return err
	}
	logger.Info("transfer completed", "sourceBalance", sourceAfter, "targetBalance", targetAfter)
	return nil
}
