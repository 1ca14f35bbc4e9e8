// Package repository defines the storage contracts consumed by the account
// service: the ledger store (single source of truth for account state) and
// the append-only history log. Implementations live under infra/repository.
package repository

import (
	"context"

	"github.com/fintechlab/accounts/pkg/domain/account"
)

// Store is the ledger store, keyed by account id.
type Store interface {
	// Create persists a new account record. A duplicate id is an error; ids
	// are fresh UUIDs, so a collision means a caller bug.
	Create(ctx context.Context, a *account.Account) error

	// Get returns the account with the given id, or account.ErrAccountNotFound.
	Get(ctx context.Context, id string) (*account.Account, error)

	// ListAll returns every account. No ordering is guaranteed.
	ListAll(ctx context.Context) ([]*account.Account, error)

	// ListByOwner returns the accounts whose owner matches exactly.
	ListByOwner(ctx context.Context, owner string) ([]*account.Account, error)

	// Delete removes the account and its history irrevocably, or returns
	// account.ErrAccountNotFound.
	Delete(ctx context.Context, id string) error

	// ApplyTransfer atomically moves amount from source to target and appends
	// the matching withdraw/deposit history entries in the same atomic scope:
	// either all four writes happen or none. The limit and funds invariants
	// are re-verified inside that scope, so a concurrent transfer can never
	// drive a balance negative. Returns the resulting balances.
	ApplyTransfer(ctx context.Context, sourceID, targetID string, amount float64) (sourceAfter, targetAfter float64, err error)
}

// History is the append-only audit trail. Entries are written only by
// ApplyTransfer; this interface is the read side.
type History interface {
	// ListFor returns the entries for the account in insertion order.
	// It returns account.ErrAccountNotFound if the account does not exist,
	// and an empty slice if it exists but has no operations yet.
	ListFor(ctx context.Context, accountID string) ([]account.HistoryEntry, error)
}
