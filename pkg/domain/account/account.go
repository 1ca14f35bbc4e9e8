// Package account holds the ledger's domain entities: the account itself and
// the append-only history entries recording each side of a completed transfer.
package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is a ledger entity identified by an opaque unique id.
//
// Invariants:
//   - Owner is never blank.
//   - Balance is never negative.
//   - SingleWithdrawLimit is never negative; it caps the amount that may
//     leave the account in one outbound operation.
type Account struct {
	ID                  string
	Owner               string
	Balance             float64
	SingleWithdrawLimit float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Builder provides a fluent API for constructing Account instances so that
// only accounts satisfying every invariant can be built.
type Builder struct {
	id        string
	owner     string
	limit     float64
	balance   float64
	createdAt time.Time
	updatedAt time.Time
}

// New creates a new Builder with a fresh UUID and creation timestamp.
func New() *Builder {
	return &Builder{
		id:        uuid.NewString(),
		createdAt: time.Now(),
	}
}

// WithID sets the id for the account being built. This is primarily for
// hydrating an existing account from a data store.
func (b *Builder) WithID(id string) *Builder {
	b.id = id
	return b
}

// WithOwner sets the account holder. This is a mandatory field.
func (b *Builder) WithOwner(owner string) *Builder {
	b.owner = owner
	return b
}

// WithLimit sets the single withdraw limit for the account being built.
func (b *Builder) WithLimit(limit float64) *Builder {
	b.limit = limit
	return b
}

// WithBalance sets the initial balance for the account being built.
func (b *Builder) WithBalance(balance float64) *Builder {
	b.balance = balance
	return b
}

// WithCreatedAt sets the creation timestamp, for hydration from a data store.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp, for hydration from a data store.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build finalizes the construction of the Account. It validates all
// invariants before returning the new instance; a violated invariant is
// rejected here, before any state elsewhere is touched.
func (b *Builder) Build() (*Account, error) {
	if strings.TrimSpace(b.owner) == "" {
		return nil, ErrEmptyOwner
	}
	if b.balance < 0 {
		return nil, ErrNegativeBalance
	}
	if b.limit < 0 {
		return nil, ErrNegativeLimit
	}
	return &Account{
		ID:                  b.id,
		Owner:               b.owner,
		Balance:             b.balance,
		SingleWithdrawLimit: b.limit,
		CreatedAt:           b.createdAt,
		UpdatedAt:           b.updatedAt,
	}, nil
}
