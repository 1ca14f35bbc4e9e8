// Package memory implements the ledger store and history log in process
// memory. Each account carries its own lock; a transfer takes both account
// locks in lexicographic id order, so opposing transfers on the same pair
// cannot deadlock, and mutates balances and history before releasing either.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fintechlab/accounts/pkg/domain/account"
)

// record bundles an account with its history under one lock. Balance and
// history mutations happen together inside the lock, so no reader ever
// observes one without the other.
type record struct {
	mu      sync.RWMutex
	acct    account.Account
	history []account.HistoryEntry
	// deleted marks a record torn out of the map while a transfer may still
	// hold a pointer to it; such transfers re-check after locking.
	deleted bool
}

// Store is an in-memory ledger store. The zero value is not usable; use New.
type Store struct {
	mu   sync.RWMutex
	recs map[string]*record
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{recs: make(map[string]*record)}
}

// Create persists a copy of the account so callers cannot mutate store state
// through the pointer they passed in. A duplicate id is rejected rather than
// overwritten, since overwriting would silently drop the existing history.
func (s *Store) Create(_ context.Context, a *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[a.ID]; ok {
		return account.ErrAccountExists
	}
	s.recs[a.ID] = &record{acct: *a}
	return nil
}

// Get returns a snapshot of the account with the given id.
func (s *Store) Get(_ context.Context, id string) (*account.Account, error) {
	s.mu.RLock()
	rec, ok := s.recs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	rec.mu.RLock()
	defer rec.mu.RUnlock()
	if rec.deleted {
		return nil, account.ErrAccountNotFound
	}
	cp := rec.acct
	return &cp, nil
}

// ListAll returns snapshots of every account.
func (s *Store) ListAll(_ context.Context) ([]*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*account.Account, 0, len(s.recs))
	for _, rec := range s.recs {
		rec.mu.RLock()
		cp := rec.acct
		rec.mu.RUnlock()
		out = append(out, &cp)
	}
	return out, nil
}

// ListByOwner returns snapshots of the accounts with an exact owner match.
func (s *Store) ListByOwner(_ context.Context, owner string) ([]*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*account.Account
	for _, rec := range s.recs {
		rec.mu.RLock()
		if rec.acct.Owner == owner {
			cp := rec.acct
			out = append(out, &cp)
		}
		rec.mu.RUnlock()
	}
	return out, nil
}

// Delete removes the account and its history irrevocably.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	rec.mu.Lock()
	rec.deleted = true
	rec.history = nil
	rec.mu.Unlock()
	delete(s.recs, id)
	return nil
}

// ApplyTransfer moves amount from source to target and appends both history
// entries under both account locks, taken in lexicographic id order. The
// limit and funds invariants are re-verified under the locks; interleaved
// transfers therefore never observe an intermediate state or drive a balance
// negative.
func (s *Store) ApplyTransfer(_ context.Context, sourceID, targetID string, amount float64) (float64, float64, error) {
	// Locking the same record twice would self-deadlock.
	if sourceID == targetID {
		return 0, 0, account.ErrSameAccount
	}
	s.mu.RLock()
	src, okSrc := s.recs[sourceID]
	tgt, okTgt := s.recs[targetID]
	s.mu.RUnlock()
	if !okSrc || !okTgt {
		return 0, 0, account.ErrAccountNotFound
	}

	first, second := src, tgt
	if targetID < sourceID {
		first, second = tgt, src
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if src.deleted || tgt.deleted {
		return 0, 0, account.ErrAccountNotFound
	}
	if amount > src.acct.SingleWithdrawLimit {
		return 0, 0, account.ErrWithdrawLimitExceeded
	}
	if amount > src.acct.Balance {
		return 0, 0, account.ErrInsufficientFunds
	}

	now := time.Now()
	srcBefore, tgtBefore := src.acct.Balance, tgt.acct.Balance
	src.acct.Balance -= amount
	tgt.acct.Balance += amount
	src.acct.UpdatedAt = now
	tgt.acct.UpdatedAt = now
	src.history = append(src.history, account.HistoryEntry{
		AccountID:     src.acct.ID,
		OperationType: account.OperationWithdraw,
		FromTo:        tgt.acct.Owner,
		BeforeBalance: srcBefore,
		AfterBalance:  src.acct.Balance,
		CreatedAt:     now,
	})
	tgt.history = append(tgt.history, account.HistoryEntry{
		AccountID:     tgt.acct.ID,
		OperationType: account.OperationDeposit,
		FromTo:        src.acct.Owner,
		BeforeBalance: tgtBefore,
		AfterBalance:  tgt.acct.Balance,
		CreatedAt:     now,
	})
	return src.acct.Balance, tgt.acct.Balance, nil
}

// ListFor returns the account's history entries in insertion order.
func (s *Store) ListFor(_ context.Context, accountID string) ([]account.HistoryEntry, error) {
	s.mu.RLock()
	rec, ok := s.recs[accountID]
	s.mu.RUnlock()
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	rec.mu.RLock()
	defer rec.mu.RUnlock()
	if rec.deleted {
		return nil, account.ErrAccountNotFound
	}
	out := make([]account.HistoryEntry, len(rec.history))
	copy(out, rec.history)
	return out, nil
}
