// Package gormstore implements the ledger store and history log on a
// relational database via GORM. ApplyTransfer runs inside one database
// transaction with row locks taken in sorted id order, mirroring the
// in-memory store's lock ordering.
package gormstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/fintechlab/accounts/pkg/domain/account"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is a GORM-backed ledger store.
type Store struct {
	db *gorm.DB
}

// New creates a Store using the provided *gorm.DB.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the backing tables.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Account{}, &HistoryEntry{})
}

func (s *Store) Create(ctx context.Context, a *account.Account) error {
	return s.db.WithContext(ctx).Create(toModel(a)).Error
}

func (s *Store) Get(ctx context.Context, id string) (*account.Account, error) {
	var m Account
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return toDomain(&m), nil
}

func (s *Store) ListAll(ctx context.Context) ([]*account.Account, error) {
	var ms []Account
	if err := s.db.WithContext(ctx).Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(ms), nil
}

func (s *Store) ListByOwner(ctx context.Context, owner string) ([]*account.Account, error) {
	var ms []Account
	if err := s.db.WithContext(ctx).Where("owner = ?", owner).Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainSlice(ms), nil
}

// Delete removes the account row and its history rows in one transaction.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&Account{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return account.ErrAccountNotFound
		}
		return tx.Delete(&HistoryEntry{}, "account_id = ?", id).Error
	})
}

// ApplyTransfer moves amount between the two accounts and appends both
// history entries in one database transaction. Rows are locked FOR UPDATE in
// sorted id order and the limit/funds invariants re-verified on the locked
// rows, so concurrent transfers serialize without deadlocking.
func (s *Store) ApplyTransfer(ctx context.Context, sourceID, targetID string, amount float64) (float64, float64, error) {
	if sourceID == targetID {
		return 0, 0, account.ErrSameAccount
	}
	var sourceAfter, targetAfter float64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []string{sourceID, targetID}
		sort.Strings(ids)

		rows := make(map[string]*Account, 2)
		for _, id := range ids {
			var m Account
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&m, "id = ?", id).Error; err != nil {
				return mapNotFound(err)
			}
			rows[id] = &m
		}
		src, tgt := rows[sourceID], rows[targetID]

		if amount > src.SingleWithdrawLimit {
			return account.ErrWithdrawLimitExceeded
		}
		if amount > src.Balance {
			return account.ErrInsufficientFunds
		}

		now := time.Now()
		srcBefore, tgtBefore := src.Balance, tgt.Balance
		sourceAfter = srcBefore - amount
		targetAfter = tgtBefore + amount

		if err := tx.Model(&Account{}).Where("id = ?", sourceID).
			Updates(map[string]any{"balance": sourceAfter, "updated_at": now}).Error; err != nil {
			return err
		}
		if err := tx.Model(&Account{}).Where("id = ?", targetID).
			Updates(map[string]any{"balance": targetAfter, "updated_at": now}).Error; err != nil {
			return err
		}
		entries := []HistoryEntry{
			{
				AccountID:     sourceID,
				OperationType: string(account.OperationWithdraw),
				FromTo:        tgt.Owner,
				BeforeBalance: srcBefore,
				AfterBalance:  sourceAfter,
				CreatedAt:     now,
			},
			{
				AccountID:     targetID,
				OperationType: string(account.OperationDeposit),
				FromTo:        src.Owner,
				BeforeBalance: tgtBefore,
				AfterBalance:  targetAfter,
				CreatedAt:     now,
			},
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return 0, 0, err
	}
	return sourceAfter, targetAfter, nil
}

// ListFor returns the account's history entries in insertion order.
func (s *Store) ListFor(ctx context.Context, accountID string) ([]account.HistoryEntry, error) {
	var exists Account
	if err := s.db.WithContext(ctx).Select("id").First(&exists, "id = ?", accountID).Error; err != nil {
		return nil, mapNotFound(err)
	}
	var ms []HistoryEntry
	if err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]account.HistoryEntry, 0, len(ms))
	for i := range ms {
		out = append(out, account.HistoryEntry{
			AccountID:     ms[i].AccountID,
			OperationType: account.OperationType(ms[i].OperationType),
			FromTo:        ms[i].FromTo,
			BeforeBalance: ms[i].BeforeBalance,
			AfterBalance:  ms[i].AfterBalance,
			CreatedAt:     ms[i].CreatedAt,
		})
	}
	return out, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return account.ErrAccountNotFound
	}
	return err
}

func toModel(a *account.Account) *Account {
	return &Account{
		ID:                  a.ID,
		Owner:               a.Owner,
		Balance:             a.Balance,
		SingleWithdrawLimit: a.SingleWithdrawLimit,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

func toDomain(m *Account) *account.Account {
	return &account.Account{
		ID:                  m.ID,
		Owner:               m.Owner,
		Balance:             m.Balance,
		SingleWithdrawLimit: m.SingleWithdrawLimit,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toDomainSlice(ms []Account) []*account.Account {
	out := make([]*account.Account, 0, len(ms))
	for i := range ms {
		out = append(out, toDomain(&ms[i]))
	}
	return out
}
