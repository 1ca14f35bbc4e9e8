package gormstore

import "time"

// Account is the GORM model backing the ledger store.
type Account struct {
	ID                  string  `gorm:"primaryKey;size:36"`
	Owner               string  `gorm:"index;not null"`
	Balance             float64 `gorm:"not null"`
	SingleWithdrawLimit float64 `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HistoryEntry is the GORM model for one side of a completed transfer.
// Rows are insert-only; the autoincrement id preserves insertion order.
type HistoryEntry struct {
	ID            uint   `gorm:"primaryKey"`
	AccountID     string `gorm:"index;size:36;not null"`
	OperationType string `gorm:"not null"`
	FromTo        string
	BeforeBalance float64
	AfterBalance  float64
	CreatedAt     time.Time
}

// TableName keeps the audit table clearly named in the schema.
func (HistoryEntry) TableName() string { return "account_history" }
