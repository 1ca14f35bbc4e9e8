package account

import "time"

// OperationType labels one side of a completed transfer.
type OperationType string

const (
	// OperationWithdraw marks the entry on the account the amount left.
	OperationWithdraw OperationType = "withdraw"
	// OperationDeposit marks the entry on the account the amount entered.
	OperationDeposit OperationType = "deposit"
)

// HistoryEntry is an immutable audit record of one side of a completed
// transfer. It is created once, at the moment its parent transfer commits,
// and never changes afterwards.
type HistoryEntry struct {
	AccountID     string
	OperationType OperationType
	// FromTo is the owner of the counterparty account in the transfer.
	FromTo        string
	BeforeBalance float64
	AfterBalance  float64
	CreatedAt     time.Time
}
