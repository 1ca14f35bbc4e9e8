package account

import "github.com/fintechlab/accounts/pkg/domain/account"

// CreateAccountRequest is the body of POST /rest/accounts/add.
type CreateAccountRequest struct {
	Owner               string  `json:"owner" validate:"required"`
	SingleWithdrawLimit float64 `json:"singleWithdrawLimit" validate:"gte=0"`
	Balance             float64 `json:"balance" validate:"gte=0"`
}

// OperationRequest is the body of PUT /rest/accounts/:id. Shape checks live
// in the service so the failure ordering of the contract is preserved.
type OperationRequest struct {
	TargetAccountID string  `json:"targetAccountId"`
	Value           float64 `json:"value"`
}

// AccountResponse is the wire representation of an account.
type AccountResponse struct {
	ID                  string  `json:"id"`
	Owner               string  `json:"owner"`
	SingleWithdrawLimit float64 `json:"singleWithdrawLimit"`
	Balance             float64 `json:"balance"`
}

// HistoryEntryResponse is the wire representation of a history entry.
type HistoryEntryResponse struct {
	AccountID     string  `json:"accountId"`
	OperationType string  `json:"operationType"`
	FromTo        string  `json:"fromTo"`
	BeforeBalance float64 `json:"beforeBalance"`
	AfterBalance  float64 `json:"afterBalance"`
}

func toAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:                  a.ID,
		Owner:               a.Owner,
		SingleWithdrawLimit: a.SingleWithdrawLimit,
		Balance:             a.Balance,
	}
}

func toAccountResponses(accts []*account.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accts))
	for _, a := range accts {
		out = append(out, toAccountResponse(a))
	}
	return out
}

func toHistoryResponses(entries []account.HistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntryResponse{
			AccountID:     e.AccountID,
			OperationType: string(e.OperationType),
			FromTo:        e.FromTo,
			BeforeBalance: e.BeforeBalance,
			AfterBalance:  e.AfterBalance,
		})
	}
	return out
}
