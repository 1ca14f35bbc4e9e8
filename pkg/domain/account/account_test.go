package account_test

import (
	"testing"

	"github.com/fintechlab/accounts/pkg/domain/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Valid(t *testing.T) {
	a, err := account.New().
		WithOwner("alice").
		WithLimit(500).
		WithBalance(50000).
		Build()
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "alice", a.Owner)
	assert.InDelta(t, 500.0, a.SingleWithdrawLimit, 0)
	assert.InDelta(t, 50000.0, a.Balance, 0)
}

func TestBuild_FreshIDs(t *testing.T) {
	a1, err := account.New().WithOwner("alice").Build()
	require.NoError(t, err)
	a2, err := account.New().WithOwner("alice").Build()
	require.NoError(t, err)
	assert.NotEqual(t, a1.ID, a2.ID)
}

func TestBuild_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		owner   string
		limit   float64
		balance float64
		wantErr error
	}{
		{"empty owner", "", 500, 100, account.ErrEmptyOwner},
		{"blank owner", "   ", 500, 100, account.ErrEmptyOwner},
		{"negative balance", "alice", 500, -10, account.ErrNegativeBalance},
		{"negative limit", "alice", -10, 100, account.ErrNegativeLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := account.New().
				WithOwner(tt.owner).
				WithLimit(tt.limit).
				WithBalance(tt.balance).
				Build()
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, a)
		})
	}
}
