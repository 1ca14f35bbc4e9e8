package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/fintechlab/accounts/infra/repository/memory"
	"github.com/fintechlab/accounts/pkg/domain/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreate(t *testing.T, s *memory.Store, owner string, limit, balance float64) *account.Account {
	t.Helper()
	a, err := account.New().WithOwner(owner).WithLimit(limit).WithBalance(balance).Build()
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), a))
	return a
}

func TestStore_CreateAndGet(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	a := mustCreate(t, s, "alice", 500, 50000)

	got, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "alice", got.Owner)
	assert.InDelta(t, 50000.0, got.Balance, 0)
	assert.InDelta(t, 500.0, got.SingleWithdrawLimit, 0)

	// The returned snapshot must not alias store state.
	got.Balance = 1
	again, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50000.0, again.Balance, 0)
}

func TestStore_CreateDuplicateID(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	a := mustCreate(t, s, "alice", 500, 50000)

	dup, err := account.New().WithID(a.ID).WithOwner("mallory").WithBalance(1).Build()
	require.NoError(t, err)
	assert.ErrorIs(t, s.Create(ctx, dup), account.ErrAccountExists)

	// The original record survives the rejected create.
	got, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Owner)
	assert.InDelta(t, 50000.0, got.Balance, 0)
}

func TestStore_GetUnknown(t *testing.T) {
	s := memory.New()
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestStore_ListByOwner(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	a1 := mustCreate(t, s, "alice", 500, 100)
	a2 := mustCreate(t, s, "alice", 500, 200)
	b := mustCreate(t, s, "bob", 500, 300)

	got, err := s.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	assert.ElementsMatch(t, []string{a1.ID, a2.ID}, ids)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	_ = b
}

func TestStore_Delete(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	a := mustCreate(t, s, "alice", 500, 100)

	require.NoError(t, s.Delete(ctx, a.ID))
	_, err := s.Get(ctx, a.ID)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	_, err = s.ListFor(ctx, a.ID)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)

	assert.ErrorIs(t, s.Delete(ctx, a.ID), account.ErrAccountNotFound)
}

func TestStore_HistoryEmptyVsUnknown(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	a := mustCreate(t, s, "alice", 500, 100)

	entries, err := s.ListFor(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = s.ListFor(ctx, "nope")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestStore_ApplyTransfer(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	src := mustCreate(t, s, "alice", 500, 50000)
	tgt := mustCreate(t, s, "bob", 1000, 80000)

	srcAfter, tgtAfter, err := s.ApplyTransfer(ctx, src.ID, tgt.ID, 400)
	require.NoError(t, err)
	assert.InDelta(t, 49600.0, srcAfter, 0)
	assert.InDelta(t, 80400.0, tgtAfter, 0)

	srcHist, err := s.ListFor(ctx, src.ID)
	require.NoError(t, err)
	require.Len(t, srcHist, 1)
	assert.Equal(t, account.OperationWithdraw, srcHist[0].OperationType)
	assert.Equal(t, "bob", srcHist[0].FromTo)
	assert.InDelta(t, 50000.0, srcHist[0].BeforeBalance, 0)
	assert.InDelta(t, 49600.0, srcHist[0].AfterBalance, 0)

	tgtHist, err := s.ListFor(ctx, tgt.ID)
	require.NoError(t, err)
	require.Len(t, tgtHist, 1)
	assert.Equal(t, account.OperationDeposit, tgtHist[0].OperationType)
	assert.Equal(t, "alice", tgtHist[0].FromTo)
	assert.InDelta(t, 80000.0, tgtHist[0].BeforeBalance, 0)
	assert.InDelta(t, 80400.0, tgtHist[0].AfterBalance, 0)
}

func TestStore_ApplyTransferFailuresLeaveStateUntouched(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	src := mustCreate(t, s, "alice", 500, 50000)
	tgt := mustCreate(t, s, "bob", 1000, 80000)

	tests := []struct {
		name    string
		amount  float64
		wantErr error
	}{
		{"over limit", 600, account.ErrWithdrawLimitExceeded},
		{"over balance", 50100, account.ErrInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.ApplyTransfer(ctx, src.ID, tgt.ID, tt.amount)
			require.ErrorIs(t, err, tt.wantErr)

			gotSrc, err := s.Get(ctx, src.ID)
			require.NoError(t, err)
			assert.InDelta(t, 50000.0, gotSrc.Balance, 0)
			gotTgt, err := s.Get(ctx, tgt.ID)
			require.NoError(t, err)
			assert.InDelta(t, 80000.0, gotTgt.Balance, 0)

			hist, err := s.ListFor(ctx, src.ID)
			require.NoError(t, err)
			assert.Empty(t, hist)
		})
	}
}

func TestStore_ApplyTransferUnknownAccounts(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	a := mustCreate(t, s, "alice", 500, 100)

	_, _, err := s.ApplyTransfer(ctx, "nope", a.ID, 10)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	_, _, err = s.ApplyTransfer(ctx, a.ID, "nope", 10)
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
	_, _, err = s.ApplyTransfer(ctx, a.ID, a.ID, 10)
	assert.ErrorIs(t, err, account.ErrSameAccount)
}

// Opposing transfers on the same pair must not deadlock and must conserve
// the total balance.
func TestStore_ConcurrentOpposingTransfers(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	a := mustCreate(t, s, "alice", 1000, 10000)
	b := mustCreate(t, s, "bob", 1000, 10000)

	const rounds = 500
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, _, err := s.ApplyTransfer(ctx, a.ID, b.ID, 1)
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, _, err := s.ApplyTransfer(ctx, b.ID, a.ID, 1)
			assert.NoError(t, err)
		}
	}()
	wg.Wait()

	gotA, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	gotB, err := s.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.InDelta(t, 20000.0, gotA.Balance+gotB.Balance, 0)
	assert.InDelta(t, 10000.0, gotA.Balance, 0)
	assert.InDelta(t, 10000.0, gotB.Balance, 0)

	hist, err := s.ListFor(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, hist, 2*rounds)
}

// Concurrent transfers across several accounts must conserve the system
// total and never drive a balance negative.
func TestStore_ConcurrentConservation(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	accts := make([]*account.Account, 4)
	for i, owner := range []string{"a", "b", "c", "d"} {
		accts[i] = mustCreate(t, s, owner, 1000, 2500)
	}

	var wg sync.WaitGroup
	for i := range accts {
		for j := range accts {
			if i == j {
				continue
			}
			wg.Add(1)
			go func(from, to string) {
				defer wg.Done()
				for n := 0; n < 100; n++ {
					_, _, err := s.ApplyTransfer(ctx, from, to, 1)
					if err != nil {
						assert.ErrorIs(t, err, account.ErrInsufficientFunds)
					}
				}
			}(accts[i].ID, accts[j].ID)
		}
	}
	wg.Wait()

	var total float64
	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	for _, a := range all {
		assert.GreaterOrEqual(t, a.Balance, 0.0)
		total += a.Balance
	}
	assert.InDelta(t, 10000.0, total, 0)
}
