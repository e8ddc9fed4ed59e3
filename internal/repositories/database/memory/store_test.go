package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/wallet_backend/internal/apperrors"
	"github.com/SscSPs/wallet_backend/internal/core/domain"
	"github.com/SscSPs/wallet_backend/internal/core/services"
	"github.com/SscSPs/wallet_backend/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAccount(t *testing.T, s *memory.Store, id string) {
	t.Helper()
	require.NoError(t, s.SaveAccount(context.Background(), domain.Account{AccountID: id, Balance: decimal.Zero}))
}

func entry(accountID string, kind domain.Kind, amount int64) domain.LedgerEntry {
	return domain.LedgerEntry{
		AccountID: accountID,
		Kind:      kind,
		Amount:    decimal.NewFromInt(amount),
		Currency:  domain.CurrencyNGN,
		Processed: true,
		CreatedAt: time.Now().UTC(),
	}
}

// balanceFromLog replays processed entries; it must always equal the stored balance.
func balanceFromLog(t *testing.T, s *memory.Store, accountID string) decimal.Decimal {
	t.Helper()
	entries, _, err := s.ListEntriesByAccount(context.Background(), accountID, 100, nil)
	require.NoError(t, err)
	total := decimal.Zero
	for _, e := range entries {
		if e.Processed {
			total = total.Add(e.SignedDelta())
		}
	}
	return total
}

func TestStore_SaveAccountDuplicate(t *testing.T) {
	s := memory.NewStore()
	openAccount(t, s, "acct-1")
	err := s.SaveAccount(context.Background(), domain.Account{AccountID: "acct-1"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestStore_ApplyEntryStampsBalanceAndReward(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	openAccount(t, s, "acct-1")
	reward := domain.NewRewardEarnEntry("acct-1", time.Now().UTC())

	res, err := s.ApplyEntry(ctx, entry("acct-1", domain.KindDeposit, 250), &reward)

	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Entry.EntryID)
	assert.Equal(t, int64(2), res.Reward.EntryID)
	assert.True(t, res.Entry.BalanceAfter.Equal(decimal.NewFromInt(250)))
	assert.True(t, res.Reward.BalanceAfter.Equal(decimal.NewFromInt(250)))

	points, err := s.SumPointsByAccount(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), points)
}

func TestStore_ApplyEntryUnknownAccount(t *testing.T) {
	s := memory.NewStore()
	_, err := s.ApplyEntry(context.Background(), entry("ghost", domain.KindDeposit, 1), nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_InsufficientFundsLeavesNoTrace(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	openAccount(t, s, "acct-1")
	reward := domain.NewRewardEarnEntry("acct-1", time.Now().UTC())

	_, err := s.ApplyEntry(ctx, entry("acct-1", domain.KindBetting, 1), &reward)

	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	entries, _, err := s.ListEntriesByAccount(ctx, "acct-1", 10, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_RedeemMorePointsThanEarned(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	openAccount(t, s, "acct-1")
	reward := domain.NewRewardEarnEntry("acct-1", time.Now().UTC())
	_, err := s.ApplyEntry(ctx, entry("acct-1", domain.KindDeposit, 10), &reward)
	require.NoError(t, err)

	redeem := entry("acct-1", domain.KindRewardRedeem, 1)
	redeem.Points = -101
	_, err = s.ApplyEntry(ctx, redeem, nil)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	redeem.Points = -100
	res, err := s.ApplyEntry(ctx, redeem, nil)
	require.NoError(t, err)
	assert.True(t, res.Entry.BalanceAfter.Equal(decimal.NewFromInt(11)))
}

func TestStore_ConcurrentApplyKeepsBalanceConsistent(t *testing.T) {
	s := memory.NewStore()
	openAccount(t, s, "acct-1")
	ledger := services.NewLedgerService(s, services.NewAccountService(s))
	ctx := context.Background()

	_, err := ledger.Apply(ctx, "acct-1", domain.KindDeposit, decimal.NewFromInt(100), domain.Metadata{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	debits := 0
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := ledger.Apply(ctx, "acct-1", domain.KindWithdrawal, decimal.NewFromInt(15), domain.Metadata{}); err == nil {
				mu.Lock()
				debits++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
			}
		}()
		go func() {
			defer wg.Done()
			_, err := ledger.Apply(ctx, "acct-1", domain.KindDeposit, decimal.NewFromInt(5), domain.Metadata{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	acc, err := s.FindAccountByID(ctx, "acct-1")
	require.NoError(t, err)
	expected := decimal.NewFromInt(100 + 20*5 - int64(debits)*15)
	assert.True(t, acc.Balance.Equal(expected), "balance %s, expected %s", acc.Balance, expected)
	assert.False(t, acc.Balance.IsNegative())
	assert.True(t, acc.Balance.Equal(balanceFromLog(t, s, "acct-1")))
}

func TestStore_ConcurrentFinalizeCreditsOnce(t *testing.T) {
	s := memory.NewStore()
	openAccount(t, s, "acct-1")
	guard := services.NewIdempotencyGuard(s)
	ctx := context.Background()

	pending := entry("acct-1", domain.KindAddMoney, 1000)
	pending.ExternalRef = domain.StringPtr("FLW-acct-1-100001")
	pending.ExternalStatus = domain.StatusPtr(domain.ExternalPending)
	_, err := s.CreatePendingEntry(ctx, pending)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan domain.FinalizeOutcome, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := guard.TryFinalize(ctx, "FLW-acct-1-100001", decimal.NewFromInt(1000), domain.CurrencyNGN, domain.ProviderRef{ID: "4455"})
			if assert.NoError(t, err) {
				results <- res.Outcome
			}
		}()
	}
	wg.Wait()
	close(results)

	applied := 0
	for outcome := range results {
		if outcome == domain.FinalizeApplied {
			applied++
		}
	}
	assert.Equal(t, 1, applied)

	acc, err := s.FindAccountByID(ctx, "acct-1")
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, acc.Balance.Equal(balanceFromLog(t, s, "acct-1")))
}

func TestStore_FinalizeMismatchChangesNothing(t *testing.T) {
	s := memory.NewStore()
	openAccount(t, s, "acct-1")
	ctx := context.Background()

	pending := entry("acct-1", domain.KindAddMoney, 1000)
	pending.ExternalRef = domain.StringPtr("FLW-1")
	pending.ExternalStatus = domain.StatusPtr(domain.ExternalPending)
	_, err := s.CreatePendingEntry(ctx, pending)
	require.NoError(t, err)

	_, err = s.FinalizeExternalEntry(ctx, "FLW-1", domain.ProviderRef{}, services.FinalizeCheck(decimal.NewFromInt(999), domain.CurrencyNGN))
	assert.ErrorIs(t, err, apperrors.ErrAmountMismatch)

	stored, err := s.FindEntryByExternalRef(ctx, "FLW-1")
	require.NoError(t, err)
	assert.False(t, stored.Processed)
	assert.Nil(t, stored.BalanceAfter)
}

func TestStore_CreatePendingEntryDuplicateRef(t *testing.T) {
	s := memory.NewStore()
	openAccount(t, s, "acct-1")
	ctx := context.Background()
	pending := entry("acct-1", domain.KindAddMoney, 100)
	pending.ExternalRef = domain.StringPtr("FLW-1")

	_, err := s.CreatePendingEntry(ctx, pending)
	require.NoError(t, err)
	_, err = s.CreatePendingEntry(ctx, pending)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	exists, err := s.ExternalRefExists(ctx, "FLW-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStore_ExpireThenLateFinalize(t *testing.T) {
	s := memory.NewStore()
	openAccount(t, s, "acct-1")
	ctx := context.Background()

	pending := entry("acct-1", domain.KindAddMoney, 100)
	pending.ExternalRef = domain.StringPtr("FLW-old")
	pending.ExternalStatus = domain.StatusPtr(domain.ExternalPending)
	pending.CreatedAt = time.Now().UTC().Add(-2 * time.Hour)
	_, err := s.CreatePendingEntry(ctx, pending)
	require.NoError(t, err)

	n, err := s.ExpirePendingEntries(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stored, err := s.FindEntryByExternalRef(ctx, "FLW-old")
	require.NoError(t, err)
	assert.Equal(t, domain.ExternalFailed, *stored.ExternalStatus)

	res, err := s.FinalizeExternalEntry(ctx, "FLW-old", domain.ProviderRef{ID: "77", PaymentType: "bank_transfer"}, services.FinalizeCheck(decimal.NewFromInt(100), domain.CurrencyNGN))
	require.NoError(t, err)
	assert.Equal(t, domain.FinalizeApplied, res.Outcome)
	assert.Equal(t, domain.ExternalSuccessful, *res.Entry.ExternalStatus)
	assert.Equal(t, "77", res.Entry.ProviderID)
	assert.Equal(t, "bank_transfer", res.Entry.PaymentType)
}

func TestStore_MarkExternalStatusSkipsProcessed(t *testing.T) {
	s := memory.NewStore()
	openAccount(t, s, "acct-1")
	ctx := context.Background()
	pending := entry("acct-1", domain.KindAddMoney, 100)
	pending.ExternalRef = domain.StringPtr("FLW-1")
	pending.ExternalStatus = domain.StatusPtr(domain.ExternalPending)
	_, err := s.CreatePendingEntry(ctx, pending)
	require.NoError(t, err)

	changed, err := s.MarkExternalStatus(ctx, "FLW-1", domain.ExternalFailed)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = s.FinalizeExternalEntry(ctx, "FLW-1", domain.ProviderRef{}, services.FinalizeCheck(decimal.NewFromInt(100), domain.CurrencyNGN))
	require.NoError(t, err)

	changed, err = s.MarkExternalStatus(ctx, "FLW-1", domain.ExternalFailed)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestStore_ListEntriesPagesNewestFirst(t *testing.T) {
	s := memory.NewStore()
	openAccount(t, s, "acct-1")
	openAccount(t, s, "acct-2")
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		e := entry("acct-1", domain.KindDeposit, 10)
		e.CreatedAt = base // identical timestamps fall back to entry ID
		_, err := s.ApplyEntry(ctx, e, nil)
		require.NoError(t, err)
	}
	_, err := s.ApplyEntry(ctx, entry("acct-2", domain.KindDeposit, 10), nil)
	require.NoError(t, err)

	first, next, err := s.ListEntriesByAccount(ctx, "acct-1", 2, nil)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, []int64{5, 4}, []int64{first[0].EntryID, first[1].EntryID})
	require.NotNil(t, next)

	second, next, err := s.ListEntriesByAccount(ctx, "acct-1", 2, next)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2}, []int64{second[0].EntryID, second[1].EntryID})
	require.NotNil(t, next)

	third, next, err := s.ListEntriesByAccount(ctx, "acct-1", 2, next)
	require.NoError(t, err)
	assert.Len(t, third, 1)
	assert.Nil(t, next)

	bad := "!!not-base64"
	_, _, err = s.ListEntriesByAccount(ctx, "acct-1", 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
