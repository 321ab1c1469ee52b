package keeper

import (
	"errors"
	"testing"

	"cosmossdk.io/math"

	"github.com/proof-of-capital/poc-chain/x/pool/types"
)

// TestDistributeProfitWaterfall tests the full split with no exit queue
func TestDistributeProfitWaterfall(t *testing.T) {
	f := setupPoolKeeper(t)
	advanceToActive(t, f)

	// Tokens outside the reward asset and the sellable whitelist are rejected
	if _, err := f.keeper.DistributeProfit(f.ctx, owner1, "ufoo", math.ZeroInt()); !errors.Is(err, types.ErrTokenNotDistributable) {
		t.Errorf("expected ErrTokenNotDistributable, got %v", err)
	}

	// Nothing unaccounted yet
	if _, err := f.keeper.DistributeProfit(f.ctx, owner1, mainDenom, math.ZeroInt()); !errors.Is(err, types.ErrNothingToDistribute) {
		t.Errorf("expected ErrNothingToDistribute, got %v", err)
	}

	addProfit(f, mainDenom, 10_000)

	rec, err := f.keeper.DistributeProfit(f.ctx, owner1, mainDenom, math.ZeroInt())
	if err != nil {
		t.Fatalf("distribute failed: %v", err)
	}

	// Royalty 500 bips off the top, creator 1000 bips of the rest
	if !rec.Royalty.Equal(math.NewInt(500)) {
		t.Errorf("expected royalty 500, got %s", rec.Royalty)
	}
	if !rec.OperatorShare.Equal(math.NewInt(950)) {
		t.Errorf("expected operator share 950, got %s", rec.OperatorShare)
	}
	if !rec.ExitQueuePaid.IsZero() {
		t.Errorf("expected no exit payout, got %s", rec.ExitQueuePaid)
	}
	if !rec.HolderAccrued.Equal(math.NewInt(8550)) {
		t.Errorf("expected holder accrual 8550, got %s", rec.HolderAccrued)
	}

	// The split conserves the distributed total
	sum := rec.Royalty.Add(rec.OperatorShare).Add(rec.ExitQueuePaid).Add(rec.HolderAccrued)
	if !sum.Equal(rec.Unaccounted) {
		t.Errorf("expected split to sum to %s, got %s", rec.Unaccounted, sum)
	}

	// Recipients were paid immediately
	if !f.bank.balanceOf(royaltyAddr, mainDenom).Equal(math.NewInt(500)) {
		t.Errorf("expected royalty payout 500, got %s", f.bank.balanceOf(royaltyAddr, mainDenom))
	}
	if !f.bank.balanceOf(operatorAddr, mainDenom).Equal(math.NewInt(950)) {
		t.Errorf("expected operator payout 950, got %s", f.bank.balanceOf(operatorAddr, mainDenom))
	}

	// The holder portion is accrued, not paid: it stays accounted in custody
	if !f.keeper.GetAccountedBalance(f.ctx, mainDenom).Equal(math.NewInt(8550)) {
		t.Errorf("expected accounted 8550, got %s", f.keeper.GetAccountedBalance(f.ctx, mainDenom))
	}

	// Pro-rata pending rewards per vault: floor(8550 * shares / 515)
	if got := f.keeper.PendingRewards(f.ctx, 2, mainDenom); !got.Equal(math.NewInt(4980)) {
		t.Errorf("expected owner1 pending 4980, got %s", got)
	}
	if got := f.keeper.PendingRewards(f.ctx, 3, mainDenom); !got.Equal(math.NewInt(3320)) {
		t.Errorf("expected owner2 pending 3320, got %s", got)
	}
	if got := f.keeper.PendingRewards(f.ctx, 1, mainDenom); !got.Equal(math.NewInt(249)) {
		t.Errorf("expected operator pending 249, got %s", got)
	}

	if got := len(f.keeper.GetDistributionRecords(f.ctx)); got != 1 {
		t.Errorf("expected 1 distribution record, got %d", got)
	}
}

// TestDistributeProfitCapped tests the optional per-pass cap
func TestDistributeProfitCapped(t *testing.T) {
	f := setupPoolKeeper(t)
	advanceToActive(t, f)
	addProfit(f, mainDenom, 10_000)

	rec, err := f.keeper.DistributeProfit(f.ctx, owner1, mainDenom, math.NewInt(4000))
	if err != nil {
		t.Fatalf("distribute failed: %v", err)
	}
	if !rec.Unaccounted.Equal(math.NewInt(4000)) {
		t.Errorf("expected capped pass of 4000, got %s", rec.Unaccounted)
	}

	// The remainder stays unaccounted for the next pass
	if got := f.keeper.UnaccountedBalance(f.ctx, mainDenom); !got.Equal(math.NewInt(6000)) {
		t.Errorf("expected 6000 unaccounted after capped pass, got %s", got)
	}
}

// TestDistributeWithExitQueue tests the immediate exit-queue slice paid as a
// cash dividend while the entries stay queued for redemption
func TestDistributeWithExitQueue(t *testing.T) {
	f := setupPoolKeeper(t)
	advanceToActive(t, f)

	if _, err := f.keeper.RequestExit(f.ctx, owner2); err != nil {
		t.Fatalf("request exit failed: %v", err)
	}
	addProfit(f, rewardDenom, 1030)

	rec, err := f.keeper.DistributeProfit(f.ctx, owner1, rewardDenom, math.ZeroInt())
	if err != nil {
		t.Fatalf("distribute failed: %v", err)
	}

	// 1030 splits 51 royalty, 97 creator, then 882 * 200/515 = 342 to the
	// queue and 540 accrued to the remaining holders
	if !rec.Royalty.Equal(math.NewInt(51)) {
		t.Errorf("expected royalty 51, got %s", rec.Royalty)
	}
	if !rec.OperatorShare.Equal(math.NewInt(97)) {
		t.Errorf("expected operator share 97, got %s", rec.OperatorShare)
	}
	if !rec.ExitQueuePaid.Equal(math.NewInt(342)) {
		t.Errorf("expected exit payout 342, got %s", rec.ExitQueuePaid)
	}
	if !rec.HolderAccrued.Equal(math.NewInt(540)) {
		t.Errorf("expected holder accrual 540, got %s", rec.HolderAccrued)
	}

	// The queued vault was paid in cash but keeps its shares and its place
	// in the queue: only a funded allocation round redeems
	if !f.bank.balanceOf(owner2, rewardDenom).Equal(math.NewInt(342)) {
		t.Errorf("expected owner2 paid 342, got %s", f.bank.balanceOf(owner2, rewardDenom))
	}
	if got := f.vaults.GetVaultByOwner(f.ctx, owner2).Shares; !got.Equal(math.NewInt(200)) {
		t.Errorf("expected vault2 to keep 200 shares, got %s", got)
	}
	entry := f.keeper.GetExitQueueEntryByVault(f.ctx, 3)
	if entry == nil || !entry.Shares.Equal(math.NewInt(200)) {
		t.Errorf("expected vault2 still queued with 200 shares, got %+v", entry)
	}
	if got := f.keeper.GetPool(f.ctx).TotalExitQueueShares; !got.Equal(math.NewInt(200)) {
		t.Errorf("expected 200 shares queued, got %s", got)
	}
	if got := f.vaults.GetTotalSharesSupply(f.ctx); !got.Equal(math.NewInt(515)) {
		t.Errorf("expected supply unchanged at 515, got %s", got)
	}

	// The queued vault sits out the accumulator; holders split the 540
	if got := f.keeper.PendingRewards(f.ctx, 3, rewardDenom); !got.IsZero() {
		t.Errorf("expected no accrual for the queued vault, got %s", got)
	}
	if got := f.keeper.PendingRewards(f.ctx, 2, rewardDenom); !got.Equal(math.NewInt(514)) {
		t.Errorf("expected owner1 pending 514, got %s", got)
	}
}

// TestClaimRewards tests accumulator settlement on claim
func TestClaimRewards(t *testing.T) {
	f := setupPoolKeeper(t)
	advanceToActive(t, f)
	addProfit(f, mainDenom, 10_000)

	if _, err := f.keeper.DistributeProfit(f.ctx, owner1, mainDenom, math.ZeroInt()); err != nil {
		t.Fatalf("distribute failed: %v", err)
	}

	claimed, err := f.keeper.ClaimRewards(f.ctx, owner1, mainDenom)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if !claimed.Equal(math.NewInt(4980)) {
		t.Errorf("expected claim 4980, got %s", claimed)
	}
	if !f.bank.balanceOf(owner1, mainDenom).Equal(math.NewInt(4980)) {
		t.Errorf("expected owner1 balance 4980, got %s", f.bank.balanceOf(owner1, mainDenom))
	}

	// The index advanced: a second claim finds nothing
	if _, err := f.keeper.ClaimRewards(f.ctx, owner1, mainDenom); !errors.Is(err, types.ErrNothingToClaim) {
		t.Errorf("expected ErrNothingToClaim, got %v", err)
	}

	// A second distribution accrues on top of the settled index
	addProfit(f, mainDenom, 1030)
	if _, err := f.keeper.DistributeProfit(f.ctx, owner2, mainDenom, math.ZeroInt()); err != nil {
		t.Fatalf("distribute failed: %v", err)
	}
	claimed, err = f.keeper.ClaimRewards(f.ctx, owner1, mainDenom)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if !claimed.IsPositive() {
		t.Errorf("expected positive second claim, got %s", claimed)
	}
}

// TestRequestExitFlushesRewards tests that queueing settles accrued rewards
func TestRequestExitFlushesRewards(t *testing.T) {
	f := setupPoolKeeper(t)
	advanceToActive(t, f)
	addProfit(f, mainDenom, 10_000)

	if _, err := f.keeper.DistributeProfit(f.ctx, owner2, mainDenom, math.ZeroInt()); err != nil {
		t.Fatalf("distribute failed: %v", err)
	}

	// owner1 had 4980 pending; the exit request pays it out up front
	if _, err := f.keeper.RequestExit(f.ctx, owner1); err != nil {
		t.Fatalf("request exit failed: %v", err)
	}
	if !f.bank.balanceOf(owner1, mainDenom).Equal(math.NewInt(4980)) {
		t.Errorf("expected flushed rewards 4980, got %s", f.bank.balanceOf(owner1, mainDenom))
	}
	if got := f.keeper.PendingRewards(f.ctx, 2, mainDenom); !got.IsZero() {
		t.Errorf("expected no pending after flush, got %s", got)
	}
}
