package keeper

import (
	"errors"
	"testing"
	"time"

	"cosmossdk.io/math"

	"github.com/proof-of-capital/poc-chain/x/pool/types"
	vaulttypes "github.com/proof-of-capital/poc-chain/x/vault/types"
)

// TestInitPool tests pool initialization invariants
func TestInitPool(t *testing.T) {
	f := setupPoolKeeper(t)

	// Only the governance authority may initialize
	if err := f.keeper.InitPool(f.ctx, testAddr(0x99), defaultPoolConfig()); !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	// Invalid configuration is rejected
	bad := defaultPoolConfig()
	bad.FundraisingTargetUSD = math.LegacyZeroDec()
	if err := f.keeper.InitPool(f.ctx, testAuthority, bad); !errors.Is(err, types.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	mustInitPool(t, f)

	pool := f.keeper.GetPool(f.ctx)
	if pool == nil {
		t.Fatal("expected pool after init, got nil")
	}
	if pool.Stage != types.StageFundraising {
		t.Errorf("expected fundraising stage, got %s", pool.Stage)
	}
	if !pool.TotalCollectedMainCollateral.IsZero() {
		t.Errorf("expected zero collected, got %s", pool.TotalCollectedMainCollateral)
	}
	if pool.AllocationCooldown != testCooldown {
		t.Errorf("expected cooldown %d, got %d", testCooldown, pool.AllocationCooldown)
	}

	// The main collateral is auto-whitelisted as sellable
	if !f.keeper.IsSellableToken(f.ctx, mainDenom) {
		t.Error("expected main collateral to be sellable after init")
	}

	// Second init is rejected
	if err := f.keeper.InitPool(f.ctx, testAuthority, defaultPoolConfig()); !errors.Is(err, types.ErrPoolExists) {
		t.Errorf("expected ErrPoolExists, got %v", err)
	}
}

// TestDeposit tests fundraising deposits across two vaults
func TestDeposit(t *testing.T) {
	f := setupPoolKeeper(t)
	mustInitPool(t, f)
	mustCreateVault(t, f, owner1, 1_000_000, 600)
	mustCreateVault(t, f, owner2, 1_000_000, 400)

	rec, err := f.keeper.Deposit(f.ctx, owner1, math.NewInt(600))
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if !rec.USDValue.Equal(math.LegacyNewDec(600)) {
		t.Errorf("expected USD value 600, got %s", rec.USDValue)
	}
	if !rec.UnitPrice.Equal(math.LegacyOneDec()) {
		t.Errorf("expected unit price 1.0, got %s", rec.UnitPrice)
	}

	mustDeposit(t, f, owner2, 400)

	pool := f.keeper.GetPool(f.ctx)
	if !pool.TotalCollectedMainCollateral.Equal(math.NewInt(1000)) {
		t.Errorf("expected collected 1000, got %s", pool.TotalCollectedMainCollateral)
	}
	if !pool.TotalDepositedUSD.Equal(math.LegacyNewDec(1000)) {
		t.Errorf("expected deposited USD 1000, got %s", pool.TotalDepositedUSD)
	}
	if !pool.TargetReached() {
		t.Error("expected target reached at 1000 USD")
	}

	// Deposited collateral is fully accounted: nothing is distributable
	if !f.keeper.GetAccountedBalance(f.ctx, mainDenom).Equal(math.NewInt(1000)) {
		t.Errorf("expected accounted 1000, got %s", f.keeper.GetAccountedBalance(f.ctx, mainDenom))
	}
	if !f.keeper.UnaccountedBalance(f.ctx, mainDenom).IsZero() {
		t.Errorf("expected zero unaccounted, got %s", f.keeper.UnaccountedBalance(f.ctx, mainDenom))
	}

	// Coins actually moved into custody
	if !f.bank.balanceOf(poolModuleAddr(), mainDenom).Equal(math.NewInt(1000)) {
		t.Errorf("expected custody balance 1000, got %s", f.bank.balanceOf(poolModuleAddr(), mainDenom))
	}

	// Audit records exist for both deposits
	if got := len(f.keeper.GetDepositRecords(f.ctx)); got != 2 {
		t.Errorf("expected 2 deposit records, got %d", got)
	}

	// Vault bookkeeping followed
	v1 := f.vaults.GetVaultByOwner(f.ctx, owner1)
	if !v1.MainCollateralDeposit.Equal(math.NewInt(600)) {
		t.Errorf("expected vault deposit 600, got %s", v1.MainCollateralDeposit)
	}
}

// TestDepositRejections tests the deposit guard clauses
func TestDepositRejections(t *testing.T) {
	f := setupPoolKeeper(t)
	mustInitPool(t, f)
	mustCreateVault(t, f, owner1, 500, 10_000)

	testCases := []struct {
		name      string
		depositor string
		amount    int64
		expected  error
	}{
		{
			name:      "depositor without vault",
			depositor: testAddr(0x77),
			amount:    100,
			expected:  types.ErrUnauthorized,
		},
		{
			name:      "below minimum deposit",
			depositor: owner1,
			amount:    5,
			expected:  types.ErrBelowMinDeposit,
		},
		{
			name:      "zero amount",
			depositor: owner1,
			amount:    0,
			expected:  types.ErrInvalidAmount,
		},
		{
			name:      "deposit limit exceeded",
			depositor: owner1,
			amount:    600,
			expected:  vaulttypes.ErrDepositLimitExceeded,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.keeper.Deposit(f.ctx, tc.depositor, math.NewInt(tc.amount))
			if !errors.Is(err, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, err)
			}
		})
	}

	// After the deadline no deposit is accepted
	f.ctx = f.ctx.WithBlockTime(time.Unix(testDeadline, 0))
	if _, err := f.keeper.Deposit(f.ctx, owner1, math.NewInt(100)); !errors.Is(err, types.ErrDeadlinePassed) {
		t.Errorf("expected ErrDeadlinePassed, got %v", err)
	}
}

// TestExtendDeadline tests the single-use deadline extension
func TestExtendDeadline(t *testing.T) {
	f := setupPoolKeeper(t)
	mustInitPool(t, f)

	if err := f.keeper.ExtendDeadline(f.ctx, testAddr(0x99), testDeadline+100); !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	// The new deadline must move forward
	if err := f.keeper.ExtendDeadline(f.ctx, testAuthority, testDeadline-100); !errors.Is(err, types.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for earlier deadline, got %v", err)
	}

	if err := f.keeper.ExtendDeadline(f.ctx, testAuthority, testDeadline+1000); err != nil {
		t.Fatalf("extend failed: %v", err)
	}
	pool := f.keeper.GetPool(f.ctx)
	if pool.FundraisingDeadline != testDeadline+1000 {
		t.Errorf("expected deadline %d, got %d", testDeadline+1000, pool.FundraisingDeadline)
	}

	// A second extension is forbidden for the pool's lifetime
	if err := f.keeper.ExtendDeadline(f.ctx, testAuthority, testDeadline+2000); !errors.Is(err, types.ErrDeadlineAlreadyMoved) {
		t.Errorf("expected ErrDeadlineAlreadyMoved, got %v", err)
	}
}

// TestFinalizeFundraisingCollection tests the target gate on finalization
func TestFinalizeFundraisingCollection(t *testing.T) {
	f := setupPoolKeeper(t)
	mustInitPool(t, f)
	mustCreateVault(t, f, owner1, 1_000_000, 1000)
	mustDeposit(t, f, owner1, 500)

	// Target missed: collection cannot close
	if err := f.keeper.FinalizeFundraisingCollection(f.ctx, testAuthority); !errors.Is(err, types.ErrTargetNotReached) {
		t.Errorf("expected ErrTargetNotReached, got %v", err)
	}

	mustDeposit(t, f, owner1, 500)
	if err := f.keeper.FinalizeFundraisingCollection(f.ctx, testAuthority); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if stage := f.keeper.GetPool(f.ctx).Stage; stage != types.StageFundraisingExchange {
		t.Errorf("expected fundraising_exchange stage, got %s", stage)
	}
}

// TestCancelAndWithdraw tests cancellation and the exact refund path
func TestCancelAndWithdraw(t *testing.T) {
	f := setupPoolKeeper(t)
	mustInitPool(t, f)
	mustCreateVault(t, f, owner1, 1_000_000, 600)
	mustCreateVault(t, f, owner2, 1_000_000, 400)
	mustDeposit(t, f, owner1, 600)
	mustDeposit(t, f, owner2, 300)

	// Before the deadline the pool cannot be cancelled
	if err := f.keeper.CancelFundraising(f.ctx, owner1); !errors.Is(err, types.ErrDeadlineNotReached) {
		t.Errorf("expected ErrDeadlineNotReached, got %v", err)
	}

	f.ctx = f.ctx.WithBlockTime(time.Unix(testDeadline+1, 0))
	if err := f.keeper.CancelFundraising(f.ctx, owner1); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if stage := f.keeper.GetPool(f.ctx).Stage; stage != types.StageFundraisingCancelled {
		t.Errorf("expected fundraising_cancelled stage, got %s", stage)
	}

	// Each vault recovers exactly what it deposited
	refund, err := f.keeper.WithdrawCancelled(f.ctx, owner1)
	if err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if !refund.Equal(math.NewInt(600)) {
		t.Errorf("expected refund 600, got %s", refund)
	}
	if !f.bank.balanceOf(owner1, mainDenom).Equal(math.NewInt(600)) {
		t.Errorf("expected owner balance 600, got %s", f.bank.balanceOf(owner1, mainDenom))
	}

	// A second withdrawal finds nothing
	if _, err := f.keeper.WithdrawCancelled(f.ctx, owner1); !errors.Is(err, types.ErrNothingToWithdraw) {
		t.Errorf("expected ErrNothingToWithdraw, got %v", err)
	}

	if _, err := f.keeper.WithdrawCancelled(f.ctx, owner2); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}

	// Conservation: custody and the accounted ledger drain to zero
	if !f.bank.balanceOf(poolModuleAddr(), mainDenom).IsZero() {
		t.Errorf("expected empty custody, got %s", f.bank.balanceOf(poolModuleAddr(), mainDenom))
	}
	if !f.keeper.GetAccountedBalance(f.ctx, mainDenom).IsZero() {
		t.Errorf("expected zero accounted, got %s", f.keeper.GetAccountedBalance(f.ctx, mainDenom))
	}
	pool := f.keeper.GetPool(f.ctx)
	if !pool.TotalCollectedMainCollateral.IsZero() {
		t.Errorf("expected zero collected, got %s", pool.TotalCollectedMainCollateral)
	}

	// Cancellation when the target was reached is forbidden
	f2 := setupPoolKeeper(t)
	mustInitPool(t, f2)
	mustCreateVault(t, f2, owner1, 1_000_000, 1000)
	mustDeposit(t, f2, owner1, 1000)
	f2.ctx = f2.ctx.WithBlockTime(time.Unix(testDeadline+1, 0))
	if err := f2.keeper.CancelFundraising(f2.ctx, owner1); !errors.Is(err, types.ErrTargetReached) {
		t.Errorf("expected ErrTargetReached, got %v", err)
	}
}

// TestRecordExchange tests the collateral-to-reward swap bookkeeping
func TestRecordExchange(t *testing.T) {
	f := setupPoolKeeper(t)
	mustInitPool(t, f)
	mustCreateVault(t, f, owner1, 1_000_000, 1000)
	mustDeposit(t, f, owner1, 1000)
	if err := f.keeper.FinalizeFundraisingCollection(f.ctx, testAuthority); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	// Unregistered router is rejected
	if _, err := f.keeper.RecordExchange(f.ctx, testAuthority, testRouter, 0, nil, math.NewInt(400), math.NewInt(1)); !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for unknown router, got %v", err)
	}

	if err := f.keeper.ExecuteAction(f.ctx, testAuthority, types.Action{
		Type:      types.ActionSetRouter,
		SetRouter: &types.SetRouterAction{Router: testRouter, Enable: true},
	}); err != nil {
		t.Fatalf("failed to register router: %v", err)
	}

	// Swapping more than was collected is rejected
	if _, err := f.keeper.RecordExchange(f.ctx, testAuthority, testRouter, 0, nil, math.NewInt(2000), math.NewInt(1)); !errors.Is(err, types.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	// Partial exchange: 400 uusdc at the $2 reward price yields 200 ureward
	received, err := f.keeper.RecordExchange(f.ctx, testAuthority, testRouter, 0, nil, math.NewInt(400), math.NewInt(150))
	if err != nil {
		t.Fatalf("exchange failed: %v", err)
	}
	if !received.Equal(math.NewInt(200)) {
		t.Errorf("expected 200 received, got %s", received)
	}

	pool := f.keeper.GetPool(f.ctx)
	if !pool.TotalCollectedMainCollateral.Equal(math.NewInt(600)) {
		t.Errorf("expected collected 600 after swap, got %s", pool.TotalCollectedMainCollateral)
	}
	if !pool.TotalExchangedReward.Equal(math.NewInt(200)) {
		t.Errorf("expected exchanged 200, got %s", pool.TotalExchangedReward)
	}
	if !f.keeper.GetAccountedBalance(f.ctx, mainDenom).Equal(math.NewInt(600)) {
		t.Errorf("expected accounted collateral 600, got %s", f.keeper.GetAccountedBalance(f.ctx, mainDenom))
	}
	if !f.keeper.GetAccountedBalance(f.ctx, rewardDenom).Equal(math.NewInt(200)) {
		t.Errorf("expected accounted reward 200, got %s", f.keeper.GetAccountedBalance(f.ctx, rewardDenom))
	}

	// Finalizing with collateral still unswapped is rejected
	if err := f.keeper.FinalizeExchange(f.ctx, testAuthority); !errors.Is(err, types.ErrCollateralOutstanding) {
		t.Errorf("expected ErrCollateralOutstanding, got %v", err)
	}
}

// TestFinalizeExchange tests the retroactive proportional share mint
func TestFinalizeExchange(t *testing.T) {
	f := setupPoolKeeper(t)
	advanceToActive(t, f)

	pool := f.keeper.GetPool(f.ctx)

	// Realized price: $1000 bought 500 ureward, so $2 per unit
	if !pool.RealizedSharePrice.Equal(math.LegacyNewDec(2)) {
		t.Errorf("expected realized price 2.0, got %s", pool.RealizedSharePrice)
	}

	// Shares are proportional to deposited USD at the realized price
	v1 := f.vaults.GetVaultByOwner(f.ctx, owner1)
	if !v1.Shares.Equal(math.NewInt(300)) {
		t.Errorf("expected 300 shares for owner1, got %s", v1.Shares)
	}
	v2 := f.vaults.GetVaultByOwner(f.ctx, owner2)
	if !v2.Shares.Equal(math.NewInt(200)) {
		t.Errorf("expected 200 shares for owner2, got %s", v2.Shares)
	}

	// Operator allotment: 300 bips of the 500 participant shares
	op := f.vaults.GetVaultByOwner(f.ctx, operatorAddr)
	if !op.Shares.Equal(math.NewInt(15)) {
		t.Errorf("expected 15 operator shares, got %s", op.Shares)
	}
	if !f.vaults.GetTotalSharesSupply(f.ctx).Equal(math.NewInt(515)) {
		t.Errorf("expected supply 515, got %s", f.vaults.GetTotalSharesSupply(f.ctx))
	}

	if pool.Stage != types.StageActive {
		t.Errorf("expected active stage, got %s", pool.Stage)
	}
}
