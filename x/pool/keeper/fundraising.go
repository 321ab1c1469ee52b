package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"

	"github.com/proof-of-capital/poc-chain/metrics"
	"github.com/proof-of-capital/poc-chain/pkg/bips"
	"github.com/proof-of-capital/poc-chain/x/pool/types"
)

// Deposit accepts main collateral into the fundraising pool. The depositor
// must own a vault; the USD value is fixed at the oracle price of the moment.
// Coins are pulled into custody before any ledger mutation.
func (k *Keeper) Deposit(ctx sdk.Context, depositor string, amount math.Int) (*types.DepositRecord, error) {
	pool := k.GetPool(ctx)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	if pool.Stage != types.StageFundraising {
		return nil, types.ErrInvalidStage
	}
	if ctx.BlockTime().Unix() >= pool.FundraisingDeadline {
		return nil, types.ErrDeadlinePassed
	}
	if !amount.IsPositive() {
		return nil, types.ErrInvalidAmount
	}
	if amount.LT(pool.MinDeposit) {
		return nil, types.ErrBelowMinDeposit
	}

	depositorAddr, err := sdk.AccAddressFromBech32(depositor)
	if err != nil {
		return nil, types.ErrInvalidAddress
	}
	vault := k.vaultKeeper.GetVaultByOwner(ctx, depositor)
	if vault == nil {
		return nil, types.ErrUnauthorized
	}

	price, ok := k.oracle.Price(ctx, pool.MainCollateralDenom)
	if !ok || !price.IsPositive() {
		return nil, types.ErrOracleUnavailable
	}
	usd := price.MulInt(amount)

	coins := sdk.NewCoins(sdk.NewCoin(pool.MainCollateralDenom, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, depositorAddr, types.ModuleName, coins); err != nil {
		return nil, err
	}

	// The vault keeper enforces the per-vault deposit limit.
	if err := k.vaultKeeper.RecordFundraisingDeposit(ctx, vault.ID, amount, usd); err != nil {
		return nil, err
	}

	pool.TotalCollectedMainCollateral = pool.TotalCollectedMainCollateral.Add(amount)
	pool.TotalDepositedUSD = pool.TotalDepositedUSD.Add(usd)
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	// Collateral in custody during fundraising is fully accounted: none of
	// it is distributable profit.
	k.addAccounted(ctx, pool.MainCollateralDenom, amount)

	rec := &types.DepositRecord{
		RecordID:  uuid.New().String(),
		VaultID:   vault.ID,
		Amount:    amount,
		USDValue:  usd,
		UnitPrice: price,
		Timestamp: ctx.BlockTime().Unix(),
	}
	k.setDepositRecord(ctx, rec)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"fundraising_deposit",
			sdk.NewAttribute("record_id", rec.RecordID),
			sdk.NewAttribute("depositor", depositor),
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("usd_value", usd.String()),
		),
	)
	metrics.GetCollector().RecordDeposit(decGauge(usd))
	k.logger.Info("Fundraising deposit",
		"vault_id", vault.ID,
		"amount", amount.String(),
		"usd_value", usd.String(),
		"total_usd", pool.TotalDepositedUSD.String(),
	)
	return rec, nil
}

// ExtendDeadline moves the fundraising deadline forward. A single extension
// is permitted over the pool's lifetime.
func (k *Keeper) ExtendDeadline(ctx sdk.Context, authority string, newDeadline int64) error {
	if authority != k.authority {
		return types.ErrUnauthorized
	}
	pool := k.GetPool(ctx)
	if pool == nil {
		return types.ErrPoolNotFound
	}
	if pool.Stage != types.StageFundraising {
		return types.ErrInvalidStage
	}
	if pool.DeadlineExtended {
		return types.ErrDeadlineAlreadyMoved
	}
	if newDeadline <= pool.FundraisingDeadline {
		return types.ErrInvalidConfig
	}

	pool.FundraisingDeadline = newDeadline
	pool.DeadlineExtended = true
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	k.logger.Info("Fundraising deadline extended", "new_deadline", newDeadline)
	return nil
}

// FinalizeFundraisingCollection closes collection and enters the exchange
// stage. Legal once the USD target is reached; a pool past its deadline with
// the target missed can only be cancelled.
func (k *Keeper) FinalizeFundraisingCollection(ctx sdk.Context, authority string) error {
	if authority != k.authority {
		return types.ErrUnauthorized
	}
	pool := k.GetPool(ctx)
	if pool == nil {
		return types.ErrPoolNotFound
	}
	if pool.Stage != types.StageFundraising {
		return types.ErrInvalidStage
	}
	if !pool.TargetReached() {
		return types.ErrTargetNotReached
	}
	return k.transition(ctx, pool, types.StageFundraisingExchange)
}

// RecordExchange swaps a slice of the collected collateral into the reward
// asset through a whitelisted router. Ledger totals update on the amount the
// router actually delivered.
func (k *Keeper) RecordExchange(ctx sdk.Context, authority, router string, swapType uint32, swapData []byte, amountIn, minOut math.Int) (math.Int, error) {
	if authority != k.authority {
		return math.ZeroInt(), types.ErrUnauthorized
	}
	pool := k.GetPool(ctx)
	if pool == nil {
		return math.ZeroInt(), types.ErrPoolNotFound
	}
	if pool.Stage != types.StageFundraisingExchange {
		return math.ZeroInt(), types.ErrInvalidStage
	}
	if !k.IsRegisteredRouter(ctx, router) {
		return math.ZeroInt(), types.ErrUnauthorized
	}
	if !amountIn.IsPositive() || amountIn.GT(pool.TotalCollectedMainCollateral) {
		return math.ZeroInt(), types.ErrInvalidAmount
	}

	// Debit the collateral ledger before the router runs.
	pool.TotalCollectedMainCollateral = pool.TotalCollectedMainCollateral.Sub(amountIn)
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)
	k.subAccounted(ctx, pool.MainCollateralDenom, amountIn)

	received, err := k.router.Execute(ctx, router, swapType, swapData, pool.MainCollateralDenom, pool.RewardDenom, amountIn, minOut)
	if err != nil {
		return math.ZeroInt(), err
	}
	if received.LT(minOut) {
		return math.ZeroInt(), types.ErrInvalidAmount
	}

	pool = k.GetPool(ctx)
	pool.TotalExchangedReward = pool.TotalExchangedReward.Add(received)
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)
	k.addAccounted(ctx, pool.RewardDenom, received)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"fundraising_exchange",
			sdk.NewAttribute("router", router),
			sdk.NewAttribute("amount_in", amountIn.String()),
			sdk.NewAttribute("received", received.String()),
		),
	)
	k.logger.Info("Collateral exchanged for reward asset",
		"amount_in", amountIn.String(),
		"received", received.String(),
		"total_exchanged", pool.TotalExchangedReward.String(),
	)
	return received, nil
}

// FinalizeExchange fixes the realized share price, retroactively mints shares
// to every depositor vault in proportion to deposited USD, mints the operator
// infrastructure allotment, and moves to WaitingForLP.
func (k *Keeper) FinalizeExchange(ctx sdk.Context, authority string) error {
	if authority != k.authority {
		return types.ErrUnauthorized
	}
	pool := k.GetPool(ctx)
	if pool == nil {
		return types.ErrPoolNotFound
	}
	if pool.Stage != types.StageFundraisingExchange {
		return types.ErrInvalidStage
	}
	if !pool.TotalExchangedReward.IsPositive() {
		return types.ErrNothingExchanged
	}
	if pool.TotalCollectedMainCollateral.IsPositive() {
		return types.ErrCollateralOutstanding
	}

	// Realized price: USD paid per unit of reward asset acquired. Shares are
	// reward-asset denominated, so the total participant mint equals the
	// exchanged amount.
	sharePrice := pool.TotalDepositedUSD.QuoInt(pool.TotalExchangedReward)
	pool.RealizedSharePrice = sharePrice

	totalMinted := math.ZeroInt()
	for _, vault := range k.vaultKeeper.GetAllVaults(ctx) {
		if !vault.DepositedUSD.IsPositive() {
			continue
		}
		shares := vault.DepositedUSD.Quo(sharePrice).TruncateInt()
		if !shares.IsPositive() {
			continue
		}
		if err := k.vaultKeeper.AddShares(ctx, vault.ID, shares); err != nil {
			return err
		}
		totalMinted = totalMinted.Add(shares)
	}
	if !totalMinted.IsPositive() {
		return types.ErrNothingExchanged
	}

	// Operator infrastructure allotment, minted on top of the participant
	// supply. The operator must hold a vault.
	operatorShares := bips.Of(totalMinted, pool.InfrastructureBips)
	if operatorShares.IsPositive() {
		operatorVault := k.vaultKeeper.GetVaultByOwner(ctx, pool.OperatorRecipient)
		if operatorVault == nil {
			return types.ErrInvalidConfig
		}
		if err := k.vaultKeeper.AddShares(ctx, operatorVault.ID, operatorShares); err != nil {
			return err
		}
	}

	k.SetPool(ctx, pool)
	if err := k.transition(ctx, pool, types.StageWaitingForLP); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"fundraising_finalized",
			sdk.NewAttribute("share_price", sharePrice.String()),
			sdk.NewAttribute("participant_shares", totalMinted.String()),
			sdk.NewAttribute("operator_shares", operatorShares.String()),
		),
	)
	k.logger.Info("Exchange finalized",
		"share_price", sharePrice.String(),
		"participant_shares", totalMinted.String(),
		"operator_shares", operatorShares.String(),
	)
	return nil
}

// CancelFundraising aborts the pool when the deadline passed with the target
// missed. Anyone may call; the precondition is objective.
func (k *Keeper) CancelFundraising(ctx sdk.Context, caller string) error {
	pool := k.GetPool(ctx)
	if pool == nil {
		return types.ErrPoolNotFound
	}
	if pool.Stage != types.StageFundraising {
		return types.ErrInvalidStage
	}
	if ctx.BlockTime().Unix() < pool.FundraisingDeadline {
		return types.ErrDeadlineNotReached
	}
	if pool.TargetReached() {
		return types.ErrTargetReached
	}
	if err := k.transition(ctx, pool, types.StageFundraisingCancelled); err != nil {
		return err
	}
	k.logger.Info("Fundraising cancelled", "caller", caller, "collected_usd", pool.TotalDepositedUSD.String())
	return nil
}

// WithdrawCancelled refunds the caller's vault its full collateral deposit
// after cancellation. Funds never left custody, so the refund is exact.
func (k *Keeper) WithdrawCancelled(ctx sdk.Context, caller string) (math.Int, error) {
	pool := k.GetPool(ctx)
	if pool == nil {
		return math.ZeroInt(), types.ErrPoolNotFound
	}
	if pool.Stage != types.StageFundraisingCancelled {
		return math.ZeroInt(), types.ErrInvalidStage
	}

	callerAddr, err := sdk.AccAddressFromBech32(caller)
	if err != nil {
		return math.ZeroInt(), types.ErrInvalidAddress
	}
	vault := k.vaultKeeper.GetVaultByOwner(ctx, caller)
	if vault == nil {
		return math.ZeroInt(), types.ErrUnauthorized
	}
	refund := vault.MainCollateralDeposit
	if !refund.IsPositive() {
		return math.ZeroInt(), types.ErrNothingToWithdraw
	}

	// Zero the vault's deposit and shrink the ledger before paying out.
	if err := k.vaultKeeper.ClearFundraisingDeposit(ctx, vault.ID); err != nil {
		return math.ZeroInt(), err
	}
	pool.TotalCollectedMainCollateral = pool.TotalCollectedMainCollateral.Sub(refund)
	pool.TotalDepositedUSD = pool.TotalDepositedUSD.Sub(vault.DepositedUSD)
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)
	k.subAccounted(ctx, pool.MainCollateralDenom, refund)

	coins := sdk.NewCoins(sdk.NewCoin(pool.MainCollateralDenom, refund))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, callerAddr, coins); err != nil {
		return math.ZeroInt(), err
	}

	k.logger.Info("Cancelled fundraising refund", "vault_id", vault.ID, "refund", refund.String())
	return refund, nil
}
