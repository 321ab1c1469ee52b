package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"

	"github.com/proof-of-capital/poc-chain/metrics"
	"github.com/proof-of-capital/poc-chain/pkg/bips"
	"github.com/proof-of-capital/poc-chain/x/pool/types"
)

// DistributeProfit runs the waterfall over the unaccounted balance of token:
// royalty off the top, then the operator's creator share, then the exit
// queue's pro-rata slice paid out immediately, then the rest accrued to
// holders through the reward-per-share accumulator. amount caps the pass;
// zero or nil distributes everything unaccounted. Anyone may call: the split
// is fixed by configuration, not by the caller.
func (k *Keeper) DistributeProfit(ctx sdk.Context, caller, token string, amount math.Int) (*types.DistributionRecord, error) {
	pool := k.GetPool(ctx)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	if !pool.Stage.IsOperating() {
		return nil, types.ErrInvalidStage
	}
	if !k.IsDistributable(ctx, token) {
		return nil, types.ErrTokenNotDistributable
	}

	unaccounted := k.UnaccountedBalance(ctx, token)
	if !unaccounted.IsPositive() {
		return nil, types.ErrNothingToDistribute
	}
	if !amount.IsNil() && amount.IsPositive() && amount.LT(unaccounted) {
		unaccounted = amount
	}

	royalty := bips.Of(unaccounted, pool.RoyaltyBips)
	afterRoyalty := unaccounted.Sub(royalty)
	operatorShare := bips.Of(afterRoyalty, pool.CreatorProfitBips)
	remainder := afterRoyalty.Sub(operatorShare)

	supply := k.vaultKeeper.GetTotalSharesSupply(ctx)

	// Exit queue first: queued vaults take their slice as an immediate cash
	// payout instead of an accrual. The slice is a dividend, not a
	// redemption: entries stay queued with their snapshots intact until a
	// funded allocation round redeems them.
	exitPortion := math.ZeroInt()
	var payouts []exitPayout
	if pool.TotalExitQueueShares.IsPositive() && remainder.IsPositive() && supply.IsPositive() {
		exitPortion = remainder.Mul(pool.TotalExitQueueShares).Quo(supply)
	}
	if exitPortion.IsPositive() {
		queuedSnapshot := pool.TotalExitQueueShares
		paid := math.ZeroInt()
		for _, entry := range k.GetExitQueueEntries(ctx) {
			vault := k.vaultKeeper.GetVault(ctx, entry.VaultID)
			if vault == nil {
				continue
			}
			pay := exitPortion.Mul(entry.Shares).Quo(queuedSnapshot)
			if !pay.IsPositive() {
				continue
			}
			payouts = append(payouts, exitPayout{owner: vault.Owner, denom: token, amount: pay})
			paid = paid.Add(pay)
		}
		// Truncation dust stays unaccounted for the next pass.
		exitPortion = paid
	}

	// Holder accrual excludes the queued shares: queued vaults already took
	// their slice as an immediate payout.
	holderPortion := remainder.Sub(exitPortion)
	holderSupply := supply.Sub(pool.TotalExitQueueShares)
	if holderPortion.IsPositive() && holderSupply.IsPositive() {
		perShare := math.LegacyNewDecFromInt(holderPortion).QuoInt(holderSupply)
		rps := k.GetRewardPerShare(ctx, token).Add(perShare)
		k.setRewardPerShare(ctx, token, rps)
		k.addAccounted(ctx, token, holderPortion)

		// Queued vaults sit out the accumulator: pin their indexes to the
		// new mark so nothing double-accrues to them.
		for _, entry := range k.GetExitQueueEntries(ctx) {
			k.setVaultRewardIndex(ctx, entry.VaultID, token, rps)
		}
	} else {
		holderPortion = math.ZeroInt()
	}

	rec := &types.DistributionRecord{
		RecordID:      uuid.New().String(),
		Token:         token,
		Unaccounted:   unaccounted,
		Royalty:       royalty,
		OperatorShare: operatorShare,
		ExitQueuePaid: exitPortion,
		HolderAccrued: holderPortion,
		Timestamp:     ctx.BlockTime().Unix(),
	}
	k.setDistributionRecord(ctx, rec)
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)
	k.evaluateClosingThreshold(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"profit_distributed",
			sdk.NewAttribute("record_id", rec.RecordID),
			sdk.NewAttribute("token", token),
			sdk.NewAttribute("total", unaccounted.String()),
			sdk.NewAttribute("royalty", royalty.String()),
			sdk.NewAttribute("operator", operatorShare.String()),
			sdk.NewAttribute("exit_queue", exitPortion.String()),
			sdk.NewAttribute("holders", holderPortion.String()),
		),
	)

	// External transfers last: royalty, operator, then exit payouts.
	if royalty.IsPositive() {
		if err := k.payOut(ctx, pool.RoyaltyRecipient, token, royalty); err != nil {
			return nil, err
		}
	}
	if operatorShare.IsPositive() {
		if err := k.payOut(ctx, pool.OperatorRecipient, token, operatorShare); err != nil {
			return nil, err
		}
	}
	for _, p := range payouts {
		if err := k.payOut(ctx, p.owner, token, p.amount); err != nil {
			return nil, err
		}
	}

	metrics.GetCollector().RecordDistribution(token, intGauge(unaccounted), intGauge(royalty), intGauge(operatorShare))
	k.logger.Info("Profit distributed",
		"token", token,
		"total", unaccounted.String(),
		"royalty", royalty.String(),
		"operator", operatorShare.String(),
		"exit_queue", exitPortion.String(),
		"holders", holderPortion.String(),
		"caller", caller,
	)
	return rec, nil
}

// payOut sends amount of denom from pool custody to a bech32 recipient.
func (k *Keeper) payOut(ctx sdk.Context, recipient, denom string, amount math.Int) error {
	addr, err := sdk.AccAddressFromBech32(recipient)
	if err != nil {
		return types.ErrInvalidAddress
	}
	coins := sdk.NewCoins(sdk.NewCoin(denom, amount))
	return k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, addr, coins)
}
