package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/proof-of-capital/poc-chain/metrics"
	"github.com/proof-of-capital/poc-chain/pkg/bips"
	"github.com/proof-of-capital/poc-chain/x/curve/types"
)

// QuoteSale walks the curve forward from the cached level and returns the
// proceeds for selling amount units, without mutating state. The returned
// orderbook carries the post-sale cache so SellReward can commit it directly.
func (k *Keeper) QuoteSale(ctx sdk.Context, amount math.Int) (*types.Orderbook, *types.SaleFill, error) {
	ob := k.GetOrderbook(ctx)
	if ob == nil {
		return nil, nil, types.ErrOrderbookNotFound
	}
	if !amount.IsPositive() {
		return nil, nil, types.ErrInvalidAmount
	}
	if amount.GT(ob.SupplyRemaining()) {
		return nil, nil, types.ErrSupplyExceeded
	}

	startLevel := ob.CurrentLevel
	remaining := amount
	proceeds := math.LegacyZeroDec()

	// Consume the cached level, advancing (and re-caching) only when a
	// level is exhausted. Levels already passed are never re-derived.
	for remaining.IsPositive() {
		take := ob.LevelRemaining()
		if take.GT(remaining) {
			take = remaining
		}
		proceeds = proceeds.Add(ob.CurrentLevelPrice.MulInt(take))
		ob.CurrentLevelSold = ob.CurrentLevelSold.Add(take)
		remaining = remaining.Sub(take)

		if ob.LevelRemaining().IsZero() {
			ob.AdvanceLevel()
		}
	}

	ob.TotalSold = ob.TotalSold.Add(amount)
	ob.UpdatedAt = ctx.BlockTime().Unix()

	fill := &types.SaleFill{
		UnitsSold:     amount,
		Proceeds:      proceeds.TruncateInt(),
		LevelsCrossed: ob.CurrentLevel - startLevel,
		AvgPrice:      proceeds.QuoInt(amount),
	}
	return ob, fill, nil
}

// SellReward sells reward-asset units to the pool at the curve price. The
// seller's units move into the reserve, the swap collaborator converts those
// same units into the requested sellable collateral, and the seller is paid
// the curve proceeds out of the conversion. Whatever the venue returns above
// the curve proceeds stays in the reserve as distributable profit. All ledger
// mutations commit before the external transfer and swap calls run.
func (k *Keeper) SellReward(ctx context.Context, seller string, amount math.Int, collateralDenom, router string, swapType uint32, swapData []byte, minOut math.Int) (*types.SaleFill, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if !k.poolKeeper.IsOperating(sdkCtx) {
		return nil, types.ErrPoolNotOperating
	}
	if !k.poolKeeper.IsSellableToken(sdkCtx, collateralDenom) {
		return nil, types.ErrTokenNotSellable
	}
	if !k.poolKeeper.IsRegisteredRouter(sdkCtx, router) {
		return nil, types.ErrRouterNotRegistered
	}
	sellerAddr, err := sdk.AccAddressFromBech32(seller)
	if err != nil {
		return nil, err
	}

	ob, fill, err := k.QuoteSale(sdkCtx, amount)
	if err != nil {
		return nil, err
	}

	expected, err := k.oracleExpectedOutput(sdkCtx, ob.Params.RewardDenom, collateralDenom, amount)
	if err != nil {
		return nil, err
	}

	// Commit the advanced cache before any external call can observe state.
	k.SetOrderbook(sdkCtx, ob)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"curve_sale",
			sdk.NewAttribute("seller", seller),
			sdk.NewAttribute("units", fill.UnitsSold.String()),
			sdk.NewAttribute("proceeds", fill.Proceeds.String()),
			sdk.NewAttribute("avg_price", fill.AvgPrice.String()),
			sdk.NewAttribute("level", strconv.FormatUint(ob.CurrentLevel, 10)),
			sdk.NewAttribute("total_sold", ob.TotalSold.String()),
		),
	)

	reserve := k.poolKeeper.ReserveModuleName()
	inCoins := sdk.NewCoins(sdk.NewCoin(ob.Params.RewardDenom, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, sellerAddr, reserve, inCoins); err != nil {
		return nil, err
	}

	received, err := k.router.Execute(sdkCtx, router, swapType, swapData, ob.Params.RewardDenom, collateralDenom, amount, minOut)
	if err != nil {
		return nil, err
	}
	if received.LT(minOut) {
		return nil, types.ErrInsufficientOutput
	}
	// The venue output funds the seller's payout; anything less would dip
	// into collateral already assigned to holders.
	if received.LT(fill.Proceeds) {
		return nil, types.ErrInsufficientOutput
	}
	if deviationExceeded(received, expected, ob.Params.MaxOracleDeviationBips) {
		return nil, types.ErrPriceDeviation
	}

	outCoins := sdk.NewCoins(sdk.NewCoin(collateralDenom, fill.Proceeds))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, reserve, sellerAddr, outCoins); err != nil {
		return nil, err
	}

	collector := metrics.GetCollector()
	collector.RecordCurveSale(collateralDenom, gaugeInt(fill.Proceeds), ob.CurrentLevel, gaugeDec(ob.CurrentLevelPrice), gaugeInt(ob.TotalSold))
	collector.RecordOracleDeviation(collateralDenom, float64(bips.Ratio(received.Sub(expected).Abs(), expected)))

	k.logger.Info("Reward sold on curve",
		"seller", seller,
		"units", fill.UnitsSold.String(),
		"proceeds", fill.Proceeds.String(),
		"received", received.String(),
		"levels_crossed", fill.LevelsCrossed,
	)
	return fill, nil
}

// oracleExpectedOutput converts amount of rewardDenom into collateralDenom
// units at oracle prices.
func (k *Keeper) oracleExpectedOutput(ctx sdk.Context, rewardDenom, collateralDenom string, amount math.Int) (math.Int, error) {
	rewardPrice, ok := k.oracle.Price(ctx, rewardDenom)
	if !ok || !rewardPrice.IsPositive() {
		return math.ZeroInt(), types.ErrOracleUnavailable
	}
	collateralPrice, ok := k.oracle.Price(ctx, collateralDenom)
	if !ok || !collateralPrice.IsPositive() {
		return math.ZeroInt(), types.ErrOracleUnavailable
	}
	return rewardPrice.MulInt(amount).Quo(collateralPrice).TruncateInt(), nil
}

// deviationExceeded reports whether |received − expected| exceeds the allowed
// fraction of expected.
func deviationExceeded(received, expected math.Int, maxBips int64) bool {
	if expected.IsZero() {
		return false
	}
	diff := received.Sub(expected).Abs()
	return diff.GT(bips.Of(expected, maxBips))
}

// gaugeInt converts a ledger amount to a metrics gauge value.
func gaugeInt(v math.Int) float64 {
	f, err := math.LegacyNewDecFromInt(v).Float64()
	if err != nil {
		return 0
	}
	return f
}

// gaugeDec converts a decimal to a metrics gauge value.
func gaugeDec(d math.LegacyDec) float64 {
	f, err := d.Float64()
	if err != nil {
		return 0
	}
	return f
}
