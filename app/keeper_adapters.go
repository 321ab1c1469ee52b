package app

import (
	"fmt"
	"sync"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"

	"github.com/proof-of-capital/poc-chain/metrics"
)

// SwapVenueModuleName is the module account standing in for the external
// trading venue. Exchange proceeds are drawn from its balance, so it must be
// funded at genesis with the reward asset.
const SwapVenueModuleName = "swapvenue"

// staticOracle is the MVP price source: a fixed in-memory price table seeded
// at startup and adjustable at runtime. Prices are quoted in USD.
type staticOracle struct {
	mu     sync.RWMutex
	prices map[string]math.LegacyDec
}

func newStaticOracle(seed map[string]math.LegacyDec) *staticOracle {
	prices := make(map[string]math.LegacyDec, len(seed))
	for denom, price := range seed {
		prices[denom] = price
	}
	return &staticOracle{prices: prices}
}

// Price returns the USD price for denom, or false when no feed exists.
func (o *staticOracle) Price(ctx sdk.Context, denom string) (math.LegacyDec, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	price, ok := o.prices[denom]
	if !ok || !price.IsPositive() {
		return math.LegacyZeroDec(), false
	}

	metrics.GetCollector().RecordOraclePrice(denom, mustFloat(price))
	return price, true
}

// SetPrice updates the feed for denom. Non-positive prices remove the feed.
func (o *staticOracle) SetPrice(denom string, price math.LegacyDec) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !price.IsPositive() {
		delete(o.prices, denom)
		return
	}
	o.prices[denom] = price
}

// swapVenueRouter executes swaps against the swapvenue module account at
// oracle prices: tokenIn moves from the caller's reserve account to the venue,
// tokenOut moves back. The venue's tokenOut balance bounds the trade.
type swapVenueRouter struct {
	bankKeeper bankkeeper.BaseKeeper
	oracle     *staticOracle
	reserve    string
}

func newSwapVenueRouter(bankKeeper bankkeeper.BaseKeeper, oracle *staticOracle, reserveModule string) *swapVenueRouter {
	return &swapVenueRouter{
		bankKeeper: bankKeeper,
		oracle:     oracle,
		reserve:    reserveModule,
	}
}

// Execute swaps amountIn of tokenIn for tokenOut at the oracle cross rate.
// The router argument identifies the venue for audit purposes only; all MVP
// routes settle against the swapvenue module account.
func (r *swapVenueRouter) Execute(ctx sdk.Context, router string, swapType uint32, swapData []byte, tokenIn, tokenOut string, amountIn, minOut math.Int) (math.Int, error) {
	if !amountIn.IsPositive() {
		return math.ZeroInt(), fmt.Errorf("swap amount must be positive")
	}

	priceIn, ok := r.oracle.Price(ctx, tokenIn)
	if !ok {
		return math.ZeroInt(), fmt.Errorf("no price feed for %s", tokenIn)
	}
	priceOut, ok := r.oracle.Price(ctx, tokenOut)
	if !ok {
		return math.ZeroInt(), fmt.Errorf("no price feed for %s", tokenOut)
	}

	amountOut := math.LegacyNewDecFromInt(amountIn).Mul(priceIn).Quo(priceOut).TruncateInt()
	if amountOut.LT(minOut) {
		return math.ZeroInt(), fmt.Errorf("swap output %s below minimum %s", amountOut, minOut)
	}

	venueAddr := authtypes.NewModuleAddress(SwapVenueModuleName)
	available := r.bankKeeper.GetBalance(ctx, venueAddr, tokenOut)
	if available.Amount.LT(amountOut) {
		return math.ZeroInt(), fmt.Errorf("venue holds %s %s, need %s", available.Amount, tokenOut, amountOut)
	}

	if err := r.bankKeeper.SendCoinsFromModuleToModule(ctx, r.reserve, SwapVenueModuleName,
		sdk.NewCoins(sdk.NewCoin(tokenIn, amountIn))); err != nil {
		return math.ZeroInt(), err
	}
	if err := r.bankKeeper.SendCoinsFromModuleToModule(ctx, SwapVenueModuleName, r.reserve,
		sdk.NewCoins(sdk.NewCoin(tokenOut, amountOut))); err != nil {
		return math.ZeroInt(), err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"swap_executed",
			sdk.NewAttribute("router", router),
			sdk.NewAttribute("token_in", tokenIn),
			sdk.NewAttribute("token_out", tokenOut),
			sdk.NewAttribute("amount_in", amountIn.String()),
			sdk.NewAttribute("amount_out", amountOut.String()),
		),
	)

	return amountOut, nil
}

// lpPositionTracker answers the dissolution gate. The MVP chain holds no
// external liquidity positions, so dissolution is never blocked by one.
type lpPositionTracker struct{}

func (lpPositionTracker) HasActivePositions(ctx sdk.Context) bool { return false }

func (lpPositionTracker) LockExpiry(ctx sdk.Context) int64 { return 0 }

func mustFloat(d math.LegacyDec) float64 {
	f, err := d.Float64()
	if err != nil {
		return 0
	}
	return f
}
