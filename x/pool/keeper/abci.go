package keeper

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/proof-of-capital/poc-chain/x/pool/types"
)

// EndBlocker is called at the end of each block to keep the lifecycle in sync
// with the ledger: re-evaluate the closing threshold and, when the deadline
// passes with the target missed, cancel fundraising automatically.
func (k *Keeper) EndBlocker(ctx sdk.Context) error {
	pool := k.GetPool(ctx)
	if pool == nil || pool.Stage.IsTerminal() {
		return nil
	}

	blockHeight := ctx.BlockHeight()
	start := time.Now()

	switch {
	case pool.Stage == types.StageFundraising:
		if ctx.BlockTime().Unix() >= pool.FundraisingDeadline && !pool.TargetReached() {
			if err := k.transition(ctx, pool, types.StageFundraisingCancelled); err == nil {
				k.logger.Info("Fundraising auto-cancelled at deadline",
					"collected_usd", pool.TotalDepositedUSD.String(),
					"target_usd", pool.FundraisingTargetUSD.String(),
				)
			}
		}

	case pool.Stage.IsOperating():
		k.evaluateClosingThreshold(ctx, pool)
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_endblock",
			sdk.NewAttribute("block_height", math.NewInt(blockHeight).String()),
			sdk.NewAttribute("stage", pool.Stage.String()),
			sdk.NewAttribute("duration_ms", math.NewInt(time.Since(start).Milliseconds()).String()),
		),
	)
	return nil
}

// intGauge converts a ledger amount to a gauge value. Precision loss past
// float range is acceptable for monitoring.
func intGauge(v math.Int) float64 {
	f, err := math.LegacyNewDecFromInt(v).Float64()
	if err != nil {
		return 0
	}
	return f
}

// decGauge converts a decimal to a gauge value.
func decGauge(d math.LegacyDec) float64 {
	f, err := d.Float64()
	if err != nil {
		return 0
	}
	return f
}
