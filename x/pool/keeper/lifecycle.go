package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/proof-of-capital/poc-chain/metrics"
	"github.com/proof-of-capital/poc-chain/pkg/bips"
	"github.com/proof-of-capital/poc-chain/x/pool/types"
)

// transition moves the pool to the next stage, checking the edge against the
// lifecycle machine and emitting the stage-change event.
func (k *Keeper) transition(ctx sdk.Context, pool *types.PoolState, next types.Stage) error {
	if !pool.Stage.CanTransitionTo(next) {
		return types.ErrInvalidTransition
	}
	prev := pool.Stage
	pool.Stage = next
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_stage_changed",
			sdk.NewAttribute("from", prev.String()),
			sdk.NewAttribute("to", next.String()),
		),
	)
	metrics.GetCollector().RecordStageTransition(prev.String(), next.String(), int(next))
	k.logger.Info("Pool stage changed", "from", prev.String(), "to", next.String())
	return nil
}

// ConfirmLPProvisioned acknowledges that the acquired reward asset has been
// placed as liquidity and opens the pool for operation.
func (k *Keeper) ConfirmLPProvisioned(ctx sdk.Context, authority string) error {
	if authority != k.authority {
		return types.ErrUnauthorized
	}
	pool := k.GetPool(ctx)
	if pool == nil {
		return types.ErrPoolNotFound
	}
	if pool.Stage != types.StageWaitingForLP {
		return types.ErrInvalidStage
	}
	return k.transition(ctx, pool, types.StageActive)
}

// BeginDissolution starts winding the pool down. Legal only from Closing:
// the exit queue must already hold enough of the supply.
func (k *Keeper) BeginDissolution(ctx sdk.Context, authority string) error {
	if authority != k.authority {
		return types.ErrUnauthorized
	}
	pool := k.GetPool(ctx)
	if pool == nil {
		return types.ErrPoolNotFound
	}
	if pool.Stage != types.StageClosing {
		return types.ErrInvalidStage
	}
	return k.transition(ctx, pool, types.StageWaitingForLPDissolution)
}

// ConfirmDissolved finalizes dissolution once every liquidity position is
// closed and the position lock has expired.
func (k *Keeper) ConfirmDissolved(ctx sdk.Context, authority string) error {
	if authority != k.authority {
		return types.ErrUnauthorized
	}
	pool := k.GetPool(ctx)
	if pool == nil {
		return types.ErrPoolNotFound
	}
	if pool.Stage != types.StageWaitingForLPDissolution {
		return types.ErrInvalidStage
	}
	if k.positionKeeper != nil {
		if k.positionKeeper.HasActivePositions(ctx) {
			return types.ErrPositionsStillOpen
		}
		if lockEnd := k.positionKeeper.LockExpiry(ctx); lockEnd > ctx.BlockTime().Unix() {
			return types.ErrPositionsStillOpen
		}
	}
	return k.transition(ctx, pool, types.StageDissolved)
}

// evaluateClosingThreshold flips Active→Closing when the queued fraction of
// the share supply reaches the dynamic threshold, and Closing→Active when it
// falls back below. Called after every queue or supply mutation.
func (k *Keeper) evaluateClosingThreshold(ctx sdk.Context, pool *types.PoolState) {
	if pool.Stage != types.StageActive && pool.Stage != types.StageClosing {
		return
	}

	supply := k.vaultKeeper.GetTotalSharesSupply(ctx)
	queuedBips := bips.Ratio(pool.TotalExitQueueShares, supply)
	threshold := pool.ClosingThresholdBips()

	switch {
	case pool.Stage == types.StageActive && queuedBips >= threshold:
		if err := k.transition(ctx, pool, types.StageClosing); err == nil {
			k.logger.Info("Exit queue crossed closing threshold",
				"queued_bips", queuedBips,
				"threshold_bips", threshold,
			)
		}
	case pool.Stage == types.StageClosing && queuedBips < threshold:
		if err := k.transition(ctx, pool, types.StageActive); err == nil {
			k.logger.Info("Exit queue fell below closing threshold",
				"queued_bips", queuedBips,
				"threshold_bips", threshold,
			)
		}
	}
}
