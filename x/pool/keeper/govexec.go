package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/proof-of-capital/poc-chain/pkg/bips"
	"github.com/proof-of-capital/poc-chain/x/pool/types"
)

// ExecuteAction is the single privileged entry point for governance. The
// action is a closed tagged union; each variant dispatches to one keeper
// operation and unknown or malformed variants are rejected.
func (k *Keeper) ExecuteAction(ctx sdk.Context, authority string, action types.Action) error {
	if authority != k.authority {
		return types.ErrUnauthorized
	}

	var err error
	switch action.Type {
	case types.ActionSetProfitShares:
		if action.SetProfitShares == nil {
			return types.ErrUnknownAction
		}
		err = k.setProfitShares(ctx, *action.SetProfitShares)

	case types.ActionSetSellableToken:
		if action.SetSellableToken == nil {
			return types.ErrUnknownAction
		}
		err = k.applySellableToken(ctx, *action.SetSellableToken)

	case types.ActionSetRouter:
		if action.SetRouter == nil {
			return types.ErrUnknownAction
		}
		err = k.applyRouter(ctx, *action.SetRouter)

	case types.ActionSetDepositLimit:
		if action.SetDepositLimit == nil {
			return types.ErrUnknownAction
		}
		err = k.vaultKeeper.SetDepositLimit(ctx, k.authority, action.SetDepositLimit.VaultID, action.SetDepositLimit.NewLimit)

	case types.ActionSetRecipients:
		if action.SetRecipients == nil {
			return types.ErrUnknownAction
		}
		err = k.setRecipients(ctx, *action.SetRecipients)

	case types.ActionExtendDeadline:
		if action.ExtendDeadline == nil {
			return types.ErrUnknownAction
		}
		err = k.ExtendDeadline(ctx, authority, action.ExtendDeadline.NewDeadline)

	case types.ActionFundExitQueue:
		if action.FundExitQueue == nil {
			return types.ErrUnknownAction
		}
		_, err = k.FundExitQueue(ctx, authority, action.FundExitQueue.Amount)

	case types.ActionBeginDissolution:
		err = k.BeginDissolution(ctx, authority)

	case types.ActionConfirmDissolved:
		err = k.ConfirmDissolved(ctx, authority)

	default:
		return types.ErrUnknownAction
	}

	if err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"governance_action_executed",
			sdk.NewAttribute("action", string(action.Type)),
		),
	)
	k.logger.Info("Governance action executed", "action", string(action.Type))
	return nil
}

// setProfitShares rewrites the waterfall split. The royalty and creator cuts
// must leave something for holders; the DAO share moves the closing threshold.
func (k *Keeper) setProfitShares(ctx sdk.Context, a types.SetProfitSharesAction) error {
	if !bips.Valid(a.RoyaltyBips) || !bips.Valid(a.CreatorProfitBips) || !bips.Valid(a.DAOProfitBips) {
		return types.ErrInvalidConfig
	}
	if a.RoyaltyBips+a.CreatorProfitBips >= bips.BasisPoints {
		return types.ErrInvalidConfig
	}
	pool := k.GetPool(ctx)
	if pool == nil {
		return types.ErrPoolNotFound
	}

	pool.RoyaltyBips = a.RoyaltyBips
	pool.CreatorProfitBips = a.CreatorProfitBips
	pool.DAOProfitBips = a.DAOProfitBips
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)

	// The DAO share feeds the closing threshold; re-check it immediately.
	k.evaluateClosingThreshold(ctx, pool)
	return nil
}

func (k *Keeper) applySellableToken(ctx sdk.Context, a types.SetSellableTokenAction) error {
	if a.Denom == "" {
		return types.ErrInvalidConfig
	}
	pool := k.GetPool(ctx)
	if pool == nil {
		return types.ErrPoolNotFound
	}
	// The main collateral is permanently sellable.
	if a.Denom == pool.MainCollateralDenom && !a.Enable {
		return types.ErrInvalidConfig
	}
	k.setSellableToken(ctx, a.Denom, a.Enable)
	return nil
}

func (k *Keeper) applyRouter(ctx sdk.Context, a types.SetRouterAction) error {
	if a.Router == "" {
		return types.ErrInvalidConfig
	}
	k.setRouter(ctx, a.Router, a.Enable)
	return nil
}

func (k *Keeper) setRecipients(ctx sdk.Context, a types.SetRecipientsAction) error {
	if _, err := sdk.AccAddressFromBech32(a.RoyaltyRecipient); err != nil {
		return types.ErrInvalidAddress
	}
	if _, err := sdk.AccAddressFromBech32(a.OperatorRecipient); err != nil {
		return types.ErrInvalidAddress
	}
	pool := k.GetPool(ctx)
	if pool == nil {
		return types.ErrPoolNotFound
	}

	pool.RoyaltyRecipient = a.RoyaltyRecipient
	pool.OperatorRecipient = a.OperatorRecipient
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)
	return nil
}
