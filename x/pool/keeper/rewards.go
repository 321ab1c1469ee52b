package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/proof-of-capital/poc-chain/metrics"
	"github.com/proof-of-capital/poc-chain/x/pool/types"
)

// PendingRewards returns the vault's accrued, unclaimed rewards in token.
func (k *Keeper) PendingRewards(ctx sdk.Context, vaultID uint64, token string) math.Int {
	vault := k.vaultKeeper.GetVault(ctx, vaultID)
	if vault == nil || !vault.Shares.IsPositive() {
		return math.ZeroInt()
	}
	rps := k.GetRewardPerShare(ctx, token)
	index := k.GetVaultRewardIndex(ctx, vaultID, token)
	return rps.Sub(index).MulInt(vault.Shares).TruncateInt()
}

// flushPendingRewards settles a vault against every distributable token's
// accumulator, advancing its indexes and debiting the accounted ledger. The
// returned payouts are not sent; callers transfer after their own mutations.
func (k *Keeper) flushPendingRewards(ctx sdk.Context, vaultID uint64, owner string) []exitPayout {
	var payouts []exitPayout
	for _, token := range k.DistributableTokens(ctx) {
		pending := k.PendingRewards(ctx, vaultID, token)
		k.setVaultRewardIndex(ctx, vaultID, token, k.GetRewardPerShare(ctx, token))
		if !pending.IsPositive() {
			continue
		}
		k.subAccounted(ctx, token, pending)
		payouts = append(payouts, exitPayout{owner: owner, amount: pending, denom: token})
	}
	return payouts
}

// ClaimRewards settles the caller's vault against the reward-per-share
// accumulator for token and pays out the accrued amount. The vault's index
// advances to the current accumulator value; truncation dust stays accounted
// until the share position changes.
func (k *Keeper) ClaimRewards(ctx sdk.Context, caller, token string) (math.Int, error) {
	pool := k.GetPool(ctx)
	if pool == nil {
		return math.ZeroInt(), types.ErrPoolNotFound
	}
	vault := k.vaultKeeper.GetVaultByOwner(ctx, caller)
	if vault == nil {
		return math.ZeroInt(), types.ErrUnauthorized
	}

	claimable := k.PendingRewards(ctx, vault.ID, token)
	if !claimable.IsPositive() {
		return math.ZeroInt(), types.ErrNothingToClaim
	}

	k.setVaultRewardIndex(ctx, vault.ID, token, k.GetRewardPerShare(ctx, token))
	k.subAccounted(ctx, token, claimable)

	if err := k.payOut(ctx, vault.Owner, token, claimable); err != nil {
		return math.ZeroInt(), err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"rewards_claimed",
			sdk.NewAttribute("vault_id", math.NewIntFromUint64(vault.ID).String()),
			sdk.NewAttribute("token", token),
			sdk.NewAttribute("amount", claimable.String()),
		),
	)
	metrics.GetCollector().RecordClaim(token, intGauge(claimable))
	k.logger.Info("Rewards claimed",
		"vault_id", vault.ID,
		"token", token,
		"amount", claimable.String(),
	)
	return claimable, nil
}
