package keeper

import (
	"context"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/proof-of-capital/poc-chain/x/vault/types"
)

// Delegate moves the vault's own voting power (its economic share count) to
// another vault. Delegated-in power held by the source vault stays put.
func (k *Keeper) Delegate(ctx context.Context, caller string, vaultID, delegateID uint64) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	vault := k.GetVault(sdkCtx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	if caller != vault.Owner {
		return types.ErrUnauthorized
	}
	if vault.IsVotingPaused() {
		return types.ErrVotingPaused
	}
	if vault.IsDelegated() {
		return types.ErrAlreadyDelegated
	}
	if delegateID == vaultID {
		return types.ErrSelfDelegation
	}
	delegate := k.GetVault(sdkCtx, delegateID)
	if delegate == nil {
		return types.ErrDelegateNotFound
	}

	vault.VotingShares = vault.VotingShares.Sub(vault.Shares)
	vault.DelegateID = delegateID
	vault.UpdatedAt = sdkCtx.BlockTime().Unix()
	delegate.VotingShares = delegate.VotingShares.Add(vault.Shares)
	k.SetVault(sdkCtx, vault)
	k.SetVault(sdkCtx, delegate)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_delegated",
			sdk.NewAttribute("vault_id", strconv.FormatUint(vaultID, 10)),
			sdk.NewAttribute("delegate_id", strconv.FormatUint(delegateID, 10)),
			sdk.NewAttribute("voting_shares", vault.Shares.String()),
		),
	)

	k.logger.Info("Voting power delegated",
		"vault_id", vaultID,
		"delegate_id", delegateID,
	)

	return nil
}

// Undelegate returns the vault's own voting power from its delegate.
func (k *Keeper) Undelegate(ctx context.Context, caller string, vaultID uint64) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	vault := k.GetVault(sdkCtx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	if caller != vault.Owner {
		return types.ErrUnauthorized
	}
	if !vault.IsDelegated() {
		return types.ErrNotDelegated
	}
	delegate := k.GetVault(sdkCtx, vault.DelegateID)
	if delegate == nil {
		return types.ErrDelegateNotFound
	}

	delegate.VotingShares = delegate.VotingShares.Sub(vault.Shares)
	vault.VotingShares = vault.VotingShares.Add(vault.Shares)
	vault.DelegateID = vault.ID
	vault.UpdatedAt = sdkCtx.BlockTime().Unix()
	k.SetVault(sdkCtx, vault)
	k.SetVault(sdkCtx, delegate)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_undelegated",
			sdk.NewAttribute("vault_id", strconv.FormatUint(vaultID, 10)),
		),
	)

	return nil
}

// PauseVoting freezes a vault's voting during key recovery. Emergency role
// only. The pause timestamp is readable by the governance collaborator, which
// excludes paused vaults from its voting-power math.
func (k *Keeper) PauseVoting(ctx context.Context, caller string, vaultID uint64) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	vault := k.GetVault(sdkCtx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	if caller != vault.EmergencyOwner {
		return types.ErrUnauthorized
	}
	if vault.IsVotingPaused() {
		return types.ErrVotingPaused
	}

	vault.VotingPausedAt = sdkCtx.BlockTime().Unix()
	vault.UpdatedAt = vault.VotingPausedAt
	k.SetVault(sdkCtx, vault)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_voting_paused",
			sdk.NewAttribute("vault_id", strconv.FormatUint(vaultID, 10)),
		),
	)

	return nil
}

// ResumeVoting lifts a recovery pause. Emergency role only.
func (k *Keeper) ResumeVoting(ctx context.Context, caller string, vaultID uint64) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	vault := k.GetVault(sdkCtx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	if caller != vault.EmergencyOwner {
		return types.ErrUnauthorized
	}
	if !vault.IsVotingPaused() {
		return types.ErrVotingNotPaused
	}

	vault.VotingPausedAt = 0
	vault.UpdatedAt = sdkCtx.BlockTime().Unix()
	k.SetVault(sdkCtx, vault)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_voting_resumed",
			sdk.NewAttribute("vault_id", strconv.FormatUint(vaultID, 10)),
		),
	)

	return nil
}
