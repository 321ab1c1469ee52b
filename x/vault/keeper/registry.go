package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/proof-of-capital/poc-chain/x/vault/types"
)

// CreateVault allocates a new vault for the caller. One vault per primary
// address; legal only while the pool still admits new capital.
func (k *Keeper) CreateVault(ctx context.Context, owner, backup, emergency string, depositLimit math.Int) (*types.Vault, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if k.poolKeeper != nil && !k.poolKeeper.IsAdmittingCapital(sdkCtx) {
		return nil, types.ErrNotAdmittingCapital
	}
	if existing := k.GetVaultByOwner(sdkCtx, owner); existing != nil {
		return nil, types.ErrVaultAlreadyExists
	}
	if depositLimit.IsNegative() {
		return nil, types.ErrInvalidAmount
	}

	id := k.nextVaultID(sdkCtx)
	vault := types.NewVault(id, owner, backup, emergency, depositLimit, sdkCtx.BlockTime())
	k.SetVault(sdkCtx, vault)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_created",
			sdk.NewAttribute("vault_id", strconv.FormatUint(id, 10)),
			sdk.NewAttribute("owner", owner),
			sdk.NewAttribute("deposit_limit", depositLimit.String()),
		),
	)

	k.logger.Info("Vault created",
		"vault_id", id,
		"owner", owner,
		"deposit_limit", depositLimit.String(),
	)

	return vault, nil
}

// UpdateOwner rotates the primary address. Only the backup or emergency role
// may do this; the primary can never rotate itself, so a stolen primary key
// cannot lock out the recovery roles.
func (k *Keeper) UpdateOwner(ctx context.Context, caller string, vaultID uint64, newOwner string) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	vault := k.GetVault(sdkCtx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	if caller != vault.BackupOwner && caller != vault.EmergencyOwner {
		return types.ErrUnauthorized
	}
	if existing := k.GetVaultByOwner(sdkCtx, newOwner); existing != nil && existing.ID != vaultID {
		return types.ErrVaultAlreadyExists
	}

	store := k.GetStore(sdkCtx)
	store.Delete(ownerIndexKey(vault.Owner))

	oldOwner := vault.Owner
	vault.Owner = newOwner
	vault.UpdatedAt = sdkCtx.BlockTime().Unix()
	k.SetVault(sdkCtx, vault)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_owner_updated",
			sdk.NewAttribute("vault_id", strconv.FormatUint(vaultID, 10)),
			sdk.NewAttribute("old_owner", oldOwner),
			sdk.NewAttribute("new_owner", newOwner),
			sdk.NewAttribute("caller", caller),
		),
	)

	k.logger.Info("Vault owner rotated",
		"vault_id", vaultID,
		"new_owner", newOwner,
		"caller", caller,
	)

	return nil
}

// UpdateBackup rotates the backup address. Legal for the backup itself or the
// emergency role.
func (k *Keeper) UpdateBackup(ctx context.Context, caller string, vaultID uint64, newBackup string) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	vault := k.GetVault(sdkCtx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	if caller != vault.BackupOwner && caller != vault.EmergencyOwner {
		return types.ErrUnauthorized
	}

	vault.BackupOwner = newBackup
	vault.UpdatedAt = sdkCtx.BlockTime().Unix()
	k.SetVault(sdkCtx, vault)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_backup_updated",
			sdk.NewAttribute("vault_id", strconv.FormatUint(vaultID, 10)),
			sdk.NewAttribute("new_backup", newBackup),
			sdk.NewAttribute("caller", caller),
		),
	)

	return nil
}

// UpdateEmergency rotates the emergency address. Only the emergency role
// itself may do this; it sits at the top of the recovery hierarchy.
func (k *Keeper) UpdateEmergency(ctx context.Context, caller string, vaultID uint64, newEmergency string) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	vault := k.GetVault(sdkCtx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	if caller != vault.EmergencyOwner {
		return types.ErrUnauthorized
	}

	vault.EmergencyOwner = newEmergency
	vault.UpdatedAt = sdkCtx.BlockTime().Unix()
	k.SetVault(sdkCtx, vault)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_emergency_updated",
			sdk.NewAttribute("vault_id", strconv.FormatUint(vaultID, 10)),
			sdk.NewAttribute("new_emergency", newEmergency),
		),
	)

	return nil
}

// SetDepositLimit changes a vault's deposit cap. Governance-only. The new
// limit may be zero (forbid further deposits) but can never be set below the
// vault's current shares, so existing holdings stay valid.
func (k *Keeper) SetDepositLimit(ctx context.Context, authority string, vaultID uint64, newLimit math.Int) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if authority != k.authority {
		return types.ErrUnauthorized
	}
	vault := k.GetVault(sdkCtx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	if newLimit.IsNegative() {
		return types.ErrInvalidAmount
	}
	if !newLimit.IsZero() && newLimit.LT(vault.Shares) {
		return types.ErrDepositLimitBelowShares
	}

	vault.DepositLimit = newLimit
	vault.UpdatedAt = sdkCtx.BlockTime().Unix()
	k.SetVault(sdkCtx, vault)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"vault_deposit_limit_updated",
			sdk.NewAttribute("vault_id", strconv.FormatUint(vaultID, 10)),
			sdk.NewAttribute("new_limit", newLimit.String()),
		),
	)

	return nil
}

// RecordFundraisingDeposit accumulates a fundraising deposit into the vault,
// enforcing the deposit limit. Called by the pool module.
func (k *Keeper) RecordFundraisingDeposit(ctx sdk.Context, vaultID uint64, collateral math.Int, usd math.LegacyDec) error {
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	if !vault.DepositsAllowed() {
		return types.ErrDepositsForbidden
	}
	if collateral.GT(vault.RemainingDepositCapacity()) {
		return types.ErrDepositLimitExceeded
	}

	vault.MainCollateralDeposit = vault.MainCollateralDeposit.Add(collateral)
	vault.DepositedUSD = vault.DepositedUSD.Add(usd)
	vault.UpdatedAt = ctx.BlockTime().Unix()
	k.SetVault(ctx, vault)
	return nil
}

// ClearFundraisingDeposit zeroes the vault's fundraising position after a
// cancelled pool refunds it. Called by the pool module.
func (k *Keeper) ClearFundraisingDeposit(ctx sdk.Context, vaultID uint64) error {
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}

	vault.MainCollateralDeposit = math.ZeroInt()
	vault.DepositedUSD = math.LegacyZeroDec()
	vault.UpdatedAt = ctx.BlockTime().Unix()
	k.SetVault(ctx, vault)
	return nil
}
