package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/proof-of-capital/poc-chain/x/vault/types"
)

// QueryServer defines the vault QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Vault returns a vault by ID
func (q *QueryServer) Vault(ctx context.Context, id uint64) (*types.Vault, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	vault := q.keeper.GetVault(sdkCtx, id)
	if vault == nil {
		return nil, types.ErrVaultNotFound
	}
	return vault, nil
}

// VaultByOwner returns a vault by its primary owner address
func (q *QueryServer) VaultByOwner(ctx context.Context, owner string) (*types.Vault, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	vault := q.keeper.GetVaultByOwner(sdkCtx, owner)
	if vault == nil {
		return nil, types.ErrVaultNotFound
	}
	return vault, nil
}

// Vaults returns all vaults with offset/limit pagination
func (q *QueryServer) Vaults(ctx context.Context, offset, limit uint64) ([]*types.Vault, uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	all := q.keeper.GetAllVaults(sdkCtx)

	total := uint64(len(all))
	if offset >= total {
		return []*types.Vault{}, total, nil
	}
	end := offset + limit
	if end > total || limit == 0 {
		end = total
	}
	return all[offset:end], total, nil
}

// TotalShares returns the total economic share supply
func (q *QueryServer) TotalShares(ctx context.Context) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetTotalSharesSupply(sdkCtx), nil
}

// VotingPower returns the voting shares a vault currently controls, zero if
// voting is paused for recovery.
func (q *QueryServer) VotingPower(ctx context.Context, id uint64) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	vault := q.keeper.GetVault(sdkCtx, id)
	if vault == nil {
		return math.ZeroInt(), types.ErrVaultNotFound
	}
	if vault.IsVotingPaused() {
		return math.ZeroInt(), nil
	}
	return vault.VotingShares, nil
}
