package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/proof-of-capital/poc-chain/x/pool/types"
)

// QueryServer defines the pool QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Pool returns the pool ledger state
func (q *QueryServer) Pool(ctx context.Context) (*types.PoolState, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool := q.keeper.GetPool(sdkCtx)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	return pool, nil
}

// ExitQueue returns all queued entries in arrival order
func (q *QueryServer) ExitQueue(ctx context.Context) ([]*types.ExitQueueEntry, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetExitQueueEntries(sdkCtx), nil
}

// ExitQueueEntry returns the queued entry for a vault
func (q *QueryServer) ExitQueueEntry(ctx context.Context, vaultID uint64) (*types.ExitQueueEntry, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	entry := q.keeper.GetExitQueueEntryByVault(sdkCtx, vaultID)
	if entry == nil {
		return nil, types.ErrNotQueued
	}
	return entry, nil
}

// PendingRewards returns a vault's accrued unclaimed rewards in token
func (q *QueryServer) PendingRewards(ctx context.Context, vaultID uint64, token string) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.PendingRewards(sdkCtx, vaultID, token), nil
}

// UnaccountedBalance returns the distributable balance for a token
func (q *QueryServer) UnaccountedBalance(ctx context.Context, token string) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.UnaccountedBalance(sdkCtx, token), nil
}

// DistributionRecords returns the distribution audit trail
func (q *QueryServer) DistributionRecords(ctx context.Context) ([]*types.DistributionRecord, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetDistributionRecords(sdkCtx), nil
}

// SellableTokens returns the sellable denom whitelist
func (q *QueryServer) SellableTokens(ctx context.Context) ([]string, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetSellableTokens(sdkCtx), nil
}
