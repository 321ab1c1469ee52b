package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/proof-of-capital/poc-chain/x/curve/types"
)

// QueryServer defines the curve QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Orderbook returns the orderbook state
func (q *QueryServer) Orderbook(ctx context.Context) (*types.Orderbook, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	ob := q.keeper.GetOrderbook(sdkCtx)
	if ob == nil {
		return nil, types.ErrOrderbookNotFound
	}
	return ob, nil
}

// QuoteSale previews the proceeds for selling amount units without executing.
func (q *QueryServer) QuoteSale(ctx context.Context, amount math.Int) (*types.SaleFill, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	_, fill, err := q.keeper.QuoteSale(sdkCtx, amount)
	if err != nil {
		return nil, err
	}
	return fill, nil
}
