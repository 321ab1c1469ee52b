package keeper

import (
	"context"

	"cosmossdk.io/math"
	"github.com/proof-of-capital/poc-chain/x/curve/types"
)

// MsgServer defines the curve MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// SellReward handles MsgSellReward
func (m *MsgServer) SellReward(ctx context.Context, msg *types.MsgSellReward) (*types.MsgSellRewardResponse, error) {
	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}
	minOut, ok := math.NewIntFromString(msg.MinOut)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	fill, err := m.keeper.SellReward(ctx, msg.Seller, amount, msg.CollateralDenom, msg.Router, msg.SwapType, msg.SwapData, minOut)
	if err != nil {
		return nil, err
	}

	return &types.MsgSellRewardResponse{
		UnitsSold:     fill.UnitsSold.String(),
		Proceeds:      fill.Proceeds.String(),
		LevelsCrossed: fill.LevelsCrossed,
		AvgPrice:      fill.AvgPrice.String(),
	}, nil
}

// InitOrderbook handles MsgInitOrderbook
func (m *MsgServer) InitOrderbook(ctx context.Context, msg *types.MsgInitOrderbook) (*types.MsgInitOrderbook, error) {
	if _, err := m.keeper.InitOrderbook(ctx, msg.Authority, msg.Params); err != nil {
		return nil, err
	}
	return msg, nil
}
