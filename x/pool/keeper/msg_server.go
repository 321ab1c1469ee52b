package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/proof-of-capital/poc-chain/x/pool/types"
)

// MsgServer defines the pool MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// Deposit handles MsgDeposit
func (m *MsgServer) Deposit(ctx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}
	rec, err := m.keeper.Deposit(sdkCtx, msg.Depositor, amount)
	if err != nil {
		return nil, err
	}
	return &types.MsgDepositResponse{RecordID: rec.RecordID, USDValue: rec.USDValue.String()}, nil
}

// FinalizeFundraising handles MsgFinalizeFundraising
func (m *MsgServer) FinalizeFundraising(ctx context.Context, msg *types.MsgFinalizeFundraising) (*types.MsgFinalizeFundraising, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.FinalizeFundraisingCollection(sdkCtx, msg.Authority); err != nil {
		return nil, err
	}
	return msg, nil
}

// RecordExchange handles MsgRecordExchange
func (m *MsgServer) RecordExchange(ctx context.Context, msg *types.MsgRecordExchange) (*types.MsgRecordExchangeResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	amountIn, ok := math.NewIntFromString(msg.AmountIn)
	if !ok {
		return nil, types.ErrInvalidAmount
	}
	minOut, ok := math.NewIntFromString(msg.MinOut)
	if !ok {
		return nil, types.ErrInvalidAmount
	}
	received, err := m.keeper.RecordExchange(sdkCtx, msg.Authority, msg.Router, msg.SwapType, msg.SwapData, amountIn, minOut)
	if err != nil {
		return nil, err
	}
	return &types.MsgRecordExchangeResponse{Received: received.String()}, nil
}

// FinalizeExchange handles MsgFinalizeExchange
func (m *MsgServer) FinalizeExchange(ctx context.Context, msg *types.MsgFinalizeExchange) (*types.MsgFinalizeExchange, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.FinalizeExchange(sdkCtx, msg.Authority); err != nil {
		return nil, err
	}
	return msg, nil
}

// ConfirmLPProvisioned handles MsgConfirmLPProvisioned
func (m *MsgServer) ConfirmLPProvisioned(ctx context.Context, msg *types.MsgConfirmLPProvisioned) (*types.MsgConfirmLPProvisioned, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.ConfirmLPProvisioned(sdkCtx, msg.Authority); err != nil {
		return nil, err
	}
	return msg, nil
}

// CancelFundraising handles MsgCancelFundraising
func (m *MsgServer) CancelFundraising(ctx context.Context, msg *types.MsgCancelFundraising) (*types.MsgCancelFundraising, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.CancelFundraising(sdkCtx, msg.Caller); err != nil {
		return nil, err
	}
	return msg, nil
}

// WithdrawCancelled handles MsgWithdrawCancelled
func (m *MsgServer) WithdrawCancelled(ctx context.Context, msg *types.MsgWithdrawCancelled) (*types.MsgWithdrawCancelledResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	refunded, err := m.keeper.WithdrawCancelled(sdkCtx, msg.Caller)
	if err != nil {
		return nil, err
	}
	return &types.MsgWithdrawCancelledResponse{Refunded: refunded.String()}, nil
}

// RequestExit handles MsgRequestExit
func (m *MsgServer) RequestExit(ctx context.Context, msg *types.MsgRequestExit) (*types.MsgRequestExit, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if _, err := m.keeper.RequestExit(sdkCtx, msg.Caller); err != nil {
		return nil, err
	}
	return msg, nil
}

// CancelExit handles MsgCancelExit
func (m *MsgServer) CancelExit(ctx context.Context, msg *types.MsgCancelExit) (*types.MsgCancelExit, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.CancelExit(sdkCtx, msg.Caller); err != nil {
		return nil, err
	}
	return msg, nil
}

// ProcessExitQueue handles MsgProcessExitQueue
func (m *MsgServer) ProcessExitQueue(ctx context.Context, msg *types.MsgProcessExitQueue) (*types.MsgProcessExitQueueResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	settled, paid, err := m.keeper.ProcessPendingExitQueue(sdkCtx, msg.MaxEntries)
	if err != nil {
		return nil, err
	}
	return &types.MsgProcessExitQueueResponse{EntriesSettled: settled, Paid: paid.String()}, nil
}

// DistributeProfit handles MsgDistributeProfit
func (m *MsgServer) DistributeProfit(ctx context.Context, msg *types.MsgDistributeProfit) (*types.MsgDistributeProfitResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	amount := math.ZeroInt()
	if msg.Amount != "" {
		parsed, ok := math.NewIntFromString(msg.Amount)
		if !ok {
			return nil, types.ErrInvalidAmount
		}
		amount = parsed
	}
	rec, err := m.keeper.DistributeProfit(sdkCtx, msg.Caller, msg.Token, amount)
	if err != nil {
		return nil, err
	}
	return &types.MsgDistributeProfitResponse{
		RecordID:      rec.RecordID,
		Distributed:   rec.Unaccounted.String(),
		Royalty:       rec.Royalty.String(),
		OperatorShare: rec.OperatorShare.String(),
		ExitQueuePaid: rec.ExitQueuePaid.String(),
		HolderAccrued: rec.HolderAccrued.String(),
	}, nil
}

// ClaimRewards handles MsgClaimRewards
func (m *MsgServer) ClaimRewards(ctx context.Context, msg *types.MsgClaimRewards) (*types.MsgClaimRewardsResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	claimed, err := m.keeper.ClaimRewards(sdkCtx, msg.Caller, msg.Token)
	if err != nil {
		return nil, err
	}
	return &types.MsgClaimRewardsResponse{Claimed: claimed.String()}, nil
}

// ExecuteAction handles MsgExecuteAction
func (m *MsgServer) ExecuteAction(ctx context.Context, msg *types.MsgExecuteAction) (*types.MsgExecuteAction, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.ExecuteAction(sdkCtx, msg.Authority, msg.Action); err != nil {
		return nil, err
	}
	return msg, nil
}
