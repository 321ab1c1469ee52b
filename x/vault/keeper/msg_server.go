package keeper

import (
	"context"

	"cosmossdk.io/math"
	"github.com/proof-of-capital/poc-chain/x/vault/types"
)

// MsgServer defines the vault MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// CreateVault handles MsgCreateVault
func (m *MsgServer) CreateVault(ctx context.Context, msg *types.MsgCreateVault) (*types.MsgCreateVaultResponse, error) {
	limit, ok := math.NewIntFromString(msg.DepositLimit)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	vault, err := m.keeper.CreateVault(ctx, msg.Owner, msg.BackupOwner, msg.EmergencyOwner, limit)
	if err != nil {
		return nil, err
	}

	return &types.MsgCreateVaultResponse{VaultID: vault.ID}, nil
}

// UpdateOwner handles MsgUpdateOwner
func (m *MsgServer) UpdateOwner(ctx context.Context, msg *types.MsgUpdateOwner) (*types.MsgUpdateOwner, error) {
	if err := m.keeper.UpdateOwner(ctx, msg.Caller, msg.VaultID, msg.NewOwner); err != nil {
		return nil, err
	}
	return msg, nil
}

// UpdateBackup handles MsgUpdateBackup
func (m *MsgServer) UpdateBackup(ctx context.Context, msg *types.MsgUpdateBackup) (*types.MsgUpdateBackup, error) {
	if err := m.keeper.UpdateBackup(ctx, msg.Caller, msg.VaultID, msg.NewBackup); err != nil {
		return nil, err
	}
	return msg, nil
}

// UpdateEmergency handles MsgUpdateEmergency
func (m *MsgServer) UpdateEmergency(ctx context.Context, msg *types.MsgUpdateEmergency) (*types.MsgUpdateEmergency, error) {
	if err := m.keeper.UpdateEmergency(ctx, msg.Caller, msg.VaultID, msg.NewEmergency); err != nil {
		return nil, err
	}
	return msg, nil
}

// Delegate handles MsgDelegate
func (m *MsgServer) Delegate(ctx context.Context, msg *types.MsgDelegate) (*types.MsgDelegate, error) {
	if err := m.keeper.Delegate(ctx, msg.Caller, msg.VaultID, msg.DelegateID); err != nil {
		return nil, err
	}
	return msg, nil
}

// Undelegate handles MsgUndelegate
func (m *MsgServer) Undelegate(ctx context.Context, msg *types.MsgUndelegate) (*types.MsgUndelegate, error) {
	if err := m.keeper.Undelegate(ctx, msg.Caller, msg.VaultID); err != nil {
		return nil, err
	}
	return msg, nil
}
