package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgCreateVault     = "create_vault"
	TypeMsgUpdateOwner     = "update_owner"
	TypeMsgUpdateBackup    = "update_backup"
	TypeMsgUpdateEmergency = "update_emergency"
	TypeMsgDelegate        = "delegate"
	TypeMsgUndelegate      = "undelegate"
)

// MsgCreateVault defines the CreateVault message
type MsgCreateVault struct {
	Owner          string `json:"owner"`
	BackupOwner    string `json:"backup_owner"`
	EmergencyOwner string `json:"emergency_owner"`
	DepositLimit   string `json:"deposit_limit"`
}

// Route implements sdk.Msg
func (msg MsgCreateVault) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCreateVault) Type() string { return TypeMsgCreateVault }

// ValidateBasic implements sdk.Msg
func (msg MsgCreateVault) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return ErrInvalidAddress
	}
	if _, err := sdk.AccAddressFromBech32(msg.BackupOwner); err != nil {
		return ErrInvalidAddress
	}
	if _, err := sdk.AccAddressFromBech32(msg.EmergencyOwner); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCreateVault) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCreateVault) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCreateVault) Reset() { *msg = MsgCreateVault{} }

// String implements proto.Message
func (msg MsgCreateVault) String() string {
	return fmt.Sprintf("MsgCreateVault{Owner: %s, Backup: %s, Emergency: %s}", msg.Owner, msg.BackupOwner, msg.EmergencyOwner)
}

// MsgCreateVaultResponse defines the CreateVault response
type MsgCreateVaultResponse struct {
	VaultID uint64 `json:"vault_id"`
}

// MsgUpdateOwner defines the UpdateOwner message. The new primary address can
// only be installed by the backup or emergency role.
type MsgUpdateOwner struct {
	Caller   string `json:"caller"`
	VaultID  uint64 `json:"vault_id"`
	NewOwner string `json:"new_owner"`
}

// Route implements sdk.Msg
func (msg MsgUpdateOwner) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgUpdateOwner) Type() string { return TypeMsgUpdateOwner }

// ValidateBasic implements sdk.Msg
func (msg MsgUpdateOwner) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrInvalidAddress
	}
	if _, err := sdk.AccAddressFromBech32(msg.NewOwner); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgUpdateOwner) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgUpdateOwner) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgUpdateOwner) Reset() { *msg = MsgUpdateOwner{} }

// String implements proto.Message
func (msg MsgUpdateOwner) String() string {
	return fmt.Sprintf("MsgUpdateOwner{Caller: %s, VaultID: %d, NewOwner: %s}", msg.Caller, msg.VaultID, msg.NewOwner)
}

// MsgUpdateBackup defines the UpdateBackup message
type MsgUpdateBackup struct {
	Caller    string `json:"caller"`
	VaultID   uint64 `json:"vault_id"`
	NewBackup string `json:"new_backup"`
}

// Route implements sdk.Msg
func (msg MsgUpdateBackup) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgUpdateBackup) Type() string { return TypeMsgUpdateBackup }

// ValidateBasic implements sdk.Msg
func (msg MsgUpdateBackup) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrInvalidAddress
	}
	if _, err := sdk.AccAddressFromBech32(msg.NewBackup); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgUpdateBackup) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgUpdateBackup) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgUpdateBackup) Reset() { *msg = MsgUpdateBackup{} }

// String implements proto.Message
func (msg MsgUpdateBackup) String() string {
	return fmt.Sprintf("MsgUpdateBackup{Caller: %s, VaultID: %d, NewBackup: %s}", msg.Caller, msg.VaultID, msg.NewBackup)
}

// MsgUpdateEmergency defines the UpdateEmergency message
type MsgUpdateEmergency struct {
	Caller       string `json:"caller"`
	VaultID      uint64 `json:"vault_id"`
	NewEmergency string `json:"new_emergency"`
}

// Route implements sdk.Msg
func (msg MsgUpdateEmergency) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgUpdateEmergency) Type() string { return TypeMsgUpdateEmergency }

// ValidateBasic implements sdk.Msg
func (msg MsgUpdateEmergency) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrInvalidAddress
	}
	if _, err := sdk.AccAddressFromBech32(msg.NewEmergency); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgUpdateEmergency) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgUpdateEmergency) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgUpdateEmergency) Reset() { *msg = MsgUpdateEmergency{} }

// String implements proto.Message
func (msg MsgUpdateEmergency) String() string {
	return fmt.Sprintf("MsgUpdateEmergency{Caller: %s, VaultID: %d}", msg.Caller, msg.VaultID)
}

// MsgDelegate defines the Delegate message
type MsgDelegate struct {
	Caller     string `json:"caller"`
	VaultID    uint64 `json:"vault_id"`
	DelegateID uint64 `json:"delegate_id"`
}

// Route implements sdk.Msg
func (msg MsgDelegate) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgDelegate) Type() string { return TypeMsgDelegate }

// ValidateBasic implements sdk.Msg
func (msg MsgDelegate) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgDelegate) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgDelegate) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgDelegate) Reset() { *msg = MsgDelegate{} }

// String implements proto.Message
func (msg MsgDelegate) String() string {
	return fmt.Sprintf("MsgDelegate{Caller: %s, VaultID: %d, DelegateID: %d}", msg.Caller, msg.VaultID, msg.DelegateID)
}

// MsgUndelegate defines the Undelegate message
type MsgUndelegate struct {
	Caller  string `json:"caller"`
	VaultID uint64 `json:"vault_id"`
}

// Route implements sdk.Msg
func (msg MsgUndelegate) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgUndelegate) Type() string { return TypeMsgUndelegate }

// ValidateBasic implements sdk.Msg
func (msg MsgUndelegate) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgUndelegate) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgUndelegate) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgUndelegate) Reset() { *msg = MsgUndelegate{} }

// String implements proto.Message
func (msg MsgUndelegate) String() string {
	return fmt.Sprintf("MsgUndelegate{Caller: %s, VaultID: %d}", msg.Caller, msg.VaultID)
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgCreateVault{}
	_ sdk.Msg = &MsgUpdateOwner{}
	_ sdk.Msg = &MsgUpdateBackup{}
	_ sdk.Msg = &MsgUpdateEmergency{}
	_ sdk.Msg = &MsgDelegate{}
	_ sdk.Msg = &MsgUndelegate{}
)
