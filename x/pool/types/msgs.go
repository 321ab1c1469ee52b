package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgDeposit              = "deposit"
	TypeMsgFinalizeFundraising  = "finalize_fundraising"
	TypeMsgRecordExchange       = "record_exchange"
	TypeMsgFinalizeExchange     = "finalize_exchange"
	TypeMsgConfirmLPProvisioned = "confirm_lp_provisioned"
	TypeMsgCancelFundraising    = "cancel_fundraising"
	TypeMsgWithdrawCancelled    = "withdraw_cancelled"
	TypeMsgRequestExit          = "request_exit"
	TypeMsgCancelExit           = "cancel_exit"
	TypeMsgProcessExitQueue     = "process_exit_queue"
	TypeMsgDistributeProfit     = "distribute_profit"
	TypeMsgClaimRewards         = "claim_rewards"
	TypeMsgExecuteAction        = "execute_action"
)

// MsgDeposit defines the fundraising Deposit message
type MsgDeposit struct {
	Depositor string `json:"depositor"`
	Amount    string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgDeposit) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgDeposit) Type() string { return TypeMsgDeposit }

// ValidateBasic implements sdk.Msg
func (msg MsgDeposit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Depositor); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgDeposit) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Depositor)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgDeposit) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgDeposit) Reset() { *msg = MsgDeposit{} }

// String implements proto.Message
func (msg MsgDeposit) String() string {
	return fmt.Sprintf("MsgDeposit{Depositor: %s, Amount: %s}", msg.Depositor, msg.Amount)
}

// MsgDepositResponse defines the Deposit response
type MsgDepositResponse struct {
	RecordID string `json:"record_id"`
	USDValue string `json:"usd_value"`
}

// MsgFinalizeFundraising defines the FinalizeFundraisingCollection message
type MsgFinalizeFundraising struct {
	Authority string `json:"authority"`
}

// Route implements sdk.Msg
func (msg MsgFinalizeFundraising) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgFinalizeFundraising) Type() string { return TypeMsgFinalizeFundraising }

// ValidateBasic implements sdk.Msg
func (msg MsgFinalizeFundraising) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgFinalizeFundraising) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgFinalizeFundraising) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgFinalizeFundraising) Reset() { *msg = MsgFinalizeFundraising{} }

// String implements proto.Message
func (msg MsgFinalizeFundraising) String() string {
	return fmt.Sprintf("MsgFinalizeFundraising{Authority: %s}", msg.Authority)
}

// MsgRecordExchange defines the RecordExchange message: swap a slice of the
// collected collateral into the reward asset through a whitelisted router.
type MsgRecordExchange struct {
	Authority string `json:"authority"`
	Router    string `json:"router"`
	SwapType  uint32 `json:"swap_type"`
	SwapData  []byte `json:"swap_data"`
	AmountIn  string `json:"amount_in"`
	MinOut    string `json:"min_out"`
}

// Route implements sdk.Msg
func (msg MsgRecordExchange) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRecordExchange) Type() string { return TypeMsgRecordExchange }

// ValidateBasic implements sdk.Msg
func (msg MsgRecordExchange) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress
	}
	if msg.Router == "" {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRecordExchange) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRecordExchange) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRecordExchange) Reset() { *msg = MsgRecordExchange{} }

// String implements proto.Message
func (msg MsgRecordExchange) String() string {
	return fmt.Sprintf("MsgRecordExchange{Router: %s, AmountIn: %s}", msg.Router, msg.AmountIn)
}

// MsgRecordExchangeResponse defines the RecordExchange response
type MsgRecordExchangeResponse struct {
	Received string `json:"received"`
}

// MsgFinalizeExchange defines the FinalizeExchange message
type MsgFinalizeExchange struct {
	Authority string `json:"authority"`
}

// Route implements sdk.Msg
func (msg MsgFinalizeExchange) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgFinalizeExchange) Type() string { return TypeMsgFinalizeExchange }

// ValidateBasic implements sdk.Msg
func (msg MsgFinalizeExchange) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgFinalizeExchange) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgFinalizeExchange) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgFinalizeExchange) Reset() { *msg = MsgFinalizeExchange{} }

// String implements proto.Message
func (msg MsgFinalizeExchange) String() string {
	return fmt.Sprintf("MsgFinalizeExchange{Authority: %s}", msg.Authority)
}

// MsgConfirmLPProvisioned defines the ConfirmLPProvisioned message
type MsgConfirmLPProvisioned struct {
	Authority string `json:"authority"`
}

// Route implements sdk.Msg
func (msg MsgConfirmLPProvisioned) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgConfirmLPProvisioned) Type() string { return TypeMsgConfirmLPProvisioned }

// ValidateBasic implements sdk.Msg
func (msg MsgConfirmLPProvisioned) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgConfirmLPProvisioned) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgConfirmLPProvisioned) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgConfirmLPProvisioned) Reset() { *msg = MsgConfirmLPProvisioned{} }

// String implements proto.Message
func (msg MsgConfirmLPProvisioned) String() string {
	return fmt.Sprintf("MsgConfirmLPProvisioned{Authority: %s}", msg.Authority)
}

// MsgCancelFundraising defines the CancelFundraising message
type MsgCancelFundraising struct {
	Caller string `json:"caller"`
}

// Route implements sdk.Msg
func (msg MsgCancelFundraising) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCancelFundraising) Type() string { return TypeMsgCancelFundraising }

// ValidateBasic implements sdk.Msg
func (msg MsgCancelFundraising) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCancelFundraising) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCancelFundraising) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCancelFundraising) Reset() { *msg = MsgCancelFundraising{} }

// String implements proto.Message
func (msg MsgCancelFundraising) String() string {
	return fmt.Sprintf("MsgCancelFundraising{Caller: %s}", msg.Caller)
}

// MsgWithdrawCancelled defines the WithdrawCancelled message
type MsgWithdrawCancelled struct {
	Caller string `json:"caller"`
}

// Route implements sdk.Msg
func (msg MsgWithdrawCancelled) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdrawCancelled) Type() string { return TypeMsgWithdrawCancelled }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdrawCancelled) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgWithdrawCancelled) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgWithdrawCancelled) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgWithdrawCancelled) Reset() { *msg = MsgWithdrawCancelled{} }

// String implements proto.Message
func (msg MsgWithdrawCancelled) String() string {
	return fmt.Sprintf("MsgWithdrawCancelled{Caller: %s}", msg.Caller)
}

// MsgWithdrawCancelledResponse defines the WithdrawCancelled response
type MsgWithdrawCancelledResponse struct {
	Refunded string `json:"refunded"`
}

// MsgRequestExit defines the RequestExit message
type MsgRequestExit struct {
	Caller string `json:"caller"`
}

// Route implements sdk.Msg
func (msg MsgRequestExit) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRequestExit) Type() string { return TypeMsgRequestExit }

// ValidateBasic implements sdk.Msg
func (msg MsgRequestExit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgRequestExit) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgRequestExit) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgRequestExit) Reset() { *msg = MsgRequestExit{} }

// String implements proto.Message
func (msg MsgRequestExit) String() string {
	return fmt.Sprintf("MsgRequestExit{Caller: %s}", msg.Caller)
}

// MsgCancelExit defines the CancelExit message
type MsgCancelExit struct {
	Caller string `json:"caller"`
}

// Route implements sdk.Msg
func (msg MsgCancelExit) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCancelExit) Type() string { return TypeMsgCancelExit }

// ValidateBasic implements sdk.Msg
func (msg MsgCancelExit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgCancelExit) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgCancelExit) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgCancelExit) Reset() { *msg = MsgCancelExit{} }

// String implements proto.Message
func (msg MsgCancelExit) String() string {
	return fmt.Sprintf("MsgCancelExit{Caller: %s}", msg.Caller)
}

// MsgProcessExitQueue defines the ProcessPendingExitQueue message. MaxEntries
// bounds the work of one call; zero means no bound.
type MsgProcessExitQueue struct {
	Caller     string `json:"caller"`
	MaxEntries uint32 `json:"max_entries"`
}

// Route implements sdk.Msg
func (msg MsgProcessExitQueue) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgProcessExitQueue) Type() string { return TypeMsgProcessExitQueue }

// ValidateBasic implements sdk.Msg
func (msg MsgProcessExitQueue) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrInvalidAddress
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgProcessExitQueue) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgProcessExitQueue) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgProcessExitQueue) Reset() { *msg = MsgProcessExitQueue{} }

// String implements proto.Message
func (msg MsgProcessExitQueue) String() string {
	return fmt.Sprintf("MsgProcessExitQueue{Caller: %s, MaxEntries: %d}", msg.Caller, msg.MaxEntries)
}

// MsgProcessExitQueueResponse defines the ProcessExitQueue response
type MsgProcessExitQueueResponse struct {
	EntriesSettled uint32 `json:"entries_settled"`
	Paid           string `json:"paid"`
}

// MsgDistributeProfit defines the DistributeProfit message. Amount caps the
// distributed value; empty or zero distributes the full unaccounted balance.
type MsgDistributeProfit struct {
	Caller string `json:"caller"`
	Token  string `json:"token"`
	Amount string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgDistributeProfit) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgDistributeProfit) Type() string { return TypeMsgDistributeProfit }

// ValidateBasic implements sdk.Msg
func (msg MsgDistributeProfit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrInvalidAddress
	}
	if msg.Token == "" {
		return ErrTokenNotDistributable
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgDistributeProfit) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgDistributeProfit) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgDistributeProfit) Reset() { *msg = MsgDistributeProfit{} }

// String implements proto.Message
func (msg MsgDistributeProfit) String() string {
	return fmt.Sprintf("MsgDistributeProfit{Caller: %s, Token: %s, Amount: %s}", msg.Caller, msg.Token, msg.Amount)
}

// MsgDistributeProfitResponse defines the DistributeProfit response
type MsgDistributeProfitResponse struct {
	RecordID      string `json:"record_id"`
	Distributed   string `json:"distributed"`
	Royalty       string `json:"royalty"`
	OperatorShare string `json:"operator_share"`
	ExitQueuePaid string `json:"exit_queue_paid"`
	HolderAccrued string `json:"holder_accrued"`
}

// MsgClaimRewards defines the ClaimRewards message
type MsgClaimRewards struct {
	Caller string `json:"caller"`
	Token  string `json:"token"`
}

// Route implements sdk.Msg
func (msg MsgClaimRewards) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgClaimRewards) Type() string { return TypeMsgClaimRewards }

// ValidateBasic implements sdk.Msg
func (msg MsgClaimRewards) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return ErrInvalidAddress
	}
	if msg.Token == "" {
		return ErrTokenNotDistributable
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgClaimRewards) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgClaimRewards) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgClaimRewards) Reset() { *msg = MsgClaimRewards{} }

// String implements proto.Message
func (msg MsgClaimRewards) String() string {
	return fmt.Sprintf("MsgClaimRewards{Caller: %s, Token: %s}", msg.Caller, msg.Token)
}

// MsgClaimRewardsResponse defines the ClaimRewards response
type MsgClaimRewardsResponse struct {
	Claimed string `json:"claimed"`
}

// MsgExecuteAction defines the privileged governance entry point
type MsgExecuteAction struct {
	Authority string `json:"authority"`
	Action    Action `json:"action"`
}

// Route implements sdk.Msg
func (msg MsgExecuteAction) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgExecuteAction) Type() string { return TypeMsgExecuteAction }

// ValidateBasic implements sdk.Msg
func (msg MsgExecuteAction) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress
	}
	if msg.Action.Type == "" {
		return ErrUnknownAction
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgExecuteAction) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgExecuteAction) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgExecuteAction) Reset() { *msg = MsgExecuteAction{} }

// String implements proto.Message
func (msg MsgExecuteAction) String() string {
	return fmt.Sprintf("MsgExecuteAction{Authority: %s, Type: %s}", msg.Authority, msg.Action.Type)
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgDeposit{}
	_ sdk.Msg = &MsgFinalizeFundraising{}
	_ sdk.Msg = &MsgRecordExchange{}
	_ sdk.Msg = &MsgFinalizeExchange{}
	_ sdk.Msg = &MsgConfirmLPProvisioned{}
	_ sdk.Msg = &MsgCancelFundraising{}
	_ sdk.Msg = &MsgWithdrawCancelled{}
	_ sdk.Msg = &MsgRequestExit{}
	_ sdk.Msg = &MsgCancelExit{}
	_ sdk.Msg = &MsgProcessExitQueue{}
	_ sdk.Msg = &MsgDistributeProfit{}
	_ sdk.Msg = &MsgClaimRewards{}
	_ sdk.Msg = &MsgExecuteAction{}
)
