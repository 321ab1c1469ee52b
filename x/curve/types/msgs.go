package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgSellReward     = "sell_reward"
	TypeMsgInitOrderbook  = "init_orderbook"
)

// MsgSellReward defines the SellReward message: sell reward-asset units to
// the pool at the bonding-curve price, paid out in a sellable collateral.
type MsgSellReward struct {
	Seller          string `json:"seller"`
	Amount          string `json:"amount"`
	CollateralDenom string `json:"collateral_denom"`
	Router          string `json:"router"`
	SwapType        uint32 `json:"swap_type"`
	SwapData        []byte `json:"swap_data,omitempty"`
	MinOut          string `json:"min_out"`
}

// Route implements sdk.Msg
func (msg MsgSellReward) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSellReward) Type() string { return TypeMsgSellReward }

// ValidateBasic implements sdk.Msg
func (msg MsgSellReward) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Seller); err != nil {
		return err
	}
	if msg.CollateralDenom == "" {
		return ErrTokenNotSellable
	}
	if msg.Router == "" {
		return ErrRouterNotRegistered
	}
	return nil
}

// GetSigners implements sdk.Msg
func (msg MsgSellReward) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Seller)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgSellReward) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgSellReward) Reset() { *msg = MsgSellReward{} }

// String implements proto.Message
func (msg MsgSellReward) String() string {
	return fmt.Sprintf("MsgSellReward{Seller: %s, Amount: %s, Collateral: %s}", msg.Seller, msg.Amount, msg.CollateralDenom)
}

// MsgSellRewardResponse defines the SellReward response
type MsgSellRewardResponse struct {
	UnitsSold     string `json:"units_sold"`
	Proceeds      string `json:"proceeds"`
	LevelsCrossed uint64 `json:"levels_crossed"`
	AvgPrice      string `json:"avg_price"`
}

// MsgInitOrderbook defines the InitOrderbook message (governance only)
type MsgInitOrderbook struct {
	Authority string      `json:"authority"`
	Params    CurveParams `json:"params"`
}

// Route implements sdk.Msg
func (msg MsgInitOrderbook) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgInitOrderbook) Type() string { return TypeMsgInitOrderbook }

// ValidateBasic implements sdk.Msg
func (msg MsgInitOrderbook) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return err
	}
	return msg.Params.Validate()
}

// GetSigners implements sdk.Msg
func (msg MsgInitOrderbook) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Authority)
	return []sdk.AccAddress{addr}
}

// ProtoMessage implements proto.Message
func (*MsgInitOrderbook) ProtoMessage() {}

// Reset implements proto.Message
func (msg *MsgInitOrderbook) Reset() { *msg = MsgInitOrderbook{} }

// String implements proto.Message
func (msg MsgInitOrderbook) String() string {
	return fmt.Sprintf("MsgInitOrderbook{Authority: %s, Reward: %s}", msg.Authority, msg.Params.RewardDenom)
}

// Ensure all messages implement sdk.Msg interface
var (
	_ sdk.Msg = &MsgSellReward{}
	_ sdk.Msg = &MsgInitOrderbook{}
)
