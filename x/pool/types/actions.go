package types

import (
	"cosmossdk.io/math"
)

// ActionType tags a governance action variant.
type ActionType string

// Governance action variants. Each value names the single payload field that
// must be set on Action for that variant.
const (
	ActionSetProfitShares  ActionType = "set_profit_shares"
	ActionSetSellableToken ActionType = "set_sellable_token"
	ActionSetRouter        ActionType = "set_router"
	ActionSetDepositLimit  ActionType = "set_deposit_limit"
	ActionSetRecipients    ActionType = "set_recipients"
	ActionExtendDeadline   ActionType = "extend_deadline"
	ActionFundExitQueue    ActionType = "fund_exit_queue"
	ActionBeginDissolution ActionType = "begin_dissolution"
	ActionConfirmDissolved ActionType = "confirm_dissolved"
)

// Action is a closed tagged union: Type selects the variant and exactly one
// payload pointer is non-nil. Unknown types are rejected at dispatch.
type Action struct {
	Type ActionType `json:"type"`

	SetProfitShares  *SetProfitSharesAction  `json:"set_profit_shares,omitempty"`
	SetSellableToken *SetSellableTokenAction `json:"set_sellable_token,omitempty"`
	SetRouter        *SetRouterAction        `json:"set_router,omitempty"`
	SetDepositLimit  *SetDepositLimitAction  `json:"set_deposit_limit,omitempty"`
	SetRecipients    *SetRecipientsAction    `json:"set_recipients,omitempty"`
	ExtendDeadline   *ExtendDeadlineAction   `json:"extend_deadline,omitempty"`
	FundExitQueue    *FundExitQueueAction    `json:"fund_exit_queue,omitempty"`
}

// SetProfitSharesAction rewrites the profit split.
type SetProfitSharesAction struct {
	RoyaltyBips       int64 `json:"royalty_bips"`
	CreatorProfitBips int64 `json:"creator_profit_bips"`
	DAOProfitBips     int64 `json:"dao_profit_bips"`
}

// SetSellableTokenAction adds or removes a sellable collateral denom.
type SetSellableTokenAction struct {
	Denom  string `json:"denom"`
	Enable bool   `json:"enable"`
}

// SetRouterAction adds or removes a whitelisted swap router.
type SetRouterAction struct {
	Router string `json:"router"`
	Enable bool   `json:"enable"`
}

// SetDepositLimitAction adjusts a vault's fundraising deposit limit.
type SetDepositLimitAction struct {
	VaultID  uint64   `json:"vault_id"`
	NewLimit math.Int `json:"new_limit"`
}

// SetRecipientsAction rotates the royalty and operator payout addresses.
type SetRecipientsAction struct {
	RoyaltyRecipient  string `json:"royalty_recipient"`
	OperatorRecipient string `json:"operator_recipient"`
}

// ExtendDeadlineAction moves the fundraising deadline. Allowed once.
type ExtendDeadlineAction struct {
	NewDeadline int64 `json:"new_deadline"`
}

// FundExitQueueAction earmarks reward-asset balance for exit-queue payouts.
type FundExitQueueAction struct {
	Amount math.Int `json:"amount"`
}
