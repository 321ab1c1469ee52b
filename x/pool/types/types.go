package types

import (
	"time"

	"cosmossdk.io/math"

	"github.com/proof-of-capital/poc-chain/pkg/bips"
)

// Module name and store key
const (
	ModuleName = "pool"
	StoreKey   = ModuleName
)

// MinClosingThresholdBips floors the Active→Closing threshold so a pool with
// a very large profit share cannot be pushed into Closing by a tiny exit
// queue.
const MinClosingThresholdBips int64 = 5_000

// DefaultAllocationCooldown is the minimum spacing between operator-funded
// exit-queue allocations.
const DefaultAllocationCooldown int64 = 24 * 60 * 60

// Stage is the pool lifecycle state.
type Stage int

// Lifecycle stages. Dissolved and FundraisingCancelled are terminal;
// Active⇄Closing is the only bidirectional edge.
const (
	StageFundraising Stage = iota
	StageFundraisingCancelled
	StageFundraisingExchange
	StageWaitingForLP
	StageActive
	StageClosing
	StageWaitingForLPDissolution
	StageDissolved
)

// String implements fmt.Stringer
func (s Stage) String() string {
	switch s {
	case StageFundraising:
		return "fundraising"
	case StageFundraisingCancelled:
		return "fundraising_cancelled"
	case StageFundraisingExchange:
		return "fundraising_exchange"
	case StageWaitingForLP:
		return "waiting_for_lp"
	case StageActive:
		return "active"
	case StageClosing:
		return "closing"
	case StageWaitingForLPDissolution:
		return "waiting_for_lp_dissolution"
	case StageDissolved:
		return "dissolved"
	default:
		return "unknown"
	}
}

// CanTransitionTo enumerates the legal edges of the lifecycle machine.
func (s Stage) CanTransitionTo(next Stage) bool {
	switch s {
	case StageFundraising:
		return next == StageFundraisingCancelled || next == StageFundraisingExchange
	case StageFundraisingExchange:
		return next == StageWaitingForLP
	case StageWaitingForLP:
		return next == StageActive
	case StageActive:
		return next == StageClosing
	case StageClosing:
		return next == StageActive || next == StageWaitingForLPDissolution
	case StageWaitingForLPDissolution:
		return next == StageDissolved
	default:
		return false
	}
}

// IsOperating reports whether the curve and exit queue are live.
func (s Stage) IsOperating() bool {
	return s == StageActive || s == StageClosing
}

// IsTerminal reports whether no further transition is possible.
func (s Stage) IsTerminal() bool {
	return s == StageDissolved || s == StageFundraisingCancelled
}

// PoolConfig fixes the economic parameters at pool initialization.
type PoolConfig struct {
	MainCollateralDenom  string         `json:"main_collateral_denom"`
	RewardDenom          string         `json:"reward_denom"`
	FundraisingTargetUSD math.LegacyDec `json:"fundraising_target_usd"`
	FundraisingDeadline  int64          `json:"fundraising_deadline"`
	MinDeposit           math.Int       `json:"min_deposit"`

	RoyaltyBips        int64 `json:"royalty_bips"`
	CreatorProfitBips  int64 `json:"creator_profit_bips"`
	DAOProfitBips      int64 `json:"dao_profit_bips"`
	InfrastructureBips int64 `json:"infrastructure_bips"`

	RoyaltyRecipient  string `json:"royalty_recipient"`
	OperatorRecipient string `json:"operator_recipient"`

	AllocationCooldown int64 `json:"allocation_cooldown"`
}

// Validate checks configuration sanity.
func (c PoolConfig) Validate() error {
	if c.MainCollateralDenom == "" || c.RewardDenom == "" {
		return ErrInvalidConfig
	}
	if c.FundraisingTargetUSD.IsNil() || !c.FundraisingTargetUSD.IsPositive() {
		return ErrInvalidConfig
	}
	if c.FundraisingDeadline <= 0 {
		return ErrInvalidConfig
	}
	if c.MinDeposit.IsNil() || c.MinDeposit.IsNegative() {
		return ErrInvalidConfig
	}
	if !bips.Valid(c.RoyaltyBips) || !bips.Valid(c.CreatorProfitBips) ||
		!bips.Valid(c.DAOProfitBips) || !bips.Valid(c.InfrastructureBips) {
		return ErrInvalidConfig
	}
	if c.RoyaltyRecipient == "" || c.OperatorRecipient == "" {
		return ErrInvalidConfig
	}
	return nil
}

// PoolState is the singleton economic ledger record.
type PoolState struct {
	Stage Stage `json:"stage"`

	MainCollateralDenom string `json:"main_collateral_denom"`
	RewardDenom         string `json:"reward_denom"`

	// Fundraising bookkeeping.
	FundraisingTargetUSD math.LegacyDec `json:"fundraising_target_usd"`
	FundraisingDeadline  int64          `json:"fundraising_deadline"`
	DeadlineExtended     bool           `json:"deadline_extended"`
	MinDeposit           math.Int       `json:"min_deposit"`

	TotalCollectedMainCollateral math.Int       `json:"total_collected_main_collateral"`
	TotalDepositedUSD            math.LegacyDec `json:"total_deposited_usd"`
	TotalExchangedReward         math.Int       `json:"total_exchanged_reward"`
	RealizedSharePrice           math.LegacyDec `json:"realized_share_price"`

	// Exit queue bookkeeping. ExitPayment* track the currently funded
	// allocation round: the cursor makes partial processing resumable and
	// MaxIndex fences out entries queued after funding.
	TotalExitQueueShares      math.Int `json:"total_exit_queue_shares"`
	ExitPaymentFunded         math.Int `json:"exit_payment_funded"`
	ExitPaymentRemaining      math.Int `json:"exit_payment_remaining"`
	ExitPaymentSnapshotShares math.Int `json:"exit_payment_snapshot_shares"`
	ExitPaymentMaxIndex       uint64   `json:"exit_payment_max_index"`
	ExitQueueCursor           uint64   `json:"exit_queue_cursor"`

	// Profit split.
	RoyaltyBips        int64  `json:"royalty_bips"`
	CreatorProfitBips  int64  `json:"creator_profit_bips"`
	DAOProfitBips      int64  `json:"dao_profit_bips"`
	InfrastructureBips int64  `json:"infrastructure_bips"`
	RoyaltyRecipient   string `json:"royalty_recipient"`
	OperatorRecipient  string `json:"operator_recipient"`

	// Periodic allowance bookkeeping.
	LastAllocationAt   int64 `json:"last_allocation_at"`
	AllocationCooldown int64 `json:"allocation_cooldown"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewPoolState creates the initial ledger record in Fundraising.
func NewPoolState(cfg PoolConfig, now time.Time) *PoolState {
	ts := now.Unix()
	cooldown := cfg.AllocationCooldown
	if cooldown == 0 {
		cooldown = DefaultAllocationCooldown
	}
	return &PoolState{
		Stage:                        StageFundraising,
		MainCollateralDenom:          cfg.MainCollateralDenom,
		RewardDenom:                  cfg.RewardDenom,
		FundraisingTargetUSD:         cfg.FundraisingTargetUSD,
		FundraisingDeadline:          cfg.FundraisingDeadline,
		MinDeposit:                   cfg.MinDeposit,
		TotalCollectedMainCollateral: math.ZeroInt(),
		TotalDepositedUSD:            math.LegacyZeroDec(),
		TotalExchangedReward:         math.ZeroInt(),
		RealizedSharePrice:           math.LegacyZeroDec(),
		TotalExitQueueShares:         math.ZeroInt(),
		ExitPaymentFunded:            math.ZeroInt(),
		ExitPaymentRemaining:         math.ZeroInt(),
		ExitPaymentSnapshotShares:    math.ZeroInt(),
		RoyaltyBips:                  cfg.RoyaltyBips,
		CreatorProfitBips:            cfg.CreatorProfitBips,
		DAOProfitBips:                cfg.DAOProfitBips,
		InfrastructureBips:           cfg.InfrastructureBips,
		RoyaltyRecipient:             cfg.RoyaltyRecipient,
		OperatorRecipient:            cfg.OperatorRecipient,
		AllocationCooldown:           cooldown,
		CreatedAt:                    ts,
		UpdatedAt:                    ts,
	}
}

// ClosingThresholdBips returns the dynamic Active→Closing threshold:
// the smaller the pool's own profit share, the lower the exit-queue fraction
// that forces Closing, floored at MinClosingThresholdBips.
func (p *PoolState) ClosingThresholdBips() int64 {
	threshold := bips.BasisPoints - p.DAOProfitBips
	if threshold < MinClosingThresholdBips {
		return MinClosingThresholdBips
	}
	return threshold
}

// TargetReached reports whether fundraising collected the USD target.
func (p *PoolState) TargetReached() bool {
	return p.TotalDepositedUSD.GTE(p.FundraisingTargetUSD)
}

// ExitQueueEntry records one vault's queued redemption. Shares is a snapshot
// of the vault's full balance at request time; Index fixes the processing
// order.
type ExitQueueEntry struct {
	VaultID     uint64   `json:"vault_id"`
	Shares      math.Int `json:"shares"`
	Index       uint64   `json:"index"`
	RequestedAt int64    `json:"requested_at"`
}

// DepositRecord is the audit trail of one fundraising deposit.
type DepositRecord struct {
	RecordID  string         `json:"record_id"`
	VaultID   uint64         `json:"vault_id"`
	Amount    math.Int       `json:"amount"`
	USDValue  math.LegacyDec `json:"usd_value"`
	UnitPrice math.LegacyDec `json:"unit_price"`
	Timestamp int64          `json:"timestamp"`
}

// DistributionRecord is the audit trail of one profit-distribution pass.
type DistributionRecord struct {
	RecordID      string   `json:"record_id"`
	Token         string   `json:"token"`
	Unaccounted   math.Int `json:"unaccounted"`
	Royalty       math.Int `json:"royalty"`
	OperatorShare math.Int `json:"operator_share"`
	ExitQueuePaid math.Int `json:"exit_queue_paid"`
	HolderAccrued math.Int `json:"holder_accrued"`
	Timestamp     int64    `json:"timestamp"`
}
