package types

import (
	"time"

	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "vault"
	StoreKey   = ModuleName
)

// Vault is the per-participant account record. Economic ownership lives in
// Shares; VotingShares can be delegated away from it. The three owner roles
// form an asymmetric recovery hierarchy: backup and emergency exist to
// recover a compromised primary, so the primary can never rotate itself.
type Vault struct {
	ID             uint64 `json:"id"`
	Owner          string `json:"owner"`
	BackupOwner    string `json:"backup_owner"`
	EmergencyOwner string `json:"emergency_owner"`

	// DelegateID is the vault currently holding this vault's voting power.
	// Equal to ID when voting is not delegated.
	DelegateID uint64 `json:"delegate_id"`

	Shares       math.Int `json:"shares"`
	VotingShares math.Int `json:"voting_shares"`

	// DepositLimit caps further economic growth of the vault.
	// Zero means further deposits are forbidden.
	DepositLimit math.Int `json:"deposit_limit"`

	// Fundraising-time bookkeeping.
	MainCollateralDeposit math.Int       `json:"main_collateral_deposit"`
	DepositedUSD          math.LegacyDec `json:"deposited_usd"`

	// VotingPausedAt is set when the emergency owner pauses voting during a
	// key-recovery, 0 otherwise.
	VotingPausedAt int64 `json:"voting_paused_at"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewVault creates a vault record. The delegate defaults to the vault itself.
func NewVault(id uint64, owner, backup, emergency string, depositLimit math.Int, now time.Time) *Vault {
	ts := now.Unix()
	return &Vault{
		ID:                    id,
		Owner:                 owner,
		BackupOwner:           backup,
		EmergencyOwner:        emergency,
		DelegateID:            id,
		Shares:                math.ZeroInt(),
		VotingShares:          math.ZeroInt(),
		DepositLimit:          depositLimit,
		MainCollateralDeposit: math.ZeroInt(),
		DepositedUSD:          math.LegacyZeroDec(),
		VotingPausedAt:        0,
		CreatedAt:             ts,
		UpdatedAt:             ts,
	}
}

// IsVotingPaused reports whether voting power is frozen for recovery.
func (v *Vault) IsVotingPaused() bool {
	return v.VotingPausedAt != 0
}

// IsDelegated reports whether voting power sits in another vault.
func (v *Vault) IsDelegated() bool {
	return v.DelegateID != v.ID
}

// DepositsAllowed reports whether the vault may still grow economically.
func (v *Vault) DepositsAllowed() bool {
	return v.DepositLimit.IsPositive()
}

// RemainingDepositCapacity returns how much main collateral the vault may
// still deposit under its limit.
func (v *Vault) RemainingDepositCapacity() math.Int {
	if !v.DepositsAllowed() {
		return math.ZeroInt()
	}
	remaining := v.DepositLimit.Sub(v.MainCollateralDeposit)
	if remaining.IsNegative() {
		return math.ZeroInt()
	}
	return remaining
}
