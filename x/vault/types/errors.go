package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrVaultNotFound       = errors.Register(ModuleName, 1, "vault not found")
	ErrVaultAlreadyExists  = errors.Register(ModuleName, 2, "address already owns a vault")
	ErrInvalidAddress      = errors.Register(ModuleName, 3, "invalid address")
	ErrUnauthorized        = errors.Register(ModuleName, 4, "caller lacks the required vault role")
	ErrNotAdmittingCapital = errors.Register(ModuleName, 5, "pool is no longer admitting new vaults")

	// Deposit limit errors
	ErrDepositLimitBelowShares = errors.Register(ModuleName, 10, "deposit limit cannot be set below current shares")
	ErrDepositLimitExceeded    = errors.Register(ModuleName, 11, "deposit limit exceeded")
	ErrDepositsForbidden       = errors.Register(ModuleName, 12, "vault deposit limit is zero, deposits forbidden")

	// Share accounting errors
	ErrInsufficientShares = errors.Register(ModuleName, 20, "insufficient shares")
	ErrInvalidAmount      = errors.Register(ModuleName, 21, "amount must be positive")

	// Delegation errors
	ErrAlreadyDelegated = errors.Register(ModuleName, 30, "voting power already delegated")
	ErrNotDelegated     = errors.Register(ModuleName, 31, "voting power is not delegated")
	ErrSelfDelegation   = errors.Register(ModuleName, 32, "cannot delegate to own vault")
	ErrVotingPaused     = errors.Register(ModuleName, 33, "voting is paused for recovery")
	ErrVotingNotPaused  = errors.Register(ModuleName, 34, "voting is not paused")
	ErrDelegateNotFound = errors.Register(ModuleName, 35, "delegate vault not found")
)
