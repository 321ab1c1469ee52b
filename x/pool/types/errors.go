package types

import (
	"cosmossdk.io/errors"
)

// Pool module errors, grouped by failure class: configuration and input
// validation, authorization, lifecycle stage, fundraising, exit queue,
// distribution.
var (
	ErrInvalidConfig  = errors.Register(ModuleName, 1, "invalid pool configuration")
	ErrPoolNotFound   = errors.Register(ModuleName, 2, "pool not initialized")
	ErrPoolExists     = errors.Register(ModuleName, 3, "pool already initialized")
	ErrInvalidAmount  = errors.Register(ModuleName, 4, "invalid amount")
	ErrInvalidAddress = errors.Register(ModuleName, 5, "invalid address")
	ErrUnauthorized   = errors.Register(ModuleName, 6, "unauthorized")
	ErrUnknownAction  = errors.Register(ModuleName, 7, "unknown governance action")

	ErrInvalidStage       = errors.Register(ModuleName, 10, "operation not allowed in current stage")
	ErrInvalidTransition  = errors.Register(ModuleName, 11, "illegal stage transition")
	ErrPositionsStillOpen = errors.Register(ModuleName, 12, "liquidity positions still open or locked")

	ErrDeadlinePassed        = errors.Register(ModuleName, 20, "fundraising deadline passed")
	ErrDeadlineNotReached    = errors.Register(ModuleName, 21, "fundraising deadline not reached")
	ErrDeadlineAlreadyMoved  = errors.Register(ModuleName, 22, "fundraising deadline already extended")
	ErrTargetNotReached      = errors.Register(ModuleName, 23, "fundraising target not reached")
	ErrTargetReached         = errors.Register(ModuleName, 24, "fundraising target already reached")
	ErrBelowMinDeposit       = errors.Register(ModuleName, 25, "deposit below minimum")
	ErrNothingToWithdraw     = errors.Register(ModuleName, 26, "nothing to withdraw")
	ErrNothingExchanged      = errors.Register(ModuleName, 27, "no reward asset acquired during exchange")
	ErrCollateralOutstanding = errors.Register(ModuleName, 28, "collected collateral not fully exchanged")

	ErrAlreadyQueued      = errors.Register(ModuleName, 30, "vault already in exit queue")
	ErrNotQueued          = errors.Register(ModuleName, 31, "vault not in exit queue")
	ErrQueueEmpty         = errors.Register(ModuleName, 32, "exit queue is empty")
	ErrNoFundedAllocation = errors.Register(ModuleName, 33, "no funded exit-queue allocation")
	ErrAllocationPending  = errors.Register(ModuleName, 34, "previous allocation not fully processed")
	ErrCooldownActive     = errors.Register(ModuleName, 35, "allocation cooldown active")

	ErrTokenNotDistributable = errors.Register(ModuleName, 40, "token not distributable")
	ErrNothingToDistribute   = errors.Register(ModuleName, 41, "no unaccounted balance to distribute")
	ErrNothingToClaim        = errors.Register(ModuleName, 42, "no rewards to claim")
	ErrOracleUnavailable     = errors.Register(ModuleName, 43, "oracle price unavailable")
	ErrInsufficientBalance   = errors.Register(ModuleName, 44, "insufficient unaccounted balance")
)
