package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrInvalidParams     = errors.Register(ModuleName, 1, "invalid curve parameters")
	ErrOrderbookNotFound = errors.Register(ModuleName, 2, "orderbook not initialized")
	ErrOrderbookExists   = errors.Register(ModuleName, 3, "orderbook already initialized")
	ErrUnauthorized      = errors.Register(ModuleName, 4, "unauthorized")
	ErrInvalidAmount     = errors.Register(ModuleName, 5, "amount must be positive")

	// Stage errors
	ErrPoolNotOperating = errors.Register(ModuleName, 10, "pool is not in an operating stage")

	// Invariant errors
	ErrSupplyExceeded = errors.Register(ModuleName, 20, "sale would exceed total sellable supply")

	// Economic errors
	ErrTokenNotSellable    = errors.Register(ModuleName, 30, "collateral token is not registered as sellable")
	ErrRouterNotRegistered = errors.Register(ModuleName, 31, "swap router is not registered")
	ErrInsufficientOutput  = errors.Register(ModuleName, 32, "output below caller minimum")
	ErrPriceDeviation      = errors.Register(ModuleName, 33, "output deviates too far from oracle-implied price")
	ErrOracleUnavailable   = errors.Register(ModuleName, 34, "oracle price unavailable")
)
