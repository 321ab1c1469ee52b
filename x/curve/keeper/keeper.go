package keeper

import (
	"context"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/proof-of-capital/poc-chain/x/curve/types"
)

// Store keys
var (
	OrderbookKey = []byte{0x01}
)

// PoolKeeper defines the expected interface for the pool module
type PoolKeeper interface {
	IsOperating(ctx sdk.Context) bool
	IsSellableToken(ctx sdk.Context, denom string) bool
	IsRegisteredRouter(ctx sdk.Context, router string) bool
	ReserveModuleName() string
}

// OracleKeeper defines the expected price-feed interface
type OracleKeeper interface {
	Price(ctx sdk.Context, denom string) (math.LegacyDec, bool)
}

// SwapRouter executes a trade on an external venue and returns the amount of
// tokenOut received by the pool's reserve account.
type SwapRouter interface {
	Execute(ctx sdk.Context, router string, swapType uint32, swapData []byte, tokenIn, tokenOut string, amountIn, minOut math.Int) (math.Int, error)
}

// BankKeeper defines the expected interface for the bank module
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// Keeper manages the bonding-curve orderbook state
type Keeper struct {
	cdc        codec.BinaryCodec
	storeKey   storetypes.StoreKey
	poolKeeper PoolKeeper
	oracle     OracleKeeper
	router     SwapRouter
	bankKeeper BankKeeper
	logger     log.Logger
	authority  string
}

// NewKeeper creates a new curve keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	poolKeeper PoolKeeper,
	oracle OracleKeeper,
	router SwapRouter,
	bankKeeper BankKeeper,
	authority string,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:        cdc,
		storeKey:   storeKey,
		poolKeeper: poolKeeper,
		oracle:     oracle,
		router:     router,
		bankKeeper: bankKeeper,
		authority:  authority,
		logger:     logger.With("module", "x/curve"),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the governance authority address
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// SetOrderbook saves the orderbook singleton
func (k *Keeper) SetOrderbook(ctx sdk.Context, ob *types.Orderbook) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(ob)
	store.Set(OrderbookKey, bz)
}

// GetOrderbook retrieves the orderbook singleton, nil if not initialized
func (k *Keeper) GetOrderbook(ctx sdk.Context) *types.Orderbook {
	store := k.GetStore(ctx)
	bz := store.Get(OrderbookKey)
	if bz == nil {
		return nil
	}
	var ob types.Orderbook
	if err := json.Unmarshal(bz, &ob); err != nil {
		return nil
	}
	return &ob
}

// InitOrderbook seeds the curve at level zero. Governance only; one-shot.
func (k *Keeper) InitOrderbook(ctx context.Context, authority string, params types.CurveParams) (*types.Orderbook, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if authority != k.authority {
		return nil, types.ErrUnauthorized
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if k.GetOrderbook(sdkCtx) != nil {
		return nil, types.ErrOrderbookExists
	}

	ob := types.NewOrderbook(params, sdkCtx.BlockTime().Unix())
	k.SetOrderbook(sdkCtx, ob)

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"curve_initialized",
			sdk.NewAttribute("reward_denom", params.RewardDenom),
			sdk.NewAttribute("initial_price", params.InitialPrice.String()),
			sdk.NewAttribute("initial_volume", params.InitialVolume.String()),
			sdk.NewAttribute("total_supply", params.TotalSupply.String()),
		),
	)

	k.logger.Info("Orderbook initialized",
		"reward_denom", params.RewardDenom,
		"total_supply", params.TotalSupply.String(),
	)

	return ob, nil
}
