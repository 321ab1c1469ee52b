package app

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"cosmossdk.io/core/appmodule"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	abci "github.com/cometbft/cometbft/abci/types"
	cmtcrypto "github.com/cometbft/cometbft/proto/tendermint/crypto"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/baseapp"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/grpc/cmtservice"
	nodeservice "github.com/cosmos/cosmos-sdk/client/grpc/node"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/server/api"
	"github.com/cosmos/cosmos-sdk/server/config"
	servertypes "github.com/cosmos/cosmos-sdk/server/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/cosmos/cosmos-sdk/x/auth"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtx "github.com/cosmos/cosmos-sdk/x/auth/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/cosmos/cosmos-sdk/x/bank"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"github.com/cosmos/cosmos-sdk/x/consensus"
	consensusparamkeeper "github.com/cosmos/cosmos-sdk/x/consensus/keeper"
	consensusparamtypes "github.com/cosmos/cosmos-sdk/x/consensus/types"
	"github.com/cosmos/cosmos-sdk/x/genutil"
	genutiltypes "github.com/cosmos/cosmos-sdk/x/genutil/types"
	"github.com/cosmos/cosmos-sdk/x/staking"
	gogoprotograpc "github.com/cosmos/gogoproto/grpc"

	"github.com/proof-of-capital/poc-chain/metrics"
	"github.com/proof-of-capital/poc-chain/x/curve"
	curvekeeper "github.com/proof-of-capital/poc-chain/x/curve/keeper"
	"github.com/proof-of-capital/poc-chain/x/pool"
	poolkeeper "github.com/proof-of-capital/poc-chain/x/pool/keeper"
	pooltypes "github.com/proof-of-capital/poc-chain/x/pool/types"
	"github.com/proof-of-capital/poc-chain/x/vault"
	vaultkeeper "github.com/proof-of-capital/poc-chain/x/vault/keeper"
)

const (
	Name = "pocd"
)

var (
	// DefaultNodeHome default home directories for the application daemon
	DefaultNodeHome string

	// ModuleBasics defines the module BasicManager used for codec registration
	ModuleBasics = module.NewBasicManager(
		auth.AppModuleBasic{},
		bank.AppModuleBasic{},
		staking.AppModuleBasic{},
		genutil.NewAppModuleBasic(genutiltypes.DefaultMessageValidator),
		consensus.AppModuleBasic{},
		vault.AppModuleBasic{},
		pool.AppModuleBasic{},
		curve.AppModuleBasic{},
	)
)

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultNodeHome = filepath.Join(userHomeDir, ".pocd")
}

// App extends an ABCI application
type App struct {
	*baseapp.BaseApp

	legacyAmino       *codec.LegacyAmino
	appCodec          codec.Codec
	interfaceRegistry codectypes.InterfaceRegistry
	txConfig          client.TxConfig

	// Keys
	keys    map[string]*storetypes.KVStoreKey
	tkeys   map[string]*storetypes.TransientStoreKey
	memKeys map[string]*storetypes.MemoryStoreKey

	// SDK Keepers
	ConsensusParamsKeeper consensusparamkeeper.Keeper
	AccountKeeper         authkeeper.AccountKeeper
	BankKeeper            bankkeeper.BaseKeeper

	// Custom module keepers
	VaultKeeper *vaultkeeper.Keeper
	PoolKeeper  *poolkeeper.Keeper
	CurveKeeper *curvekeeper.Keeper

	// Collaborators shared by the custom keepers
	Oracle *staticOracle

	// Module Manager
	BasicModuleManager module.BasicManager
}

// NewApp returns a new App instance
func NewApp(
	logger log.Logger,
	db dbm.DB,
	traceStore io.Writer,
	loadLatest bool,
	appOpts servertypes.AppOptions,
	baseAppOptions ...func(*baseapp.BaseApp),
) *App {
	// Create codec
	encodingConfig := MakeEncodingConfig()
	appCodec := encodingConfig.Codec
	legacyAmino := encodingConfig.Amino
	interfaceRegistry := encodingConfig.InterfaceRegistry

	// Create base app
	bApp := baseapp.NewBaseApp(Name, logger, db, encodingConfig.TxConfig.TxDecoder(), baseAppOptions...)
	bApp.SetCommitMultiStoreTracer(traceStore)
	bApp.SetInterfaceRegistry(interfaceRegistry)

	// Define store keys
	keys := storetypes.NewKVStoreKeys(
		authtypes.StoreKey,
		banktypes.StoreKey,
		"vault",
		"pool",
		"curve",
		consensusparamtypes.StoreKey,
	)
	tkeys := storetypes.NewTransientStoreKeys()
	memKeys := storetypes.NewMemoryStoreKeys()

	app := &App{
		BaseApp:            bApp,
		legacyAmino:        legacyAmino,
		appCodec:           appCodec,
		interfaceRegistry:  interfaceRegistry,
		txConfig:           encodingConfig.TxConfig,
		keys:               keys,
		tkeys:              tkeys,
		memKeys:            memKeys,
		BasicModuleManager: ModuleBasics,
	}

	// Initialize consensus params keeper
	app.ConsensusParamsKeeper = consensusparamkeeper.NewKeeper(
		appCodec,
		runtime.NewKVStoreService(keys[consensusparamtypes.StoreKey]),
		"", // authority - empty for MVP
		runtime.EventService{},
	)
	bApp.SetParamStore(app.ConsensusParamsKeeper.ParamsStore)

	// Module account permissions. The pool account holds the pooled reserve
	// and the swapvenue account stands in for the external trading venue.
	maccPerms := map[string][]string{
		authtypes.FeeCollectorName: nil,
		pooltypes.ModuleName:       nil,
		SwapVenueModuleName:        nil,
	}

	// Create address codec
	addrCodec := address.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix())

	// Initialize account keeper
	app.AccountKeeper = authkeeper.NewAccountKeeper(
		appCodec,
		runtime.NewKVStoreService(keys[authtypes.StoreKey]),
		authtypes.ProtoBaseAccount,
		maccPerms,
		addrCodec,
		sdk.GetConfig().GetBech32AccountAddrPrefix(),
		"", // authority - empty for MVP
	)

	// Initialize bank keeper
	// Authority is set to the governance module address for bank operations
	authority := authtypes.NewModuleAddress("gov").String()
	app.BankKeeper = bankkeeper.NewBaseKeeper(
		appCodec,
		runtime.NewKVStoreService(keys[banktypes.StoreKey]),
		app.AccountKeeper,
		BlockedModuleAccountAddrs(maccPerms),
		authority,
		logger,
	)

	// Collaborators: price feed, swap router, LP position tracker
	app.Oracle = newStaticOracle(nil)
	router := newSwapVenueRouter(app.BankKeeper, app.Oracle, pooltypes.ModuleName)
	positions := lpPositionTracker{}

	// Initialize custom keepers. The vault keeper is built first and the pool
	// keeper wired into it afterwards; vault deposit admission depends on the
	// pool lifecycle stage.
	app.VaultKeeper = vaultkeeper.NewKeeper(
		appCodec,
		keys["vault"],
		authority,
		logger,
	)

	app.PoolKeeper = poolkeeper.NewKeeper(
		appCodec,
		keys["pool"],
		app.VaultKeeper,
		app.BankKeeper,
		app.Oracle,
		router,
		positions,
		authority,
		logger,
	)
	app.VaultKeeper.SetPoolKeeper(app.PoolKeeper)

	app.CurveKeeper = curvekeeper.NewKeeper(
		appCodec,
		keys["curve"],
		app.PoolKeeper,
		app.Oracle,
		router,
		app.BankKeeper,
		authority,
		logger,
	)

	// Construct msg/query servers for the custom modules; handlers are routed
	// through these instances.
	_ = vaultkeeper.NewMsgServerImpl(app.VaultKeeper)
	_ = poolkeeper.NewMsgServerImpl(app.PoolKeeper)
	_ = curvekeeper.NewMsgServerImpl(app.CurveKeeper)

	// Register QueryServers for SDK modules
	authtypes.RegisterQueryServer(bApp.GRPCQueryRouter(), authkeeper.NewQueryServer(app.AccountKeeper))
	banktypes.RegisterQueryServer(bApp.GRPCQueryRouter(), bankkeeper.NewQuerier(&app.BankKeeper))

	// Mount stores
	app.MountKVStores(keys)
	app.MountTransientStores(tkeys)
	app.MountMemoryStores(memKeys)

	// Initialize and finalize
	app.SetInitChainer(app.InitChainer)
	app.SetBeginBlocker(app.BeginBlocker)
	app.SetEndBlocker(app.EndBlocker)

	if loadLatest {
		if err := app.LoadLatestVersion(); err != nil {
			panic(err)
		}
	}

	return app
}

// Name returns the name of the App
func (app *App) Name() string { return app.BaseApp.Name() }

// BeginBlocker executes begin block logic
func (app *App) BeginBlocker(ctx sdk.Context) (sdk.BeginBlock, error) {
	return sdk.BeginBlock{}, nil
}

// EndBlocker executes end block logic with performance metrics
func (app *App) EndBlocker(ctx sdk.Context) (sdk.EndBlock, error) {
	logger := app.Logger()
	blockHeight := ctx.BlockHeight()
	totalStart := time.Now()

	// Pool lifecycle maintenance: deadline checks and closing threshold
	poolStart := time.Now()
	if err := app.PoolKeeper.EndBlocker(ctx); err != nil {
		logger.Error("pool end blocker failed", "error", err)
	}
	poolDuration := time.Since(poolStart)

	app.updateMetrics(ctx, blockHeight)

	totalDuration := time.Since(totalStart)
	metrics.GetCollector().ObserveEndBlock(float64(totalDuration.Microseconds()) / 1000.0)
	logger.Info("EndBlocker performance",
		"block", blockHeight,
		"total_ms", totalDuration.Milliseconds(),
		"pool_ms", poolDuration.Milliseconds(),
	)

	// Warn if EndBlocker takes too long (> 100ms)
	if totalDuration > 100*time.Millisecond {
		logger.Warn("EndBlocker exceeded latency threshold",
			"block", blockHeight,
			"duration_ms", totalDuration.Milliseconds(),
			"threshold_ms", 100,
		)
	}

	return sdk.EndBlock{}, nil
}

// updateMetrics refreshes the per-block gauges from ledger state.
func (app *App) updateMetrics(ctx sdk.Context, blockHeight int64) {
	collector := metrics.GetCollector()

	poolState := app.PoolKeeper.GetPool(ctx)
	if poolState == nil {
		collector.UpdatePoolGauges(blockHeight, 0, 0, 0, 0, 0, 0)
		return
	}

	supply := app.VaultKeeper.GetTotalSharesSupply(ctx)
	queueDepth := len(app.PoolKeeper.GetExitQueueEntries(ctx))
	vaults := len(app.VaultKeeper.GetAllVaults(ctx))

	collector.UpdatePoolGauges(
		blockHeight,
		int(poolState.Stage),
		mustFloat(math.LegacyNewDecFromInt(supply)),
		mustFloat(math.LegacyNewDecFromInt(poolState.TotalExitQueueShares)),
		queueDepth,
		vaults,
		mustFloat(math.LegacyNewDecFromInt(poolState.ExitPaymentRemaining)),
	)
	collector.CollectedValueUSD.Set(mustFloat(poolState.TotalDepositedUSD))
	collector.TargetValueUSD.Set(mustFloat(poolState.FundraisingTargetUSD))

	if book := app.CurveKeeper.GetOrderbook(ctx); book != nil {
		collector.CurveLevel.Set(float64(book.CurrentLevel))
		collector.CurveTotalSold.Set(mustFloat(math.LegacyNewDecFromInt(book.TotalSold)))
	}
}

// StakingGenesisState represents the staking module's genesis state
type StakingGenesisState struct {
	Validators []struct {
		ConsensusPubkey struct {
			Type string `json:"@type"`
			Key  string `json:"key"`
		} `json:"consensus_pubkey"`
		Tokens string `json:"tokens"`
		Status string `json:"status"`
	} `json:"validators"`
}

// GenutilGenesisState represents the genutil module's genesis state
type GenutilGenesisState struct {
	GenTxs []json.RawMessage `json:"gen_txs"`
}

// GenTx represents a genesis transaction
type GenTx struct {
	Body struct {
		Messages []json.RawMessage `json:"messages"`
	} `json:"body"`
}

// MsgCreateValidator represents the create validator message
type MsgCreateValidator struct {
	Type   string `json:"@type"`
	Pubkey struct {
		Type string `json:"@type"`
		Key  string `json:"key"`
	} `json:"pubkey"`
	Value struct {
		Denom  string `json:"denom"`
		Amount string `json:"amount"`
	} `json:"value"`
}

// OracleGenesisState seeds the static price feed
type OracleGenesisState struct {
	Prices map[string]string `json:"prices"`
}

// InitChainer initializes the chain
func (app *App) InitChainer(ctx sdk.Context, req *abci.RequestInitChain) (*abci.ResponseInitChain, error) {
	var genesisState map[string]json.RawMessage
	if err := json.Unmarshal(req.AppStateBytes, &genesisState); err != nil {
		return nil, err
	}

	// Seed the oracle price table from genesis
	if oracleGenesis, ok := genesisState["oracle"]; ok {
		var oracleState OracleGenesisState
		if err := json.Unmarshal(oracleGenesis, &oracleState); err == nil {
			for denom, raw := range oracleState.Prices {
				price, err := math.LegacyNewDecFromStr(raw)
				if err != nil {
					continue
				}
				app.Oracle.SetPrice(denom, price)
			}
		}
	}

	// If validators are provided in request, use them
	if len(req.Validators) > 0 {
		return &abci.ResponseInitChain{
			Validators: req.Validators,
		}, nil
	}

	// Try to get validators from staking genesis state first
	var validators []abci.ValidatorUpdate
	if stakingGenesis, ok := genesisState["staking"]; ok {
		var stakingState StakingGenesisState
		if err := json.Unmarshal(stakingGenesis, &stakingState); err == nil {
			for _, val := range stakingState.Validators {
				if val.Status == "BOND_STATUS_BONDED" {
					pubKeyBytes, err := base64.StdEncoding.DecodeString(val.ConsensusPubkey.Key)
					if err != nil {
						continue
					}
					validators = append(validators, abci.ValidatorUpdate{
						PubKey: cmtcrypto.PublicKey{
							Sum: &cmtcrypto.PublicKey_Ed25519{
								Ed25519: pubKeyBytes,
							},
						},
						Power: 100,
					})
				}
			}
		}
	}

	// If no validators from staking, try to extract from gentx
	if len(validators) == 0 {
		if genutilGenesis, ok := genesisState["genutil"]; ok {
			var genutilState GenutilGenesisState
			if err := json.Unmarshal(genutilGenesis, &genutilState); err == nil {
				for _, genTxRaw := range genutilState.GenTxs {
					var genTx GenTx
					if err := json.Unmarshal(genTxRaw, &genTx); err != nil {
						continue
					}
					for _, msgRaw := range genTx.Body.Messages {
						var msg MsgCreateValidator
						if err := json.Unmarshal(msgRaw, &msg); err != nil {
							continue
						}
						if msg.Type == "/cosmos.staking.v1beta1.MsgCreateValidator" {
							pubKeyBytes, err := base64.StdEncoding.DecodeString(msg.Pubkey.Key)
							if err != nil {
								continue
							}
							validators = append(validators, abci.ValidatorUpdate{
								PubKey: cmtcrypto.PublicKey{
									Sum: &cmtcrypto.PublicKey_Ed25519{
										Ed25519: pubKeyBytes,
									},
								},
								Power: 100,
							})
						}
					}
				}
			}
		}
	}

	return &abci.ResponseInitChain{
		Validators: validators,
	}, nil
}

// LoadHeight loads a particular height
func (app *App) LoadHeight(height int64) error {
	return app.LoadVersion(height)
}

// LegacyAmino returns the legacy amino codec
func (app *App) LegacyAmino() *codec.LegacyAmino {
	return app.legacyAmino
}

// AppCodec returns the app codec
func (app *App) AppCodec() codec.Codec {
	return app.appCodec
}

// InterfaceRegistry returns the InterfaceRegistry
func (app *App) InterfaceRegistry() codectypes.InterfaceRegistry {
	return app.interfaceRegistry
}

// RegisterAPIRoutes registers all application module routes
func (app *App) RegisterAPIRoutes(apiSvr *api.Server, apiConfig config.APIConfig) {
	clientCtx := apiSvr.ClientCtx
	// Register new routes
	ModuleBasics.RegisterGRPCGatewayRoutes(clientCtx, apiSvr.GRPCGatewayRouter)

	// Ledger metrics exporter
	apiSvr.Router.Handle("/metrics/pool", metrics.Handler())
}

// GetKey returns a store key
func (app *App) GetKey(storeKey string) *storetypes.KVStoreKey {
	return app.keys[storeKey]
}

// GetTKey returns a transient store key
func (app *App) GetTKey(storeKey string) *storetypes.TransientStoreKey {
	return app.tkeys[storeKey]
}

// GetMemKey returns a memory store key
func (app *App) GetMemKey(storeKey string) *storetypes.MemoryStoreKey {
	return app.memKeys[storeKey]
}

// TxConfig returns the transaction config
func (app *App) TxConfig() client.TxConfig {
	return app.txConfig
}

// AutoCliOpts returns the autocli options for the app
func (app *App) AutoCliOpts() map[string]appmodule.AppModule {
	return map[string]appmodule.AppModule{}
}

// RegisterTxService implements the Application.RegisterTxService method
func (app *App) RegisterTxService(clientCtx client.Context) {
	authtx.RegisterTxService(app.BaseApp.GRPCQueryRouter(), clientCtx, app.BaseApp.Simulate, app.interfaceRegistry)
}

// RegisterTendermintService implements the Application.RegisterTendermintService method
func (app *App) RegisterTendermintService(clientCtx client.Context) {
	cmtservice.RegisterTendermintService(
		clientCtx,
		app.BaseApp.GRPCQueryRouter(),
		app.interfaceRegistry,
		app.Query,
	)
}

// RegisterNodeService implements the Application.RegisterNodeService method
func (app *App) RegisterNodeService(clientCtx client.Context, cfg config.Config) {
	nodeservice.RegisterNodeService(clientCtx, app.BaseApp.GRPCQueryRouter(), cfg)
}

// RegisterGRPCServer registers the app's gRPC services
func (app *App) RegisterGRPCServer(server gogoprotograpc.Server) {
	// Custom gRPC services are registered via MsgServiceRouter in NewApp
}

// SimulationManager returns the app's simulation manager
func (app *App) SimulationManager() *module.SimulationManager {
	return nil
}

// BlockedModuleAccountAddrs returns module account addresses that should not
// receive coins (these accounts are typically module accounts like fee collector)
func BlockedModuleAccountAddrs(maccPerms map[string][]string) map[string]bool {
	blockedAddrs := make(map[string]bool)
	for acc := range maccPerms {
		blockedAddrs[authtypes.NewModuleAddress(acc).String()] = true
	}
	// The pool reserve and the swap venue move funds as part of normal
	// operation, so they stay unblocked.
	delete(blockedAddrs, authtypes.NewModuleAddress(pooltypes.ModuleName).String())
	delete(blockedAddrs, authtypes.NewModuleAddress(SwapVenueModuleName).String())
	return blockedAddrs
}
