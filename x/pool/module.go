package pool

import (
	"encoding/json"

	"cosmossdk.io/core/appmodule"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/grpc-ecosystem/grpc-gateway/runtime"

	"github.com/proof-of-capital/poc-chain/x/pool/keeper"
	"github.com/proof-of-capital/poc-chain/x/pool/types"
)

const (
	ModuleName = types.ModuleName
)

var (
	_ module.AppModuleBasic = AppModuleBasic{}
	_ appmodule.AppModule   = AppModule{}
)

// AppModuleBasic defines the basic application module for the pool
type AppModuleBasic struct{}

// Name returns the module's name
func (AppModuleBasic) Name() string {
	return ModuleName
}

// RegisterLegacyAminoCodec registers the module's types on the given LegacyAmino codec
func (AppModuleBasic) RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&types.MsgDeposit{}, "pool/MsgDeposit", nil)
	cdc.RegisterConcrete(&types.MsgFinalizeFundraising{}, "pool/MsgFinalizeFundraising", nil)
	cdc.RegisterConcrete(&types.MsgRecordExchange{}, "pool/MsgRecordExchange", nil)
	cdc.RegisterConcrete(&types.MsgFinalizeExchange{}, "pool/MsgFinalizeExchange", nil)
	cdc.RegisterConcrete(&types.MsgConfirmLPProvisioned{}, "pool/MsgConfirmLPProvisioned", nil)
	cdc.RegisterConcrete(&types.MsgCancelFundraising{}, "pool/MsgCancelFundraising", nil)
	cdc.RegisterConcrete(&types.MsgWithdrawCancelled{}, "pool/MsgWithdrawCancelled", nil)
	cdc.RegisterConcrete(&types.MsgRequestExit{}, "pool/MsgRequestExit", nil)
	cdc.RegisterConcrete(&types.MsgCancelExit{}, "pool/MsgCancelExit", nil)
	cdc.RegisterConcrete(&types.MsgProcessExitQueue{}, "pool/MsgProcessExitQueue", nil)
	cdc.RegisterConcrete(&types.MsgDistributeProfit{}, "pool/MsgDistributeProfit", nil)
	cdc.RegisterConcrete(&types.MsgClaimRewards{}, "pool/MsgClaimRewards", nil)
	cdc.RegisterConcrete(&types.MsgExecuteAction{}, "pool/MsgExecuteAction", nil)
}

// RegisterInterfaces registers the module's interface types
func (AppModuleBasic) RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&types.MsgDeposit{},
		&types.MsgFinalizeFundraising{},
		&types.MsgRecordExchange{},
		&types.MsgFinalizeExchange{},
		&types.MsgConfirmLPProvisioned{},
		&types.MsgCancelFundraising{},
		&types.MsgWithdrawCancelled{},
		&types.MsgRequestExit{},
		&types.MsgCancelExit{},
		&types.MsgProcessExitQueue{},
		&types.MsgDistributeProfit{},
		&types.MsgClaimRewards{},
		&types.MsgExecuteAction{},
	)
}

// DefaultGenesis returns default genesis state as raw bytes
func (AppModuleBasic) DefaultGenesis(cdc codec.JSONCodec) json.RawMessage {
	return nil
}

// ValidateGenesis performs genesis state validation
func (AppModuleBasic) ValidateGenesis(cdc codec.JSONCodec, config client.TxEncodingConfig, bz json.RawMessage) error {
	return nil
}

// RegisterGRPCGatewayRoutes registers the gRPC Gateway routes for the module
func (AppModuleBasic) RegisterGRPCGatewayRoutes(clientCtx client.Context, mux *runtime.ServeMux) {
}

// AppModule implements an application module for the pool module
type AppModule struct {
	AppModuleBasic
	keeper *keeper.Keeper
}

// NewAppModule creates a new AppModule object
func NewAppModule(k *keeper.Keeper) AppModule {
	return AppModule{
		AppModuleBasic: AppModuleBasic{},
		keeper:         k,
	}
}

// Name returns the module's name
func (am AppModule) Name() string {
	return ModuleName
}

// RegisterServices registers module services
func (am AppModule) RegisterServices(cfg module.Configurator) {
	_ = keeper.NewMsgServerImpl(am.keeper)
}

// EndBlock processes end-of-block lifecycle maintenance
func (am AppModule) EndBlock(ctx sdk.Context) error {
	return am.keeper.EndBlocker(ctx)
}

// IsOnePerModuleType implements the depinject.OnePerModuleType interface
func (am AppModule) IsOnePerModuleType() {}

// IsAppModule implements the appmodule.AppModule interface
func (am AppModule) IsAppModule() {}
