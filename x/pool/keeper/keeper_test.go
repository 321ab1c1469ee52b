package keeper

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/proof-of-capital/poc-chain/x/pool/types"
	vaultkeeper "github.com/proof-of-capital/poc-chain/x/vault/keeper"
	vaulttypes "github.com/proof-of-capital/poc-chain/x/vault/types"
)

const (
	testBlockTime = int64(1_700_000_000)
	testDeadline  = testBlockTime + 86_400
	testCooldown  = int64(3_600)

	mainDenom   = "uusdc"
	rewardDenom = "ureward"

	testRouter = "venue1"
)

// testAddr derives a deterministic bech32 address from a single byte.
func testAddr(b byte) string {
	return sdk.AccAddress(bytes.Repeat([]byte{b}, 20)).String()
}

var (
	testAuthority = testAddr(0xAA)

	royaltyAddr  = testAddr(0x01)
	operatorAddr = testAddr(0x02)

	owner1 = testAddr(0x10)
	owner2 = testAddr(0x11)
)

// mockBankKeeper is an in-memory ledger keyed by bech32 address and denom.
type mockBankKeeper struct {
	balances map[string]map[string]math.Int
}

func newMockBankKeeper() *mockBankKeeper {
	return &mockBankKeeper{balances: make(map[string]map[string]math.Int)}
}

func (m *mockBankKeeper) balanceOf(addr, denom string) math.Int {
	if acct, ok := m.balances[addr]; ok {
		if amt, ok := acct[denom]; ok {
			return amt
		}
	}
	return math.ZeroInt()
}

func (m *mockBankKeeper) setBalance(addr, denom string, amt math.Int) {
	if m.balances[addr] == nil {
		m.balances[addr] = make(map[string]math.Int)
	}
	m.balances[addr][denom] = amt
}

func (m *mockBankKeeper) transfer(from, to sdk.AccAddress, amt sdk.Coins) error {
	for _, coin := range amt {
		have := m.balanceOf(from.String(), coin.Denom)
		if have.LT(coin.Amount) {
			return fmt.Errorf("insufficient funds: have %s%s, need %s", have, coin.Denom, coin.Amount)
		}
		m.setBalance(from.String(), coin.Denom, have.Sub(coin.Amount))
		m.setBalance(to.String(), coin.Denom, m.balanceOf(to.String(), coin.Denom).Add(coin.Amount))
	}
	return nil
}

func (m *mockBankKeeper) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, m.balanceOf(addr.String(), denom))
}

func (m *mockBankKeeper) SendCoinsFromAccountToModule(_ context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return m.transfer(senderAddr, authtypes.NewModuleAddress(recipientModule), amt)
}

func (m *mockBankKeeper) SendCoinsFromModuleToAccount(_ context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return m.transfer(authtypes.NewModuleAddress(senderModule), recipientAddr, amt)
}

// mockOracle serves prices from a fixed table.
type mockOracle struct {
	prices map[string]math.LegacyDec
}

func (m *mockOracle) Price(_ sdk.Context, denom string) (math.LegacyDec, bool) {
	p, ok := m.prices[denom]
	return p, ok
}

// mockSwapRouter converts at oracle cross rates against the pool's custody
// balance, mirroring what an external venue settlement does to it.
type mockSwapRouter struct {
	bank   *mockBankKeeper
	oracle *mockOracle

	// fixedOut, when set, overrides the oracle-rate conversion.
	fixedOut *math.Int
	failWith error
}

func (m *mockSwapRouter) Execute(ctx sdk.Context, _ string, _ uint32, _ []byte, tokenIn, tokenOut string, amountIn, _ math.Int) (math.Int, error) {
	if m.failWith != nil {
		return math.ZeroInt(), m.failWith
	}
	out := math.ZeroInt()
	if m.fixedOut != nil {
		out = *m.fixedOut
	} else {
		priceIn, _ := m.oracle.Price(ctx, tokenIn)
		priceOut, _ := m.oracle.Price(ctx, tokenOut)
		out = priceIn.MulInt(amountIn).Quo(priceOut).TruncateInt()
	}

	poolAddr := authtypes.NewModuleAddress(types.ModuleName).String()
	m.bank.setBalance(poolAddr, tokenIn, m.bank.balanceOf(poolAddr, tokenIn).Sub(amountIn))
	m.bank.setBalance(poolAddr, tokenOut, m.bank.balanceOf(poolAddr, tokenOut).Add(out))
	return out, nil
}

// mockPositionKeeper reports configurable liquidity-position state.
type mockPositionKeeper struct {
	active     bool
	lockExpiry int64
}

func (m *mockPositionKeeper) HasActivePositions(_ sdk.Context) bool { return m.active }
func (m *mockPositionKeeper) LockExpiry(_ sdk.Context) int64       { return m.lockExpiry }

// testFixture bundles the pool keeper with a real vault keeper and mocked
// bank, oracle, router, and position collaborators.
type testFixture struct {
	keeper    *Keeper
	vaults    *vaultkeeper.Keeper
	bank      *mockBankKeeper
	oracle    *mockOracle
	router    *mockSwapRouter
	positions *mockPositionKeeper
	ctx       sdk.Context
}

// setupPoolKeeper creates a pool keeper over an in-memory store.
func setupPoolKeeper(t *testing.T) *testFixture {
	return setupPoolKeeperWrapped(t, nil)
}

// setupPoolKeeperWrapped lets a test interpose on the vault collaborator:
// wrap receives the real registry backing the fixture and returns what the
// pool keeper sees.
func setupPoolKeeperWrapped(t *testing.T, wrap func(*vaultkeeper.Keeper) VaultKeeper) *testFixture {
	t.Helper()

	poolKey := storetypes.NewKVStoreKey(types.StoreKey)
	vaultKey := storetypes.NewKVStoreKey(vaulttypes.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(poolKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(vaultKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger()).
		WithBlockTime(time.Unix(testBlockTime, 0))

	cdc := codec.NewProtoCodec(codectypes.NewInterfaceRegistry())
	bank := newMockBankKeeper()
	oracle := &mockOracle{prices: map[string]math.LegacyDec{
		mainDenom:   math.LegacyOneDec(),
		rewardDenom: math.LegacyNewDec(2),
	}}
	router := &mockSwapRouter{bank: bank, oracle: oracle}
	positions := &mockPositionKeeper{}

	vaults := vaultkeeper.NewKeeper(cdc, vaultKey, testAuthority, log.NewNopLogger())
	var vk VaultKeeper = vaults
	if wrap != nil {
		vk = wrap(vaults)
	}
	keeper := NewKeeper(cdc, poolKey, vk, bank, oracle, router, positions, testAuthority, log.NewNopLogger())
	vaults.SetPoolKeeper(keeper)

	return &testFixture{
		keeper:    keeper,
		vaults:    vaults,
		bank:      bank,
		oracle:    oracle,
		router:    router,
		positions: positions,
		ctx:       ctx,
	}
}

// defaultPoolConfig returns a valid fundraising configuration.
func defaultPoolConfig() types.PoolConfig {
	return types.PoolConfig{
		MainCollateralDenom:  mainDenom,
		RewardDenom:          rewardDenom,
		FundraisingTargetUSD: math.LegacyNewDec(1000),
		FundraisingDeadline:  testDeadline,
		MinDeposit:           math.NewInt(10),
		RoyaltyBips:          500,
		CreatorProfitBips:    1000,
		DAOProfitBips:        2000,
		InfrastructureBips:   300,
		RoyaltyRecipient:     royaltyAddr,
		OperatorRecipient:    operatorAddr,
		AllocationCooldown:   testCooldown,
	}
}

// mustInitPool initializes the pool with the default configuration.
func mustInitPool(t *testing.T, f *testFixture) {
	t.Helper()
	if err := f.keeper.InitPool(f.ctx, testAuthority, defaultPoolConfig()); err != nil {
		t.Fatalf("failed to init pool: %v", err)
	}
}

// mustCreateVault creates a vault and funds the owner with main collateral.
func mustCreateVault(t *testing.T, f *testFixture, owner string, depositLimit, fund int64) *vaulttypes.Vault {
	t.Helper()
	vault, err := f.vaults.CreateVault(f.ctx, owner, testAddr(0xB0), testAddr(0xC0), math.NewInt(depositLimit))
	if err != nil {
		t.Fatalf("failed to create vault for %s: %v", owner, err)
	}
	if fund > 0 {
		f.bank.setBalance(owner, mainDenom, math.NewInt(fund))
	}
	return vault
}

// mustDeposit deposits main collateral from owner into the fundraising pool.
func mustDeposit(t *testing.T, f *testFixture, owner string, amount int64) {
	t.Helper()
	if _, err := f.keeper.Deposit(f.ctx, owner, math.NewInt(amount)); err != nil {
		t.Fatalf("failed to deposit %d for %s: %v", amount, owner, err)
	}
}

// poolModuleAddr is the bech32 custody account address.
func poolModuleAddr() string {
	return authtypes.NewModuleAddress(types.ModuleName).String()
}

// addProfit credits the custody account with unaccounted balance in denom.
func addProfit(f *testFixture, denom string, amount int64) {
	addr := poolModuleAddr()
	f.bank.setBalance(addr, denom, f.bank.balanceOf(addr, denom).Add(math.NewInt(amount)))
}

// advanceToActive walks the full pipeline to StageActive: two participant
// vaults deposit 600 and 400 at a $1 oracle price, the collected 1000 uusdc
// is exchanged for 500 ureward at the $2 oracle price, and shares are minted
// at the realized price of $2 per unit. Final supply: 300 + 200 participant
// shares plus a 15-share operator allotment.
func advanceToActive(t *testing.T, f *testFixture) {
	t.Helper()
	mustInitPool(t, f)

	mustCreateVault(t, f, operatorAddr, 1_000_000, 0)
	mustCreateVault(t, f, owner1, 1_000_000, 600)
	mustCreateVault(t, f, owner2, 1_000_000, 400)
	mustDeposit(t, f, owner1, 600)
	mustDeposit(t, f, owner2, 400)

	if err := f.keeper.FinalizeFundraisingCollection(f.ctx, testAuthority); err != nil {
		t.Fatalf("failed to finalize collection: %v", err)
	}
	if err := f.keeper.ExecuteAction(f.ctx, testAuthority, types.Action{
		Type:      types.ActionSetRouter,
		SetRouter: &types.SetRouterAction{Router: testRouter, Enable: true},
	}); err != nil {
		t.Fatalf("failed to register router: %v", err)
	}
	if _, err := f.keeper.RecordExchange(f.ctx, testAuthority, testRouter, 0, nil, math.NewInt(1000), math.NewInt(400)); err != nil {
		t.Fatalf("failed to record exchange: %v", err)
	}
	if err := f.keeper.FinalizeExchange(f.ctx, testAuthority); err != nil {
		t.Fatalf("failed to finalize exchange: %v", err)
	}
	if err := f.keeper.ConfirmLPProvisioned(f.ctx, testAuthority); err != nil {
		t.Fatalf("failed to confirm LP: %v", err)
	}
}
