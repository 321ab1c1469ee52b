package keeper

import (
	"bytes"
	"context"
	"errors"
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

	"github.com/proof-of-capital/poc-chain/x/curve/types"
)

const (
	rewardDenom     = "ureward"
	collateralDenom = "uusdc"
	reserveModule   = "pool"
	testRouter      = "venue1"
)

// testAddr derives a deterministic bech32 address from a single byte.
func testAddr(b byte) string {
	return sdk.AccAddress(bytes.Repeat([]byte{b}, 20)).String()
}

var (
	testAuthority = testAddr(0xAA)
	sellerAddr    = testAddr(0x10)
)

// mockPoolKeeper reports configurable pool-side gates.
type mockPoolKeeper struct {
	operating bool
	sellable  map[string]bool
	routers   map[string]bool
}

func (m *mockPoolKeeper) IsOperating(_ sdk.Context) bool { return m.operating }

func (m *mockPoolKeeper) IsSellableToken(_ sdk.Context, denom string) bool { return m.sellable[denom] }

func (m *mockPoolKeeper) IsRegisteredRouter(_ sdk.Context, router string) bool {
	return m.routers[router]
}

func (m *mockPoolKeeper) ReserveModuleName() string { return reserveModule }

// mockOracle serves prices from a fixed table.
type mockOracle struct {
	prices map[string]math.LegacyDec
}

func (m *mockOracle) Price(_ sdk.Context, denom string) (math.LegacyDec, bool) {
	p, ok := m.prices[denom]
	return p, ok
}

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

func (m *mockBankKeeper) SendCoinsFromAccountToModule(_ context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return m.transfer(senderAddr, authtypes.NewModuleAddress(recipientModule), amt)
}

func (m *mockBankKeeper) SendCoinsFromModuleToAccount(_ context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return m.transfer(authtypes.NewModuleAddress(senderModule), recipientAddr, amt)
}

// mockSwapRouter stands in for the external venue: it takes the input from
// the reserve and credits the reserve with the converted output.
type mockSwapRouter struct {
	bank   *mockBankKeeper
	oracle *mockOracle

	// fixedOut, when set, overrides the oracle-rate conversion.
	fixedOut *math.Int
}

func (m *mockSwapRouter) Execute(ctx sdk.Context, _ string, _ uint32, _ []byte, tokenIn, tokenOut string, amountIn, _ math.Int) (math.Int, error) {
	out := math.ZeroInt()
	if m.fixedOut != nil {
		out = *m.fixedOut
	} else {
		priceIn, _ := m.oracle.Price(ctx, tokenIn)
		priceOut, _ := m.oracle.Price(ctx, tokenOut)
		out = priceIn.MulInt(amountIn).Quo(priceOut).TruncateInt()
	}
	reserveAddr := authtypes.NewModuleAddress(reserveModule).String()
	m.bank.setBalance(reserveAddr, tokenIn, m.bank.balanceOf(reserveAddr, tokenIn).Sub(amountIn))
	m.bank.setBalance(reserveAddr, tokenOut, m.bank.balanceOf(reserveAddr, tokenOut).Add(out))
	return out, nil
}

// curveFixture bundles the curve keeper with its mocked collaborators.
type curveFixture struct {
	keeper *Keeper
	pool   *mockPoolKeeper
	oracle *mockOracle
	bank   *mockBankKeeper
	router *mockSwapRouter
	ctx    sdk.Context
}

// setupCurveKeeper creates a curve keeper over an in-memory store with an
// operating pool and a registered router.
func setupCurveKeeper(t *testing.T) *curveFixture {
	t.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger()).
		WithBlockTime(time.Unix(1_700_000_000, 0))

	cdc := codec.NewProtoCodec(codectypes.NewInterfaceRegistry())
	pool := &mockPoolKeeper{
		operating: true,
		sellable:  map[string]bool{collateralDenom: true},
		routers:   map[string]bool{testRouter: true},
	}
	oracle := &mockOracle{prices: map[string]math.LegacyDec{
		rewardDenom:     math.LegacyNewDec(2),
		collateralDenom: math.LegacyOneDec(),
	}}
	bank := newMockBankKeeper()
	router := &mockSwapRouter{bank: bank, oracle: oracle}

	keeper := NewKeeper(cdc, storeKey, pool, oracle, router, bank, testAuthority, log.NewNopLogger())

	return &curveFixture{keeper: keeper, pool: pool, oracle: oracle, bank: bank, router: router, ctx: ctx}
}

// defaultCurveParams returns a stepped schedule: 100-unit levels, price
// starting at 1.0 and rising 10% per level.
func defaultCurveParams() types.CurveParams {
	return types.CurveParams{
		RewardDenom:             rewardDenom,
		InitialPrice:            math.LegacyOneDec(),
		InitialVolume:           math.NewInt(100),
		PriceStepBips:           1000,
		VolumeStepBips:          0,
		ProportionalityCoefBips: 10_000,
		TotalSupply:             math.NewInt(1000),
		MaxOracleDeviationBips:  500,
	}
}

// mustInitOrderbook seeds the curve with the default schedule.
func mustInitOrderbook(t *testing.T, f *curveFixture) {
	t.Helper()
	if _, err := f.keeper.InitOrderbook(f.ctx, testAuthority, defaultCurveParams()); err != nil {
		t.Fatalf("failed to init orderbook: %v", err)
	}
}

// TestInitOrderbook tests one-shot curve initialization
func TestInitOrderbook(t *testing.T) {
	f := setupCurveKeeper(t)

	if _, err := f.keeper.InitOrderbook(f.ctx, testAddr(0x99), defaultCurveParams()); !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	bad := defaultCurveParams()
	bad.InitialPrice = math.LegacyZeroDec()
	if _, err := f.keeper.InitOrderbook(f.ctx, testAuthority, bad); !errors.Is(err, types.ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}

	mustInitOrderbook(t, f)
	ob := f.keeper.GetOrderbook(f.ctx)
	if ob == nil {
		t.Fatal("expected orderbook after init")
	}
	if ob.CurrentLevel != 0 || !ob.CurrentLevelPrice.Equal(math.LegacyOneDec()) {
		t.Errorf("expected level 0 at price 1.0, got level %d at %s", ob.CurrentLevel, ob.CurrentLevelPrice)
	}

	if _, err := f.keeper.InitOrderbook(f.ctx, testAuthority, defaultCurveParams()); !errors.Is(err, types.ErrOrderbookExists) {
		t.Errorf("expected ErrOrderbookExists, got %v", err)
	}
}

// TestQuoteSale tests curve walking without state mutation
func TestQuoteSale(t *testing.T) {
	f := setupCurveKeeper(t)
	mustInitOrderbook(t, f)

	testCases := []struct {
		name             string
		amount           int64
		expectedProceeds int64
		expectedLevels   uint64
	}{
		{
			name:             "within the first level",
			amount:           50,
			expectedProceeds: 50,
			expectedLevels:   0,
		},
		{
			name:             "exactly one level",
			amount:           100,
			expectedProceeds: 100,
			expectedLevels:   1,
		},
		{
			// 100 at 1.0 plus 50 at 1.1
			name:             "crossing into the second level",
			amount:           150,
			expectedProceeds: 155,
			expectedLevels:   1,
		},
		{
			// 100 at 1.0, 100 at 1.1, 50 at 1.21
			name:             "crossing two levels",
			amount:           250,
			expectedProceeds: 270,
			expectedLevels:   2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, fill, err := f.keeper.QuoteSale(f.ctx, math.NewInt(tc.amount))
			if err != nil {
				t.Fatalf("quote failed: %v", err)
			}
			if !fill.Proceeds.Equal(math.NewInt(tc.expectedProceeds)) {
				t.Errorf("expected proceeds %d, got %s", tc.expectedProceeds, fill.Proceeds)
			}
			if fill.LevelsCrossed != tc.expectedLevels {
				t.Errorf("expected %d levels crossed, got %d", tc.expectedLevels, fill.LevelsCrossed)
			}

			// Quoting never commits: the stored book stays at level zero
			if got := f.keeper.GetOrderbook(f.ctx); got.CurrentLevel != 0 || !got.TotalSold.IsZero() {
				t.Errorf("expected stored book untouched, got level %d sold %s", got.CurrentLevel, got.TotalSold)
			}
		})
	}

	// The hard cap fences the walk
	if _, _, err := f.keeper.QuoteSale(f.ctx, math.NewInt(1001)); !errors.Is(err, types.ErrSupplyExceeded) {
		t.Errorf("expected ErrSupplyExceeded, got %v", err)
	}
	if _, _, err := f.keeper.QuoteSale(f.ctx, math.ZeroInt()); !errors.Is(err, types.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

// TestSellReward tests the full sale path through the swap collaborator
func TestSellReward(t *testing.T) {
	f := setupCurveKeeper(t)
	mustInitOrderbook(t, f)
	f.bank.setBalance(sellerAddr, rewardDenom, math.NewInt(150))

	// The venue converts the 150 units at the oracle cross rate to 300
	// uusdc, matching the oracle-implied expectation exactly; the seller is
	// paid the curve proceeds of 155.
	fill, err := f.keeper.SellReward(f.ctx, sellerAddr, math.NewInt(150), collateralDenom, testRouter, 0, nil, math.NewInt(250))
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if !fill.UnitsSold.Equal(math.NewInt(150)) {
		t.Errorf("expected 150 units sold, got %s", fill.UnitsSold)
	}
	if !fill.Proceeds.Equal(math.NewInt(155)) {
		t.Errorf("expected curve proceeds 155, got %s", fill.Proceeds)
	}

	// The seller's reward moved to the reserve and the proceeds came back
	if !f.bank.balanceOf(sellerAddr, rewardDenom).IsZero() {
		t.Errorf("expected seller reward spent, got %s", f.bank.balanceOf(sellerAddr, rewardDenom))
	}
	if !f.bank.balanceOf(sellerAddr, collateralDenom).Equal(math.NewInt(155)) {
		t.Errorf("expected seller paid 155, got %s", f.bank.balanceOf(sellerAddr, collateralDenom))
	}

	// The reserve holds no residual reward and keeps the conversion surplus
	reserveAddr := authtypes.NewModuleAddress(reserveModule).String()
	if !f.bank.balanceOf(reserveAddr, rewardDenom).IsZero() {
		t.Errorf("expected reserve reward flat, got %s", f.bank.balanceOf(reserveAddr, rewardDenom))
	}
	if !f.bank.balanceOf(reserveAddr, collateralDenom).Equal(math.NewInt(145)) {
		t.Errorf("expected reserve surplus 145, got %s", f.bank.balanceOf(reserveAddr, collateralDenom))
	}

	// The advanced cache was committed
	ob := f.keeper.GetOrderbook(f.ctx)
	if ob.CurrentLevel != 1 {
		t.Errorf("expected level 1 after sale, got %d", ob.CurrentLevel)
	}
	if !ob.CurrentLevelSold.Equal(math.NewInt(50)) {
		t.Errorf("expected 50 sold at level 1, got %s", ob.CurrentLevelSold)
	}
	if !ob.TotalSold.Equal(math.NewInt(150)) {
		t.Errorf("expected total sold 150, got %s", ob.TotalSold)
	}
	if !ob.CurrentLevelPrice.Equal(math.LegacyMustNewDecFromStr("1.1")) {
		t.Errorf("expected level price 1.1, got %s", ob.CurrentLevelPrice)
	}
}

// TestSellRewardAcrossLevels tests that consecutive sales keep clearing as
// the curve price climbs away from the oracle rate
func TestSellRewardAcrossLevels(t *testing.T) {
	f := setupCurveKeeper(t)
	mustInitOrderbook(t, f)
	f.bank.setBalance(sellerAddr, rewardDenom, math.NewInt(300))

	if _, err := f.keeper.SellReward(f.ctx, sellerAddr, math.NewInt(150), collateralDenom, testRouter, 0, nil, math.ZeroInt()); err != nil {
		t.Fatalf("first sell failed: %v", err)
	}

	// Second 150 units: 50 at 1.1 and 100 at 1.21. The venue still converts
	// the unit count at the oracle rate, so the oracle guard sees 300
	// against an expectation of 300 regardless of the curve level.
	fill, err := f.keeper.SellReward(f.ctx, sellerAddr, math.NewInt(150), collateralDenom, testRouter, 0, nil, math.ZeroInt())
	if err != nil {
		t.Fatalf("second sell failed: %v", err)
	}
	if !fill.Proceeds.Equal(math.NewInt(176)) {
		t.Errorf("expected curve proceeds 176, got %s", fill.Proceeds)
	}
	if fill.LevelsCrossed != 2 {
		t.Errorf("expected 2 levels crossed, got %d", fill.LevelsCrossed)
	}

	if !f.bank.balanceOf(sellerAddr, collateralDenom).Equal(math.NewInt(331)) {
		t.Errorf("expected seller paid 331 in total, got %s", f.bank.balanceOf(sellerAddr, collateralDenom))
	}
	reserveAddr := authtypes.NewModuleAddress(reserveModule).String()
	if !f.bank.balanceOf(reserveAddr, rewardDenom).IsZero() {
		t.Errorf("expected reserve reward flat, got %s", f.bank.balanceOf(reserveAddr, rewardDenom))
	}
	if !f.bank.balanceOf(reserveAddr, collateralDenom).Equal(math.NewInt(269)) {
		t.Errorf("expected reserve surplus 269, got %s", f.bank.balanceOf(reserveAddr, collateralDenom))
	}

	ob := f.keeper.GetOrderbook(f.ctx)
	if ob.CurrentLevel != 3 {
		t.Errorf("expected level 3 after two sales, got %d", ob.CurrentLevel)
	}
	if !ob.TotalSold.Equal(math.NewInt(300)) {
		t.Errorf("expected total sold 300, got %s", ob.TotalSold)
	}
}

// TestSellRewardRejections tests the sale guard clauses
func TestSellRewardRejections(t *testing.T) {
	f := setupCurveKeeper(t)
	mustInitOrderbook(t, f)
	f.bank.setBalance(sellerAddr, rewardDenom, math.NewInt(1000))

	// Pool gates
	f.pool.operating = false
	if _, err := f.keeper.SellReward(f.ctx, sellerAddr, math.NewInt(10), collateralDenom, testRouter, 0, nil, math.ZeroInt()); !errors.Is(err, types.ErrPoolNotOperating) {
		t.Errorf("expected ErrPoolNotOperating, got %v", err)
	}
	f.pool.operating = true

	if _, err := f.keeper.SellReward(f.ctx, sellerAddr, math.NewInt(10), "ufoo", testRouter, 0, nil, math.ZeroInt()); !errors.Is(err, types.ErrTokenNotSellable) {
		t.Errorf("expected ErrTokenNotSellable, got %v", err)
	}
	if _, err := f.keeper.SellReward(f.ctx, sellerAddr, math.NewInt(10), collateralDenom, "bogus", 0, nil, math.ZeroInt()); !errors.Is(err, types.ErrRouterNotRegistered) {
		t.Errorf("expected ErrRouterNotRegistered, got %v", err)
	}

	// Execution below the caller's minimum
	low := math.NewInt(200)
	f.router.fixedOut = &low
	if _, err := f.keeper.SellReward(f.ctx, sellerAddr, math.NewInt(150), collateralDenom, testRouter, 0, nil, math.NewInt(250)); !errors.Is(err, types.ErrInsufficientOutput) {
		t.Errorf("expected ErrInsufficientOutput, got %v", err)
	}

	// Execution too small to cover the curve payout, even with no caller
	// minimum
	short := math.NewInt(150)
	f.router.fixedOut = &short
	if _, err := f.keeper.SellReward(f.ctx, sellerAddr, math.NewInt(150), collateralDenom, testRouter, 0, nil, math.ZeroInt()); !errors.Is(err, types.ErrInsufficientOutput) {
		t.Errorf("expected ErrInsufficientOutput below the curve payout, got %v", err)
	}

	// Execution drifting past the oracle deviation bound: the implied
	// output for 150 units is 300, and 500 bips allows 15 either way
	high := math.NewInt(400)
	f.router.fixedOut = &high
	if _, err := f.keeper.SellReward(f.ctx, sellerAddr, math.NewInt(150), collateralDenom, testRouter, 0, nil, math.NewInt(250)); !errors.Is(err, types.ErrPriceDeviation) {
		t.Errorf("expected ErrPriceDeviation, got %v", err)
	}
}
