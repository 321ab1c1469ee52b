package keeper

import (
	"bytes"
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

	"github.com/proof-of-capital/poc-chain/x/vault/types"
)

// testAddr derives a deterministic bech32 address from a single byte.
func testAddr(b byte) string {
	return sdk.AccAddress(bytes.Repeat([]byte{b}, 20)).String()
}

var (
	testAuthority = testAddr(0xAA)

	ownerAddr     = testAddr(0x10)
	backupAddr    = testAddr(0x11)
	emergencyAddr = testAddr(0x12)
)

// mockPoolKeeper reports a configurable admission gate.
type mockPoolKeeper struct {
	admitting bool
}

func (m *mockPoolKeeper) IsAdmittingCapital(_ sdk.Context) bool {
	return m.admitting
}

// setupVaultKeeper creates a vault keeper over an in-memory store with the
// pool gate open.
func setupVaultKeeper(t *testing.T) (*Keeper, *mockPoolKeeper, sdk.Context) {
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
	keeper := NewKeeper(cdc, storeKey, testAuthority, log.NewNopLogger())
	pool := &mockPoolKeeper{admitting: true}
	keeper.SetPoolKeeper(pool)

	return keeper, pool, ctx
}

// mustCreateVault creates a vault with the standard recovery roles.
func mustCreateVault(t *testing.T, k *Keeper, ctx sdk.Context, owner string, limit int64) *types.Vault {
	t.Helper()
	vault, err := k.CreateVault(ctx, owner, backupAddr, emergencyAddr, math.NewInt(limit))
	if err != nil {
		t.Fatalf("failed to create vault for %s: %v", owner, err)
	}
	return vault
}
