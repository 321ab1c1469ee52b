package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/proof-of-capital/poc-chain/x/pool/types"
	vaulttypes "github.com/proof-of-capital/poc-chain/x/vault/types"
)

// Store key prefixes
var (
	PoolStateKey                = []byte{0x01}
	ExitQueueEntryKeyPrefix     = []byte{0x02}
	ExitQueueVaultIndexPrefix   = []byte{0x03}
	ExitQueueSequenceKey        = []byte{0x04}
	AccountedBalanceKeyPrefix   = []byte{0x05}
	SellableTokenKeyPrefix      = []byte{0x06}
	RouterKeyPrefix             = []byte{0x07}
	RewardPerShareKeyPrefix     = []byte{0x08}
	VaultRewardIndexKeyPrefix   = []byte{0x09}
	DepositRecordKeyPrefix      = []byte{0x0A}
	DistributionRecordKeyPrefix = []byte{0x0B}
)

// VaultKeeper defines the expected interface for the vault registry.
type VaultKeeper interface {
	GetVault(ctx sdk.Context, id uint64) *vaulttypes.Vault
	GetVaultByOwner(ctx sdk.Context, owner string) *vaulttypes.Vault
	GetAllVaults(ctx sdk.Context) []*vaulttypes.Vault
	GetTotalSharesSupply(ctx sdk.Context) math.Int
	AddShares(ctx sdk.Context, vaultID uint64, amount math.Int) error
	BurnShares(ctx sdk.Context, vaultID uint64, amount math.Int) error
	RecordFundraisingDeposit(ctx sdk.Context, vaultID uint64, collateral math.Int, usd math.LegacyDec) error
	ClearFundraisingDeposit(ctx sdk.Context, vaultID uint64) error
	SetDepositLimit(ctx context.Context, authority string, vaultID uint64, newLimit math.Int) error
}

// BankKeeper defines the expected interface for the bank module.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// OracleKeeper defines the expected interface for the price oracle.
type OracleKeeper interface {
	Price(ctx sdk.Context, denom string) (math.LegacyDec, bool)
}

// SwapRouter defines the expected interface for the external swap collaborator.
type SwapRouter interface {
	Execute(ctx sdk.Context, router string, swapType uint32, swapData []byte, tokenIn, tokenOut string, amountIn, minOut math.Int) (math.Int, error)
}

// PositionKeeper defines the expected interface for the liquidity-position
// collaborator; dissolution is gated on its answers.
type PositionKeeper interface {
	HasActivePositions(ctx sdk.Context) bool
	LockExpiry(ctx sdk.Context) int64
}

// Keeper manages the pooled-capital ledger: lifecycle, fundraising, exit
// queue, and profit distribution.
type Keeper struct {
	cdc            codec.BinaryCodec
	storeKey       storetypes.StoreKey
	vaultKeeper    VaultKeeper
	bankKeeper     BankKeeper
	oracle         OracleKeeper
	router         SwapRouter
	positionKeeper PositionKeeper
	logger         log.Logger
	authority      string
}

// NewKeeper creates a new pool keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	vaultKeeper VaultKeeper,
	bankKeeper BankKeeper,
	oracle OracleKeeper,
	router SwapRouter,
	positionKeeper PositionKeeper,
	authority string,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:            cdc,
		storeKey:       storeKey,
		vaultKeeper:    vaultKeeper,
		bankKeeper:     bankKeeper,
		oracle:         oracle,
		router:         router,
		positionKeeper: positionKeeper,
		authority:      authority,
		logger:         logger.With("module", "x/pool"),
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

// ModuleAddress returns the pool's custody account address.
func (k *Keeper) ModuleAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(types.ModuleName)
}

// ReserveModuleName names the custody module account for collaborators that
// move coins in and out of pool custody.
func (k *Keeper) ReserveModuleName() string {
	return types.ModuleName
}

// ============ Pool State ============

// InitPool creates the singleton ledger record. Authority only, one shot.
func (k *Keeper) InitPool(ctx sdk.Context, authority string, cfg types.PoolConfig) error {
	if authority != k.authority {
		return types.ErrUnauthorized
	}
	if k.GetPool(ctx) != nil {
		return types.ErrPoolExists
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	pool := types.NewPoolState(cfg, ctx.BlockTime())
	k.SetPool(ctx, pool)

	// The main collateral is always sellable; the reward asset is always
	// distributable but never a swap target during fundraising.
	k.setSellableToken(ctx, cfg.MainCollateralDenom, true)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_initialized",
			sdk.NewAttribute("main_collateral", cfg.MainCollateralDenom),
			sdk.NewAttribute("reward_denom", cfg.RewardDenom),
			sdk.NewAttribute("target_usd", cfg.FundraisingTargetUSD.String()),
		),
	)
	k.logger.Info("Pool initialized",
		"main_collateral", cfg.MainCollateralDenom,
		"reward_denom", cfg.RewardDenom,
		"target_usd", cfg.FundraisingTargetUSD.String(),
		"deadline", time.Unix(cfg.FundraisingDeadline, 0).UTC().Format(time.RFC3339),
	)
	return nil
}

// SetPool saves the pool state
func (k *Keeper) SetPool(ctx sdk.Context, pool *types.PoolState) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(pool)
	store.Set(PoolStateKey, bz)
}

// GetPool retrieves the pool state, nil before InitPool
func (k *Keeper) GetPool(ctx sdk.Context) *types.PoolState {
	store := k.GetStore(ctx)
	bz := store.Get(PoolStateKey)
	if bz == nil {
		return nil
	}
	var pool types.PoolState
	if err := json.Unmarshal(bz, &pool); err != nil {
		return nil
	}
	return &pool
}

// IsAdmittingCapital reports whether new vaults and deposits are accepted.
func (k *Keeper) IsAdmittingCapital(ctx sdk.Context) bool {
	pool := k.GetPool(ctx)
	return pool != nil && pool.Stage == types.StageFundraising
}

// IsOperating reports whether the curve and exit queue are live.
func (k *Keeper) IsOperating(ctx sdk.Context) bool {
	pool := k.GetPool(ctx)
	return pool != nil && pool.Stage.IsOperating()
}

// ============ Sellable Tokens and Routers ============

func sellableTokenKey(denom string) []byte {
	return append(SellableTokenKeyPrefix, []byte(denom)...)
}

func routerKey(router string) []byte {
	return append(RouterKeyPrefix, []byte(router)...)
}

func (k *Keeper) setSellableToken(ctx sdk.Context, denom string, enable bool) {
	store := k.GetStore(ctx)
	if enable {
		store.Set(sellableTokenKey(denom), []byte{1})
	} else {
		store.Delete(sellableTokenKey(denom))
	}
}

// IsSellableToken reports whether denom is whitelisted as swap output.
func (k *Keeper) IsSellableToken(ctx sdk.Context, denom string) bool {
	return k.GetStore(ctx).Has(sellableTokenKey(denom))
}

func (k *Keeper) setRouter(ctx sdk.Context, router string, enable bool) {
	store := k.GetStore(ctx)
	if enable {
		store.Set(routerKey(router), []byte{1})
	} else {
		store.Delete(routerKey(router))
	}
}

// IsRegisteredRouter reports whether the swap router is whitelisted.
func (k *Keeper) IsRegisteredRouter(ctx sdk.Context, router string) bool {
	return k.GetStore(ctx).Has(routerKey(router))
}

// GetSellableTokens returns all whitelisted sellable denoms.
func (k *Keeper) GetSellableTokens(ctx sdk.Context) []string {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, SellableTokenKeyPrefix)
	defer iterator.Close()

	var denoms []string
	for ; iterator.Valid(); iterator.Next() {
		denoms = append(denoms, string(iterator.Key()[len(SellableTokenKeyPrefix):]))
	}
	return denoms
}

// DistributableTokens returns every denom that can flow through the
// distribution waterfall: the reward asset plus the sellable whitelist.
func (k *Keeper) DistributableTokens(ctx sdk.Context) []string {
	pool := k.GetPool(ctx)
	if pool == nil {
		return nil
	}
	tokens := []string{pool.RewardDenom}
	for _, denom := range k.GetSellableTokens(ctx) {
		if denom != pool.RewardDenom {
			tokens = append(tokens, denom)
		}
	}
	return tokens
}

// IsDistributable reports whether token may flow through DistributeProfit:
// the reward asset itself or any whitelisted sellable collateral.
func (k *Keeper) IsDistributable(ctx sdk.Context, token string) bool {
	pool := k.GetPool(ctx)
	if pool == nil {
		return false
	}
	return token == pool.RewardDenom || k.IsSellableToken(ctx, token)
}

// ============ Accounted Balances ============

func accountedBalanceKey(denom string) []byte {
	return append(AccountedBalanceKeyPrefix, []byte(denom)...)
}

// GetAccountedBalance returns the portion of the custody balance already
// assigned to holders or earmarked for the exit queue.
func (k *Keeper) GetAccountedBalance(ctx sdk.Context, denom string) math.Int {
	store := k.GetStore(ctx)
	bz := store.Get(accountedBalanceKey(denom))
	if bz == nil {
		return math.ZeroInt()
	}
	var amt math.Int
	if err := amt.Unmarshal(bz); err != nil {
		return math.ZeroInt()
	}
	return amt
}

func (k *Keeper) setAccountedBalance(ctx sdk.Context, denom string, amt math.Int) {
	store := k.GetStore(ctx)
	bz, _ := amt.Marshal()
	store.Set(accountedBalanceKey(denom), bz)
}

// addAccounted grows the accounted ledger for denom.
func (k *Keeper) addAccounted(ctx sdk.Context, denom string, amt math.Int) {
	k.setAccountedBalance(ctx, denom, k.GetAccountedBalance(ctx, denom).Add(amt))
}

// subAccounted shrinks the accounted ledger for denom, clamping at zero so a
// rounding artifact can never drive it negative.
func (k *Keeper) subAccounted(ctx sdk.Context, denom string, amt math.Int) {
	next := k.GetAccountedBalance(ctx, denom).Sub(amt)
	if next.IsNegative() {
		next = math.ZeroInt()
	}
	k.setAccountedBalance(ctx, denom, next)
}

// UnaccountedBalance returns custody balance minus the accounted ledger:
// the distributable profit for denom.
func (k *Keeper) UnaccountedBalance(ctx sdk.Context, denom string) math.Int {
	actual := k.bankKeeper.GetBalance(ctx, k.ModuleAddress(), denom).Amount
	unaccounted := actual.Sub(k.GetAccountedBalance(ctx, denom))
	if unaccounted.IsNegative() {
		return math.ZeroInt()
	}
	return unaccounted
}

// ============ Exit Queue Storage ============

func exitQueueEntryKey(index uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, index)
	return append(ExitQueueEntryKeyPrefix, bz...)
}

func exitQueueVaultIndexKey(vaultID uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, vaultID)
	return append(ExitQueueVaultIndexPrefix, bz...)
}

func (k *Keeper) setExitQueueEntry(ctx sdk.Context, entry *types.ExitQueueEntry) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(entry)
	store.Set(exitQueueEntryKey(entry.Index), bz)

	idxBz := make([]byte, 8)
	binary.BigEndian.PutUint64(idxBz, entry.Index)
	store.Set(exitQueueVaultIndexKey(entry.VaultID), idxBz)
}

func (k *Keeper) deleteExitQueueEntry(ctx sdk.Context, entry *types.ExitQueueEntry) {
	store := k.GetStore(ctx)
	store.Delete(exitQueueEntryKey(entry.Index))
	store.Delete(exitQueueVaultIndexKey(entry.VaultID))
}

// GetExitQueueEntryByVault returns the queued entry for a vault, nil if the
// vault is not queued.
func (k *Keeper) GetExitQueueEntryByVault(ctx sdk.Context, vaultID uint64) *types.ExitQueueEntry {
	store := k.GetStore(ctx)
	bz := store.Get(exitQueueVaultIndexKey(vaultID))
	if bz == nil {
		return nil
	}
	entryBz := store.Get(exitQueueEntryKey(binary.BigEndian.Uint64(bz)))
	if entryBz == nil {
		return nil
	}
	var entry types.ExitQueueEntry
	if err := json.Unmarshal(entryBz, &entry); err != nil {
		return nil
	}
	return &entry
}

// GetExitQueueEntries returns all queued entries in arrival order.
func (k *Keeper) GetExitQueueEntries(ctx sdk.Context) []*types.ExitQueueEntry {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, ExitQueueEntryKeyPrefix)
	defer iterator.Close()

	var entries []*types.ExitQueueEntry
	for ; iterator.Valid(); iterator.Next() {
		var entry types.ExitQueueEntry
		if err := json.Unmarshal(iterator.Value(), &entry); err != nil {
			continue
		}
		entries = append(entries, &entry)
	}
	return entries
}

// nextExitQueueIndex allocates the next arrival-order index, starting at 1.
func (k *Keeper) nextExitQueueIndex(ctx sdk.Context) uint64 {
	store := k.GetStore(ctx)
	var idx uint64 = 1
	if bz := store.Get(ExitQueueSequenceKey); bz != nil {
		idx = binary.BigEndian.Uint64(bz) + 1
	}
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, idx)
	store.Set(ExitQueueSequenceKey, bz)
	return idx
}

// ============ Reward Accumulators ============

func rewardPerShareKey(denom string) []byte {
	return append(RewardPerShareKeyPrefix, []byte(denom)...)
}

func vaultRewardIndexKey(vaultID uint64, denom string) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, vaultID)
	key := append(VaultRewardIndexKeyPrefix, bz...)
	return append(key, []byte(denom)...)
}

// GetRewardPerShare returns the global cumulative reward-per-share for denom.
func (k *Keeper) GetRewardPerShare(ctx sdk.Context, denom string) math.LegacyDec {
	store := k.GetStore(ctx)
	bz := store.Get(rewardPerShareKey(denom))
	if bz == nil {
		return math.LegacyZeroDec()
	}
	var dec math.LegacyDec
	if err := dec.Unmarshal(bz); err != nil {
		return math.LegacyZeroDec()
	}
	return dec
}

func (k *Keeper) setRewardPerShare(ctx sdk.Context, denom string, dec math.LegacyDec) {
	store := k.GetStore(ctx)
	bz, _ := dec.Marshal()
	store.Set(rewardPerShareKey(denom), bz)
}

// GetVaultRewardIndex returns the vault's last-settled reward-per-share mark.
func (k *Keeper) GetVaultRewardIndex(ctx sdk.Context, vaultID uint64, denom string) math.LegacyDec {
	store := k.GetStore(ctx)
	bz := store.Get(vaultRewardIndexKey(vaultID, denom))
	if bz == nil {
		return math.LegacyZeroDec()
	}
	var dec math.LegacyDec
	if err := dec.Unmarshal(bz); err != nil {
		return math.LegacyZeroDec()
	}
	return dec
}

func (k *Keeper) setVaultRewardIndex(ctx sdk.Context, vaultID uint64, denom string, dec math.LegacyDec) {
	store := k.GetStore(ctx)
	bz, _ := dec.Marshal()
	store.Set(vaultRewardIndexKey(vaultID, denom), bz)
}

// ============ Audit Records ============

func depositRecordKey(id string) []byte {
	return append(DepositRecordKeyPrefix, []byte(id)...)
}

func distributionRecordKey(id string) []byte {
	return append(DistributionRecordKeyPrefix, []byte(id)...)
}

func (k *Keeper) setDepositRecord(ctx sdk.Context, rec *types.DepositRecord) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(rec)
	store.Set(depositRecordKey(rec.RecordID), bz)
}

func (k *Keeper) setDistributionRecord(ctx sdk.Context, rec *types.DistributionRecord) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(rec)
	store.Set(distributionRecordKey(rec.RecordID), bz)
}

// GetDistributionRecords returns all distribution audit records.
func (k *Keeper) GetDistributionRecords(ctx sdk.Context) []*types.DistributionRecord {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, DistributionRecordKeyPrefix)
	defer iterator.Close()

	var recs []*types.DistributionRecord
	for ; iterator.Valid(); iterator.Next() {
		var rec types.DistributionRecord
		if err := json.Unmarshal(iterator.Value(), &rec); err != nil {
			continue
		}
		recs = append(recs, &rec)
	}
	return recs
}

// GetDepositRecords returns all fundraising deposit audit records.
func (k *Keeper) GetDepositRecords(ctx sdk.Context) []*types.DepositRecord {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, DepositRecordKeyPrefix)
	defer iterator.Close()

	var recs []*types.DepositRecord
	for ; iterator.Valid(); iterator.Next() {
		var rec types.DepositRecord
		if err := json.Unmarshal(iterator.Value(), &rec); err != nil {
			continue
		}
		recs = append(recs, &rec)
	}
	return recs
}
