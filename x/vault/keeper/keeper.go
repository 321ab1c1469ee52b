package keeper

import (
	"encoding/binary"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/proof-of-capital/poc-chain/x/vault/types"
)

// Store key prefixes
var (
	VaultKeyPrefix      = []byte{0x01}
	OwnerIndexKeyPrefix = []byte{0x02}
	VaultSequenceKey    = []byte{0x03}
	TotalSharesKey      = []byte{0x04}
)

// PoolKeeper defines the expected interface for the pool module. The vault
// registry only needs to know whether the pool still admits new capital.
type PoolKeeper interface {
	IsAdmittingCapital(ctx sdk.Context) bool
}

// Keeper manages the vault registry state
type Keeper struct {
	cdc        codec.BinaryCodec
	storeKey   storetypes.StoreKey
	poolKeeper PoolKeeper
	logger     log.Logger
	authority  string
}

// NewKeeper creates a new vault keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	authority string,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:       cdc,
		storeKey:  storeKey,
		authority: authority,
		logger:    logger.With("module", "x/vault"),
	}
}

// SetPoolKeeper attaches the pool keeper after construction. The pool keeper
// is built after the vault keeper, so the dependency is wired late in app.go.
func (k *Keeper) SetPoolKeeper(pk PoolKeeper) {
	k.poolKeeper = pk
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

// ============ Vault Storage ============

// vaultKey generates the store key for a vault
func vaultKey(id uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	return append(VaultKeyPrefix, bz...)
}

// ownerIndexKey generates the owner address index key
func ownerIndexKey(owner string) []byte {
	return append(OwnerIndexKeyPrefix, []byte(owner)...)
}

// SetVault saves a vault to the store and maintains the owner index
func (k *Keeper) SetVault(ctx sdk.Context, vault *types.Vault) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(vault)
	store.Set(vaultKey(vault.ID), bz)

	idBz := make([]byte, 8)
	binary.BigEndian.PutUint64(idBz, vault.ID)
	store.Set(ownerIndexKey(vault.Owner), idBz)
}

// GetVault retrieves a vault from the store
func (k *Keeper) GetVault(ctx sdk.Context, id uint64) *types.Vault {
	store := k.GetStore(ctx)
	bz := store.Get(vaultKey(id))
	if bz == nil {
		return nil
	}
	var vault types.Vault
	if err := json.Unmarshal(bz, &vault); err != nil {
		return nil
	}
	return &vault
}

// GetVaultByOwner retrieves a vault by its primary owner address
func (k *Keeper) GetVaultByOwner(ctx sdk.Context, owner string) *types.Vault {
	store := k.GetStore(ctx)
	bz := store.Get(ownerIndexKey(owner))
	if bz == nil {
		return nil
	}
	return k.GetVault(ctx, binary.BigEndian.Uint64(bz))
}

// GetAllVaults returns all vaults ordered by ID
func (k *Keeper) GetAllVaults(ctx sdk.Context) []*types.Vault {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, VaultKeyPrefix)
	defer iterator.Close()

	var vaults []*types.Vault
	for ; iterator.Valid(); iterator.Next() {
		var vault types.Vault
		if err := json.Unmarshal(iterator.Value(), &vault); err != nil {
			continue
		}
		vaults = append(vaults, &vault)
	}
	return vaults
}

// nextVaultID allocates the next vault id. IDs start at 1 so that 0 can mean
// "no vault" in references.
func (k *Keeper) nextVaultID(ctx sdk.Context) uint64 {
	store := k.GetStore(ctx)
	var id uint64 = 1
	if bz := store.Get(VaultSequenceKey); bz != nil {
		id = binary.BigEndian.Uint64(bz) + 1
	}
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, id)
	store.Set(VaultSequenceKey, bz)
	return id
}

// ============ Share Supply ============

// GetTotalSharesSupply returns the total economic share supply
func (k *Keeper) GetTotalSharesSupply(ctx sdk.Context) math.Int {
	store := k.GetStore(ctx)
	bz := store.Get(TotalSharesKey)
	if bz == nil {
		return math.ZeroInt()
	}
	var supply math.Int
	if err := supply.Unmarshal(bz); err != nil {
		return math.ZeroInt()
	}
	return supply
}

func (k *Keeper) setTotalSharesSupply(ctx sdk.Context, supply math.Int) {
	store := k.GetStore(ctx)
	bz, _ := supply.Marshal()
	store.Set(TotalSharesKey, bz)
}

// AddShares mints shares to a vault and grows the total supply. Voting shares
// follow economic shares: they accrue to the vault's current delegate.
func (k *Keeper) AddShares(ctx sdk.Context, vaultID uint64, amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrInvalidAmount
	}
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}

	vault.Shares = vault.Shares.Add(amount)
	vault.UpdatedAt = ctx.BlockTime().Unix()

	if vault.IsDelegated() {
		delegate := k.GetVault(ctx, vault.DelegateID)
		if delegate == nil {
			return types.ErrDelegateNotFound
		}
		delegate.VotingShares = delegate.VotingShares.Add(amount)
		k.SetVault(ctx, delegate)
	} else {
		vault.VotingShares = vault.VotingShares.Add(amount)
	}
	k.SetVault(ctx, vault)

	k.setTotalSharesSupply(ctx, k.GetTotalSharesSupply(ctx).Add(amount))
	return nil
}

// BurnShares burns shares from a vault and shrinks the total supply. Voting
// shares are removed from wherever they currently sit.
func (k *Keeper) BurnShares(ctx sdk.Context, vaultID uint64, amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrInvalidAmount
	}
	vault := k.GetVault(ctx, vaultID)
	if vault == nil {
		return types.ErrVaultNotFound
	}
	if vault.Shares.LT(amount) {
		return types.ErrInsufficientShares
	}

	vault.Shares = vault.Shares.Sub(amount)
	vault.UpdatedAt = ctx.BlockTime().Unix()

	if vault.IsDelegated() {
		delegate := k.GetVault(ctx, vault.DelegateID)
		if delegate == nil {
			return types.ErrDelegateNotFound
		}
		delegate.VotingShares = delegate.VotingShares.Sub(amount)
		k.SetVault(ctx, delegate)
	} else {
		vault.VotingShares = vault.VotingShares.Sub(amount)
	}
	k.SetVault(ctx, vault)

	k.setTotalSharesSupply(ctx, k.GetTotalSharesSupply(ctx).Sub(amount))
	return nil
}
