package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/btree"

	"github.com/proof-of-capital/poc-chain/metrics"
	"github.com/proof-of-capital/poc-chain/x/pool/types"
)

const exitQueueBTreeDegree = 16

// exitEntryItem wraps a queue entry for use in btree
// Implements btree.Item interface
type exitEntryItem struct {
	entry *types.ExitQueueEntry
}

// Less implements btree.Item interface - ascending arrival order
func (a *exitEntryItem) Less(b btree.Item) bool {
	return a.entry.Index < b.(*exitEntryItem).entry.Index
}

// loadExitQueue builds the arrival-ordered settlement tree from the store.
func (k *Keeper) loadExitQueue(ctx sdk.Context) *btree.BTree {
	tree := btree.New(exitQueueBTreeDegree)
	for _, entry := range k.GetExitQueueEntries(ctx) {
		tree.ReplaceOrInsert(&exitEntryItem{entry: entry})
	}
	return tree
}

// exitPayout is a pending bank transfer collected during settlement; all
// transfers run after the ledger mutations commit.
type exitPayout struct {
	owner  string
	denom  string
	amount math.Int
}

// RequestExit queues the caller's vault for redemption. The entire share
// balance is snapshotted; partial exits are not supported.
func (k *Keeper) RequestExit(ctx sdk.Context, caller string) (*types.ExitQueueEntry, error) {
	pool := k.GetPool(ctx)
	if pool == nil {
		return nil, types.ErrPoolNotFound
	}
	if !pool.Stage.IsOperating() {
		return nil, types.ErrInvalidStage
	}

	vault := k.vaultKeeper.GetVaultByOwner(ctx, caller)
	if vault == nil {
		return nil, types.ErrUnauthorized
	}
	if !vault.Shares.IsPositive() {
		return nil, types.ErrInvalidAmount
	}
	if existing := k.GetExitQueueEntryByVault(ctx, vault.ID); existing != nil {
		return nil, types.ErrAlreadyQueued
	}

	// Settle accrued rewards up front: queued vaults sit out the
	// reward-per-share accumulator from here on.
	flushed := k.flushPendingRewards(ctx, vault.ID, vault.Owner)

	entry := &types.ExitQueueEntry{
		VaultID:     vault.ID,
		Shares:      vault.Shares,
		Index:       k.nextExitQueueIndex(ctx),
		RequestedAt: ctx.BlockTime().Unix(),
	}
	k.setExitQueueEntry(ctx, entry)

	pool.TotalExitQueueShares = pool.TotalExitQueueShares.Add(entry.Shares)
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)
	k.evaluateClosingThreshold(ctx, pool)

	for _, p := range flushed {
		if err := k.payOut(ctx, p.owner, p.denom, p.amount); err != nil {
			return nil, err
		}
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"exit_requested",
			sdk.NewAttribute("vault_id", math.NewIntFromUint64(vault.ID).String()),
			sdk.NewAttribute("shares", entry.Shares.String()),
		),
	)
	metrics.GetCollector().RecordExitRequest()
	k.logger.Info("Exit requested",
		"vault_id", vault.ID,
		"shares", entry.Shares.String(),
		"queued_total", pool.TotalExitQueueShares.String(),
	)
	return entry, nil
}

// CancelExit removes the caller's vault from the queue. Shares never left the
// vault, so cancellation is a pure bookkeeping reversal.
func (k *Keeper) CancelExit(ctx sdk.Context, caller string) error {
	pool := k.GetPool(ctx)
	if pool == nil {
		return types.ErrPoolNotFound
	}

	vault := k.vaultKeeper.GetVaultByOwner(ctx, caller)
	if vault == nil {
		return types.ErrUnauthorized
	}
	entry := k.GetExitQueueEntryByVault(ctx, vault.ID)
	if entry == nil {
		return types.ErrNotQueued
	}

	k.deleteExitQueueEntry(ctx, entry)
	pool.TotalExitQueueShares = pool.TotalExitQueueShares.Sub(entry.Shares)
	if pool.TotalExitQueueShares.IsNegative() {
		pool.TotalExitQueueShares = math.ZeroInt()
	}
	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)
	k.evaluateClosingThreshold(ctx, pool)

	metrics.GetCollector().RecordExitCancel()
	k.logger.Info("Exit cancelled", "vault_id", vault.ID, "shares", entry.Shares.String())
	return nil
}

// FundExitQueue earmarks reward-asset balance for a redemption round. Only the
// operator or the governance authority may fund, the previous round must be
// fully processed, and the allocation cooldown must have elapsed. The amount
// is capped at the queued share total, the ceiling of one reward unit per
// queued share.
func (k *Keeper) FundExitQueue(ctx sdk.Context, caller string, amount math.Int) (math.Int, error) {
	pool := k.GetPool(ctx)
	if pool == nil {
		return math.ZeroInt(), types.ErrPoolNotFound
	}
	if caller != pool.OperatorRecipient && caller != k.authority {
		return math.ZeroInt(), types.ErrUnauthorized
	}
	if !pool.Stage.IsOperating() && pool.Stage != types.StageWaitingForLPDissolution {
		return math.ZeroInt(), types.ErrInvalidStage
	}
	if !pool.TotalExitQueueShares.IsPositive() {
		return math.ZeroInt(), types.ErrQueueEmpty
	}
	if pool.ExitPaymentRemaining.IsPositive() {
		return math.ZeroInt(), types.ErrAllocationPending
	}
	now := ctx.BlockTime().Unix()
	if pool.LastAllocationAt > 0 && now-pool.LastAllocationAt < pool.AllocationCooldown {
		return math.ZeroInt(), types.ErrCooldownActive
	}
	if !amount.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount
	}
	if amount.GT(pool.TotalExitQueueShares) {
		amount = pool.TotalExitQueueShares
	}
	if amount.GT(k.UnaccountedBalance(ctx, pool.RewardDenom)) {
		return math.ZeroInt(), types.ErrInsufficientBalance
	}

	pool.ExitPaymentFunded = amount
	pool.ExitPaymentRemaining = amount
	pool.ExitPaymentSnapshotShares = pool.TotalExitQueueShares
	pool.ExitPaymentMaxIndex = k.maxQueuedIndex(ctx)
	pool.ExitQueueCursor = 0
	pool.LastAllocationAt = now
	pool.UpdatedAt = now
	k.SetPool(ctx, pool)
	k.addAccounted(ctx, pool.RewardDenom, amount)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"exit_queue_funded",
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("snapshot_shares", pool.ExitPaymentSnapshotShares.String()),
		),
	)
	k.logger.Info("Exit queue funded",
		"amount", amount.String(),
		"snapshot_shares", pool.ExitPaymentSnapshotShares.String(),
	)
	return amount, nil
}

// maxQueuedIndex returns the highest arrival index currently queued.
func (k *Keeper) maxQueuedIndex(ctx sdk.Context) uint64 {
	var max uint64
	for _, entry := range k.GetExitQueueEntries(ctx) {
		if entry.Index > max {
			max = entry.Index
		}
	}
	return max
}

// ProcessPendingExitQueue settles queued entries against the funded round,
// resuming from the stored cursor. maxEntries bounds one call's work; zero
// means unbounded. Each entry receives its pro-rata slice of the funded
// amount against the round's share snapshot and its full queued snapshot is
// redeemed: the funding rate scales the payout, never the burn. When the walk
// exhausts the round, leftover dust returns to the unaccounted balance. A
// settlement failure aborts the walk with the cursor still short of the
// failed entry, so a later call resumes the round there.
func (k *Keeper) ProcessPendingExitQueue(ctx sdk.Context, maxEntries uint32) (uint32, math.Int, error) {
	pool := k.GetPool(ctx)
	if pool == nil {
		return 0, math.ZeroInt(), types.ErrPoolNotFound
	}
	if !pool.ExitPaymentFunded.IsPositive() {
		return 0, math.ZeroInt(), types.ErrNoFundedAllocation
	}

	timer := metrics.NewTimer()
	tree := k.loadExitQueue(ctx)
	var (
		payouts []exitPayout
		settled uint32
		paid    = math.ZeroInt()
	)

	pivot := &exitEntryItem{entry: &types.ExitQueueEntry{Index: pool.ExitQueueCursor}}
	var settleErr error
	tree.AscendGreaterOrEqual(pivot, func(item btree.Item) bool {
		entry := item.(*exitEntryItem).entry
		if entry.Index <= pool.ExitQueueCursor {
			return true
		}
		if entry.Index > pool.ExitPaymentMaxIndex {
			return false
		}
		if maxEntries > 0 && settled >= maxEntries {
			return false
		}

		pay := pool.ExitPaymentFunded.Mul(entry.Shares).Quo(pool.ExitPaymentSnapshotShares)
		payout, err := k.redeemEntry(ctx, pool, entry, pool.RewardDenom, pay)
		if err != nil {
			// Abort without advancing the cursor: the round stays funded
			// and the next call retries this entry.
			settleErr = err
			return false
		}
		if payout != nil {
			payouts = append(payouts, *payout)
			paid = paid.Add(payout.amount)
			pool.ExitPaymentRemaining = pool.ExitPaymentRemaining.Sub(payout.amount)
		}
		pool.ExitQueueCursor = entry.Index
		settled++
		return true
	})

	// Round exhausted: nothing queued between the cursor and the fence.
	if settleErr == nil && !k.hasQueuedInRange(ctx, pool.ExitQueueCursor, pool.ExitPaymentMaxIndex) {
		if pool.ExitPaymentRemaining.IsPositive() {
			k.subAccounted(ctx, pool.RewardDenom, pool.ExitPaymentRemaining)
		}
		pool.ExitPaymentFunded = math.ZeroInt()
		pool.ExitPaymentRemaining = math.ZeroInt()
		pool.ExitPaymentSnapshotShares = math.ZeroInt()
		pool.ExitPaymentMaxIndex = 0
		pool.ExitQueueCursor = 0
	}

	pool.UpdatedAt = ctx.BlockTime().Unix()
	k.SetPool(ctx, pool)
	k.evaluateClosingThreshold(ctx, pool)

	for _, p := range payouts {
		if err := k.payOut(ctx, p.owner, p.denom, p.amount); err != nil {
			return settled, paid, err
		}
		metrics.GetCollector().RecordExitPayment(p.denom, intGauge(p.amount))
	}
	metrics.GetCollector().ObserveExitSettle(timer.ElapsedMs())

	if settleErr != nil {
		k.logger.Error("Exit queue processing aborted",
			"entries_settled", settled,
			"paid", paid.String(),
			"error", settleErr,
		)
		return settled, paid, settleErr
	}
	k.logger.Info("Exit queue processed",
		"entries_settled", settled,
		"paid", paid.String(),
		"remaining", pool.ExitPaymentRemaining.String(),
	)
	return settled, paid, nil
}

// hasQueuedInRange reports whether any entry remains with cursor < index ≤ fence.
func (k *Keeper) hasQueuedInRange(ctx sdk.Context, cursor, fence uint64) bool {
	for _, entry := range k.GetExitQueueEntries(ctx) {
		if entry.Index > cursor && entry.Index <= fence {
			return true
		}
	}
	return false
}

// redeemEntry removes an entry from the queue, burning its full queued
// snapshot, and pays the exiting vault pay in denom. A settled entry always
// leaves the queue whole: the round's funding rate scales the payout, not the
// number of shares redeemed.
func (k *Keeper) redeemEntry(ctx sdk.Context, pool *types.PoolState, entry *types.ExitQueueEntry, denom string, pay math.Int) (*exitPayout, error) {
	vault := k.vaultKeeper.GetVault(ctx, entry.VaultID)
	if vault == nil {
		// Orphaned entry: drop it and free its queued shares.
		k.deleteExitQueueEntry(ctx, entry)
		pool.TotalExitQueueShares = pool.TotalExitQueueShares.Sub(entry.Shares)
		if pool.TotalExitQueueShares.IsNegative() {
			pool.TotalExitQueueShares = math.ZeroInt()
		}
		return nil, nil
	}

	burn := entry.Shares
	if burn.GT(vault.Shares) {
		burn = vault.Shares
	}
	if burn.IsPositive() {
		if err := k.vaultKeeper.BurnShares(ctx, entry.VaultID, burn); err != nil {
			return nil, err
		}
	}
	k.deleteExitQueueEntry(ctx, entry)
	pool.TotalExitQueueShares = pool.TotalExitQueueShares.Sub(entry.Shares)
	if pool.TotalExitQueueShares.IsNegative() {
		pool.TotalExitQueueShares = math.ZeroInt()
	}

	if !pay.IsPositive() {
		return nil, nil
	}
	k.subAccounted(ctx, denom, pay)
	return &exitPayout{owner: vault.Owner, denom: denom, amount: pay}, nil
}
