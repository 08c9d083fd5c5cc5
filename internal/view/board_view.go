// Package view holds the optimistic concurrency coordinator: a per-board,
// caller-visible deal collection that reflects mutations before the
// authoritative store confirms them and converges back to store truth on
// success, failure or supersession.
package view

import (
	"sync"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
)

// Patch rewrites a deal collection speculatively. It receives a private
// copy and returns the collection to make visible.
type Patch func(deals []domain.Deal) []domain.Deal

// WriteFunc issues the authoritative store write for a mutation
type WriteFunc func() error

// RefreshFunc fetches the authoritative collection after a confirmed write,
// so server-derived fields not present in the speculative patch surface.
type RefreshFunc func() ([]domain.Deal, error)

// BoardView is the visible deal collection for one board. Each in-flight
// mutation carries its own snapshot and a monotonic sequence number; a
// rollback or refresh from a superseded mutation never clobbers a newer
// speculative state.
type BoardView struct {
	mu      sync.Mutex
	boardID uint64
	deals   []domain.Deal
	seeded  bool
	seq     uint64 // sequence of the most recent speculative apply
	nextSeq uint64
}

// NewBoardView creates an empty, unseeded view for a board
func NewBoardView(boardID uint64) *BoardView {
	return &BoardView{boardID: boardID}
}

// BoardID returns the board this view tracks
func (v *BoardView) BoardID() uint64 {
	return v.boardID
}

// Seeded reports whether the view holds an authoritative collection yet
func (v *BoardView) Seeded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.seeded
}

// Seed replaces the visible collection with an authoritative one
func (v *BoardView) Seed(deals []domain.Deal) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.deals = cloneDeals(deals)
	v.seeded = true
}

// Deals returns a copy of the visible collection
func (v *BoardView) Deals() []domain.Deal {
	v.mu.Lock()
	defer v.mu.Unlock()
	return cloneDeals(v.deals)
}

// Mutate runs one mutation through the optimistic protocol:
//
//  1. snapshot the visible collection,
//  2. apply the patch speculatively (immediately visible),
//  3. issue the authoritative write,
//  4. on success, reconcile from the store via refresh, skipped if a newer
//     speculative state appeared while the write was in flight,
//  5. on failure, restore the snapshot, skipped if this mutation was
//     superseded, in which case the view refreshes from the store instead
//     so no stale snapshot overwrites newer speculative state.
//
// The write error is returned unchanged so callers can surface it.
func (v *BoardView) Mutate(patch Patch, write WriteFunc, refresh RefreshFunc) error {
	v.mu.Lock()
	v.nextSeq++
	seq := v.nextSeq
	snapshot := cloneDeals(v.deals)
	v.deals = patch(cloneDeals(v.deals))
	v.seq = seq
	v.mu.Unlock()

	if err := write(); err != nil {
		v.rollback(seq, snapshot, refresh)
		return err
	}

	// reconcile only while this mutation is still the newest; a newer
	// in-flight speculative state must not be clobbered by our refresh
	v.refreshIf(refresh, func() bool { return v.seq == seq })
	return nil
}

// rollback restores the pre-mutation snapshot, unless a newer mutation has
// applied its own speculative state since; then restoring a stale snapshot
// would clobber it, so the view refreshes from the store instead.
func (v *BoardView) rollback(seq uint64, snapshot []domain.Deal, refresh RefreshFunc) {
	v.mu.Lock()
	if v.seq == seq {
		v.deals = snapshot
		v.mu.Unlock()
		return
	}
	superseder := v.seq
	v.mu.Unlock()

	// apply the refresh only if no further mutation started during the fetch
	v.refreshIf(refresh, func() bool { return v.seq == superseder })
}

// refreshIf fetches authoritative state and installs it when cond still
// holds under the lock. cond is checked before the fetch too, so a
// mutation that is already superseded skips the store read entirely.
// A failed fetch keeps the current view; the next refresh converges it.
func (v *BoardView) refreshIf(refresh RefreshFunc, cond func() bool) {
	if refresh == nil {
		return
	}

	v.mu.Lock()
	stale := !cond()
	v.mu.Unlock()
	if stale {
		return
	}

	deals, err := refresh()
	if err != nil {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if !cond() {
		return
	}
	v.deals = cloneDeals(deals)
	v.seeded = true
}

func cloneDeals(deals []domain.Deal) []domain.Deal {
	out := make([]domain.Deal, len(deals))
	copy(out, deals)
	return out
}
