package view

import (
	"errors"
	"testing"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededView(deals ...domain.Deal) *BoardView {
	v := NewBoardView(1)
	v.Seed(deals)
	return v
}

func appendDeal(d domain.Deal) Patch {
	return func(deals []domain.Deal) []domain.Deal {
		return append(deals, d)
	}
}

func setStage(id uint64, stage domain.Stage) Patch {
	return func(deals []domain.Deal) []domain.Deal {
		for i := range deals {
			if deals[i].ID == id {
				deals[i].Stage = stage
			}
		}
		return deals
	}
}

func TestMutate_SpeculativeApplyThenConfirm(t *testing.T) {
	v := seededView(domain.Deal{ID: 1, Name: "Acme", Stage: domain.StageSourced})

	var wroteDuring []domain.Deal
	err := v.Mutate(
		setStage(1, domain.StageDiligence),
		func() error {
			// the patch is already visible while the write is in flight
			wroteDuring = v.Deals()
			return nil
		},
		func() ([]domain.Deal, error) {
			return []domain.Deal{{ID: 1, Name: "Acme", Stage: domain.StageDiligence}}, nil
		},
	)

	require.NoError(t, err)
	require.Len(t, wroteDuring, 1)
	assert.Equal(t, domain.StageDiligence, wroteDuring[0].Stage)
	assert.Equal(t, domain.StageDiligence, v.Deals()[0].Stage)
}

func TestMutate_FailureRestoresExactSnapshot(t *testing.T) {
	unrelated := domain.Deal{ID: 2, Name: "Other", Stage: domain.StageScreen}
	v := seededView(
		domain.Deal{ID: 1, Name: "Acme", Stage: domain.StageSourced},
		unrelated,
	)

	writeErr := errors.New("store rejected")
	err := v.Mutate(setStage(1, domain.StageIC), func() error { return writeErr }, nil)

	require.ErrorIs(t, err, writeErr)
	deals := v.Deals()
	require.Len(t, deals, 2)
	assert.Equal(t, domain.StageSourced, deals[0].Stage, "mutated deal reverted")
	assert.Equal(t, unrelated, deals[1], "unrelated deal untouched by rollback")
}

func TestMutate_FailedAppendRemovesDeal(t *testing.T) {
	v := seededView(domain.Deal{ID: 1, Name: "Acme"})

	err := v.Mutate(
		appendDeal(domain.Deal{Name: "Phantom"}),
		func() error { return errors.New("boom") },
		nil,
	)

	require.Error(t, err)
	assert.Len(t, v.Deals(), 1)
}

func TestMutate_SupersededFailureDoesNotClobberNewerState(t *testing.T) {
	v := seededView(domain.Deal{ID: 1, Name: "Acme", Stage: domain.StageSourced})

	// First mutation's write fails, but only after a second mutation has
	// applied its own speculative state. The stale snapshot must not come
	// back; the view refreshes from the store instead.
	storeState := []domain.Deal{{ID: 1, Name: "Acme", Stage: domain.StageScreen}}

	err := v.Mutate(
		setStage(1, domain.StageIC),
		func() error {
			second := v.Mutate(setStage(1, domain.StageScreen), func() error { return nil }, nil)
			require.NoError(t, second)
			return errors.New("first write lost")
		},
		func() ([]domain.Deal, error) { return storeState, nil },
	)

	require.Error(t, err)
	assert.Equal(t, domain.StageScreen, v.Deals()[0].Stage,
		"second mutation's outcome survives the first one's rollback")
}

func TestMutate_SuccessRefreshSkippedWhenSuperseded(t *testing.T) {
	v := seededView(domain.Deal{ID: 1, Name: "Acme", Stage: domain.StageSourced})

	refreshed := false
	err := v.Mutate(
		setStage(1, domain.StageScreen),
		func() error {
			// a newer mutation lands while this write is in flight
			return v.Mutate(setStage(1, domain.StageIC), func() error { return nil }, nil)
		},
		func() ([]domain.Deal, error) {
			refreshed = true
			return []domain.Deal{{ID: 1, Name: "Acme", Stage: domain.StageScreen}}, nil
		},
	)

	require.NoError(t, err)
	assert.False(t, refreshed, "superseded mutation must not reconcile over newer state")
	assert.Equal(t, domain.StageIC, v.Deals()[0].Stage)
}

func TestMutate_FailedRefreshKeepsSpeculativeState(t *testing.T) {
	v := seededView(domain.Deal{ID: 1, Name: "Acme", Stage: domain.StageSourced})

	err := v.Mutate(
		setStage(1, domain.StageDiligence),
		func() error { return nil },
		func() ([]domain.Deal, error) { return nil, errors.New("store unreachable") },
	)

	require.NoError(t, err)
	assert.Equal(t, domain.StageDiligence, v.Deals()[0].Stage)
}

func TestDeals_ReturnsCopy(t *testing.T) {
	v := seededView(domain.Deal{ID: 1, Name: "Acme"})

	got := v.Deals()
	got[0].Name = "Tampered"

	assert.Equal(t, "Acme", v.Deals()[0].Name)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	a := r.Board(7)
	b := r.Board(7)
	assert.Same(t, a, b, "same board yields the same view")

	other := r.Board(8)
	assert.NotSame(t, a, other)

	r.Drop(7)
	assert.NotSame(t, a, r.Board(7), "dropped board starts a fresh view")
}
