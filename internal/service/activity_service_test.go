package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/common"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
)

func recordAt(base time.Time, minutes int) domain.ActivityRecord {
	return domain.ActivityRecord{CreatedAt: base.Add(time.Duration(minutes) * time.Minute)}
}

func TestMergeStreams_NewestFirst(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	streams := [][]domain.ActivityRecord{
		{recordAt(base, 10), recordAt(base, 7), recordAt(base, 3)},
		{recordAt(base, 9), recordAt(base, 5)},
	}
	feed := mergeStreams(streams, []string{"Acme", "Globex"})

	require.Len(t, feed, 5)
	wantMinutes := []int{10, 9, 7, 5, 3}
	wantNames := []string{"Acme", "Globex", "Acme", "Globex", "Acme"}
	for i, entry := range feed {
		assert.Equal(t, base.Add(time.Duration(wantMinutes[i])*time.Minute), entry.CreatedAt, "entry %d", i)
		assert.Equal(t, wantNames[i], entry.DealName, "entry %d", i)
	}
}

func TestMergeStreams_EqualTimestampsKeepStreamOrder(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	streams := [][]domain.ActivityRecord{
		{recordAt(base, 5)},
		{recordAt(base, 5)},
	}
	feed := mergeStreams(streams, []string{"Acme", "Globex"})

	require.Len(t, feed, 2)
	assert.Equal(t, "Acme", feed[0].DealName)
	assert.Equal(t, "Globex", feed[1].DealName)
}

func TestMergeStreams_Empty(t *testing.T) {
	assert.Empty(t, mergeStreams(nil, nil))
	assert.Empty(t, mergeStreams([][]domain.ActivityRecord{{}, {}}, []string{"a", "b"}))
}

func TestAggregateBoard_DegradesFailedStream(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)
	activities := new(mockActivityRepo)

	analystOn(boards, 1, 7)
	deals.On("ListByBoard", uint64(1)).Return([]domain.Deal{
		{ID: 11, Name: "Acme"},
		{ID: 12, Name: "Globex"},
	}, nil)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	activities.On("ListByDeal", uint64(11)).Return([]domain.ActivityRecord{recordAt(base, 2), recordAt(base, 1)}, nil)
	activities.On("ListByDeal", uint64(12)).Return(nil, errors.New("timeout"))

	svc := NewActivityService(activities, deals, NewAccessService(boards))

	feed, err := svc.AggregateBoard(domain.Actor{ID: 7}, 1)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	for _, entry := range feed {
		assert.Equal(t, "Acme", entry.DealName)
	}
}

func TestAggregateBoard_NonMemberDenied(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)
	activities := new(mockActivityRepo)

	boards.On("RoleMap", uint64(1)).Return(map[uint64]domain.Role{}, nil)
	boards.On("FindByID", uint64(1)).Return(&domain.Board{ID: 1, CreatedBy: 5}, nil)

	svc := NewActivityService(activities, deals, NewAccessService(boards))

	_, err := svc.AggregateBoard(domain.Actor{ID: 42}, 1)
	assert.ErrorIs(t, err, common.ErrNoBoardAccess)
	deals.AssertNotCalled(t, "ListByBoard", mock.Anything)
}

func TestActivityListByDeal(t *testing.T) {
	boards := new(mockBoardRepo)
	deals := new(mockDealRepo)
	activities := new(mockActivityRepo)

	deals.On("FindByID", uint64(11)).Return(&domain.Deal{ID: 11, BoardID: 1}, nil)
	analystOn(boards, 1, 7)
	activities.On("ListByDeal", uint64(11)).Return([]domain.ActivityRecord{{ID: 1}}, nil)

	svc := NewActivityService(activities, deals, NewAccessService(boards))

	records, err := svc.ListByDeal(domain.Actor{ID: 7}, 11)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
