package service

import (
	"container/heap"

	"github.com/Harikowshik052/investment-deal-pipeline/internal/domain"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/repository"
	"github.com/Harikowshik052/investment-deal-pipeline/pkg/logger"
)

// ActivityService merges per-deal activity streams into ordered feeds
type ActivityService interface {
	ListByDeal(actor domain.Actor, dealID uint64) ([]domain.ActivityRecord, error)
	// AggregateBoard merges every board deal's stream into one feed,
	// newest first, annotated with deal names.
	AggregateBoard(actor domain.Actor, boardID uint64) ([]domain.FeedEntry, error)
}

type activityService struct {
	activities repository.ActivityRepository
	deals      repository.DealRepository
	access     AccessService
}

// NewActivityService creates a new ActivityService
func NewActivityService(
	activities repository.ActivityRepository,
	deals repository.DealRepository,
	access AccessService,
) ActivityService {
	return &activityService{activities: activities, deals: deals, access: access}
}

func (s *activityService) ListByDeal(actor domain.Actor, dealID uint64) ([]domain.ActivityRecord, error) {
	deal, err := s.deals.FindByID(dealID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Require(ActionView, deal.BoardID, actor.ID); err != nil {
		return nil, err
	}
	return s.activities.ListByDeal(dealID)
}

func (s *activityService) AggregateBoard(actor domain.Actor, boardID uint64) ([]domain.FeedEntry, error) {
	if _, err := s.access.Require(ActionView, boardID, actor.ID); err != nil {
		return nil, err
	}

	deals, err := s.deals.ListByBoard(boardID)
	if err != nil {
		return nil, err
	}

	streams := make([][]domain.ActivityRecord, 0, len(deals))
	names := make([]string, 0, len(deals))
	for _, d := range deals {
		records, err := s.activities.ListByDeal(d.ID)
		if err != nil {
			// a single deal's fetch failure degrades to an empty stream
			// rather than failing the whole feed
			logger.Warn("activity fetch failed for deal %d: %v", d.ID, err)
			continue
		}
		streams = append(streams, records)
		names = append(names, d.Name)
	}

	return mergeStreams(streams, names), nil
}

// streamHead points into one per-deal stream during the merge
type streamHead struct {
	stream int // index into streams; also the tie-break rank
	pos    int
}

// feedHeap orders stream heads newest-first; equal timestamps fall back to
// stream order so the merge is stable and deterministic.
type feedHeap struct {
	heads   []streamHead
	streams [][]domain.ActivityRecord
}

func (h *feedHeap) Len() int { return len(h.heads) }

func (h *feedHeap) Less(i, j int) bool {
	a := h.streams[h.heads[i].stream][h.heads[i].pos]
	b := h.streams[h.heads[j].stream][h.heads[j].pos]
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return h.heads[i].stream < h.heads[j].stream
}

func (h *feedHeap) Swap(i, j int) { h.heads[i], h.heads[j] = h.heads[j], h.heads[i] }

func (h *feedHeap) Push(x interface{}) { h.heads = append(h.heads, x.(streamHead)) }

func (h *feedHeap) Pop() interface{} {
	old := h.heads
	n := len(old)
	x := old[n-1]
	h.heads = old[:n-1]
	return x
}

// mergeStreams is a k-way merge over independently ordered (newest-first)
// per-deal streams: O(n log k), no re-sort of the concatenation. Streams
// and names are parallel slices.
func mergeStreams(streams [][]domain.ActivityRecord, names []string) []domain.FeedEntry {
	h := &feedHeap{streams: streams}
	total := 0
	for i, s := range streams {
		total += len(s)
		if len(s) > 0 {
			h.heads = append(h.heads, streamHead{stream: i})
		}
	}
	heap.Init(h)

	feed := make([]domain.FeedEntry, 0, total)
	for h.Len() > 0 {
		head := h.heads[0]
		record := streams[head.stream][head.pos]
		feed = append(feed, domain.FeedEntry{
			ActivityRecord: record,
			DealName:       names[head.stream],
		})

		if head.pos+1 < len(streams[head.stream]) {
			h.heads[0].pos++
			heap.Fix(h, 0)
		} else {
			heap.Pop(h)
		}
	}

	return feed
}
