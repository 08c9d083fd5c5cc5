package view

import "sync"

// Registry hands out one BoardView per board, created lazily
type Registry struct {
	mu    sync.Mutex
	views map[uint64]*BoardView
}

// NewRegistry creates an empty view registry
func NewRegistry() *Registry {
	return &Registry{views: make(map[uint64]*BoardView)}
}

// Board returns the view for a board, creating it on first use
func (r *Registry) Board(boardID uint64) *BoardView {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.views[boardID]
	if !ok {
		v = NewBoardView(boardID)
		r.views[boardID] = v
	}
	return v
}

// Drop removes a board's view, e.g. after the board is deleted
func (r *Registry) Drop(boardID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, boardID)
}
