package repository

import (
	"sync"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// ActivityRepository keeps the most recent activity entries in a fixed size ring.
type ActivityRepository struct {
	mu      sync.RWMutex
	entries []models.Activity
	next    int
	full    bool
}

// NewActivityRepository allocates a ring holding capacity entries.
func NewActivityRepository(capacity int) *ActivityRepository {
	if capacity <= 0 {
		capacity = 50
	}
	return &ActivityRepository{entries: make([]models.Activity, capacity)}
}

// Append stores an entry, overwriting the oldest one when the ring is full.
func (r *ActivityRepository) Append(entry models.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = entry
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
}

// Recent returns up to limit entries, newest first. A non positive limit returns everything held.
func (r *ActivityRepository) Recent(limit int) []models.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	size := r.next
	if r.full {
		size = len(r.entries)
	}
	if limit <= 0 || limit > size {
		limit = size
	}
	out := make([]models.Activity, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (r.next - 1 - i + len(r.entries)) % len(r.entries)
		out = append(out, r.entries[idx])
	}
	return out
}
