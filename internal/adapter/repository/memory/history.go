package memory

import (
	"sync"

	"github.com/tejashwikalptaru/superquiz/internal/domain"
	"github.com/tejashwikalptaru/superquiz/internal/ports"
)

// HistoryRepository implements ports.HistoryRepository in process memory.
//
// Thread-safe: all operations protected by sync.RWMutex.
type HistoryRepository struct {
	mu      sync.RWMutex
	records []domain.HistoryRecord
}

// NewHistoryRepository creates an empty in-memory history repository.
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

// Append stores a record at the head, trimming to ports.HistoryLimit.
func (r *HistoryRepository) Append(record domain.HistoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append([]domain.HistoryRecord{record}, r.records...)
	if len(r.records) > ports.HistoryLimit {
		r.records = r.records[:ports.HistoryLimit]
	}
	return nil
}

// Recent returns the stored records, most recent first.
func (r *HistoryRepository) Recent() ([]domain.HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.HistoryRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

// Clear removes all history records.
func (r *HistoryRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = nil
	return nil
}

// Verify interface implementation
var _ ports.HistoryRepository = (*HistoryRepository)(nil)
