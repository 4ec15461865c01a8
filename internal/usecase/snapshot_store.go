package usecase

import (
	"sync/atomic"

	"career-sync/internal/domain/recommend"
)

// SnapshotStore publishes the snapshot that serves requests. Readers always see either the
// previous snapshot or the new one in full.
type SnapshotStore struct {
	current atomic.Pointer[recommend.Snapshot]
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) Load() *recommend.Snapshot {
	if s == nil {
		return nil
	}
	return s.current.Load()
}

func (s *SnapshotStore) Swap(next *recommend.Snapshot) *recommend.Snapshot {
	if s == nil {
		return nil
	}
	return s.current.Swap(next)
}
