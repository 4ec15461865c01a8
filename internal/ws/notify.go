package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

type ModelUpdatedEvent struct {
	Type       string `json:"type"`
	SnapshotID string `json:"snapshot_id"`
	Samples    int    `json:"samples"`
	Classes    int    `json:"classes"`
	Source     string `json:"source"`
	Timestamp  string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyModelUpdated tells every subscriber that a new snapshot is serving requests.
func NotifyModelUpdated(snapshotID string, samples, classes int, source string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := ModelUpdatedEvent{
		Type:       "model_updated",
		SnapshotID: snapshotID,
		Samples:    samples,
		Classes:    classes,
		Source:     source,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
