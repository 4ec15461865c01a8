package dto

import (
	"time"

	"career-sync/internal/domain/recommend"
	"career-sync/internal/usecase"
)

type ModelStatusResponseData struct {
	Ready         bool            `json:"ready"`
	Source        string          `json:"source"`
	Snapshot      *recommend.Info `json:"snapshot"`
	Published     *recommend.Info `json:"published,omitempty"`
	LastError     string          `json:"last_error,omitempty"`
	LastAttemptAt *time.Time      `json:"last_attempt_at,omitempty"`
}

func NewModelStatusResponse(st usecase.ModelStatus) ModelStatusResponseData {
	return ModelStatusResponseData{
		Ready:         st.Ready,
		Source:        st.Source,
		Snapshot:      st.Snapshot,
		Published:     st.Published,
		LastError:     st.LastError,
		LastAttemptAt: st.LastAttemptAt,
	}
}

type RetrainResponseData struct {
	Snapshot recommend.Info `json:"snapshot"`
}
