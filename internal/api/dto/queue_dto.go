package dto

import (
	"time"

	"github.com/spec-kit/supervisor-console/internal/domain"
)

// PendingItem is one pending request as rendered by the presentation side.
// Actionable mirrors the status check so the renderer does not reimplement it;
// Draft carries the supervisor's in-progress answer text.
type PendingItem struct {
	ID          string               `json:"id"`
	User        string               `json:"user"`
	Query       string               `json:"query"`
	RequestedAt time.Time            `json:"requested_at"`
	Status      domain.RequestStatus `json:"status"`
	Actionable  bool                 `json:"actionable"`
	Draft       string               `json:"draft"`
}

// QueueResponse wraps the pending queue snapshot.
type QueueResponse struct {
	Data    []PendingItem `json:"data"`
	Empty   bool          `json:"empty"`
	Loading bool          `json:"loading"`
	Loaded  bool          `json:"loaded"`
}

// ResolvedItem is one answered request from the history view.
type ResolvedItem struct {
	ID               string    `json:"id"`
	CustomerID       string    `json:"customer_id"`
	Question         string    `json:"question"`
	SupervisorAnswer string    `json:"supervisor_answer"`
	AnsweredAt       time.Time `json:"answered_at"`
}

// HistoryResponse wraps the resolved queue snapshot.
type HistoryResponse struct {
	Data    []ResolvedItem `json:"data"`
	Empty   bool           `json:"empty"`
	Loading bool           `json:"loading"`
	Loaded  bool           `json:"loaded"`
}

// UpdateDraftRequest carries draft edits from the presentation side.
type UpdateDraftRequest struct {
	Text string `json:"text"`
}
