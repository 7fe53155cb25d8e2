package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventQueueLoaded      EventType = "queue_loaded"
	EventQueueLoadFailed  EventType = "queue_load_failed"
	EventHistoryLoaded    EventType = "history_loaded"
	EventHistoryFailed    EventType = "history_load_failed"
	EventDraftUpdated     EventType = "draft_updated"
	EventAnswerSubmitted  EventType = "answer_submitted"
	EventAnswerRejected   EventType = "answer_rejected"
	EventSubmissionFailed EventType = "submission_failed"
)

// Event is published by the queue services after each state mutation or
// surfaced failure. Subscribers re-render or record notices; they never
// mutate queue state themselves.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// QueueLoadedPayload payload.
type QueueLoadedPayload struct {
	Count int `json:"count"`
}

// LoadFailedPayload payload.
type LoadFailedPayload struct {
	Reason string `json:"reason"`
}

// AnswerSubmittedPayload payload.
type AnswerSubmittedPayload struct {
	AnswerPreview string `json:"answer_preview"`
}

// AnswerRejectedPayload payload.
type AnswerRejectedPayload struct {
	Reason string `json:"reason"`
}

// SubmissionFailedPayload payload.
type SubmissionFailedPayload struct {
	Reason string `json:"reason"`
}
