package domain

import "time"

// RequestStatus enumerates lifecycle states for help requests.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusFulfilled RequestStatus = "fulfilled"
	RequestStatusRejected  RequestStatus = "rejected"
)

// RequestRecord is one inbound question awaiting supervisor triage. The
// backend assigns the id and owns every status transition; the console only
// removes records from its local pending view.
type RequestRecord struct {
	ID          string        `json:"id"`
	User        string        `json:"user"`
	Query       string        `json:"query"`
	RequestedAt time.Time     `json:"requestedAt"`
	Status      RequestStatus `json:"status"`
}

// Actionable reports whether the record may still receive an answer.
// Fulfilled and rejected records are rendered read-only wherever they appear.
func (r RequestRecord) Actionable() bool {
	return r.Status == RequestStatusPending
}
