package domain

import "time"

// ResolvedRecord is a question already answered by a supervisor. It exists
// only once the backend has accepted an answer, so supervisor_answer and
// answered_at are always populated. The console never mutates these.
type ResolvedRecord struct {
	ID               string    `json:"id" validate:"required"`
	CustomerID       string    `json:"customer_id" validate:"required"`
	Question         string    `json:"question"`
	SupervisorAnswer string    `json:"supervisor_answer" validate:"required"`
	AnsweredAt       time.Time `json:"answered_at" validate:"required"`
}
