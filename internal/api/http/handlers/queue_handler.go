package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supervisor-console/internal/api/dto"
	"github.com/spec-kit/supervisor-console/internal/service"
	apperrors "github.com/spec-kit/supervisor-console/pkg/util"
)

// QueueHandler exposes the pending queue to the rendering collaborator.
type QueueHandler struct {
	queue *service.PendingQueueService
}

// NewQueueHandler constructs handler.
func NewQueueHandler(queue *service.PendingQueueService) *QueueHandler {
	return &QueueHandler{queue: queue}
}

// GetPending GET /queue/pending.
func (h *QueueHandler) GetPending(c *fiber.Ctx) error {
	snapshot := h.queue.Snapshot()
	items := make([]dto.PendingItem, 0, len(snapshot.Requests))
	for _, record := range snapshot.Requests {
		items = append(items, dto.PendingItem{
			ID:          record.ID,
			User:        record.User,
			Query:       record.Query,
			RequestedAt: record.RequestedAt,
			Status:      record.Status,
			Actionable:  record.Actionable(),
			Draft:       h.queue.Draft(record.ID),
		})
	}
	return c.JSON(dto.QueueResponse{
		Data:    items,
		Empty:   snapshot.Loaded && len(items) == 0,
		Loading: snapshot.Loading,
		Loaded:  snapshot.Loaded,
	})
}

// RefreshPending POST /queue/pending/refresh.
func (h *QueueHandler) RefreshPending(c *fiber.Ctx) error {
	if err := h.queue.LoadPending(c.Context()); err != nil {
		return err
	}
	return h.GetPending(c)
}

// UpdateDraft PUT /queue/requests/:id/draft.
func (h *QueueHandler) UpdateDraft(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("request id required", nil)
	}
	var req dto.UpdateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	h.queue.SetDraft(c.Context(), id, req.Text)
	return c.SendStatus(fiber.StatusNoContent)
}

// SubmitAnswer POST /queue/requests/:id/answer.
func (h *QueueHandler) SubmitAnswer(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("request id required", nil)
	}
	if err := h.queue.SubmitAnswer(c.Context(), id); err != nil {
		return err
	}
	return h.GetPending(c)
}
