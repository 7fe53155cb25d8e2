package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supervisor-console/internal/api/dto"
	"github.com/spec-kit/supervisor-console/internal/service"
)

// HistoryHandler exposes the read-only resolved queue.
type HistoryHandler struct {
	history *service.HistoryService
}

// NewHistoryHandler constructs handler.
func NewHistoryHandler(history *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// GetResolved GET /queue/resolved.
func (h *HistoryHandler) GetResolved(c *fiber.Ctx) error {
	snapshot := h.history.Snapshot()
	items := make([]dto.ResolvedItem, 0, len(snapshot.Records))
	for _, record := range snapshot.Records {
		items = append(items, dto.ResolvedItem{
			ID:               record.ID,
			CustomerID:       record.CustomerID,
			Question:         record.Question,
			SupervisorAnswer: record.SupervisorAnswer,
			AnsweredAt:       record.AnsweredAt,
		})
	}
	return c.JSON(dto.HistoryResponse{
		Data:    items,
		Empty:   snapshot.Loaded && len(items) == 0,
		Loading: snapshot.Loading,
		Loaded:  snapshot.Loaded,
	})
}

// RefreshResolved POST /queue/resolved/refresh.
func (h *HistoryHandler) RefreshResolved(c *fiber.Ctx) error {
	if err := h.history.LoadResolved(c.Context()); err != nil {
		return err
	}
	return h.GetResolved(c)
}
