package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supervisor-console/internal/service"
	apperrors "github.com/spec-kit/supervisor-console/pkg/util"
)

// NoticesHandler exposes the user-facing notice feed.
type NoticesHandler struct {
	notices *service.NoticeService
}

// NewNoticesHandler constructs handler.
func NewNoticesHandler(notices *service.NoticeService) *NoticesHandler {
	return &NoticesHandler{notices: notices}
}

// List GET /notices.
func (h *NoticesHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.notices.List()})
}

// Dismiss DELETE /notices/:id.
func (h *NoticesHandler) Dismiss(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("notice id required", nil)
	}
	h.notices.Dismiss(id)
	return c.SendStatus(fiber.StatusNoContent)
}
