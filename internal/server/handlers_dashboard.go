package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (h *handlers) dashboard(c *fiber.Ctx) error {
	dash, err := h.deps.Dashboard.BuildDashboard(c.Context(), currentUserID(c), time.Now())
	if err != nil {
		h.deps.Logger.Error("failed to build dashboard", "error", err)
		return errorResponse(c, fiber.StatusInternalServerError, "DATABASE_ERROR", "Failed to build dashboard")
	}

	return dataResponse(c, fiber.StatusOK, dash)
}
