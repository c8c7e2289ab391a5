package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hylatrack/leads-api/internal/application/usecase"
)

// DashboardHandler maneja el tablero de resumen.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Tablero: tarjetas de resumen y leads pendientes de seguimiento
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	actor := GetActor(c)
	out, err := h.uc.Summary(c.Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
