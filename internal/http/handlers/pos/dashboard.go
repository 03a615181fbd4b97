package pos

import (
	"github.com/sanjose-despensas/backend/internal/http/handlers/shared"
	"github.com/sanjose-despensas/backend/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboard returns the per-branch delivery progress view.
func (h *Handler) GetDashboard(c *gin.Context) {
	view, err := h.DashboardService.GetView()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo cargar el tablero", err)
		return
	}
	response.Success(c, view)
}
