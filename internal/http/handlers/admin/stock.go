package admin

import (
	"github.com/sanjose-despensas/backend/internal/http/handlers/shared"
	"github.com/sanjose-despensas/backend/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetStock returns the warehouse and branch ledger snapshot.
func (h *Handler) GetStock(c *gin.Context) {
	snapshot, err := h.StockService.Snapshot()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo leer el inventario", err)
		return
	}
	response.Success(c, snapshot)
}

type stockMovementRequest struct {
	BranchID uint `json:"branch_id" binding:"required"`
	Amount   int  `json:"amount" binding:"required"`
}

// TransferToBranch moves despensas from the warehouse to a branch.
func (h *Handler) TransferToBranch(c *gin.Context) {
	var req stockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "sucursal y cantidad son obligatorias")
		return
	}

	if err := h.StockService.TransferToBranch(req.BranchID, req.Amount); err != nil {
		shared.RespondDomainError(c, err)
		return
	}
	response.SuccessWithMsg(c, "traslado registrado", nil)
}

// ReturnToWarehouse moves despensas from a branch back to the warehouse.
func (h *Handler) ReturnToWarehouse(c *gin.Context) {
	var req stockMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "sucursal y cantidad son obligatorias")
		return
	}

	if err := h.StockService.ReturnToWarehouse(req.BranchID, req.Amount); err != nil {
		shared.RespondDomainError(c, err)
		return
	}
	response.SuccessWithMsg(c, "devolución registrada", nil)
}

// ResetStock restores the initial ledger. Irreversible; delivery history
// is preserved.
func (h *Handler) ResetStock(c *gin.Context) {
	if err := h.StockService.ResetAll(); err != nil {
		shared.RespondDomainError(c, err)
		return
	}
	response.SuccessWithMsg(c, "inventario reiniciado", nil)
}
