package pos

import (
	"github.com/sanjose-despensas/backend/internal/cache"
	"github.com/sanjose-despensas/backend/internal/http/handlers/shared"
	"github.com/sanjose-despensas/backend/internal/http/response"
	"github.com/sanjose-despensas/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Changing the shift pin is an in-person authorization step: a supervisor
// types their own credentials on the cashier's terminal.
type setSessionBranchRequest struct {
	BranchID           uint   `json:"branch_id" binding:"required"`
	SupervisorUsername string `json:"supervisor_username" binding:"required"`
	SupervisorPassword string `json:"supervisor_password" binding:"required"`
}

type clearSessionBranchRequest struct {
	SupervisorUsername string `json:"supervisor_username" binding:"required"`
	SupervisorPassword string `json:"supervisor_password" binding:"required"`
}

// GetSessionBranch returns the roaming cashier's shift pin, 0 when unset.
func (h *Handler) GetSessionBranch(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	branchID, err := cache.GetSessionBranch(c.Request.Context(), userID)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo leer la sucursal de turno", err)
		return
	}
	response.Success(c, gin.H{"branch_id": branchID})
}

// SetSessionBranch pins the cashier to a branch for the shift. Requires
// a supervisor's credentials alongside the branch.
func (h *Handler) SetSessionBranch(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}

	var req setSessionBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "sucursal y credenciales del supervisor son obligatorias")
		return
	}

	supervisor, err := h.AuthService.VerifySupervisorOverride(req.SupervisorUsername, req.SupervisorPassword)
	if err != nil {
		shared.RespondDomainError(c, err)
		return
	}

	branch, err := h.BranchRepo.GetByID(req.BranchID)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo validar la sucursal", err)
		return
	}
	if branch == nil {
		shared.RespondDomainError(c, service.ErrBranchNotFound)
		return
	}

	if err := cache.SetSessionBranch(c.Request.Context(), userID, branch.ID); err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo fijar la sucursal de turno", err)
		return
	}
	shared.RequestLog(c).Infow("session_branch_pinned",
		"user_id", userID,
		"branch_id", branch.ID,
		"supervisor_id", supervisor.ID,
	)
	response.SuccessWithMsg(c, "sucursal de turno asignada", gin.H{"branch_id": branch.ID})
}

// ClearSessionBranch removes the shift pin, again under supervisor
// authorization.
func (h *Handler) ClearSessionBranch(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}

	var req clearSessionBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "credenciales del supervisor son obligatorias")
		return
	}

	supervisor, err := h.AuthService.VerifySupervisorOverride(req.SupervisorUsername, req.SupervisorPassword)
	if err != nil {
		shared.RespondDomainError(c, err)
		return
	}

	if err := cache.ClearSessionBranch(c.Request.Context(), userID); err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo liberar la sucursal de turno", err)
		return
	}
	shared.RequestLog(c).Infow("session_branch_cleared",
		"user_id", userID,
		"supervisor_id", supervisor.ID,
	)
	response.SuccessWithMsg(c, "sucursal de turno liberada", nil)
}
