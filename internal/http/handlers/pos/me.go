package pos

import (
	"github.com/sanjose-despensas/backend/internal/http/handlers/shared"
	"github.com/sanjose-despensas/backend/internal/http/response"

	"github.com/gin-gonic/gin"
)

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword updates the caller's password and revokes old tokens.
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "contraseña actual y nueva son obligatorias")
		return
	}

	if err := h.AuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		shared.RespondDomainError(c, err)
		return
	}
	response.SuccessWithMsg(c, "contraseña actualizada", nil)
}
