package public

import (
	"errors"
	"strings"

	"github.com/sanjose-despensas/backend/internal/http/handlers/shared"
	"github.com/sanjose-despensas/backend/internal/http/response"
	"github.com/sanjose-despensas/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt int64     `json:"expires_at"`
	User      loginUser `json:"user"`
}

type loginUser struct {
	ID              uint   `json:"id"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	AllowedBranches string `json:"allowed_branches"`
}

// Login authenticates a staff account and issues a token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "usuario y contraseña son obligatorios")
		return
	}

	if h.CaptchaService.Enabled() {
		err := h.CaptchaService.Verify(service.CaptchaVerifyPayload{
			CaptchaID:   strings.TrimSpace(req.CaptchaID),
			CaptchaCode: strings.TrimSpace(req.CaptchaCode),
		})
		if err != nil {
			shared.RespondDomainError(c, err)
			return
		}
	}

	user, token, expiresAt, err := h.AuthService.Login(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RequestLog(c).Warnw("login_failed",
				"username", strings.TrimSpace(req.Username),
				"client_ip", c.ClientIP(),
			)
		}
		shared.RespondDomainError(c, err)
		return
	}

	response.Success(c, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		User: loginUser{
			ID:              user.ID,
			Username:        user.Username,
			Name:            user.Name,
			Role:            user.Role,
			AllowedBranches: user.AllowedBranches,
		},
	})
}
