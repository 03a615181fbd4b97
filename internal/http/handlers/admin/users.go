package admin

import (
	"strconv"
	"strings"

	"github.com/sanjose-despensas/backend/internal/constants"
	"github.com/sanjose-despensas/backend/internal/http/handlers/shared"
	"github.com/sanjose-despensas/backend/internal/http/response"
	"github.com/sanjose-despensas/backend/internal/models"
	"github.com/sanjose-despensas/backend/internal/repository"
	"github.com/sanjose-despensas/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type userView struct {
	ID              uint   `json:"id"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	AllowedBranches string `json:"allowed_branches"`
	LastLoginAt     int64  `json:"last_login_at"`
}

func toUserView(user models.User) userView {
	view := userView{
		ID:              user.ID,
		Username:        user.Username,
		Name:            user.Name,
		Role:            user.Role,
		AllowedBranches: user.AllowedBranches,
	}
	if user.LastLoginAt != nil {
		view.LastLoginAt = user.LastLoginAt.Unix()
	}
	return view
}

func isKnownRole(role string) bool {
	switch role {
	case constants.RoleSuper,
		constants.RoleAdmin,
		constants.RoleBranchManager,
		constants.RoleCashier,
		constants.RoleRoamingCashier:
		return true
	}
	return false
}

// ListUsers returns the staff accounts paginated.
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	users, total, err := h.UserRepo.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Role:     strings.TrimSpace(c.Query("role")),
		Keyword:  strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo listar las cuentas", err)
		return
	}

	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}
	response.SuccessWithPage(c, views, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, pageSize),
	})
}

type createUserRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Role            string `json:"role" binding:"required"`
	AllowedBranches string `json:"allowed_branches"`
}

// CreateUser registers a staff account. Super-only via policy.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "usuario, contraseña, nombre y rol son obligatorios")
		return
	}
	role := strings.TrimSpace(req.Role)
	if !isKnownRole(role) {
		response.BadRequest(c, "rol desconocido")
		return
	}
	if err := h.AuthService.ValidatePassword(req.Password); err != nil {
		shared.RespondDomainError(c, err)
		return
	}

	existing, err := h.UserRepo.GetByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo validar el usuario", err)
		return
	}
	if existing != nil {
		response.BadRequest(c, "el nombre de usuario ya existe")
		return
	}

	hash, err := h.AuthService.HashPassword(req.Password)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo crear la cuenta", err)
		return
	}

	allowedBranches := strings.TrimSpace(req.AllowedBranches)
	if allowedBranches == "" {
		allowedBranches = constants.AllowedBranchesAll
	}
	user := models.User{
		Username:        strings.TrimSpace(req.Username),
		PasswordHash:    hash,
		Name:            strings.TrimSpace(req.Name),
		Role:            role,
		AllowedBranches: allowedBranches,
	}
	if err := h.UserRepo.Create(&user); err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo crear la cuenta", err)
		return
	}
	response.Success(c, toUserView(user))
}

type updateUserRequest struct {
	Name            string `json:"name"`
	Role            string `json:"role"`
	AllowedBranches string `json:"allowed_branches"`
	Password        string `json:"password"`
}

// UpdateUser edits a staff account; a non-empty password resets it and
// revokes outstanding tokens. Super-only via policy.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "identificador inválido")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "datos inválidos")
		return
	}

	user, err := h.UserRepo.GetByID(uint(id))
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo leer la cuenta", err)
		return
	}
	if user == nil {
		shared.RespondDomainError(c, service.ErrNotFound)
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if role := strings.TrimSpace(req.Role); role != "" {
		if !isKnownRole(role) {
			response.BadRequest(c, "rol desconocido")
			return
		}
		user.Role = role
	}
	if allowed := strings.TrimSpace(req.AllowedBranches); allowed != "" {
		user.AllowedBranches = allowed
	}
	if err := h.UserRepo.Update(user); err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo actualizar la cuenta", err)
		return
	}

	if password := strings.TrimSpace(req.Password); password != "" {
		if err := h.AuthService.ValidatePassword(password); err != nil {
			shared.RespondDomainError(c, err)
			return
		}
		hash, err := h.AuthService.HashPassword(password)
		if err != nil {
			shared.RespondError(c, response.CodeInternal, "no se pudo actualizar la contraseña", err)
			return
		}
		user.PasswordHash = hash
		if err := h.UserRepo.Update(user); err != nil {
			shared.RespondError(c, response.CodeInternal, "no se pudo actualizar la contraseña", err)
			return
		}
		if err := h.AuthService.RevokeTokens(user.ID); err != nil {
			shared.RequestLog(c).Warnw("revoke_tokens_failed", "user_id", user.ID, "error", err)
		}
	}

	response.Success(c, toUserView(*user))
}

// DeleteUser removes a staff account. Super-only via policy.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "identificador inválido")
		return
	}

	callerID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	if callerID == uint(id) {
		response.BadRequest(c, "no puedes eliminar tu propia cuenta")
		return
	}

	user, err := h.UserRepo.GetByID(uint(id))
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo leer la cuenta", err)
		return
	}
	if user == nil {
		shared.RespondDomainError(c, service.ErrNotFound)
		return
	}

	if err := h.UserRepo.Delete(uint(id)); err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo eliminar la cuenta", err)
		return
	}
	response.SuccessWithMsg(c, "cuenta eliminada", nil)
}
