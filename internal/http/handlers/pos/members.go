package pos

import (
	"strconv"
	"strings"

	"github.com/sanjose-despensas/backend/internal/http/handlers/shared"
	"github.com/sanjose-despensas/backend/internal/http/response"
	"github.com/sanjose-despensas/backend/internal/repository"
	"github.com/sanjose-despensas/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type memberView struct {
	ID               uint   `json:"id"`
	MembershipNumber string `json:"membership_number"`
	Name             string `json:"name"`
	Credential       string `json:"credential"`
	Collected        bool   `json:"collected"`
}

// SearchMembers matches a query against number and name, capped at ten.
func (h *Handler) SearchMembers(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	members, err := h.MemberService.Search(query)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "la búsqueda falló", err)
		return
	}

	views := make([]memberView, 0, len(members))
	for _, member := range members {
		views = append(views, memberView{
			ID:               member.ID,
			MembershipNumber: member.MembershipNumber,
			Name:             member.Name,
			Credential:       member.Credential,
			Collected:        member.Collected,
		})
	}
	response.Success(c, views)
}

// ListMembers returns the registry paginated with a status filter.
func (h *Handler) ListMembers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	members, total, err := h.MemberService.List(repository.MemberListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.DefaultQuery("status", "all")),
		Search:   strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo listar el padrón", err)
		return
	}

	views := make([]memberView, 0, len(members))
	for _, member := range members {
		views = append(views, memberView{
			ID:               member.ID,
			MembershipNumber: member.MembershipNumber,
			Name:             member.Name,
			Credential:       member.Credential,
			Collected:        member.Collected,
		})
	}
	response.SuccessWithPage(c, views, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, pageSize),
	})
}

// GetMember returns one registry entry.
func (h *Handler) GetMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "identificador inválido")
		return
	}

	member, err := h.MemberService.GetByID(uint(id))
	if err != nil {
		shared.RespondDomainError(c, err)
		return
	}
	response.Success(c, memberView{
		ID:               member.ID,
		MembershipNumber: member.MembershipNumber,
		Name:             member.Name,
		Credential:       member.Credential,
		Collected:        member.Collected,
	})
}

type createMemberRequest struct {
	MembershipNumber string `json:"membership_number"`
	Name             string `json:"name" binding:"required"`
	Credential       string `json:"credential"`
}

// CreateMember registers one member.
func (h *Handler) CreateMember(c *gin.Context) {
	var req createMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "el nombre es obligatorio")
		return
	}

	member, err := h.MemberService.Register(service.RegisterInput{
		MembershipNumber: req.MembershipNumber,
		Name:             req.Name,
		Credential:       req.Credential,
	})
	if err != nil {
		shared.RespondDomainError(c, err)
		return
	}
	response.Success(c, memberView{
		ID:               member.ID,
		MembershipNumber: member.MembershipNumber,
		Name:             member.Name,
		Credential:       member.Credential,
		Collected:        member.Collected,
	})
}

type setCollectedRequest struct {
	Collected *bool `json:"collected" binding:"required"`
}

// SetMemberStatus overrides the collected flag, stock untouched.
func (h *Handler) SetMemberStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "identificador inválido")
		return
	}

	var req setCollectedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Collected == nil {
		response.BadRequest(c, "falta el campo collected")
		return
	}

	member, err := h.MemberService.SetCollected(uint(id), *req.Collected)
	if err != nil {
		shared.RespondDomainError(c, err)
		return
	}
	response.Success(c, memberView{
		ID:               member.ID,
		MembershipNumber: member.MembershipNumber,
		Name:             member.Name,
		Credential:       member.Credential,
		Collected:        member.Collected,
	})
}

// DeleteMember removes a registry entry permanently.
func (h *Handler) DeleteMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "identificador inválido")
		return
	}

	if err := h.MemberService.Remove(uint(id)); err != nil {
		shared.RespondDomainError(c, err)
		return
	}
	response.SuccessWithMsg(c, "socio eliminado", nil)
}

// ExportMembers streams the registry as CSV.
func (h *Handler) ExportMembers(c *gin.Context) {
	data, err := h.MemberService.ExportCSV()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo exportar el padrón", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="socios.csv"`)
	c.Data(200, "text/csv; charset=utf-8", data)
}
