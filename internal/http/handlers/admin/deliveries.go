package admin

import (
	"strconv"
	"time"

	"github.com/sanjose-despensas/backend/internal/http/handlers/shared"
	"github.com/sanjose-despensas/backend/internal/http/response"
	"github.com/sanjose-despensas/backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListDeliveries returns the delivery event log, newest first, with
// optional branch, operator and date-range filters.
func (h *Handler) ListDeliveries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	filter := repository.DeliveryListFilter{
		Page:     page,
		PageSize: pageSize,
	}
	if branchID, err := strconv.ParseUint(c.Query("branch_id"), 10, 64); err == nil {
		filter.BranchID = uint(branchID)
	}
	if operatorID, err := strconv.ParseUint(c.Query("operator_id"), 10, 64); err == nil {
		filter.OperatorID = uint(operatorID)
	}
	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		filter.DeliveredFrom = &from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.DeliveredTo = &end
	}

	deliveries, total, err := h.DeliveryService.ListDeliveries(filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "no se pudo consultar el historial de entregas", err)
		return
	}

	response.SuccessWithPage(c, deliveries, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: shared.TotalPages(total, pageSize),
	})
}
