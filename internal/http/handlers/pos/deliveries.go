package pos

import (
	"strings"

	"github.com/sanjose-despensas/backend/internal/authz"
	"github.com/sanjose-despensas/backend/internal/cache"
	"github.com/sanjose-despensas/backend/internal/constants"
	"github.com/sanjose-despensas/backend/internal/http/handlers/shared"
	"github.com/sanjose-despensas/backend/internal/http/response"
	"github.com/sanjose-despensas/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type recordDeliveryRequest struct {
	MemberID   uint   `json:"member_id" binding:"required"`
	BranchID   uint   `json:"branch_id" binding:"required"`
	PickedUpBy string `json:"picked_up_by"`
}

type deliveryView struct {
	ID          uint   `json:"id"`
	MemberID    uint   `json:"member_id"`
	BranchID    uint   `json:"branch_id"`
	OperatorID  uint   `json:"operator_id"`
	Quantity    int    `json:"quantity"`
	PickedUpBy  string `json:"picked_up_by"`
	DeliveredAt int64  `json:"delivered_at"`
}

// RecordDelivery hands one despensa to a member at a branch. The branch
// must be inside the operator's scope; roaming cashiers are additionally
// held to their shift pin.
func (h *Handler) RecordDelivery(c *gin.Context) {
	operatorID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}

	var req recordDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "socio y sucursal son obligatorios")
		return
	}

	role := shared.GetContextString(c, "role")
	allowedBranches := shared.GetContextString(c, "allowed_branches")
	if !authz.CanOperateBranch(role, allowedBranches, req.BranchID) {
		shared.RespondDomainError(c, service.ErrBranchScopeDenied)
		return
	}
	if role == constants.RoleRoamingCashier {
		pinned, err := cache.GetSessionBranch(c.Request.Context(), operatorID)
		if err != nil {
			shared.RequestLog(c).Warnw("session_branch_lookup_failed", "operator_id", operatorID, "error", err)
		}
		if !authz.SessionBranchAllows(pinned, req.BranchID) {
			shared.RespondDomainError(c, service.ErrBranchScopeDenied)
			return
		}
	}

	delivery, err := h.DeliveryService.RecordDelivery(service.RecordDeliveryInput{
		MemberID:   req.MemberID,
		BranchID:   req.BranchID,
		OperatorID: operatorID,
		PickedUpBy: strings.TrimSpace(req.PickedUpBy),
	})
	if err != nil {
		shared.RespondDomainError(c, err)
		return
	}

	response.Success(c, deliveryView{
		ID:          delivery.ID,
		MemberID:    delivery.MemberID,
		BranchID:    delivery.BranchID,
		OperatorID:  delivery.OperatorID,
		Quantity:    delivery.Quantity,
		PickedUpBy:  delivery.PickedUpBy,
		DeliveredAt: delivery.DeliveredAt.Unix(),
	})
}
