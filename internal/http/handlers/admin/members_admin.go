package admin

import (
	"github.com/sanjose-despensas/backend/internal/http/handlers/shared"
	"github.com/sanjose-despensas/backend/internal/http/response"
	"github.com/sanjose-despensas/backend/internal/queue"
	"github.com/sanjose-despensas/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type importMembersRequest struct {
	Rows []service.ImportRow `json:"rows" binding:"required"`
}

// ImportMembers takes a batch of registry rows. With the queue enabled
// the batch is processed by the worker; otherwise it runs inline.
func (h *Handler) ImportMembers(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}

	var req importMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Rows) == 0 {
		response.BadRequest(c, "el lote de socios está vacío")
		return
	}

	if h.QueueClient.Enabled() {
		err := h.QueueClient.EnqueueMemberBulkImport(queue.MemberBulkImportPayload{
			RequestedBy: userID,
			Rows:        req.Rows,
		})
		if err != nil {
			shared.RespondError(c, response.CodeInternal, "no se pudo encolar la importación", err)
			return
		}
		response.SuccessWithMsg(c, "importación encolada", gin.H{
			"queued": true,
			"rows":   len(req.Rows),
		})
		return
	}

	inserted, skipped, err := h.MemberService.ImportBatch(req.Rows)
	if err != nil {
		shared.RespondDomainError(c, err)
		return
	}
	response.SuccessWithMsg(c, "importación completada", gin.H{
		"queued":   false,
		"inserted": inserted,
		"skipped":  skipped,
	})
}

// PurgeMembers empties the registry and the delivery log.
func (h *Handler) PurgeMembers(c *gin.Context) {
	if err := h.MemberService.PurgeAll(); err != nil {
		shared.RespondDomainError(c, err)
		return
	}
	response.SuccessWithMsg(c, "padrón eliminado", nil)
}
