package queue

import (
	"encoding/json"

	"github.com/sanjose-despensas/backend/internal/constants"
	"github.com/sanjose-despensas/backend/internal/service"

	"github.com/hibiken/asynq"
)

// TaskMemberBulkImport inserts a batch of registry rows off the request path.
const TaskMemberBulkImport = constants.TaskMemberBulkImport

// MemberBulkImportPayload is the bulk import task payload.
type MemberBulkImportPayload struct {
	RequestedBy uint                `json:"requested_by"`
	Rows        []service.ImportRow `json:"rows"`
}

// NewMemberBulkImportTask builds the asynq task.
func NewMemberBulkImportTask(payload MemberBulkImportPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMemberBulkImport, body), nil
}
