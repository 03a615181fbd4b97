package worker

import (
	"context"
	"encoding/json"

	"github.com/sanjose-despensas/backend/internal/logger"
	"github.com/sanjose-despensas/backend/internal/provider"
	"github.com/sanjose-despensas/backend/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles queued tasks against the shared service container.
type Consumer struct {
	*provider.Container
}

func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register wires task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskMemberBulkImport, c.handleMemberBulkImport)
}

func (c *Consumer) handleMemberBulkImport(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_member_import_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.MemberBulkImportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_member_import_unmarshal_failed", "error", err)
		return err
	}
	if len(payload.Rows) == 0 {
		logger.Debugw("worker_member_import_skip_empty_payload", "requested_by", payload.RequestedBy)
		return nil
	}
	if c.MemberService == nil {
		logger.Warnw("worker_member_import_skip_member_service_nil", "requested_by", payload.RequestedBy)
		return nil
	}

	inserted, skipped, err := c.MemberService.ImportBatch(payload.Rows)
	if err != nil {
		logger.Warnw("worker_member_import_failed",
			"requested_by", payload.RequestedBy,
			"rows", len(payload.Rows),
			"error", err,
		)
		return err
	}
	logger.Infow("worker_member_import_done",
		"requested_by", payload.RequestedBy,
		"inserted", inserted,
		"skipped", skipped,
	)
	return nil
}
