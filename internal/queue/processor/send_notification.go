package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/traderacademy/backoffice/internal/queue/task"
	"github.com/traderacademy/backoffice/internal/worker"

	"github.com/hibiken/asynq"
)

type sendNotificationProcessor struct {
	workers *worker.Workers
}

func NewSendNotificationProcessor(workers *worker.Workers) *sendNotificationProcessor {
	return &sendNotificationProcessor{
		workers: workers,
	}
}

func (p *sendNotificationProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendNotification
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process send notification task json unmarshal failed: %w", err)
	}

	if err = p.workers.EmailSender.SendNotificationEmail(ctx, data.Email, data.Subject, data.Body); err != nil {
		return fmt.Errorf("send notification email failed: %w", err)
	}

	return nil
}
