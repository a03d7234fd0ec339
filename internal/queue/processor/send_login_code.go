package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/traderacademy/backoffice/internal/queue/task"
	"github.com/traderacademy/backoffice/internal/worker"

	"github.com/hibiken/asynq"
)

type sendLoginCodeProcessor struct {
	workers *worker.Workers
}

func NewSendLoginCodeProcessor(workers *worker.Workers) *sendLoginCodeProcessor {
	return &sendLoginCodeProcessor{
		workers: workers,
	}
}

func (p *sendLoginCodeProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendLoginCode
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process send login code task json unmarshal failed: %w", err)
	}

	if err = p.workers.EmailSender.SendLoginCodeEmail(ctx, data.Email, data.FirstName, data.Code); err != nil {
		return fmt.Errorf("send login code email failed: %w", err)
	}

	return nil
}
