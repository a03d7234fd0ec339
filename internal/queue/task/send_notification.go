package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendNotificationTaskName  = "sendNotificationTask"
	SendNotificationQueueName = "sendNotificationQueue"
)

type SendNotification struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewNotificationTask(email string, subject string, body string) (*asynq.Task, error) {
	var data SendNotification
	data.Email = email
	data.Subject = subject
	data.Body = body

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendNotificationTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendNotificationQueueName),
	), nil
}
