package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendLoginCodeTaskName  = "sendLoginCodeTask"
	SendLoginCodeQueueName = "sendLoginCodeQueue"
)

type SendLoginCode struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	Code      string `json:"code"`
}

func NewLoginCodeTask(email string, firstName string, code string) (*asynq.Task, error) {
	var data SendLoginCode
	data.Email = email
	data.FirstName = firstName
	data.Code = code

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendLoginCodeTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendLoginCodeQueueName),
	), nil
}
