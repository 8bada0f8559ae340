package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// TaskFavoriteAdded is the task type sent after a favorite is stored.
const TaskFavoriteAdded = "favorite:added"

// FavoriteAddedPayload is the JSON body of a TaskFavoriteAdded task.
type FavoriteAddedPayload struct {
	UserID     uint   `json:"user_id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Kind       string `json:"kind"`
	TargetID   uint   `json:"target_id"`
	TargetName string `json:"target_name"`
}

// NewFavoriteAddedTask builds the notification task.
//
// Notifications are low priority: they retry a few times and are dropped
// after a day.
func NewFavoriteAddedTask(p FavoriteAddedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskFavoriteAdded, payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
		asynq.Retention(24*time.Hour),
	), nil
}
