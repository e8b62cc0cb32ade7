package tasks

// Task types and payloads for the Asynq-backed worker mode.

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"labeler/internal/models"
)

const (
	// TypeDiscussionScan scans the default repository for unlabeled
	// discussions and fans out label tasks.
	TypeDiscussionScan = "discussion:scan"
	// TypeDiscussionLabel classifies and labels a single discussion.
	TypeDiscussionLabel = "discussion:label"
)

// LabelPayload identifies one discussion to label.
type LabelPayload struct {
	Owner  string `json:"owner"`
	Name   string `json:"name"`
	Number int    `json:"number"`
}

func (p LabelPayload) Repo() models.Repo {
	return models.Repo{Owner: p.Owner, Name: p.Name}
}

// NewScanTask builds the periodic scan task.
func NewScanTask() *asynq.Task {
	return asynq.NewTask(TypeDiscussionScan, nil)
}

// NewLabelTask builds a label task for one discussion. The task ID is
// derived from the discussion so a rescan cannot enqueue duplicates
// while an earlier attempt is still pending.
func NewLabelTask(repo models.Repo, number int) (*asynq.Task, []asynq.Option, error) {
	payload, err := json.Marshal(LabelPayload{Owner: repo.Owner, Name: repo.Name, Number: number})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal label payload: %w", err)
	}
	opts := []asynq.Option{
		asynq.TaskID(fmt.Sprintf("label:%s#%d", repo, number)),
		asynq.MaxRetry(3),
	}
	return asynq.NewTask(TypeDiscussionLabel, payload), opts, nil
}
