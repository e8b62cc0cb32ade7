package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"labeler/internal/labeler"
	"labeler/internal/models"
	"labeler/internal/tasks"
)

// Deps bundles what the task handlers need.
type Deps struct {
	Labeler     *labeler.Service
	Enqueuer    *asynq.Client
	DefaultRepo models.Repo
}

// RegisterHandlers wires the scan and label handlers onto the mux.
func RegisterHandlers(mux *asynq.ServeMux, deps Deps) {
	mux.HandleFunc(tasks.TypeDiscussionScan, HandleScan(deps))
	mux.HandleFunc(tasks.TypeDiscussionLabel, HandleLabel(deps))
}

// HandleScan lists unlabeled discussions in the default repository and
// enqueues one label task per discussion.
func HandleScan(deps Deps) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		discussions, err := deps.Labeler.ListUnlabeled(ctx, deps.DefaultRepo)
		if err != nil {
			return fmt.Errorf("scan %s: %w", deps.DefaultRepo, err)
		}
		log.Infof("Scan found %d unlabeled discussion(s) in %s", len(discussions), deps.DefaultRepo)

		for _, d := range discussions {
			task, opts, err := tasks.NewLabelTask(deps.DefaultRepo, d.Number)
			if err != nil {
				return err
			}
			if _, err := deps.Enqueuer.EnqueueContext(ctx, task, opts...); err != nil {
				if errors.Is(err, asynq.ErrTaskIDConflict) {
					log.Debugf("Label task for %s#%d already pending", deps.DefaultRepo, d.Number)
					continue
				}
				return fmt.Errorf("enqueue label task for %s#%d: %w", deps.DefaultRepo, d.Number, err)
			}
		}
		return nil
	}
}

// HandleLabel classifies and labels one discussion. Configuration and
// malformed-response failures are not retryable; upstream failures
// are left to Asynq's retry policy.
func HandleLabel(deps Deps) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p tasks.LabelPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("unmarshal label payload: %v: %w", err, asynq.SkipRetry)
		}

		_, err := deps.Labeler.LabelByNumber(ctx, p.Repo(), p.Number)
		if err != nil {
			if errors.Is(err, models.ErrConfiguration) || errors.Is(err, models.ErrMalformedResponse) {
				return fmt.Errorf("label %s#%d: %v: %w", p.Repo(), p.Number, err, asynq.SkipRetry)
			}
			return fmt.Errorf("label %s#%d: %w", p.Repo(), p.Number, err)
		}
		return nil
	}
}
