package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"parkslot/models"

	"github.com/hibiken/asynq"
)

const (
	TypeReconcileSubmit = "booking:reconcile"
	ReconcileQueue      = "reconcile"
)

func NewReconcileTask(payload models.ReconcilePayload, maxRetry int) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReconcileSubmit, b)
	opts := []asynq.Option{asynq.Queue(ReconcileQueue)}
	if maxRetry > 0 {
		opts = append(opts, asynq.MaxRetry(maxRetry))
	}
	return task, opts, nil
}

// AsynqEnqueuer queues reconciliation tasks for the background worker.
type AsynqEnqueuer struct {
	Client   *asynq.Client
	MaxRetry int
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, maxRetry int) *AsynqEnqueuer {
	return &AsynqEnqueuer{Client: asynq.NewClient(redisOpt), MaxRetry: maxRetry}
}

func (e *AsynqEnqueuer) EnqueueReconcile(ctx context.Context, payload models.ReconcilePayload) error {
	task, opts, err := NewReconcileTask(payload, e.MaxRetry)
	if err != nil {
		return fmt.Errorf("build reconcile task: %w", err)
	}
	if _, err := e.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue reconcile task: %w", err)
	}
	return nil
}

func (e *AsynqEnqueuer) Close() error {
	return e.Client.Close()
}
