package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parkslot/config"
	parkingRepo "parkslot/database/repository/parking"
	"parkslot/metrics"
	"parkslot/models"
	"parkslot/services/tasks"
	"parkslot/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt is the asynq connection for the reconciliation queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitReconcileWorker starts the reconciliation worker in background. The
// returned server should be shut down on exit.
func InitReconcileWorker(gateway parkingRepo.WizardGateway) *asynq.Server {
	logger := utils.GetLogger()

	concurrency := config.AppConfig.ReconcileConcurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				tasks.ReconcileQueue: 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReconcileSubmit, HandleReconcileTask(gateway, logger))

	go func() {
		logger.Info("Starting reconciliation worker", zap.Int("concurrency", concurrency))
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("Reconciliation worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("Max retry attempts reached for reconciliation worker")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// HandleReconcileTask applies the queued compensations. Records already gone
// count as applied, so retries are safe.
func HandleReconcileTask(gateway parkingRepo.WizardGateway, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReconcilePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reconcile payload", zap.Error(err))
			return fmt.Errorf("decode reconcile payload: %v: %w", err, asynq.SkipRetry)
		}

		var errs []error
		for _, a := range p.Actions {
			var err error
			switch a.Kind {
			case models.CompensateDeleteVehicle:
				err = gateway.DeleteVehicle(ctx, a.Ref)
			case models.CompensateDeleteBooking:
				err = gateway.DeleteBooking(ctx, a.Ref)
			default:
				logger.Warn("Unknown compensation kind", zap.String("kind", a.Kind), zap.String("sessionID", p.SessionID))
				continue
			}
			if err != nil && !errors.Is(err, parkingRepo.ErrNotFound) {
				logger.Error("Reconciliation action failed",
					zap.String("sessionID", p.SessionID), zap.String("kind", a.Kind), zap.String("ref", a.Ref), zap.Error(err))
				metrics.IncCompensation(a.Kind, "failed")
				errs = append(errs, fmt.Errorf("%s %s: %w", a.Kind, a.Ref, err))
				continue
			}
			metrics.IncCompensation(a.Kind, "reconciled")
			logger.Info("Reconciliation action applied",
				zap.String("sessionID", p.SessionID), zap.String("kind", a.Kind), zap.String("ref", a.Ref))
		}
		return errors.Join(errs...)
	}
}
