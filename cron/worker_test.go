package cron

import (
	"context"
	"errors"
	"testing"

	parkingRepo "parkslot/database/repository/parking"
	"parkslot/models"
	"parkslot/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubGateway implements only the compensation calls.
type stubGateway struct {
	parkingRepo.WizardGateway
	calls []string
	fail  map[string]error
}

func (g *stubGateway) DeleteVehicle(_ context.Context, number string) error {
	g.calls = append(g.calls, "vehicle:"+number)
	return g.fail[number]
}

func (g *stubGateway) DeleteBooking(_ context.Context, bookingID string) error {
	g.calls = append(g.calls, "booking:"+bookingID)
	return g.fail[bookingID]
}

func reconcileTask(t *testing.T, actions ...models.ReconcileAction) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewReconcileTask(models.ReconcilePayload{SessionID: "sess-1", Actions: actions}, 0)
	require.NoError(t, err)
	return task
}

func TestHandleReconcileTask_AppliesActionsInOrder(t *testing.T) {
	g := &stubGateway{fail: map[string]error{"KA01AB1234": parkingRepo.ErrNotFound}}
	handler := HandleReconcileTask(g, zap.NewNop())

	err := handler(context.Background(), reconcileTask(t,
		models.ReconcileAction{Kind: models.CompensateDeleteBooking, Ref: "B1"},
		models.ReconcileAction{Kind: "archive_everything", Ref: "x"},
		models.ReconcileAction{Kind: models.CompensateDeleteVehicle, Ref: "KA01AB1234"},
	))

	require.NoError(t, err)
	assert.Equal(t, []string{"booking:B1", "vehicle:KA01AB1234"}, g.calls)
}

func TestHandleReconcileTask_FailureIsRetried(t *testing.T) {
	boom := errors.New("network")
	g := &stubGateway{fail: map[string]error{"B1": boom}}
	handler := HandleReconcileTask(g, zap.NewNop())

	err := handler(context.Background(), reconcileTask(t,
		models.ReconcileAction{Kind: models.CompensateDeleteBooking, Ref: "B1"},
		models.ReconcileAction{Kind: models.CompensateDeleteVehicle, Ref: "KA01AB1234"},
	))

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
	assert.Len(t, g.calls, 2)
}

func TestHandleReconcileTask_BadPayloadSkipsRetry(t *testing.T) {
	handler := HandleReconcileTask(&stubGateway{}, zap.NewNop())

	err := handler(context.Background(), asynq.NewTask(tasks.TypeReconcileSubmit, []byte(`{"actions":`)))

	assert.ErrorIs(t, err, asynq.SkipRetry)
}
