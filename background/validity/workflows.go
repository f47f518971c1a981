package validity

import (
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/cadence/workflow"
	"go.uber.org/zap"

	"github.com/bitmark-inc/immunity-api/utils"
)

var activityOptions = workflow.ActivityOptions{
	ScheduleToStartTimeout: time.Minute,
	StartToCloseTimeout:    time.Minute,
	HeartbeatTimeout:       time.Second * 20,
}

// PersonValidityWorkflow keeps the validity snapshot of a person up to date.
// It recomputes on every refresh signal or after the refresh interval and
// ends once the person is removed.
func (s *ValidityWorker) PersonValidityWorkflow(ctx workflow.Context, personID string) error {
	ctx = workflow.WithActivityOptions(ctx, activityOptions)
	signalChan := workflow.GetSignalChannel(ctx, utils.ValidityRefreshSignal)
	defer signalChan.Close()

	logger := workflow.GetLogger(ctx)
	selector := workflow.NewSelector(ctx)

	timerCancelCtx, cancelTimerHandler := workflow.WithCancel(ctx)
	timerFuture := workflow.NewTimer(timerCancelCtx, s.refreshInterval)
	selector.AddFuture(timerFuture, func(f workflow.Future) {
		logger.Info("Start periodically validity updates")
	})

	selector.AddReceive(signalChan, func(c workflow.Channel, more bool) {
		cancelTimerHandler()
		signalChan.Receive(ctx, nil)

		logger.Info("Trigger validity updates by signal")
	})

	selector.Select(ctx)

	var pv PersonValidity
	if err := workflow.ExecuteActivity(ctx, s.ComputePersonValidityActivity, personID).Get(ctx, &pv); err != nil {
		logger.Error("Fail to compute person validity.", zap.Error(err))
		sentry.CaptureException(err)
		return workflow.NewContinueAsNewError(ctx, s.PersonValidityWorkflow, personID)
	}

	if pv.Removed {
		logger.Info("Person removed, stop validity updates", zap.String("personID", personID))
		return nil
	}

	if err := workflow.ExecuteActivity(ctx, s.StorePersonValidityActivity, personID, pv.Ranges).Get(ctx, nil); err != nil {
		logger.Error("Fail to store person validity.", zap.Error(err))
		sentry.CaptureException(err)
	}

	return workflow.NewContinueAsNewError(ctx, s.PersonValidityWorkflow, personID)
}
