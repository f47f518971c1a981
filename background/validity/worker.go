package validity

import (
	"time"

	"github.com/uber-go/tally"
	"go.uber.org/cadence/.gen/go/cadence/workflowserviceclient"
	"go.uber.org/cadence/activity"
	"go.uber.org/cadence/worker"
	"go.uber.org/cadence/workflow"
	"go.uber.org/zap"

	"github.com/bitmark-inc/immunity-api/background"
	"github.com/bitmark-inc/immunity-api/external/cadence"
	"github.com/bitmark-inc/immunity-api/metrics"
	"github.com/bitmark-inc/immunity-api/store"
	"github.com/bitmark-inc/immunity-api/utils"
)

const TaskListName = utils.ValidityTaskListName

type ValidityWorker struct {
	background.Background
	domain          string
	refreshInterval time.Duration
	core            store.ImmunityCore
	mongo           store.MongoStore
}

func NewValidityWorker(domain string, core store.ImmunityCore, mongo store.MongoStore, m *metrics.Metrics, refreshInterval time.Duration) *ValidityWorker {
	if refreshInterval <= 0 {
		refreshInterval = utils.DefaultValidityRefreshInterval
	}

	return &ValidityWorker{
		Background:      background.Background{Metrics: m},
		domain:          domain,
		refreshInterval: refreshInterval,
		core:            core,
		mongo:           mongo,
	}
}

func (s *ValidityWorker) Register() {
	workflow.RegisterWithOptions(s.PersonValidityWorkflow, workflow.RegisterOptions{Name: utils.PersonValidityWorkflowName})

	activity.RegisterWithOptions(s.ComputePersonValidityActivity, activity.RegisterOptions{Name: "ComputePersonValidityActivity"})
	activity.RegisterWithOptions(s.StorePersonValidityActivity, activity.RegisterOptions{Name: "StorePersonValidityActivity"})
}

func (s *ValidityWorker) Start(service workflowserviceclient.Interface, logger *zap.Logger) {
	workerOptions := worker.Options{
		Logger:        logger,
		MetricsScope:  tally.NewTestScope(TaskListName, map[string]string{}),
		DataConverter: cadence.NewMsgPackDataConverter(),
	}

	worker := worker.New(
		service,
		s.domain,
		TaskListName,
		workerOptions)

	if err := worker.Start(); err != nil {
		panic("Failed to start worker")
	}

	logger.Info("Started Worker.", zap.String("worker", TaskListName))

	select {}
}
