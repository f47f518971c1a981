package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	cadenceClient "go.uber.org/cadence/client"

	"github.com/bitmark-inc/immunity-api/external/cadence"
)

// The names are shared with `background/validity` which can not be imported
// here without an import cycle through the api package.
const (
	ValidityTaskListName       = "immunity-validity-tasks"
	ValidityRefreshSignal      = "validityRefreshSignal"
	PersonValidityWorkflowName = "PersonValidityWorkflow"
)

// DefaultValidityRefreshInterval is used when `validity.refresh_interval` is not set.
const DefaultValidityRefreshInterval = 24 * time.Hour

// ValidityRefreshInterval returns the configured period between two
// recomputations of a person.
func ValidityRefreshInterval() time.Duration {
	if d := viper.GetDuration("validity.refresh_interval"); d > 0 {
		return d
	}
	return DefaultValidityRefreshInterval
}

// ValidityExecutionTimeout is the run timeout of `PersonValidityWorkflow`.
// A run waits a full refresh interval before its activities start, so the
// timeout leaves one more interval for them.
func ValidityExecutionTimeout(refreshInterval time.Duration) time.Duration {
	return 2*refreshInterval + time.Hour
}

// PersonValidityWorkflowID returns the id of the long running workflow
// keeping the validity snapshot of a person.
func PersonValidityWorkflowID(personID uuid.UUID) string {
	return fmt.Sprintf("person-validity-%s", personID)
}

// TriggerPersonValidityRefresh is a helper function to send a signal to
// trigger the workflow to recompute the validity of persons. The workflow
// is started if it is not running.
func TriggerPersonValidityRefresh(client cadence.WorkflowClient, c context.Context, personIDs ...uuid.UUID) error {
	for _, id := range personIDs {
		workflowID := PersonValidityWorkflowID(id)
		if _, err := client.SignalWithStartWorkflow(c,
			workflowID, ValidityRefreshSignal, nil,
			cadenceClient.StartWorkflowOptions{
				ID:                           workflowID,
				TaskList:                     ValidityTaskListName,
				ExecutionStartToCloseTimeout: ValidityExecutionTimeout(ValidityRefreshInterval()),
				WorkflowIDReusePolicy:        cadenceClient.WorkflowIDReusePolicyAllowDuplicate,
			}, PersonValidityWorkflowName, id.String()); err != nil {
			return err
		}
	}
	return nil
}
