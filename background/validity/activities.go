package validity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/cadence/activity"
	"go.uber.org/zap"

	"github.com/bitmark-inc/immunity-api/schema"
	"github.com/bitmark-inc/immunity-api/store"
	"github.com/bitmark-inc/immunity-api/validity"
)

// PersonValidity is the outcome of computing the validity of one person.
type PersonValidity struct {
	Removed bool
	Ranges  []schema.ValidityRange
}

// ComputePersonValidityActivity loads the history of a person and computes
// the validity ranges. A person that no longer exists is reported as removed.
func (s *ValidityWorker) ComputePersonValidityActivity(ctx context.Context, id string) (*PersonValidity, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Compute validity of person.", zap.String("personID", id))

	personID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	scope := validity.SinglePerson(personID)
	start := time.Now()
	result, err := validity.NewEvaluator(s.core, 1).Compute(ctx, scope)
	s.Metrics.ObserveCompute(scope, start, result, err)
	if err != nil {
		if errors.Is(err, store.ErrPersonNotFound) {
			return &PersonValidity{Removed: true}, nil
		}
		return nil, err
	}

	// skipped records are counted by ObserveCompute
	for _, i := range result.Issues {
		logger.Warn("Record skipped.", zap.String("kind", i.Kind), zap.String("message", i.Message))
	}

	return &PersonValidity{Ranges: result.Ranges}, nil
}

// StorePersonValidityActivity replaces the stored validity snapshot of a person
func (s *ValidityWorker) StorePersonValidityActivity(ctx context.Context, id string, ranges []schema.ValidityRange) error {
	logger := activity.GetLogger(ctx)

	personID, err := uuid.Parse(id)
	if err != nil {
		return err
	}

	if err := s.mongo.ReplacePersonValidity(personID, ranges, time.Now()); err != nil {
		return err
	}
	s.Metrics.IncrementSnapshotsStored()

	logger.Info("Stored validity snapshot.", zap.String("personID", id), zap.Int("ranges", len(ranges)))
	return nil
}
