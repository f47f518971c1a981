package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/immunity-api/schema"
	"github.com/bitmark-inc/immunity-api/validity"
)

func TestObserveCompute(t *testing.T) {
	m := New(prometheus.NewRegistry())

	result := &validity.Result{
		Ranges: []schema.ValidityRange{
			{Rule: schema.RulePerTypeDoubleDose},
			{Rule: schema.RuleComboThreshold},
			{Rule: schema.RulePerTypeDoubleDose},
		},
		Issues: []validity.Issue{
			{Kind: validity.IssueUnknownVaccineType},
		},
	}

	m.ObserveCompute(validity.SinglePerson(uuid.New()), time.Now(), result, nil)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.RangesComputed.WithLabelValues(string(schema.RulePerTypeDoubleDose))))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RangesComputed.WithLabelValues(string(schema.RuleComboThreshold))))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.IssuesReported.WithLabelValues(validity.IssueUnknownVaccineType)))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ComputeFailures.WithLabelValues("person")))
}

func TestObserveComputeFailure(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveCompute(validity.AllPersons(), time.Now(), nil, errors.New("connection refused"))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ComputeFailures.WithLabelValues("all")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveCompute(validity.AllPersons(), time.Now(), &validity.Result{}, nil)
		m.IncrementSnapshotsStored()
	})
}
