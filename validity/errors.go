package validity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrMissingTemporalAnchor = errors.New("case phase has no date to anchor on")
	ErrMalformedInputData    = errors.New("malformed input data")
	ErrUnknownVaccineType    = errors.New("unknown vaccine type")
	ErrInputUnavailable      = errors.New("validity input unavailable")
)

const (
	IssueMissingTemporalAnchor = "missing_temporal_anchor"
	IssueMalformedInputData    = "malformed_input_data"
	IssueUnknownVaccineType    = "unknown_vaccine_type"
)

// Issue is a record that was left out of the computation. Issues never
// stop the computation of the remaining records.
type Issue struct {
	Kind     string    `json:"kind"`
	PersonID uuid.UUID `json:"person_id"`
	CaseID   uuid.UUID `json:"case_id,omitempty"`
	PhaseID  uuid.UUID `json:"phase_id,omitempty"`
	ShotID   uuid.UUID `json:"vaccination_shot_id,omitempty"`
	Message  string    `json:"message"`

	err error
}

func newIssue(kind string, err error, format string, args ...interface{}) Issue {
	return Issue{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		err:     err,
	}
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s", i.err, i.Message)
}

func (i Issue) Unwrap() error {
	return i.err
}
