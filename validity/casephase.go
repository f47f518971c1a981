package validity

import (
	"github.com/google/uuid"

	"github.com/bitmark-inc/immunity-api/schema"
)

// CasePhaseDates holds the dates derived for one index phase of a case.
// Test dates are zero when the case has no positive test.
type CasePhaseDates struct {
	PersonID uuid.UUID `json:"person_id"`
	CaseID   uuid.UUID `json:"case_id"`
	PhaseID  uuid.UUID `json:"phase_id"`

	FirstTestDate      Date `json:"first_test_date"`
	LastTestDate       Date `json:"last_test_date"`
	CaseFirstKnownDate Date `json:"case_first_known_date"`
	CaseLastKnownDate  Date `json:"case_last_known_date"`
}

// DeriveCasePhaseDates returns one record per index phase of the case.
// Phases that can not be dated are returned as issues instead.
func DeriveCasePhaseDates(personID uuid.UUID, c schema.CaseHistory) ([]CasePhaseDates, []Issue) {
	firstTest, lastTest := positiveTestBounds(c.Tests)
	symptomStart := DateOfPtr(c.Case.SymptomStart)
	caseInserted := DateOfPtr(c.Case.InsertedAt)

	records := make([]CasePhaseDates, 0, len(c.Phases))
	issues := make([]Issue, 0)

	for _, phase := range c.Phases {
		if phase.Kind != schema.PhaseIndex {
			continue
		}

		start := DateOfPtr(phase.Start)
		end := DateOfPtr(phase.End)
		if !start.IsZero() && !end.IsZero() && end.Before(start) {
			issue := newIssue(IssueMalformedInputData, ErrMalformedInputData,
				"phase ends on %s before it starts on %s", end, start)
			issue.PersonID, issue.CaseID, issue.PhaseID = personID, c.Case.ID, phase.ID
			issues = append(issues, issue)
			continue
		}

		fallback := []Date{DateOfPtr(phase.OrderDate), DateOfPtr(phase.InsertedAt), caseInserted}

		firstKnown := coalesce(append([]Date{minDate(firstTest, symptomStart, start)}, fallback...)...)
		lastKnown := coalesce(append([]Date{maxDate(lastTest, symptomStart, end)}, fallback...)...)

		if firstKnown.IsZero() || lastKnown.IsZero() {
			issue := newIssue(IssueMissingTemporalAnchor, ErrMissingTemporalAnchor,
				"no test, symptom, phase, order or insertion date")
			issue.PersonID, issue.CaseID, issue.PhaseID = personID, c.Case.ID, phase.ID
			issues = append(issues, issue)
			continue
		}

		records = append(records, CasePhaseDates{
			PersonID:           personID,
			CaseID:             c.Case.ID,
			PhaseID:            phase.ID,
			FirstTestDate:      firstTest,
			LastTestDate:       lastTest,
			CaseFirstKnownDate: firstKnown,
			CaseLastKnownDate:  lastKnown,
		})
	}

	return records, issues
}

// positiveTestBounds returns the earliest and the latest of all tested and
// lab reported dates of the positive tests.
func positiveTestBounds(tests []schema.Test) (Date, Date) {
	var first, last Date
	for _, t := range tests {
		if t.Result != schema.TestPositive {
			continue
		}
		tested := DateOfPtr(t.TestedAt)
		reported := DateOfPtr(t.LabReportedAt)
		first = minDate(first, tested, reported)
		last = maxDate(last, tested, reported)
	}
	return first, last
}
