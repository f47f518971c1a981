package validity

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/immunity-api/schema"
)

const defaultWorkers = 4

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "validity")
}

// Result is the outcome of a validity computation.
//
// Ranges are the union of the output of every rule family. They are neither
// deduplicated nor merged: the same shot may appear several times with equal
// or overlapping ranges. Callers that need one window per shot or person
// have to merge the ranges themselves, see Coverage.
type Result struct {
	Ranges []schema.ValidityRange `json:"ranges"`
	Issues []Issue                `json:"issues"`
}

// Evaluate computes the validity ranges of one person. It has no side
// effects other than logging skipped records.
func Evaluate(h schema.PersonHistory) Result {
	personID := h.Person.ID
	issues := make([]Issue, 0)

	shots := make([]schema.VaccinationShot, 0, len(h.Shots))
	for _, s := range h.Shots {
		if !s.VaccineType.Known() {
			log.WithFields(logrus.Fields{
				"person_id":    personID,
				"shot_id":      s.ID,
				"vaccine_type": s.VaccineType,
			}).Warn("skip shot of unknown vaccine type")

			issue := newIssue(IssueUnknownVaccineType, ErrUnknownVaccineType, "vaccine type %q", s.VaccineType)
			issue.PersonID, issue.ShotID = personID, s.ID
			issues = append(issues, issue)
			continue
		}
		shots = append(shots, s)
	}

	phases := make([]CasePhaseDates, 0)
	for _, c := range h.Cases {
		records, phaseIssues := DeriveCasePhaseDates(personID, c)
		for _, i := range phaseIssues {
			log.WithFields(logrus.Fields{
				"person_id": personID,
				"case_id":   i.CaseID,
				"phase_id":  i.PhaseID,
				"error":     i.Error(),
			}).Warn("skip case phase")
		}
		phases = append(phases, records...)
		issues = append(issues, phaseIssues...)
	}

	e := &evaluation{
		personID:               personID,
		convalescentExternally: h.Person.ConvalescentExternally,
		shots:                  sortShots(shots),
		phases:                 phases,
	}

	ranges := e.run()
	sortRanges(ranges)

	return Result{
		Ranges: ranges,
		Issues: issues,
	}
}

// Scope selects the persons a computation runs for.
type Scope struct {
	personID uuid.UUID
	all      bool
}

func AllPersons() Scope {
	return Scope{all: true}
}

func SinglePerson(id uuid.UUID) Scope {
	return Scope{personID: id}
}

func (s Scope) All() bool {
	return s.all
}

func (s Scope) PersonID() uuid.UUID {
	return s.personID
}

func (s Scope) String() string {
	if s.all {
		return "all"
	}
	return "person"
}

// HistorySource supplies a consistent snapshot of person histories.
type HistorySource interface {
	PersonHistory(ctx context.Context, personID uuid.UUID) (*schema.PersonHistory, error)
	PersonHistories(ctx context.Context) ([]schema.PersonHistory, error)
}

// Evaluator runs Evaluate over a scope of persons loaded from a
// HistorySource. It keeps no state between calls.
type Evaluator struct {
	source  HistorySource
	workers int
}

func NewEvaluator(source HistorySource, workers int) *Evaluator {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Evaluator{
		source:  source,
		workers: workers,
	}
}

// Compute returns the validity ranges of every person in scope. If the
// source can not deliver the histories the error wraps ErrInputUnavailable.
func (e *Evaluator) Compute(ctx context.Context, scope Scope) (*Result, error) {
	if !scope.All() {
		h, err := e.source.PersonHistory(ctx, scope.PersonID())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
		}
		result := Evaluate(*h)
		return &result, nil
	}

	histories, err := e.source.PersonHistories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}

	results := make([]Result, len(histories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range histories {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Evaluate(histories[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := Result{
		Ranges: make([]schema.ValidityRange, 0),
		Issues: make([]Issue, 0),
	}
	for _, r := range results {
		merged.Ranges = append(merged.Ranges, r.Ranges...)
		merged.Issues = append(merged.Issues, r.Issues...)
	}
	sortRanges(merged.Ranges)

	log.WithFields(logrus.Fields{
		"persons": len(histories),
		"ranges":  len(merged.Ranges),
		"issues":  len(merged.Issues),
	}).Debug("computed validity of all persons")

	return &merged, nil
}

func sortRanges(ranges []schema.ValidityRange) {
	sort.SliceStable(ranges, func(i, j int) bool {
		a, b := ranges[i], ranges[j]
		if c := bytes.Compare(a.PersonID[:], b.PersonID[:]); c != 0 {
			return c < 0
		}
		if c := bytes.Compare(a.ShotID[:], b.ShotID[:]); c != 0 {
			return c < 0
		}
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if !a.End.Equal(b.End) {
			return a.End.Before(b.End)
		}
		return a.Rule < b.Rule
	})
}
