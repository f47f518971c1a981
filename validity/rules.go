package validity

import (
	"bytes"
	"sort"

	"github.com/google/uuid"

	"github.com/bitmark-inc/immunity-api/schema"
)

const (
	// janssen is effective 22 days after the shot
	waitingPeriodDays = 22
	// 4 weeks around a case in which a first shot does not count
	convalescentSlackDays = 28
	validityYears         = 1
)

var (
	comboVaccines = map[schema.VaccineType]bool{
		schema.Pfizer:      true,
		schema.Moderna:     true,
		schema.AstraZeneca: true,
	}

	doubleDoseVaccines = map[schema.VaccineType]bool{
		schema.AstraZeneca: true,
		schema.Pfizer:      true,
		schema.Moderna:     true,
		schema.Sinopharm:   true,
		schema.Sinovac:     true,
		schema.Covaxin:     true,
	}
)

// rankedShot is a shot with its 1-based position in its group.
type rankedShot struct {
	shot schema.VaccinationShot
	date Date
	rank int
}

func (r rankedShot) window() DateRange {
	return NewDateRange(r.date, r.date.AddYears(validityYears))
}

// evaluation is the input of the rule families for one person.
type evaluation struct {
	personID               uuid.UUID
	convalescentExternally bool
	// sorted by date and id
	shots  []schema.VaccinationShot
	phases []CasePhaseDates
}

type ruleFamily struct {
	rule     schema.ValidityRule
	evaluate func(e *evaluation, emit emitFunc)
}

type emitFunc func(shot schema.VaccinationShot, r DateRange)

// ruleFamilies are evaluated independently; a shot may get a range from
// more than one family.
var ruleFamilies = []ruleFamily{
	{schema.RuleSingleDoseWaiting, singleDoseWaiting},
	{schema.RuleComboThreshold, comboThreshold},
	{schema.RulePerTypeDoubleDose, perTypeDoubleDose},
	{schema.RuleConvalescentExternally, convalescentExternally},
	{schema.RuleConvalescentInternally, convalescentInternally},
}

func (e *evaluation) run() []schema.ValidityRange {
	ranges := make([]schema.ValidityRange, 0)
	for _, f := range ruleFamilies {
		rule := f.rule
		f.evaluate(e, func(shot schema.VaccinationShot, r DateRange) {
			if r.Empty() {
				return
			}
			ranges = append(ranges, schema.ValidityRange{
				PersonID: e.personID,
				ShotID:   shot.ID,
				Rule:     rule,
				Start:    r.Start.Time(),
				End:      r.End.Time(),
			})
		})
	}
	return ranges
}

// singleDoseWaiting: every janssen shot is valid for a year after the
// waiting period.
func singleDoseWaiting(e *evaluation, emit emitFunc) {
	for _, s := range e.shots {
		if s.VaccineType != schema.Janssen {
			continue
		}
		date := DateOf(s.AdministeredOn)
		// the year is added to the shot date, not to the end of the waiting period
		emit(s, NewDateRange(
			date.AddDays(waitingPeriodDays),
			date.AddYears(validityYears).AddDays(waitingPeriodDays),
		))
	}
}

// comboThreshold: pfizer, moderna and astra zeneca count towards one pool;
// from the second shot of the pool on every shot is valid.
func comboThreshold(e *evaluation, emit emitFunc) {
	ranked := rankShots(e.shots, func(s schema.VaccinationShot) bool {
		return comboVaccines[s.VaccineType]
	}, func(schema.VaccinationShot) string {
		return ""
	})
	for _, r := range ranked {
		if r.rank >= 2 {
			emit(r.shot, r.window())
		}
	}
}

// perTypeDoubleDose: from the second shot of the same vaccine on every
// shot is valid.
func perTypeDoubleDose(e *evaluation, emit emitFunc) {
	for _, r := range rankPerType(e.shots) {
		if r.rank >= 2 {
			emit(r.shot, r.window())
		}
	}
}

// convalescentExternally: the first shot of each vaccine is valid right away
// when an infection was confirmed outside of the system.
func convalescentExternally(e *evaluation, emit emitFunc) {
	if !e.convalescentExternally {
		return
	}
	for _, r := range rankPerType(e.shots) {
		if r.rank == 1 {
			emit(r.shot, r.window())
		}
	}
}

// convalescentInternally: the first shot of each vaccine is judged against
// every index phase of the person. A shot given well after the case is
// fully valid, a shot that expired before the case is not, and a shot
// close to the case only counts from 4 weeks after the case.
func convalescentInternally(e *evaluation, emit emitFunc) {
	if len(e.phases) == 0 {
		return
	}
	for _, r := range rankPerType(e.shots) {
		if r.rank != 1 {
			continue
		}
		shotWindow := r.window()
		for _, p := range e.phases {
			anchor := coalesce(p.FirstTestDate, p.CaseFirstKnownDate)
			caseEnd := p.CaseLastKnownDate.AddDays(convalescentSlackDays)
			caseWindow := NewDateRange(anchor.AddDays(-convalescentSlackDays), caseEnd)

			switch {
			case caseWindow.StrictlyLeftOf(shotWindow):
				emit(r.shot, shotWindow)
			case caseWindow.StrictlyRightOf(shotWindow):
				// expired before the case
			case caseWindow.Overlaps(shotWindow):
				emit(r.shot, NewDateRange(caseEnd, shotWindow.End))
			}
		}
	}
}

func rankPerType(shots []schema.VaccinationShot) []rankedShot {
	return rankShots(shots, func(s schema.VaccinationShot) bool {
		return doubleDoseVaccines[s.VaccineType]
	}, func(s schema.VaccinationShot) string {
		return string(s.VaccineType)
	})
}

// rankShots numbers the selected shots within their partition. The shots
// must already be sorted.
func rankShots(shots []schema.VaccinationShot, selected func(schema.VaccinationShot) bool, partition func(schema.VaccinationShot) string) []rankedShot {
	counters := map[string]int{}
	ranked := make([]rankedShot, 0, len(shots))
	for _, s := range shots {
		if !selected(s) {
			continue
		}
		key := partition(s)
		counters[key]++
		ranked = append(ranked, rankedShot{
			shot: s,
			date: DateOf(s.AdministeredOn),
			rank: counters[key],
		})
	}
	return ranked
}

// sortShots orders shots by administration date. Shots on the same day are
// ordered by id so the order does not depend on how they were loaded.
func sortShots(shots []schema.VaccinationShot) []schema.VaccinationShot {
	sorted := make([]schema.VaccinationShot, len(shots))
	copy(sorted, shots)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := DateOf(sorted[i].AdministeredOn), DateOf(sorted[j].AdministeredOn)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return bytes.Compare(sorted[i].ID[:], sorted[j].ID[:]) < 0
	})
	return sorted
}
