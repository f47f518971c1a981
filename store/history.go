package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/lib/pq"

	"github.com/bitmark-inc/immunity-api/schema"
)

var (
	ErrPersonNotFound = fmt.Errorf("person not found")
)

// PersonHistory returns the vaccinations and cases of a single person.
func (s *ImmunityStore) PersonHistory(ctx context.Context, personID uuid.UUID) (*schema.PersonHistory, error) {
	histories, err := s.loadHistories(ctx, []uuid.UUID{personID})
	if err != nil {
		return nil, err
	}

	if len(histories) == 0 {
		return nil, ErrPersonNotFound
	}

	return &histories[0], nil
}

// PersonHistories returns the vaccinations and cases of every person.
func (s *ImmunityStore) PersonHistories(ctx context.Context) ([]schema.PersonHistory, error) {
	return s.loadHistories(ctx, nil)
}

// loadHistories reads all tables in one read only transaction, so that the
// histories are a consistent snapshot. A nil personIDs loads every person.
func (s *ImmunityStore) loadHistories(ctx context.Context, personIDs []uuid.UUID) (histories []schema.PersonHistory, err error) {
	tx := s.ormDB.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if tx.Error != nil {
		return nil, tx.Error
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit().Error
	}()

	people := make([]schema.Person, 0)
	query := tx
	if personIDs != nil {
		query = query.Where("id = ANY(?)", pq.Array(uuidStrings(personIDs)))
	}
	if err := query.Order("id").Find(&people).Error; err != nil {
		return nil, fmt.Errorf("load people: %w", err)
	}

	histories = make([]schema.PersonHistory, len(people))
	personIndex := make(map[uuid.UUID]int, len(people))
	ids := make([]uuid.UUID, len(people))
	for i, p := range people {
		histories[i] = schema.PersonHistory{
			Person: p,
			Shots:  make([]schema.VaccinationShot, 0),
			Cases:  make([]schema.CaseHistory, 0),
		}
		personIndex[p.ID] = i
		ids[i] = p.ID
	}

	if len(people) == 0 {
		return histories, nil
	}

	shots := make([]schema.VaccinationShot, 0)
	if err := tx.Where("person_id = ANY(?)", pq.Array(uuidStrings(ids))).
		Order("administered_on, id").Find(&shots).Error; err != nil {
		return nil, fmt.Errorf("load vaccination shots: %w", err)
	}
	for _, shot := range shots {
		if i, ok := personIndex[shot.PersonID]; ok {
			histories[i].Shots = append(histories[i].Shots, shot)
		}
	}

	cases := make([]schema.Case, 0)
	if err := tx.Where("person_id = ANY(?)", pq.Array(uuidStrings(ids))).
		Order("inserted_at, id").Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("load cases: %w", err)
	}
	if len(cases) == 0 {
		return histories, nil
	}

	type casePosition struct {
		person, index int
	}
	caseIndex := make(map[uuid.UUID]casePosition, len(cases))
	caseIDs := make([]uuid.UUID, 0, len(cases))
	for _, c := range cases {
		i, ok := personIndex[c.PersonID]
		if !ok {
			continue
		}
		caseIndex[c.ID] = casePosition{i, len(histories[i].Cases)}
		caseIDs = append(caseIDs, c.ID)
		histories[i].Cases = append(histories[i].Cases, schema.CaseHistory{
			Case:   c,
			Phases: make([]schema.Phase, 0),
			Tests:  make([]schema.Test, 0),
		})
	}

	phases := make([]schema.Phase, 0)
	if err := tx.Where("case_id = ANY(?)", pq.Array(uuidStrings(caseIDs))).
		Order("inserted_at, id").Find(&phases).Error; err != nil {
		return nil, fmt.Errorf("load phases: %w", err)
	}
	for _, p := range phases {
		if pos, ok := caseIndex[p.CaseID]; ok {
			c := &histories[pos.person].Cases[pos.index]
			c.Phases = append(c.Phases, p)
		}
	}

	tests := make([]schema.Test, 0)
	if err := positiveTests(tx, caseIDs).Find(&tests).Error; err != nil {
		return nil, fmt.Errorf("load tests: %w", err)
	}
	for _, t := range tests {
		if pos, ok := caseIndex[t.CaseID]; ok {
			c := &histories[pos.person].Cases[pos.index]
			c.Tests = append(c.Tests, t)
		}
	}

	return histories, nil
}

func positiveTests(tx *gorm.DB, caseIDs []uuid.UUID) *gorm.DB {
	return tx.Where("case_id = ANY(?) AND result = ?", pq.Array(uuidStrings(caseIDs)), schema.TestPositive).
		Order("id")
}

func uuidStrings(ids []uuid.UUID) []string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = id.String()
	}
	return s
}
