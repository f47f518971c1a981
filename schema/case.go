package schema

import (
	"time"

	"github.com/google/uuid"
)

type PhaseKind string

const (
	PhaseIndex         PhaseKind = "index"
	PhasePossibleIndex PhaseKind = "possible_index"
)

type TestResult string

const (
	TestPositive     TestResult = "positive"
	TestNegative     TestResult = "negative"
	TestInconclusive TestResult = "inconclusive"
)

type Case struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	PersonID     uuid.UUID  `json:"person_id" gorm:"type:uuid;not null;index"`
	SymptomStart *time.Time `json:"symptom_start" gorm:"type:date"`
	InsertedAt   *time.Time `json:"inserted_at"`
}

func (Case) TableName() string {
	return "cases"
}

// Phase is a period of a case. Only index phases take part in the validity
// computation.
type Phase struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	CaseID     uuid.UUID  `json:"case_id" gorm:"type:uuid;not null;index"`
	Kind       PhaseKind  `json:"kind" gorm:"type:varchar(32);not null"`
	Start      *time.Time `json:"start" gorm:"type:date"`
	End        *time.Time `json:"end" gorm:"type:date"`
	OrderDate  *time.Time `json:"order_date"`
	InsertedAt *time.Time `json:"inserted_at"`
}

func (Phase) TableName() string {
	return "phases"
}

type Test struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	CaseID        uuid.UUID  `json:"case_id" gorm:"type:uuid;not null;index"`
	Result        TestResult `json:"result" gorm:"type:varchar(32)"`
	TestedAt      *time.Time `json:"tested_at" gorm:"type:date"`
	LabReportedAt *time.Time `json:"laboratory_reported_at" gorm:"type:date"`
}

func (Test) TableName() string {
	return "tests"
}
