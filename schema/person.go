package schema

import (
	"time"

	"github.com/google/uuid"
)

type Person struct {
	ID                     uuid.UUID `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	FirstName              string    `json:"first_name"`
	LastName               string    `json:"last_name"`
	ConvalescentExternally bool      `json:"convalescent_externally" gorm:"not null;default:false"`
	InsertedAt             time.Time `json:"inserted_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func (Person) TableName() string {
	return "people"
}

// PersonHistory gathers everything the validity computation needs to know
// about one person.
type PersonHistory struct {
	Person Person            `json:"person"`
	Shots  []VaccinationShot `json:"vaccination_shots"`
	Cases  []CaseHistory     `json:"cases"`
}

// CaseHistory is a case together with its phases and the positive tests
// linked to it.
type CaseHistory struct {
	Case   Case    `json:"case"`
	Phases []Phase `json:"phases"`
	Tests  []Test  `json:"tests"`
}
