package schema

import (
	"time"

	"github.com/google/uuid"
)

type VaccineType string

const (
	Pfizer       VaccineType = "pfizer"
	Moderna      VaccineType = "moderna"
	AstraZeneca  VaccineType = "astra_zeneca"
	Janssen      VaccineType = "janssen"
	Sinopharm    VaccineType = "sinopharm"
	Sinovac      VaccineType = "sinovac"
	Covaxin      VaccineType = "covaxin"
	OtherVaccine VaccineType = "other"
)

// VaccineTypes lists every vaccine type the validity rules know about.
var VaccineTypes = []VaccineType{
	Pfizer,
	Moderna,
	AstraZeneca,
	Janssen,
	Sinopharm,
	Sinovac,
	Covaxin,
}

// Known reports whether the vaccine type is handled by any validity rule.
func (t VaccineType) Known() bool {
	for _, v := range VaccineTypes {
		if v == t {
			return true
		}
	}
	return false
}

// VaccinationShot is a single administered vaccination of a person.
type VaccinationShot struct {
	ID             uuid.UUID   `json:"id" gorm:"type:uuid;primary_key" sql:"default:uuid_generate_v4()"`
	PersonID       uuid.UUID   `json:"person_id" gorm:"type:uuid;not null;index"`
	VaccineType    VaccineType `json:"vaccine_type" gorm:"type:varchar(32);not null"`
	AdministeredOn time.Time   `json:"administered_on" gorm:"type:date;not null"`
	InsertedAt     time.Time   `json:"inserted_at"`
}

func (VaccinationShot) TableName() string {
	return "vaccination_shots"
}
