package schema

import (
	"time"

	"github.com/google/uuid"
)

const (
	ValidityCollection = "validity_range"
)

// ValidityRule names the rule family that produced a validity range.
type ValidityRule string

const (
	RuleSingleDoseWaiting      ValidityRule = "single_dose_waiting"
	RuleComboThreshold         ValidityRule = "combo_threshold"
	RulePerTypeDoubleDose      ValidityRule = "per_type_double_dose"
	RuleConvalescentExternally ValidityRule = "convalescent_externally"
	RuleConvalescentInternally ValidityRule = "convalescent_internally"
)

// ValidityRange is a half-open date range [Start, End) during which a shot
// counts as protection.
type ValidityRange struct {
	PersonID uuid.UUID    `json:"person_id" bson:"person_id"`
	ShotID   uuid.UUID    `json:"vaccination_shot_id" bson:"vaccination_shot_id"`
	Rule     ValidityRule `json:"rule" bson:"rule"`
	Start    time.Time    `json:"start" bson:"start"`
	End      time.Time    `json:"end" bson:"end"`
}

// ValiditySnapshot is the stored form of a validity range.
type ValiditySnapshot struct {
	ValidityRange `bson:",inline"`
	PersonKey     string `json:"-" bson:"person_key"`
	Revision      string `json:"-" bson:"revision"`
	ComputedAt    int64  `json:"computed_at" bson:"computed_at"`
}
