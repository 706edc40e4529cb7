package types

import (
	"time"

	"github.com/google/uuid"
)

// OutcomeMapping links a CLO to a PLO. A CLO may feed several PLOs and a
// PLO aggregates many CLOs; the pair is unique.
type OutcomeMapping struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseOutcomeID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_outcome_mapping_pair" json:"course_outcome_id"`
	CourseOutcome    *CourseOutcome  `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseOutcomeID;references:ID" json:"course_outcome,omitempty"`
	ProgramOutcomeID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_outcome_mapping_pair" json:"program_outcome_id"`
	ProgramOutcome   *ProgramOutcome `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProgramOutcomeID;references:ID" json:"program_outcome,omitempty"`
	CreatedAt        time.Time       `gorm:"not null;default:now()" json:"created_at"`
}

func (OutcomeMapping) TableName() string { return "outcome_mapping" }
