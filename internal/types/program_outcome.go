package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgramOutcome is a PLO: a program-level objective that one or more
// course outcomes map onto.
type ProgramOutcome struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProgramID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"program_id"`
	Program     *Program       `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProgramID;references:ID" json:"program,omitempty"`
	Position    int            `gorm:"not null;default:0;column:position" json:"position"`
	Title       string         `gorm:"not null;column:title" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ProgramOutcome) TableName() string { return "program_outcome" }
