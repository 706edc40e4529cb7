package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/outcometrack-backend/internal/assessment"
)

type Program struct {
	ID                    uuid.UUID              `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code                  string                 `gorm:"uniqueIndex;not null;column:code" json:"code"`
	Name                  string                 `gorm:"not null;column:name" json:"name"`
	Description           string                 `gorm:"column:description" json:"description"`
	AssessmentDisplayMode assessment.DisplayMode `gorm:"not null;default:percentage;column:assessment_display_mode" json:"assessment_display_mode"`
	Metadata              datatypes.JSON         `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt             time.Time              `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt             time.Time              `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt             gorm.DeletedAt         `gorm:"index" json:"deleted_at,omitempty"`
}

func (Program) TableName() string { return "program" }
