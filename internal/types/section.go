package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Section is one offering of a course in a term, owned by the instructor
// who enters its assessment numbers.
type Section struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Course       *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	InstructorID uuid.UUID      `gorm:"type:uuid;not null;index" json:"instructor_id"`
	Instructor   *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:InstructorID;references:ID" json:"instructor,omitempty"`
	Term         string         `gorm:"not null;column:term" json:"term"`
	Number       string         `gorm:"not null;column:number" json:"number"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Section) TableName() string { return "section" }

// Label is the display form used in the drill-down tree.
func (s Section) Label() string {
	return s.Term + " " + s.Number
}
