package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/outcometrack-backend/internal/assessment"
)

// SectionAssessment is one CLO's assessment state for one section: the
// numbers an instructor entered plus the review lifecycle status. A save
// replaces the row; clients re-fetch rather than patching in place.
type SectionAssessment struct {
	ID              uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SectionID       uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_section_assessment_pair" json:"section_id"`
	Section         *Section          `gorm:"constraint:OnDelete:CASCADE;foreignKey:SectionID;references:ID" json:"section,omitempty"`
	CourseOutcomeID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_section_assessment_pair" json:"course_outcome_id"`
	CourseOutcome   *CourseOutcome    `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseOutcomeID;references:ID" json:"course_outcome,omitempty"`
	Status          assessment.Status `gorm:"not null;default:unassigned;column:status" json:"status"`
	StudentsTook    *int              `gorm:"column:students_took" json:"students_took"`
	StudentsPassed  *int              `gorm:"column:students_passed" json:"students_passed"`
	AssessmentTool  string            `gorm:"column:assessment_tool" json:"assessment_tool"`
	ReviewerNote    string            `gorm:"column:reviewer_note" json:"reviewer_note"`
	SubmittedAt     *time.Time        `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	DecidedAt       *time.Time        `gorm:"column:decided_at" json:"decided_at,omitempty"`
	CreatedAt       time.Time         `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"not null;default:now()" json:"updated_at"`
}

func (SectionAssessment) TableName() string { return "section_assessment" }

// Record projects the row into the pure rollup input.
func (sa SectionAssessment) Record() assessment.Record {
	return assessment.Record{
		Status:         sa.Status,
		StudentsTook:   sa.StudentsTook,
		StudentsPassed: sa.StudentsPassed,
		AssessmentTool: sa.AssessmentTool,
	}
}
