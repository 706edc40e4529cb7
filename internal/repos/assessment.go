package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/outcometrack-backend/internal/db"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/types"
)

type SectionAssessmentRepo interface {
  Upsert(ctx context.Context, tx *gorm.DB, assessments []*types.SectionAssessment) ([]*types.SectionAssessment, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.SectionAssessment, error)
  GetBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.SectionAssessment, error)
  GetByCourseOutcomeIDs(ctx context.Context, tx *gorm.DB, cloIDs []uuid.UUID) ([]*types.SectionAssessment, error)
  Save(ctx context.Context, tx *gorm.DB, a *types.SectionAssessment) (*types.SectionAssessment, error)
}

type sectionAssessmentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSectionAssessmentRepo(gdb *gorm.DB, baseLog *logger.Logger) SectionAssessmentRepo {
  repoLog := baseLog.With("repo", "SectionAssessmentRepo")
  return &sectionAssessmentRepo{db: gdb, log: repoLog}
}

// Upsert writes on the (section_id, course_outcome_id) pair; a save
// replaces the authoritative row rather than patching it.
func (sar *sectionAssessmentRepo) Upsert(ctx context.Context, tx *gorm.DB, assessments []*types.SectionAssessment) ([]*types.SectionAssessment, error) {
  transaction := tx
  if transaction == nil {
    transaction = sar.db
  }

  if len(assessments) == 0 {
    return []*types.SectionAssessment{}, nil
  }

  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{
      Columns: []clause.Column{{Name: "section_id"}, {Name: "course_outcome_id"}},
      DoUpdates: clause.AssignmentColumns([]string{
        "status", "students_took", "students_passed", "assessment_tool",
        "reviewer_note", "submitted_at", "decided_at", "updated_at",
      }),
    }).
    Create(&assessments).Error; err != nil {
    return nil, db.MapError("upsert section assessments", err)
  }
  return assessments, nil
}

func (sar *sectionAssessmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, assessmentIDs []uuid.UUID) ([]*types.SectionAssessment, error) {
  transaction := tx
  if transaction == nil {
    transaction = sar.db
  }

  var results []*types.SectionAssessment
  if len(assessmentIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", assessmentIDs).
    Find(&results).Error; err != nil {
    return nil, db.MapError("get assessments by ids", err)
  }
  return results, nil
}

func (sar *sectionAssessmentRepo) GetBySectionIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.SectionAssessment, error) {
  transaction := tx
  if transaction == nil {
    transaction = sar.db
  }

  var results []*types.SectionAssessment
  if len(sectionIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("section_id IN ?", sectionIDs).
    Find(&results).Error; err != nil {
    return nil, db.MapError("get assessments by section ids", err)
  }
  return results, nil
}

func (sar *sectionAssessmentRepo) GetByCourseOutcomeIDs(ctx context.Context, tx *gorm.DB, cloIDs []uuid.UUID) ([]*types.SectionAssessment, error) {
  transaction := tx
  if transaction == nil {
    transaction = sar.db
  }

  var results []*types.SectionAssessment
  if len(cloIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("course_outcome_id IN ?", cloIDs).
    Find(&results).Error; err != nil {
    return nil, db.MapError("get assessments by clo ids", err)
  }
  return results, nil
}

func (sar *sectionAssessmentRepo) Save(ctx context.Context, tx *gorm.DB, a *types.SectionAssessment) (*types.SectionAssessment, error) {
  transaction := tx
  if transaction == nil {
    transaction = sar.db
  }

  if err := transaction.WithContext(ctx).Save(a).Error; err != nil {
    return nil, db.MapError("save section assessment", err)
  }
  return a, nil
}
