package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/outcometrack-backend/internal/db"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/types"
)

type SectionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, sections []*types.Section) ([]*types.Section, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.Section, error)
  GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Section, error)
  GetByInstructorIDs(ctx context.Context, tx *gorm.DB, instructorIDs []uuid.UUID) ([]*types.Section, error)
}

type sectionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSectionRepo(gdb *gorm.DB, baseLog *logger.Logger) SectionRepo {
  repoLog := baseLog.With("repo", "SectionRepo")
  return &sectionRepo{db: gdb, log: repoLog}
}

func (sr *sectionRepo) Create(ctx context.Context, tx *gorm.DB, sections []*types.Section) ([]*types.Section, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  if len(sections) == 0 {
    return []*types.Section{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&sections).Error; err != nil {
    return nil, db.MapError("create sections", err)
  }
  return sections, nil
}

func (sr *sectionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, sectionIDs []uuid.UUID) ([]*types.Section, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  var results []*types.Section
  if len(sectionIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", sectionIDs).
    Find(&results).Error; err != nil {
    return nil, db.MapError("get sections by ids", err)
  }
  return results, nil
}

func (sr *sectionRepo) GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Section, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  var results []*types.Section
  if len(courseIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("course_id IN ?", courseIDs).
    Order("term ASC, number ASC").
    Find(&results).Error; err != nil {
    return nil, db.MapError("get sections by course ids", err)
  }
  return results, nil
}

func (sr *sectionRepo) GetByInstructorIDs(ctx context.Context, tx *gorm.DB, instructorIDs []uuid.UUID) ([]*types.Section, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  var results []*types.Section
  if len(instructorIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("instructor_id IN ?", instructorIDs).
    Order("term ASC, number ASC").
    Find(&results).Error; err != nil {
    return nil, db.MapError("get sections by instructor ids", err)
  }
  return results, nil
}
