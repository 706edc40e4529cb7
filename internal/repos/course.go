package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/outcometrack-backend/internal/db"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/types"
)

type CourseRepo interface {
  Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error)
  GetByProgramIDs(ctx context.Context, tx *gorm.DB, programIDs []uuid.UUID) ([]*types.Course, error)
}

type courseRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCourseRepo(gdb *gorm.DB, baseLog *logger.Logger) CourseRepo {
  repoLog := baseLog.With("repo", "CourseRepo")
  return &courseRepo{db: gdb, log: repoLog}
}

func (cr *courseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if len(courses) == 0 {
    return []*types.Course{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&courses).Error; err != nil {
    return nil, db.MapError("create courses", err)
  }
  return courses, nil
}

func (cr *courseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Course
  if len(courseIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", courseIDs).
    Find(&results).Error; err != nil {
    return nil, db.MapError("get courses by ids", err)
  }
  return results, nil
}

func (cr *courseRepo) GetByProgramIDs(ctx context.Context, tx *gorm.DB, programIDs []uuid.UUID) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var results []*types.Course
  if len(programIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("program_id IN ?", programIDs).
    Order("code ASC").
    Find(&results).Error; err != nil {
    return nil, db.MapError("get courses by program ids", err)
  }
  return results, nil
}
