package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/outcometrack-backend/internal/db"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/types"
)

type ProgramOutcomeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, outcomes []*types.ProgramOutcome) ([]*types.ProgramOutcome, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, outcomeIDs []uuid.UUID) ([]*types.ProgramOutcome, error)
  GetByProgramIDs(ctx context.Context, tx *gorm.DB, programIDs []uuid.UUID) ([]*types.ProgramOutcome, error)
}

type programOutcomeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProgramOutcomeRepo(gdb *gorm.DB, baseLog *logger.Logger) ProgramOutcomeRepo {
  repoLog := baseLog.With("repo", "ProgramOutcomeRepo")
  return &programOutcomeRepo{db: gdb, log: repoLog}
}

func (por *programOutcomeRepo) Create(ctx context.Context, tx *gorm.DB, outcomes []*types.ProgramOutcome) ([]*types.ProgramOutcome, error) {
  transaction := tx
  if transaction == nil {
    transaction = por.db
  }

  if len(outcomes) == 0 {
    return []*types.ProgramOutcome{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&outcomes).Error; err != nil {
    return nil, db.MapError("create program outcomes", err)
  }
  return outcomes, nil
}

func (por *programOutcomeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, outcomeIDs []uuid.UUID) ([]*types.ProgramOutcome, error) {
  transaction := tx
  if transaction == nil {
    transaction = por.db
  }

  var results []*types.ProgramOutcome
  if len(outcomeIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", outcomeIDs).
    Find(&results).Error; err != nil {
    return nil, db.MapError("get program outcomes by ids", err)
  }
  return results, nil
}

func (por *programOutcomeRepo) GetByProgramIDs(ctx context.Context, tx *gorm.DB, programIDs []uuid.UUID) ([]*types.ProgramOutcome, error) {
  transaction := tx
  if transaction == nil {
    transaction = por.db
  }

  var results []*types.ProgramOutcome
  if len(programIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("program_id IN ?", programIDs).
    Order("position ASC").
    Find(&results).Error; err != nil {
    return nil, db.MapError("get program outcomes by program ids", err)
  }
  return results, nil
}

type CourseOutcomeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, outcomes []*types.CourseOutcome) ([]*types.CourseOutcome, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, outcomeIDs []uuid.UUID) ([]*types.CourseOutcome, error)
  GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.CourseOutcome, error)
}

type courseOutcomeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCourseOutcomeRepo(gdb *gorm.DB, baseLog *logger.Logger) CourseOutcomeRepo {
  repoLog := baseLog.With("repo", "CourseOutcomeRepo")
  return &courseOutcomeRepo{db: gdb, log: repoLog}
}

func (cor *courseOutcomeRepo) Create(ctx context.Context, tx *gorm.DB, outcomes []*types.CourseOutcome) ([]*types.CourseOutcome, error) {
  transaction := tx
  if transaction == nil {
    transaction = cor.db
  }

  if len(outcomes) == 0 {
    return []*types.CourseOutcome{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&outcomes).Error; err != nil {
    return nil, db.MapError("create course outcomes", err)
  }
  return outcomes, nil
}

func (cor *courseOutcomeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, outcomeIDs []uuid.UUID) ([]*types.CourseOutcome, error) {
  transaction := tx
  if transaction == nil {
    transaction = cor.db
  }

  var results []*types.CourseOutcome
  if len(outcomeIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", outcomeIDs).
    Find(&results).Error; err != nil {
    return nil, db.MapError("get course outcomes by ids", err)
  }
  return results, nil
}

func (cor *courseOutcomeRepo) GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.CourseOutcome, error) {
  transaction := tx
  if transaction == nil {
    transaction = cor.db
  }

  var results []*types.CourseOutcome
  if len(courseIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("course_id IN ?", courseIDs).
    Order("position ASC").
    Find(&results).Error; err != nil {
    return nil, db.MapError("get course outcomes by course ids", err)
  }
  return results, nil
}

type OutcomeMappingRepo interface {
  Create(ctx context.Context, tx *gorm.DB, mappings []*types.OutcomeMapping) ([]*types.OutcomeMapping, error)
  GetByProgramOutcomeIDs(ctx context.Context, tx *gorm.DB, ploIDs []uuid.UUID) ([]*types.OutcomeMapping, error)
  GetByCourseOutcomeIDs(ctx context.Context, tx *gorm.DB, cloIDs []uuid.UUID) ([]*types.OutcomeMapping, error)
}

type outcomeMappingRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewOutcomeMappingRepo(gdb *gorm.DB, baseLog *logger.Logger) OutcomeMappingRepo {
  repoLog := baseLog.With("repo", "OutcomeMappingRepo")
  return &outcomeMappingRepo{db: gdb, log: repoLog}
}

func (omr *outcomeMappingRepo) Create(ctx context.Context, tx *gorm.DB, mappings []*types.OutcomeMapping) ([]*types.OutcomeMapping, error) {
  transaction := tx
  if transaction == nil {
    transaction = omr.db
  }

  if len(mappings) == 0 {
    return []*types.OutcomeMapping{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&mappings).Error; err != nil {
    return nil, db.MapError("create outcome mappings", err)
  }
  return mappings, nil
}

func (omr *outcomeMappingRepo) GetByProgramOutcomeIDs(ctx context.Context, tx *gorm.DB, ploIDs []uuid.UUID) ([]*types.OutcomeMapping, error) {
  transaction := tx
  if transaction == nil {
    transaction = omr.db
  }

  var results []*types.OutcomeMapping
  if len(ploIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("program_outcome_id IN ?", ploIDs).
    Find(&results).Error; err != nil {
    return nil, db.MapError("get mappings by plo ids", err)
  }
  return results, nil
}

func (omr *outcomeMappingRepo) GetByCourseOutcomeIDs(ctx context.Context, tx *gorm.DB, cloIDs []uuid.UUID) ([]*types.OutcomeMapping, error) {
  transaction := tx
  if transaction == nil {
    transaction = omr.db
  }

  var results []*types.OutcomeMapping
  if len(cloIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("course_outcome_id IN ?", cloIDs).
    Find(&results).Error; err != nil {
    return nil, db.MapError("get mappings by clo ids", err)
  }
  return results, nil
}
