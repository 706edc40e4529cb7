package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/outcometrack-backend/internal/db"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/types"
)

type ProgramRepo interface {
  Create(ctx context.Context, tx *gorm.DB, programs []*types.Program) ([]*types.Program, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, programIDs []uuid.UUID) ([]*types.Program, error)
  GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Program, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Program, error)
}

type programRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProgramRepo(gdb *gorm.DB, baseLog *logger.Logger) ProgramRepo {
  repoLog := baseLog.With("repo", "ProgramRepo")
  return &programRepo{db: gdb, log: repoLog}
}

func (pr *programRepo) Create(ctx context.Context, tx *gorm.DB, programs []*types.Program) ([]*types.Program, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(programs) == 0 {
    return []*types.Program{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&programs).Error; err != nil {
    return nil, db.MapError("create programs", err)
  }
  return programs, nil
}

func (pr *programRepo) GetByIDs(ctx context.Context, tx *gorm.DB, programIDs []uuid.UUID) ([]*types.Program, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Program
  if len(programIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", programIDs).
    Find(&results).Error; err != nil {
    return nil, db.MapError("get programs by ids", err)
  }
  return results, nil
}

func (pr *programRepo) GetByCodes(ctx context.Context, tx *gorm.DB, codes []string) ([]*types.Program, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Program
  if len(codes) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("code IN ?", codes).
    Find(&results).Error; err != nil {
    return nil, db.MapError("get programs by codes", err)
  }
  return results, nil
}

func (pr *programRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Program, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Program
  if err := transaction.WithContext(ctx).
    Order("name ASC").
    Find(&results).Error; err != nil {
    return nil, db.MapError("list programs", err)
  }
  return results, nil
}
