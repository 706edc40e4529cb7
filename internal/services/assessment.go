package services

import (
  "context"
  "fmt"
  "strings"
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/yungbote/outcometrack-backend/internal/assessment"
  "github.com/yungbote/outcometrack-backend/internal/clients/redis"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/repos"
  "github.com/yungbote/outcometrack-backend/internal/requestdata"
  "github.com/yungbote/outcometrack-backend/internal/types"
)

// SaveAssessmentInput carries an instructor's entry for one CLO in one
// section.
type SaveAssessmentInput struct {
  StudentsTook   *int   `json:"students_took"`
  StudentsPassed *int   `json:"students_passed"`
  AssessmentTool string `json:"assessment_tool"`
}

type AssessmentService interface {
  GetSectionOutcomes(ctx context.Context, sectionID uuid.UUID) ([]*types.SectionAssessment, error)
  SaveAssessment(ctx context.Context, sectionID, cloID uuid.UUID, input SaveAssessmentInput) (*types.SectionAssessment, error)
  SubmitSection(ctx context.Context, sectionID uuid.UUID) error
  Approve(ctx context.Context, assessmentID uuid.UUID, note string) (*types.SectionAssessment, error)
  Reject(ctx context.Context, assessmentID uuid.UUID, note string) (*types.SectionAssessment, error)
  MarkNeverComingIn(ctx context.Context, assessmentID uuid.UUID) (*types.SectionAssessment, error)
  SectionStatus(ctx context.Context, sectionID uuid.UUID) (assessment.AggregateStatus, error)
  CourseStatus(ctx context.Context, courseID uuid.UUID) (assessment.AggregateStatus, error)
}

type assessmentService struct {
  db             *gorm.DB
  log            *logger.Logger
  sectionRepo    repos.SectionRepo
  courseRepo     repos.CourseRepo
  cloRepo        repos.CourseOutcomeRepo
  assessmentRepo repos.SectionAssessmentRepo
  cache          redis.Cache
}

func NewAssessmentService(
  db *gorm.DB,
  baseLog *logger.Logger,
  sectionRepo repos.SectionRepo,
  courseRepo repos.CourseRepo,
  cloRepo repos.CourseOutcomeRepo,
  assessmentRepo repos.SectionAssessmentRepo,
  cache redis.Cache,
) AssessmentService {
  serviceLog := baseLog.With("service", "AssessmentService")
  return &assessmentService{
    db:             db,
    log:            serviceLog,
    sectionRepo:    sectionRepo,
    courseRepo:     courseRepo,
    cloRepo:        cloRepo,
    assessmentRepo: assessmentRepo,
    cache:          cache,
  }
}

func (s *assessmentService) loadOwnedSection(ctx context.Context, sectionID uuid.UUID) (*types.Section, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("request data not set in context")
  }
  sections, err := s.sectionRepo.GetByIDs(ctx, nil, []uuid.UUID{sectionID})
  if err != nil {
    return nil, fmt.Errorf("load section: %w", err)
  }
  if len(sections) == 0 {
    return nil, fmt.Errorf("section not found")
  }
  section := sections[0]
  if !rd.Role.IsAdmin() && section.InstructorID != rd.UserID {
    return nil, fmt.Errorf("section not owned by user")
  }
  return section, nil
}

// GetSectionOutcomes returns one row per CLO of the section's course. CLOs
// that have no persisted row yet materialize as unassigned records so the
// entry form always shows the full outcome list.
func (s *assessmentService) GetSectionOutcomes(ctx context.Context, sectionID uuid.UUID) ([]*types.SectionAssessment, error) {
  section, err := s.loadOwnedSection(ctx, sectionID)
  if err != nil {
    return nil, err
  }
  clos, err := s.cloRepo.GetByCourseIDs(ctx, nil, []uuid.UUID{section.CourseID})
  if err != nil {
    return nil, fmt.Errorf("load course outcomes: %w", err)
  }
  rows, err := s.assessmentRepo.GetBySectionIDs(ctx, nil, []uuid.UUID{sectionID})
  if err != nil {
    return nil, fmt.Errorf("load assessments: %w", err)
  }
  byCLO := make(map[uuid.UUID]*types.SectionAssessment, len(rows))
  for _, row := range rows {
    byCLO[row.CourseOutcomeID] = row
  }
  results := make([]*types.SectionAssessment, 0, len(clos))
  for _, clo := range clos {
    if row, ok := byCLO[clo.ID]; ok {
      row.CourseOutcome = clo
      results = append(results, row)
      continue
    }
    results = append(results, &types.SectionAssessment{
      SectionID:       sectionID,
      CourseOutcomeID: clo.ID,
      CourseOutcome:   clo,
      Status:          assessment.StatusUnassigned,
    })
  }
  return results, nil
}

func (s *assessmentService) SaveAssessment(ctx context.Context, sectionID, cloID uuid.UUID, input SaveAssessmentInput) (*types.SectionAssessment, error) {
  section, err := s.loadOwnedSection(ctx, sectionID)
  if err != nil {
    return nil, err
  }
  clos, err := s.cloRepo.GetByIDs(ctx, nil, []uuid.UUID{cloID})
  if err != nil {
    return nil, fmt.Errorf("load course outcome: %w", err)
  }
  if len(clos) == 0 || clos[0].CourseID != section.CourseID {
    return nil, fmt.Errorf("outcome does not belong to this section's course")
  }
  if input.StudentsTook != nil && *input.StudentsTook < 0 {
    return nil, fmt.Errorf("students_took must be non-negative")
  }
  if input.StudentsPassed != nil && *input.StudentsPassed < 0 {
    return nil, fmt.Errorf("students_passed must be non-negative")
  }
  if input.StudentsTook != nil && input.StudentsPassed != nil && *input.StudentsPassed > *input.StudentsTook {
    return nil, fmt.Errorf("students_passed cannot exceed students_took")
  }
  if input.StudentsPassed != nil && input.StudentsTook == nil {
    return nil, fmt.Errorf("students_passed requires students_took")
  }

  rows, err := s.assessmentRepo.GetBySectionIDs(ctx, nil, []uuid.UUID{sectionID})
  if err != nil {
    return nil, fmt.Errorf("load assessments: %w", err)
  }
  var current *types.SectionAssessment
  for _, row := range rows {
    if row.CourseOutcomeID == cloID {
      current = row
      break
    }
  }
  status := assessment.StatusInProgress
  if current != nil {
    switch current.Status {
    case assessment.StatusAwaitingApproval, assessment.StatusApproved:
      return nil, fmt.Errorf("assessment is locked for review")
    case assessment.StatusNeverComingIn:
      return nil, fmt.Errorf("assessment is marked never coming in")
    }
  }

  row := &types.SectionAssessment{
    ID:              uuid.New(),
    SectionID:       sectionID,
    CourseOutcomeID: cloID,
    Status:          status,
    StudentsTook:    input.StudentsTook,
    StudentsPassed:  input.StudentsPassed,
    AssessmentTool:  strings.TrimSpace(input.AssessmentTool),
  }
  if current != nil {
    row.ID = current.ID
    row.CreatedAt = current.CreatedAt
  }
  row.UpdatedAt = time.Now()
  if _, err := s.assessmentRepo.Upsert(ctx, nil, []*types.SectionAssessment{row}); err != nil {
    s.log.Error("SaveAssessment failed", "error", err, "section_id", sectionID, "clo_id", cloID)
    return nil, fmt.Errorf("save assessment: %w", err)
  }
  s.invalidateDashboard(ctx)
  return row, nil
}

// SubmitSection moves every outcome row of the section to
// awaiting_approval. Each CLO must have numbers before the section can be
// submitted.
func (s *assessmentService) SubmitSection(ctx context.Context, sectionID uuid.UUID) error {
  section, err := s.loadOwnedSection(ctx, sectionID)
  if err != nil {
    return err
  }
  clos, err := s.cloRepo.GetByCourseIDs(ctx, nil, []uuid.UUID{section.CourseID})
  if err != nil {
    return fmt.Errorf("load course outcomes: %w", err)
  }
  rows, err := s.assessmentRepo.GetBySectionIDs(ctx, nil, []uuid.UUID{sectionID})
  if err != nil {
    return fmt.Errorf("load assessments: %w", err)
  }
  byCLO := make(map[uuid.UUID]*types.SectionAssessment, len(rows))
  for _, row := range rows {
    byCLO[row.CourseOutcomeID] = row
  }
  now := time.Now()
  updated := make([]*types.SectionAssessment, 0, len(clos))
  for _, clo := range clos {
    row, ok := byCLO[clo.ID]
    if !ok || row.StudentsTook == nil {
      return fmt.Errorf("outcome %q has no assessment data", clo.Title)
    }
    if row.Status == assessment.StatusApproved || row.Status == assessment.StatusNeverComingIn {
      continue
    }
    row.Status = assessment.StatusAwaitingApproval
    row.SubmittedAt = &now
    row.UpdatedAt = now
    updated = append(updated, row)
  }
  return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, uErr := s.assessmentRepo.Upsert(ctx, tx, updated); uErr != nil {
      return fmt.Errorf("submit section: %w", uErr)
    }
    s.invalidateDashboard(ctx)
    return nil
  })
}

func (s *assessmentService) loadForReview(ctx context.Context, assessmentID uuid.UUID) (*types.SectionAssessment, error) {
  if err := requireAdmin(ctx); err != nil {
    return nil, err
  }
  rows, err := s.assessmentRepo.GetByIDs(ctx, nil, []uuid.UUID{assessmentID})
  if err != nil {
    return nil, fmt.Errorf("load assessment: %w", err)
  }
  if len(rows) == 0 {
    return nil, fmt.Errorf("assessment not found")
  }
  return rows[0], nil
}

func (s *assessmentService) Approve(ctx context.Context, assessmentID uuid.UUID, note string) (*types.SectionAssessment, error) {
  row, err := s.loadForReview(ctx, assessmentID)
  if err != nil {
    return nil, err
  }
  if row.Status != assessment.StatusAwaitingApproval {
    return nil, fmt.Errorf("only submitted assessments can be approved")
  }
  now := time.Now()
  row.Status = assessment.StatusApproved
  row.ReviewerNote = strings.TrimSpace(note)
  row.DecidedAt = &now
  row.UpdatedAt = now
  if _, err := s.assessmentRepo.Save(ctx, nil, row); err != nil {
    return nil, fmt.Errorf("approve assessment: %w", err)
  }
  s.invalidateDashboard(ctx)
  return row, nil
}

// Reject pushes the row to approval_pending, which gates the whole unit's
// rollup to needs_rework until the instructor resubmits.
func (s *assessmentService) Reject(ctx context.Context, assessmentID uuid.UUID, note string) (*types.SectionAssessment, error) {
  row, err := s.loadForReview(ctx, assessmentID)
  if err != nil {
    return nil, err
  }
  if row.Status != assessment.StatusAwaitingApproval {
    return nil, fmt.Errorf("only submitted assessments can be rejected")
  }
  note = strings.TrimSpace(note)
  if note == "" {
    return nil, fmt.Errorf("a reviewer note is required to reject")
  }
  now := time.Now()
  row.Status = assessment.StatusApprovalPending
  row.ReviewerNote = note
  row.DecidedAt = &now
  row.UpdatedAt = now
  if _, err := s.assessmentRepo.Save(ctx, nil, row); err != nil {
    return nil, fmt.Errorf("reject assessment: %w", err)
  }
  s.invalidateDashboard(ctx)
  return row, nil
}

func (s *assessmentService) MarkNeverComingIn(ctx context.Context, assessmentID uuid.UUID) (*types.SectionAssessment, error) {
  row, err := s.loadForReview(ctx, assessmentID)
  if err != nil {
    return nil, err
  }
  now := time.Now()
  row.Status = assessment.StatusNeverComingIn
  row.DecidedAt = &now
  row.UpdatedAt = now
  if _, err := s.assessmentRepo.Save(ctx, nil, row); err != nil {
    return nil, fmt.Errorf("mark never coming in: %w", err)
  }
  s.invalidateDashboard(ctx)
  return row, nil
}

func (s *assessmentService) SectionStatus(ctx context.Context, sectionID uuid.UUID) (assessment.AggregateStatus, error) {
  rows, err := s.GetSectionOutcomes(ctx, sectionID)
  if err != nil {
    return "", err
  }
  records := make([]assessment.Record, 0, len(rows))
  for _, row := range rows {
    records = append(records, row.Record())
  }
  return assessment.ResolveStatus(records), nil
}

// CourseStatus rolls up every section of the course. CLOs with no row in a
// section count as unassigned, matching the per-section materialization.
func (s *assessmentService) CourseStatus(ctx context.Context, courseID uuid.UUID) (assessment.AggregateStatus, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return "", fmt.Errorf("request data not set in context")
  }
  courses, err := s.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return "", fmt.Errorf("load course: %w", err)
  }
  if len(courses) == 0 {
    return "", fmt.Errorf("course not found")
  }
  sections, err := s.sectionRepo.GetByCourseIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return "", fmt.Errorf("load sections: %w", err)
  }
  clos, err := s.cloRepo.GetByCourseIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return "", fmt.Errorf("load course outcomes: %w", err)
  }
  sectionIDs := make([]uuid.UUID, 0, len(sections))
  for _, sec := range sections {
    sectionIDs = append(sectionIDs, sec.ID)
  }
  rows, err := s.assessmentRepo.GetBySectionIDs(ctx, nil, sectionIDs)
  if err != nil {
    return "", fmt.Errorf("load assessments: %w", err)
  }
  type pair struct{ section, clo uuid.UUID }
  present := make(map[pair]*types.SectionAssessment, len(rows))
  for _, row := range rows {
    present[pair{row.SectionID, row.CourseOutcomeID}] = row
  }
  records := make([]assessment.Record, 0, len(sections)*len(clos))
  for _, sec := range sections {
    for _, clo := range clos {
      if row, ok := present[pair{sec.ID, clo.ID}]; ok {
        records = append(records, row.Record())
        continue
      }
      records = append(records, assessment.Record{Status: assessment.StatusUnassigned})
    }
  }
  return assessment.ResolveStatus(records), nil
}

func (s *assessmentService) invalidateDashboard(ctx context.Context) {
  if s.cache == nil {
    return
  }
  if err := s.cache.Delete(ctx, DashboardCacheKey); err != nil {
    s.log.Warn("Dashboard cache invalidation failed", "error", err)
  }
}
