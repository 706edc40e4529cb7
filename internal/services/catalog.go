package services

import (
  "context"
  "fmt"
  "strings"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/yungbote/outcometrack-backend/internal/assessment"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/repos"
  "github.com/yungbote/outcometrack-backend/internal/requestdata"
  "github.com/yungbote/outcometrack-backend/internal/types"
)

// CatalogService manages the Program -> PLO -> Course -> CLO -> Section
// hierarchy. Reads are open to any authenticated role; writes require an
// admin role.
type CatalogService interface {
  ListPrograms(ctx context.Context) ([]*types.Program, error)
  CreateProgram(ctx context.Context, program *types.Program) (*types.Program, error)
  ListProgramOutcomes(ctx context.Context, programID uuid.UUID) ([]*types.ProgramOutcome, error)
  CreateProgramOutcome(ctx context.Context, outcome *types.ProgramOutcome) (*types.ProgramOutcome, error)
  ListCourses(ctx context.Context, programID uuid.UUID) ([]*types.Course, error)
  CreateCourse(ctx context.Context, course *types.Course) (*types.Course, error)
  ListCourseOutcomes(ctx context.Context, courseID uuid.UUID) ([]*types.CourseOutcome, error)
  CreateCourseOutcome(ctx context.Context, outcome *types.CourseOutcome) (*types.CourseOutcome, error)
  MapOutcome(ctx context.Context, cloID uuid.UUID, ploIDs []uuid.UUID) ([]*types.OutcomeMapping, error)
  ListSections(ctx context.Context, courseID uuid.UUID) ([]*types.Section, error)
  CreateSection(ctx context.Context, section *types.Section) (*types.Section, error)
}

type catalogService struct {
  db          *gorm.DB
  log         *logger.Logger
  programRepo repos.ProgramRepo
  ploRepo     repos.ProgramOutcomeRepo
  courseRepo  repos.CourseRepo
  cloRepo     repos.CourseOutcomeRepo
  mappingRepo repos.OutcomeMappingRepo
  sectionRepo repos.SectionRepo
  userRepo    repos.UserRepo
}

func NewCatalogService(
  db *gorm.DB,
  baseLog *logger.Logger,
  programRepo repos.ProgramRepo,
  ploRepo repos.ProgramOutcomeRepo,
  courseRepo repos.CourseRepo,
  cloRepo repos.CourseOutcomeRepo,
  mappingRepo repos.OutcomeMappingRepo,
  sectionRepo repos.SectionRepo,
  userRepo repos.UserRepo,
) CatalogService {
  serviceLog := baseLog.With("service", "CatalogService")
  return &catalogService{
    db:          db,
    log:         serviceLog,
    programRepo: programRepo,
    ploRepo:     ploRepo,
    courseRepo:  courseRepo,
    cloRepo:     cloRepo,
    mappingRepo: mappingRepo,
    sectionRepo: sectionRepo,
    userRepo:    userRepo,
  }
}

func requireAdmin(ctx context.Context) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return fmt.Errorf("request data not set in context")
  }
  if !rd.Role.IsAdmin() {
    return fmt.Errorf("admin role required")
  }
  return nil
}

func (cs *catalogService) ListPrograms(ctx context.Context) ([]*types.Program, error) {
  programs, err := cs.programRepo.List(ctx, nil)
  if err != nil {
    cs.log.Error("ListPrograms failed", "error", err)
    return nil, fmt.Errorf("list programs: %w", err)
  }
  return programs, nil
}

func (cs *catalogService) CreateProgram(ctx context.Context, program *types.Program) (*types.Program, error) {
  if err := requireAdmin(ctx); err != nil {
    return nil, err
  }
  program.Code = strings.TrimSpace(program.Code)
  program.Name = strings.TrimSpace(program.Name)
  if program.Code == "" || program.Name == "" {
    return nil, fmt.Errorf("program code and name are required")
  }
  if program.AssessmentDisplayMode == "" {
    program.AssessmentDisplayMode = assessment.DisplayPercentage
  }
  if !assessment.ValidDisplayMode(program.AssessmentDisplayMode) {
    return nil, fmt.Errorf("invalid assessment display mode %q", program.AssessmentDisplayMode)
  }
  program.ID = uuid.New()
  if _, err := cs.programRepo.Create(ctx, nil, []*types.Program{program}); err != nil {
    cs.log.Error("CreateProgram failed", "error", err, "code", program.Code)
    return nil, fmt.Errorf("create program: %w", err)
  }
  return program, nil
}

func (cs *catalogService) ListProgramOutcomes(ctx context.Context, programID uuid.UUID) ([]*types.ProgramOutcome, error) {
  outcomes, err := cs.ploRepo.GetByProgramIDs(ctx, nil, []uuid.UUID{programID})
  if err != nil {
    return nil, fmt.Errorf("list program outcomes: %w", err)
  }
  return outcomes, nil
}

func (cs *catalogService) CreateProgramOutcome(ctx context.Context, outcome *types.ProgramOutcome) (*types.ProgramOutcome, error) {
  if err := requireAdmin(ctx); err != nil {
    return nil, err
  }
  outcome.Title = strings.TrimSpace(outcome.Title)
  if outcome.Title == "" {
    return nil, fmt.Errorf("outcome title is required")
  }
  programs, err := cs.programRepo.GetByIDs(ctx, nil, []uuid.UUID{outcome.ProgramID})
  if err != nil {
    return nil, fmt.Errorf("load program: %w", err)
  }
  if len(programs) == 0 {
    return nil, fmt.Errorf("program not found")
  }
  outcome.ID = uuid.New()
  if _, err := cs.ploRepo.Create(ctx, nil, []*types.ProgramOutcome{outcome}); err != nil {
    return nil, fmt.Errorf("create program outcome: %w", err)
  }
  return outcome, nil
}

func (cs *catalogService) ListCourses(ctx context.Context, programID uuid.UUID) ([]*types.Course, error) {
  courses, err := cs.courseRepo.GetByProgramIDs(ctx, nil, []uuid.UUID{programID})
  if err != nil {
    return nil, fmt.Errorf("list courses: %w", err)
  }
  return courses, nil
}

func (cs *catalogService) CreateCourse(ctx context.Context, course *types.Course) (*types.Course, error) {
  if err := requireAdmin(ctx); err != nil {
    return nil, err
  }
  course.Code = strings.TrimSpace(course.Code)
  course.Title = strings.TrimSpace(course.Title)
  if course.Code == "" || course.Title == "" {
    return nil, fmt.Errorf("course code and title are required")
  }
  programs, err := cs.programRepo.GetByIDs(ctx, nil, []uuid.UUID{course.ProgramID})
  if err != nil {
    return nil, fmt.Errorf("load program: %w", err)
  }
  if len(programs) == 0 {
    return nil, fmt.Errorf("program not found")
  }
  course.ID = uuid.New()
  if _, err := cs.courseRepo.Create(ctx, nil, []*types.Course{course}); err != nil {
    return nil, fmt.Errorf("create course: %w", err)
  }
  return course, nil
}

func (cs *catalogService) ListCourseOutcomes(ctx context.Context, courseID uuid.UUID) ([]*types.CourseOutcome, error) {
  outcomes, err := cs.cloRepo.GetByCourseIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("list course outcomes: %w", err)
  }
  return outcomes, nil
}

func (cs *catalogService) CreateCourseOutcome(ctx context.Context, outcome *types.CourseOutcome) (*types.CourseOutcome, error) {
  if err := requireAdmin(ctx); err != nil {
    return nil, err
  }
  outcome.Title = strings.TrimSpace(outcome.Title)
  if outcome.Title == "" {
    return nil, fmt.Errorf("outcome title is required")
  }
  courses, err := cs.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{outcome.CourseID})
  if err != nil {
    return nil, fmt.Errorf("load course: %w", err)
  }
  if len(courses) == 0 {
    return nil, fmt.Errorf("course not found")
  }
  outcome.ID = uuid.New()
  if _, err := cs.cloRepo.Create(ctx, nil, []*types.CourseOutcome{outcome}); err != nil {
    return nil, fmt.Errorf("create course outcome: %w", err)
  }
  return outcome, nil
}

func (cs *catalogService) MapOutcome(ctx context.Context, cloID uuid.UUID, ploIDs []uuid.UUID) ([]*types.OutcomeMapping, error) {
  if err := requireAdmin(ctx); err != nil {
    return nil, err
  }
  clos, err := cs.cloRepo.GetByIDs(ctx, nil, []uuid.UUID{cloID})
  if err != nil {
    return nil, fmt.Errorf("load course outcome: %w", err)
  }
  if len(clos) == 0 {
    return nil, fmt.Errorf("course outcome not found")
  }
  plos, err := cs.ploRepo.GetByIDs(ctx, nil, ploIDs)
  if err != nil {
    return nil, fmt.Errorf("load program outcomes: %w", err)
  }
  if len(plos) != len(ploIDs) {
    return nil, fmt.Errorf("one or more program outcomes not found")
  }

  existing, err := cs.mappingRepo.GetByCourseOutcomeIDs(ctx, nil, []uuid.UUID{cloID})
  if err != nil {
    return nil, fmt.Errorf("load existing mappings: %w", err)
  }
  mapped := make(map[uuid.UUID]bool, len(existing))
  for _, m := range existing {
    mapped[m.ProgramOutcomeID] = true
  }

  mappings := make([]*types.OutcomeMapping, 0, len(ploIDs))
  for _, ploID := range ploIDs {
    if mapped[ploID] {
      continue
    }
    mappings = append(mappings, &types.OutcomeMapping{
      ID:               uuid.New(),
      CourseOutcomeID:  cloID,
      ProgramOutcomeID: ploID,
    })
  }
  if _, err := cs.mappingRepo.Create(ctx, nil, mappings); err != nil {
    return nil, fmt.Errorf("create mappings: %w", err)
  }
  return mappings, nil
}

func (cs *catalogService) ListSections(ctx context.Context, courseID uuid.UUID) ([]*types.Section, error) {
  sections, err := cs.sectionRepo.GetByCourseIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("list sections: %w", err)
  }
  return sections, nil
}

func (cs *catalogService) CreateSection(ctx context.Context, section *types.Section) (*types.Section, error) {
  if err := requireAdmin(ctx); err != nil {
    return nil, err
  }
  section.Term = strings.TrimSpace(section.Term)
  section.Number = strings.TrimSpace(section.Number)
  if section.Term == "" || section.Number == "" {
    return nil, fmt.Errorf("section term and number are required")
  }
  courses, err := cs.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{section.CourseID})
  if err != nil {
    return nil, fmt.Errorf("load course: %w", err)
  }
  if len(courses) == 0 {
    return nil, fmt.Errorf("course not found")
  }
  instructors, err := cs.userRepo.GetByIDs(ctx, nil, []uuid.UUID{section.InstructorID})
  if err != nil {
    return nil, fmt.Errorf("load instructor: %w", err)
  }
  if len(instructors) == 0 {
    return nil, fmt.Errorf("instructor not found")
  }
  section.ID = uuid.New()
  if _, err := cs.sectionRepo.Create(ctx, nil, []*types.Section{section}); err != nil {
    return nil, fmt.Errorf("create section: %w", err)
  }
  return section, nil
}
