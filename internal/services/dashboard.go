package services

import (
  "context"
  "fmt"
  "sync"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/yungbote/outcometrack-backend/internal/assessment"
  "github.com/yungbote/outcometrack-backend/internal/clients/redis"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/repos"
  "github.com/yungbote/outcometrack-backend/internal/types"
)

// DashboardCacheKey holds the whole PLO drill-down payload; any assessment
// write invalidates it.
const DashboardCacheKey = "dashboard:plo:v1"

// Limit on concurrent per-program subtree loads.
const dashboardLoadConcurrency = 4

// DashboardSummary is the institution-wide roll-up shown above the tree.
type DashboardSummary struct {
  TotalPrograms  int                                 `json:"total_programs"`
  TotalPLOs      int                                 `json:"total_plos"`
  TotalSections  int                                 `json:"total_sections"`
  StudentsTook   int                                 `json:"students_took"`
  StudentsPassed int                                 `json:"students_passed"`
  StatusCounts   map[assessment.AggregateStatus]int  `json:"status_counts"`
}

// PLODashboard is the payload of GET /api/dashboard/plo.
type PLODashboard struct {
  Programs []assessment.ProgramNode `json:"programs"`
  Summary  DashboardSummary         `json:"summary"`
}

type DashboardService interface {
  BuildPLODashboard(ctx context.Context) (*PLODashboard, error)
}

type dashboardService struct {
  db             *gorm.DB
  log            *logger.Logger
  programRepo    repos.ProgramRepo
  ploRepo        repos.ProgramOutcomeRepo
  courseRepo     repos.CourseRepo
  cloRepo        repos.CourseOutcomeRepo
  mappingRepo    repos.OutcomeMappingRepo
  sectionRepo    repos.SectionRepo
  assessmentRepo repos.SectionAssessmentRepo
  cache          redis.Cache
}

func NewDashboardService(
  db *gorm.DB,
  baseLog *logger.Logger,
  programRepo repos.ProgramRepo,
  ploRepo repos.ProgramOutcomeRepo,
  courseRepo repos.CourseRepo,
  cloRepo repos.CourseOutcomeRepo,
  mappingRepo repos.OutcomeMappingRepo,
  sectionRepo repos.SectionRepo,
  assessmentRepo repos.SectionAssessmentRepo,
  cache redis.Cache,
) DashboardService {
  serviceLog := baseLog.With("service", "DashboardService")
  return &dashboardService{
    db:             db,
    log:            serviceLog,
    programRepo:    programRepo,
    ploRepo:        ploRepo,
    courseRepo:     courseRepo,
    cloRepo:        cloRepo,
    mappingRepo:    mappingRepo,
    sectionRepo:    sectionRepo,
    assessmentRepo: assessmentRepo,
    cache:          cache,
  }
}

// BuildPLODashboard assembles the Program -> PLO -> CLO -> Section tree and
// runs the pure aggregation over it. Program subtrees load concurrently;
// the payload is cached whole and rebuilt from scratch after any
// assessment write.
func (ds *dashboardService) BuildPLODashboard(ctx context.Context) (*PLODashboard, error) {
  if ds.cache != nil {
    var cached PLODashboard
    hit, err := ds.cache.GetJSON(ctx, DashboardCacheKey, &cached)
    if err != nil {
      ds.log.Warn("Dashboard cache read failed", "error", err)
    }
    if hit {
      return &cached, nil
    }
  }

  programs, err := ds.programRepo.List(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("list programs: %w", err)
  }

  nodes := make([]assessment.ProgramNode, len(programs))
  var mu sync.Mutex
  g, gctx := errgroup.WithContext(ctx)
  g.SetLimit(dashboardLoadConcurrency)
  for i, program := range programs {
    i, program := i, program
    g.Go(func() error {
      node, err := ds.buildProgramSubtree(gctx, program)
      if err != nil {
        return err
      }
      mu.Lock()
      nodes[i] = *node
      mu.Unlock()
      return nil
    })
  }
  if err := g.Wait(); err != nil {
    return nil, err
  }

  assessment.Aggregate(nodes)
  payload := &PLODashboard{
    Programs: nodes,
    Summary:  summarize(nodes),
  }

  if ds.cache != nil {
    if err := ds.cache.SetJSON(ctx, DashboardCacheKey, payload, 0); err != nil {
      ds.log.Warn("Dashboard cache write failed", "error", err)
    }
  }
  return payload, nil
}

func (ds *dashboardService) buildProgramSubtree(ctx context.Context, program *types.Program) (*assessment.ProgramNode, error) {
  plos, err := ds.ploRepo.GetByProgramIDs(ctx, nil, []uuid.UUID{program.ID})
  if err != nil {
    return nil, fmt.Errorf("load plos for %s: %w", program.Code, err)
  }
  ploIDs := make([]uuid.UUID, 0, len(plos))
  for _, plo := range plos {
    ploIDs = append(ploIDs, plo.ID)
  }
  mappings, err := ds.mappingRepo.GetByProgramOutcomeIDs(ctx, nil, ploIDs)
  if err != nil {
    return nil, fmt.Errorf("load mappings for %s: %w", program.Code, err)
  }
  cloIDSet := make(map[uuid.UUID]bool, len(mappings))
  closByPLO := make(map[uuid.UUID][]uuid.UUID, len(plos))
  for _, m := range mappings {
    cloIDSet[m.CourseOutcomeID] = true
    closByPLO[m.ProgramOutcomeID] = append(closByPLO[m.ProgramOutcomeID], m.CourseOutcomeID)
  }
  cloIDs := make([]uuid.UUID, 0, len(cloIDSet))
  for id := range cloIDSet {
    cloIDs = append(cloIDs, id)
  }
  clos, err := ds.cloRepo.GetByIDs(ctx, nil, cloIDs)
  if err != nil {
    return nil, fmt.Errorf("load clos for %s: %w", program.Code, err)
  }
  cloByID := make(map[uuid.UUID]*types.CourseOutcome, len(clos))
  for _, clo := range clos {
    cloByID[clo.ID] = clo
  }

  rows, err := ds.assessmentRepo.GetByCourseOutcomeIDs(ctx, nil, cloIDs)
  if err != nil {
    return nil, fmt.Errorf("load assessments for %s: %w", program.Code, err)
  }
  rowsByCLO := make(map[uuid.UUID][]*types.SectionAssessment, len(cloIDs))
  sectionIDSet := make(map[uuid.UUID]bool)
  for _, row := range rows {
    rowsByCLO[row.CourseOutcomeID] = append(rowsByCLO[row.CourseOutcomeID], row)
    sectionIDSet[row.SectionID] = true
  }
  sectionIDs := make([]uuid.UUID, 0, len(sectionIDSet))
  for id := range sectionIDSet {
    sectionIDs = append(sectionIDs, id)
  }
  sections, err := ds.sectionRepo.GetByIDs(ctx, nil, sectionIDs)
  if err != nil {
    return nil, fmt.Errorf("load sections for %s: %w", program.Code, err)
  }
  sectionByID := make(map[uuid.UUID]*types.Section, len(sections))
  for _, sec := range sections {
    sectionByID[sec.ID] = sec
  }

  node := &assessment.ProgramNode{
    ProgramID:   program.ID,
    Name:        program.Name,
    DisplayMode: program.AssessmentDisplayMode,
    PLOs:        make([]assessment.PLONode, 0, len(plos)),
  }
  for _, plo := range plos {
    ploNode := assessment.PLONode{
      PLOID: plo.ID,
      Title: plo.Title,
      CLOs:  make([]assessment.CLONode, 0, len(closByPLO[plo.ID])),
    }
    for _, cloID := range closByPLO[plo.ID] {
      clo, ok := cloByID[cloID]
      if !ok {
        continue
      }
      cloNode := assessment.CLONode{
        CLOID: clo.ID,
        Title: clo.Title,
      }
      for _, row := range rowsByCLO[clo.ID] {
        label := ""
        if sec, ok := sectionByID[row.SectionID]; ok {
          label = sec.Label()
        }
        cloNode.Sections = append(cloNode.Sections, assessment.SectionLeaf{
          SectionID:      row.SectionID,
          SectionLabel:   label,
          Status:         row.Status,
          StudentsTook:   row.StudentsTook,
          StudentsPassed: row.StudentsPassed,
        })
      }
      ploNode.CLOs = append(ploNode.CLOs, cloNode)
    }
    node.PLOs = append(node.PLOs, ploNode)
  }
  return node, nil
}

func summarize(nodes []assessment.ProgramNode) DashboardSummary {
  summary := DashboardSummary{
    TotalPrograms: len(nodes),
    StatusCounts:  make(map[assessment.AggregateStatus]int),
  }
  seenSections := make(map[uuid.UUID]bool)
  for _, node := range nodes {
    summary.TotalPLOs += len(node.PLOs)
    summary.StudentsTook += node.Aggregate.StudentsTook
    summary.StudentsPassed += node.Aggregate.StudentsPassed
    summary.StatusCounts[node.Status]++
    for _, plo := range node.PLOs {
      for _, clo := range plo.CLOs {
        for _, leaf := range clo.Sections {
          if !seenSections[leaf.SectionID] {
            seenSections[leaf.SectionID] = true
            summary.TotalSections++
          }
        }
      }
    }
  }
  return summary
}
