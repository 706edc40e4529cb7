package services

import (
  "context"
  "fmt"
  "testing"
  "time"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  glogger "gorm.io/gorm/logger"
  "github.com/google/uuid"
  "github.com/stretchr/testify/require"
  "github.com/yungbote/outcometrack-backend/internal/assessment"
  "github.com/yungbote/outcometrack-backend/internal/db"
  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/repos"
  "github.com/yungbote/outcometrack-backend/internal/requestdata"
  "github.com/yungbote/outcometrack-backend/internal/types"
)

// testEnv wires every repo and service against an in-memory sqlite database
// and seeds one program with a PLO, a course with two CLOs (both mapped to
// the PLO) and one section owned by env.Instructor.
type testEnv struct {
  DB *gorm.DB

  Auth       AuthService
  Catalog    CatalogService
  Assessment AssessmentService
  Dashboard  DashboardService

  Instructor *types.User
  Admin      *types.User
  Program    *types.Program
  PLO        *types.ProgramOutcome
  Course     *types.Course
  CLO1       *types.CourseOutcome
  CLO2       *types.CourseOutcome
  Section    *types.Section
}

func newTestEnv(t *testing.T) *testEnv {
  t.Helper()
  dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
  gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    Logger: glogger.Default.LogMode(glogger.Silent),
  })
  require.NoError(t, err)
  require.NoError(t, gdb.AutoMigrate(db.Models()...))
  t.Cleanup(func() {
    sqlDB, _ := gdb.DB()
    if sqlDB != nil {
      sqlDB.Close()
    }
  })

  log := logger.NewNop()
  userRepo := repos.NewUserRepo(gdb, log)
  userTokenRepo := repos.NewUserTokenRepo(gdb, log)
  programRepo := repos.NewProgramRepo(gdb, log)
  ploRepo := repos.NewProgramOutcomeRepo(gdb, log)
  courseRepo := repos.NewCourseRepo(gdb, log)
  cloRepo := repos.NewCourseOutcomeRepo(gdb, log)
  mappingRepo := repos.NewOutcomeMappingRepo(gdb, log)
  sectionRepo := repos.NewSectionRepo(gdb, log)
  assessmentRepo := repos.NewSectionAssessmentRepo(gdb, log)

  env := &testEnv{DB: gdb}
  env.Auth = NewAuthService(gdb, log, userRepo, userTokenRepo, "test-secret", time.Hour, 24*time.Hour)
  env.Catalog = NewCatalogService(gdb, log, programRepo, ploRepo, courseRepo, cloRepo, mappingRepo, sectionRepo, userRepo)
  env.Assessment = NewAssessmentService(gdb, log, sectionRepo, courseRepo, cloRepo, assessmentRepo, nil)
  env.Dashboard = NewDashboardService(gdb, log, programRepo, ploRepo, courseRepo, cloRepo, mappingRepo, sectionRepo, assessmentRepo, nil)

  env.Instructor = &types.User{
    Email: "ada@uni.edu", Password: "x", FirstName: "ada", LastName: "lovelace",
    Role: types.RoleInstructor,
  }
  env.Admin = &types.User{
    Email: "chair@uni.edu", Password: "x", FirstName: "grace", LastName: "hopper",
    Role: types.RoleProgramAdmin,
  }
  require.NoError(t, gdb.Create(env.Instructor).Error)
  require.NoError(t, gdb.Create(env.Admin).Error)

  env.Program = &types.Program{
    Code: "BSCS", Name: "Computer Science",
    AssessmentDisplayMode: assessment.DisplayPercentage,
  }
  require.NoError(t, gdb.Create(env.Program).Error)
  env.PLO = &types.ProgramOutcome{ProgramID: env.Program.ID, Position: 1, Title: "Analyze problems"}
  require.NoError(t, gdb.Create(env.PLO).Error)
  env.Course = &types.Course{ProgramID: env.Program.ID, Code: "CS101", Title: "Intro"}
  require.NoError(t, gdb.Create(env.Course).Error)
  env.CLO1 = &types.CourseOutcome{CourseID: env.Course.ID, Position: 1, Title: "Write loops"}
  env.CLO2 = &types.CourseOutcome{CourseID: env.Course.ID, Position: 2, Title: "Decompose problems"}
  require.NoError(t, gdb.Create(env.CLO1).Error)
  require.NoError(t, gdb.Create(env.CLO2).Error)
  for _, clo := range []*types.CourseOutcome{env.CLO1, env.CLO2} {
    mapping := &types.OutcomeMapping{CourseOutcomeID: clo.ID, ProgramOutcomeID: env.PLO.ID}
    require.NoError(t, gdb.Create(mapping).Error)
  }
  env.Section = &types.Section{
    CourseID: env.Course.ID, InstructorID: env.Instructor.ID,
    Term: "FA25", Number: "001",
  }
  require.NoError(t, gdb.Create(env.Section).Error)
  return env
}

func (env *testEnv) asInstructor() context.Context {
  return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
    UserID: env.Instructor.ID,
    Role:   env.Instructor.Role,
  })
}

func (env *testEnv) asAdmin() context.Context {
  return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
    UserID: env.Admin.ID,
    Role:   env.Admin.Role,
  })
}

func (env *testEnv) asUser(id uuid.UUID, role types.Role) context.Context {
  return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
    UserID: id,
    Role:   role,
  })
}

func intp(v int) *int { return &v }
