package services

import (
  "testing"
  "github.com/stretchr/testify/require"
  "github.com/yungbote/outcometrack-backend/internal/assessment"
)

func TestBuildPLODashboardEmptyCatalog(t *testing.T) {
  env := newTestEnv(t)
  payload, err := env.Dashboard.BuildPLODashboard(env.asAdmin())
  require.NoError(t, err)
  require.Len(t, payload.Programs, 1)

  program := payload.Programs[0]
  require.Equal(t, "Computer Science", program.Name)
  require.Len(t, program.PLOs, 1)
  require.Len(t, program.PLOs[0].CLOs, 2)

  // No assessment rows yet: everything rolls up to zero and renders N/A.
  require.Equal(t, 0, program.Aggregate.StudentsTook)
  require.Equal(t, "N/A", program.Badge.Text)
  require.Equal(t, assessment.AggregateNotStarted, program.Status)

  require.Equal(t, 1, payload.Summary.TotalPrograms)
  require.Equal(t, 1, payload.Summary.TotalPLOs)
  require.Equal(t, 0, payload.Summary.TotalSections)
}

func TestBuildPLODashboardAggregatesNumbers(t *testing.T) {
  env := newTestEnv(t)
  ctx := env.asInstructor()

  _, err := env.Assessment.SaveAssessment(ctx, env.Section.ID, env.CLO1.ID, SaveAssessmentInput{
    StudentsTook: intp(30), StudentsPassed: intp(23),
  })
  require.NoError(t, err)
  _, err = env.Assessment.SaveAssessment(ctx, env.Section.ID, env.CLO2.ID, SaveAssessmentInput{
    StudentsTook: intp(20), StudentsPassed: intp(10),
  })
  require.NoError(t, err)

  payload, err := env.Dashboard.BuildPLODashboard(env.asAdmin())
  require.NoError(t, err)
  require.Len(t, payload.Programs, 1)
  program := payload.Programs[0]

  // Both CLOs map to the one PLO, so its aggregate is the full sum.
  require.Len(t, program.PLOs, 1)
  plo := program.PLOs[0]
  require.Equal(t, 50, plo.Aggregate.StudentsTook)
  require.Equal(t, 33, plo.Aggregate.StudentsPassed)
  require.Equal(t, 50, program.Aggregate.StudentsTook)
  require.Equal(t, 33, program.Aggregate.StudentsPassed)

  // 33/50 = 66%, rendered bare because the program is in percentage mode.
  require.Equal(t, "66%", program.Badge.Text)
  require.Equal(t, "mid", program.Badge.CSSClass)
  require.Equal(t, assessment.AggregateInProgress, program.Status)

  require.Equal(t, 50, payload.Summary.StudentsTook)
  require.Equal(t, 33, payload.Summary.StudentsPassed)
  require.Equal(t, 1, payload.Summary.TotalSections)
  require.Equal(t, 1, payload.Summary.StatusCounts[assessment.AggregateInProgress])

  // Section leaves carry per-leaf badges.
  for _, clo := range program.PLOs[0].CLOs {
    require.Len(t, clo.Sections, 1)
    leaf := clo.Sections[0]
    require.Equal(t, "FA25 001", leaf.SectionLabel)
    require.NotEmpty(t, leaf.Badge.Text)
  }
}
