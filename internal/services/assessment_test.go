package services

import (
  "testing"
  "github.com/stretchr/testify/require"
  "github.com/yungbote/outcometrack-backend/internal/assessment"
  "github.com/yungbote/outcometrack-backend/internal/types"
)

func TestGetSectionOutcomesMaterializesMissingRows(t *testing.T) {
  env := newTestEnv(t)
  rows, err := env.Assessment.GetSectionOutcomes(env.asInstructor(), env.Section.ID)
  require.NoError(t, err)
  require.Len(t, rows, 2)
  for _, row := range rows {
    require.Equal(t, assessment.StatusUnassigned, row.Status)
    require.Nil(t, row.StudentsTook)
    require.NotNil(t, row.CourseOutcome)
  }
}

func TestGetSectionOutcomesRejectsForeignInstructor(t *testing.T) {
  env := newTestEnv(t)
  other := &types.User{Email: "other@uni.edu", Password: "x", Role: types.RoleInstructor}
  require.NoError(t, env.DB.Create(other).Error)

  _, err := env.Assessment.GetSectionOutcomes(env.asUser(other.ID, other.Role), env.Section.ID)
  require.Error(t, err)

  // Admins can read any section.
  _, err = env.Assessment.GetSectionOutcomes(env.asAdmin(), env.Section.ID)
  require.NoError(t, err)
}

func TestSaveAssessmentValidation(t *testing.T) {
  env := newTestEnv(t)
  ctx := env.asInstructor()

  _, err := env.Assessment.SaveAssessment(ctx, env.Section.ID, env.CLO1.ID, SaveAssessmentInput{
    StudentsTook: intp(-1),
  })
  require.Error(t, err)

  _, err = env.Assessment.SaveAssessment(ctx, env.Section.ID, env.CLO1.ID, SaveAssessmentInput{
    StudentsTook: intp(10), StudentsPassed: intp(11),
  })
  require.Error(t, err)

  _, err = env.Assessment.SaveAssessment(ctx, env.Section.ID, env.CLO1.ID, SaveAssessmentInput{
    StudentsPassed: intp(5),
  })
  require.Error(t, err)
}

func TestSaveAssessmentMovesRowToInProgress(t *testing.T) {
  env := newTestEnv(t)
  ctx := env.asInstructor()

  row, err := env.Assessment.SaveAssessment(ctx, env.Section.ID, env.CLO1.ID, SaveAssessmentInput{
    StudentsTook: intp(30), StudentsPassed: intp(23), AssessmentTool: "Final exam Q3",
  })
  require.NoError(t, err)
  require.Equal(t, assessment.StatusInProgress, row.Status)

  // Saving again replaces in place rather than inserting a second row.
  _, err = env.Assessment.SaveAssessment(ctx, env.Section.ID, env.CLO1.ID, SaveAssessmentInput{
    StudentsTook: intp(31), StudentsPassed: intp(20),
  })
  require.NoError(t, err)
  var count int64
  env.DB.Model(&types.SectionAssessment{}).Where("section_id = ?", env.Section.ID).Count(&count)
  require.EqualValues(t, 1, count)
}

func TestSaveAssessmentRejectsWrongCourseOutcome(t *testing.T) {
  env := newTestEnv(t)
  otherCourse := &types.Course{ProgramID: env.Program.ID, Code: "CS200", Title: "Other"}
  require.NoError(t, env.DB.Create(otherCourse).Error)
  foreignCLO := &types.CourseOutcome{CourseID: otherCourse.ID, Position: 1, Title: "Elsewhere"}
  require.NoError(t, env.DB.Create(foreignCLO).Error)

  _, err := env.Assessment.SaveAssessment(env.asInstructor(), env.Section.ID, foreignCLO.ID, SaveAssessmentInput{
    StudentsTook: intp(10),
  })
  require.Error(t, err)
}

func TestSubmitSectionRequiresCompleteData(t *testing.T) {
  env := newTestEnv(t)
  ctx := env.asInstructor()

  _, err := env.Assessment.SaveAssessment(ctx, env.Section.ID, env.CLO1.ID, SaveAssessmentInput{
    StudentsTook: intp(30), StudentsPassed: intp(23),
  })
  require.NoError(t, err)

  // CLO2 still has no numbers.
  require.Error(t, env.Assessment.SubmitSection(ctx, env.Section.ID))

  _, err = env.Assessment.SaveAssessment(ctx, env.Section.ID, env.CLO2.ID, SaveAssessmentInput{
    StudentsTook: intp(30), StudentsPassed: intp(18),
  })
  require.NoError(t, err)
  require.NoError(t, env.Assessment.SubmitSection(ctx, env.Section.ID))

  rows, err := env.Assessment.GetSectionOutcomes(ctx, env.Section.ID)
  require.NoError(t, err)
  for _, row := range rows {
    require.Equal(t, assessment.StatusAwaitingApproval, row.Status)
    require.NotNil(t, row.SubmittedAt)
  }

  // Submitted rows are locked against further edits.
  _, err = env.Assessment.SaveAssessment(ctx, env.Section.ID, env.CLO1.ID, SaveAssessmentInput{
    StudentsTook: intp(5),
  })
  require.Error(t, err)
}

func submitBoth(t *testing.T, env *testEnv) []*types.SectionAssessment {
  t.Helper()
  ctx := env.asInstructor()
  for _, clo := range []*types.CourseOutcome{env.CLO1, env.CLO2} {
    _, err := env.Assessment.SaveAssessment(ctx, env.Section.ID, clo.ID, SaveAssessmentInput{
      StudentsTook: intp(30), StudentsPassed: intp(23),
    })
    require.NoError(t, err)
  }
  require.NoError(t, env.Assessment.SubmitSection(ctx, env.Section.ID))
  rows, err := env.Assessment.GetSectionOutcomes(ctx, env.Section.ID)
  require.NoError(t, err)
  return rows
}

func TestApproveAndRejectLifecycle(t *testing.T) {
  env := newTestEnv(t)
  rows := submitBoth(t, env)

  // Instructors cannot review.
  _, err := env.Assessment.Approve(env.asInstructor(), rows[0].ID, "")
  require.Error(t, err)

  approved, err := env.Assessment.Approve(env.asAdmin(), rows[0].ID, "looks right")
  require.NoError(t, err)
  require.Equal(t, assessment.StatusApproved, approved.Status)
  require.NotNil(t, approved.DecidedAt)

  // Reject requires a note.
  _, err = env.Assessment.Reject(env.asAdmin(), rows[1].ID, "  ")
  require.Error(t, err)

  rejected, err := env.Assessment.Reject(env.asAdmin(), rows[1].ID, "numbers look off")
  require.NoError(t, err)
  require.Equal(t, assessment.StatusApprovalPending, rejected.Status)

  // Only awaiting rows can be decided.
  _, err = env.Assessment.Approve(env.asAdmin(), approved.ID, "")
  require.Error(t, err)
}

func TestSectionStatusRollup(t *testing.T) {
  env := newTestEnv(t)
  ctx := env.asInstructor()

  status, err := env.Assessment.SectionStatus(ctx, env.Section.ID)
  require.NoError(t, err)
  require.Equal(t, assessment.AggregateNotStarted, status)

  _, err = env.Assessment.SaveAssessment(ctx, env.Section.ID, env.CLO1.ID, SaveAssessmentInput{
    StudentsTook: intp(30), StudentsPassed: intp(23),
  })
  require.NoError(t, err)
  status, err = env.Assessment.SectionStatus(ctx, env.Section.ID)
  require.NoError(t, err)
  require.Equal(t, assessment.AggregateInProgress, status)

  rows := submitBoth(t, env)
  status, err = env.Assessment.SectionStatus(ctx, env.Section.ID)
  require.NoError(t, err)
  require.Equal(t, assessment.AggregateSubmitted, status)

  // One rejection drags the whole section to needs_rework.
  _, err = env.Assessment.Reject(env.asAdmin(), rows[0].ID, "recount")
  require.NoError(t, err)
  status, err = env.Assessment.SectionStatus(ctx, env.Section.ID)
  require.NoError(t, err)
  require.Equal(t, assessment.AggregateNeedsRework, status)
}

func TestCourseStatusCountsMissingPairs(t *testing.T) {
  env := newTestEnv(t)
  rows := submitBoth(t, env)
  for _, row := range rows {
    _, err := env.Assessment.Approve(env.asAdmin(), row.ID, "")
    require.NoError(t, err)
  }

  status, err := env.Assessment.CourseStatus(env.asAdmin(), env.Course.ID)
  require.NoError(t, err)
  require.Equal(t, assessment.AggregateApproved, status)

  // A second section with no rows keeps the course from reading approved:
  // its missing pairs count as unassigned, and the approved rows' data pulls
  // the mix to in_progress.
  second := &types.Section{
    CourseID: env.Course.ID, InstructorID: env.Instructor.ID,
    Term: "FA25", Number: "002",
  }
  require.NoError(t, env.DB.Create(second).Error)

  status, err = env.Assessment.CourseStatus(env.asAdmin(), env.Course.ID)
  require.NoError(t, err)
  require.Equal(t, assessment.AggregateInProgress, status)
}

func TestMarkNeverComingIn(t *testing.T) {
  env := newTestEnv(t)
  rows := submitBoth(t, env)

  row, err := env.Assessment.MarkNeverComingIn(env.asAdmin(), rows[0].ID)
  require.NoError(t, err)
  require.Equal(t, assessment.StatusNeverComingIn, row.Status)

  _, err = env.Assessment.SaveAssessment(env.asInstructor(), env.Section.ID, env.CLO1.ID, SaveAssessmentInput{
    StudentsTook: intp(1),
  })
  require.Error(t, err)
}
