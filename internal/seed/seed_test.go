package seed

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/yungbote/outcometrack-backend/internal/db"
	"github.com/yungbote/outcometrack-backend/internal/logger"
	"github.com/yungbote/outcometrack-backend/internal/types"
)

const testCatalog = `
instructors:
  - email: ada@uni.edu
    password: secret-pw-1
    first_name: Ada
    last_name: Lovelace
  - email: chair@uni.edu
    password: secret-pw-2
    first_name: Grace
    last_name: Hopper
    role: program_admin

programs:
  - code: BSCS
    name: Computer Science
    display_mode: both
    outcomes:
      - position: 1
        title: Analyze problems
      - position: 2
        title: Design solutions
    courses:
      - code: CS101
        title: Intro to Programming
        outcomes:
          - position: 1
            title: Write loops
            maps_to: [1]
          - position: 2
            title: Decompose problems
            maps_to: [1, 2]
        sections:
          - instructor: ada@uni.edu
            term: FA25
            number: "001"
`

func openTestDB(t *testing.T) *gorm.DB {
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
	return gdb
}

func TestParseRejectsUnknownPLOPosition(t *testing.T) {
	_, err := Parse([]byte(`
programs:
  - code: BSCS
    outcomes:
      - position: 1
        title: Analyze problems
    courses:
      - code: CS101
        outcomes:
          - position: 1
            title: Write loops
            maps_to: [7]
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown PLO position")
}

func TestParseRejectsInvalidDisplayMode(t *testing.T) {
	_, err := Parse([]byte(`
programs:
  - code: BSCS
    display_mode: fancy
`))
	require.Error(t, err)
}

func TestApplyBuildsCatalog(t *testing.T) {
	gdb := openTestDB(t)
	catalog, err := Parse([]byte(testCatalog))
	require.NoError(t, err)

	seeder := NewSeeder(gdb, logger.NewNop())
	require.NoError(t, seeder.Apply(context.Background(), catalog))

	var program types.Program
	require.NoError(t, gdb.Where("code = ?", "BSCS").First(&program).Error)
	require.Equal(t, "Computer Science", program.Name)

	var ploCount, cloCount, mappingCount, sectionCount int64
	gdb.Model(&types.ProgramOutcome{}).Count(&ploCount)
	gdb.Model(&types.CourseOutcome{}).Count(&cloCount)
	gdb.Model(&types.OutcomeMapping{}).Count(&mappingCount)
	gdb.Model(&types.Section{}).Count(&sectionCount)
	require.EqualValues(t, 2, ploCount)
	require.EqualValues(t, 2, cloCount)
	require.EqualValues(t, 3, mappingCount)
	require.EqualValues(t, 1, sectionCount)

	var instructor types.User
	require.NoError(t, gdb.Where("email = ?", "ada@uni.edu").First(&instructor).Error)
	require.Equal(t, types.RoleInstructor, instructor.Role)
	require.NotEqual(t, "secret-pw-1", instructor.Password)

	var admin types.User
	require.NoError(t, gdb.Where("email = ?", "chair@uni.edu").First(&admin).Error)
	require.True(t, admin.Role.IsAdmin())
}

func TestApplyIsIdempotent(t *testing.T) {
	gdb := openTestDB(t)
	catalog, err := Parse([]byte(testCatalog))
	require.NoError(t, err)

	seeder := NewSeeder(gdb, logger.NewNop())
	require.NoError(t, seeder.Apply(context.Background(), catalog))
	require.NoError(t, seeder.Apply(context.Background(), catalog))

	var userCount, programCount, mappingCount int64
	gdb.Model(&types.User{}).Count(&userCount)
	gdb.Model(&types.Program{}).Count(&programCount)
	gdb.Model(&types.OutcomeMapping{}).Count(&mappingCount)
	require.EqualValues(t, 2, userCount)
	require.EqualValues(t, 1, programCount)
	require.EqualValues(t, 3, mappingCount)
}

func TestApplyRejectsUnknownInstructor(t *testing.T) {
	gdb := openTestDB(t)
	catalog, err := Parse([]byte(`
programs:
  - code: BSCS
    courses:
      - code: CS101
        sections:
          - instructor: ghost@uni.edu
            term: FA25
            number: "001"
`))
	require.NoError(t, err)

	seeder := NewSeeder(gdb, logger.NewNop())
	err = seeder.Apply(context.Background(), catalog)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown instructor")
}
