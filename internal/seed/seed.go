package seed

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/yungbote/outcometrack-backend/internal/assessment"
	"github.com/yungbote/outcometrack-backend/internal/logger"
	"github.com/yungbote/outcometrack-backend/internal/types"
	"github.com/yungbote/outcometrack-backend/internal/utils"
)

// Catalog is the YAML shape consumed by cmd/seed. Applying the same file
// twice is a no-op: every record is matched by its natural key before insert.
type Catalog struct {
	Instructors []InstructorSpec `yaml:"instructors"`
	Programs    []ProgramSpec    `yaml:"programs"`
}

type InstructorSpec struct {
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Role      string `yaml:"role"`
}

type ProgramSpec struct {
	Code        string        `yaml:"code"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	DisplayMode string        `yaml:"display_mode"`
	Outcomes    []OutcomeSpec `yaml:"outcomes"`
	Courses     []CourseSpec  `yaml:"courses"`
}

type OutcomeSpec struct {
	Position    int    `yaml:"position"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type CourseSpec struct {
	Code     string              `yaml:"code"`
	Title    string              `yaml:"title"`
	Outcomes []CourseOutcomeSpec `yaml:"outcomes"`
	Sections []SectionSpec       `yaml:"sections"`
}

type CourseOutcomeSpec struct {
	Position    int    `yaml:"position"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	MapsTo      []int  `yaml:"maps_to"`
}

type SectionSpec struct {
	Instructor string `yaml:"instructor"`
	Term       string `yaml:"term"`
	Number     string `yaml:"number"`
}

func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := catalog.validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (c *Catalog) validate() error {
	for _, inst := range c.Instructors {
		if strings.TrimSpace(inst.Email) == "" {
			return fmt.Errorf("instructor with empty email")
		}
	}
	for _, prog := range c.Programs {
		if strings.TrimSpace(prog.Code) == "" {
			return fmt.Errorf("program with empty code")
		}
		if prog.DisplayMode != "" && !assessment.ValidDisplayMode(assessment.DisplayMode(prog.DisplayMode)) {
			return fmt.Errorf("program %s: invalid display mode %q", prog.Code, prog.DisplayMode)
		}
		ploPositions := map[int]bool{}
		for _, plo := range prog.Outcomes {
			ploPositions[plo.Position] = true
		}
		for _, course := range prog.Courses {
			if strings.TrimSpace(course.Code) == "" {
				return fmt.Errorf("program %s: course with empty code", prog.Code)
			}
			for _, clo := range course.Outcomes {
				for _, pos := range clo.MapsTo {
					if !ploPositions[pos] {
						return fmt.Errorf("course %s: outcome %d maps to unknown PLO position %d", course.Code, clo.Position, pos)
					}
				}
			}
		}
	}
	return nil
}

type Seeder struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSeeder(gdb *gorm.DB, baseLog *logger.Logger) *Seeder {
	return &Seeder{db: gdb, log: baseLog.With("component", "Seeder")}
}

// Apply upserts the catalog inside a single transaction.
func (s *Seeder) Apply(ctx context.Context, catalog *Catalog) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		instructors, err := s.applyInstructors(tx, catalog.Instructors)
		if err != nil {
			return err
		}
		for _, prog := range catalog.Programs {
			if err := s.applyProgram(tx, prog, instructors); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Seeder) applyInstructors(tx *gorm.DB, specs []InstructorSpec) (map[string]*types.User, error) {
	byEmail := map[string]*types.User{}
	for _, spec := range specs {
		email := strings.ToLower(strings.TrimSpace(spec.Email))
		var existing types.User
		err := tx.Where("email = ?", email).First(&existing).Error
		if err == nil {
			byEmail[email] = &existing
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		role := types.Role(spec.Role)
		if role == "" {
			role = types.RoleInstructor
		}
		if !types.ValidRole(role) {
			return nil, fmt.Errorf("instructor %s: invalid role %q", email, spec.Role)
		}
		user := &types.User{
			Email:     email,
			Password:  spec.Password,
			FirstName: spec.FirstName,
			LastName:  spec.LastName,
			Role:      role,
		}
		utils.NormalizeUserFields(user)
		if err := utils.HashPassword(s.log, user); err != nil {
			return nil, err
		}
		if err := tx.Create(user).Error; err != nil {
			return nil, err
		}
		s.log.Info("seeded user", "email", email, "role", role)
		byEmail[email] = user
	}
	return byEmail, nil
}

func (s *Seeder) applyProgram(tx *gorm.DB, spec ProgramSpec, instructors map[string]*types.User) error {
	var program types.Program
	err := tx.Where("code = ?", spec.Code).First(&program).Error
	if err == gorm.ErrRecordNotFound {
		mode := assessment.DisplayMode(spec.DisplayMode)
		if spec.DisplayMode == "" {
			mode = assessment.DisplayPercentage
		}
		program = types.Program{
			Code:                  spec.Code,
			Name:                  spec.Name,
			Description:           spec.Description,
			AssessmentDisplayMode: mode,
		}
		if err := tx.Create(&program).Error; err != nil {
			return err
		}
		s.log.Info("seeded program", "code", spec.Code)
	} else if err != nil {
		return err
	}

	ploByPosition := map[int]*types.ProgramOutcome{}
	for _, outcomeSpec := range spec.Outcomes {
		var plo types.ProgramOutcome
		err := tx.Where("program_id = ? AND position = ?", program.ID, outcomeSpec.Position).First(&plo).Error
		if err == gorm.ErrRecordNotFound {
			plo = types.ProgramOutcome{
				ProgramID:   program.ID,
				Position:    outcomeSpec.Position,
				Title:       outcomeSpec.Title,
				Description: outcomeSpec.Description,
			}
			if err := tx.Create(&plo).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		ploByPosition[outcomeSpec.Position] = &plo
	}

	for _, courseSpec := range spec.Courses {
		if err := s.applyCourse(tx, program.ID, courseSpec, ploByPosition, instructors); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) applyCourse(tx *gorm.DB, programID uuid.UUID, spec CourseSpec, ploByPosition map[int]*types.ProgramOutcome, instructors map[string]*types.User) error {
	var course types.Course
	err := tx.Where("program_id = ? AND code = ?", programID, spec.Code).First(&course).Error
	if err == gorm.ErrRecordNotFound {
		course = types.Course{ProgramID: programID, Code: spec.Code, Title: spec.Title}
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		s.log.Info("seeded course", "code", spec.Code)
	} else if err != nil {
		return err
	}

	for _, cloSpec := range spec.Outcomes {
		var clo types.CourseOutcome
		err := tx.Where("course_id = ? AND position = ?", course.ID, cloSpec.Position).First(&clo).Error
		if err == gorm.ErrRecordNotFound {
			clo = types.CourseOutcome{
				CourseID:    course.ID,
				Position:    cloSpec.Position,
				Title:       cloSpec.Title,
				Description: cloSpec.Description,
			}
			if err := tx.Create(&clo).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		for _, pos := range cloSpec.MapsTo {
			plo := ploByPosition[pos]
			var mapping types.OutcomeMapping
			err := tx.Where("course_outcome_id = ? AND program_outcome_id = ?", clo.ID, plo.ID).First(&mapping).Error
			if err == gorm.ErrRecordNotFound {
				mapping = types.OutcomeMapping{CourseOutcomeID: clo.ID, ProgramOutcomeID: plo.ID}
				if err := tx.Create(&mapping).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
		}
	}

	for _, sectionSpec := range spec.Sections {
		instructor, ok := instructors[strings.ToLower(strings.TrimSpace(sectionSpec.Instructor))]
		if !ok {
			return fmt.Errorf("course %s: unknown instructor %q", spec.Code, sectionSpec.Instructor)
		}
		var section types.Section
		err := tx.Where("course_id = ? AND term = ? AND number = ?", course.ID, sectionSpec.Term, sectionSpec.Number).First(&section).Error
		if err == gorm.ErrRecordNotFound {
			section = types.Section{
				CourseID:     course.ID,
				InstructorID: instructor.ID,
				Term:         sectionSpec.Term,
				Number:       sectionSpec.Number,
			}
			if err := tx.Create(&section).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
