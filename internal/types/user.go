package types

import (
	"time"

	"github.com/google/uuid"
)

// Role gates catalog writes and assessment review actions.
type Role string

const (
	RoleInstructor       Role = "instructor"
	RoleProgramAdmin     Role = "program_admin"
	RoleInstitutionAdmin Role = "institution_admin"
)

// IsAdmin reports whether the role may review assessments and edit the
// catalog.
func (r Role) IsAdmin() bool {
	return r == RoleProgramAdmin || r == RoleInstitutionAdmin
}

func ValidRole(r Role) bool {
	return r == RoleInstructor || r == RoleProgramAdmin || r == RoleInstitutionAdmin
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	FirstName string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string    `gorm:"not null;column:last_name" json:"last_name"`
	Role      Role      `gorm:"not null;default:instructor;column:role" json:"role"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "user" }
