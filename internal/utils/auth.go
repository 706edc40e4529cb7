package utils

import (
  "fmt"
  "strings"

  "golang.org/x/crypto/bcrypt"

  "github.com/yungbote/outcometrack-backend/internal/logger"
  "github.com/yungbote/outcometrack-backend/internal/types"
)

// NormalizeUserFields lowercases/trims the identity fields before any
// validation or lookup.
func NormalizeUserFields(user *types.User) {
  user.Email = strings.ToLower(strings.TrimSpace(user.Email))
  user.FirstName = strings.TrimSpace(user.FirstName)
  user.LastName = strings.TrimSpace(user.LastName)
}

// ValidateRegistration checks the fields a registration payload must carry.
func ValidateRegistration(user *types.User) error {
  if user.Email == "" || !strings.Contains(user.Email, "@") {
    return fmt.Errorf("invalid email")
  }
  if len(user.Password) < 8 {
    return fmt.Errorf("password must be at least 8 characters")
  }
  if user.FirstName == "" || user.LastName == "" {
    return fmt.Errorf("first and last name are required")
  }
  if user.Role != "" && !types.ValidRole(user.Role) {
    return fmt.Errorf("invalid role %q", user.Role)
  }
  return nil
}

// HashPassword replaces the plaintext password on the user with its bcrypt
// hash.
func HashPassword(log *logger.Logger, user *types.User) error {
  hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    if log != nil {
      log.Error("Failed to hash password", "error", err)
    }
    return fmt.Errorf("hash password: %w", err)
  }
  user.Password = string(hashed)
  return nil
}

// CheckPassword compares a stored bcrypt hash with a login attempt.
func CheckPassword(hash, plain string) error {
  return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
