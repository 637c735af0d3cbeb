package identity

import (
	"regexp"
	"strings"

	"github.com/ledgerbook/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// PlatformRole is the system-wide role of a user
type PlatformRole string

const (
	PlatformRoleUser        PlatformRole = "user"         // Regular user of the platform
	PlatformRoleSystemAdmin PlatformRole = "system_admin" // Platform operator
)

// IsValid reports whether r is a known platform role
func (r PlatformRole) IsValid() bool {
	switch r {
	case PlatformRoleUser, PlatformRoleSystemAdmin:
		return true
	}
	return false
}

func (r PlatformRole) String() string {
	return string(r)
}

// ParsePlatformRole converts s into a PlatformRole, rejecting unknown values
func ParsePlatformRole(s string) (PlatformRole, error) {
	r := PlatformRole(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", shared.NewDomainError("INVALID_ROLE", "Invalid platform role: "+s+" (valid: user, system_admin)")
	}
	return r, nil
}

// Password cost for bcrypt
const bcryptCost = 12

const minPasswordLength = 6

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// User is an account on the platform.
// It is the aggregate root for credentials and the platform role.
type User struct {
	shared.BaseEntity
	Username     string
	Email        string
	PasswordHash string
	Role         PlatformRole
}

// NewUser creates a new user with a hashed password
func NewUser(username, email, password string, role PlatformRole) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if role == "" {
		role = PlatformRoleUser
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Invalid platform role")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     strings.TrimSpace(username),
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}

// IsSystemAdmin reports whether the user holds the platform admin role
func (u *User) IsSystemAdmin() bool {
	return u.Role == PlatformRoleSystemAdmin
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword changes the user's password after verifying the old one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Incorrect old password")
	}
	return u.SetPassword(newPassword)
}

// SetPassword sets a new password (admin reset, no old password check)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.Touch()
	return nil
}

// ChangeUsername replaces the username
func (u *User) ChangeUsername(username string) error {
	if err := validateUsername(username); err != nil {
		return err
	}
	u.Username = strings.TrimSpace(username)
	u.Touch()
	return nil
}

// ChangeEmail replaces the email address
func (u *User) ChangeEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	u.Email = normalizeEmail(email)
	u.Touch()
	return nil
}

// SetRole changes the platform role
func (u *User) SetRole(role PlatformRole) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Invalid platform role")
	}
	u.Role = role
	u.Touch()
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 80 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 80 characters")
	}
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < minPasswordLength {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters long")
	}
	// bcrypt silently truncates beyond 72 bytes
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 120 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 120 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

// ValidateEmail exposes the email rule to other aggregates (employee contact email).
func ValidateEmail(email string) error {
	return validateEmail(email)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
