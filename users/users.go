package users

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/jrsteele09/go-league-admin/api"
)

// RoleType is a platform role.
type RoleType string

const (
	RoleSuperAdmin RoleType = "super_admin" // Manages admins, site config and every league
	RoleAdmin      RoleType = "admin"       // Manages leagues, drivers and results
	RoleUser       RoleType = "user"        // Public account
)

func (r RoleType) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Role            RoleType   `json:"role"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

func (u *User) Verified() bool {
	return u.EmailVerifiedAt != nil
}

type CreateRequest struct {
	Name                 string   `json:"name"`
	Email                string   `json:"email"`
	Password             string   `json:"password"`
	PasswordConfirmation string   `json:"password_confirmation"`
	Role                 RoleType `json:"role,omitempty"`
}

// Validate checks the request before it is sent. Failures come back as an *api.ValidationError so callers handle
// them like server-side field errors.
func (r CreateRequest) Validate() error {
	fields := map[string][]string{}
	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = append(fields["name"], "The name field is required.")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		fields["email"] = append(fields["email"], "The email must be a valid email address.")
	}
	if err := ValidatePasswordStrength(r.Password); err != nil {
		fields["password"] = append(fields["password"], err.Error())
	} else if r.Password != r.PasswordConfirmation {
		fields["password"] = append(fields["password"], "The password confirmation does not match.")
	}
	if r.Role != "" && !r.Role.Valid() {
		fields["role"] = append(fields["role"], fmt.Sprintf("The selected role %q is invalid.", r.Role))
	}
	if len(fields) == 0 {
		return nil
	}
	return &api.ValidationError{Message: "The given data was invalid.", Fields: fields}
}

// UpdateRequest changes only the non-nil fields.
type UpdateRequest struct {
	Name  *string   `json:"name,omitempty"`
	Email *string   `json:"email,omitempty"`
	Role  *RoleType `json:"role,omitempty"`
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}
