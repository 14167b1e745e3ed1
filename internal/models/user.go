package models

import (
	"regexp"
	"strings"
	"time"
)

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleAdmin    UserRole = "admin"
)

// Valid reports whether r is a role the backend accepts
func (r UserRole) Valid() bool {
	return r == UserRoleCustomer || r == UserRoleAdmin
}

// User represents a user account as returned by the users API
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      UserRole  `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserForm is the admin create/edit form for a user
type UserForm struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone,omitempty"`
	Role            UserRole `json:"role"`
	IsActive        bool     `json:"isActive"`
	Password        string   `json:"password,omitempty"`
	ConfirmPassword string   `json:"-"`
}

const MinPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether email looks like an address
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Validate checks the form. creating requires a password; on edit an empty
// password leaves the stored one untouched.
func (f *UserForm) Validate(creating bool) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(f.Name) == "" {
		errs.Add("name", "Name is required")
	}
	if strings.TrimSpace(f.Email) == "" {
		errs.Add("email", "Email is required")
	} else if !ValidEmail(f.Email) {
		errs.Add("email", "Please enter a valid email address")
	}
	if !f.Role.Valid() {
		errs.Add("role", "Role must be admin or customer")
	}

	if creating || f.Password != "" {
		validatePassword(errs, f.Password, f.ConfirmPassword)
	}

	return errs
}

func validatePassword(errs ValidationErrors, password, confirm string) {
	if len(password) < MinPasswordLength {
		errs.Add("password", "Password must be at least 6 characters")
	}
	if password != confirm {
		errs.Add("confirm_password", "Passwords do not match")
	}
}

// AdminUserFilter drives the admin users list
type AdminUserFilter struct {
	Search string
	Role   string
	Page   int
	Limit  int
}
