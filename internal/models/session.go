package models

import (
	"strings"
	"time"
)

// Session is the locally held record of the signed-in identity and its bearer token.
type Session struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == UserRoleAdmin
}

// Expired reports whether the token's expiry is known and in the past
func (s *Session) Expired(now time.Time) bool {
	return s != nil && !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// FirstName is used by the navbar greeting
func (s *Session) FirstName() string {
	if s == nil {
		return ""
	}
	if name, _, ok := strings.Cut(strings.TrimSpace(s.Name), " "); ok {
		return name
	}
	return strings.TrimSpace(s.Name)
}

// AuthResponse is what /api/auth/customer-login and customer-signup return
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// LoginForm is the login page form
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f *LoginForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.Email) == "" {
		errs.Add("email", "Email is required")
	}
	if f.Password == "" {
		errs.Add("password", "Password is required")
	}
	return errs
}

// SignupForm is the signup page form
type SignupForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

func (f *SignupForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs.Add("name", "Name is required")
	}
	if strings.TrimSpace(f.Email) == "" {
		errs.Add("email", "Email is required")
	} else if !ValidEmail(f.Email) {
		errs.Add("email", "Please enter a valid email address")
	}
	validatePassword(errs, f.Password, f.ConfirmPassword)
	return errs
}
