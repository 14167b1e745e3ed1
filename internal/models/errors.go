package models

import "errors"

// Common errors used throughout the application
var (
	ErrNotFound        = errors.New("not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrUnauthorized    = errors.New("unauthorized access")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
	ErrAlreadyVoted    = errors.New("review already marked helpful")
	ErrEmptyCart       = errors.New("cart is empty")
)

// ValidationErrors maps form fields to their messages, the shape forms re-render with.
type ValidationErrors map[string][]string

func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

// First returns the first message for a field, or "" when the field is valid.
func (v ValidationErrors) First(field string) string {
	if msgs := v[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (v ValidationErrors) Error() string {
	for _, msgs := range v {
		if len(msgs) > 0 {
			return msgs[0]
		}
	}
	return ErrInvalidInput.Error()
}
