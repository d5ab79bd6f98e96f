// Package validation checks registration submissions against the field rules
// enforced by the server.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gdg-garage/registration-api/internal/models"
)

const (
	MsgFullName = "full name required, min 2 chars"
	MsgEmail    = "valid email required"
	MsgSemester = "valid semester (s1-s8) required"
	MsgBranch   = "branch required"
	MsgCollege  = "college required"
	MsgPhone    = "valid phone number required"
)

// MinPhoneLength is the only constraint placed on phone numbers server-side.
// The form's exactly-10-digits check is a client convenience.
const MinPhoneLength = 10

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	semesterPattern = regexp.MustCompile(`^s[1-8]$`)
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors is the accumulated result of Validate. A nil or empty value means
// the submission is valid.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) Messages() []string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return msgs
}

// Validate evaluates every rule and returns the failures in field order:
// fullName, email, semester, branch, college, phoneNumber.
func Validate(f models.RegistrationFields) Errors {
	var errs Errors

	if !minLength(f.FullName, 2) {
		errs = append(errs, FieldError{Field: "fullName", Message: MsgFullName})
	}
	if f.Email == "" || !emailPattern.MatchString(f.Email) {
		errs = append(errs, FieldError{Field: "email", Message: MsgEmail})
	}
	if f.Semester == "" || !semesterPattern.MatchString(f.Semester) {
		errs = append(errs, FieldError{Field: "semester", Message: MsgSemester})
	}
	if !minLength(f.Branch, 2) {
		errs = append(errs, FieldError{Field: "branch", Message: MsgBranch})
	}
	if !minLength(f.College, 2) {
		errs = append(errs, FieldError{Field: "college", Message: MsgCollege})
	}
	if !minLength(f.PhoneNumber, MinPhoneLength) {
		errs = append(errs, FieldError{Field: "phoneNumber", Message: MsgPhone})
	}

	return errs
}

func minLength(s string, n int) bool {
	return s != "" && utf8.RuneCountInString(s) >= n
}
