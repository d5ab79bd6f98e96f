package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/gdg-garage/registration-api/internal/models"
)

func validFields() models.RegistrationFields {
	return models.RegistrationFields{
		FullName:    "Jane Doe",
		Email:       "jane@x.com",
		Semester:    "s3",
		PhoneNumber: "9876543210",
		Branch:      "CS",
		College:     "MIT",
	}
}

func TestValidate_Valid(t *testing.T) {
	require.Empty(t, Validate(validFields()))
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RegistrationFields)
		want   string
	}{
		{"empty full name", func(f *models.RegistrationFields) { f.FullName = "" }, MsgFullName},
		{"short full name", func(f *models.RegistrationFields) { f.FullName = "J" }, MsgFullName},
		{"empty email", func(f *models.RegistrationFields) { f.Email = "" }, MsgEmail},
		{"email without domain dot", func(f *models.RegistrationFields) { f.Email = "jane@x" }, MsgEmail},
		{"email with space", func(f *models.RegistrationFields) { f.Email = "ja ne@x.com" }, MsgEmail},
		{"semester out of range", func(f *models.RegistrationFields) { f.Semester = "s9" }, MsgSemester},
		{"semester zero", func(f *models.RegistrationFields) { f.Semester = "s0" }, MsgSemester},
		{"semester upper case", func(f *models.RegistrationFields) { f.Semester = "S3" }, MsgSemester},
		{"semester with suffix", func(f *models.RegistrationFields) { f.Semester = "s33" }, MsgSemester},
		{"short branch", func(f *models.RegistrationFields) { f.Branch = "C" }, MsgBranch},
		{"empty college", func(f *models.RegistrationFields) { f.College = "" }, MsgCollege},
		{"short phone", func(f *models.RegistrationFields) { f.PhoneNumber = "987654321" }, MsgPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.mutate(&f)

			errs := Validate(f)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.want, errs[0].Message)
		})
	}
}

func TestValidate_PhoneAllowsMoreThanTenCharacters(t *testing.T) {
	f := validFields()
	f.PhoneNumber = "+91 98765 43210"
	assert.Empty(t, Validate(f))
}

func TestValidate_AccumulatesInFieldOrder(t *testing.T) {
	errs := Validate(models.RegistrationFields{})

	assert.Equal(t, []string{
		MsgFullName,
		MsgEmail,
		MsgSemester,
		MsgBranch,
		MsgCollege,
		MsgPhone,
	}, errs.Messages())
	assert.Contains(t, errs.Error(), "fullName: "+MsgFullName)
}

func TestValidate_CountsCodePoints(t *testing.T) {
	f := validFields()
	f.FullName = "Zoë"
	f.Branch = "ÉÉ"
	assert.Empty(t, Validate(f))
}

func TestValidate_SemesterProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(-5, 15).Draw(t, "n")
		f := validFields()
		f.Semester = fmt.Sprintf("s%d", n)

		errs := Validate(f)
		if n >= 1 && n <= 8 {
			if len(errs) != 0 {
				t.Fatalf("semester %q rejected: %v", f.Semester, errs)
			}
			return
		}
		if len(errs) != 1 || errs[0].Message != MsgSemester {
			t.Fatalf("semester %q: unexpected errors %v", f.Semester, errs)
		}
	})
}

func TestValidate_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := models.RegistrationFields{
			FullName:    rapid.String().Draw(t, "fullName"),
			Email:       rapid.String().Draw(t, "email"),
			Semester:    rapid.String().Draw(t, "semester"),
			PhoneNumber: rapid.String().Draw(t, "phone"),
			Branch:      rapid.String().Draw(t, "branch"),
			College:     rapid.String().Draw(t, "college"),
		}

		first := Validate(f)
		second := Validate(f)
		if fmt.Sprint(first) != fmt.Sprint(second) {
			t.Fatalf("validation not deterministic: %v vs %v", first, second)
		}
	})
}
