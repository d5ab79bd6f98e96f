// Package csvexport serializes registrations for the admin export.
//
// Fields are quoted only when they contain a comma, a double quote or a
// newline. encoding/csv also quotes fields with leading whitespace or a
// carriage return, which would change the exported bytes for otherwise
// plain values, so the writer here applies the narrower rule itself.
package csvexport

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/gdg-garage/registration-api/internal/models"
)

// DateLayout is the layout of the Registration Date column.
const DateLayout = "2006-01-02 15:04:05"

var Header = []string{
	"ID",
	"Full Name",
	"Email",
	"Semester",
	"Phone Number",
	"Branch",
	"College",
	"Registration Date",
}

// Encode renders the header and one line per record, joined with "\n" and
// without a trailing newline. Records keep their input order.
func Encode(records []models.Registration) string {
	var b strings.Builder
	_ = Write(&b, records)
	return b.String()
}

// Write streams the same output as Encode to w.
func Write(w io.Writer, records []models.Registration) error {
	bw := bufio.NewWriter(w)

	writeLine(bw, Header)
	for _, r := range records {
		bw.WriteByte('\n')
		writeLine(bw, Row(r))
	}

	return bw.Flush()
}

// Row returns the columns of r in header order.
func Row(r models.Registration) []string {
	return []string{
		r.ID,
		r.FullName,
		r.Email,
		r.Semester,
		r.PhoneNumber,
		r.Branch,
		r.College,
		formatDate(r.RegistrationDate),
	}
}

func writeLine(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteString(Escape(f))
	}
}

// Escape quotes field iff it contains a comma, a double quote or a newline,
// doubling any inner quotes.
func Escape(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
