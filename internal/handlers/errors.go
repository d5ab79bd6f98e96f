package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// APIError is the body of every failed response.
type APIError struct {
	Status  int      `json:"-"`
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
	ID      string   `json:"id,omitempty"`
}

func (e *APIError) Error() string {
	return strings.Join(e.Errors, "; ")
}

func (e *APIError) GetStatus() int {
	return e.Status
}

func newAPIError(status int, messages ...string) *APIError {
	return &APIError{Status: status, Errors: messages}
}

func init() {
	// Errors raised by huma itself (body parsing, schema checks) use the same
	// envelope. Schema violations are client input errors like any other.
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}

		messages := make([]string, 0, len(errs))
		for _, err := range errs {
			if err != nil {
				messages = append(messages, err.Error())
			}
		}
		if len(messages) == 0 {
			messages = append(messages, msg)
		}

		return newAPIError(status, messages...)
	}
}

// writeError renders an APIError outside of a huma operation.
func writeError(w http.ResponseWriter, e *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}
