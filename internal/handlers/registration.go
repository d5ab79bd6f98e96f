package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/gdg-garage/registration-api/internal/logging"
	"github.com/gdg-garage/registration-api/internal/metrics"
	"github.com/gdg-garage/registration-api/internal/models"
	"github.com/gdg-garage/registration-api/internal/store"
	"github.com/gdg-garage/registration-api/internal/tracing"
	"github.com/gdg-garage/registration-api/internal/validation"
)

const (
	MsgRegistered       = "Registration successful"
	MsgDuplicate        = "registration already exists with this email or phone"
	MsgCreateFailed     = "failed to process registration, please try again"
	MsgCardIDRequired   = "card id is required"
	MsgCardNotFound     = "card not found"
	MsgCardFailed       = "failed to fetch card, please try again"
	MsgExportFailed     = "failed to export registrations"
	MsgMethodNotAllowed = "Method not allowed"
)

var tracer = otel.Tracer(tracing.ServiceName + "/handlers")

// Notifier receives every newly created registration. Implementations must
// return without waiting for delivery.
type Notifier interface {
	Notify(ctx context.Context, registration models.Registration)
}

type RegistrationHandler struct {
	store    store.Store
	notifier Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewRegistrationHandler(s store.Store, n Notifier, m *metrics.Metrics) *RegistrationHandler {
	return &RegistrationHandler{
		store:    s,
		notifier: n,
		metrics:  m,
		now:      time.Now,
	}
}

// RegistrationBody is the candidate submitted by an attendee. Fields are
// optional at the schema level so that missing ones are reported with the
// field messages of the validator.
type RegistrationBody struct {
	_           struct{} `json:"-" additionalProperties:"true"`
	FullName    string   `json:"fullName,omitempty" doc:"Full name of the attendee"`
	Email       string   `json:"email,omitempty" doc:"Contact email, unique per registration"`
	Semester    string   `json:"semester,omitempty" doc:"Semester, s1 to s8"`
	Branch      string   `json:"branch,omitempty" doc:"Branch of study"`
	College     string   `json:"college,omitempty" doc:"College name"`
	PhoneNumber string   `json:"phone_number,omitempty" doc:"Phone number, unique per registration"`
}

func (b RegistrationBody) fields() models.RegistrationFields {
	return models.RegistrationFields{
		FullName:    b.FullName,
		Email:       b.Email,
		Semester:    b.Semester,
		PhoneNumber: b.PhoneNumber,
		Branch:      b.Branch,
		College:     b.College,
	}
}

type CreateRegistrationRequest struct {
	Body RegistrationBody
}

type CreateRegistrationResponse struct {
	Body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		ID      string `json:"id"`
	}
}

func (h *RegistrationHandler) HandleCreate(ctx context.Context, input *CreateRegistrationRequest) (*CreateRegistrationResponse, error) {
	ctx, span := tracer.Start(ctx, "registration.create")
	defer span.End()

	fields := input.Body.fields()

	// 1. Validate
	if errs := validation.Validate(fields); len(errs) > 0 {
		h.metrics.IncrementRejected(metrics.ReasonValidation)
		span.SetAttributes(attribute.Int("validation.errors", len(errs)))
		return nil, newAPIError(http.StatusBadRequest, errs.Messages()...)
	}

	// 2. Reject known phone numbers and emails
	existingID, found, err := h.store.FindByPhoneOrEmail(ctx, fields.PhoneNumber, fields.Email)
	if err != nil {
		return nil, h.storageFailure(ctx, span, "find", err, MsgCreateFailed)
	}
	if found {
		return nil, h.duplicate(span, existingID)
	}

	// 3. Persist
	registration, err := h.store.Insert(ctx, fields)
	if errors.Is(err, store.ErrDuplicate) {
		// A concurrent request with the same key won the insert.
		existingID, found, lookupErr := h.store.FindByPhoneOrEmail(ctx, fields.PhoneNumber, fields.Email)
		if lookupErr == nil && found {
			return nil, h.duplicate(span, existingID)
		}
		if lookupErr != nil {
			err = errors.Join(err, lookupErr)
		}
		return nil, h.storageFailure(ctx, span, "insert", err, MsgCreateFailed)
	}
	if err != nil {
		return nil, h.storageFailure(ctx, span, "insert", err, MsgCreateFailed)
	}

	// 4. Broadcast without waiting
	if h.notifier != nil {
		h.notifier.Notify(ctx, registration)
	}
	h.metrics.IncrementCreated()
	span.SetAttributes(attribute.String("registration.id", registration.ID))
	logging.FromContext(ctx).Info("registration created", "registration_id", registration.ID)

	res := &CreateRegistrationResponse{}
	res.Body.Success = true
	res.Body.Message = MsgRegistered
	res.Body.ID = registration.ID
	return res, nil
}

func (h *RegistrationHandler) duplicate(span trace.Span, existingID string) *APIError {
	h.metrics.IncrementRejected(metrics.ReasonDuplicate)
	span.SetAttributes(attribute.String("registration.existing_id", existingID))

	e := newAPIError(http.StatusBadRequest, MsgDuplicate)
	e.ID = existingID
	return e
}

// storageFailure logs the backend error with the request id and returns a
// response that does not reveal it.
func (h *RegistrationHandler) storageFailure(ctx context.Context, span trace.Span, op string, err error, msg string) *APIError {
	h.metrics.IncrementStorageErrors(op)
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
	logging.FromContext(ctx).Error("storage operation failed", "op", op, "error", err)

	return newAPIError(http.StatusInternalServerError, msg)
}
