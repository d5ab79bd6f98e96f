package handlers

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/gdg-garage/registration-api/internal/models"
)

type GetCardRequest struct {
	ID string `query:"id" doc:"Registration id returned by the create call"`
}

type GetCardResponse struct {
	Body models.Card
}

func (h *RegistrationHandler) HandleGetCard(ctx context.Context, input *GetCardRequest) (*GetCardResponse, error) {
	ctx, span := tracer.Start(ctx, "registration.card")
	defer span.End()

	if input.ID == "" {
		return nil, newAPIError(http.StatusBadRequest, MsgCardIDRequired)
	}
	span.SetAttributes(attribute.String("registration.id", input.ID))

	registration, found, err := h.store.GetByID(ctx, input.ID)
	if err != nil {
		return nil, h.storageFailure(ctx, span, "get", err, MsgCardFailed)
	}
	if !found {
		return nil, newAPIError(http.StatusNotFound, MsgCardNotFound)
	}

	return &GetCardResponse{Body: registration.Card()}, nil
}
