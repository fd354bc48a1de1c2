package handlers

import (
	"context"

	"github.com/gdg-garage/conference-api/internal/auth"
	"github.com/gdg-garage/conference-api/internal/forms"
	"github.com/gdg-garage/conference-api/internal/logging"
	"github.com/gdg-garage/conference-api/internal/notifier"
	"github.com/gdg-garage/conference-api/internal/service"
)

type ReservationHandler struct {
	authHandler *auth.AuthHandler
	profiles    *service.ProfileManager
	engine      *service.ReservationEngine
	notifier    notifier.Notifier
}

func NewReservationHandler(authHandler *auth.AuthHandler, profiles *service.ProfileManager, engine *service.ReservationEngine, n notifier.Notifier) *ReservationHandler {
	return &ReservationHandler{authHandler: authHandler, profiles: profiles, engine: engine, notifier: n}
}

type CreateReservationInput struct {
	auth.AuthInput
	Body forms.ReservationForm
}

type ReservationOutput struct {
	Body forms.ReservationForm
}

type ListReservationsInput struct {
	auth.AuthInput
}

type ReservationListOutput struct {
	Body struct {
		Items []forms.ReservationForm `json:"items"`
	}
}

// HandleCreateReservation admits a reservation for the caller. Overlapping
// windows are rejected with 409 listing the conflicting reservations.
func (h *ReservationHandler) HandleCreateReservation(ctx context.Context, input *CreateReservationInput) (*ReservationOutput, error) {
	id, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(ctx, err)
	}

	res, err := h.engine.CreateReservation(ctx, id, input.Body)
	if err != nil {
		return nil, httpError(ctx, err)
	}

	owner, err := h.profiles.GetOrCreateProfile(ctx, id)
	if err != nil {
		return nil, httpError(ctx, err)
	}
	if h.notifier != nil {
		if err := h.notifier.NotifyReservation(ctx, owner, res); err != nil {
			logging.FromContext(ctx).WarnContext(ctx, "reservation notification failed", "error", err)
		}
	}

	return &ReservationOutput{Body: forms.EncodeReservation(res, owner.DisplayName)}, nil
}

func (h *ReservationHandler) HandleListReservations(ctx context.Context, input *ListReservationsInput) (*ReservationListOutput, error) {
	id, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(ctx, err)
	}

	owner, err := h.profiles.GetOrCreateProfile(ctx, id)
	if err != nil {
		return nil, httpError(ctx, err)
	}
	list, err := h.engine.ListReservations(ctx, id)
	if err != nil {
		return nil, httpError(ctx, err)
	}

	out := &ReservationListOutput{}
	out.Body.Items = make([]forms.ReservationForm, 0, len(list))
	for i := range list {
		out.Body.Items = append(out.Body.Items, forms.EncodeReservation(&list[i], owner.DisplayName))
	}
	return out, nil
}
