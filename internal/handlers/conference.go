package handlers

import (
	"context"

	"github.com/gdg-garage/conference-api/internal/auth"
	"github.com/gdg-garage/conference-api/internal/forms"
	"github.com/gdg-garage/conference-api/internal/logging"
	"github.com/gdg-garage/conference-api/internal/models"
	"github.com/gdg-garage/conference-api/internal/notifier"
	"github.com/gdg-garage/conference-api/internal/service"
)

type ConferenceHandler struct {
	authHandler *auth.AuthHandler
	profiles    *service.ProfileManager
	conferences *service.ConferenceManager
	notifier    notifier.Notifier
}

func NewConferenceHandler(authHandler *auth.AuthHandler, profiles *service.ProfileManager, conferences *service.ConferenceManager, n notifier.Notifier) *ConferenceHandler {
	return &ConferenceHandler{authHandler: authHandler, profiles: profiles, conferences: conferences, notifier: n}
}

type CreateConferenceInput struct {
	auth.AuthInput
	Body forms.ConferenceForm
}

type ConferenceOutput struct {
	Body forms.ConferenceForm
}

type ListConferencesInput struct {
	auth.AuthInput
}

type ConferenceListOutput struct {
	Body struct {
		Items []forms.ConferenceForm `json:"items"`
	}
}

type GetConferenceInput struct {
	auth.AuthInput
	WebsafeKey string `path:"websafeKey" doc:"Opaque conference key"`
}

func (h *ConferenceHandler) HandleCreateConference(ctx context.Context, input *CreateConferenceInput) (*ConferenceOutput, error) {
	id, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(ctx, err)
	}

	conf, err := h.conferences.CreateConference(ctx, id, input.Body)
	if err != nil {
		return nil, httpError(ctx, err)
	}

	owner, err := h.profiles.GetOrCreateProfile(ctx, id)
	if err != nil {
		return nil, httpError(ctx, err)
	}
	if h.notifier != nil {
		if err := h.notifier.NotifyConference(ctx, owner, conf); err != nil {
			logging.FromContext(ctx).WarnContext(ctx, "conference notification failed", "error", err)
		}
	}

	return &ConferenceOutput{Body: forms.EncodeConference(conf, owner.DisplayName)}, nil
}

// HandleListConferences returns the conferences created by the caller.
func (h *ConferenceHandler) HandleListConferences(ctx context.Context, input *ListConferencesInput) (*ConferenceListOutput, error) {
	id, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(ctx, err)
	}

	owner, err := h.profiles.GetOrCreateProfile(ctx, id)
	if err != nil {
		return nil, httpError(ctx, err)
	}
	list, err := h.conferences.ListConferences(ctx, id)
	if err != nil {
		return nil, httpError(ctx, err)
	}

	out := &ConferenceListOutput{}
	out.Body.Items = make([]forms.ConferenceForm, 0, len(list))
	for i := range list {
		out.Body.Items = append(out.Body.Items, forms.EncodeConference(&list[i], owner.DisplayName))
	}
	return out, nil
}

func (h *ConferenceHandler) HandleGetConference(ctx context.Context, input *GetConferenceInput) (*ConferenceOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, httpError(ctx, err)
	}

	conf, err := h.conferences.GetConference(ctx, input.WebsafeKey)
	if err != nil {
		return nil, httpError(ctx, err)
	}
	return &ConferenceOutput{Body: forms.EncodeConference(conf, h.organizerName(ctx, conf))}, nil
}

func (h *ConferenceHandler) organizerName(ctx context.Context, conf *models.Conference) string {
	organizer, err := h.conferences.Organizer(ctx, conf)
	if err != nil {
		return ""
	}
	return organizer.DisplayName
}
