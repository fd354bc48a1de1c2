package handlers

import (
	"context"

	"github.com/gdg-garage/conference-api/internal/auth"
	"github.com/gdg-garage/conference-api/internal/forms"
	"github.com/gdg-garage/conference-api/internal/service"
)

type ProfileHandler struct {
	authHandler *auth.AuthHandler
	profiles    *service.ProfileManager
}

func NewProfileHandler(authHandler *auth.AuthHandler, profiles *service.ProfileManager) *ProfileHandler {
	return &ProfileHandler{authHandler: authHandler, profiles: profiles}
}

type GetProfileInput struct {
	auth.AuthInput
}

type SaveProfileInput struct {
	auth.AuthInput
	Body forms.ProfileMiniForm
}

type ProfileOutput struct {
	Body forms.ProfileForm
}

// HandleGetProfile returns the caller's profile, creating it on first use.
func (h *ProfileHandler) HandleGetProfile(ctx context.Context, input *GetProfileInput) (*ProfileOutput, error) {
	id, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(ctx, err)
	}

	p, err := h.profiles.GetOrCreateProfile(ctx, id)
	if err != nil {
		return nil, httpError(ctx, err)
	}
	return &ProfileOutput{Body: forms.EncodeProfile(p)}, nil
}

func (h *ProfileHandler) HandleSaveProfile(ctx context.Context, input *SaveProfileInput) (*ProfileOutput, error) {
	id, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(ctx, err)
	}

	p, err := h.profiles.UpdateProfile(ctx, id, input.Body)
	if err != nil {
		return nil, httpError(ctx, err)
	}
	return &ProfileOutput{Body: forms.EncodeProfile(p)}, nil
}
