package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gdg-garage/conference-api/internal/forms"
)

func TestHandleProfile(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	authInput := s.cookie(t, "123", "Ada")

	out, err := s.handlers.Profile.HandleGetProfile(ctx, &GetProfileInput{AuthInput: authInput})
	if err != nil {
		t.Fatalf("HandleGetProfile failed: %v", err)
	}
	if out.Body.DisplayName != "Ada" || out.Body.MainEmail != "123@example.com" || out.Body.TeeShirtSize != "NOT_SPECIFIED" {
		t.Errorf("unexpected profile %+v", out.Body)
	}
	if out.Body.ConferenceKeysToAttend == nil || len(out.Body.ConferenceKeysToAttend) != 0 {
		t.Errorf("expected empty conference key list, got %v", out.Body.ConferenceKeysToAttend)
	}

	save := &SaveProfileInput{AuthInput: authInput, Body: forms.ProfileMiniForm{TeeShirtSize: "m_w"}}
	out, err = s.handlers.Profile.HandleSaveProfile(ctx, save)
	if err != nil {
		t.Fatalf("HandleSaveProfile failed: %v", err)
	}
	if out.Body.TeeShirtSize != "M_W" || out.Body.DisplayName != "Ada" {
		t.Errorf("expected only shirt size to change, got %+v", out.Body)
	}

	save.Body = forms.ProfileMiniForm{TeeShirtSize: "XXXXL"}
	_, err = s.handlers.Profile.HandleSaveProfile(ctx, save)
	model := expectStatus(t, err, http.StatusBadRequest)
	if len(model.Errors) != 1 || model.Errors[0].Location != "body.teeShirtSize" {
		t.Errorf("expected teeShirtSize detail, got %+v", model.Errors)
	}
}

func TestHandleProfileUnauthorized(t *testing.T) {
	s := newTestServer(t)
	_, err := s.handlers.Profile.HandleGetProfile(context.Background(), &GetProfileInput{})
	expectStatus(t, err, http.StatusUnauthorized)
}
