package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gdg-garage/conference-api/internal/apperr"
	"github.com/gdg-garage/conference-api/internal/auth"
	"github.com/gdg-garage/conference-api/internal/forms"
	"github.com/gdg-garage/conference-api/internal/models"
)

func TestGetOrCreateProfileIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := identity("u1")

	first, err := env.profiles.GetOrCreateProfile(ctx, id)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if first.DisplayName != "User u1" || first.MainEmail != "u1@example.com" || first.TeeShirtSize != models.TeeShirtNotSpecified {
		t.Errorf("unexpected new profile %+v", first)
	}

	second, err := env.profiles.GetOrCreateProfile(ctx, id)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if second.ID != first.ID || !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("expected same profile, got %+v and %+v", first, second)
	}

	// A second identity payload for the same user must not overwrite the
	// stored profile.
	renamed := identity("u1")
	renamed.DisplayName = "Changed upstream"
	third, err := env.profiles.GetOrCreateProfile(ctx, renamed)
	if err != nil {
		t.Fatalf("third call failed: %v", err)
	}
	if third.DisplayName != "User u1" {
		t.Errorf("expected stored display name, got %q", third.DisplayName)
	}
}

func TestGetOrCreateProfileRequiresIdentity(t *testing.T) {
	env := newTestEnv(t)
	for _, id := range []*auth.Identity{nil, {}} {
		_, err := env.profiles.GetOrCreateProfile(context.Background(), id)
		var authErr *apperr.AuthenticationError
		if !errors.As(err, &authErr) {
			t.Errorf("expected AuthenticationError for %+v, got %v", id, err)
		}
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := identity("u1")

	p, err := env.profiles.UpdateProfile(ctx, id, forms.ProfileMiniForm{TeeShirtSize: "L_W"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if p.DisplayName != "User u1" {
		t.Errorf("display name must be unchanged, got %q", p.DisplayName)
	}
	if p.TeeShirtSize != models.TeeShirtLW {
		t.Errorf("expected L_W, got %q", p.TeeShirtSize)
	}

	p, err = env.profiles.UpdateProfile(ctx, id, forms.ProfileMiniForm{DisplayName: "Grace"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if p.DisplayName != "Grace" || p.TeeShirtSize != models.TeeShirtLW {
		t.Errorf("unexpected profile after name edit %+v", p)
	}

	p, err = env.profiles.UpdateProfile(ctx, id, forms.ProfileMiniForm{})
	if err != nil || p.DisplayName != "Grace" {
		t.Errorf("empty edit must be a no-op, got %+v (%v)", p, err)
	}

	if _, err := env.profiles.UpdateProfile(ctx, id, forms.ProfileMiniForm{TeeShirtSize: "HUGE"}); err == nil {
		t.Error("expected validation error for unknown size")
	}
}
