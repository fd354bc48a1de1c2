// Package service holds the domain rules: lazy profile creation, conference
// creation with derived fields and reservation admission.
package service

import (
	"context"
	"errors"

	"github.com/gdg-garage/conference-api/internal/apperr"
	"github.com/gdg-garage/conference-api/internal/auth"
	"github.com/gdg-garage/conference-api/internal/forms"
	"github.com/gdg-garage/conference-api/internal/logging"
	"github.com/gdg-garage/conference-api/internal/models"
	"github.com/gdg-garage/conference-api/internal/store"
	"gorm.io/datatypes"
)

type ProfileManager struct {
	store *store.Store
}

func NewProfileManager(st *store.Store) *ProfileManager {
	return &ProfileManager{store: st}
}

func requireIdentity(id *auth.Identity) error {
	if id == nil || id.UserID == "" {
		return &apperr.AuthenticationError{Reason: "no caller identity"}
	}
	return nil
}

// GetOrCreateProfile returns the caller's profile, creating it from the
// identity on first access.
func (m *ProfileManager) GetOrCreateProfile(ctx context.Context, id *auth.Identity) (*models.Profile, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}

	p, err := m.store.GetProfile(ctx, id.UserID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	p, err = m.store.InsertProfileIfAbsent(ctx, &models.Profile{
		ID:                     id.UserID,
		DisplayName:            id.DisplayName,
		MainEmail:              id.Email,
		TeeShirtSize:           models.TeeShirtNotSpecified,
		ConferenceKeysToAttend: datatypes.JSONSlice[string]{},
	})
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).InfoContext(ctx, "profile created", "user_id", p.ID)
	return p, nil
}

// UpdateProfile applies the caller-editable fields present in form and
// leaves everything else untouched.
func (m *ProfileManager) UpdateProfile(ctx context.Context, id *auth.Identity, form forms.ProfileMiniForm) (*models.Profile, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	edits, err := forms.DecodeProfileEdits(form)
	if err != nil {
		return nil, err
	}

	p, err := m.GetOrCreateProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if edits.DisplayName == "" && edits.TeeShirtSize == "" {
		return p, nil
	}
	return m.store.UpdateProfile(ctx, p.ID, edits)
}
