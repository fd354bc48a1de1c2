package service

import (
	"context"

	"github.com/gdg-garage/conference-api/internal/auth"
	"github.com/gdg-garage/conference-api/internal/forms"
	"github.com/gdg-garage/conference-api/internal/logging"
	"github.com/gdg-garage/conference-api/internal/models"
	"github.com/gdg-garage/conference-api/internal/store"
)

type ConferenceManager struct {
	store    *store.Store
	profiles *ProfileManager
}

func NewConferenceManager(st *store.Store, profiles *ProfileManager) *ConferenceManager {
	return &ConferenceManager{store: st, profiles: profiles}
}

// CreateConference validates form, then stores the conference under the
// caller's profile. Nothing is written when validation fails.
func (m *ConferenceManager) CreateConference(ctx context.Context, id *auth.Identity, form forms.ConferenceForm) (*models.Conference, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	conf, err := forms.DecodeConference(form)
	if err != nil {
		return nil, err
	}

	owner, err := m.profiles.GetOrCreateProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	err = m.store.WithinOwner(ctx, owner.ID, func(tx *store.Store) error {
		confID, err := tx.AllocateID(ctx, owner.ID, store.KindConference)
		if err != nil {
			return err
		}
		conf.ProfileID = owner.ID
		conf.ID = confID
		conf.OrganizerUserID = owner.ID
		return tx.InsertConference(ctx, conf)
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).InfoContext(ctx, "conference created",
		"user_id", owner.ID, "conference_id", conf.ID, "name", conf.Name)
	return conf, nil
}

// ListConferences returns the conferences organised by the caller.
func (m *ConferenceManager) ListConferences(ctx context.Context, id *auth.Identity) ([]models.Conference, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	return m.store.ListConferences(ctx, id.UserID)
}

// GetConference resolves an opaque conference key.
func (m *ConferenceManager) GetConference(ctx context.Context, websafeKey string) (*models.Conference, error) {
	key, err := store.DecodeKey(websafeKey)
	if err != nil {
		return nil, err
	}
	return m.store.GetConference(ctx, key)
}

// Organizer returns the profile owning conf, used for its display name.
func (m *ConferenceManager) Organizer(ctx context.Context, conf *models.Conference) (*models.Profile, error) {
	return m.store.GetProfile(ctx, conf.ProfileID)
}
