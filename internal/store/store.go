// Package store is the typed gorm adapter for profiles, conferences,
// reservations and API keys. Conferences and reservations are keyed under
// their owning profile and get ids from a per-owner counter.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdg-garage/conference-api/internal/apperr"
	"github.com/gdg-garage/conference-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, apperr.ErrNotFound)
	}
	return apperr.Storage("get "+what, err)
}

// WithinOwner runs fn inside one transaction holding a row lock on the
// owner's profile. Databases without row locks (SQLite) serialise the whole
// write transaction instead. The Store passed to fn is bound to the
// transaction and must not escape it.
func (s *Store) WithinOwner(ctx context.Context, profileID string, fn func(tx *Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner models.Profile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&owner, "id = ?", profileID).Error; err != nil {
			return notFound(err, "profile "+profileID)
		}
		return fn(&Store{db: tx})
	})
	return apperr.Storage("owner transaction", err)
}

// AllocateID hands out the next id for kind under profileID. Call it inside
// WithinOwner so concurrent allocations for one owner are serialised.
func (s *Store) AllocateID(ctx context.Context, profileID, kind string) (int64, error) {
	alloc := models.IDAllocation{ProfileID: profileID, Kind: kind}
	if err := s.db.WithContext(ctx).Where(&alloc).FirstOrCreate(&alloc).Error; err != nil {
		return 0, apperr.Storage("allocate id", err)
	}
	alloc.Last++
	err := s.db.WithContext(ctx).Model(&models.IDAllocation{}).
		Where("profile_id = ? AND kind = ?", profileID, kind).
		Update("last", alloc.Last).Error
	if err != nil {
		return 0, apperr.Storage("allocate id", err)
	}
	return alloc.Last, nil
}

// Profiles

func (s *Store) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "profile "+id)
	}
	return &p, nil
}

// InsertProfileIfAbsent creates p unless a profile with the same id exists,
// then returns the stored record. Concurrent callers converge on one row.
func (s *Store) InsertProfileIfAbsent(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(p).Error
	if err != nil {
		return nil, apperr.Storage("insert profile", err)
	}
	return s.GetProfile(ctx, p.ID)
}

// UpdateProfile writes the non-zero fields of edits to the profile id.
func (s *Store) UpdateProfile(ctx context.Context, id string, edits models.Profile) (*models.Profile, error) {
	res := s.db.WithContext(ctx).Model(&models.Profile{ID: id}).Updates(edits)
	if res.Error != nil {
		return nil, apperr.Storage("update profile", res.Error)
	}
	return s.GetProfile(ctx, id)
}

// Conferences

func (s *Store) InsertConference(ctx context.Context, c *models.Conference) error {
	return apperr.Storage("insert conference", s.db.WithContext(ctx).Create(c).Error)
}

func (s *Store) GetConference(ctx context.Context, key Key) (*models.Conference, error) {
	if key.Kind != KindConference {
		return nil, fmt.Errorf("%s key: %w", key.Kind, apperr.ErrNotFound)
	}
	var c models.Conference
	err := s.db.WithContext(ctx).
		Where("profile_id = ? AND id = ?", key.ProfileID, key.ID).
		First(&c).Error
	if err != nil {
		return nil, notFound(err, "conference")
	}
	return &c, nil
}

func (s *Store) ListConferences(ctx context.Context, profileID string) ([]models.Conference, error) {
	var out []models.Conference
	err := s.db.WithContext(ctx).Where("profile_id = ?", profileID).Order("id asc").Find(&out).Error
	if err != nil {
		return nil, apperr.Storage("list conferences", err)
	}
	return out, nil
}

func (s *Store) CountConferences(ctx context.Context, profileID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Conference{}).Where("profile_id = ?", profileID).Count(&n).Error
	return n, apperr.Storage("count conferences", err)
}

// Reservations

func (s *Store) InsertReservation(ctx context.Context, r *models.Reservation) error {
	return apperr.Storage("insert reservation", s.db.WithContext(ctx).Create(r).Error)
}

// ListReservations returns every reservation owned by profileID, earliest
// start first. Reservations without a start date sort first.
func (s *Store) ListReservations(ctx context.Context, profileID string) ([]models.Reservation, error) {
	var out []models.Reservation
	err := s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("start_date IS NOT NULL, start_date asc, id asc").
		Find(&out).Error
	if err != nil {
		return nil, apperr.Storage("list reservations", err)
	}
	return out, nil
}

func (s *Store) CountReservations(ctx context.Context, profileID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Reservation{}).Where("profile_id = ?", profileID).Count(&n).Error
	return n, apperr.Storage("count reservations", err)
}

// API keys

func (s *Store) InsertAPIKey(ctx context.Context, k *models.APIKey) error {
	return apperr.Storage("insert api key", s.db.WithContext(ctx).Create(k).Error)
}

func (s *Store) ListAPIKeys(ctx context.Context, profileID string) ([]models.APIKey, error) {
	var out []models.APIKey
	if err := s.db.WithContext(ctx).Where("profile_id = ?", profileID).Find(&out).Error; err != nil {
		return nil, apperr.Storage("list api keys", err)
	}
	return out, nil
}

func (s *Store) DeleteAPIKey(ctx context.Context, profileID string, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND profile_id = ?", id, profileID).Delete(&models.APIKey{})
	if res.Error != nil {
		return apperr.Storage("delete api key", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("api key %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// FindAPIKey looks a key up by the hash of its raw value and records the
// time of use.
func (s *Store) FindAPIKey(ctx context.Context, hash string, now time.Time) (*models.APIKey, error) {
	var k models.APIKey
	if err := s.db.WithContext(ctx).Where("key_hash = ?", hash).First(&k).Error; err != nil {
		return nil, notFound(err, "api key")
	}
	if err := s.db.WithContext(ctx).Model(&k).Update("last_used_at", now).Error; err != nil {
		return nil, apperr.Storage("touch api key", err)
	}
	return &k, nil
}
