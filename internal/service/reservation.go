package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gdg-garage/conference-api/internal/apperr"
	"github.com/gdg-garage/conference-api/internal/auth"
	"github.com/gdg-garage/conference-api/internal/forms"
	"github.com/gdg-garage/conference-api/internal/lock"
	"github.com/gdg-garage/conference-api/internal/logging"
	"github.com/gdg-garage/conference-api/internal/models"
	"github.com/gdg-garage/conference-api/internal/store"
	"gorm.io/datatypes"
)

// ReservationRequest is an admission request for one owner.
type ReservationRequest struct {
	Name      string
	StartDate *datatypes.Date
	EndDate   *datatypes.Date
}

// ReservationEngine admits reservations whose window does not overlap any
// existing reservation of the same owner.
//
// The conflict check and the insert run under the owner's lock and inside
// one transaction that locks the owner's profile row, so two concurrent
// requests for one owner are decided one after the other.
type ReservationEngine struct {
	store    *store.Store
	profiles *ProfileManager
	locker   lock.Locker
}

func NewReservationEngine(st *store.Store, profiles *ProfileManager, locker lock.Locker) *ReservationEngine {
	if locker == nil {
		locker = lock.NewLocal()
	}
	return &ReservationEngine{store: st, profiles: profiles, locker: locker}
}

// CreateReservation decodes form and admits it for the caller.
func (e *ReservationEngine) CreateReservation(ctx context.Context, id *auth.Identity, form forms.ReservationForm) (*models.Reservation, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	decoded, err := forms.DecodeReservation(form)
	if err != nil {
		return nil, err
	}

	owner, err := e.profiles.GetOrCreateProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	return e.TryReserve(ctx, owner.ID, ReservationRequest{
		Name:      decoded.Name,
		StartDate: decoded.StartDate,
		EndDate:   decoded.EndDate,
	})
}

// TryReserve stores a reservation for ownerID unless its window overlaps an
// existing one. Exactly one reservation is written on success and none on
// any error.
func (e *ReservationEngine) TryReserve(ctx context.Context, ownerID string, req ReservationRequest) (*models.Reservation, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Invalid("name", "name required")
	}
	window := WindowFromDates(req.StartDate, req.EndDate)
	if !window.Valid() {
		return nil, apperr.Invalid("endDate", "endDate must not be before startDate")
	}

	unlock, err := e.locker.Lock(ctx, ownerID)
	if err != nil {
		return nil, apperr.Storage("lock owner "+ownerID, err)
	}
	defer unlock()

	var created *models.Reservation
	err = e.store.WithinOwner(ctx, ownerID, func(tx *store.Store) error {
		existing, err := tx.ListReservations(ctx, ownerID)
		if err != nil {
			return err
		}
		if overlaps := Overlapping(existing, window); len(overlaps) > 0 {
			return conflictError(overlaps)
		}

		resID, err := tx.AllocateID(ctx, ownerID, store.KindReservation)
		if err != nil {
			return err
		}
		r := &models.Reservation{
			ProfileID:       ownerID,
			ID:              resID,
			Name:            name,
			StartDate:       req.StartDate,
			EndDate:         req.EndDate,
			Month:           forms.MonthOf(req.StartDate),
			OrganizerUserID: ownerID,
		}
		if err := tx.InsertReservation(ctx, r); err != nil {
			return err
		}
		created = r
		return nil
	})

	logger := logging.FromContext(ctx)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, &apperr.AuthenticationError{Reason: "unknown owner " + ownerID}
		}
		var conflict *apperr.ConflictError
		if errors.As(err, &conflict) {
			logger.InfoContext(ctx, "reservation rejected", "user_id", ownerID, "conflicts", len(conflict.Conflicts))
		}
		return nil, err
	}

	logger.InfoContext(ctx, "reservation admitted", "user_id", ownerID, "reservation_id", created.ID)
	return created, nil
}

// ListReservations returns the caller's reservations, earliest first.
func (e *ReservationEngine) ListReservations(ctx context.Context, id *auth.Identity) ([]models.Reservation, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	return e.store.ListReservations(ctx, id.UserID)
}

func conflictError(overlaps []models.Reservation) *apperr.ConflictError {
	err := &apperr.ConflictError{Conflicts: make([]apperr.Conflict, 0, len(overlaps))}
	for i := range overlaps {
		r := &overlaps[i]
		err.Conflicts = append(err.Conflicts, apperr.Conflict{
			Key:       forms.ReservationKey(r),
			Name:      r.Name,
			StartDate: forms.FormatDate(r.StartDate),
			EndDate:   forms.FormatDate(r.EndDate),
		})
	}
	return err
}
