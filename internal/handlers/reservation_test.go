package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gdg-garage/conference-api/internal/forms"
)

func TestHandleCreateReservationOverlap(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	authInput := s.cookie(t, "42", "Ada")

	first, err := s.handlers.Reservation.HandleCreateReservation(ctx, &CreateReservationInput{
		AuthInput: authInput,
		Body:      forms.ReservationForm{Name: "Offsite", StartDate: "2024-06-01", EndDate: "2024-06-05"},
	})
	if err != nil {
		t.Fatalf("first reservation failed: %v", err)
	}
	if first.Body.OrganizerDisplayName != "Ada" || first.Body.Month != 6 || first.Body.WebsafeKey == "" {
		t.Errorf("unexpected reservation %+v", first.Body)
	}

	_, err = s.handlers.Reservation.HandleCreateReservation(ctx, &CreateReservationInput{
		AuthInput: authInput,
		Body:      forms.ReservationForm{Name: "Clash", StartDate: "2024-06-04", EndDate: "2024-06-10"},
	})
	model := expectStatus(t, err, http.StatusConflict)
	if len(model.Errors) != 1 || model.Errors[0].Location != first.Body.WebsafeKey {
		t.Errorf("expected one conflict detail for %s, got %+v", first.Body.WebsafeKey, model.Errors)
	}

	_, err = s.handlers.Reservation.HandleCreateReservation(ctx, &CreateReservationInput{
		AuthInput: authInput,
		Body:      forms.ReservationForm{Name: "Follow-up", StartDate: "2024-06-06", EndDate: "2024-06-10"},
	})
	if err != nil {
		t.Fatalf("non-overlapping reservation failed: %v", err)
	}

	list, err := s.handlers.Reservation.HandleListReservations(ctx, &ListReservationsInput{AuthInput: authInput})
	if err != nil {
		t.Fatalf("HandleListReservations failed: %v", err)
	}
	if len(list.Body.Items) != 2 {
		t.Errorf("expected 2 reservations, got %d", len(list.Body.Items))
	}
	if len(s.notifier.reservations) != 2 {
		t.Errorf("expected notifications only for admitted reservations, got %v", s.notifier.reservations)
	}
}

func TestHandleCreateReservationValidation(t *testing.T) {
	s := newTestServer(t)
	_, err := s.handlers.Reservation.HandleCreateReservation(context.Background(), &CreateReservationInput{
		AuthInput: s.cookie(t, "42", "Ada"),
		Body:      forms.ReservationForm{StartDate: "2024-06-01"},
	})
	model := expectStatus(t, err, http.StatusBadRequest)
	if model.Detail != "name required" {
		t.Errorf("unexpected detail %q", model.Detail)
	}
}
