package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/conference-api/internal/auth"
	"github.com/gdg-garage/conference-api/internal/config"
	"github.com/gdg-garage/conference-api/internal/database"
	"github.com/gdg-garage/conference-api/internal/lock"
	"github.com/gdg-garage/conference-api/internal/models"
	"github.com/gdg-garage/conference-api/internal/service"
	"github.com/gdg-garage/conference-api/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	conferences  []string
	reservations []string
	err          error
}

func (r *recordingNotifier) NotifyConference(_ context.Context, _ *models.Profile, conf *models.Conference) error {
	r.conferences = append(r.conferences, conf.Name)
	return r.err
}

func (r *recordingNotifier) NotifyReservation(_ context.Context, _ *models.Profile, res *models.Reservation) error {
	r.reservations = append(r.reservations, res.Name)
	return r.err
}

type testServer struct {
	store    *store.Store
	auth     *auth.AuthHandler
	notifier *recordingNotifier
	handlers Handlers
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	st := store.New(db)
	authHandler := auth.NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, st)
	profiles := service.NewProfileManager(st)
	n := &recordingNotifier{}

	return &testServer{
		store:    st,
		auth:     authHandler,
		notifier: n,
		handlers: Handlers{
			Auth:        authHandler,
			Profile:     NewProfileHandler(authHandler, profiles),
			Conference:  NewConferenceHandler(authHandler, profiles, service.NewConferenceManager(st, profiles), n),
			Reservation: NewReservationHandler(authHandler, profiles, service.NewReservationEngine(st, profiles, lock.NewLocal()), n),
			APIKey:      NewAPIKeyHandler(st, profiles, authHandler),
		},
	}
}

// cookie returns an AuthInput carrying a session for userID.
func (s *testServer) cookie(t *testing.T, userID, name string) auth.AuthInput {
	t.Helper()
	token, err := s.auth.GenerateToken(&auth.Identity{UserID: userID, DisplayName: name, Email: userID + "@example.com"})
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	return auth.AuthInput{Cookie: auth.CookieName + "=" + token}
}

func expectStatus(t *testing.T, err error, status int) *huma.ErrorModel {
	t.Helper()
	var model *huma.ErrorModel
	if !errors.As(err, &model) {
		t.Fatalf("expected huma error with status %d, got %v", status, err)
	}
	if model.Status != status {
		t.Fatalf("expected status %d, got %d (%s)", status, model.Status, model.Detail)
	}
	return model
}
