package service

import (
	"context"
	"testing"

	"github.com/gdg-garage/conference-api/internal/auth"
	"github.com/gdg-garage/conference-api/internal/database"
	"github.com/gdg-garage/conference-api/internal/forms"
	"github.com/gdg-garage/conference-api/internal/lock"
	"github.com/gdg-garage/conference-api/internal/store"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	store       *store.Store
	profiles    *ProfileManager
	conferences *ConferenceManager
	engine      *ReservationEngine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	st := store.New(db)
	profiles := NewProfileManager(st)
	return &testEnv{
		store:       st,
		profiles:    profiles,
		conferences: NewConferenceManager(st, profiles),
		engine:      NewReservationEngine(st, profiles, lock.NewLocal()),
	}
}

func identity(userID string) *auth.Identity {
	return &auth.Identity{UserID: userID, DisplayName: "User " + userID, Email: userID + "@example.com"}
}

func mustDate(t *testing.T, s string) *datatypes.Date {
	t.Helper()
	d, err := forms.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func (env *testEnv) reservationCount(t *testing.T, owner string) int64 {
	t.Helper()
	n, err := env.store.CountReservations(context.Background(), owner)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}
