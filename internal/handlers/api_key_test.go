package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestAPIKeyLifecycle(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	authInput := s.cookie(t, "42", "Ada")

	createInput := &CreateAPIKeyInput{AuthInput: authInput}
	createInput.Body.Name = "ci"
	created, err := s.handlers.APIKey.HandleCreate(ctx, createInput)
	if err != nil {
		t.Fatalf("HandleCreate failed: %v", err)
	}
	rawKey := created.Body.Key
	if len(rawKey) != 64 {
		t.Fatalf("expected 64 hex chars, got %q", rawKey)
	}

	// The raw key authenticates on its own.
	byKey := GetProfileInput{}
	byKey.APIKey = rawKey
	profile, err := s.handlers.Profile.HandleGetProfile(ctx, &byKey)
	if err != nil {
		t.Fatalf("API key authentication failed: %v", err)
	}
	if profile.Body.DisplayName != "Ada" {
		t.Errorf("expected key owner profile, got %+v", profile.Body)
	}

	list, err := s.handlers.APIKey.HandleList(ctx, &ListAPIKeysInput{AuthInput: authInput})
	if err != nil {
		t.Fatalf("HandleList failed: %v", err)
	}
	if len(list.Body) != 1 {
		t.Fatalf("expected 1 key, got %d", len(list.Body))
	}
	if list.Body[0].Key == rawKey || !strings.HasSuffix(rawKey, strings.TrimPrefix(list.Body[0].Key, "...")) {
		t.Errorf("expected masked hint, got %q", list.Body[0].Key)
	}
	if list.Body[0].LastUsedAt == nil {
		t.Error("expected last_used_at after use")
	}

	// Another user cannot delete it.
	_, err = s.handlers.APIKey.HandleDelete(ctx, &DeleteAPIKeyInput{AuthInput: s.cookie(t, "7", "Bob"), ID: created.Body.ID})
	expectStatus(t, err, http.StatusNotFound)

	if _, err := s.handlers.APIKey.HandleDelete(ctx, &DeleteAPIKeyInput{AuthInput: authInput, ID: created.Body.ID}); err != nil {
		t.Fatalf("HandleDelete failed: %v", err)
	}
	_, err = s.handlers.Profile.HandleGetProfile(ctx, &byKey)
	expectStatus(t, err, http.StatusUnauthorized)
}
