package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/conference-api/internal/auth"
	"github.com/gdg-garage/conference-api/internal/models"
	"github.com/gdg-garage/conference-api/internal/service"
	"github.com/gdg-garage/conference-api/internal/store"
)

type APIKeyHandler struct {
	store       *store.Store
	profiles    *service.ProfileManager
	authHandler *auth.AuthHandler
}

func NewAPIKeyHandler(st *store.Store, profiles *service.ProfileManager, authHandler *auth.AuthHandler) *APIKeyHandler {
	return &APIKeyHandler{store: st, profiles: profiles, authHandler: authHandler}
}

type CreateAPIKeyInput struct {
	auth.AuthInput
	Body struct {
		Name      string     `json:"name"`
		ExpiresAt *time.Time `json:"expires_at,omitempty"`
	}
}

type APIKeyResponse struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Key        string     `json:"key"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}

type CreateAPIKeyOutput struct {
	Body APIKeyResponse
}

// HandleCreate issues a new key. The raw key is only ever returned here;
// the store keeps its hash and a short hint.
func (h *APIKeyHandler) HandleCreate(ctx context.Context, input *CreateAPIKeyInput) (*CreateAPIKeyOutput, error) {
	id, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(ctx, err)
	}
	owner, err := h.profiles.GetOrCreateProfile(ctx, id)
	if err != nil {
		return nil, httpError(ctx, err)
	}

	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate key")
	}
	key := hex.EncodeToString(keyBytes)

	apiKey := models.APIKey{
		ProfileID: owner.ID,
		KeyHash:   auth.HashAPIKey(key),
		Hint:      "..." + key[len(key)-4:],
		Name:      strings.TrimSpace(input.Body.Name),
		ExpiresAt: input.Body.ExpiresAt,
	}
	if err := h.store.InsertAPIKey(ctx, &apiKey); err != nil {
		return nil, httpError(ctx, err)
	}

	resp := toAPIKeyResponse(apiKey)
	resp.Key = key
	return &CreateAPIKeyOutput{Body: resp}, nil
}

type ListAPIKeysInput struct {
	auth.AuthInput
}

type ListAPIKeysOutput struct {
	Body []APIKeyResponse
}

func (h *APIKeyHandler) HandleList(ctx context.Context, input *ListAPIKeysInput) (*ListAPIKeysOutput, error) {
	id, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(ctx, err)
	}

	apiKeys, err := h.store.ListAPIKeys(ctx, id.UserID)
	if err != nil {
		return nil, httpError(ctx, err)
	}

	response := make([]APIKeyResponse, 0, len(apiKeys))
	for _, k := range apiKeys {
		response = append(response, toAPIKeyResponse(k))
	}
	return &ListAPIKeysOutput{Body: response}, nil
}

type DeleteAPIKeyInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *APIKeyHandler) HandleDelete(ctx context.Context, input *DeleteAPIKeyInput) (*struct{}, error) {
	id, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, httpError(ctx, err)
	}

	if err := h.store.DeleteAPIKey(ctx, id.UserID, input.ID); err != nil {
		return nil, httpError(ctx, err)
	}
	return nil, nil
}

func toAPIKeyResponse(k models.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:         k.ID,
		Name:       k.Name,
		Key:        k.Hint,
		CreatedAt:  k.CreatedAt,
		ExpiresAt:  k.ExpiresAt,
		LastUsedAt: k.LastUsedAt,
	}
}
