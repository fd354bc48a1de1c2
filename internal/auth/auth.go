package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gdg-garage/conference-api/internal/apperr"
	"github.com/gdg-garage/conference-api/internal/config"
	"github.com/gdg-garage/conference-api/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	DiscordAuthorizeEndpoint = "https://discord.com/api/oauth2/authorize"
	DiscordTokenEndpoint     = "https://discord.com/api/oauth2/token"
	DiscordUserAPI           = "https://discord.com/api/users/@me"
	DiscordUserGuildsAPI     = "https://discord.com/api/users/@me/guilds"

	CookieName   = "auth_token"
	APIKeyHeader = "X-API-KEY"
)

// TokenDuration is the lifetime of a session token.
const TokenDuration = 24 * time.Hour

type AuthHandler struct {
	oauthConfig *oauth2.Config
	store       *store.Store
	cfg         *config.Config
	now         func() time.Time
}

func NewAuthHandler(cfg *config.Config, st *store.Store) *AuthHandler {
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURL,
			Scopes:       []string{"identify", "email", "guilds"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  DiscordAuthorizeEndpoint,
				TokenURL: DiscordTokenEndpoint,
			},
		},
		store: st,
		cfg:   cfg,
		now:   time.Now,
	}
}

// AuthInput is embedded in every authenticated huma operation input.
type AuthInput struct {
	Cookie string `header:"Cookie" doc:"Session cookie (auth_token)"`
	APIKey string `header:"X-API-KEY" doc:"API key, takes precedence over the cookie"`
}

type sessionClaims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	url := h.oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOnline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Code not found", http.StatusBadRequest)
		return
	}

	token, err := h.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		http.Error(w, "Failed to exchange token", http.StatusInternalServerError)
		return
	}

	client := h.oauthConfig.Client(r.Context(), token)

	if h.cfg.DiscordGuildID != "" {
		guildsResp, err := client.Get(DiscordUserGuildsAPI)
		if err != nil {
			http.Error(w, "Failed to get user guilds", http.StatusInternalServerError)
			return
		}
		defer guildsResp.Body.Close()

		var guilds []struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(guildsResp.Body).Decode(&guilds); err != nil {
			http.Error(w, "Failed to decode user guilds", http.StatusInternalServerError)
			return
		}

		isMember := false
		for _, g := range guilds {
			if g.ID == h.cfg.DiscordGuildID {
				isMember = true
				break
			}
		}

		if !isMember {
			http.Error(w, "Access denied: You are not a member of the required guild.", http.StatusForbidden)
			return
		}
	}

	resp, err := client.Get(DiscordUserAPI)
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	var discordUser struct {
		ID         string `json:"id"`
		Username   string `json:"username"`
		GlobalName string `json:"global_name"`
		Email      string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&discordUser); err != nil {
		http.Error(w, "Failed to decode user info", http.StatusInternalServerError)
		return
	}

	id := &Identity{UserID: discordUser.ID, DisplayName: discordUser.GlobalName, Email: discordUser.Email}
	if id.DisplayName == "" {
		id.DisplayName = discordUser.Username
	}

	jwtToken, err := h.GenerateToken(id)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, jwtToken)
	slog.InfoContext(r.Context(), "user logged in", "user_id", id.UserID)

	if h.cfg.FrontendURL != "" {
		http.Redirect(w, r, h.cfg.FrontendURL, http.StatusFound)
		return
	}
	w.Write([]byte(fmt.Sprintf("Welcome %s! You are logged in.", id.DisplayName)))
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  h.now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
	})
}

func (h *AuthHandler) GenerateToken(id *Identity) (string, error) {
	now := h.now()
	claims := sessionClaims{
		Name:  id.DisplayName,
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// parseToken validates a session token and returns its identity and expiry.
func (h *AuthHandler) parseToken(raw string) (*Identity, time.Time, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(h.now))
	if err != nil || !token.Valid {
		return nil, time.Time{}, &apperr.AuthenticationError{Reason: "invalid token"}
	}
	if claims.Subject == "" {
		return nil, time.Time{}, &apperr.AuthenticationError{Reason: "invalid token claims"}
	}
	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return &Identity{UserID: claims.Subject, DisplayName: claims.Name, Email: claims.Email}, exp, nil
}

// Authorize resolves the caller from an API key or, failing that, from the
// session cookie carried in the raw Cookie header.
func (h *AuthHandler) Authorize(ctx context.Context, input AuthInput) (*Identity, error) {
	if input.APIKey != "" {
		return h.authorizeAPIKey(ctx, input.APIKey)
	}

	if input.Cookie == "" {
		return nil, &apperr.AuthenticationError{Reason: "no token found"}
	}
	cookies, err := http.ParseCookie(input.Cookie)
	if err != nil {
		return nil, &apperr.AuthenticationError{Reason: "malformed cookie header"}
	}
	for _, c := range cookies {
		if c.Name == CookieName {
			id, _, err := h.parseToken(c.Value)
			return id, err
		}
	}
	return nil, &apperr.AuthenticationError{Reason: "no token found"}
}

func (h *AuthHandler) authorizeAPIKey(ctx context.Context, raw string) (*Identity, error) {
	if h.store == nil {
		return nil, &apperr.AuthenticationError{Reason: "API keys are not enabled"}
	}
	key, err := h.store.FindAPIKey(ctx, HashAPIKey(raw), h.now())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, &apperr.AuthenticationError{Reason: "unknown API key"}
		}
		return nil, err
	}
	if key.ExpiresAt != nil && h.now().After(*key.ExpiresAt) {
		return nil, &apperr.AuthenticationError{Reason: "API key expired"}
	}

	profile, err := h.store.GetProfile(ctx, key.ProfileID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, &apperr.AuthenticationError{Reason: "API key owner no longer exists"}
		}
		return nil, err
	}
	return &Identity{UserID: profile.ID, DisplayName: profile.DisplayName, Email: profile.MainEmail}, nil
}

// HashAPIKey is the value stored for a raw API key.
func HashAPIKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
