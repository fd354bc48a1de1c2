package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/conference-api/internal/auth"
	"github.com/gdg-garage/conference-api/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Auth        *auth.AuthHandler
	Profile     *ProfileHandler
	Conference  *ConferenceHandler
	Reservation *ReservationHandler
	APIKey      *APIKeyHandler
	Logger      *slog.Logger
}

var security = []map[string][]string{{"cookieAuth": {}}, {"apiKeyAuth": {}}}

func secured(o *huma.Operation) {
	o.Security = security
}

func RegisterRoutes(r *chi.Mux, h Handlers) huma.API {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if h.Logger != nil {
		r.Use(requestLogger(h.Logger))
	}

	// Initialize Huma API
	config := huma.DefaultConfig("Conference API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
		"apiKeyAuth": {
			Type: "apiKey",
			In:   "header",
			Name: auth.APIKeyHeader,
		},
	}
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	r.Get("/auth/discord/login", h.Auth.HandleLogin)
	r.Get("/auth/discord/callback", h.Auth.HandleCallback)

	r.Group(func(r chi.Router) {
		r.Use(h.Auth.AuthMiddleware)
		r.Post("/file", HandleUploadFile)
	})

	huma.Get(api, "/profile", h.Profile.HandleGetProfile, secured)
	huma.Post(api, "/profile", h.Profile.HandleSaveProfile, secured)

	huma.Post(api, "/conference", h.Conference.HandleCreateConference, secured)
	huma.Get(api, "/conferences", h.Conference.HandleListConferences, secured)
	huma.Get(api, "/conference/{websafeKey}", h.Conference.HandleGetConference, secured)

	huma.Post(api, "/reservation", h.Reservation.HandleCreateReservation, secured)
	huma.Get(api, "/reservations", h.Reservation.HandleListReservations, secured)

	huma.Post(api, "/api-keys", h.APIKey.HandleCreate, secured)
	huma.Get(api, "/api-keys", h.APIKey.HandleList, secured)
	huma.Delete(api, "/api-keys/{id}", h.APIKey.HandleDelete, secured)

	return api
}

// requestLogger attaches base, tagged with the chi request id, to every
// request context.
func requestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base.With("request_id", middleware.GetReqID(r.Context()))
			next.ServeHTTP(w, r.WithContext(logging.ContextWithLogger(r.Context(), logger)))
		})
	}
}
