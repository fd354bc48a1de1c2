package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gdg-garage/conference-api/internal/auth"
	"github.com/gdg-garage/conference-api/internal/forms"
	"github.com/gdg-garage/conference-api/internal/logging"
)

const maxUploadBytes = 10 << 20

// HandleUploadFile accepts a file upload and acknowledges it. The content
// is discarded.
func HandleUploadFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := auth.IdentityFromContext(ctx)
	if id == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	n, err := io.Copy(io.Discard, http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		http.Error(w, "Upload too large", http.StatusRequestEntityTooLarge)
		return
	}
	logging.FromContext(ctx).InfoContext(ctx, "file upload acknowledged", "user_id", id.UserID, "bytes", n)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(forms.GreetingForm{Name: "Hola"})
}
