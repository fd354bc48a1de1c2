package store

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/gdg-garage/conference-api/internal/apperr"
)

const (
	KindConference  = "Conference"
	KindReservation = "Reservation"
)

// Key addresses a child entity under its owning Profile.
type Key struct {
	Kind      string
	ProfileID string
	ID        int64
}

// Encode returns the URL-safe opaque token for k. The profile id goes last
// so it may contain any character.
func (k Key) Encode() string {
	raw := k.Kind + "/" + strconv.FormatInt(k.ID, 10) + "/" + k.ProfileID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeKey parses a token produced by Key.Encode.
func DecodeKey(token string) (Key, error) {
	malformed := apperr.Invalid("websafeKey", "websafeKey is malformed")

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Key{}, malformed
	}
	parts := strings.SplitN(string(raw), "/", 3)
	if len(parts) != 3 || parts[2] == "" {
		return Key{}, malformed
	}
	switch parts[0] {
	case KindConference, KindReservation:
	default:
		return Key{}, malformed
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return Key{}, malformed
	}
	return Key{Kind: parts[0], ProfileID: parts[2], ID: id}, nil
}
