package forms

import (
	"strings"

	"github.com/gdg-garage/conference-api/internal/apperr"
	"github.com/gdg-garage/conference-api/internal/models"
	"github.com/gdg-garage/conference-api/internal/store"
)

type ReservationForm struct {
	Name                 string `json:"name,omitempty" doc:"Name of the reserved item, required"`
	StartDate            string `json:"startDate,omitempty" doc:"First reserved day (inclusive), ISO-8601" example:"2024-06-01"`
	EndDate              string `json:"endDate,omitempty" doc:"Last reserved day (inclusive), ISO-8601" example:"2024-06-05"`
	Month                int    `json:"month,omitempty" readOnly:"true"`
	OrganizerUserID      string `json:"organizerUserId,omitempty" readOnly:"true"`
	WebsafeKey           string `json:"websafeKey,omitempty" readOnly:"true"`
	OrganizerDisplayName string `json:"organizerDisplayName,omitempty" readOnly:"true"`
}

var reservationFields = []field[models.Reservation, ReservationForm]{
	{
		name:   "name",
		encode: func(e *models.Reservation, f *ReservationForm) { f.Name = e.Name },
		decode: func(f *ReservationForm, e *models.Reservation, _ *apperr.ValidationError) {
			e.Name = strings.TrimSpace(f.Name)
		},
	},
	{
		name:   "startDate",
		encode: func(e *models.Reservation, f *ReservationForm) { f.StartDate = FormatDate(e.StartDate) },
		decode: func(f *ReservationForm, e *models.Reservation, v *apperr.ValidationError) {
			e.StartDate = decodeDate("startDate", f.StartDate, v)
		},
	},
	{
		name:   "endDate",
		encode: func(e *models.Reservation, f *ReservationForm) { f.EndDate = FormatDate(e.EndDate) },
		decode: func(f *ReservationForm, e *models.Reservation, v *apperr.ValidationError) {
			e.EndDate = decodeDate("endDate", f.EndDate, v)
		},
	},
	{
		name:   "month",
		encode: func(e *models.Reservation, f *ReservationForm) { f.Month = e.Month },
	},
	{
		name:   "organizerUserId",
		encode: func(e *models.Reservation, f *ReservationForm) { f.OrganizerUserID = e.OrganizerUserID },
	},
	{
		name: "websafeKey",
		encode: func(e *models.Reservation, f *ReservationForm) {
			f.WebsafeKey = ReservationKey(e)
		},
	},
}

// DecodeReservation reads the name and window of a reservation request.
func DecodeReservation(f ReservationForm) (*models.Reservation, error) {
	var r models.Reservation
	v := decodeAll(reservationFields, &f, &r)

	if r.Name == "" {
		v.Add("name", "name required")
	}
	checkOrder(r.StartDate, r.EndDate, v)
	r.Month = MonthOf(r.StartDate)

	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return &r, nil
}

func EncodeReservation(r *models.Reservation, displayName string) ReservationForm {
	var f ReservationForm
	encodeAll(reservationFields, r, &f)
	f.OrganizerDisplayName = displayName
	return f
}

// ReservationKey returns the opaque token of a stored reservation.
func ReservationKey(r *models.Reservation) string {
	return store.Key{Kind: store.KindReservation, ProfileID: r.ProfileID, ID: r.ID}.Encode()
}
