package forms

import (
	"strings"

	"github.com/gdg-garage/conference-api/internal/apperr"
	"github.com/gdg-garage/conference-api/internal/models"
	"github.com/gdg-garage/conference-api/internal/store"
	"gorm.io/datatypes"
)

// ConferenceForm is the wire shape of a conference, inbound and outbound.
type ConferenceForm struct {
	Name                 string   `json:"name,omitempty" doc:"Conference name, required on create"`
	Description          string   `json:"description,omitempty"`
	OrganizerUserID      string   `json:"organizerUserId,omitempty" readOnly:"true"`
	Topics               []string `json:"topics,omitempty" doc:"Defaults to [\"Default\", \"Topic\"]"`
	City                 string   `json:"city,omitempty" doc:"Defaults to \"Default City\""`
	StartDate            string   `json:"startDate,omitempty" doc:"ISO-8601 date, only YYYY-MM-DD is read" example:"2024-06-01"`
	Month                int      `json:"month,omitempty" readOnly:"true"`
	MaxAttendees         *int     `json:"maxAttendees,omitempty"`
	SeatsAvailable       *int     `json:"seatsAvailable,omitempty"`
	EndDate              string   `json:"endDate,omitempty" doc:"ISO-8601 date, only YYYY-MM-DD is read" example:"2024-06-03"`
	WebsafeKey           string   `json:"websafeKey,omitempty" readOnly:"true"`
	OrganizerDisplayName string   `json:"organizerDisplayName,omitempty" readOnly:"true"`
}

// organizerDisplayName lives on the Profile, so it is attached by
// EncodeConference rather than by a table row.
var conferenceFields = []field[models.Conference, ConferenceForm]{
	{
		name:   "name",
		encode: func(e *models.Conference, f *ConferenceForm) { f.Name = e.Name },
		decode: func(f *ConferenceForm, e *models.Conference, _ *apperr.ValidationError) {
			e.Name = strings.TrimSpace(f.Name)
		},
	},
	{
		name:   "description",
		encode: func(e *models.Conference, f *ConferenceForm) { f.Description = e.Description },
		decode: func(f *ConferenceForm, e *models.Conference, _ *apperr.ValidationError) { e.Description = f.Description },
	},
	{
		name:   "organizerUserId",
		encode: func(e *models.Conference, f *ConferenceForm) { f.OrganizerUserID = e.OrganizerUserID },
	},
	{
		name:   "topics",
		encode: func(e *models.Conference, f *ConferenceForm) { f.Topics = append([]string(nil), e.Topics...) },
		decode: func(f *ConferenceForm, e *models.Conference, _ *apperr.ValidationError) {
			e.Topics = datatypes.JSONSlice[string](append([]string(nil), f.Topics...))
		},
	},
	{
		name:   "city",
		encode: func(e *models.Conference, f *ConferenceForm) { f.City = e.City },
		decode: func(f *ConferenceForm, e *models.Conference, _ *apperr.ValidationError) { e.City = f.City },
	},
	{
		name:   "startDate",
		encode: func(e *models.Conference, f *ConferenceForm) { f.StartDate = FormatDate(e.StartDate) },
		decode: func(f *ConferenceForm, e *models.Conference, v *apperr.ValidationError) {
			e.StartDate = decodeDate("startDate", f.StartDate, v)
		},
	},
	{
		name:   "month",
		encode: func(e *models.Conference, f *ConferenceForm) { f.Month = e.Month },
	},
	{
		name:   "maxAttendees",
		encode: func(e *models.Conference, f *ConferenceForm) { f.MaxAttendees = intPtr(e.MaxAttendees) },
		decode: func(f *ConferenceForm, e *models.Conference, _ *apperr.ValidationError) {
			if f.MaxAttendees != nil {
				e.MaxAttendees = *f.MaxAttendees
			}
		},
	},
	{
		name:   "seatsAvailable",
		encode: func(e *models.Conference, f *ConferenceForm) { f.SeatsAvailable = intPtr(e.SeatsAvailable) },
		decode: func(f *ConferenceForm, e *models.Conference, _ *apperr.ValidationError) {
			if f.SeatsAvailable != nil {
				e.SeatsAvailable = *f.SeatsAvailable
			}
		},
	},
	{
		name:   "endDate",
		encode: func(e *models.Conference, f *ConferenceForm) { f.EndDate = FormatDate(e.EndDate) },
		decode: func(f *ConferenceForm, e *models.Conference, v *apperr.ValidationError) {
			e.EndDate = decodeDate("endDate", f.EndDate, v)
		},
	},
	{
		name: "websafeKey",
		encode: func(e *models.Conference, f *ConferenceForm) {
			f.WebsafeKey = store.Key{Kind: store.KindConference, ProfileID: e.ProfileID, ID: e.ID}.Encode()
		},
	},
}

// DecodeConference turns a create request into an unsaved Conference with
// defaults applied and derived fields computed. Key, owner and organizer
// are left for the caller.
func DecodeConference(f ConferenceForm) (*models.Conference, error) {
	applyDefaults(conferenceDefaults, &f)

	var c models.Conference
	v := decodeAll(conferenceFields, &f, &c)

	c.Month = MonthOf(c.StartDate)
	if c.MaxAttendees > 0 {
		c.SeatsAvailable = c.MaxAttendees
	}

	if c.Name == "" {
		v.Add("name", "Conference 'name' field required")
	}
	if c.MaxAttendees < 0 {
		v.Add("maxAttendees", "maxAttendees must not be negative")
	}
	if c.SeatsAvailable < 0 || c.SeatsAvailable > c.MaxAttendees {
		v.Add("seatsAvailable", "seatsAvailable must be between 0 and maxAttendees")
	}
	checkOrder(c.StartDate, c.EndDate, v)

	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return &c, nil
}

// EncodeConference renders a stored conference. displayName is the
// organizer's profile display name and may be empty.
func EncodeConference(c *models.Conference, displayName string) ConferenceForm {
	var f ConferenceForm
	encodeAll(conferenceFields, c, &f)
	f.OrganizerDisplayName = displayName
	return f
}
