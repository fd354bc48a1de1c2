package forms

import (
	"strings"

	"github.com/gdg-garage/conference-api/internal/apperr"
	"github.com/gdg-garage/conference-api/internal/models"
)

type ProfileForm struct {
	DisplayName            string   `json:"displayName"`
	MainEmail              string   `json:"mainEmail"`
	TeeShirtSize           string   `json:"teeShirtSize" enum:"NOT_SPECIFIED,XS_M,XS_W,S_M,S_W,M_M,M_W,L_M,L_W,XL_M,XL_W,XXL_M,XXL_W,XXXL_M,XXXL_W"`
	ConferenceKeysToAttend []string `json:"conferenceKeysToAttend"`
}

// ProfileMiniForm carries the fields a user may edit on their own profile.
type ProfileMiniForm struct {
	DisplayName  string `json:"displayName,omitempty"`
	TeeShirtSize string `json:"teeShirtSize,omitempty" doc:"One of NOT_SPECIFIED, XS_M, XS_W, S_M, S_W, M_M, M_W, L_M, L_W, XL_M, XL_W, XXL_M, XXL_W, XXXL_M, XXXL_W"`
}

var profileFields = []field[models.Profile, ProfileForm]{
	{
		name:   "displayName",
		encode: func(e *models.Profile, f *ProfileForm) { f.DisplayName = e.DisplayName },
	},
	{
		name:   "mainEmail",
		encode: func(e *models.Profile, f *ProfileForm) { f.MainEmail = e.MainEmail },
	},
	{
		name: "teeShirtSize",
		encode: func(e *models.Profile, f *ProfileForm) {
			size, ok := ResolveTeeShirtSize(string(e.TeeShirtSize))
			if !ok {
				size = models.TeeShirtNotSpecified
			}
			f.TeeShirtSize = string(size)
		},
	},
	{
		name: "conferenceKeysToAttend",
		encode: func(e *models.Profile, f *ProfileForm) {
			f.ConferenceKeysToAttend = append([]string{}, e.ConferenceKeysToAttend...)
		},
	},
}

// Empty values and NOT_SPECIFIED mean "leave unchanged", so the decoded
// edits only carry fields the caller actually set.
var profileEditFields = []field[models.Profile, ProfileMiniForm]{
	{
		name:   "displayName",
		encode: func(e *models.Profile, f *ProfileMiniForm) { f.DisplayName = e.DisplayName },
		decode: func(f *ProfileMiniForm, e *models.Profile, _ *apperr.ValidationError) {
			e.DisplayName = strings.TrimSpace(f.DisplayName)
		},
	},
	{
		name:   "teeShirtSize",
		encode: func(e *models.Profile, f *ProfileMiniForm) { f.TeeShirtSize = string(e.TeeShirtSize) },
		decode: func(f *ProfileMiniForm, e *models.Profile, v *apperr.ValidationError) {
			if strings.TrimSpace(f.TeeShirtSize) == "" {
				return
			}
			size, ok := ResolveTeeShirtSize(f.TeeShirtSize)
			if !ok {
				v.Add("teeShirtSize", "teeShirtSize "+f.TeeShirtSize+" is not a known size")
				return
			}
			if size != models.TeeShirtNotSpecified {
				e.TeeShirtSize = size
			}
		},
	},
}

// ResolveTeeShirtSize maps a size name onto the enumeration.
func ResolveTeeShirtSize(s string) (models.TeeShirtSize, bool) {
	if s == "" {
		return models.TeeShirtNotSpecified, true
	}
	want := models.TeeShirtSize(strings.ToUpper(strings.TrimSpace(s)))
	for _, size := range models.TeeShirtSizes {
		if size == want {
			return size, true
		}
	}
	return "", false
}

func EncodeProfile(p *models.Profile) ProfileForm {
	var f ProfileForm
	encodeAll(profileFields, p, &f)
	return f
}

// DecodeProfileEdits returns a Profile holding only the edited fields.
func DecodeProfileEdits(f ProfileMiniForm) (models.Profile, error) {
	var edits models.Profile
	if err := decodeAll(profileEditFields, &f, &edits).OrNil(); err != nil {
		return models.Profile{}, err
	}
	return edits, nil
}

// GreetingForm is the acknowledgement returned by the upload stub.
type GreetingForm struct {
	Name string `json:"name"`
}
