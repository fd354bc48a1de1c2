package forms

const DefaultCity = "Default City"

// DefaultTopics returns a fresh copy of the topics given to conferences
// created without any.
func DefaultTopics() []string { return []string{"Default", "Topic"} }

// fieldDefault substitutes a value into a form field that was left out.
type fieldDefault[F any] struct {
	missing func(f *F) bool
	apply   func(f *F)
}

// conferenceDefaults is the single table of defaults for conference forms,
// keyed by wire field name.
var conferenceDefaults = map[string]fieldDefault[ConferenceForm]{
	"city": {
		missing: func(f *ConferenceForm) bool { return f.City == "" },
		apply:   func(f *ConferenceForm) { f.City = DefaultCity },
	},
	"maxAttendees": {
		missing: func(f *ConferenceForm) bool { return f.MaxAttendees == nil },
		apply:   func(f *ConferenceForm) { f.MaxAttendees = intPtr(0) },
	},
	"seatsAvailable": {
		missing: func(f *ConferenceForm) bool { return f.SeatsAvailable == nil },
		apply:   func(f *ConferenceForm) { f.SeatsAvailable = intPtr(0) },
	},
	"topics": {
		missing: func(f *ConferenceForm) bool { return len(f.Topics) == 0 },
		apply:   func(f *ConferenceForm) { f.Topics = DefaultTopics() },
	},
}

func applyDefaults[F any](table map[string]fieldDefault[F], f *F) {
	for _, d := range table {
		if d.missing(f) {
			d.apply(f)
		}
	}
}

func intPtr(n int) *int { return &n }
