package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

const (
	FlowNone   = ""
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
)

const (
	MoodNone      = ""
	MoodHappy     = "happy"
	MoodNeutral   = "neutral"
	MoodSad       = "sad"
	MoodSensitive = "sensitive"
	MoodIrritated = "irritated"
)

// CycleDay is one recorded calendar day. Flow is empty whenever
// Menstruation is false. Symptoms keep insertion order and hold no
// duplicates.
type CycleDay struct {
	Date         time.Time `json:"date"`
	Menstruation bool      `json:"menstruation"`
	Flow         string    `json:"flow,omitempty"`
	Mood         string    `json:"mood,omitempty"`
	Symptoms     []string  `json:"symptoms,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

// Cycle runs from the first menstruation day to the day before the next
// cycle starts. EndDate is zero while the cycle is open; Days stays sorted
// ascending and unique per calendar date.
type Cycle struct {
	ID           string     `json:"id"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date,omitempty"`
	Days         []CycleDay `json:"days"`
	PeriodLength int        `json:"period_length"`
}

// Snapshot is the full in-memory history for one user.
type Snapshot struct {
	Cycles              []Cycle   `json:"cycles"`
	AverageCycleLength  int       `json:"average_cycle_length"`
	AveragePeriodLength int       `json:"average_period_length"`
	LastUpdated         time.Time `json:"last_updated"`
}

func DefaultSnapshot() Snapshot {
	return Snapshot{
		Cycles:              []Cycle{},
		AverageCycleLength:  DefaultCycleLength,
		AveragePeriodLength: DefaultPeriodLength,
	}
}

func IsValidFlow(flow string) bool {
	switch flow {
	case FlowNone, FlowLight, FlowMedium, FlowHeavy:
		return true
	default:
		return false
	}
}

func IsValidMood(mood string) bool {
	switch mood {
	case MoodNone, MoodHappy, MoodNeutral, MoodSad, MoodSensitive, MoodIrritated:
		return true
	default:
		return false
	}
}

// DefaultSymptoms lists the suggestions offered to clients; days accept any
// free-text label.
func DefaultSymptoms() []string {
	return []string{
		"cramps",
		"headache",
		"fatigue",
		"bloating",
		"backache",
		"tender breasts",
		"acne",
		"insomnia",
		"nausea",
		"cravings",
	}
}
