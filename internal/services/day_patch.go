package services

import (
	"errors"
	"strings"

	"github.com/Vasist2305/period-pal-blossom-bloom/internal/models"
)

const MaxDayNotesLength = 2000

var (
	ErrInvalidDayFlow = errors.New("invalid day flow")
	ErrInvalidDayMood = errors.New("invalid day mood")
	ErrEmptyDayPatch  = errors.New("empty day patch")
)

// DayPatch is a partial edit to one calendar day. Nil fields are untouched;
// set fields replace the previous value. Symptoms are edited as a set via
// explicit add/remove, never overwritten wholesale.
type DayPatch struct {
	Menstruation   *bool
	Flow           *string
	Mood           *string
	Notes          *string
	AddSymptoms    []string
	RemoveSymptoms []string
}

func (patch DayPatch) IsEmpty() bool {
	return patch.Menstruation == nil &&
		patch.Flow == nil &&
		patch.Mood == nil &&
		patch.Notes == nil &&
		len(patch.AddSymptoms) == 0 &&
		len(patch.RemoveSymptoms) == 0
}

// StartsMenstruation reports whether the patch turns menstruation on, which
// is what allows a new cycle to be created for an uncovered date.
func (patch DayPatch) StartsMenstruation() bool {
	return patch.Menstruation != nil && *patch.Menstruation
}

func (patch DayPatch) Validate() error {
	if patch.IsEmpty() {
		return ErrEmptyDayPatch
	}
	if patch.Flow != nil && !models.IsValidFlow(*patch.Flow) {
		return ErrInvalidDayFlow
	}
	if patch.Mood != nil && !models.IsValidMood(*patch.Mood) {
		return ErrInvalidDayMood
	}
	return nil
}

// ApplyDayPatch merges a patch into an observation. Toggling menstruation
// off clears the flow; toggling it on without an explicit flow defaults to
// medium. Symptom additions keep insertion order and skip duplicates.
func ApplyDayPatch(day models.CycleDay, patch DayPatch) models.CycleDay {
	if patch.Menstruation != nil {
		day.Menstruation = *patch.Menstruation
		if !day.Menstruation {
			day.Flow = models.FlowNone
		} else if day.Flow == models.FlowNone && patch.Flow == nil {
			day.Flow = models.FlowMedium
		}
	}
	if patch.Flow != nil {
		day.Flow = *patch.Flow
	}
	if patch.Mood != nil {
		day.Mood = *patch.Mood
	}
	if patch.Notes != nil {
		day.Notes = TrimDayNotes(*patch.Notes)
	}
	for _, symptom := range patch.AddSymptoms {
		day.Symptoms = addSymptom(day.Symptoms, symptom)
	}
	for _, symptom := range patch.RemoveSymptoms {
		day.Symptoms = removeSymptom(day.Symptoms, symptom)
	}
	return day
}

func TrimDayNotes(value string) string {
	if len(value) <= MaxDayNotesLength {
		return value
	}
	return value[:MaxDayNotesLength]
}

func addSymptom(symptoms []string, symptom string) []string {
	symptom = strings.TrimSpace(symptom)
	if symptom == "" {
		return symptoms
	}
	for _, existing := range symptoms {
		if strings.EqualFold(existing, symptom) {
			return symptoms
		}
	}
	return append(symptoms, symptom)
}

func removeSymptom(symptoms []string, symptom string) []string {
	symptom = strings.TrimSpace(symptom)
	filtered := make([]string, 0, len(symptoms))
	for _, existing := range symptoms {
		if !strings.EqualFold(existing, symptom) {
			filtered = append(filtered, existing)
		}
	}
	return filtered
}
