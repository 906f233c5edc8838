package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/Vasist2305/period-pal-blossom-bloom/internal/models"
)

func boolPtr(value bool) *bool { return &value }

func strPtr(value string) *string { return &value }

func TestDayPatchValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		patch   DayPatch
		wantErr error
	}{
		{name: "empty", patch: DayPatch{}, wantErr: ErrEmptyDayPatch},
		{name: "bad flow", patch: DayPatch{Flow: strPtr("torrential")}, wantErr: ErrInvalidDayFlow},
		{name: "bad mood", patch: DayPatch{Mood: strPtr("ecstatic")}, wantErr: ErrInvalidDayMood},
		{name: "valid", patch: DayPatch{Menstruation: boolPtr(true)}, wantErr: nil},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			err := testCase.patch.Validate()
			if !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected %v, got %v", testCase.wantErr, err)
			}
		})
	}
}

func TestApplyDayPatch_MenstruationDefaultsFlow(t *testing.T) {
	t.Parallel()

	day := ApplyDayPatch(models.CycleDay{}, DayPatch{Menstruation: boolPtr(true)})
	if !day.Menstruation {
		t.Fatalf("expected menstruation on")
	}
	if day.Flow != models.FlowMedium {
		t.Fatalf("expected default medium flow, got %q", day.Flow)
	}

	// An explicit flow in the same patch wins over the default.
	day = ApplyDayPatch(models.CycleDay{}, DayPatch{Menstruation: boolPtr(true), Flow: strPtr(models.FlowHeavy)})
	if day.Flow != models.FlowHeavy {
		t.Fatalf("expected heavy flow, got %q", day.Flow)
	}
}

func TestApplyDayPatch_MenstruationOffClearsFlow(t *testing.T) {
	t.Parallel()

	day := models.CycleDay{Menstruation: true, Flow: models.FlowHeavy}
	day = ApplyDayPatch(day, DayPatch{Menstruation: boolPtr(false)})
	if day.Menstruation {
		t.Fatalf("expected menstruation off")
	}
	if day.Flow != models.FlowNone {
		t.Fatalf("expected flow cleared, got %q", day.Flow)
	}
}

func TestApplyDayPatch_ReplacesWithoutTouchingOtherFields(t *testing.T) {
	t.Parallel()

	day := models.CycleDay{Menstruation: true, Flow: models.FlowLight, Notes: "keep me"}
	day = ApplyDayPatch(day, DayPatch{Mood: strPtr(models.MoodSensitive)})

	if day.Mood != models.MoodSensitive {
		t.Fatalf("expected mood set, got %q", day.Mood)
	}
	if !day.Menstruation || day.Flow != models.FlowLight || day.Notes != "keep me" {
		t.Fatalf("unrelated fields changed: %+v", day)
	}
}

func TestApplyDayPatch_SymptomSetSemantics(t *testing.T) {
	t.Parallel()

	day := models.CycleDay{}
	day = ApplyDayPatch(day, DayPatch{AddSymptoms: []string{"cramps", "headache", "cramps"}})
	if len(day.Symptoms) != 2 || day.Symptoms[0] != "cramps" || day.Symptoms[1] != "headache" {
		t.Fatalf("expected deduplicated insertion-ordered symptoms, got %v", day.Symptoms)
	}

	day = ApplyDayPatch(day, DayPatch{AddSymptoms: []string{"Cramps"}})
	if len(day.Symptoms) != 2 {
		t.Fatalf("expected case-insensitive dedupe, got %v", day.Symptoms)
	}

	day = ApplyDayPatch(day, DayPatch{RemoveSymptoms: []string{"cramps"}})
	if len(day.Symptoms) != 1 || day.Symptoms[0] != "headache" {
		t.Fatalf("expected cramps removed, got %v", day.Symptoms)
	}
}

func TestApplyDayPatch_TrimsOversizedNotes(t *testing.T) {
	t.Parallel()

	oversized := strings.Repeat("a", MaxDayNotesLength+50)
	day := ApplyDayPatch(models.CycleDay{}, DayPatch{Notes: strPtr(oversized)})
	if len(day.Notes) != MaxDayNotesLength {
		t.Fatalf("expected notes trimmed to %d, got %d", MaxDayNotesLength, len(day.Notes))
	}
}
