package services

import (
	"errors"
	"testing"

	"github.com/Vasist2305/period-pal-blossom-bloom/internal/models"
)

type stubSnapshotStore struct {
	snapshot models.Snapshot

	loadErr        error
	saveCycleErr   error
	saveProfileErr error
	deleteErr      error

	savedCycles   []models.Cycle
	savedProfiles [][2]int
	deleteCalls   int
}

func newStubSnapshotStore() *stubSnapshotStore {
	return &stubSnapshotStore{snapshot: models.DefaultSnapshot()}
}

func (stub *stubSnapshotStore) Load(string) (models.Snapshot, error) {
	if stub.loadErr != nil {
		return models.Snapshot{}, stub.loadErr
	}
	return stub.snapshot, nil
}

func (stub *stubSnapshotStore) SaveProfile(_ string, averageCycleLength, averagePeriodLength int) error {
	if stub.saveProfileErr != nil {
		return stub.saveProfileErr
	}
	stub.savedProfiles = append(stub.savedProfiles, [2]int{averageCycleLength, averagePeriodLength})
	return nil
}

func (stub *stubSnapshotStore) SaveCycle(_ string, cycle models.Cycle) error {
	if stub.saveCycleErr != nil {
		return stub.saveCycleErr
	}
	stub.savedCycles = append(stub.savedCycles, cycle)
	return nil
}

func (stub *stubSnapshotStore) DeleteAll(string) error {
	stub.deleteCalls++
	return stub.deleteErr
}

const testUserID = "7"

func TestUpdateCycleDay_RejectsEditWithoutActiveCycle(t *testing.T) {
	t.Parallel()

	store := newStubSnapshotStore()
	tracker := NewTrackerService(store)

	_, err := tracker.UpdateCycleDay(testUserID, mustParseDay(t, "2024-01-05"), DayPatch{Mood: strPtr(models.MoodHappy)})
	if !errors.Is(err, ErrNoActiveCycle) {
		t.Fatalf("expected ErrNoActiveCycle, got %v", err)
	}

	snapshot := tracker.Snapshot(testUserID)
	if len(snapshot.Cycles) != 0 {
		t.Fatalf("expected history unchanged, got %d cycles", len(snapshot.Cycles))
	}
	if len(store.savedCycles) != 0 {
		t.Fatalf("expected nothing persisted, got %d saves", len(store.savedCycles))
	}
}

func TestUpdateCycleDay_MenstruationStartsNewCycle(t *testing.T) {
	t.Parallel()

	store := newStubSnapshotStore()
	tracker := NewTrackerService(store)
	day := mustParseDay(t, "2024-01-05")

	created, err := tracker.UpdateCycleDay(testUserID, day, DayPatch{Menstruation: boolPtr(true)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created.Menstruation || created.Flow != models.FlowMedium {
		t.Fatalf("expected seeded medium-flow period day, got %+v", created)
	}

	snapshot := tracker.Snapshot(testUserID)
	if len(snapshot.Cycles) != 1 {
		t.Fatalf("expected one cycle, got %d", len(snapshot.Cycles))
	}
	cycle := snapshot.Cycles[0]
	if !SameDay(cycle.StartDate, day) {
		t.Fatalf("expected cycle start %s, got %s", day, cycle.StartDate)
	}
	if cycle.ID == "" {
		t.Fatalf("expected generated cycle id")
	}
	if cycle.PeriodLength != 1 {
		t.Fatalf("expected period length 1, got %d", cycle.PeriodLength)
	}
	if len(store.savedCycles) != 1 || len(store.savedProfiles) != 1 {
		t.Fatalf("expected cycle and profile persisted, got %d/%d", len(store.savedCycles), len(store.savedProfiles))
	}
}

func TestUpdateCycleDay_MergesSameDateIntoSingleObservation(t *testing.T) {
	t.Parallel()

	store := newStubSnapshotStore()
	tracker := NewTrackerService(store)
	start := mustParseDay(t, "2024-01-01")

	if _, err := tracker.AddCycle(testUserID, start); err != nil {
		t.Fatalf("add cycle: %v", err)
	}

	day := mustParseDay(t, "2024-01-02")
	if _, err := tracker.UpdateCycleDay(testUserID, day, DayPatch{Mood: strPtr(models.MoodSad)}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if _, err := tracker.UpdateCycleDay(testUserID, day, DayPatch{Notes: strPtr("cramps all day"), AddSymptoms: []string{"cramps"}}); err != nil {
		t.Fatalf("second update: %v", err)
	}

	snapshot := tracker.Snapshot(testUserID)
	cycle := snapshot.Cycles[0]
	matches := 0
	for _, observed := range cycle.Days {
		if SameDay(observed.Date, day) {
			matches++
		}
	}
	if matches != 1 {
		t.Fatalf("expected exactly one observation for the date, got %d", matches)
	}

	merged, found := tracker.FindDay(testUserID, day)
	if !found {
		t.Fatalf("expected merged day to be findable")
	}
	if merged.Mood != models.MoodSad || merged.Notes != "cramps all day" || len(merged.Symptoms) != 1 {
		t.Fatalf("expected merged state, got %+v", merged)
	}
}

func TestUpdateCycleDay_RecomputesPeriodLengthAndEndDate(t *testing.T) {
	t.Parallel()

	store := newStubSnapshotStore()
	tracker := NewTrackerService(store)
	start := mustParseDay(t, "2024-01-01")

	if _, err := tracker.AddCycle(testUserID, start); err != nil {
		t.Fatalf("add cycle: %v", err)
	}
	if _, err := tracker.UpdateCycleDay(testUserID, mustParseDay(t, "2024-01-02"), DayPatch{Menstruation: boolPtr(true)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := tracker.UpdateCycleDay(testUserID, mustParseDay(t, "2024-01-03"), DayPatch{Menstruation: boolPtr(true)}); err != nil {
		t.Fatalf("update: %v", err)
	}

	cycle := tracker.Snapshot(testUserID).Cycles[0]
	if cycle.PeriodLength != 3 {
		t.Fatalf("expected period length 3, got %d", cycle.PeriodLength)
	}
	if got := cycle.EndDate.Format("2006-01-02"); got != "2024-01-03" {
		t.Fatalf("expected end date 2024-01-03, got %s", got)
	}

	days := cycle.Days
	for i := 1; i < len(days); i++ {
		if days[i].Date.Before(days[i-1].Date) {
			t.Fatalf("days not sorted ascending: %v before %v", days[i].Date, days[i-1].Date)
		}
	}
}

func TestUpdateCycleDay_TargetsMostRecentCoveringCycle(t *testing.T) {
	t.Parallel()

	store := newStubSnapshotStore()
	tracker := NewTrackerService(store)

	if _, err := tracker.AddCycle(testUserID, mustParseDay(t, "2024-01-01")); err != nil {
		t.Fatalf("add cycle: %v", err)
	}
	if _, err := tracker.AddCycle(testUserID, mustParseDay(t, "2024-01-29")); err != nil {
		t.Fatalf("add cycle: %v", err)
	}

	// Both cycles are open-ended, so both cover Feb 2; the later one wins.
	if _, err := tracker.UpdateCycleDay(testUserID, mustParseDay(t, "2024-02-02"), DayPatch{Mood: strPtr(models.MoodIrritated)}); err != nil {
		t.Fatalf("update: %v", err)
	}

	snapshot := tracker.Snapshot(testUserID)
	for _, cycle := range snapshot.Cycles {
		isLater := SameDay(cycle.StartDate, mustParseDay(t, "2024-01-29"))
		hasEdit := false
		for _, observed := range cycle.Days {
			if SameDay(observed.Date, mustParseDay(t, "2024-02-02")) {
				hasEdit = true
			}
		}
		if isLater && !hasEdit {
			t.Fatalf("expected edit to land in the most recent cycle")
		}
		if !isLater && hasEdit {
			t.Fatalf("edit landed in the older cycle")
		}
	}
}

func TestAddCycle_RecomputesAverages(t *testing.T) {
	t.Parallel()

	store := newStubSnapshotStore()
	tracker := NewTrackerService(store)

	if _, err := tracker.AddCycle(testUserID, mustParseDay(t, "2024-01-01")); err != nil {
		t.Fatalf("add cycle: %v", err)
	}
	avgCycle, avgPeriod := tracker.Averages(testUserID)
	if avgCycle != models.DefaultCycleLength || avgPeriod != models.DefaultPeriodLength {
		t.Fatalf("expected defaults with one cycle, got (%d, %d)", avgCycle, avgPeriod)
	}

	if _, err := tracker.AddCycle(testUserID, mustParseDay(t, "2024-01-31")); err != nil {
		t.Fatalf("add cycle: %v", err)
	}
	avgCycle, avgPeriod = tracker.Averages(testUserID)
	if avgCycle != 30 {
		t.Fatalf("expected average cycle length 30, got %d", avgCycle)
	}
	if avgPeriod != 1 {
		t.Fatalf("expected average period length 1 (seeded single-day periods), got %d", avgPeriod)
	}

	latest := store.savedProfiles[len(store.savedProfiles)-1]
	if latest != [2]int{30, 1} {
		t.Fatalf("expected profile (30, 1) persisted, got %v", latest)
	}
}

func TestUpdateCycleDay_SaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	t.Parallel()

	store := newStubSnapshotStore()
	tracker := NewTrackerService(store)

	if _, err := tracker.AddCycle(testUserID, mustParseDay(t, "2024-01-01")); err != nil {
		t.Fatalf("add cycle: %v", err)
	}

	store.saveCycleErr = errors.New("disk full")
	day := mustParseDay(t, "2024-01-02")
	updated, err := tracker.UpdateCycleDay(testUserID, day, DayPatch{Mood: strPtr(models.MoodNeutral)})
	if !errors.Is(err, ErrSnapshotSaveFailed) {
		t.Fatalf("expected ErrSnapshotSaveFailed, got %v", err)
	}
	if updated.Mood != models.MoodNeutral {
		t.Fatalf("expected updated day returned despite save failure, got %+v", updated)
	}

	if found, ok := tracker.FindDay(testUserID, day); !ok || found.Mood != models.MoodNeutral {
		t.Fatalf("expected in-memory state to keep the edit, got %+v (ok=%v)", found, ok)
	}
}

func TestSnapshot_LoadFailureFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	store := newStubSnapshotStore()
	store.loadErr = errors.New("backend unavailable")
	tracker := NewTrackerService(store)

	snapshot := tracker.Snapshot(testUserID)
	if len(snapshot.Cycles) != 0 {
		t.Fatalf("expected empty default history, got %d cycles", len(snapshot.Cycles))
	}
	if snapshot.AverageCycleLength != models.DefaultCycleLength || snapshot.AveragePeriodLength != models.DefaultPeriodLength {
		t.Fatalf("expected default averages, got (%d, %d)", snapshot.AverageCycleLength, snapshot.AveragePeriodLength)
	}
}

func TestResetData(t *testing.T) {
	t.Parallel()

	store := newStubSnapshotStore()
	tracker := NewTrackerService(store)

	if _, err := tracker.AddCycle(testUserID, mustParseDay(t, "2024-01-01")); err != nil {
		t.Fatalf("add cycle: %v", err)
	}
	if err := tracker.ResetData(testUserID); err != nil {
		t.Fatalf("reset: %v", err)
	}

	snapshot := tracker.Snapshot(testUserID)
	if len(snapshot.Cycles) != 0 {
		t.Fatalf("expected cleared history, got %d cycles", len(snapshot.Cycles))
	}
	if store.deleteCalls != 1 {
		t.Fatalf("expected durable erase, got %d delete calls", store.deleteCalls)
	}
}

func TestNextOvulationDay(t *testing.T) {
	t.Parallel()

	store := newStubSnapshotStore()
	tracker := NewTrackerService(store)

	if _, ok := tracker.NextOvulationDay(testUserID); ok {
		t.Fatalf("expected no ovulation estimate without history")
	}

	if _, err := tracker.AddCycle(testUserID, mustParseDay(t, "2024-01-01")); err != nil {
		t.Fatalf("add cycle: %v", err)
	}
	ovulationDay, ok := tracker.NextOvulationDay(testUserID)
	if !ok {
		t.Fatalf("expected ovulation estimate")
	}
	// Next cycle starts Jan 29 with the default 28-day length; ovulation 14
	// days before the cycle after that.
	if got := ovulationDay.Format("2006-01-02"); got != "2024-02-12" {
		t.Fatalf("expected ovulation day 2024-02-12, got %s", got)
	}
}
