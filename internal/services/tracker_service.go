package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Vasist2305/period-pal-blossom-bloom/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNoActiveCycle      = errors.New("no active cycle for date")
	ErrSnapshotLoadFailed = errors.New("load snapshot failed")
	ErrSnapshotSaveFailed = errors.New("save snapshot failed")
)

// SnapshotStore is the persistence contract the tracker depends on. Calendar
// days cross this boundary as YYYY-MM-DD strings; implementations convert.
type SnapshotStore interface {
	Load(userID string) (models.Snapshot, error)
	SaveProfile(userID string, averageCycleLength, averagePeriodLength int) error
	SaveCycle(userID string, cycle models.Cycle) error
	DeleteAll(userID string) error
}

// TrackerService owns the in-memory snapshots and is the single writer for
// them. Snapshots load lazily per user and stay authoritative even when a
// save fails; save errors are surfaced, never retried silently.
type TrackerService struct {
	store SnapshotStore

	mu        sync.Mutex
	snapshots map[string]*models.Snapshot
}

func NewTrackerService(store SnapshotStore) *TrackerService {
	return &TrackerService{
		store:     store,
		snapshots: make(map[string]*models.Snapshot),
	}
}

// Snapshot returns a copy of the user's current history, loading it from the
// store on first access. A failed load degrades to the default snapshot so
// the app stays usable; the load failure is logged once.
func (service *TrackerService) Snapshot(userID string) models.Snapshot {
	service.mu.Lock()
	defer service.mu.Unlock()
	return copySnapshot(service.snapshotLocked(userID))
}

// UpdateCycleDay applies a patch to the observation for date, creating the
// observation or a whole new cycle when needed. Non-menstruation edits for a
// date no cycle covers are rejected with ErrNoActiveCycle and change
// nothing.
func (service *TrackerService) UpdateCycleDay(userID string, date time.Time, patch DayPatch) (models.CycleDay, error) {
	if err := patch.Validate(); err != nil {
		return models.CycleDay{}, err
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	snapshot := service.snapshotLocked(userID)
	day := DateOnly(date)

	index, found := coveringCycleIndex(snapshot.Cycles, day)
	if !found {
		if !patch.StartsMenstruation() {
			return models.CycleDay{}, ErrNoActiveCycle
		}
		cycle, err := service.addCycleLocked(userID, snapshot, day)
		return cycle.Days[0], err
	}

	cycle := &snapshot.Cycles[index]
	dayIndex := -1
	for i := range cycle.Days {
		if SameDay(cycle.Days[i].Date, day) {
			dayIndex = i
			break
		}
	}

	if dayIndex >= 0 {
		cycle.Days[dayIndex] = ApplyDayPatch(cycle.Days[dayIndex], patch)
	} else {
		cycle.Days = append(cycle.Days, ApplyDayPatch(models.CycleDay{Date: day}, patch))
	}

	sort.Slice(cycle.Days, func(i, j int) bool {
		return cycle.Days[i].Date.Before(cycle.Days[j].Date)
	})

	if patch.Menstruation != nil {
		cycle.PeriodLength = countPeriodDays(cycle.Days)
	}
	lastDay := cycle.Days[len(cycle.Days)-1].Date
	if cycle.EndDate.IsZero() || lastDay.After(cycle.EndDate) {
		cycle.EndDate = lastDay
	}
	snapshot.LastUpdated = time.Now()

	updated, _ := FindCycleDay(day, []models.Cycle{*cycle})
	if err := service.store.SaveCycle(userID, *cycle); err != nil {
		return updated, fmt.Errorf("%w: %v", ErrSnapshotSaveFailed, err)
	}
	return updated, nil
}

// AddCycle starts tracking a new period on startDate: a fresh cycle seeded
// with a single medium-flow menstruation day. Averages are recomputed over
// the grown history.
func (service *TrackerService) AddCycle(userID string, startDate time.Time) (models.Cycle, error) {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.addCycleLocked(userID, service.snapshotLocked(userID), DateOnly(startDate))
}

// ResetData clears the in-memory snapshot back to defaults and erases the
// user's durable state.
func (service *TrackerService) ResetData(userID string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	fresh := models.DefaultSnapshot()
	fresh.LastUpdated = time.Now()
	service.snapshots[userID] = &fresh

	if err := service.store.DeleteAll(userID); err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshotSaveFailed, err)
	}
	return nil
}

func (service *TrackerService) FindDay(userID string, date time.Time) (models.CycleDay, bool) {
	snapshot := service.Snapshot(userID)
	return FindCycleDay(date, snapshot.Cycles)
}

func (service *TrackerService) Averages(userID string) (int, int) {
	snapshot := service.Snapshot(userID)
	return snapshot.AverageCycleLength, snapshot.AveragePeriodLength
}

func (service *TrackerService) PredictedPeriodDays(userID string, from, to time.Time) []time.Time {
	snapshot := service.Snapshot(userID)
	return CalculatePredictedPeriodDays(from, to, snapshot.Cycles, snapshot.AverageCycleLength, snapshot.AveragePeriodLength)
}

func (service *TrackerService) FertileWindowDays(userID string, from, to time.Time) []time.Time {
	snapshot := service.Snapshot(userID)
	return CalculateFertileWindowDays(from, to, snapshot.Cycles, snapshot.AverageCycleLength)
}

// NextOvulationDay estimates ovulation for the cycle following the anchor
// cycle. The second return is false with no recorded history.
func (service *TrackerService) NextOvulationDay(userID string) (time.Time, bool) {
	snapshot := service.Snapshot(userID)
	anchor, ok := MostRecentCycle(snapshot.Cycles)
	if !ok {
		return time.Time{}, false
	}
	nextStart := AddDays(anchor.StartDate, snapshot.AverageCycleLength)
	return CalculateOvulationDay(nextStart, snapshot.AverageCycleLength)
}

func (service *TrackerService) snapshotLocked(userID string) *models.Snapshot {
	if snapshot, ok := service.snapshots[userID]; ok {
		return snapshot
	}

	loaded, err := service.store.Load(userID)
	if err != nil {
		log.Printf("tracker: %v for user %s, using defaults: %v", ErrSnapshotLoadFailed, userID, err)
		loaded = models.DefaultSnapshot()
	}
	if loaded.AverageCycleLength < 1 {
		loaded.AverageCycleLength = models.DefaultCycleLength
	}
	if loaded.AveragePeriodLength < 1 {
		loaded.AveragePeriodLength = models.DefaultPeriodLength
	}
	service.snapshots[userID] = &loaded
	return &loaded
}

func (service *TrackerService) addCycleLocked(userID string, snapshot *models.Snapshot, startDate time.Time) (models.Cycle, error) {
	cycle := models.Cycle{
		ID:        uuid.NewString(),
		StartDate: startDate,
		Days: []models.CycleDay{{
			Date:         startDate,
			Menstruation: true,
			Flow:         models.FlowMedium,
		}},
		PeriodLength: 1,
	}

	snapshot.Cycles = append(snapshot.Cycles, cycle)
	snapshot.AverageCycleLength, snapshot.AveragePeriodLength = CalculateAverages(snapshot.Cycles)
	snapshot.LastUpdated = time.Now()

	if err := service.store.SaveCycle(userID, cycle); err != nil {
		return cycle, fmt.Errorf("%w: %v", ErrSnapshotSaveFailed, err)
	}
	if err := service.store.SaveProfile(userID, snapshot.AverageCycleLength, snapshot.AveragePeriodLength); err != nil {
		return cycle, fmt.Errorf("%w: %v", ErrSnapshotSaveFailed, err)
	}
	return cycle, nil
}

// coveringCycleIndex finds the cycle whose [start, end-or-open] range
// contains day. When open-ended histories overlap, the most recently started
// cycle wins so selection stays deterministic.
func coveringCycleIndex(cycles []models.Cycle, day time.Time) (int, bool) {
	best := -1
	for index, cycle := range cycles {
		if DateOnly(day).Before(DateOnly(cycle.StartDate)) {
			continue
		}
		if !cycle.EndDate.IsZero() && DateOnly(day).After(DateOnly(cycle.EndDate)) {
			continue
		}
		if best == -1 || cycle.StartDate.After(cycles[best].StartDate) {
			best = index
		}
	}
	return best, best != -1
}

func countPeriodDays(days []models.CycleDay) int {
	count := 0
	for _, day := range days {
		if day.Menstruation {
			count++
		}
	}
	return count
}

func copySnapshot(snapshot *models.Snapshot) models.Snapshot {
	copied := *snapshot
	copied.Cycles = make([]models.Cycle, len(snapshot.Cycles))
	for i, cycle := range snapshot.Cycles {
		copiedCycle := cycle
		copiedCycle.Days = make([]models.CycleDay, len(cycle.Days))
		for j, day := range cycle.Days {
			copiedDay := day
			copiedDay.Symptoms = append([]string(nil), day.Symptoms...)
			copiedCycle.Days[j] = copiedDay
		}
		copied.Cycles[i] = copiedCycle
	}
	return copied
}
