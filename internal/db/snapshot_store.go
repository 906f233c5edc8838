package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Vasist2305/period-pal-blossom-bloom/internal/models"
	"gorm.io/gorm"
)

const dayFormat = "2006-01-02"

// SQLiteStore is the durable services.SnapshotStore. It owns the conversion
// between in-memory calendar values and the YYYY-MM-DD strings persisted on
// disk.
type SQLiteStore struct {
	cycles   *CycleRepository
	profiles *ProfileRepository
}

func NewSQLiteStore(database *gorm.DB) *SQLiteStore {
	return &SQLiteStore{
		cycles:   NewCycleRepository(database),
		profiles: NewProfileRepository(database),
	}
}

func (store *SQLiteStore) Load(userID string) (models.Snapshot, error) {
	snapshot := models.DefaultSnapshot()

	profile, found, err := store.profiles.Find(userID)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("load profile: %w", err)
	}
	if found {
		snapshot.AverageCycleLength = profile.AverageCycleLength
		snapshot.AveragePeriodLength = profile.AveragePeriodLength
		snapshot.LastUpdated = profile.UpdatedAt
	}

	cycleRows, err := store.cycles.ListByUser(userID)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("load cycles: %w", err)
	}

	for _, cycleRow := range cycleRows {
		dayRows, err := store.cycles.ListDays(cycleRow.ID)
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("load cycle days: %w", err)
		}
		cycle, err := cycleFromRow(cycleRow, dayRows)
		if err != nil {
			return models.Snapshot{}, err
		}
		snapshot.Cycles = append(snapshot.Cycles, cycle)
	}

	return snapshot, nil
}

func (store *SQLiteStore) SaveProfile(userID string, averageCycleLength, averagePeriodLength int) error {
	return store.profiles.Upsert(userID, averageCycleLength, averagePeriodLength)
}

func (store *SQLiteStore) SaveCycle(userID string, cycle models.Cycle) error {
	cycleRow, dayRows, err := cycleToRow(userID, cycle)
	if err != nil {
		return err
	}
	return store.cycles.Upsert(cycleRow, dayRows)
}

func (store *SQLiteStore) DeleteAll(userID string) error {
	if err := store.cycles.DeleteByUser(userID); err != nil {
		return fmt.Errorf("delete cycles: %w", err)
	}
	if err := store.profiles.Delete(userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func cycleToRow(userID string, cycle models.Cycle) (CycleRow, []CycleDayRow, error) {
	row := CycleRow{
		ID:           cycle.ID,
		UserID:       userID,
		StartDate:    formatDay(cycle.StartDate),
		PeriodLength: cycle.PeriodLength,
	}
	if !cycle.EndDate.IsZero() {
		row.EndDate = formatDay(cycle.EndDate)
	}

	dayRows := make([]CycleDayRow, 0, len(cycle.Days))
	for _, day := range cycle.Days {
		symptoms, err := json.Marshal(day.Symptoms)
		if err != nil {
			return CycleRow{}, nil, fmt.Errorf("encode symptoms: %w", err)
		}
		dayRows = append(dayRows, CycleDayRow{
			CycleID:      cycle.ID,
			Date:         formatDay(day.Date),
			Menstruation: day.Menstruation,
			Flow:         day.Flow,
			Mood:         day.Mood,
			Symptoms:     string(symptoms),
			Notes:        day.Notes,
		})
	}
	return row, dayRows, nil
}

func cycleFromRow(row CycleRow, dayRows []CycleDayRow) (models.Cycle, error) {
	startDate, err := parseDay(row.StartDate)
	if err != nil {
		return models.Cycle{}, fmt.Errorf("cycle %s start date: %w", row.ID, err)
	}

	cycle := models.Cycle{
		ID:           row.ID,
		StartDate:    startDate,
		Days:         make([]models.CycleDay, 0, len(dayRows)),
		PeriodLength: row.PeriodLength,
	}
	if row.EndDate != "" {
		endDate, err := parseDay(row.EndDate)
		if err != nil {
			return models.Cycle{}, fmt.Errorf("cycle %s end date: %w", row.ID, err)
		}
		cycle.EndDate = endDate
	}

	for _, dayRow := range dayRows {
		date, err := parseDay(dayRow.Date)
		if err != nil {
			return models.Cycle{}, fmt.Errorf("cycle %s day: %w", row.ID, err)
		}
		symptoms := []string{}
		if dayRow.Symptoms != "" {
			if err := json.Unmarshal([]byte(dayRow.Symptoms), &symptoms); err != nil {
				return models.Cycle{}, fmt.Errorf("decode symptoms for %s: %w", dayRow.Date, err)
			}
		}
		cycle.Days = append(cycle.Days, models.CycleDay{
			Date:         date,
			Menstruation: dayRow.Menstruation,
			Flow:         dayRow.Flow,
			Mood:         dayRow.Mood,
			Symptoms:     symptoms,
			Notes:        dayRow.Notes,
		})
	}
	return cycle, nil
}

func formatDay(value time.Time) string {
	return value.Format(dayFormat)
}

func parseDay(value string) (time.Time, error) {
	return time.ParseInLocation(dayFormat, value, time.UTC)
}
