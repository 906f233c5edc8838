package services

import (
	"sort"
	"time"

	"github.com/Vasist2305/period-pal-blossom-bloom/internal/models"
)

const lutealPhaseDays = 14

// Samples outside these bounds come from date-entry mistakes or duplicate
// cycles and must never influence the averages.
const (
	maxCycleLengthSample  = 100
	maxPeriodLengthSample = 15
)

// CalculateAverages derives the rolling average cycle and period lengths
// from the recorded history. With one cycle or fewer there is nothing to
// average and the defaults (28, 5) are returned. Input order does not
// matter; adjacent pairs are taken in chronological start-date order.
func CalculateAverages(cycles []models.Cycle) (int, int) {
	averageCycleLength := models.DefaultCycleLength
	averagePeriodLength := models.DefaultPeriodLength
	if len(cycles) <= 1 {
		return averageCycleLength, averagePeriodLength
	}

	sorted := make([]models.Cycle, 0, len(cycles))
	sorted = append(sorted, cycles...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	cycleLengths := make([]int, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		length := DifferenceInDays(sorted[i].StartDate, sorted[i-1].StartDate)
		if length > 0 && length < maxCycleLengthSample {
			cycleLengths = append(cycleLengths, length)
		}
	}
	if len(cycleLengths) > 0 {
		averageCycleLength = roundedAverage(cycleLengths)
	}

	periodLengths := make([]int, 0, len(sorted))
	for _, cycle := range sorted {
		if cycle.PeriodLength > 0 && cycle.PeriodLength < maxPeriodLengthSample {
			periodLengths = append(periodLengths, cycle.PeriodLength)
		}
	}
	if len(periodLengths) > 0 {
		averagePeriodLength = roundedAverage(periodLengths)
	}

	return averageCycleLength, averagePeriodLength
}

// CalculateOvulationDay estimates ovulation for a cycle, assuming a fixed
// 14-day luteal phase regardless of total cycle length. The second return
// is false when there is no cycle start to anchor on.
func CalculateOvulationDay(cycleStart time.Time, averageCycleLength int) (time.Time, bool) {
	if cycleStart.IsZero() {
		return time.Time{}, false
	}
	return AddDays(cycleStart, averageCycleLength-lutealPhaseDays), true
}

// CalculatePredictedPeriodDays projects future period days into [from, to].
// Candidate period starts step forward from the anchor cycle in increments
// of averageCycleLength; each candidate at or after from contributes
// averagePeriodLength consecutive days, clipped to not exceed to.
func CalculatePredictedPeriodDays(from, to time.Time, cycles []models.Cycle, averageCycleLength, averagePeriodLength int) []time.Time {
	anchor, ok := MostRecentCycle(cycles)
	if !ok {
		return nil
	}
	if averageCycleLength < 1 {
		averageCycleLength = models.DefaultCycleLength
	}

	from = DateOnly(from)
	to = DateOnly(to)

	predicted := make([]time.Time, 0)
	for candidate := DateOnly(anchor.StartDate); !candidate.After(to); candidate = AddDays(candidate, averageCycleLength) {
		if candidate.Before(from) {
			continue
		}
		for offset := 0; offset < averagePeriodLength; offset++ {
			periodDay := AddDays(candidate, offset)
			if periodDay.After(to) {
				break
			}
			predicted = append(predicted, periodDay)
		}
	}
	return predicted
}

// CalculateFertileWindowDays projects fertile days into [from, to]: for each
// projected cycle start, the five days before its ovulation day plus the
// ovulation day itself.
func CalculateFertileWindowDays(from, to time.Time, cycles []models.Cycle, averageCycleLength int) []time.Time {
	anchor, ok := MostRecentCycle(cycles)
	if !ok {
		return nil
	}
	if averageCycleLength < 1 {
		averageCycleLength = models.DefaultCycleLength
	}

	from = DateOnly(from)
	to = DateOnly(to)

	fertile := make([]time.Time, 0)
	for candidate := DateOnly(anchor.StartDate); !candidate.After(to); candidate = AddDays(candidate, averageCycleLength) {
		ovulationDay, ok := CalculateOvulationDay(candidate, averageCycleLength)
		if !ok {
			continue
		}
		for offset := -5; offset <= 0; offset++ {
			fertileDay := AddDays(ovulationDay, offset)
			if betweenInclusive(fertileDay, from, to) {
				fertile = append(fertile, fertileDay)
			}
		}
	}
	return fertile
}

// FindCycleDay returns the observation recorded for a calendar date, if any,
// scanning every cycle. At most one observation exists per date.
func FindCycleDay(date time.Time, cycles []models.Cycle) (models.CycleDay, bool) {
	for _, cycle := range cycles {
		for _, day := range cycle.Days {
			if SameDay(day.Date, date) {
				return day, true
			}
		}
	}
	return models.CycleDay{}, false
}

// MostRecentCycle selects the anchor for forward projections: the cycle with
// the latest start date, regardless of storage order.
func MostRecentCycle(cycles []models.Cycle) (models.Cycle, bool) {
	if len(cycles) == 0 {
		return models.Cycle{}, false
	}
	latest := cycles[0]
	for _, cycle := range cycles[1:] {
		if cycle.StartDate.After(latest.StartDate) {
			latest = cycle
		}
	}
	return latest, true
}

func roundedAverage(values []int) int {
	total := 0
	for _, value := range values {
		total += value
	}
	return int(float64(total)/float64(len(values)) + 0.5)
}
