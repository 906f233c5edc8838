package db

import (
	"sync"
	"time"

	"github.com/Vasist2305/period-pal-blossom-bloom/internal/models"
)

// MemoryStore keeps snapshots in process memory behind a mutex. It backs the
// persistence fallback path and the test suites; data lives only as long as
// the process.
type MemoryStore struct {
	mu       sync.Mutex
	cycles   map[string][]models.Cycle
	profiles map[string]ProfileRow
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cycles:   make(map[string][]models.Cycle),
		profiles: make(map[string]ProfileRow),
	}
}

func (store *MemoryStore) Load(userID string) (models.Snapshot, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	snapshot := models.DefaultSnapshot()
	if profile, ok := store.profiles[userID]; ok {
		snapshot.AverageCycleLength = profile.AverageCycleLength
		snapshot.AveragePeriodLength = profile.AveragePeriodLength
		snapshot.LastUpdated = profile.UpdatedAt
	}
	snapshot.Cycles = append(snapshot.Cycles, store.cycles[userID]...)
	return snapshot, nil
}

func (store *MemoryStore) SaveProfile(userID string, averageCycleLength, averagePeriodLength int) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.profiles[userID] = ProfileRow{
		UserID:              userID,
		AverageCycleLength:  averageCycleLength,
		AveragePeriodLength: averagePeriodLength,
		UpdatedAt:           time.Now(),
	}
	return nil
}

func (store *MemoryStore) SaveCycle(userID string, cycle models.Cycle) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	cycles := store.cycles[userID]
	for index := range cycles {
		if cycles[index].ID == cycle.ID {
			cycles[index] = cycle
			return nil
		}
	}
	store.cycles[userID] = append(cycles, cycle)
	return nil
}

func (store *MemoryStore) DeleteAll(userID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.cycles, userID)
	delete(store.profiles, userID)
	return nil
}
