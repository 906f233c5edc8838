package db

import (
	"log"

	"github.com/Vasist2305/period-pal-blossom-bloom/internal/models"
	"github.com/Vasist2305/period-pal-blossom-bloom/internal/services"
)

// FallbackStore tries the primary store first and serves from the secondary
// when the primary fails, logging which path handled the call. Reads that
// fall back are a degraded success; writes report the primary error only
// when the secondary also fails.
type FallbackStore struct {
	primary   services.SnapshotStore
	secondary services.SnapshotStore
}

func NewFallbackStore(primary, secondary services.SnapshotStore) *FallbackStore {
	return &FallbackStore{primary: primary, secondary: secondary}
}

func (store *FallbackStore) Load(userID string) (models.Snapshot, error) {
	snapshot, err := store.primary.Load(userID)
	if err == nil {
		return snapshot, nil
	}
	log.Printf("store: primary load failed for user %s, falling back: %v", userID, err)
	return store.secondary.Load(userID)
}

func (store *FallbackStore) SaveProfile(userID string, averageCycleLength, averagePeriodLength int) error {
	if err := store.primary.SaveProfile(userID, averageCycleLength, averagePeriodLength); err != nil {
		log.Printf("store: primary profile save failed for user %s, falling back: %v", userID, err)
		if fallbackErr := store.secondary.SaveProfile(userID, averageCycleLength, averagePeriodLength); fallbackErr != nil {
			return err
		}
	}
	return nil
}

func (store *FallbackStore) SaveCycle(userID string, cycle models.Cycle) error {
	if err := store.primary.SaveCycle(userID, cycle); err != nil {
		log.Printf("store: primary cycle save failed for user %s, falling back: %v", userID, err)
		if fallbackErr := store.secondary.SaveCycle(userID, cycle); fallbackErr != nil {
			return err
		}
	}
	return nil
}

func (store *FallbackStore) DeleteAll(userID string) error {
	primaryErr := store.primary.DeleteAll(userID)
	if primaryErr != nil {
		log.Printf("store: primary delete failed for user %s: %v", userID, primaryErr)
	}
	// The secondary is cleared regardless so a later fallback read cannot
	// resurrect erased data.
	if err := store.secondary.DeleteAll(userID); err != nil && primaryErr == nil {
		primaryErr = err
	}
	return primaryErr
}
