package db

import "gorm.io/gorm"

// CycleRow and CycleDayRow are the durable shapes of a cycle. Calendar days
// are stored as YYYY-MM-DD strings so nothing timezone-dependent ever
// reaches disk.
type CycleRow struct {
	ID           string `gorm:"primaryKey"`
	UserID       string `gorm:"not null;index:idx_cycles_user_start"`
	StartDate    string `gorm:"not null;index:idx_cycles_user_start"`
	EndDate      string `gorm:"not null;default:''"`
	PeriodLength int    `gorm:"not null;default:0"`
}

func (CycleRow) TableName() string { return "cycles" }

type CycleDayRow struct {
	ID           uint   `gorm:"primaryKey"`
	CycleID      string `gorm:"not null;uniqueIndex:uidx_cycle_date"`
	Date         string `gorm:"not null;uniqueIndex:uidx_cycle_date"`
	Menstruation bool   `gorm:"not null;default:false"`
	Flow         string `gorm:"not null;default:''"`
	Mood         string `gorm:"not null;default:''"`
	Symptoms     string `gorm:"not null;default:'[]'"`
	Notes        string `gorm:"not null;default:''"`
}

func (CycleDayRow) TableName() string { return "cycle_days" }

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

func (repo *CycleRepository) ListByUser(userID string) ([]CycleRow, error) {
	rows := make([]CycleRow, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("start_date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (repo *CycleRepository) ListDays(cycleID string) ([]CycleDayRow, error) {
	rows := make([]CycleDayRow, 0)
	if err := repo.database.Where("cycle_id = ?", cycleID).Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert replaces the cycle row and its full day list in one transaction.
// Day lists are small (a cycle holds at most a few dozen observations), so
// replace-all keeps the unique-per-date invariant without merge bookkeeping.
func (repo *CycleRepository) Upsert(cycle CycleRow, days []CycleDayRow) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&cycle).Error; err != nil {
			return err
		}
		if err := tx.Where("cycle_id = ?", cycle.ID).Delete(&CycleDayRow{}).Error; err != nil {
			return err
		}
		for index := range days {
			days[index].ID = 0
			days[index].CycleID = cycle.ID
			if err := tx.Create(&days[index]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *CycleRepository) DeleteByUser(userID string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("cycle_id IN (?)", tx.Model(&CycleRow{}).Select("id").Where("user_id = ?", userID)).
			Delete(&CycleDayRow{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&CycleRow{}).Error
	})
}
