package db

import (
	"time"

	"gorm.io/gorm"
)

type ProfileRow struct {
	UserID              string    `gorm:"primaryKey"`
	AverageCycleLength  int       `gorm:"not null;default:28"`
	AveragePeriodLength int       `gorm:"not null;default:5"`
	UpdatedAt           time.Time `gorm:"not null"`
}

func (ProfileRow) TableName() string { return "profiles" }

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) Find(userID string) (ProfileRow, bool, error) {
	row := ProfileRow{}
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&row)
	if result.Error != nil {
		return ProfileRow{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return ProfileRow{}, false, nil
	}
	return row, true, nil
}

func (repo *ProfileRepository) Upsert(userID string, averageCycleLength, averagePeriodLength int) error {
	row := ProfileRow{
		UserID:              userID,
		AverageCycleLength:  averageCycleLength,
		AveragePeriodLength: averagePeriodLength,
		UpdatedAt:           time.Now(),
	}
	return repo.database.Save(&row).Error
}

func (repo *ProfileRepository) Delete(userID string) error {
	return repo.database.Where("user_id = ?", userID).Delete(&ProfileRow{}).Error
}
