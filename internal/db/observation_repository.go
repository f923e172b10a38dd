package db

import (
	"time"

	"github.com/terraincognita07/ovucast/internal/models"
	"gorm.io/gorm"
)

type ObservationRepository struct {
	database *gorm.DB
}

func NewObservationRepository(database *gorm.DB) *ObservationRepository {
	return &ObservationRepository{database: database}
}

func (repo *ObservationRepository) ListAll() ([]models.Observation, error) {
	observations := make([]models.Observation, 0)
	if err := repo.database.Order("date ASC, id ASC").Find(&observations).Error; err != nil {
		return nil, err
	}
	return observations, nil
}

func (repo *ObservationRepository) ListRange(fromStart *time.Time, toEnd *time.Time) ([]models.Observation, error) {
	query := repo.database.Model(&models.Observation{})
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	observations := make([]models.Observation, 0)
	if err := query.Order("date ASC, id ASC").Find(&observations).Error; err != nil {
		return nil, err
	}
	return observations, nil
}

func (repo *ObservationRepository) FindByDayRange(dayStart time.Time, dayEnd time.Time) (models.Observation, bool, error) {
	observation := models.Observation{}
	result := repo.database.
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&observation)
	if result.Error != nil {
		return models.Observation{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Observation{}, false, nil
	}
	return observation, true, nil
}

func (repo *ObservationRepository) Create(observation *models.Observation) error {
	return repo.database.Create(observation).Error
}

func (repo *ObservationRepository) Save(observation *models.Observation) error {
	return repo.database.Save(observation).Error
}

func (repo *ObservationRepository) DeleteByDayRange(dayStart time.Time, dayEnd time.Time) (bool, error) {
	result := repo.database.Where("date >= ? AND date < ?", dayStart, dayEnd).Delete(&models.Observation{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *ObservationRepository) DeleteAll() error {
	return repo.database.Where("1 = 1").Delete(&models.Observation{}).Error
}

func (repo *ObservationRepository) CreateBatch(observations []models.Observation) error {
	if len(observations) == 0 {
		return nil
	}
	return repo.database.CreateInBatches(observations, 100).Error
}

func (repo *ObservationRepository) Count() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Observation{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
