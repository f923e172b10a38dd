package db

import (
	"time"

	"github.com/terraincognita07/ovucast/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingsProfileColumns are the user-editable columns. The passcode hash and
// backup marker have their own narrow writers.
var settingsProfileColumns = []string{
	"default_cycle_length",
	"default_period_length",
	"tracking_temperature",
	"in_perimenopause",
	"in_menopause",
	"age",
	"updated_at",
}

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

// Load returns the single settings row; found is false before first save.
func (repo *SettingsRepository) Load() (models.Settings, bool, error) {
	settings := models.Settings{}
	result := repo.database.Where("id = ?", models.SettingsRowID).Limit(1).Find(&settings)
	if result.Error != nil {
		return models.Settings{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Settings{}, false, nil
	}
	return settings, true, nil
}

// CreateIfMissing inserts settings as the single row unless one already
// exists. An existing row is never touched.
func (repo *SettingsRepository) CreateIfMissing(settings *models.Settings) error {
	settings.ID = models.SettingsRowID
	return repo.database.Clauses(clause.OnConflict{DoNothing: true}).Create(settings).Error
}

// SaveProfile writes the profile columns of settings, creating the row when
// it does not exist yet.
func (repo *SettingsRepository) SaveProfile(settings *models.Settings) error {
	settings.ID = models.SettingsRowID
	row := models.Settings{
		DefaultCycleLength:  settings.DefaultCycleLength,
		DefaultPeriodLength: settings.DefaultPeriodLength,
		TrackingTemperature: settings.TrackingTemperature,
		InPerimenopause:     settings.InPerimenopause,
		InMenopause:         settings.InMenopause,
		Age:                 settings.Age,
	}
	if err := repo.CreateIfMissing(&row); err != nil {
		return err
	}
	return repo.database.Model(&models.Settings{}).
		Where("id = ?", models.SettingsRowID).
		Select(settingsProfileColumns).
		Updates(settings).Error
}

func (repo *SettingsRepository) UpdatePasscodeHash(passcodeHash string) error {
	return repo.database.Model(&models.Settings{}).
		Where("id = ?", models.SettingsRowID).
		Update("passcode_hash", passcodeHash).Error
}

// ClaimPasscodeHash stores passcodeHash only while no passcode is set and
// reports whether this call stored it.
func (repo *SettingsRepository) ClaimPasscodeHash(passcodeHash string) (bool, error) {
	result := repo.database.Model(&models.Settings{}).
		Where("id = ? AND passcode_hash = ''", models.SettingsRowID).
		Update("passcode_hash", passcodeHash)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (repo *SettingsRepository) UpdateLastBackupAt(at time.Time) error {
	return repo.database.Model(&models.Settings{}).
		Where("id = ?", models.SettingsRowID).
		Update("last_backup_at", at).Error
}
