package db

import (
	"github.com/terraincognita07/ovucast/internal/models"
	"gorm.io/gorm"
)

type Repositories struct {
	database     *gorm.DB
	Observations *ObservationRepository
	Settings     *SettingsRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		database:     database,
		Observations: NewObservationRepository(database),
		Settings:     NewSettingsRepository(database),
	}
}

// WithinTransaction runs fn against repositories bound to a single
// transaction. Returning an error rolls every write back.
func (repos *Repositories) WithinTransaction(fn func(tx *Repositories) error) error {
	return repos.database.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// RestoreSnapshot replaces every observation and the settings profile
// atomically. The passcode hash and backup marker are left as stored.
func (repos *Repositories) RestoreSnapshot(observations []models.Observation, settings models.Settings) error {
	return repos.WithinTransaction(func(tx *Repositories) error {
		if err := tx.Observations.DeleteAll(); err != nil {
			return err
		}
		if err := tx.Observations.CreateBatch(observations); err != nil {
			return err
		}
		return tx.Settings.SaveProfile(&settings)
	})
}
