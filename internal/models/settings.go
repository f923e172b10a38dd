package models

import "time"

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
	DefaultAge          = 25
)

// SettingsRowID is the primary key of the single settings row.
const SettingsRowID = 1

type Settings struct {
	ID                  uint       `gorm:"primaryKey"`
	DefaultCycleLength  int        `gorm:"not null;default:28"`
	DefaultPeriodLength int        `gorm:"not null;default:5"`
	TrackingTemperature bool       `gorm:"not null;default:false"`
	InPerimenopause     bool       `gorm:"not null;default:false"`
	InMenopause         bool       `gorm:"not null;default:false"`
	Age                 int        `gorm:"not null;default:25"`
	PasscodeHash        string     `gorm:"not null;default:''"`
	LastBackupAt        *time.Time `gorm:"column:last_backup_at"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func DefaultSettings() Settings {
	return Settings{
		ID:                  SettingsRowID,
		DefaultCycleLength:  DefaultCycleLength,
		DefaultPeriodLength: DefaultPeriodLength,
		Age:                 DefaultAge,
	}
}

// TracksExtendedSymptoms reports whether perimenopause symptoms are recorded.
func (settings Settings) TracksExtendedSymptoms() bool {
	return settings.InPerimenopause || settings.InMenopause
}
