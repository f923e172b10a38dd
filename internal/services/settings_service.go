package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/ovucast/internal/models"
)

const (
	MinCycleLength  = 21
	MaxCycleLength  = 40
	MinPeriodLength = 1
	MaxPeriodLength = 10
	MinAge          = 8
	MaxAge          = 70
)

var (
	ErrSettingsLoadFailed             = errors.New("load settings failed")
	ErrSettingsSaveFailed             = errors.New("save settings failed")
	ErrSettingsCycleLengthOutOfRange  = errors.New("settings cycle length out of range")
	ErrSettingsPeriodLengthOutOfRange = errors.New("settings period length out of range")
	ErrSettingsAgeOutOfRange          = errors.New("settings age out of range")
)

type SettingsRepository interface {
	Load() (models.Settings, bool, error)
	CreateIfMissing(settings *models.Settings) error
	SaveProfile(settings *models.Settings) error
	UpdatePasscodeHash(passcodeHash string) error
	ClaimPasscodeHash(passcodeHash string) (bool, error)
	UpdateLastBackupAt(at time.Time) error
}

type SettingsInput struct {
	DefaultCycleLength  int
	DefaultPeriodLength int
	TrackingTemperature bool
	InPerimenopause     bool
	InMenopause         bool
	Age                 int
}

type SettingsService struct {
	settings SettingsRepository
}

func NewSettingsService(settings SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// Load returns the stored settings, persisting the defaults on first access.
func (service *SettingsService) Load() (models.Settings, error) {
	settings, found, err := service.settings.Load()
	if err != nil {
		return models.Settings{}, ErrSettingsLoadFailed
	}
	if found {
		return settings, nil
	}

	defaults := models.DefaultSettings()
	if err := service.settings.CreateIfMissing(&defaults); err != nil {
		return models.Settings{}, ErrSettingsSaveFailed
	}
	settings, found, err = service.settings.Load()
	if err != nil || !found {
		return models.Settings{}, ErrSettingsLoadFailed
	}
	return settings, nil
}

func (service *SettingsService) Update(input SettingsInput) (models.Settings, error) {
	if err := ValidateSettingsInput(input); err != nil {
		return models.Settings{}, err
	}

	settings := models.DefaultSettings()
	ApplySettingsInput(&settings, input)
	if err := service.settings.SaveProfile(&settings); err != nil {
		return models.Settings{}, ErrSettingsSaveFailed
	}
	return service.Load()
}

func (service *SettingsService) LoadPasscodeHash() (string, error) {
	settings, err := service.Load()
	if err != nil {
		return "", err
	}
	return settings.PasscodeHash, nil
}

func (service *SettingsService) StorePasscodeHash(passcodeHash string) error {
	if _, err := service.Load(); err != nil {
		return err
	}
	if err := service.settings.UpdatePasscodeHash(passcodeHash); err != nil {
		return ErrSettingsSaveFailed
	}
	return nil
}

// ClaimPasscodeHash stores the first passcode hash. It reports false when a
// passcode was already set, including one set concurrently.
func (service *SettingsService) ClaimPasscodeHash(passcodeHash string) (bool, error) {
	if _, err := service.Load(); err != nil {
		return false, err
	}
	claimed, err := service.settings.ClaimPasscodeHash(passcodeHash)
	if err != nil {
		return false, ErrSettingsSaveFailed
	}
	return claimed, nil
}

func (service *SettingsService) MarkBackedUp(at time.Time) error {
	if _, err := service.Load(); err != nil {
		return err
	}
	if err := service.settings.UpdateLastBackupAt(at.UTC()); err != nil {
		return ErrSettingsSaveFailed
	}
	return nil
}

func ValidateSettingsInput(input SettingsInput) error {
	if input.DefaultCycleLength < MinCycleLength || input.DefaultCycleLength > MaxCycleLength {
		return ErrSettingsCycleLengthOutOfRange
	}
	if input.DefaultPeriodLength < MinPeriodLength || input.DefaultPeriodLength > MaxPeriodLength {
		return ErrSettingsPeriodLengthOutOfRange
	}
	if input.Age < MinAge || input.Age > MaxAge {
		return ErrSettingsAgeOutOfRange
	}
	return nil
}

func ApplySettingsInput(settings *models.Settings, input SettingsInput) {
	if settings == nil {
		return
	}
	settings.DefaultCycleLength = input.DefaultCycleLength
	settings.DefaultPeriodLength = input.DefaultPeriodLength
	settings.TrackingTemperature = input.TrackingTemperature
	settings.InPerimenopause = input.InPerimenopause
	settings.InMenopause = input.InMenopause
	settings.Age = input.Age
}

func SettingsInputFrom(settings models.Settings) SettingsInput {
	return SettingsInput{
		DefaultCycleLength:  settings.DefaultCycleLength,
		DefaultPeriodLength: settings.DefaultPeriodLength,
		TrackingTemperature: settings.TrackingTemperature,
		InPerimenopause:     settings.InPerimenopause,
		InMenopause:         settings.InMenopause,
		Age:                 settings.Age,
	}
}
