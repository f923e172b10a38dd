package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/ovucast/internal/models"
)

const backupFileNameLayout = "2006-01-02_15-04-05"

var (
	ErrBackupMalformed       = errors.New("backup file is not valid JSON")
	ErrBackupMissingCycles   = errors.New("backup file has no cycles")
	ErrBackupMissingSettings = errors.New("backup file has no userSettings")
	ErrBackupEntryInvalid    = errors.New("backup entry invalid")
	ErrBackupSettingsInvalid = errors.New("backup settings invalid")
	ErrBackupRestoreFailed   = errors.New("restore backup failed")
)

type BackupEntry struct {
	Date                  string                          `json:"date"`
	Flow                  string                          `json:"flow"`
	Discharge             string                          `json:"discharge"`
	Temperature           *float64                        `json:"temperature"`
	Symptoms              models.SymptomSet               `json:"symptoms"`
	PerimenopauseSymptoms *models.PerimenopauseSymptomSet `json:"perimenopauseSymptoms,omitempty"`
	Mood                  string                          `json:"mood"`
	EnergyLevel           string                          `json:"energyLevel"`
	Libido                string                          `json:"libido"`
	Notes                 string                          `json:"notes"`
}

type BackupSettings struct {
	DefaultCycleLength  int  `json:"defaultCycleLength"`
	DefaultPeriodLength int  `json:"defaultPeriodLength"`
	TrackingBBT         bool `json:"trackingBBT"`
	InPerimenopause     bool `json:"inPerimenopause"`
	InMenopause         bool `json:"inMenopause"`
	Age                 int  `json:"age"`
}

// BackupFile is the portable snapshot of every observation plus settings.
// It never carries the passcode hash.
type BackupFile struct {
	BackupID     string          `json:"backupId"`
	Cycles       []BackupEntry   `json:"cycles"`
	UserSettings *BackupSettings `json:"userSettings"`
	LastSaved    string          `json:"lastSaved"`
}

type BackupObservationReader interface {
	ListAll() ([]models.Observation, error)
}

type BackupSettingsStore interface {
	Load() (models.Settings, error)
	MarkBackedUp(at time.Time) error
}

type BackupRestorer interface {
	RestoreSnapshot(observations []models.Observation, settings models.Settings) error
}

type BackupService struct {
	observations BackupObservationReader
	settings     BackupSettingsStore
	restorer     BackupRestorer
}

func NewBackupService(observations BackupObservationReader, settings BackupSettingsStore, restorer BackupRestorer) *BackupService {
	return &BackupService{
		observations: observations,
		settings:     settings,
		restorer:     restorer,
	}
}

// Export snapshots the store and records now as the last backup time.
func (service *BackupService) Export(now time.Time) (BackupFile, error) {
	observations, err := service.observations.ListAll()
	if err != nil {
		return BackupFile{}, err
	}
	settings, err := service.settings.Load()
	if err != nil {
		return BackupFile{}, err
	}

	entries := make([]BackupEntry, 0, len(observations))
	for _, observation := range observations {
		entries = append(entries, backupEntryFrom(observation))
	}
	backupSettings := backupSettingsFrom(settings)

	file := BackupFile{
		BackupID:     uuid.NewString(),
		Cycles:       entries,
		UserSettings: &backupSettings,
		LastSaved:    now.UTC().Format(time.RFC3339),
	}
	if err := service.settings.MarkBackedUp(now); err != nil {
		return BackupFile{}, err
	}
	return file, nil
}

// Import validates file completely and then replaces every observation and
// the settings in one transaction. The current passcode and backup marker
// are kept.
func (service *BackupService) Import(file BackupFile) (int, error) {
	if file.Cycles == nil {
		return 0, ErrBackupMissingCycles
	}
	if file.UserSettings == nil {
		return 0, ErrBackupMissingSettings
	}

	input := settingsInputFromBackup(*file.UserSettings)
	if err := ValidateSettingsInput(input); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBackupSettingsInvalid, err)
	}

	current, err := service.settings.Load()
	if err != nil {
		return 0, err
	}
	restored := current
	ApplySettingsInput(&restored, input)

	observations := make([]models.Observation, 0, len(file.Cycles))
	seen := make(map[string]struct{}, len(file.Cycles))
	for index, entry := range file.Cycles {
		observation, err := observationFromBackup(entry, restored)
		if err != nil {
			return 0, fmt.Errorf("%w: entry %d: %w", ErrBackupEntryInvalid, index, err)
		}
		key := FormatDay(observation.Date)
		if _, exists := seen[key]; exists {
			return 0, fmt.Errorf("%w: entry %d: %w", ErrBackupEntryInvalid, index, ErrDuplicateObservation)
		}
		seen[key] = struct{}{}
		observations = append(observations, observation)
	}

	if err := service.restorer.RestoreSnapshot(observations, restored); err != nil {
		return 0, ErrBackupRestoreFailed
	}
	return len(observations), nil
}

func DecodeBackupFile(reader io.Reader) (BackupFile, error) {
	file := BackupFile{}
	if err := json.NewDecoder(reader).Decode(&file); err != nil {
		return BackupFile{}, ErrBackupMalformed
	}
	return file, nil
}

func BackupFileName(now time.Time) string {
	return fmt.Sprintf("cycle_tracker_%s.json", now.Format(backupFileNameLayout))
}

func backupEntryFrom(observation models.Observation) BackupEntry {
	return BackupEntry{
		Date:                  FormatDay(observation.Date),
		Flow:                  observation.Flow,
		Discharge:             observation.Discharge,
		Temperature:           observation.Temperature,
		Symptoms:              observation.Symptoms,
		PerimenopauseSymptoms: observation.ExtendedSymptoms,
		Mood:                  observation.Mood,
		EnergyLevel:           observation.EnergyLevel,
		Libido:                observation.Libido,
		Notes:                 observation.Notes,
	}
}

func backupSettingsFrom(settings models.Settings) BackupSettings {
	return BackupSettings{
		DefaultCycleLength:  settings.DefaultCycleLength,
		DefaultPeriodLength: settings.DefaultPeriodLength,
		TrackingBBT:         settings.TrackingTemperature,
		InPerimenopause:     settings.InPerimenopause,
		InMenopause:         settings.InMenopause,
		Age:                 settings.Age,
	}
}

func settingsInputFromBackup(settings BackupSettings) SettingsInput {
	return SettingsInput{
		DefaultCycleLength:  settings.DefaultCycleLength,
		DefaultPeriodLength: settings.DefaultPeriodLength,
		TrackingTemperature: settings.TrackingBBT,
		InPerimenopause:     settings.InPerimenopause,
		InMenopause:         settings.InMenopause,
		Age:                 settings.Age,
	}
}

func observationFromBackup(entry BackupEntry, settings models.Settings) (models.Observation, error) {
	day, err := ParseDay(entry.Date)
	if err != nil {
		return models.Observation{}, fmt.Errorf("invalid date %q", entry.Date)
	}
	input, err := ValidateObservationInput(ObservationInput{
		Flow:             entry.Flow,
		Discharge:        entry.Discharge,
		Temperature:      entry.Temperature,
		Symptoms:         entry.Symptoms,
		ExtendedSymptoms: entry.PerimenopauseSymptoms,
		Mood:             entry.Mood,
		EnergyLevel:      entry.EnergyLevel,
		Libido:           entry.Libido,
		Notes:            entry.Notes,
	}, settings)
	if err != nil {
		return models.Observation{}, err
	}

	observation := models.Observation{Date: day}
	applyObservationInput(&observation, input)
	return observation, nil
}
