package services

import (
	"context"
	"sync"
	"time"

	"github.com/terraincognita07/ovucast/internal/logger"
	"github.com/terraincognita07/ovucast/internal/models"
)

const (
	backupReminderMinEntries = 5
	backupReminderMaxAgeDays = 30
)

const (
	BackupReasonNone        = ""
	BackupReasonNeverBacked = "never_backed_up"
	BackupReasonStale       = "stale_backup"
)

type BackupReminderStatus struct {
	Due              bool       `json:"due"`
	Reason           string     `json:"reason,omitempty"`
	ObservationCount int64      `json:"observation_count"`
	LastBackupAt     *time.Time `json:"last_backup_at"`
	DaysSinceBackup  *int       `json:"days_since_backup,omitempty"`
}

type ReminderObservationCounter interface {
	Count() (int64, error)
}

type ReminderSettingsReader interface {
	Load() (models.Settings, error)
}

type BackupReminderService struct {
	observations ReminderObservationCounter
	settings     ReminderSettingsReader
	log          *logger.Logger
	interval     time.Duration
	now          func() time.Time

	mu         sync.Mutex
	lastWarned time.Time
}

func NewBackupReminderService(observations ReminderObservationCounter, settings ReminderSettingsReader, log *logger.Logger, interval time.Duration) *BackupReminderService {
	if log == nil {
		log = logger.Nop()
	}
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &BackupReminderService{
		observations: observations,
		settings:     settings,
		log:          log,
		interval:     interval,
		now:          time.Now,
	}
}

// Status reports whether a backup is due: never backed up with more than
// five observations, or more than thirty days since the last backup with at
// least one observation.
func (service *BackupReminderService) Status(now time.Time) (BackupReminderStatus, error) {
	count, err := service.observations.Count()
	if err != nil {
		return BackupReminderStatus{}, err
	}
	settings, err := service.settings.Load()
	if err != nil {
		return BackupReminderStatus{}, err
	}
	return EvaluateBackupReminder(count, settings.LastBackupAt, now), nil
}

func EvaluateBackupReminder(count int64, lastBackupAt *time.Time, now time.Time) BackupReminderStatus {
	status := BackupReminderStatus{ObservationCount: count, LastBackupAt: lastBackupAt}
	if lastBackupAt == nil {
		if count > backupReminderMinEntries {
			status.Due = true
			status.Reason = BackupReasonNeverBacked
		}
		return status
	}

	days := int(now.Sub(*lastBackupAt).Hours() / 24)
	status.DaysSinceBackup = &days
	if days > backupReminderMaxAgeDays && count >= 1 {
		status.Due = true
		status.Reason = BackupReasonStale
	}
	return status
}

// Start checks immediately and then on every interval until ctx is done.
func (service *BackupReminderService) Start(ctx context.Context) {
	ticker := time.NewTicker(service.interval)
	go func() {
		defer ticker.Stop()

		service.run()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.run()
			}
		}
	}()
}

func (service *BackupReminderService) run() {
	now := service.now()
	status, err := service.Status(now)
	if err != nil {
		service.log.Errorw("backup reminder: status check failed", "error", err)
		return
	}
	if !status.Due || !service.shouldWarn(now) {
		return
	}
	service.log.Warnw("backup reminder: export a backup soon",
		"reason", status.Reason,
		"observations", status.ObservationCount,
	)
}

// shouldWarn limits warnings to one per calendar day.
func (service *BackupReminderService) shouldWarn(now time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	today := dateOnly(now)
	if service.lastWarned.Equal(today) {
		return false
	}
	service.lastWarned = today
	return true
}
