package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/ovucast/internal/db"
	"github.com/terraincognita07/ovucast/internal/i18n"
	"github.com/terraincognita07/ovucast/internal/logger"
	"github.com/terraincognita07/ovucast/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL = 7 * 24 * time.Hour
	loginAttemptLimit   = 5
	loginAttemptWindow  = 15 * time.Minute
)

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	log          *logger.Logger
	now          func() time.Time

	repositories       *db.Repositories
	authService        *services.AuthService
	observationService *services.ObservationService
	settingsService    *services.SettingsService
	statsService       *services.StatsService
	backupService      *services.BackupService
	backupReminder     *services.BackupReminderService
	loginLimiter       *attemptLimiter
}

func NewHandler(database *gorm.DB, secret string, location *time.Location, i18nManager *i18n.Manager, cookieSecure bool, log *logger.Logger) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if location == nil {
		location = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}

	handler := &Handler{
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: cookieSecure,
		i18n:         i18nManager,
		log:          log,
		now:          time.Now,
		loginLimiter: newAttemptLimiter(),
	}
	return handler.withDependencies(database), nil
}

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.settingsService = services.NewSettingsService(handler.repositories.Settings)
	handler.authService = services.NewAuthService(handler.settingsService)
	handler.observationService = services.NewObservationService(handler.repositories.Observations)
	handler.statsService = services.NewStatsService(handler.observationService, handler.settingsService)
	handler.backupService = services.NewBackupService(handler.observationService, handler.settingsService, handler.repositories)
	handler.backupReminder = services.NewBackupReminderService(handler.repositories.Observations, handler.settingsService, handler.log, 0)
	return handler
}

// BackupReminder returns a reminder bound to the handler's stores, checking
// on the given interval once started.
func (handler *Handler) BackupReminder(interval time.Duration) *services.BackupReminderService {
	return services.NewBackupReminderService(handler.repositories.Observations, handler.settingsService, handler.log, interval)
}

// dayOf is the calendar day of now in the handler's location.
func (handler *Handler) dayOf(now time.Time) time.Time {
	return services.CalendarDay(now, handler.location)
}
