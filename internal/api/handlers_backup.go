package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovucast/internal/services"
)

const backupUploadField = "file"

func (handler *Handler) ExportBackup(c *fiber.Ctx) error {
	now := handler.now()
	file, err := handler.backupService.Export(now)
	if err != nil {
		handler.log.Errorw("backup export failed", "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to export backup")
	}

	handler.log.Infow("backup exported", "backup_id", file.BackupID, "entries", len(file.Cycles))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", services.BackupFileName(now.In(handler.location))))
	return c.JSON(file)
}

func (handler *Handler) ImportBackup(c *fiber.Ctx) error {
	reader, err := backupReader(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	defer reader.Close()

	file, err := services.DecodeBackupFile(reader)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	restored, err := handler.backupService.Import(file)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBackupMissingCycles),
			errors.Is(err, services.ErrBackupMissingSettings),
			errors.Is(err, services.ErrBackupEntryInvalid),
			errors.Is(err, services.ErrBackupSettingsInvalid):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		default:
			handler.log.Errorw("backup import failed", "error", err)
			return apiError(c, fiber.StatusInternalServerError, "failed to import backup")
		}
	}

	handler.log.Infow("backup imported", "backup_id", file.BackupID, "entries", restored)
	return c.JSON(fiber.Map{"ok": true, "imported": restored})
}

func (handler *Handler) BackupStatus(c *fiber.Ctx) error {
	status, err := handler.backupReminder.Status(handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load backup status")
	}

	message := ""
	if status.Due {
		message = handler.translate(c, "backup.reminder."+status.Reason)
	}
	return c.JSON(fiber.Map{
		"due":               status.Due,
		"reason":            status.Reason,
		"message":           message,
		"observation_count": status.ObservationCount,
		"last_backup_at":    status.LastBackupAt,
		"days_since_backup": status.DaysSinceBackup,
	})
}

// backupReader accepts either a multipart upload or a raw JSON body.
func backupReader(c *fiber.Ctx) (io.ReadCloser, error) {
	if fileHeader, err := c.FormFile(backupUploadField); err == nil {
		return fileHeader.Open()
	}
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty backup body")
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}
