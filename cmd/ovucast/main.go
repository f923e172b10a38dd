package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/terraincognita07/ovucast/internal/api"
	"github.com/terraincognita07/ovucast/internal/cli"
	"github.com/terraincognita07/ovucast/internal/config"
	"github.com/terraincognita07/ovucast/internal/db"
	"github.com/terraincognita07/ovucast/internal/i18n"
	"github.com/terraincognita07/ovucast/internal/logger"
	"go.uber.org/zap"
)

const (
	commandResetPasscode = "reset-passcode"
	shutdownTimeout      = 10 * time.Second
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return serve()
	}
	switch args[0] {
	case commandResetPasscode:
		return runResetPasscode(args[1:])
	default:
		return fmt.Errorf("unknown command %q (available: %s)", args[0], commandResetPasscode)
	}
}

func runResetPasscode(args []string) error {
	temporary, err := parseResetPasscodeFlags(args)
	if err != nil {
		return err
	}
	dbPath, err := config.LoadDBPath()
	if err != nil {
		return err
	}
	return cli.RunResetPasscodeCommand(dbPath, temporary)
}

func parseResetPasscodeFlags(args []string) (bool, error) {
	flags := flag.NewFlagSet(commandResetPasscode, flag.ContinueOnError)
	temporary := flags.Bool("temporary", false, "generate a temporary passcode instead of prompting")
	if err := flags.Parse(args); err != nil {
		return false, err
	}
	if flags.NArg() > 0 {
		return false, fmt.Errorf("unexpected arguments: %v", flags.Args())
	}
	return *temporary, nil
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	port, err := resolvePort(cfg.Port)
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel)
	defer func() {
		_ = log.Sync()
	}()
	for _, warning := range cfg.Warnings {
		log.Warnw(warning)
	}
	time.Local = cfg.Location

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	i18nManager, err := i18n.NewDefaultManager(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(database, cfg.SecretKey, cfg.Location, i18nManager, cfg.CookieSecure, log)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newApp(handler, log)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	handler.BackupReminder(cfg.BackupReminderInterval).Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Errorw("server shutdown failed", "error", err)
		}
	}()

	log.Infow("ovucast listening",
		"addr", "0.0.0.0:"+port,
		"db", cfg.DBPath,
		"tz", cfg.Location.String(),
	)
	if err := app.Listen(":" + port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newApp(handler *api.Handler, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "ovucast",
		DisableStartupMessage: true,
		BodyLimit:             8 * 1024 * 1024,
		ErrorHandler:          jsonErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${status} ${method} ${path} ${latency} request_id=${locals:requestid}\n",
		Output: zap.NewStdLog(log.Desugar()).Writer(),
	}))
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func jsonErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func resolvePort(raw string) (string, error) {
	if raw == "" {
		return "8080", nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}
