package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/ovucast/internal/db"
	"github.com/terraincognita07/ovucast/internal/security"
	"github.com/terraincognita07/ovucast/internal/services"
)

const (
	temporaryPasscodeLength   = 12
	temporaryPasscodeAttempts = 32
	temporaryPasscodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

var ErrPasscodeMismatch = errors.New("passcodes do not match")

type passcodeReader func(prompt string) (string, error)

type passcodeResetter interface {
	Reset(passcode string) error
}

// RunResetPasscodeCommand replaces the owner passcode stored in dbPath,
// either with one typed twice on the terminal or with a generated one.
func RunResetPasscodeCommand(dbPath string, temporary bool) error {
	return resetPasscodeInDatabase(dbPath, temporary, terminalPasscodeReader(os.Stdin, os.Stdout), os.Stdout)
}

func resetPasscodeInDatabase(dbPath string, temporary bool, read passcodeReader, out io.Writer) error {
	database, err := db.OpenSQLite(dbPath, nil)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	repositories := db.NewRepositories(database)
	auth := services.NewAuthService(services.NewSettingsService(repositories.Settings))
	return resetPasscode(auth, temporary, read, out)
}

func resetPasscode(auth passcodeResetter, temporary bool, read passcodeReader, out io.Writer) error {
	if temporary {
		passcode, err := generateTemporaryPasscode()
		if err != nil {
			return fmt.Errorf("generate temporary passcode: %w", err)
		}
		if err := auth.Reset(passcode); err != nil {
			return fmt.Errorf("store passcode: %w", err)
		}
		fmt.Fprintln(out, "Passcode reset successful")
		fmt.Fprintf(out, "Temporary passcode: %s\n", passcode)
		return nil
	}

	passcode, err := read("New passcode: ")
	if err != nil {
		return fmt.Errorf("read passcode: %w", err)
	}
	confirmation, err := read("Repeat passcode: ")
	if err != nil {
		return fmt.Errorf("read passcode: %w", err)
	}
	if passcode != confirmation {
		return ErrPasscodeMismatch
	}
	if err := auth.Reset(passcode); err != nil {
		return fmt.Errorf("store passcode: %w", err)
	}
	fmt.Fprintln(out, "Passcode reset successful")
	return nil
}

func generateTemporaryPasscode() (string, error) {
	return security.RandomStringWhere(
		temporaryPasscodeLength,
		temporaryPasscodeAlphabet,
		temporaryPasscodeAttempts,
		func(candidate string) bool {
			return services.ValidatePasscodeStrength(candidate) == nil
		},
	)
}

func terminalPasscodeReader(stdin *os.File, out io.Writer) passcodeReader {
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		value, err := readPasscodeNoEcho(stdin)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(value), nil
	}
}
