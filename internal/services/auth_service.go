package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasscodeNotSet     = errors.New("passcode not set")
	ErrPasscodeAlreadySet = errors.New("passcode already set")
	ErrInvalidPasscode    = errors.New("invalid passcode")
	ErrPasscodeHashFailed = errors.New("hash passcode failed")
)

type PasscodeStore interface {
	LoadPasscodeHash() (string, error)
	StorePasscodeHash(passcodeHash string) error
	ClaimPasscodeHash(passcodeHash string) (bool, error)
}

// AuthService guards the single owner passcode.
type AuthService struct {
	store PasscodeStore
}

func NewAuthService(store PasscodeStore) *AuthService {
	return &AuthService{store: store}
}

func (service *AuthService) HasPasscode() (bool, error) {
	hash, err := service.store.LoadPasscodeHash()
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(hash) != "", nil
}

// Setup stores the first passcode. It refuses once a passcode exists; of
// several concurrent setups exactly one wins.
func (service *AuthService) Setup(passcode string) error {
	exists, err := service.HasPasscode()
	if err != nil {
		return err
	}
	if exists {
		return ErrPasscodeAlreadySet
	}
	if err := ValidatePasscodeStrength(passcode); err != nil {
		return err
	}
	hash, err := HashPasscode(passcode)
	if err != nil {
		return err
	}

	claimed, err := service.store.ClaimPasscodeHash(hash)
	if err != nil {
		return err
	}
	if !claimed {
		return ErrPasscodeAlreadySet
	}
	return nil
}

// Reset replaces the passcode unconditionally.
func (service *AuthService) Reset(passcode string) error {
	if err := ValidatePasscodeStrength(passcode); err != nil {
		return err
	}
	hash, err := HashPasscode(passcode)
	if err != nil {
		return err
	}
	return service.store.StorePasscodeHash(hash)
}

func (service *AuthService) Authenticate(passcode string) error {
	hash, err := service.store.LoadPasscodeHash()
	if err != nil {
		return err
	}
	if strings.TrimSpace(hash) == "" {
		return ErrPasscodeNotSet
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) != nil {
		return ErrInvalidPasscode
	}
	return nil
}

func HashPasscode(passcode string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrPasscodeHashFailed
	}
	return string(hash), nil
}
