package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovucast/internal/services"
)

type passcodeInput struct {
	Passcode        string `json:"passcode" form:"passcode"`
	ConfirmPasscode string `json:"confirm_passcode" form:"confirm_passcode"`
}

func (handler *Handler) SetupStatus(c *fiber.Ctx) error {
	configured, err := handler.authService.HasPasscode()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
	}
	return c.JSON(fiber.Map{"passcode_set": configured})
}

func (handler *Handler) Setup(c *fiber.Ctx) error {
	input := passcodeInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.ConfirmPasscode != "" && input.ConfirmPasscode != input.Passcode {
		return apiError(c, fiber.StatusBadRequest, "passcodes do not match")
	}

	if err := handler.authService.Setup(input.Passcode); err != nil {
		switch {
		case errors.Is(err, services.ErrPasscodeAlreadySet):
			return apiError(c, fiber.StatusConflict, "passcode already set")
		case errors.Is(err, services.ErrWeakPasscode):
			return apiError(c, fiber.StatusBadRequest, "weak passcode")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to store passcode")
		}
	}

	handler.log.Infow("owner passcode configured")
	if err := handler.startSession(c); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	key := clientKey(c)
	now := handler.now()
	if handler.loginLimiter.blocked(key, now, loginAttemptLimit, loginAttemptWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	input := passcodeInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.authService.Authenticate(input.Passcode); err != nil {
		switch {
		case errors.Is(err, services.ErrPasscodeNotSet):
			return apiError(c, fiber.StatusConflict, "passcode not set")
		case errors.Is(err, services.ErrInvalidPasscode):
			handler.loginLimiter.recordFailure(key, now, loginAttemptWindow)
			handler.log.Warnw("login failed", "client", key)
			return apiError(c, fiber.StatusUnauthorized, "invalid passcode")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to load settings")
		}
	}

	handler.loginLimiter.clear(key)
	if err := handler.startSession(c); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) startSession(c *fiber.Ctx) error {
	passcodeHash, err := handler.settingsService.LoadPasscodeHash()
	if err != nil {
		return err
	}
	token, err := handler.buildToken(passcodeHash, defaultAuthTokenTTL)
	if err != nil {
		return err
	}
	handler.setAuthCookie(c, token)
	return nil
}
