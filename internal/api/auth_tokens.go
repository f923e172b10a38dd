package api

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	authCookieName     = "ovucast_auth"
	authSubject        = "owner"
	contextLanguageKey = "current_language"
)

var (
	errMissingToken  = errors.New("missing auth token")
	errInvalidToken  = errors.New("invalid token")
	errStaleSession  = errors.New("session predates passcode change")
	errPasscodeUnset = errors.New("passcode not set")
)

// authClaims binds a session to the passcode that created it, so replacing
// the passcode ends every older session.
type authClaims struct {
	Fingerprint string `json:"pfp"`
	jwt.RegisteredClaims
}

func passcodeFingerprint(passcodeHash string) string {
	sum := sha256.Sum256([]byte(passcodeHash))
	return hex.EncodeToString(sum[:8])
}

func (handler *Handler) buildToken(passcodeHash string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultAuthTokenTTL
	}
	now := handler.now()

	claims := authClaims{
		Fingerprint: passcodeFingerprint(passcodeHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   authSubject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
}

func (handler *Handler) parseToken(raw string) (*authClaims, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithTimeFunc(handler.now), jwt.WithSubject(authSubject), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Cookies(authCookieName))
	if raw == "" {
		raw = bearerToken(c)
	}
	if raw == "" {
		return errMissingToken
	}

	claims, err := handler.parseToken(raw)
	if err != nil {
		return err
	}

	passcodeHash, err := handler.settingsService.LoadPasscodeHash()
	if err != nil {
		return err
	}
	if strings.TrimSpace(passcodeHash) == "" {
		return errPasscodeUnset
	}
	if claims.Fingerprint != passcodeFingerprint(passcodeHash) {
		return errStaleSession
	}
	return nil
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Strict",
		Expires:  handler.now().Add(defaultAuthTokenTTL),
	})
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Strict",
		Expires:  handler.now().Add(-time.Hour),
	})
}
