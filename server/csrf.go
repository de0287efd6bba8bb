package server

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-league-admin/internal/errors"
)

// csrfClaims binds an anti-forgery token to one session. A rotated session invalidates every earlier token.
type csrfClaims struct {
	SessionID string `json:"sid"`
	jwtlib.RegisteredClaims
}

type csrfIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func newCSRFIssuer(secret []byte, ttl time.Duration, now func() time.Time) *csrfIssuer {
	return &csrfIssuer{secret: secret, ttl: ttl, now: now}
}

func (c *csrfIssuer) Issue(sessionID string) (string, error) {
	now := c.now()
	claims := csrfClaims{
		SessionID: sessionID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("[csrfIssuer.Issue] failed to sign token: %w", err)
	}
	return token, nil
}

// Verify checks the signature, expiry and session binding of token.
func (c *csrfIssuer) Verify(token, sessionID string) error {
	if token == "" {
		return errors.ErrCSRFTokenMissing
	}

	claims := &csrfClaims{}
	_, err := jwtlib.ParseWithClaims(token, claims, func(*jwtlib.Token) (any, error) {
		return c.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}), jwtlib.WithTimeFunc(c.now))
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrCSRFTokenMismatch, err)
	}
	if claims.SessionID != sessionID {
		return fmt.Errorf("%w: token belongs to another session", errors.ErrCSRFTokenMismatch)
	}
	return nil
}
