// Package auth provides the login capability for the ledger's admin UI.
// Credentials are verified against a configured bcrypt hash; there is no
// account store and no hardcoded secret.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is an opaque login token. The server is stateless; the token only
// proves a successful credential check to the client that holds it.
type Session struct {
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Authenticator checks credentials and mints a session.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (Session, error)
}

// StaticAuthenticator verifies against a single configured admin account.
type StaticAuthenticator struct {
	username     string
	passwordHash string
	ttl          time.Duration
}

func NewStatic(username, passwordHash string, ttl time.Duration) *StaticAuthenticator {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &StaticAuthenticator{username: username, passwordHash: passwordHash, ttl: ttl}
}

func (a *StaticAuthenticator) Authenticate(_ context.Context, creds Credentials) (Session, error) {
	if a.username == "" || a.passwordHash == "" {
		return Session{}, ErrInvalidCredentials
	}
	nameOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(a.username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(creds.Password))
	if !nameOK || passErr != nil {
		return Session{}, ErrInvalidCredentials
	}
	now := time.Now()
	return Session{
		Token:     newToken(),
		IssuedAt:  now,
		ExpiresAt: now.Add(a.ttl),
	}, nil
}

// HashPassword hashes a plain text password using bcrypt. Used by deploy
// tooling to produce ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func newToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))[:32]
	}
	return hex.EncodeToString(buf)
}
