package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const SessionCookie = "session"

var ErrInvalidToken = errors.New("invalid token")

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Sessions keeps the logged-in administrator in a signed client-side cookie.
// The signing key is fixed for the lifetime of the process.
type Sessions struct {
	key    []byte
	maxAge time.Duration
	now    func() time.Time
}

func NewSessions(key []byte, maxAge time.Duration) *Sessions {
	return &Sessions{
		key:    key,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Encode signs claims into a compact token.
func (s *Sessions) Encode(claims jwt.Claims) (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// Decode verifies value and fills claims.
func (s *Sessions) Decode(value string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}

	return nil
}

// Start establishes a session for username.
func (s *Sessions) Start(w http.ResponseWriter, r *http.Request, username string) error {
	now := s.now()
	token, err := s.Encode(&sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
		},
	})
	if err != nil {
		return err
	}

	SetCookie(w, r, SessionCookie, token, int(s.maxAge.Seconds()))

	return nil
}

// Username returns the logged-in administrator. Missing, expired or tampered
// cookies all mean no session.
func (s *Sessions) Username(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	var claims sessionClaims
	if err := s.Decode(cookie.Value, &claims); err != nil || claims.Username == "" {
		return "", false
	}

	return claims.Username, true
}

// Clear ends the session.
func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) {
	SetCookie(w, r, SessionCookie, "", -1)
}

// SetCookie writes an HttpOnly cookie for the whole site. maxAge < 0 deletes it.
func SetCookie(w http.ResponseWriter, r *http.Request, name, value string, maxAge int) {
	// Detect HTTPS from the current request perspective only
	isHTTPS := r != nil && (r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https"))

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}
