package newsportal

import (
	"context"
	"fmt"
	"strings"
)

const (
	msgUnknownUser     = "User doesn't exist."
	msgWrongPassword   = "Password is wrong."
	msgWrongCurrent    = "You entered your current password wrong."
	msgEmptyPassword   = "New password must not be empty."
	msgPasswordsDiffer = "Passwords don't match."
	msgPasswordChanged = "Password successfully changed."
)

// NormalizeUsername is applied to every username before it is looked up or
// stored in a session.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Login checks the credentials. A failed attempt is reported through the
// result alert; the error is reserved for storage failures.
func (m *Manager) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = NormalizeUsername(username)

	admin, err := m.db.AdminByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("db get admin: %w", err)
	}

	if admin == nil {
		m.log.Info("login failed", "username", username, "reason", "unknown user")
		return LoginResult{Alert: &Alert{Severity: SeverityDanger, Message: msgUnknownUser}}, nil
	}

	if !m.credentials.Verify(password, admin.Password) {
		m.log.Info("login failed", "username", username, "reason", "wrong password")
		return LoginResult{Alert: &Alert{Severity: SeverityDanger, Message: msgWrongPassword}}, nil
	}

	m.log.Info("login succeeded", "username", username)

	return LoginResult{Username: username}, nil
}

// AlreadyLoggedIn is the alert for a login attempt made with a session.
func AlreadyLoggedIn(username string) Alert {
	return Alert{Severity: SeverityWarning, Message: fmt.Sprintf("You're already logged in as %s", username)}
}

// ChangePassword replaces the password of username. Storage is only touched
// when every check passes; the returned alert describes the outcome.
func (m *Manager) ChangePassword(ctx context.Context, username, current, next, confirm string) (Alert, error) {
	username = NormalizeUsername(username)

	admin, err := m.db.AdminByUsername(ctx, username)
	if err != nil {
		return Alert{}, fmt.Errorf("db get admin: %w", err)
	}

	switch {
	case admin == nil:
		return Alert{Severity: SeverityDanger, Message: msgUnknownUser}, nil
	case !m.credentials.Verify(current, admin.Password):
		return Alert{Severity: SeverityDanger, Message: msgWrongCurrent}, nil
	case next == "":
		return Alert{Severity: SeverityDanger, Message: msgEmptyPassword}, nil
	case next != confirm:
		return Alert{Severity: SeverityDanger, Message: msgPasswordsDiffer}, nil
	}

	hash, err := m.credentials.Hash(next)
	if err != nil {
		return Alert{}, err
	}

	if err := m.db.UpdateAdminPassword(ctx, username, hash); err != nil {
		return Alert{}, fmt.Errorf("db update admin password: %w", err)
	}

	m.log.Info("password changed", "username", username)

	return Alert{Severity: SeveritySuccess, Message: msgPasswordChanged}, nil
}
