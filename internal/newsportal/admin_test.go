package newsportal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAlice(t *testing.T, m *Manager, repo *memoryRepo) {
	t.Helper()
	hash, err := m.credentials.Hash("correct")
	require.NoError(t, err)
	repo.addAdmin("alice", hash)
}

func TestManager_Login(t *testing.T) {
	m, repo, _ := newTestManager()
	seedAlice(t, m, repo)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		res, err := m.Login(ctx, " Alice ", "correct")
		require.NoError(t, err)
		assert.True(t, res.OK())
		assert.Equal(t, "alice", res.Username)
	})

	t.Run("UnknownUserAndWrongPasswordDiffer", func(t *testing.T) {
		unknown, err := m.Login(ctx, "bob", "correct")
		require.NoError(t, err)
		wrong, err := m.Login(ctx, "alice", "nope")
		require.NoError(t, err)

		assert.False(t, unknown.OK())
		assert.False(t, wrong.OK())
		assert.Empty(t, unknown.Username)
		assert.Empty(t, wrong.Username)
		require.NotNil(t, unknown.Alert)
		require.NotNil(t, wrong.Alert)
		assert.NotEqual(t, unknown.Alert.Message, wrong.Alert.Message)
		assert.Equal(t, SeverityDanger, wrong.Alert.Severity)
	})

	t.Run("StorageError", func(t *testing.T) {
		repo.err = errors.New("timeout")
		defer func() { repo.err = nil }()

		_, err := m.Login(ctx, "alice", "correct")
		assert.Error(t, err)
	})
}

func TestManager_ChangePassword(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		current, next string
		confirm       string
		wantSeverity  string
		wantMessage   string
		wantUpdated   bool
	}{
		{name: "wrong current", current: "bad", next: "n", confirm: "n", wantSeverity: SeverityDanger, wantMessage: msgWrongCurrent},
		{name: "mismatch with correct current", current: "correct", next: "n1", confirm: "n2", wantSeverity: SeverityDanger, wantMessage: msgPasswordsDiffer},
		{name: "empty new password", current: "correct", next: "", confirm: "", wantSeverity: SeverityDanger, wantMessage: msgEmptyPassword},
		{name: "success", current: "correct", next: "fresh", confirm: "fresh", wantSeverity: SeveritySuccess, wantMessage: msgPasswordChanged, wantUpdated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, repo, _ := newTestManager()
			seedAlice(t, m, repo)
			before := repo.admins["alice"].Password

			alert, err := m.ChangePassword(ctx, "Alice", tt.current, tt.next, tt.confirm)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSeverity, alert.Severity)
			assert.Equal(t, tt.wantMessage, alert.Message)

			after := repo.admins["alice"].Password
			if tt.wantUpdated {
				assert.Equal(t, 1, repo.updates)
				assert.True(t, m.credentials.Verify(tt.next, after))
			} else {
				assert.Equal(t, 0, repo.updates)
				assert.Equal(t, before, after)
			}
		})
	}
}

func TestManager_ChangePasswordUnknownUser(t *testing.T) {
	m, repo, _ := newTestManager()

	alert, err := m.ChangePassword(context.Background(), "ghost", "x", "y", "y")
	require.NoError(t, err)
	assert.Equal(t, msgUnknownUser, alert.Message)
	assert.Equal(t, 0, repo.updates)
}

func TestAlreadyLoggedIn(t *testing.T) {
	alert := AlreadyLoggedIn("alice")
	assert.Equal(t, "You're already logged in as alice", alert.Message)
	assert.Equal(t, SeverityWarning, alert.Severity)
}
