package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/odooclock/internal/client/config"
	"github.com/dmitrijs2005/odooclock/internal/client/models"
	"github.com/dmitrijs2005/odooclock/internal/client/session"
	"github.com/dmitrijs2005/odooclock/internal/common"
	"github.com/dmitrijs2005/odooclock/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)})))
}

func muteOutput(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

// stubInputs replaces the interactive prompts with canned answers.
func stubInputs(t *testing.T, answers map[string]string, password []byte) {
	t.Helper()
	origTD, origGP := getTextWithDefault, getPassword
	getTextWithDefault = func(_ *bufio.Reader, prompt, def string, _ io.Writer) (string, error) {
		if v, ok := answers[prompt]; ok {
			return v, nil
		}
		return def, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getTextWithDefault = origTD
		getPassword = origGP
	})
}

type fakeSession struct {
	authUID      int64
	authErr      error
	reconnectErr error
	logoutErr    error

	authed      bool
	lastProfile models.Profile

	authCalls      int
	reconnectCalls int
	logoutCalls    int
}

func (f *fakeSession) Authenticate(ctx context.Context, profile models.Profile) (int64, error) {
	f.authCalls++
	f.lastProfile = profile
	if f.authErr != nil {
		return 0, f.authErr
	}
	f.authed = true
	return f.authUID, nil
}

func (f *fakeSession) Reconnect(ctx context.Context) (int64, error) {
	f.reconnectCalls++
	if f.reconnectErr != nil {
		return 0, f.reconnectErr
	}
	f.authed = true
	return f.authUID, nil
}

func (f *fakeSession) Logout(ctx context.Context) error {
	f.logoutCalls++
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.authed = false
	return nil
}

func (f *fakeSession) IsAuthenticated() bool { return f.authed }

func (f *fakeSession) Session() *session.Session {
	if !f.authed {
		return nil
	}
	return &session.Session{UID: f.authUID}
}

func newTestApp(sess *fakeSession) *App {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Username = "user@example.com"
	return &App{
		config:  cfg,
		session: sess,
		log:     testLogger(),
	}
}

func TestLogin_SuccessUsesConfigDefaults(t *testing.T) {
	muteOutput(t)
	stubInputs(t, nil, []byte("secret"))

	sess := &fakeSession{authUID: 7}
	a := newTestApp(sess)

	require.NoError(t, a.Login(context.Background()))
	require.Equal(t, 1, sess.authCalls)
	require.Equal(t, models.Profile{
		URL:      "http://localhost:8069",
		Database: "odoo",
		Username: "user@example.com",
		Password: "secret",
	}, sess.lastProfile)
	require.Equal(t, "user@example.com", a.userName)
	require.True(t, a.isLoggedIn())
}

func TestLogin_PasswordWipedAfterUse(t *testing.T) {
	muteOutput(t)
	password := []byte("secret")
	stubInputs(t, nil, password)

	sess := &fakeSession{authUID: 7}
	a := newTestApp(sess)

	require.NoError(t, a.Login(context.Background()))
	for _, b := range password {
		require.Equal(t, byte(0), b)
	}
}

func TestLogin_IncompleteProfileNeverCallsServer(t *testing.T) {
	muteOutput(t)
	stubInputs(t, map[string]string{"Database": ""}, []byte("secret"))

	sess := &fakeSession{}
	a := newTestApp(sess)
	a.config.Database = ""

	err := a.Login(context.Background())
	require.ErrorIs(t, err, common.ErrProfileIncomplete)
	require.Zero(t, sess.authCalls)
}

func TestLogin_FailureKeepsLoggedOut(t *testing.T) {
	muteOutput(t)
	stubInputs(t, nil, []byte("wrong"))

	sess := &fakeSession{authErr: errors.New("invalid credentials")}
	a := newTestApp(sess)

	require.Error(t, a.Login(context.Background()))
	require.False(t, a.isLoggedIn())
	require.Empty(t, a.userName)
}

func TestReconnect_MissingConfiguration(t *testing.T) {
	muteOutput(t)

	sess := &fakeSession{reconnectErr: common.ErrMissingConfiguration}
	a := newTestApp(sess)

	err := a.Reconnect(context.Background())
	require.ErrorIs(t, err, common.ErrMissingConfiguration)
	require.False(t, a.isLoggedIn())
}

func TestLogout_ClearsUserName(t *testing.T) {
	muteOutput(t)

	sess := &fakeSession{authed: true}
	a := newTestApp(sess)
	a.userName = "user@example.com"

	require.NoError(t, a.Logout(context.Background()))
	require.Equal(t, 1, sess.logoutCalls)
	require.Empty(t, a.userName)
	require.False(t, a.isLoggedIn())
}
