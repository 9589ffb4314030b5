package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/odooclock/internal/client/models"
	"github.com/dmitrijs2005/odooclock/internal/common"
)

// getTextWithDefault and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var getTextWithDefault = GetTextWithDefault
var getPassword = GetPassword

// Login prompts for a connection profile (with configured values offered as
// defaults) and authenticates. On success the profile is saved for later
// reconnects. The password byte slice is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	url, err := getTextWithDefault(a.reader, "Server URL", a.config.ServerURL, os.Stdout)
	if err != nil {
		return err
	}

	database, err := getTextWithDefault(a.reader, "Database", a.config.Database, os.Stdout)
	if err != nil {
		return err
	}

	userName, err := getTextWithDefault(a.reader, "Login", a.config.Username, os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	profile := models.Profile{
		URL:      url,
		Database: database,
		Username: userName,
		Password: string(password),
	}
	if !profile.Complete() {
		printlnFn("All fields are required.")
		return common.ErrProfileIncomplete
	}

	uid, err := a.session.Authenticate(ctx, profile)
	if err != nil {
		a.log.Warn(ctx, "login failed", "err", err)
		printlnFn("Login failed:", err.Error())
		return err
	}

	a.userName = userName
	a.log.Info(ctx, "logged in", "uid", uid)
	printlnFn("Success!")
	return nil
}

// Reconnect resumes a session using the saved profile.
func (a *App) Reconnect(ctx context.Context) error {
	uid, err := a.session.Reconnect(ctx)
	if err != nil {
		if errors.Is(err, common.ErrMissingConfiguration) {
			printlnFn("No saved profile. Use 'login' first.")
		} else {
			printlnFn("Reconnect failed:", err.Error())
		}
		return err
	}

	a.log.Info(ctx, "reconnected", "uid", uid)
	printlnFn("Reconnected.")
	return nil
}

// Logout forgets the session and erases the saved profile.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	a.userName = ""
	printlnFn("Logged out.")
	return nil
}
