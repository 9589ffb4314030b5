// Package secretstore persists the connection profile between runs.
// It is the local stand-in for a platform secure store: a small SQLite
// key-value table with the password sealed at rest.
package secretstore

import (
	"context"

	"github.com/dmitrijs2005/odooclock/internal/client/models"
)

// Store is the persistence contract the session layer depends on.
// Implementations must survive process restart and be clearable.
type Store interface {
	// Save replaces any previously stored profile.
	Save(ctx context.Context, p models.Profile) error

	// Load returns the stored profile, or common.ErrMissingConfiguration
	// if none was saved.
	Load(ctx context.Context) (*models.Profile, error)

	// Exists reports whether a complete profile has been saved.
	Exists(ctx context.Context) (bool, error)

	// Clear erases the stored profile. Safe to call when nothing is stored.
	Clear(ctx context.Context) error
}
