package secretstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/odooclock/internal/client/models"
	"github.com/dmitrijs2005/odooclock/internal/common"
	"github.com/dmitrijs2005/odooclock/internal/cryptox"
	"github.com/dmitrijs2005/odooclock/internal/dbx"
)

// Stored keys. The password is sealed with a key derived from keySecret and
// keySalt; this keeps credentials out of plaintext at rest, while
// confidentiality ultimately rests on file permissions, as with any
// on-device store.
const (
	keyURL        = "server_url"
	keyDatabase   = "database"
	keyUsername   = "username"
	keyPassword   = "password"
	keySalt       = "salt"
	keySecret     = "secret"
	keyConfigured = "configured"
)

// InitDatabase opens (creating if needed) the SQLite file backing the store.
func InitDatabase(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS metadata (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing store schema: %w", err)
	}
	return db, nil
}

// SQLiteStore is the Store implementation over a metadata key-value table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) get(ctx context.Context, q dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

// Save seals the password and writes the whole profile in one transaction,
// so a crash can never leave a half-written profile marked as configured.
func (s *SQLiteStore) Save(ctx context.Context, p models.Profile) error {
	salt := common.GenerateRandByteArray(16)
	secret := common.GenerateRandByteArray(32)

	sealed, err := cryptox.Seal([]byte(p.Password), cryptox.DeriveKey(secret, salt))
	if err != nil {
		return fmt.Errorf("sealing password: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		pairs := map[string][]byte{
			keyURL:        []byte(p.URL),
			keyDatabase:   []byte(p.Database),
			keyUsername:   []byte(p.Username),
			keyPassword:   sealed,
			keySalt:       salt,
			keySecret:     secret,
			keyConfigured: []byte("true"),
		}
		for k, v := range pairs {
			if err := s.set(ctx, tx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Load(ctx context.Context) (*models.Profile, error) {
	configured, err := s.get(ctx, s.db, keyConfigured)
	if err != nil {
		return nil, err
	}
	if string(configured) != "true" {
		return nil, common.ErrMissingConfiguration
	}

	url, err := s.get(ctx, s.db, keyURL)
	if err != nil {
		return nil, err
	}
	database, err := s.get(ctx, s.db, keyDatabase)
	if err != nil {
		return nil, err
	}
	username, err := s.get(ctx, s.db, keyUsername)
	if err != nil {
		return nil, err
	}
	sealed, err := s.get(ctx, s.db, keyPassword)
	if err != nil {
		return nil, err
	}
	salt, err := s.get(ctx, s.db, keySalt)
	if err != nil {
		return nil, err
	}
	secret, err := s.get(ctx, s.db, keySecret)
	if err != nil {
		return nil, err
	}

	if len(url) == 0 || len(database) == 0 || len(username) == 0 ||
		len(sealed) == 0 || len(salt) == 0 || len(secret) == 0 {
		return nil, common.ErrProfileIncomplete
	}

	password, err := cryptox.Open(sealed, cryptox.DeriveKey(secret, salt))
	if err != nil {
		return nil, fmt.Errorf("unsealing password: %w", err)
	}

	return &models.Profile{
		URL:      string(url),
		Database: string(database),
		Username: string(username),
		Password: string(password),
	}, nil
}

func (s *SQLiteStore) Exists(ctx context.Context) (bool, error) {
	configured, err := s.get(ctx, s.db, keyConfigured)
	if err != nil {
		return false, err
	}
	return string(configured) == "true", nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM metadata`)
		if err != nil {
			return fmt.Errorf("failed to clear metadata: %w", err)
		}
		return nil
	})
}
