package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/internal/utils"
)

// KeyringConfig selects a PostgreSQL connection string stored in the OS keyring.
const KeyringConfig = "keyring"

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
	_ Provider = (*JSONStore)(nil)
	_ Migrator = (*sqlite.Store)(nil)
	_ Migrator = (*postgres.Store)(nil)
)

// Kind names a storage backend.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindJSON     Kind = "json"
)

// IsPostgresURL reports whether the config value is a PostgreSQL URL.
func IsPostgresURL(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// DetectKind maps a --config value to the backend that serves it.
func DetectKind(config string) Kind {
	switch {
	case config == KeyringConfig || IsPostgresURL(config):
		return KindPostgres
	case strings.TrimSpace(config) == "" && os.Getenv(constants.EnvDBConnection) != "":
		return KindPostgres
	case strings.HasSuffix(strings.ToLower(config), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// ResolveConnectionString picks the PostgreSQL connection string in order:
// the environment, the OS keyring, then the config value itself. Only the
// config value is refused when it carries a password.
func ResolveConnectionString(config string) (string, error) {
	if env := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); env != "" {
		logger.Debug("Using connection string from environment", "var", constants.EnvDBConnection)
		return env, nil
	}

	if config == KeyringConfig {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return "", fmt.Errorf("no connection string in keyring, run '%s keyring set' first", constants.AppName)
			}
			return "", err
		}
		return connStr, nil
	}

	if _, err := postgres.ValidateConnString(config); err != nil {
		return "", err
	}
	return config, nil
}

// New returns the storage provider for a --config value without opening it.
func New(config string) (Provider, error) {
	switch DetectKind(config) {
	case KindPostgres:
		connStr, err := ResolveConnectionString(config)
		if err != nil {
			return nil, err
		}
		return postgres.New(connStr), nil
	case KindJSON:
		return NewJSONStore(utils.ExpandPath(config)), nil
	default:
		if config == "" {
			config = constants.DefaultConfigPath
		}
		return sqlite.NewStore(utils.ExpandPath(config)), nil
	}
}

// IsFileBacked reports whether p keeps its data in a local file that can be
// backed up by copying.
func IsFileBacked(p Provider) bool {
	_, isPostgres := p.(*postgres.Store)
	return !isPostgres
}
