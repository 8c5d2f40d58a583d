package repository

import (
	"embed"
	"errors"
	"fmt"
	"path/filepath"

	"wingsync/internal/models"
)

var (
	// ErrNotFound means the lookup matched no link. Callers turn this into a
	// "no data" reply, never a failure message.
	ErrNotFound = errors.New("link not found")

	// ErrStorageUnavailable means the relational backend stopped answering
	// after startup already committed to it. Operations fail instead of
	// switching backends mid-session.
	ErrStorageUnavailable = errors.New("storage backend unavailable")

	// ErrPersistFailed means the file snapshot could not be written. The
	// in-memory mutation still stands.
	ErrPersistFailed = errors.New("failed to persist link data")
)

const (
	BackendPostgres = "PostgreSQL Database"
	BackendFile     = "File-based Storage"
)

type Links interface {
	Upsert(link models.Link) error
	RemoveByUUID(uuid string) error
	RemoveByName(username string) error
	FindByDiscordID(discordID string) ([]string, error)
	FindDiscordNameByUsername(username string) (string, error)
	FindDiscordIDByUUID(uuid string) (string, error)
	All() ([]models.Link, error)
	Count() (int, error)
	Close() error
}

type Logger interface {
	Error(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Info(msg string, args ...interface{})
}

type Config struct {
	PostgresEnabled bool   `env:"DB_ENABLED" envDefault:"false"`
	Host            string `env:"DB_HOST" envDefault:"localhost"`
	Port            string `env:"DB_PORT" envDefault:"5432"`
	Username        string `env:"DB_USERNAME"`
	Password        string `env:"DB_PASSWORD"`
	DBName          string `env:"DB_NAME"`
	SSLMode         string `env:"DB_SSLMODE" envDefault:"disable"`

	DataDir string `env:"DATA_DIR" envDefault:"data"`
}

type Repository struct {
	Links

	backend string
	cfg     *Config
}

// New selects the storage backend once for the process lifetime. A configured
// but unreachable Postgres falls back to file storage permanently; it is not
// retried later.
func New(cfg *Config, migrationFS embed.FS, log Logger) (*Repository, error) {
	if cfg.PostgresEnabled {
		db, err := NewPostgresDB(cfg)
		if err == nil {
			if err = RunMigrations(db, migrationFS); err == nil {
				log.Info("connected to postgres", "host", cfg.Host, "port", cfg.Port)
				return &Repository{Links: NewLinkPostgres(db), backend: BackendPostgres, cfg: cfg}, nil
			}
			db.Close()
		}
		log.Error("postgres unavailable, falling back to file storage", "error", err.Error())
	}

	store, err := NewLinkFile(filepath.Join(cfg.DataDir, "links.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to init file storage: %w", err)
	}
	log.Info("file storage enabled", "path", store.Path())
	return &Repository{Links: store, backend: BackendFile, cfg: cfg}, nil
}

func (r *Repository) Backend() string {
	return r.backend
}

func (r *Repository) BackendDetails() string {
	if r.backend == BackendPostgres {
		return fmt.Sprintf("Connected to: %s:%s", r.cfg.Host, r.cfg.Port)
	}
	n, _ := r.Count()
	return fmt.Sprintf("Data file: links.json (%d records)", n)
}
