package portfolio

import (
	"time"

	"github.com/Mohamed-Adam-Jemal/Portfolio/models"
	"github.com/Mohamed-Adam-Jemal/Portfolio/stores"
)

// Config holds configuration for the portfolio backend.
type Config struct {
	ModelName     string
	Generation    models.GenerationConfig
	Store         stores.ContactStore
	StreamTimeout time.Duration
}

// NewConfig creates a new configuration with default values.
func NewConfig() *Config {
	// Create a default SQLite store
	defaultStore, err := stores.NewSQLiteStoreDefault()
	if err != nil {
		// If we can't create the default store, panic or use a nil store
		// In production, you might want to handle this more gracefully
		panic("Failed to create default SQLite store: " + err.Error())
	}

	return &Config{
		ModelName:     "gemini-2.0-flash-exp",
		Generation:    models.DefaultGenerationConfig(),
		Store:         defaultStore,
		StreamTimeout: 2 * time.Minute,
	}
}

// WithModelName sets the model name for the configuration.
func (c *Config) WithModelName(modelName string) *Config {
	c.ModelName = modelName
	return c
}

// WithGeneration sets the generation parameters for the configuration.
func (c *Config) WithGeneration(gen models.GenerationConfig) *Config {
	c.Generation = gen
	return c
}

// WithStore sets the contact store for the configuration.
func (c *Config) WithStore(store stores.ContactStore) *Config {
	c.Store = store
	return c
}

// WithSQLiteStore sets a SQLite store with the specified database path.
func (c *Config) WithSQLiteStore(dbPath string) *Config {
	store, err := stores.NewSQLiteStoreSimple(dbPath)
	if err != nil {
		panic("Failed to create SQLite store: " + err.Error())
	}
	c.Store = store
	return c
}

// WithPostgresStore sets a PostgreSQL store with the specified DSN.
func (c *Config) WithPostgresStore(dsn string) *Config {
	store, err := stores.NewPostgresStoreSimple(dsn)
	if err != nil {
		panic("Failed to create PostgreSQL store: " + err.Error())
	}
	c.Store = store
	return c
}

// WithStreamTimeout bounds how long a single provider stream may run.
func (c *Config) WithStreamTimeout(d time.Duration) *Config {
	c.StreamTimeout = d
	return c
}
