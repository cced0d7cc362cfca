package stores

import (
	"time"

	"gorm.io/gorm"
)

// ContactMessage is one message submitted through the site's contact form.
type ContactMessage struct {
	gorm.Model
	Username string `gorm:"not null"`
	Email    string `gorm:"not null;index"`
	Message  string `gorm:"type:text;not null"`
}

// ContactStore abstracts contact-message persistence.
type ContactStore interface {
	SaveMessage(username, email, message string) error
	ListMessages(limit int) ([]ContactMessage, error)
	PruneOlderThan(cutoff time.Time) (int64, error)

	// Connection management
	Connect() error
	Close() error

	// Health check
	Ping() error
}

// StoreConfig holds configuration for database stores.
type StoreConfig struct {
	Type       string            `json:"type"`       // "sqlite", "postgres"
	Connection string            `json:"connection"` // connection string
	Options    map[string]string `json:"options"`    // additional options
}

// NewStoreConfig creates a new store configuration.
func NewStoreConfig(storeType, connection string) *StoreConfig {
	return &StoreConfig{
		Type:       storeType,
		Connection: connection,
		Options:    make(map[string]string),
	}
}

// WithOption adds an option to the store configuration.
func (c *StoreConfig) WithOption(key, value string) *StoreConfig {
	c.Options[key] = value
	return c
}
