package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/atendai/atendai/internal/domain"
)

const settingsKey = "global"

// SettingsRepository handles global configuration persistence
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the stored global configuration, falling back to defaults
// when nothing has been saved yet.
func (r *SettingsRepository) Get() (domain.Settings, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, settingsKey).Scan(&value)
	if err == sql.ErrNoRows {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, err
	}

	settings := domain.DefaultSettings()
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// Save persists the global configuration
func (r *SettingsRepository) Save(settings domain.Settings) error {
	value, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, settingsKey, string(value), time.Now())
	return err
}
