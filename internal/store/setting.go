// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contentplan/internal/models"
)

// SettingStore manages per-website configuration in the database. It is
// the configuration provider for the scheduling engine: handlers read
// the cadence here and pass it into theme creation by value.
type SettingStore struct {
	db *sql.DB
}

// NewSettingStore returns a new SettingStore backed by the given database.
func NewSettingStore(db *sql.DB) *SettingStore {
	return &SettingStore{db: db}
}

// All returns every setting for a website as a convenience map.
func (s *SettingStore) All(websiteID uuid.UUID) (models.WebsiteSettings, error) {
	rows, err := s.db.Query(`
		SELECT key, value FROM website_settings
		WHERE website_id = $1 ORDER BY key
	`, websiteID)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w: %w", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	settings := make(models.WebsiteSettings)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[k] = v
	}
	return settings, rows.Err()
}

// Get returns a single setting by key, or the fallback if not found.
func (s *SettingStore) Get(websiteID uuid.UUID, key, fallback string) (string, error) {
	var val string
	err := s.db.QueryRow(`
		SELECT value FROM website_settings WHERE website_id = $1 AND key = $2
	`, websiteID, key).Scan(&val)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("get setting: %w: %w", models.ErrStoreUnavailable, err)
	}
	if val == "" {
		return fallback, nil
	}
	return val, nil
}

// Set upserts a single setting. Creates it if it doesn't exist.
func (s *SettingStore) Set(websiteID uuid.UUID, key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO website_settings (website_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (website_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		websiteID, key, value, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set setting: %w: %w", models.ErrStoreUnavailable, err)
	}
	return nil
}

// SetMany updates multiple settings for one website in a single transaction.
func (s *SettingStore) SetMany(websiteID uuid.UUID, settings map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("set settings: %w: %w", models.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO website_settings (website_id, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (website_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("set settings: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for k, v := range settings {
		if _, err := stmt.Exec(websiteID, k, v, now); err != nil {
			return fmt.Errorf("set setting %q: %w: %w", k, models.ErrStoreUnavailable, err)
		}
	}

	return tx.Commit()
}
