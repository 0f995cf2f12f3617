package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user, an organisation with one website, and that website's
// default publication settings. No-op when data already exists.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert default admin user. 2FA is not enabled — they must set it up
	// on first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@contentplan.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Create the organisation and its first website.
	var orgID string
	err = db.QueryRow(`
		INSERT INTO organisations (name) VALUES ($1) RETURNING id
	`, "My Organisation").Scan(&orgID)
	if err != nil {
		return fmt.Errorf("seed insert organisation: %w", err)
	}

	var websiteID string
	err = db.QueryRow(`
		INSERT INTO websites (organisation_id, name, url)
		VALUES ($1, $2, $3) RETURNING id
	`, orgID, "My Website", "https://example.com").Scan(&websiteID)
	if err != nil {
		return fmt.Errorf("seed insert website: %w", err)
	}

	// Default publication settings for the seeded website.
	defaults := map[string]string{
		"publication_frequency": "7",
		"writing_style":         "Informative and friendly",
		"subject_matters":       `["SEO","Content Marketing"]`,
	}
	for k, v := range defaults {
		if _, err := db.Exec(`
			INSERT INTO website_settings (website_id, key, value) VALUES ($1, $2, $3)
		`, websiteID, k, v); err != nil {
			return fmt.Errorf("seed insert setting %s: %w", k, err)
		}
	}

	slog.Info("database seeded with default admin user and website",
		"email", "admin@contentplan.local",
		"password", "admin",
		"website", "My Website",
	)

	return nil
}
