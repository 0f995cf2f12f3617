// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"contentplan/internal/models"
)

// WebsiteStore handles website records. Every calendar is scoped to a website.
type WebsiteStore struct {
	db *sql.DB
}

// NewWebsiteStore creates a new WebsiteStore with the given database connection.
func NewWebsiteStore(db *sql.DB) *WebsiteStore {
	return &WebsiteStore{db: db}
}

const websiteColumns = `id, organisation_id, name, url, created_at, updated_at`

// List returns all websites of an organisation, ordered by name.
func (s *WebsiteStore) List(organisationID uuid.UUID) ([]models.Website, error) {
	rows, err := s.db.Query(`
		SELECT `+websiteColumns+`
		FROM websites WHERE organisation_id = $1 ORDER BY name ASC
	`, organisationID)
	if err != nil {
		return nil, fmt.Errorf("list websites: %w: %w", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var sites []models.Website
	for rows.Next() {
		var w models.Website
		if err := rows.Scan(&w.ID, &w.OrganisationID, &w.Name, &w.URL, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan website: %w", err)
		}
		sites = append(sites, w)
	}
	return sites, rows.Err()
}

// FindByID retrieves a website by its UUID. Returns nil if not found.
func (s *WebsiteStore) FindByID(id uuid.UUID) (*models.Website, error) {
	w := &models.Website{}
	err := s.db.QueryRow(`
		SELECT `+websiteColumns+` FROM websites WHERE id = $1
	`, id).Scan(&w.ID, &w.OrganisationID, &w.Name, &w.URL, &w.CreatedAt, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find website by id: %w: %w", models.ErrStoreUnavailable, err)
	}
	return w, nil
}

// Create inserts a new website and returns it with the generated ID.
func (s *WebsiteStore) Create(organisationID uuid.UUID, name, url string) (*models.Website, error) {
	if name == "" {
		return nil, fmt.Errorf("create website: name is required: %w", models.ErrValidation)
	}

	w := &models.Website{}
	err := s.db.QueryRow(`
		INSERT INTO websites (organisation_id, name, url)
		VALUES ($1, $2, $3)
		RETURNING `+websiteColumns+`
	`, organisationID, name, url).Scan(&w.ID, &w.OrganisationID, &w.Name, &w.URL, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create website: %w: %w", models.ErrStoreUnavailable, err)
	}
	return w, nil
}
