// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"contentplan/internal/models"
)

// OrganisationStore handles the account record that owns all websites.
type OrganisationStore struct {
	db *sql.DB
}

// NewOrganisationStore creates a new OrganisationStore with the given database connection.
func NewOrganisationStore(db *sql.DB) *OrganisationStore {
	return &OrganisationStore{db: db}
}

// First returns the installation's organisation (a single-tenant
// deployment has exactly one, created by the seeder). Returns nil if
// none exists yet.
func (s *OrganisationStore) First() (*models.Organisation, error) {
	o := &models.Organisation{}
	err := s.db.QueryRow(`
		SELECT id, name, created_at, updated_at
		FROM organisations ORDER BY created_at ASC LIMIT 1
	`).Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find organisation: %w: %w", models.ErrStoreUnavailable, err)
	}
	return o, nil
}

// Create inserts a new organisation and returns it with the generated ID.
func (s *OrganisationStore) Create(name string) (*models.Organisation, error) {
	o := &models.Organisation{}
	err := s.db.QueryRow(`
		INSERT INTO organisations (name) VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`, name).Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create organisation: %w: %w", models.ErrStoreUnavailable, err)
	}
	return o, nil
}

// UpdateName renames an organisation. An empty name is rejected.
func (s *OrganisationStore) UpdateName(id uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("update organisation: name is required: %w", models.ErrValidation)
	}

	res, err := s.db.Exec(`
		UPDATE organisations SET name = $1, updated_at = NOW() WHERE id = $2
	`, name, id)
	if err != nil {
		return fmt.Errorf("update organisation: %w: %w", models.ErrStoreUnavailable, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update organisation: %s not found: %w", id, models.ErrValidation)
	}
	return nil
}
