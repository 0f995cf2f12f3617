// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"contentplan/internal/models"
	"contentplan/internal/scheduling"
)

// pgUniqueViolation is the PostgreSQL error code for a unique index
// violation, raised when two commits race to the same publication slot.
const pgUniqueViolation = "23505"

// ThemeStore owns the durable, website-scoped collection of post themes
// and a last-known-good in-memory snapshot per website. The snapshot is
// only mutated here, and only after the database confirmed the same
// mutation, so memory and persistence cannot silently diverge. Readers
// always get copies.
type ThemeStore struct {
	db *sql.DB

	mu        sync.RWMutex
	snapshots map[uuid.UUID][]models.PostTheme
}

// NewThemeStore creates a new ThemeStore with the given database connection.
func NewThemeStore(db *sql.DB) *ThemeStore {
	return &ThemeStore{
		db:        db,
		snapshots: make(map[uuid.UUID][]models.PostTheme),
	}
}

const themeColumns = `id, website_id, subject_matter, keywords, status, scheduled_date, created_at, updated_at`

// scanTheme reads one post theme row, decoding the jsonb keywords column.
func scanTheme(row interface{ Scan(...any) error }) (models.PostTheme, error) {
	var t models.PostTheme
	var keywords []byte
	if err := row.Scan(
		&t.ID, &t.WebsiteID, &t.SubjectMatter, &keywords,
		&t.Status, &t.ScheduledDate, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return models.PostTheme{}, err
	}
	if len(keywords) > 0 {
		if err := json.Unmarshal(keywords, &t.Keywords); err != nil {
			return models.PostTheme{}, fmt.Errorf("decode keywords: %w", err)
		}
	}
	return t, nil
}

// Fetch returns all themes for a website, ascending by scheduled date.
// On backend failure it returns the last-known-good snapshot alongside
// an ErrStoreUnavailable error — the previous snapshot is never cleared
// by a failed read.
func (s *ThemeStore) Fetch(websiteID uuid.UUID) ([]models.PostTheme, error) {
	rows, err := s.db.Query(`
		SELECT `+themeColumns+`
		FROM post_themes
		WHERE website_id = $1
		ORDER BY scheduled_date ASC
	`, websiteID)
	if err != nil {
		return s.Snapshot(websiteID), fmt.Errorf("fetch themes: %w: %w", models.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var themes []models.PostTheme
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return s.Snapshot(websiteID), fmt.Errorf("scan theme: %w: %w", models.ErrStoreUnavailable, err)
		}
		themes = append(themes, t)
	}
	if err := rows.Err(); err != nil {
		return s.Snapshot(websiteID), fmt.Errorf("fetch themes: %w: %w", models.ErrStoreUnavailable, err)
	}

	s.replaceSnapshot(websiteID, themes)
	return copyThemes(themes), nil
}

// Create schedules a new theme for a website. The publication date is
// proposed by the scheduling engine over the rows read inside the same
// transaction that inserts the record, so the date committed is always
// derived from the state it is committed against. New themes always
// start as pending.
//
// A unique index on (website_id, scheduled_date) backstops concurrent
// creations: the loser of a race gets ErrConflict and may retry.
func (s *ThemeStore) Create(websiteID uuid.UUID, subjectMatter string, keywords []string, cadenceDays int) (*models.PostTheme, error) {
	if websiteID == uuid.Nil {
		return nil, fmt.Errorf("create theme: website scope is required: %w", models.ErrValidation)
	}
	if subjectMatter == "" {
		return nil, fmt.Errorf("create theme: subject matter is required: %w", models.ErrValidation)
	}

	keywordsJSON, err := json.Marshal(keywordList(keywords))
	if err != nil {
		return nil, fmt.Errorf("encode keywords: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create theme: %w: %w", models.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	// Read the current calendar within the transaction and let the
	// scheduling engine pick the next free slot.
	rows, err := tx.Query(`
		SELECT `+themeColumns+`
		FROM post_themes WHERE website_id = $1
	`, websiteID)
	if err != nil {
		return nil, fmt.Errorf("create theme: %w: %w", models.ErrStoreUnavailable, err)
	}
	var existing []models.PostTheme
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan theme: %w: %w", models.ErrStoreUnavailable, err)
		}
		existing = append(existing, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("create theme: %w: %w", models.ErrStoreUnavailable, err)
	}
	rows.Close()

	scheduledDate, err := scheduling.ProposeDate(existing, cadenceDays)
	if err != nil {
		return nil, fmt.Errorf("create theme: %w", err)
	}

	created, err := scanTheme(tx.QueryRow(`
		INSERT INTO post_themes (website_id, subject_matter, keywords, status, scheduled_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+themeColumns+`
	`, websiteID, subjectMatter, keywordsJSON, models.ThemeStatusPending, scheduledDate))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("create theme: slot %s already taken: %w", scheduledDate.Format("2006-01-02"), models.ErrConflict)
		}
		return nil, fmt.Errorf("create theme: %w: %w", models.ErrStoreUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create theme: %w: %w", models.ErrStoreUnavailable, err)
	}

	s.addToSnapshot(created)
	return &created, nil
}

// FindByID returns a theme by ID, or nil if it does not exist.
func (s *ThemeStore) FindByID(id uuid.UUID) (*models.PostTheme, error) {
	t, err := scanTheme(s.db.QueryRow(`
		SELECT `+themeColumns+`
		FROM post_themes
		WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find theme: %w: %w", models.ErrStoreUnavailable, err)
	}
	return &t, nil
}

// ThemeUpdate is a partial field merge for Update. Nil fields are left
// unchanged. A ScheduledDate here is an explicit reschedule and
// deliberately bypasses the scheduling engine.
type ThemeUpdate struct {
	SubjectMatter *string
	Keywords      *[]string
	Status        *models.ThemeStatus
	ScheduledDate *time.Time
}

// Update applies a partial update to a theme. Status changes must move
// forward through pending -> generated -> published; a backward
// transition is rejected with ErrValidation. On backend failure the
// in-memory snapshot is left untouched so the caller never observes
// state the database did not accept.
func (s *ThemeStore) Update(id uuid.UUID, fields ThemeUpdate) error {
	if fields.Status != nil {
		if !fields.Status.Valid() {
			return fmt.Errorf("update theme: unknown status %q: %w", *fields.Status, models.ErrValidation)
		}
		current, err := s.currentStatus(id)
		if err != nil {
			return err
		}
		if !current.CanTransitionTo(*fields.Status) {
			return fmt.Errorf("update theme: cannot move %s back to %s: %w", current, *fields.Status, models.ErrValidation)
		}
	}

	var keywordsJSON []byte
	if fields.Keywords != nil {
		var err error
		keywordsJSON, err = json.Marshal(keywordList(*fields.Keywords))
		if err != nil {
			return fmt.Errorf("encode keywords: %w", err)
		}
	}

	updated, err := scanTheme(s.db.QueryRow(`
		UPDATE post_themes SET
			subject_matter = COALESCE($1, subject_matter),
			keywords       = COALESCE($2, keywords),
			status         = COALESCE($3, status),
			scheduled_date = COALESCE($4, scheduled_date),
			updated_at     = NOW()
		WHERE id = $5
		RETURNING `+themeColumns+`
	`, fields.SubjectMatter, keywordsJSON, statusArg(fields.Status), fields.ScheduledDate, id))
	if err == sql.ErrNoRows {
		return fmt.Errorf("update theme: %s not found: %w", id, models.ErrValidation)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("update theme: rescheduled slot already taken: %w", models.ErrConflict)
		}
		return fmt.Errorf("update theme: %w: %w", models.ErrStoreUnavailable, err)
	}

	s.updateSnapshot(updated)
	return nil
}

// Delete removes a theme. On backend failure the snapshot still
// contains the record.
func (s *ThemeStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM post_themes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete theme: %w: %w", models.ErrStoreUnavailable, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete theme: %s not found: %w", id, models.ErrValidation)
	}

	s.removeFromSnapshot(id)
	return nil
}

// Snapshot returns a copy of the last-known-good themes for a website,
// ascending by scheduled date. It never touches the backend.
func (s *ThemeStore) Snapshot(websiteID uuid.UUID) []models.PostTheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyThemes(s.snapshots[websiteID])
}

// BySubject filters the in-memory snapshot by exact subject matter.
// Purely a derived view; no backend round-trip.
func (s *ThemeStore) BySubject(websiteID uuid.UUID, subject string) []models.PostTheme {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.PostTheme
	for _, t := range s.snapshots[websiteID] {
		if t.SubjectMatter == subject {
			matched = append(matched, t)
		}
	}
	return matched
}

// currentStatus reads a theme's status for the transition check.
func (s *ThemeStore) currentStatus(id uuid.UUID) (models.ThemeStatus, error) {
	var status models.ThemeStatus
	err := s.db.QueryRow(`SELECT status FROM post_themes WHERE id = $1`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("update theme: %s not found: %w", id, models.ErrValidation)
	}
	if err != nil {
		return "", fmt.Errorf("read theme status: %w: %w", models.ErrStoreUnavailable, err)
	}
	return status, nil
}

func (s *ThemeStore) replaceSnapshot(websiteID uuid.UUID, themes []models.PostTheme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[websiteID] = sortedByDate(copyThemes(themes))
}

func (s *ThemeStore) addToSnapshot(t models.PostTheme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[t.WebsiteID] = sortedByDate(append(s.snapshots[t.WebsiteID], t))
}

func (s *ThemeStore) updateSnapshot(updated models.PostTheme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	themes := s.snapshots[updated.WebsiteID]
	for i := range themes {
		if themes[i].ID == updated.ID {
			themes[i] = updated
			break
		}
	}
	s.snapshots[updated.WebsiteID] = sortedByDate(themes)
}

func (s *ThemeStore) removeFromSnapshot(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for websiteID, themes := range s.snapshots {
		for i := range themes {
			if themes[i].ID == id {
				s.snapshots[websiteID] = append(themes[:i], themes[i+1:]...)
				return
			}
		}
	}
}

func sortedByDate(themes []models.PostTheme) []models.PostTheme {
	sort.Slice(themes, func(i, j int) bool {
		return themes[i].ScheduledDate.Before(themes[j].ScheduledDate)
	})
	return themes
}

func copyThemes(themes []models.PostTheme) []models.PostTheme {
	if themes == nil {
		return nil
	}
	out := make([]models.PostTheme, len(themes))
	copy(out, themes)
	return out
}

// keywordList normalizes nil keyword slices to empty ones so the jsonb
// column always holds an array.
func keywordList(keywords []string) []string {
	if keywords == nil {
		return []string{}
	}
	return keywords
}

// statusArg converts an optional status to a driver-friendly argument.
func statusArg(s *models.ThemeStatus) any {
	if s == nil {
		return nil
	}
	return string(*s)
}
