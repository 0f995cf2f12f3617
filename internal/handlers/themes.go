// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"contentplan/internal/cache"
	"contentplan/internal/models"
	"contentplan/internal/scheduling"
	"contentplan/internal/store"
)

// Themes groups the calendar HTTP handlers: listing, creation with
// automatic slot assignment, rescheduling, status updates, and the
// next-date preview.
type Themes struct {
	themes   *store.ThemeStore
	settings *store.SettingStore
	preview  *cache.SchedulePreview
}

// NewThemes creates a new Themes handler group.
func NewThemes(themes *store.ThemeStore, settings *store.SettingStore, preview *cache.SchedulePreview) *Themes {
	return &Themes{
		themes:   themes,
		settings: settings,
		preview:  preview,
	}
}

// List returns all themes for a website, ascending by scheduled date.
// When the backend is down the last-known-good snapshot is served with
// a 200 and a "stale" marker instead of failing the calendar outright.
func (h *Themes) List(w http.ResponseWriter, r *http.Request) {
	websiteID, err := websiteIDParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	themes, err := h.themes.Fetch(websiteID)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]any{
			"themes": themes,
			"stale":  true,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"themes": themes})
}

// Create inserts a new theme; the scheduling engine assigns the date.
func (h *Themes) Create(w http.ResponseWriter, r *http.Request) {
	websiteID, err := websiteIDParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		SubjectMatter string   `json:"subject_matter"`
		Keywords      []string `json:"keywords"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	if msg := validateSubject(req.SubjectMatter); msg != "" {
		respondError(w, fmt.Errorf("%s: %w", msg, models.ErrValidation))
		return
	}
	if msg := validateKeywords(req.Keywords); msg != "" {
		respondError(w, fmt.Errorf("%s: %w", msg, models.ErrValidation))
		return
	}

	created, err := h.themes.Create(websiteID, req.SubjectMatter, req.Keywords, h.cadence(websiteID))
	if err != nil {
		respondError(w, err)
		return
	}

	h.preview.Invalidate(r.Context(), websiteID)
	respondJSON(w, http.StatusCreated, created)
}

// BySubject filters the calendar snapshot by exact subject matter.
func (h *Themes) BySubject(w http.ResponseWriter, r *http.Request) {
	websiteID, err := websiteIDParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	subject := r.URL.Query().Get("subject")
	if subject == "" {
		respondError(w, fmt.Errorf("subject query parameter is required: %w", models.ErrValidation))
		return
	}

	themes := h.themes.BySubject(websiteID, subject)
	if themes == nil {
		themes = []models.PostTheme{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"themes": themes})
}

// NextDate previews the date the engine would assign to the next theme.
// Served from the Valkey cache when fresh; otherwise computed from the
// store and cached.
func (h *Themes) NextDate(w http.ResponseWriter, r *http.Request) {
	websiteID, err := websiteIDParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if next, ok := h.preview.Get(r.Context(), websiteID); ok {
		respondJSON(w, http.StatusOK, map[string]any{"next_date": next, "cached": true})
		return
	}

	existing, err := h.themes.Fetch(websiteID)
	if err != nil {
		respondError(w, err)
		return
	}

	next, err := scheduling.ProposeDate(existing, h.cadence(websiteID))
	if err != nil {
		respondError(w, err)
		return
	}

	h.preview.Set(r.Context(), websiteID, next)
	respondJSON(w, http.StatusOK, map[string]any{"next_date": next})
}

// Update applies a partial update to a theme: subject, keywords, a
// forward status transition, or an explicit reschedule.
func (h *Themes) Update(w http.ResponseWriter, r *http.Request) {
	themeID, err := themeIDParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		SubjectMatter *string             `json:"subject_matter"`
		Keywords      *[]string           `json:"keywords"`
		Status        *models.ThemeStatus `json:"status"`
		ScheduledDate *time.Time          `json:"scheduled_date"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	if req.SubjectMatter != nil {
		if msg := validateSubject(*req.SubjectMatter); msg != "" {
			respondError(w, fmt.Errorf("%s: %w", msg, models.ErrValidation))
			return
		}
	}
	if req.Keywords != nil {
		if msg := validateKeywords(*req.Keywords); msg != "" {
			respondError(w, fmt.Errorf("%s: %w", msg, models.ErrValidation))
			return
		}
	}

	existing, err := h.themes.FindByID(themeID)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondError(w, fmt.Errorf("theme %s not found: %w", themeID, models.ErrValidation))
		return
	}

	err = h.themes.Update(themeID, store.ThemeUpdate{
		SubjectMatter: req.SubjectMatter,
		Keywords:      req.Keywords,
		Status:        req.Status,
		ScheduledDate: req.ScheduledDate,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	h.preview.Invalidate(r.Context(), existing.WebsiteID)

	updated, err := h.themes.FindByID(themeID)
	if err != nil || updated == nil {
		respondJSON(w, http.StatusOK, map[string]bool{"updated": true})
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a theme from the calendar.
func (h *Themes) Delete(w http.ResponseWriter, r *http.Request) {
	themeID, err := themeIDParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	existing, err := h.themes.FindByID(themeID)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.themes.Delete(themeID); err != nil {
		respondError(w, err)
		return
	}

	if existing != nil {
		h.preview.Invalidate(r.Context(), existing.WebsiteID)
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// cadence reads the website's publication frequency, falling back to
// the default when settings are unreadable.
func (h *Themes) cadence(websiteID uuid.UUID) int {
	settings, err := h.settings.All(websiteID)
	if err != nil {
		return models.DefaultCadenceDays
	}
	return settings.Cadence()
}

// websiteIDParam parses the {websiteID} route parameter.
func websiteIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "websiteID"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid website id: %w", models.ErrValidation)
	}
	return id, nil
}

// themeIDParam parses the {themeID} route parameter.
func themeIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "themeID"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid theme id: %w", models.ErrValidation)
	}
	return id, nil
}
