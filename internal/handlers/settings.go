// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"contentplan/internal/models"
	"contentplan/internal/store"
)

// Settings groups the per-website settings handlers: publication
// frequency, writing style, and subject matters.
type Settings struct {
	settings *store.SettingStore
	websites *store.WebsiteStore
}

// NewSettings creates a new Settings handler group.
func NewSettings(settings *store.SettingStore, websites *store.WebsiteStore) *Settings {
	return &Settings{
		settings: settings,
		websites: websites,
	}
}

// Get returns all settings for a website, with defaults for missing keys.
func (h *Settings) Get(w http.ResponseWriter, r *http.Request) {
	websiteID, err := websiteIDParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	settings, err := h.settings.All(websiteID)
	if err != nil {
		respondError(w, err)
		return
	}

	subjects := settings.SubjectMatters()
	if subjects == nil {
		subjects = []string{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"publication_frequency": settings.Cadence(),
		"writing_style":         settings.Get(models.SettingWritingStyle, ""),
		"subject_matters":       subjects,
	})
}

// Put replaces the website's settings in a single transaction. Only
// known keys are accepted; the cadence must be a positive day count.
func (h *Settings) Put(w http.ResponseWriter, r *http.Request) {
	websiteID, err := websiteIDParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	site, err := h.websites.FindByID(websiteID)
	if err != nil {
		respondError(w, err)
		return
	}
	if site == nil {
		respondError(w, fmt.Errorf("website %s not found: %w", websiteID, models.ErrValidation))
		return
	}

	var req struct {
		PublicationFrequency *int      `json:"publication_frequency"`
		WritingStyle         *string   `json:"writing_style"`
		SubjectMatters       *[]string `json:"subject_matters"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	values := map[string]string{}
	if req.PublicationFrequency != nil {
		if *req.PublicationFrequency < 1 {
			respondError(w, fmt.Errorf("publication frequency must be at least 1 day: %w", models.ErrValidation))
			return
		}
		values[models.SettingPublicationFrequency] = strconv.Itoa(*req.PublicationFrequency)
	}
	if req.WritingStyle != nil {
		if msg := validateSettingValue(*req.WritingStyle); msg != "" {
			respondError(w, fmt.Errorf("%s: %w", msg, models.ErrValidation))
			return
		}
		values[models.SettingWritingStyle] = *req.WritingStyle
	}
	if req.SubjectMatters != nil {
		encoded, err := encodeSubjectMatters(*req.SubjectMatters)
		if err != nil {
			respondError(w, err)
			return
		}
		values[models.SettingSubjectMatters] = encoded
	}

	if len(values) == 0 {
		respondError(w, fmt.Errorf("no settings provided: %w", models.ErrValidation))
		return
	}

	if err := h.settings.SetMany(websiteID, values); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"saved": true})
}

// encodeSubjectMatters validates and JSON-encodes the topic list for
// storage.
func encodeSubjectMatters(subjects []string) (string, error) {
	for _, s := range subjects {
		if msg := validateSubject(s); msg != "" {
			return "", fmt.Errorf("%s: %w", msg, models.ErrValidation)
		}
	}
	encoded, err := json.Marshal(subjects)
	if err != nil {
		return "", fmt.Errorf("encode subject matters: %w", err)
	}
	return string(encoded), nil
}
