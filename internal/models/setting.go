// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Setting keys stored per website.
const (
	SettingPublicationFrequency = "publication_frequency"
	SettingWritingStyle         = "writing_style"
	SettingSubjectMatters       = "subject_matters"
)

// DefaultCadenceDays is the publication frequency used when a website
// has not configured one yet.
const DefaultCadenceDays = 7

// WebsiteSetting represents a single configuration key-value pair
// scoped to one website.
type WebsiteSetting struct {
	WebsiteID uuid.UUID `json:"website_id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WebsiteSettings is a convenience map for accessing one website's
// settings by key.
type WebsiteSettings map[string]string

// Get returns the value for a key, or the fallback if the key doesn't exist.
func (s WebsiteSettings) Get(key, fallback string) string {
	if v, ok := s[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Cadence returns the configured publication frequency in days between
// posts. Falls back to DefaultCadenceDays when unset or unparseable.
func (s WebsiteSettings) Cadence() int {
	v := s.Get(SettingPublicationFrequency, "")
	if v == "" {
		return DefaultCadenceDays
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return DefaultCadenceDays
	}
	return n
}

// SubjectMatters returns the configured topic list. The value is stored
// as a JSON array; a missing or malformed value yields an empty list.
func (s WebsiteSettings) SubjectMatters() []string {
	v := s.Get(SettingSubjectMatters, "")
	if v == "" {
		return nil
	}
	var subjects []string
	if err := json.Unmarshal([]byte(v), &subjects); err != nil {
		return nil
	}
	return subjects
}
