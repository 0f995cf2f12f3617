// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ThemeStatus represents the lifecycle state of a post theme.
// Transitions are monotonic: pending -> generated -> published.
type ThemeStatus string

const (
	ThemeStatusPending   ThemeStatus = "pending"
	ThemeStatusGenerated ThemeStatus = "generated"
	ThemeStatusPublished ThemeStatus = "published"
)

// rank orders statuses for the monotonic-transition check.
func (s ThemeStatus) rank() int {
	switch s {
	case ThemeStatusPending:
		return 0
	case ThemeStatusGenerated:
		return 1
	case ThemeStatusPublished:
		return 2
	}
	return -1
}

// Valid reports whether s is one of the known lifecycle states.
func (s ThemeStatus) Valid() bool {
	return s.rank() >= 0
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Staying in the same state is always allowed; going backward never is.
func (s ThemeStatus) CanTransitionTo(next ThemeStatus) bool {
	return next.Valid() && next.rank() >= s.rank()
}

// PostTheme is a dated unit of planned content on a website's
// publication calendar. The scheduled date is assigned once at creation
// by the scheduling engine and changes only through an explicit
// reschedule; within one website, scheduled dates never collide.
type PostTheme struct {
	ID            uuid.UUID   `json:"id"`
	WebsiteID     uuid.UUID   `json:"website_id"`
	SubjectMatter string      `json:"subject_matter"`
	Keywords      []string    `json:"keywords"`
	Status        ThemeStatus `json:"status"`
	ScheduledDate time.Time   `json:"scheduled_date"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// IsPublished returns true if the theme has reached its terminal state.
func (t *PostTheme) IsPublished() bool {
	return t.Status == ThemeStatusPublished
}
