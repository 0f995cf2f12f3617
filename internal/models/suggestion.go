// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "github.com/google/uuid"

// Suggestion is an ephemeral candidate title awaiting accept/reject
// feedback. Suggestions are never persisted; accepting one creates a
// PostTheme and the suggestion itself is discarded.
type Suggestion struct {
	ID           uuid.UUID `json:"id"`
	WebsiteID    uuid.UUID `json:"website_id"`
	Title        string    `json:"title"`
	Keywords     []string  `json:"keywords"`
	KeywordUsage int       `json:"keyword_usage"` // coverage score, display only
}

// Decision is the feedback state of a suggestion. It is a single tagged
// value rather than independent liked/disliked booleans, so the two
// flags can never be set at once.
type Decision int

const (
	DecisionUndecided Decision = iota
	DecisionLiked
	DecisionDisliked
)

// String returns the decision name for logging and API payloads.
func (d Decision) String() string {
	switch d {
	case DecisionLiked:
		return "liked"
	case DecisionDisliked:
		return "disliked"
	default:
		return "undecided"
	}
}
