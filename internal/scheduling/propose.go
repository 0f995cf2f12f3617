// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package scheduling computes publication dates for the content
// calendar. It is purely computational: callers pass in the current
// snapshot of scheduled themes and the cadence, and get back the next
// free slot. The package never touches the database.
package scheduling

import (
	"fmt"
	"time"

	"contentplan/internal/models"
)

// ProposeDate returns the next publication date for a website given its
// currently scheduled themes and a cadence in days between posts.
//
// With no existing themes the proposal is today plus the cadence.
// Otherwise it is the latest existing scheduled date plus the cadence,
// which keeps the result strictly after every date already on the
// calendar. The input is not assumed sorted.
func ProposeDate(existing []models.PostTheme, cadenceDays int) (time.Time, error) {
	return ProposeDateFrom(time.Now(), existing, cadenceDays)
}

// ProposeDateFrom is ProposeDate with an explicit notion of "today",
// used by tests and by callers that already hold a transaction
// timestamp.
func ProposeDateFrom(now time.Time, existing []models.PostTheme, cadenceDays int) (time.Time, error) {
	if cadenceDays < 1 {
		return time.Time{}, fmt.Errorf("cadence must be at least 1 day, got %d: %w", cadenceDays, models.ErrValidation)
	}

	base := truncateToDay(now)
	if latest, ok := latestScheduled(existing); ok {
		base = truncateToDay(latest)
	}

	return base.AddDate(0, 0, cadenceDays), nil
}

// latestScheduled scans for the maximum scheduled date. Returns false
// when the slice is empty.
func latestScheduled(themes []models.PostTheme) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, t := range themes {
		if !found || t.ScheduledDate.After(latest) {
			latest = t.ScheduledDate
			found = true
		}
	}
	return latest, found
}

// truncateToDay normalizes a timestamp to midnight UTC. Publication
// slots are day-granular; the time-of-day component carries no meaning.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
