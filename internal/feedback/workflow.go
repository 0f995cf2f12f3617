// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package feedback implements the accept/reject workflow for content
// suggestions. Each suggestion carries a Workflow that tracks its
// decision state and commits at most one post theme to the store,
// no matter how often the user flips their mind.
package feedback

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"contentplan/internal/models"
)

// ThemeCreator persists an accepted suggestion as a scheduled post theme.
// *store.ThemeStore satisfies this.
type ThemeCreator interface {
	Create(websiteID uuid.UUID, subjectMatter string, keywords []string, cadenceDays int) (*models.PostTheme, error)
}

// removeDelay is how long a decided suggestion lingers in the list
// before disappearing, so the UI can show the final state briefly.
const removeDelay = 600 * time.Millisecond

// Workflow manages the decision lifecycle of a single suggestion. All
// methods are safe for concurrent use; the commit happens at most once
// for the lifetime of the workflow.
type Workflow struct {
	suggestion models.Suggestion
	creator    ThemeCreator
	cadence    int

	// onRemove fires after a decision settles so the owning registry
	// can drop the suggestion from its list.
	onRemove func(id uuid.UUID)

	mu        sync.Mutex
	decision  models.Decision
	committed bool
	theme     *models.PostTheme
	removal   bool
}

// New creates a workflow for one suggestion. cadenceDays is the website's
// publication cadence used when the suggestion is committed; onRemove may
// be nil.
func New(s models.Suggestion, creator ThemeCreator, cadenceDays int, onRemove func(id uuid.UUID)) *Workflow {
	return &Workflow{
		suggestion: s,
		creator:    creator,
		cadence:    cadenceDays,
		onRemove:   onRemove,
		decision:   models.DecisionUndecided,
	}
}

// Suggestion returns the underlying suggestion.
func (w *Workflow) Suggestion() models.Suggestion {
	return w.suggestion
}

// Decision returns the current decision state.
func (w *Workflow) Decision() models.Decision {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.decision
}

// Committed reports whether the suggestion has been persisted as a theme.
func (w *Workflow) Committed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.committed
}

// Theme returns the persisted theme, or nil before a successful commit.
func (w *Workflow) Theme() *models.PostTheme {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.theme
}

// Like marks the suggestion as accepted and commits it to the calendar.
// Liking an already-liked suggestion is a no-op that returns the
// previously committed theme. Liking a disliked suggestion flips the
// decision; the commit itself still runs at most once. If the store
// call fails the decision reverts to undecided and the error is
// returned, so the user can retry — the workflow is never left in a
// liked-but-uncommitted state.
func (w *Workflow) Like() (*models.PostTheme, error) {
	w.mu.Lock()
	if w.decision == models.DecisionLiked {
		theme := w.theme
		w.mu.Unlock()
		return theme, nil
	}
	if w.committed {
		// Persisted on an earlier like, then disliked; restore the flag
		// without touching the calendar.
		w.decision = models.DecisionLiked
		theme := w.theme
		w.mu.Unlock()
		return theme, nil
	}
	// Transition before the store call so a concurrent second Like
	// observes Liked and cannot start a second commit.
	w.decision = models.DecisionLiked
	w.mu.Unlock()

	theme, err := w.creator.Create(w.suggestion.WebsiteID, w.suggestion.Title, w.suggestion.Keywords, w.cadence)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.decision = models.DecisionUndecided
		return nil, fmt.Errorf("commit suggestion %q: %w", w.suggestion.Title, err)
	}
	w.committed = true
	w.theme = theme

	slog.Info("suggestion accepted",
		"suggestion", w.suggestion.ID,
		"theme", theme.ID,
		"scheduled_date", theme.ScheduledDate,
	)

	w.scheduleRemovalLocked()
	return theme, nil
}

// Dislike marks the suggestion as rejected. Repeating Dislike is a
// no-op; disliking a liked suggestion clears the like flag but never
// rolls back a committed theme — the calendar entry stays.
func (w *Workflow) Dislike() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.decision == models.DecisionDisliked {
		return
	}
	w.decision = models.DecisionDisliked
	w.scheduleRemovalLocked()
}

// scheduleRemovalLocked arms the removal callback once. Callers hold mu.
// The suggestion stays visible for a moment so the client can render
// the final state before it drops out of the list.
func (w *Workflow) scheduleRemovalLocked() {
	if w.removal || w.onRemove == nil {
		return
	}
	w.removal = true
	id := w.suggestion.ID
	remove := w.onRemove
	time.AfterFunc(removeDelay, func() { remove(id) })
}
