// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package feedback

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"contentplan/internal/models"
)

// Registry holds the live suggestion workflows, keyed by suggestion ID.
// Suggestions are ephemeral: they exist only here, never in the
// database, and drop out once their workflow settles.
type Registry struct {
	creator ThemeCreator

	mu        sync.RWMutex
	workflows map[uuid.UUID]*Workflow
}

// NewRegistry creates an empty registry committing accepted suggestions
// through the given creator.
func NewRegistry(creator ThemeCreator) *Registry {
	return &Registry{
		creator:   creator,
		workflows: make(map[uuid.UUID]*Workflow),
	}
}

// Add registers a batch of suggestions for a website and returns them
// with assigned IDs. cadenceDays applies to every commit from this
// batch. Blank titles are rejected.
func (r *Registry) Add(websiteID uuid.UUID, suggestions []models.Suggestion, cadenceDays int) ([]models.Suggestion, error) {
	if websiteID == uuid.Nil {
		return nil, fmt.Errorf("register suggestions: website scope is required: %w", models.ErrValidation)
	}

	out := make([]models.Suggestion, 0, len(suggestions))

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range suggestions {
		if s.Title == "" {
			return nil, fmt.Errorf("register suggestions: title is required: %w", models.ErrValidation)
		}
		s.ID = uuid.New()
		s.WebsiteID = websiteID
		r.workflows[s.ID] = New(s, r.creator, cadenceDays, r.Remove)
		out = append(out, s)
	}
	return out, nil
}

// Get returns the workflow for a suggestion, or nil if it is gone.
func (r *Registry) Get(id uuid.UUID) *Workflow {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.workflows[id]
}

// Live returns the still-undismissed suggestions for a website.
func (r *Registry) Live(websiteID uuid.UUID) []models.Suggestion {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Suggestion{}
	for _, w := range r.workflows {
		if w.Suggestion().WebsiteID == websiteID {
			out = append(out, w.Suggestion())
		}
	}
	return out
}

// Remove drops a suggestion from the registry. Safe to call for IDs
// that are already gone.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.workflows, id)
}
