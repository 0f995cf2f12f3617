package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"contentplan/internal/cache"
	"contentplan/internal/feedback"
	"contentplan/internal/models"
	"contentplan/internal/store"
)

// Suggestions groups the feedback workflow handlers. Suggestions live
// only in memory; liking one commits it to the calendar through the
// theme store.
type Suggestions struct {
	registry *feedback.Registry
	settings *store.SettingStore
	preview  *cache.SchedulePreview
}

// NewSuggestions creates a new Suggestions handler group.
func NewSuggestions(registry *feedback.Registry, settings *store.SettingStore, preview *cache.SchedulePreview) *Suggestions {
	return &Suggestions{
		registry: registry,
		settings: settings,
		preview:  preview,
	}
}

// Register adds a batch of candidate titles for a website.
func (h *Suggestions) Register(w http.ResponseWriter, r *http.Request) {
	websiteID, err := websiteIDParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Suggestions []struct {
			Title        string   `json:"title"`
			Keywords     []string `json:"keywords"`
			KeywordUsage int      `json:"keyword_usage"`
		} `json:"suggestions"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	if len(req.Suggestions) == 0 {
		respondError(w, fmt.Errorf("at least one suggestion is required: %w", models.ErrValidation))
		return
	}
	if len(req.Suggestions) > maxSuggestionBatch {
		respondError(w, fmt.Errorf("too many suggestions in one batch (max %d): %w", maxSuggestionBatch, models.ErrValidation))
		return
	}

	batch := make([]models.Suggestion, 0, len(req.Suggestions))
	for _, s := range req.Suggestions {
		if msg := validateSubject(s.Title); msg != "" {
			respondError(w, fmt.Errorf("%s: %w", msg, models.ErrValidation))
			return
		}
		if msg := validateKeywords(s.Keywords); msg != "" {
			respondError(w, fmt.Errorf("%s: %w", msg, models.ErrValidation))
			return
		}
		batch = append(batch, models.Suggestion{
			Title:        s.Title,
			Keywords:     s.Keywords,
			KeywordUsage: s.KeywordUsage,
		})
	}

	cadence := models.DefaultCadenceDays
	if settings, err := h.settings.All(websiteID); err == nil {
		cadence = settings.Cadence()
	}

	registered, err := h.registry.Add(websiteID, batch, cadence)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"suggestions": registered})
}

// List returns the still-undismissed suggestions for a website.
func (h *Suggestions) List(w http.ResponseWriter, r *http.Request) {
	websiteID, err := websiteIDParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"suggestions": h.registry.Live(websiteID)})
}

// Like accepts a suggestion, committing it to the calendar. The commit
// happens at most once per suggestion regardless of repeats.
func (h *Suggestions) Like(w http.ResponseWriter, r *http.Request) {
	wf, err := h.workflow(r)
	if err != nil {
		respondError(w, err)
		return
	}

	theme, err := wf.Like()
	if err != nil {
		respondError(w, err)
		return
	}

	h.preview.Invalidate(r.Context(), wf.Suggestion().WebsiteID)
	respondJSON(w, http.StatusOK, map[string]any{
		"decision": wf.Decision().String(),
		"theme":    theme,
	})
}

// Dislike rejects a suggestion. A theme already committed by an earlier
// like stays on the calendar.
func (h *Suggestions) Dislike(w http.ResponseWriter, r *http.Request) {
	wf, err := h.workflow(r)
	if err != nil {
		respondError(w, err)
		return
	}

	wf.Dislike()
	respondJSON(w, http.StatusOK, map[string]any{"decision": wf.Decision().String()})
}

// workflow resolves the {suggestionID} route parameter to a live
// workflow instance.
func (h *Suggestions) workflow(r *http.Request) (*feedback.Workflow, error) {
	id, err := uuid.Parse(chi.URLParam(r, "suggestionID"))
	if err != nil {
		return nil, fmt.Errorf("invalid suggestion id: %w", models.ErrValidation)
	}

	wf := h.registry.Get(id)
	if wf == nil {
		return nil, fmt.Errorf("suggestion %s not found: %w", id, models.ErrValidation)
	}
	return wf, nil
}
