package handlers

import (
	"fmt"
	"net/http"

	"contentplan/internal/models"
	"contentplan/internal/store"
)

// Organisations groups the organisation and website handlers. The app
// is single-tenant: one organisation owns all websites.
type Organisations struct {
	organisations *store.OrganisationStore
	websites      *store.WebsiteStore
}

// NewOrganisations creates a new Organisations handler group.
func NewOrganisations(organisations *store.OrganisationStore, websites *store.WebsiteStore) *Organisations {
	return &Organisations{
		organisations: organisations,
		websites:      websites,
	}
}

// Get returns the organisation.
func (h *Organisations) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.organisations.First()
	if err != nil {
		respondError(w, err)
		return
	}
	if org == nil {
		respondError(w, fmt.Errorf("no organisation configured: %w", models.ErrValidation))
		return
	}
	respondJSON(w, http.StatusOK, org)
}

// Update renames the organisation.
func (h *Organisations) Update(w http.ResponseWriter, r *http.Request) {
	org, err := h.organisations.First()
	if err != nil {
		respondError(w, err)
		return
	}
	if org == nil {
		respondError(w, fmt.Errorf("no organisation configured: %w", models.ErrValidation))
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	if msg := validateOrgName(req.Name); msg != "" {
		respondError(w, fmt.Errorf("%s: %w", msg, models.ErrValidation))
		return
	}

	if err := h.organisations.UpdateName(org.ID, req.Name); err != nil {
		respondError(w, err)
		return
	}

	org.Name = req.Name
	respondJSON(w, http.StatusOK, org)
}

// Websites lists the organisation's websites.
func (h *Organisations) Websites(w http.ResponseWriter, r *http.Request) {
	org, err := h.organisations.First()
	if err != nil {
		respondError(w, err)
		return
	}
	if org == nil {
		respondJSON(w, http.StatusOK, map[string]any{"websites": []models.Website{}})
		return
	}

	sites, err := h.websites.List(org.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if sites == nil {
		sites = []models.Website{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"websites": sites})
}
