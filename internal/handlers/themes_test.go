package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"contentplan/internal/models"
)

func createThemeRequest(t *testing.T, env *testEnv, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/websites/"+env.WebsiteID.String()+"/themes/", strings.NewReader(body))
	req = withURLParam(req, "websiteID", env.WebsiteID.String())
	w := httptest.NewRecorder()
	env.Themes.Create(w, req)
	return w
}

func TestThemeCreateAndList(t *testing.T) {
	env := newTestEnv(t)

	w := createThemeRequest(t, env, `{"subject_matter":"Technical SEO Audit","keywords":["seo","audit"]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d, want 201: %s", w.Code, w.Body.String())
	}

	var created models.PostTheme
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode created theme: %v", err)
	}
	if created.Status != models.ThemeStatusPending {
		t.Errorf("status: got %s, want pending", created.Status)
	}
	if created.ScheduledDate.IsZero() {
		t.Error("expected an assigned scheduled date")
	}

	// List returns the created theme.
	req := httptest.NewRequest(http.MethodGet, "/api/websites/"+env.WebsiteID.String()+"/themes/", nil)
	req = withURLParam(req, "websiteID", env.WebsiteID.String())
	lw := httptest.NewRecorder()
	env.Themes.List(lw, req)

	if lw.Code != http.StatusOK {
		t.Fatalf("list: got %d, want 200", lw.Code)
	}
	var listResp struct {
		Themes []models.PostTheme `json:"themes"`
	}
	if err := json.NewDecoder(lw.Body).Decode(&listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listResp.Themes) != 1 {
		t.Fatalf("themes: got %d, want 1", len(listResp.Themes))
	}
	if listResp.Themes[0].ID != created.ID {
		t.Error("listed theme is not the created one")
	}
}

func TestThemeCreateValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"blank subject", `{"subject_matter":"","keywords":[]}`},
		{"missing subject", `{"keywords":["x"]}`},
		{"unknown field", `{"subject_matter":"ok","bogus":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createThemeRequest(t, env, tt.body)
			if w.Code != http.StatusUnprocessableEntity {
				t.Errorf("got %d, want 422: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestThemeNextDatePreview(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/websites/"+env.WebsiteID.String()+"/themes/next-date", nil)
	req = withURLParam(req, "websiteID", env.WebsiteID.String())
	w := httptest.NewRecorder()
	env.Themes.NextDate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("next-date: got %d, want 200: %s", w.Code, w.Body.String())
	}
	var resp struct {
		NextDate time.Time `json:"next_date"`
		Cached   bool      `json:"cached"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.NextDate.After(time.Now()) {
		t.Errorf("next date %v should be in the future", resp.NextDate)
	}

	// Second request comes from the cache.
	w2 := httptest.NewRecorder()
	env.Themes.NextDate(w2, req)
	var resp2 struct {
		NextDate time.Time `json:"next_date"`
		Cached   bool      `json:"cached"`
	}
	if err := json.NewDecoder(w2.Body).Decode(&resp2); err != nil {
		t.Fatalf("decode second: %v", err)
	}
	if !resp2.Cached {
		t.Error("expected cached preview on second read")
	}
	if !resp2.NextDate.Equal(resp.NextDate) {
		t.Errorf("cached date %v differs from computed %v", resp2.NextDate, resp.NextDate)
	}

	// The preview matches the date the engine then actually assigns.
	cw := createThemeRequest(t, env, `{"subject_matter":"Preview Consistency"}`)
	if cw.Code != http.StatusCreated {
		t.Fatalf("create: got %d: %s", cw.Code, cw.Body.String())
	}
	var created models.PostTheme
	if err := json.NewDecoder(cw.Body).Decode(&created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if !created.ScheduledDate.Equal(resp.NextDate) {
		t.Errorf("assigned date %v differs from preview %v", created.ScheduledDate, resp.NextDate)
	}

	// The commit invalidated the preview; the next read is recomputed
	// and lands after the committed slot.
	w3 := httptest.NewRecorder()
	env.Themes.NextDate(w3, req)
	var resp3 struct {
		NextDate time.Time `json:"next_date"`
	}
	if err := json.NewDecoder(w3.Body).Decode(&resp3); err != nil {
		t.Fatalf("decode third: %v", err)
	}
	if !resp3.NextDate.After(created.ScheduledDate) {
		t.Errorf("post-commit preview %v should be after committed slot %v", resp3.NextDate, created.ScheduledDate)
	}
}

func TestThemeUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)

	cw := createThemeRequest(t, env, `{"subject_matter":"Before Rename"}`)
	var created models.PostTheme
	if err := json.NewDecoder(cw.Body).Decode(&created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	patch := httptest.NewRequest(http.MethodPatch, "/api/themes/"+created.ID.String(),
		strings.NewReader(`{"subject_matter":"After Rename","status":"generated"}`))
	patch = withURLParam(patch, "themeID", created.ID.String())
	pw := httptest.NewRecorder()
	env.Themes.Update(pw, patch)

	if pw.Code != http.StatusOK {
		t.Fatalf("patch: got %d, want 200: %s", pw.Code, pw.Body.String())
	}
	var updated models.PostTheme
	if err := json.NewDecoder(pw.Body).Decode(&updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.SubjectMatter != "After Rename" {
		t.Errorf("subject: got %q, want %q", updated.SubjectMatter, "After Rename")
	}
	if updated.Status != models.ThemeStatusGenerated {
		t.Errorf("status: got %s, want generated", updated.Status)
	}

	// Backward status transition is rejected.
	back := httptest.NewRequest(http.MethodPatch, "/api/themes/"+created.ID.String(),
		strings.NewReader(`{"status":"pending"}`))
	back = withURLParam(back, "themeID", created.ID.String())
	bw := httptest.NewRecorder()
	env.Themes.Update(bw, back)
	if bw.Code != http.StatusUnprocessableEntity {
		t.Errorf("backward transition: got %d, want 422", bw.Code)
	}

	// Delete, then a second delete 422s.
	del := httptest.NewRequest(http.MethodDelete, "/api/themes/"+created.ID.String(), nil)
	del = withURLParam(del, "themeID", created.ID.String())
	dw := httptest.NewRecorder()
	env.Themes.Delete(dw, del)
	if dw.Code != http.StatusNoContent {
		t.Errorf("delete: got %d, want 204", dw.Code)
	}

	dw2 := httptest.NewRecorder()
	del2 := httptest.NewRequest(http.MethodDelete, "/api/themes/"+created.ID.String(), nil)
	del2 = withURLParam(del2, "themeID", created.ID.String())
	env.Themes.Delete(dw2, del2)
	if dw2.Code != http.StatusUnprocessableEntity {
		t.Errorf("double delete: got %d, want 422", dw2.Code)
	}
}

func TestThemeBySubject(t *testing.T) {
	env := newTestEnv(t)

	createThemeRequest(t, env, `{"subject_matter":"Keep"}`)
	createThemeRequest(t, env, `{"subject_matter":"Drop"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/websites/"+env.WebsiteID.String()+"/themes/by-subject?subject=Keep", nil)
	req = withURLParam(req, "websiteID", env.WebsiteID.String())
	w := httptest.NewRecorder()
	env.Themes.BySubject(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("by-subject: got %d, want 200", w.Code)
	}
	var resp struct {
		Themes []models.PostTheme `json:"themes"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Themes) != 1 || resp.Themes[0].SubjectMatter != "Keep" {
		t.Errorf("expected exactly the matching theme, got %+v", resp.Themes)
	}

	// Missing subject parameter is a validation error.
	bad := httptest.NewRequest(http.MethodGet, "/api/websites/"+env.WebsiteID.String()+"/themes/by-subject", nil)
	bad = withURLParam(bad, "websiteID", env.WebsiteID.String())
	bw := httptest.NewRecorder()
	env.Themes.BySubject(bw, bad)
	if bw.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing subject: got %d, want 422", bw.Code)
	}
}

func TestThemeInvalidWebsiteID(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/websites/not-a-uuid/themes/", nil)
	req = withURLParam(req, "websiteID", "not-a-uuid")
	w := httptest.NewRecorder()
	env.Themes.List(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("got %d, want 422", w.Code)
	}
}

func TestThemeUpdateUnknownID(t *testing.T) {
	env := newTestEnv(t)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodPatch, "/api/themes/"+id, strings.NewReader(`{"subject_matter":"x"}`))
	req = withURLParam(req, "themeID", id)
	w := httptest.NewRecorder()
	env.Themes.Update(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("got %d, want 422: %s", w.Code, w.Body.String())
	}
}
