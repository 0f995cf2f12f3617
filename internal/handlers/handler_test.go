// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"contentplan/internal/cache"
	"contentplan/internal/database"
	"contentplan/internal/feedback"
	"contentplan/internal/middleware"
	"contentplan/internal/session"
	"contentplan/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "contentplan")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "contentplan")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "schedule:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Valkey        *redis.Client
	Sessions      *session.Store
	ThemeStore    *store.ThemeStore
	SettingStore  *store.SettingStore
	WebsiteStore  *store.WebsiteStore
	OrgStore      *store.OrganisationStore
	UserStore     *store.UserStore
	Registry      *feedback.Registry
	Preview       *cache.SchedulePreview
	Auth          *Auth
	Themes        *Themes
	Suggestions   *Suggestions
	Settings      *Settings
	Organisations *Organisations
	WebsiteID     uuid.UUID
	OrgID         uuid.UUID
}

// newTestEnv creates a complete test environment with all handler
// dependencies and one throwaway organisation + website.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	themeStore := store.NewThemeStore(db)
	settingStore := store.NewSettingStore(db)
	websiteStore := store.NewWebsiteStore(db)
	orgStore := store.NewOrganisationStore(db)
	userStore := store.NewUserStore(db)
	registry := feedback.NewRegistry(themeStore)
	preview := cache.NewSchedulePreview(vk)

	org, err := orgStore.Create("Handler Test Org " + uuid.NewString()[:8])
	if err != nil {
		t.Fatalf("create organisation: %v", err)
	}
	site, err := websiteStore.Create(org.ID, "Handler Test Site", "https://test.example.com")
	if err != nil {
		t.Fatalf("create website: %v", err)
	}
	t.Cleanup(func() {
		// Websites, settings and themes cascade from the organisation.
		db.Exec(`DELETE FROM organisations WHERE id = $1`, org.ID)
	})

	return &testEnv{
		DB:            db,
		Valkey:        vk,
		Sessions:      sessions,
		ThemeStore:    themeStore,
		SettingStore:  settingStore,
		WebsiteStore:  websiteStore,
		OrgStore:      orgStore,
		UserStore:     userStore,
		Registry:      registry,
		Preview:       preview,
		Auth:          NewAuth(sessions, userStore),
		Themes:        NewThemes(themeStore, settingStore, preview),
		Suggestions:   NewSuggestions(registry, settingStore, preview),
		Settings:      NewSettings(settingStore, websiteStore),
		Organisations: NewOrganisations(orgStore, websiteStore),
		WebsiteID:     site.ID,
		OrgID:         org.ID,
	}
}

// withURLParam attaches a chi route parameter to a request, simulating
// router extraction.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// ctxWithSession adds session data to a request using the middleware key.
func withSession(r *http.Request, data *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, data))
}
