package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dailydiet/internal/config"
	"dailydiet/internal/database"
	"dailydiet/internal/models"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testConfig(driver, dsn string) *config.Config {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("DB_DRIVER", driver)
	v.Set("DATABASE_DSN", dsn)
	return config.FromViper(v)
}

func TestHealthCheck(t *testing.T) {
	cfg := testConfig(database.DriverMemory, "")
	stores, err := OpenStores(cfg)
	require.NoError(t, err)
	defer stores.Close()

	app := NewApp(cfg, stores, nil, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestEndToEndOnSQLiteFile(t *testing.T) {
	cfg := testConfig(database.DriverSQLite, filepath.Join(t.TempDir(), "db", "app.db"))
	stores, err := OpenStores(cfg)
	require.NoError(t, err)
	defer stores.Close()

	app := NewApp(cfg, stores, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"Ana","email":"ana@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == models.TokenCookieName {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.WithinDuration(t, time.Now().Add(cfg.SessionTTL), session.Expires, time.Minute)

	for _, inDiet := range []string{"true", "true", "true"} {
		req = httptest.NewRequest(http.MethodPost, "/meals",
			strings.NewReader(`{"name":"meal","description":"plate","is_in_diet":`+inDiet+`}`))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(session)
		resp, err = app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/meals/metrics", nil)
	req.AddCookie(session)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var report models.AdherenceReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, models.AdherenceReport{TotalMeals: 3, MealsInDiet: 3, BestSequence: 3}, report)

	scrape, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer scrape.Body.Close()
	metrics, err := io.ReadAll(scrape.Body)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `dailydiet_http_requests_total{method="POST",path="/meals",status="201"} 3`)
}

func registerSession(t *testing.T, app *fiber.App, name, email string) (*http.Cookie, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":"`+name+`","email":"`+email+`"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	for _, c := range resp.Cookies() {
		if c.Name == models.TokenCookieName {
			return c, body["user_id"]
		}
	}
	t.Fatalf("no %s cookie in register response", models.TokenCookieName)
	return nil, ""
}

func TestMealOwnerSurvivesOtherSessionsOnMemoryStore(t *testing.T) {
	cfg := testConfig(database.DriverMemory, "")
	stores, err := OpenStores(cfg)
	require.NoError(t, err)
	defer stores.Close()

	app := NewApp(cfg, stores, nil, nil)

	anaSession, anaID := registerSession(t, app, "Ana", "ana@example.com")
	bobSession, bobID := registerSession(t, app, "Bob", "bob@example.com")
	require.NotEqual(t, anaID, bobID)

	req := httptest.NewRequest(http.MethodPost, "/meals",
		strings.NewReader(`{"name":"Lunch","description":"salad","is_in_diet":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(anaSession)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var created map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	mealID := created["meal_id"]

	for i := 0; i < 5; i++ {
		req = httptest.NewRequest(http.MethodGet, "/meals", nil)
		req.AddCookie(bobSession)
		resp, err = app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	stored, err := stores.Meals.GetByID(context.Background(), mealID)
	require.NoError(t, err)
	assert.Equal(t, anaID, stored.UserID)

	req = httptest.NewRequest(http.MethodGet, "/meals/"+mealID, nil)
	req.AddCookie(anaSession)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/meals/"+mealID, nil)
	req.AddCookie(bobSession)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
