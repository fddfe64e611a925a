package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dom/fantasy-draft-assistant/internal/api"
	"github.com/dom/fantasy-draft-assistant/internal/config"
	"github.com/dom/fantasy-draft-assistant/internal/repository"
	reposqlite "github.com/dom/fantasy-draft-assistant/internal/repository/sqlite"
	"github.com/dom/fantasy-draft-assistant/internal/service"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

// TestDB wraps an in-memory SQLite database with the full schema migrated.
// Each test gets its own named shared-cache database so the GORM connection
// pool sees a single store.
type TestDB struct {
	DB *gorm.DB
}

func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Hold one connection open for the lifetime of the test so the shared
	// in-memory database is not reclaimed between queries.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxIdleConns(1)

	if err := reposqlite.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return &TestDB{DB: db}
}

// TestLogger returns a logger that stays quiet unless a test fails loudly
// enough to need it.
func TestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return log
}

// TestConfig returns a configuration suitable for testing.
func TestConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		Environment:     "test",
		DatabasePath:    ":memory:",
		Season:          2025,
		InflationFactor: 1.11,
		LogLevel:        "error",
	}
}

// TestServer holds all components for handler-level testing.
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer wires repositories, services, and the router against an
// in-memory database. The LLM generator defaults to nil; tests that need it
// swap in a stub via WithAnalyzer.
func NewTestServer(t *testing.T, opts ...func(*service.Deps)) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()
	log := TestLogger()

	repos := reposqlite.NewRepositories(testDB.DB)
	deps := &service.Deps{Repos: repos, Config: cfg, Logger: log}
	for _, opt := range opts {
		opt(deps)
	}
	services := service.NewServices(*deps)
	router := api.NewRouter(services, cfg, log)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// WithAnalyzer injects an analysis generator into the service graph.
func WithAnalyzer(a service.Analyzer) func(*service.Deps) {
	return func(d *service.Deps) { d.Analyzer = a }
}

// WithSource injects a stats source into the service graph.
func WithSource(s service.StatsSource) func(*service.Deps) {
	return func(d *service.Deps) { d.Source = s }
}

// AssertJSONResponse decodes a JSON response body into target.
func AssertJSONResponse(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON response, got Content-Type %q", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

// BaseURL returns the test server's base URL.
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path.
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}
