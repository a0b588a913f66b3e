package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ray/storefront-backend/internal/api"
	"github.com/ray/storefront-backend/internal/auth"
	"github.com/ray/storefront-backend/internal/config"
	"github.com/ray/storefront-backend/internal/store"
	"github.com/ray/storefront-backend/internal/store/memory"
	storePostgres "github.com/ray/storefront-backend/internal/store/postgres"
	"github.com/ray/storefront-backend/internal/usecase"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_storefront"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := storePostgres.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"order_products",
		"orders",
		"sessions",
		"users",
		"products",
		"product_categories",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0", // Random port
		Environment:        "test",
		StoreBackend:       config.BackendMemory,
		AccessTokenSecret:  "test-access-secret-key-for-testing-only",
		RefreshTokenSecret: "test-refresh-secret-key-for-testing-only",
		AccessTokenTTL:     time.Hour,
		RefreshTokenTTL:    30 * 24 * time.Hour,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	Store    store.Store
	Usecases *usecase.Usecases
	Manager  *auth.Manager
	Config   *config.Config
}

// NewTestServer creates a complete test server over the in-memory store
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return NewTestServerWithStore(t, memory.New())
}

// NewTestServerWithStore creates a complete test server over any store
func NewTestServerWithStore(t *testing.T, st store.Store) *TestServer {
	t.Helper()

	cfg := TestConfig()
	uc := usecase.New(st)
	manager := auth.NewManager(uc.Users, auth.NewTokens(cfg))
	router := api.NewRouter(uc, manager, cfg)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		Store:    st,
		Usecases: uc,
		Manager:  manager,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}
