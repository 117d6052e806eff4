package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodshare/internal/config"
	"foodshare/internal/handler"
	"foodshare/internal/metrics"
	"foodshare/internal/repository"
	"foodshare/internal/router"
	"foodshare/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testConfig returns a configuration with every non-store setting filled in.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "localhost", Port: 3000},
		Store:  config.StoreConfig{Timeout: 5 * time.Second},
		Logger: config.LoggerConfig{Level: "info", Format: "json"},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// SetupMongoStore starts a MongoDB container and opens a store against it.
func SetupMongoStore(t *testing.T) (*repository.Store, *config.Config) {
	t.Helper()

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongodb container: %v", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	cfg := testConfig()
	cfg.Store.Driver = config.DriverMongo
	cfg.Mongo = config.MongoConfig{URI: uri, Database: "share-db"}
	require.NoError(t, cfg.Validate())

	return openStore(t, cfg, mongoContainer), cfg
}

// SetupPostgresStore starts a PostgreSQL container and opens a store
// against it.
func SetupPostgresStore(t *testing.T) (*repository.Store, *config.Config) {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}

	cfg := testConfig()
	cfg.Store.Driver = config.DriverPostgres
	cfg.Database = config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}
	require.NoError(t, cfg.Validate())

	return openStore(t, cfg, postgresContainer), cfg
}

func openStore(t *testing.T, cfg *config.Config, container testcontainers.Container) *repository.Store {
	t.Helper()

	ctx := context.Background()

	store, err := repository.Open(ctx, cfg, zerolog.Nop())
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open %s store: %v", cfg.Store.Driver, err)
	}

	t.Cleanup(func() {
		if err := store.Close(ctx); err != nil {
			t.Logf("failed to close store: %v", err)
		}
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return store
}

// TestServer is the fully wired API over a real store.
type TestServer struct {
	Handler  http.Handler
	Foods    service.FoodService
	Requests service.RequestService
	Registry *prometheus.Registry
}

// NewTestServer wires services, handlers and the router the same way the
// API binary does.
func NewTestServer(t *testing.T, store *repository.Store, cfg *config.Config) *TestServer {
	t.Helper()

	logger := zerolog.Nop()
	registry := prometheus.NewRegistry()

	foodService := service.NewFoodService(store.Foods, cfg.Store.Timeout, logger)
	requestService := service.NewRequestService(store.Requests, store.Foods, service.RequestOptions{
		Timeout:               cfg.Store.Timeout,
		ValidateFoodReference: cfg.Requests.ValidateFoodReference,
	}, logger)

	mux := router.New(
		handler.NewFoodHandler(foodService, logger),
		handler.NewRequestHandler(requestService, logger),
		handler.NewHealthHandler(store.Pinger, cfg.Store.Timeout, logger),
		router.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Metrics:        metrics.NewHTTPMetrics(registry),
			Gatherer:       registry,
		},
		logger,
	)

	return &TestServer{
		Handler:  mux,
		Foods:    foodService,
		Requests: requestService,
		Registry: registry,
	}
}

// envelope mirrors handler.Envelope with a raw result for typed decoding.
type envelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// Do sends a request with an optional JSON body and decodes the envelope.
func (s *TestServer) Do(t *testing.T, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	s.Handler.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	}
	return w.Code, env
}

// DecodeResult unmarshals the envelope result into a generic document.
func DecodeResult[T any](t *testing.T, env envelope) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(env.Result, &out))
	return out
}
