package integration

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"gellies-store/internal/auth"
	"gellies-store/internal/database"
	"gellies-store/internal/handler"
	"gellies-store/internal/middleware"
	"gellies-store/internal/repository"
	"gellies-store/internal/router"
	"gellies-store/internal/service"
	"gellies-store/internal/upload"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, connection pool and schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.MigratePostgres(ctx, pool); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// TestServer is the full HTTP stack bound to a test database.
type TestServer struct {
	Handler   http.Handler
	Repos     *repository.Set
	UploadDir string
}

// setupTestServer wires repositories, services, handlers and router the way
// the API binary does, with uploads in a temporary directory.
func setupTestServer(t *testing.T, testDB *TestDB) *TestServer {
	t.Helper()

	logger := zerolog.Nop()
	uploadDir := filepath.Join(t.TempDir(), "uploads")

	repos := repository.NewPostgresSet(testDB.Pool, logger)

	uploads, err := upload.NewLocalStore(uploadDir, "/uploads", logger)
	if err != nil {
		t.Fatalf("failed to create upload store: %v", err)
	}

	authService := service.NewAuthService(repos.Users, auth.NewBcryptHasher(4), logger)
	productService := service.NewProductService(repos.Products, uploads, logger)
	transactionService := service.NewTransactionService(repos.Transactions, repos.Products, logger)

	opts := handler.Options{ExposeErrors: true}
	h := router.Handlers{
		Auth:        handler.NewAuthHandler(authService, opts, logger),
		Product:     handler.NewProductHandler(productService, 10<<20, opts, logger),
		Transaction: handler.NewTransactionHandler(transactionService, opts, logger),
		Health:      handler.NewHealthHandler(repos.Store, logger),
	}

	return &TestServer{
		Handler: router.New(h, router.Options{
			AllowedOrigins:  []string{"http://localhost:3000"},
			UploadDir:       uploadDir,
			UploadURLPrefix: "/uploads",
			Metrics:         middleware.NewMetrics(),
		}, logger),
		Repos:     repos,
		UploadDir: uploadDir,
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"transaction_items", "transactions", "products", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
