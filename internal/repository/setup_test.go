package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gellies-store/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setupPostgres starts a PostgreSQL testcontainer and returns repositories bound to it.
func setupPostgres(t *testing.T) *Set {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.MigratePostgres(ctx, pool))

	t.Cleanup(func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	})

	return NewPostgresSet(pool, zerolog.Nop())
}

// setupMongo starts a MongoDB testcontainer and returns repositories bound to it.
func setupMongo(t *testing.T) *Set {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForListeningPort("27017/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(fmt.Sprintf("mongodb://%s:%s", host, port.Port())))
	require.NoError(t, err)

	db := client.Database("testdb")
	require.NoError(t, database.MigrateMongo(ctx, db))

	t.Cleanup(func() {
		_ = client.Disconnect(ctx)
		_ = container.Terminate(ctx)
	})

	return NewMongoSet(db, zerolog.Nop())
}

// forEachBackend runs fn once per record store backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, set *Set)) {
	if testing.Short() {
		t.Skip("skipping container-backed repository test")
	}

	backends := map[string]func(t *testing.T) *Set{
		"postgres": setupPostgres,
		"mongo":    setupMongo,
	}

	for name, setup := range backends {
		t.Run(name, func(t *testing.T) {
			fn(t, setup(t))
		})
	}
}

func strPtr(s string) *string {
	return &s
}
