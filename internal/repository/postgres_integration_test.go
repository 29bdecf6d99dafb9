//go:build integration

package repository

import (
	"context"
	"testing"

	"address-api/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	postgresC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, postgresC)
	require.NoError(t, err)

	connString, err := postgresC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func TestPostgresRepository_Lifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.EnsureSchema(ctx))
	// idempotent bootstrap
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.Ping(ctx))

	idA, err := repo.Insert(ctx, models.Address{Name: "A", Latitude: 0, Longitude: 0})
	require.NoError(t, err)
	idB, err := repo.Insert(ctx, models.Address{Name: "B", Latitude: 0, Longitude: 1})
	require.NoError(t, err)
	assert.Greater(t, idB, idA)

	got, err := repo.Get(ctx, idA)
	require.NoError(t, err)
	assert.Equal(t, &models.Address{ID: idA, Name: "A", Latitude: 0, Longitude: 0}, got)

	updated, err := repo.Update(ctx, idB, models.Address{Name: "B2", Latitude: 45.123456, Longitude: -120.654321})
	require.NoError(t, err)
	assert.Equal(t, &models.Address{ID: idB, Name: "B2", Latitude: 45.123456, Longitude: -120.654321}, updated)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, idA, all[0].ID)
	assert.Equal(t, idB, all[1].ID)

	deleted, err := repo.Delete(ctx, idA)
	require.NoError(t, err)
	assert.Equal(t, "A", deleted.Name)

	_, err = repo.Get(ctx, idA)
	require.ErrorIs(t, err, models.ErrAddressNotFound)
	_, err = repo.Delete(ctx, idA)
	require.ErrorIs(t, err, models.ErrAddressNotFound)

	idC, err := repo.Insert(ctx, models.Address{Name: "C", Latitude: 1, Longitude: 1})
	require.NoError(t, err)
	assert.Greater(t, idC, idB, "deleted ids are not reused")
}

func TestPostgresRepository_RangeConstraints(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool)
	ctx := context.Background()
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err := repo.Insert(ctx, models.Address{Name: "bad", Latitude: 91, Longitude: 0})
	require.Error(t, err)

	_, err = repo.Insert(ctx, models.Address{Name: "bad", Latitude: 0, Longitude: -181})
	require.Error(t, err)
}
