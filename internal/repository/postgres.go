package repository

import (
	"context"
	"errors"
	"fmt"

	"address-api/internal/models"

	"github.com/jackc/pgx/v5"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS addresses (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		latitude DOUBLE PRECISION NOT NULL CHECK (latitude BETWEEN -90 AND 90),
		longitude DOUBLE PRECISION NOT NULL CHECK (longitude BETWEEN -180 AND 180)
	);
	CREATE INDEX IF NOT EXISTS addresses_name_idx ON addresses (name);
`

// EnsureSchema creates the addresses table when it does not exist yet
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// Ping checks that the database is reachable
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("repository: ping failed: %w", err)
	}
	return nil
}

// Insert stores a new address and returns the id assigned to it
func (r *Repository) Insert(ctx context.Context, addr models.Address) (int64, error) {
	sql := `
		INSERT INTO addresses (name, latitude, longitude)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRow(ctx, sql, addr.Name, addr.Latitude, addr.Longitude).Scan(&id); err != nil {
		return 0, fmt.Errorf("repository: failed to insert address: %w", err)
	}

	return id, nil
}

// Get returns the address with the given id
func (r *Repository) Get(ctx context.Context, id int64) (*models.Address, error) {
	sql := `
		SELECT id, name, latitude, longitude
		FROM addresses
		WHERE id = $1
	`

	addr, err := scanAddress(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get address %d: %w", id, err)
	}

	return addr, nil
}

// Update overwrites the mutable fields of an address and returns the stored row
func (r *Repository) Update(ctx context.Context, id int64, addr models.Address) (*models.Address, error) {
	sql := `
		UPDATE addresses
		SET name = $1, latitude = $2, longitude = $3
		WHERE id = $4
		RETURNING id, name, latitude, longitude
	`

	updated, err := scanAddress(r.db.QueryRow(ctx, sql, addr.Name, addr.Latitude, addr.Longitude, id))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to update address %d: %w", id, err)
	}

	return updated, nil
}

// Delete removes an address and returns its last stored values
func (r *Repository) Delete(ctx context.Context, id int64) (*models.Address, error) {
	sql := `
		DELETE FROM addresses
		WHERE id = $1
		RETURNING id, name, latitude, longitude
	`

	deleted, err := scanAddress(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to delete address %d: %w", id, err)
	}

	return deleted, nil
}

// InsertBatch bulk loads addresses with COPY and returns the number of rows written
func (r *Repository) InsertBatch(ctx context.Context, addresses []models.Address) (int64, error) {
	count, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"addresses"},
		[]string{"name", "latitude", "longitude"},
		pgx.CopyFromSlice(len(addresses), func(i int) ([]any, error) {
			a := addresses[i]
			return []any{a.Name, a.Latitude, a.Longitude}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy addresses: %w", err)
	}

	return count, nil
}

// ListAll returns every stored address ordered by id
func (r *Repository) ListAll(ctx context.Context) ([]models.Address, error) {
	sql := `
		SELECT id, name, latitude, longitude
		FROM addresses
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list addresses: %w", err)
	}
	defer rows.Close()

	addresses := make([]models.Address, 0)
	for rows.Next() {
		var addr models.Address
		if err := rows.Scan(&addr.ID, &addr.Name, &addr.Latitude, &addr.Longitude); err != nil {
			return nil, fmt.Errorf("repository: failed to scan address: %w", err)
		}
		addresses = append(addresses, addr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return addresses, nil
}

func scanAddress(row pgx.Row) (*models.Address, error) {
	var addr models.Address
	err := row.Scan(&addr.ID, &addr.Name, &addr.Latitude, &addr.Longitude)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}
	return &addr, nil
}
