package service

import (
	"context"
	"fmt"

	"address-api/internal/metrics"
	"address-api/internal/models"
	"address-api/internal/validation"
)

// AddressService contains the business logic for address CRUD operations
type AddressService struct {
	repo    AddressRepository
	metrics *metrics.Metrics
}

// AddressRepository interface for dependency injection
type AddressRepository interface {
	Insert(ctx context.Context, addr models.Address) (int64, error)
	Get(ctx context.Context, id int64) (*models.Address, error)
	Update(ctx context.Context, id int64, addr models.Address) (*models.Address, error)
	Delete(ctx context.Context, id int64) (*models.Address, error)
}

// NewAddressService creates a new address service
func NewAddressService(repo AddressRepository, metrics *metrics.Metrics) *AddressService {
	return &AddressService{repo: repo, metrics: metrics}
}

// Create validates the input, stores it and returns the record with its new id
func (s *AddressService) Create(ctx context.Context, in models.AddressInput) (*models.Address, error) {
	addr, err := validation.ValidateAddress(in)
	if err != nil {
		return nil, fmt.Errorf("service: invalid address: %w", err)
	}

	id, err := s.repo.Insert(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("service: failed to create address: %w", err)
	}
	addr.ID = id
	s.metrics.Mutations.WithLabelValues("create").Inc()

	return &addr, nil
}

// Get returns the address with the given id
func (s *AddressService) Get(ctx context.Context, id int64) (*models.Address, error) {
	addr, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get address: %w", err)
	}

	return addr, nil
}

// Update replaces name and coordinates of an existing address
func (s *AddressService) Update(ctx context.Context, id int64, in models.AddressInput) (*models.Address, error) {
	addr, err := validation.ValidateAddress(in)
	if err != nil {
		return nil, fmt.Errorf("service: invalid address: %w", err)
	}

	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("service: failed to load address for update: %w", err)
	}

	updated, err := s.repo.Update(ctx, id, addr)
	if err != nil {
		return nil, fmt.Errorf("service: failed to update address: %w", err)
	}
	s.metrics.Mutations.WithLabelValues("update").Inc()

	return updated, nil
}

// Delete removes an address and returns its last known values
func (s *AddressService) Delete(ctx context.Context, id int64) (*models.Address, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("service: failed to load address for delete: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to delete address: %w", err)
	}
	s.metrics.Mutations.WithLabelValues("delete").Inc()

	return deleted, nil
}
