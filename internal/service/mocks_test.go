package service

import (
	"context"
	"sort"
	"sync"

	"address-api/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockAddressRepository is a mock implementation of the AddressRepository interface
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) Insert(ctx context.Context, addr models.Address) (int64, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAddressRepository) Get(ctx context.Context, id int64) (*models.Address, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.Address), args.Error(1)
}

func (m *MockAddressRepository) Update(ctx context.Context, id int64, addr models.Address) (*models.Address, error) {
	args := m.Called(ctx, id, addr)
	return args.Get(0).(*models.Address), args.Error(1)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id int64) (*models.Address, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.Address), args.Error(1)
}

// MockProximityRepository is a mock implementation of the ProximityRepository interface
type MockProximityRepository struct {
	mock.Mock
}

func (m *MockProximityRepository) ListAll(ctx context.Context) ([]models.Address, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Address), args.Error(1)
}

// memoryRepository is an in-memory store used for property style tests.
type memoryRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Address
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[int64]models.Address)}
}

func (r *memoryRepository) Insert(_ context.Context, addr models.Address) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	addr.ID = r.nextID
	r.rows[addr.ID] = addr
	return addr.ID, nil
}

func (r *memoryRepository) Get(_ context.Context, id int64) (*models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	addr, ok := r.rows[id]
	if !ok {
		return nil, models.ErrAddressNotFound
	}
	return &addr, nil
}

func (r *memoryRepository) Update(_ context.Context, id int64, addr models.Address) (*models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return nil, models.ErrAddressNotFound
	}
	addr.ID = id
	r.rows[id] = addr
	return &addr, nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) (*models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	addr, ok := r.rows[id]
	if !ok {
		return nil, models.ErrAddressNotFound
	}
	delete(r.rows, id)
	return &addr, nil
}

func (r *memoryRepository) ListAll(_ context.Context) ([]models.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Address, 0, len(r.rows))
	for _, addr := range r.rows {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
