// Package services defines the business layer between HTTP handlers and the
// persistence gateway. Services stay thin: they orchestrate repository
// calls and let errors propagate untouched so the HTTP boundary can
// classify them in one place.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-car-backend/internal/domain"
)

// CarRepo defines the repository contract required by CarService.
type CarRepo interface {
	// CreateCar validates and inserts a new car listing.
	CreateCar(ctx context.Context, db *gorm.DB, car *domain.Car) (*domain.Car, error)

	// ListCars returns listings, newest first; limit <= 0 means all.
	ListCars(ctx context.Context, db *gorm.DB, limit, offset int) ([]domain.Car, error)

	// GetCar fetches a car by ID or gorm.ErrRecordNotFound.
	GetCar(ctx context.Context, db *gorm.DB, id string) (*domain.Car, error)

	// UpdateCar merges a partial update, re-validates and saves.
	UpdateCar(ctx context.Context, db *gorm.DB, id string, patch domain.CarPatch) (*domain.Car, error)

	// DeleteCar removes a car by ID or returns gorm.ErrRecordNotFound.
	DeleteCar(ctx context.Context, db *gorm.DB, id string) error
}

// CarService provides CRUD operations over car listings.
type CarService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the car repository used by this service.
	Repo CarRepo
}

// NewCarService constructs a CarService.
func NewCarService(db *gorm.DB, r CarRepo) *CarService {
	return &CarService{DB: db, Repo: r}
}

// Create persists a new car listing and returns the stored record.
func (s *CarService) Create(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	return s.Repo.CreateCar(ctx, s.DB, car)
}

// List returns car listings, newest first.
func (s *CarService) List(ctx context.Context, limit, offset int) ([]domain.Car, error) {
	return s.Repo.ListCars(ctx, s.DB, limit, offset)
}

// Get returns a single car by ID.
func (s *CarService) Get(ctx context.Context, id string) (*domain.Car, error) {
	return s.Repo.GetCar(ctx, s.DB, id)
}

// Update applies a partial update and returns the post-update record.
func (s *CarService) Update(ctx context.Context, id string, patch domain.CarPatch) (*domain.Car, error) {
	return s.Repo.UpdateCar(ctx, s.DB, id, patch)
}

// Delete removes a car by ID.
func (s *CarService) Delete(ctx context.Context, id string) error {
	return s.Repo.DeleteCar(ctx, s.DB, id)
}
