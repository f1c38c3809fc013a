// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Car model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence with schema validation on every write.
//
// Error semantics:
//   - When a car is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - When a record fails schema validation, the raw
//     validator.ValidationErrors is returned before anything is written.
//   - On other DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-car-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateCar validates and inserts a new car listing. The ID is a randomly
// generated UUID (string) and CreatedAt is set to UTC. The caller's
// Available field is kept as provided (the transport layer defaults it to
// true when the payload omits it).
//
// On success, it returns the persisted Car.
func CreateCar(ctx context.Context, db *gorm.DB, car *domain.Car) (*domain.Car, error) {
	car.ID = uuid.NewString()
	car.CreatedAt = time.Now().UTC()
	if err := car.Validate(); err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Create(car).Error; err != nil {
		return nil, err
	}
	return car, nil
}

// ListCars returns car listings ordered by creation time descending.
// A limit <= 0 returns everything. It returns an empty slice when the
// collection is empty.
func ListCars(ctx context.Context, db *gorm.DB, limit, offset int) ([]domain.Car, error) {
	out := []domain.Car{}
	q := db.WithContext(ctx).Order("created_at desc")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// GetCar fetches a single car by ID. If the record does not exist it
// returns ErrNotFound. On other DB errors the raw error is returned.
func GetCar(ctx context.Context, db *gorm.DB, id string) (*domain.Car, error) {
	var c domain.Car
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCar applies a partial update to the car identified by id. The
// stored record is loaded, the patch merged, the result re-validated and
// saved. It returns the post-update record, ErrNotFound when the car does
// not exist, or validator.ValidationErrors when the merged record breaks
// the schema (nothing is written in that case).
func UpdateCar(ctx context.Context, db *gorm.DB, id string, patch domain.CarPatch) (*domain.Car, error) {
	var c domain.Car
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	patch.Apply(&c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Save(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCar removes the car identified by id. If no rows are affected it
// returns ErrNotFound.
func DeleteCar(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Car{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
