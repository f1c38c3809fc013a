// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Review
// model. Error semantics match car_repo.go; in addition, inserting a second
// review for the same (carMake, carModel, reviewer) triple violates the
// unique index and surfaces as a UNIQUE constraint error.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-car-backend/internal/domain"
)

// CreateReview validates and inserts a new review with a generated UUID and
// UTC creation timestamp.
func CreateReview(ctx context.Context, db *gorm.DB, rev *domain.Review) (*domain.Review, error) {
	rev.ID = uuid.NewString()
	rev.CreatedAt = time.Now().UTC()
	if err := rev.Validate(); err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Create(rev).Error; err != nil {
		return nil, err
	}
	return rev, nil
}

// ListReviews returns reviews ordered by creation time descending.
// A limit <= 0 returns everything.
func ListReviews(ctx context.Context, db *gorm.DB, limit, offset int) ([]domain.Review, error) {
	out := []domain.Review{}
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

// GetReview fetches a single review by ID, returning ErrNotFound when absent.
func GetReview(ctx context.Context, db *gorm.DB, id string) (*domain.Review, error) {
	var r domain.Review
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateReview applies a partial update, re-validates the merged record and
// saves it. Returns the post-update record or ErrNotFound.
func UpdateReview(ctx context.Context, db *gorm.DB, id string, patch domain.ReviewPatch) (*domain.Review, error) {
	var r domain.Review
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	patch.Apply(&r)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.UpdatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Save(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteReview removes the review identified by id, returning ErrNotFound
// when no rows are affected.
func DeleteReview(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
