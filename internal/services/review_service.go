package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-car-backend/internal/domain"
)

// ReviewRepo defines the repository contract required by ReviewService.
type ReviewRepo interface {
	CreateReview(ctx context.Context, db *gorm.DB, rev *domain.Review) (*domain.Review, error)
	ListReviews(ctx context.Context, db *gorm.DB, limit, offset int) ([]domain.Review, error)
	GetReview(ctx context.Context, db *gorm.DB, id string) (*domain.Review, error)
	UpdateReview(ctx context.Context, db *gorm.DB, id string, patch domain.ReviewPatch) (*domain.Review, error)
	DeleteReview(ctx context.Context, db *gorm.DB, id string) error
}

// ReviewService provides CRUD operations over car reviews.
type ReviewService struct {
	DB   *gorm.DB
	Repo ReviewRepo
}

// NewReviewService constructs a ReviewService.
func NewReviewService(db *gorm.DB, r ReviewRepo) *ReviewService {
	return &ReviewService{DB: db, Repo: r}
}

// Create persists a new review and returns the stored record.
func (s *ReviewService) Create(ctx context.Context, rev *domain.Review) (*domain.Review, error) {
	return s.Repo.CreateReview(ctx, s.DB, rev)
}

// List returns reviews, newest first.
func (s *ReviewService) List(ctx context.Context, limit, offset int) ([]domain.Review, error) {
	return s.Repo.ListReviews(ctx, s.DB, limit, offset)
}

// Get returns a single review by ID.
func (s *ReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	return s.Repo.GetReview(ctx, s.DB, id)
}

// Update applies a partial update and returns the post-update record.
func (s *ReviewService) Update(ctx context.Context, id string, patch domain.ReviewPatch) (*domain.Review, error) {
	return s.Repo.UpdateReview(ctx, s.DB, id, patch)
}

// Delete removes a review by ID.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	return s.Repo.DeleteReview(ctx, s.DB, id)
}
