package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/polybites/polybites-backend/internal/review/domain"
)

var tracer = otel.Tracer("review-repository")

// GormReviewRepositoryWithTracing wraps GormReviewRepository with tracing
type GormReviewRepositoryWithTracing struct {
	*GormReviewRepository
}

// NewGormReviewRepositoryWithTracing creates a new repository with tracing
func NewGormReviewRepositoryWithTracing(db *gorm.DB) *GormReviewRepositoryWithTracing {
	return &GormReviewRepositoryWithTracing{
		GormReviewRepository: NewGormReviewRepository(db),
	}
}

// CreateWithContext records a span around the review insert
func (r *GormReviewRepositoryWithTracing) CreateWithContext(ctx context.Context, review *domain.FoodReview) error {
	_, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.Int("review.food_id", int(review.FoodID)),
			attribute.Int("review.rating", review.Rating),
		),
	)
	defer span.End()

	err := r.GormReviewRepository.Create(review)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("review.id", int(review.ID)))
	return nil
}

// DeleteOwnedWithContext records a span around the cascading delete
func (r *GormReviewRepositoryWithTracing) DeleteOwnedWithContext(ctx context.Context, id, userID uint) error {
	_, span := tracer.Start(ctx, "repository.DeleteOwned",
		trace.WithAttributes(
			attribute.Int("review.id", int(id)),
		),
	)
	defer span.End()

	err := r.GormReviewRepository.DeleteOwned(id, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// AddLikeWithContext records a span around the ledger insert
func (r *GormReviewRepositoryWithTracing) AddLikeWithContext(ctx context.Context, reviewID, userID uint) error {
	_, span := tracer.Start(ctx, "repository.AddLike",
		trace.WithAttributes(
			attribute.Int("review.id", int(reviewID)),
		),
	)
	defer span.End()

	err := r.GormReviewRepository.AddLike(reviewID, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// RemoveLikeWithContext records a span around the ledger delete
func (r *GormReviewRepositoryWithTracing) RemoveLikeWithContext(ctx context.Context, reviewID, userID uint) error {
	_, span := tracer.Start(ctx, "repository.RemoveLike",
		trace.WithAttributes(
			attribute.Int("review.id", int(reviewID)),
		),
	)
	defer span.End()

	err := r.GormReviewRepository.RemoveLike(reviewID, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// RestaurantReviewStatsWithContext records a span around the three-way join
func (r *GormReviewRepositoryWithTracing) RestaurantReviewStatsWithContext(ctx context.Context) ([]domain.RestaurantReviewStats, error) {
	_, span := tracer.Start(ctx, "repository.RestaurantReviewStats")
	defer span.End()

	stats, err := r.GormReviewRepository.RestaurantReviewStats()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("restaurants.count", len(stats)))
	return stats, nil
}
