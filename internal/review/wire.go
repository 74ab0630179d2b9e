//go:build wireinject
// +build wireinject

package review

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/polybites/polybites-backend/internal/review/delivery/http"
	"github.com/polybites/polybites-backend/internal/review/domain"
	"github.com/polybites/polybites-backend/internal/review/repository"
	"github.com/polybites/polybites-backend/kafka"
)

// ProvideReviewRepository provides the review repository wrapped with
// per-query tracing spans
func ProvideReviewRepository(db *gorm.DB) domain.ReviewRepository {
	return repository.NewGormReviewRepositoryWithTracing(db)
}

// RepositorySet wires the repository behind its domain interface
var RepositorySet = wire.NewSet(
	ProvideReviewRepository,
)

// InitializeHandler initializes the HTTP handler with all dependencies.
// publisher may be nil when Kafka is not configured.
func InitializeHandler(db *gorm.DB, publisher *kafka.Publisher) *http.FoodReviewHandler {
	wire.Build(
		RepositorySet,
		http.NewFoodReviewHandler,
	)
	return nil
}
