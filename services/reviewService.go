package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/showrov4g/hostel-management-server/helper"
	"github.com/showrov4g/hostel-management-server/models"
)

// counterRetryAttempts bounds the reviews_count increment retry after a
// review insert. Past this, the operation reports partial failure and leaves
// repair to reconciliation.
const counterRetryAttempts = 3

// ReviewSyncResult reports both halves of the review-plus-counter write
// independently, so a caller can detect and reconcile a partial failure.
type ReviewSyncResult struct {
	ReviewID       string `json:"reviewId"`
	ReviewCreated  bool   `json:"reviewCreated"`
	CounterUpdated bool   `json:"counterUpdated"`
}

// Reviews creates review documents and keeps the denormalized reviews_count
// on the meal in step. The insert and the increment span two collections, so
// this is a saga: insert, increment with bounded retry, and an idempotent
// Reconcile that recomputes counters from the authoritative review set.
type Reviews struct {
	reviews ReviewStore
	meals   MealStore
	log     *zap.Logger
}

func NewReviews(reviews ReviewStore, meals MealStore, log *zap.Logger) *Reviews {
	return &Reviews{reviews: reviews, meals: meals, log: log}
}

// CreateReview inserts a review for the meal and increments the meal's
// reviews_count. A counter failure after the review insert returns the
// result with CounterUpdated=false and ErrPartialFailure, never a silent
// success.
func (r *Reviews) CreateReview(ctx context.Context, mealID, userID, text string) (ReviewSyncResult, error) {
	var result ReviewSyncResult

	if text == "" {
		return result, fmt.Errorf("review text must not be empty: %w", helper.ErrValidation)
	}

	// Existence check before any mutation, so a bad meal id has no side
	// effect at all.
	if _, err := r.meals.GetMeal(ctx, mealID); err != nil {
		return result, err
	}

	now := time.Now()
	review := &models.Review{
		ProductID:   mealID,
		UserID:      userID,
		ReviewsText: text,
		Created_at:  now,
		Updated_at:  now,
	}

	reviewID, err := r.reviews.InsertReview(ctx, review)
	if err != nil {
		return result, err
	}
	result.ReviewID = reviewID
	result.ReviewCreated = true

	var incErr error
	for attempt := 1; attempt <= counterRetryAttempts; attempt++ {
		incErr = r.meals.IncrementReviewsCount(ctx, mealID, 1)
		if incErr == nil {
			result.CounterUpdated = true
			return result, nil
		}
		if errors.Is(incErr, helper.ErrNotFound) {
			// Meal vanished between the existence check and the increment.
			// Retrying cannot help; reconciliation owns the repair.
			break
		}
		r.log.Warn("reviews_count increment failed, retrying",
			zap.String("meal_id", mealID),
			zap.Int("attempt", attempt),
			zap.Error(incErr))
	}

	r.log.Error("review created but counter increment failed",
		zap.String("meal_id", mealID),
		zap.String("review_id", reviewID),
		zap.Error(incErr))

	return result, fmt.Errorf("review %s created but reviews_count increment failed: %w", reviewID, helper.ErrPartialFailure)
}

// Reconcile recomputes reviews_count for every meal from the reviews
// collection and rewrites any drifted counter. Idempotent; safe to run
// periodically or on detected drift. Returns the number of meals repaired.
func (r *Reviews) Reconcile(ctx context.Context) (int, error) {
	ids, err := r.meals.ListMealIDs(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, mealID := range ids {
		actual, err := r.reviews.CountForMeal(ctx, mealID)
		if err != nil {
			return repaired, err
		}

		meal, err := r.meals.GetMeal(ctx, mealID)
		if errors.Is(err, helper.ErrNotFound) {
			continue
		}
		if err != nil {
			return repaired, err
		}

		if int64(meal.Reviews_count) == actual {
			continue
		}

		if err := r.meals.SetReviewsCount(ctx, mealID, int(actual)); err != nil {
			if errors.Is(err, helper.ErrNotFound) {
				continue
			}
			return repaired, err
		}
		repaired++

		r.log.Info("reviews_count reconciled",
			zap.String("meal_id", mealID),
			zap.Int("stored", meal.Reviews_count),
			zap.Int64("actual", actual))
	}

	return repaired, nil
}
