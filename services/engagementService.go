package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/showrov4g/hostel-management-server/helper"
	"github.com/showrov4g/hostel-management-server/models"
)

// Engagement owns the like toggle and the rating engine. Both mutate derived
// state on the meal document (likes, averageRating) through a single atomic
// store operation.
type Engagement struct {
	meals MealStore
	log   *zap.Logger
}

func NewEngagement(meals MealStore, log *zap.Logger) *Engagement {
	return &Engagement{meals: meals, log: log}
}

// ToggleLike flips userID's like on the meal and returns the updated
// membership and counter. Toggle is its own inverse: two calls by the same
// user restore the prior state.
func (e *Engagement) ToggleLike(ctx context.Context, mealID, userID string) (*models.LikeView, error) {
	meal, err := e.meals.ToggleLike(ctx, mealID, userID)
	if err != nil {
		return nil, err
	}

	e.log.Info("like toggled",
		zap.String("meal_id", mealID),
		zap.String("user_id", userID),
		zap.Int("likes", meal.Likes))

	return &models.LikeView{LikedBy: meal.LikedBy, Likes: meal.Likes}, nil
}

// SubmitRating upserts the caller's 1-5 rating on the meal and returns the
// recomputed average. At most one rating per user survives; the average is
// recomputed on every successful upsert, including a same-value replace.
func (e *Engagement) SubmitRating(ctx context.Context, mealID, userID string, rating int) (float64, error) {
	if rating < 1 || rating > 5 {
		return 0, fmt.Errorf("rating must be between 1 and 5: %w", helper.ErrValidation)
	}

	meal, err := e.meals.UpsertRating(ctx, mealID, userID, rating)
	if err != nil {
		return 0, err
	}

	e.log.Info("rating submitted",
		zap.String("meal_id", mealID),
		zap.String("user_id", userID),
		zap.Int("rating", rating),
		zap.Float64("average", meal.AverageRating))

	return meal.AverageRating, nil
}
