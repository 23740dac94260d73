package services

import (
	"context"

	"github.com/showrov4g/hostel-management-server/models"
)

// MealStore is the document-store surface the engagement operations need.
// ToggleLike and UpsertRating must be single atomic operations against the
// backing store: the membership test (or rating replace-vs-append decision)
// and the derived-counter update happen in one indivisible document write,
// never as a read followed by an unconditional write.
type MealStore interface {
	// GetMeal returns helper.ErrNotFound when no meal has the given id.
	GetMeal(ctx context.Context, mealID string) (*models.Meal, error)

	// ToggleLike flips userID's membership in likedBy and keeps likes equal
	// to the set size, atomically. Returns the updated meal.
	ToggleLike(ctx context.Context, mealID, userID string) (*models.Meal, error)

	// UpsertRating replaces userID's rating entry in place, or appends one,
	// and recomputes averageRating from the persisted array, atomically.
	// Returns the updated meal.
	UpsertRating(ctx context.Context, mealID, userID string, rating int) (*models.Meal, error)

	// IncrementReviewsCount adds delta to the meal's reviews_count.
	IncrementReviewsCount(ctx context.Context, mealID string, delta int) error

	// SetReviewsCount overwrites the meal's reviews_count. Used by the
	// reconciliation path only.
	SetReviewsCount(ctx context.Context, mealID string, count int) error

	// ListMealIDs returns the ids of all meals.
	ListMealIDs(ctx context.Context) ([]string, error)

	CountMeals(ctx context.Context) (int64, error)
}

// ReviewStore persists review documents. reviews is the authoritative set;
// the reviews_count field on a meal is derived from it.
type ReviewStore interface {
	InsertReview(ctx context.Context, review *models.Review) (string, error)
	CountForMeal(ctx context.Context, mealID string) (int64, error)
	CountReviews(ctx context.Context) (int64, error)
}

// RequestStore persists meal requests.
type RequestStore interface {
	InsertRequest(ctx context.Context, req *models.Request) (string, error)

	// MarkDelivered sets the request status to delivered. Idempotent: an
	// already-delivered request is matched and left delivered without error.
	// Returns helper.ErrNotFound when no request has the given id.
	MarkDelivered(ctx context.Context, requestID string) error

	// DeleteRequest removes the request in any state.
	DeleteRequest(ctx context.Context, requestID string) error

	CountRequests(ctx context.Context) (int64, error)
}

// UserStore is the read-only view of users this subsystem consults.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)
}
