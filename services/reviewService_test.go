package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/showrov4g/hostel-management-server/helper"
	"github.com/showrov4g/hostel-management-server/models"
)

// failingMealStore breaks the counter increment to force the partial-failure
// path.
type failingMealStore struct {
	MealStore
}

func (f *failingMealStore) IncrementReviewsCount(ctx context.Context, mealID string, delta int) error {
	return fmt.Errorf("%w: simulated outage", helper.ErrStorage)
}

func TestCreateReview_IncrementsCounterByOne(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	mealID := store.AddMeal(models.Meal{Reviews_count: 2})
	svc := NewReviews(store, store, zap.NewNop())

	result, err := svc.CreateReview(ctx, mealID, "alice@mail.com", "tasty")
	require.NoError(t, err)
	assert.True(t, result.ReviewCreated)
	assert.True(t, result.CounterUpdated)
	assert.NotEmpty(t, result.ReviewID)

	meal, err := store.GetMeal(ctx, mealID)
	require.NoError(t, err)
	assert.Equal(t, 3, meal.Reviews_count)

	count, err := store.CountForMeal(ctx, mealID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCreateReview_MealNotFoundNoSideEffect(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewReviews(store, store, zap.NewNop())

	result, err := svc.CreateReview(ctx, "ffffffffffffffffffffffff", "alice@mail.com", "tasty")
	assert.ErrorIs(t, err, helper.ErrNotFound)
	assert.False(t, result.ReviewCreated)
	assert.False(t, result.CounterUpdated)

	total, err := store.CountReviews(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateReview_EmptyTextRejected(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	mealID := store.AddMeal(models.Meal{})
	svc := NewReviews(store, store, zap.NewNop())

	_, err := svc.CreateReview(ctx, mealID, "alice@mail.com", "")
	assert.ErrorIs(t, err, helper.ErrValidation)

	total, err := store.CountReviews(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateReview_CounterFailureIsReported(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	mealID := store.AddMeal(models.Meal{})
	svc := NewReviews(store, &failingMealStore{MealStore: store}, zap.NewNop())

	result, err := svc.CreateReview(ctx, mealID, "alice@mail.com", "tasty")
	assert.ErrorIs(t, err, helper.ErrPartialFailure)
	assert.True(t, result.ReviewCreated, "the review half did succeed")
	assert.False(t, result.CounterUpdated, "the counter half did not")
	assert.NotEmpty(t, result.ReviewID)

	// The review exists; the counter is stale until reconciliation.
	count, err := store.CountForMeal(ctx, mealID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	meal, err := store.GetMeal(ctx, mealID)
	require.NoError(t, err)
	assert.Zero(t, meal.Reviews_count)
}

func TestReconcile_RepairsDriftedCounters(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewReviews(store, store, zap.NewNop())

	driftedID := store.AddMeal(models.Meal{Reviews_count: 7})
	healthyID := store.AddMeal(models.Meal{Reviews_count: 1})

	for i := 0; i < 3; i++ {
		_, err := store.InsertReview(ctx, &models.Review{ProductID: driftedID, UserID: fmt.Sprintf("u%d", i), ReviewsText: "x"})
		require.NoError(t, err)
	}
	_, err := store.InsertReview(ctx, &models.Review{ProductID: healthyID, UserID: "u", ReviewsText: "x"})
	require.NoError(t, err)

	repaired, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)

	meal, err := store.GetMeal(ctx, driftedID)
	require.NoError(t, err)
	assert.Equal(t, 3, meal.Reviews_count)

	meal, err = store.GetMeal(ctx, healthyID)
	require.NoError(t, err)
	assert.Equal(t, 1, meal.Reviews_count)
}

func TestReconcile_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewReviews(store, store, zap.NewNop())

	mealID := store.AddMeal(models.Meal{Reviews_count: 5})
	_, err := store.InsertReview(ctx, &models.Review{ProductID: mealID, UserID: "u", ReviewsText: "x"})
	require.NoError(t, err)

	repaired, err := svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)

	repaired, err = svc.Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, repaired, "second run finds nothing to repair")
}

func TestReconcile_RepairsPartialFailure(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	mealID := store.AddMeal(models.Meal{})

	broken := NewReviews(store, &failingMealStore{MealStore: store}, zap.NewNop())
	_, err := broken.CreateReview(ctx, mealID, "alice@mail.com", "tasty")
	require.ErrorIs(t, err, helper.ErrPartialFailure)

	// The reconciliation path, running against the healthy store, converges
	// the counter onto the authoritative review set.
	healthy := NewReviews(store, store, zap.NewNop())
	repaired, err := healthy.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)

	meal, err := store.GetMeal(ctx, mealID)
	require.NoError(t, err)
	assert.Equal(t, 1, meal.Reviews_count)
}
