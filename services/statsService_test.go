package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showrov4g/hostel-management-server/models"
)

func TestDashboard_ReflectsCollectionSizes(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewStats(store, store, store, store)

	store.AddUser(models.User{Email: strPtr("a@mail.com")})
	store.AddUser(models.User{Email: strPtr("b@mail.com")})
	mealID := store.AddMeal(models.Meal{})
	_, err := store.InsertReview(ctx, &models.Review{ProductID: mealID, UserID: "a@mail.com", ReviewsText: "x"})
	require.NoError(t, err)
	_, err = store.InsertRequest(ctx, &models.Request{Meal_id: mealID})
	require.NoError(t, err)

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.TotalMeals)
	assert.EqualValues(t, 1, stats.TotalRequests)
	assert.EqualValues(t, 1, stats.TotalReviews)
}
