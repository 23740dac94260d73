package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/showrov4g/hostel-management-server/helper"
	"github.com/showrov4g/hostel-management-server/models"
)

func newEngagementFixture() (*Engagement, *MemoryStore, string) {
	store := NewMemoryStore()
	mealID := store.AddMeal(models.Meal{})
	return NewEngagement(store, zap.NewNop()), store, mealID
}

func TestToggleLike_AddsThenRemoves(t *testing.T) {
	ctx := context.Background()
	svc, _, mealID := newEngagementFixture()

	view, err := svc.ToggleLike(ctx, mealID, "alice@mail.com")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Likes)
	assert.Equal(t, []string{"alice@mail.com"}, view.LikedBy)

	view, err = svc.ToggleLike(ctx, mealID, "alice@mail.com")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Likes)
	assert.Empty(t, view.LikedBy)
}

func TestToggleLike_CounterMatchesMembership(t *testing.T) {
	ctx := context.Background()
	svc, store, mealID := newEngagementFixture()

	// Fixed sequence of toggles; track who should end up liked.
	sequence := []string{"a", "b", "a", "c", "b", "b", "d", "a"}
	expected := map[string]bool{}
	for _, user := range sequence {
		_, err := svc.ToggleLike(ctx, mealID, user)
		require.NoError(t, err)
		expected[user] = !expected[user]
	}

	meal, err := store.GetMeal(ctx, mealID)
	require.NoError(t, err)
	assert.Equal(t, len(meal.LikedBy), meal.Likes, "likes must equal |likedBy|")

	liked := map[string]bool{}
	for _, user := range meal.LikedBy {
		liked[user] = true
	}
	for user, want := range expected {
		assert.Equal(t, want, liked[user], "user %s", user)
	}
}

func TestToggleLike_ConcurrentDistinctUsers(t *testing.T) {
	ctx := context.Background()
	svc, store, mealID := newEngagementFixture()

	const users = 32
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.ToggleLike(ctx, mealID, fmt.Sprintf("user-%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	meal, err := store.GetMeal(ctx, mealID)
	require.NoError(t, err)
	assert.Equal(t, users, meal.Likes)
	assert.Len(t, meal.LikedBy, users)

	// Everyone toggles again; the meal must return to its prior state.
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.ToggleLike(ctx, mealID, fmt.Sprintf("user-%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	meal, err = store.GetMeal(ctx, mealID)
	require.NoError(t, err)
	assert.Zero(t, meal.Likes)
	assert.Empty(t, meal.LikedBy)
}

func TestToggleLike_MealNotFound(t *testing.T) {
	svc, _, _ := newEngagementFixture()

	_, err := svc.ToggleLike(context.Background(), "ffffffffffffffffffffffff", "alice@mail.com")
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestSubmitRating_RejectsOutOfRange(t *testing.T) {
	ctx := context.Background()
	svc, store, mealID := newEngagementFixture()

	for _, rating := range []int{0, 6, -1, 100} {
		_, err := svc.SubmitRating(ctx, mealID, "alice@mail.com", rating)
		assert.ErrorIs(t, err, helper.ErrValidation, "rating %d", rating)
	}

	// Rejected before any mutation.
	meal, err := store.GetMeal(ctx, mealID)
	require.NoError(t, err)
	assert.Empty(t, meal.Ratings)
	assert.Zero(t, meal.AverageRating)
}

func TestSubmitRating_MealNotFound(t *testing.T) {
	svc, _, _ := newEngagementFixture()

	_, err := svc.SubmitRating(context.Background(), "ffffffffffffffffffffffff", "alice@mail.com", 3)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestSubmitRating_OneEntryPerUser(t *testing.T) {
	ctx := context.Background()
	svc, store, mealID := newEngagementFixture()

	_, err := svc.SubmitRating(ctx, mealID, "alice@mail.com", 4)
	require.NoError(t, err)

	average, err := svc.SubmitRating(ctx, mealID, "alice@mail.com", 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, average, "average reflects only the latest value")

	meal, err := store.GetMeal(ctx, mealID)
	require.NoError(t, err)
	require.Len(t, meal.Ratings, 1)
	assert.Equal(t, "alice@mail.com", meal.Ratings[0].UserID)
	assert.Equal(t, 2, meal.Ratings[0].Rating)
}

func TestSubmitRating_AverageAcrossUsers(t *testing.T) {
	ctx := context.Background()
	svc, _, mealID := newEngagementFixture()

	_, err := svc.SubmitRating(ctx, mealID, "a@mail.com", 4)
	require.NoError(t, err)
	_, err = svc.SubmitRating(ctx, mealID, "b@mail.com", 5)
	require.NoError(t, err)

	average, err := svc.SubmitRating(ctx, mealID, "c@mail.com", 3)
	require.NoError(t, err)
	assert.Equal(t, 4.0, average)
}

func TestSubmitRating_AverageRoundedToTwoPlaces(t *testing.T) {
	ctx := context.Background()
	svc, _, mealID := newEngagementFixture()

	_, err := svc.SubmitRating(ctx, mealID, "a@mail.com", 1)
	require.NoError(t, err)
	_, err = svc.SubmitRating(ctx, mealID, "b@mail.com", 2)
	require.NoError(t, err)

	average, err := svc.SubmitRating(ctx, mealID, "c@mail.com", 2)
	require.NoError(t, err)
	assert.Equal(t, 1.67, average)
}

func TestSubmitRating_SameValueUpsertRecomputes(t *testing.T) {
	ctx := context.Background()
	svc, store, mealID := newEngagementFixture()

	_, err := svc.SubmitRating(ctx, mealID, "alice@mail.com", 4)
	require.NoError(t, err)

	// A no-op replace still recomputes; nothing drifts and nothing errors.
	average, err := svc.SubmitRating(ctx, mealID, "alice@mail.com", 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, average)

	meal, err := store.GetMeal(ctx, mealID)
	require.NoError(t, err)
	require.Len(t, meal.Ratings, 1)
	assert.Equal(t, 4.0, meal.AverageRating)
}
