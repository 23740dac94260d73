package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/showrov4g/hostel-management-server/helper"
	"github.com/showrov4g/hostel-management-server/models"
)

func strPtr(s string) *string { return &s }

func newRequestFixture() (*Requests, *MemoryStore) {
	store := NewMemoryStore()
	store.AddUser(models.User{Email: strPtr("member@mail.com"), Subscription: true})
	store.AddUser(models.User{Email: strPtr("free@mail.com"), Subscription: false})
	return NewRequests(store, store, zap.NewNop()), store
}

func TestCreateRequest_RequiresSubscription(t *testing.T) {
	ctx := context.Background()
	svc, store := newRequestFixture()

	_, err := svc.Create(ctx, "free@mail.com", &models.Request{Meal_id: "m1"})
	assert.ErrorIs(t, err, helper.ErrForbidden)

	count, err := store.CountRequests(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "no request document is created")
}

func TestCreateRequest_UnknownUserForbidden(t *testing.T) {
	ctx := context.Background()
	svc, store := newRequestFixture()

	_, err := svc.Create(ctx, "nobody@mail.com", &models.Request{Meal_id: "m1"})
	assert.ErrorIs(t, err, helper.ErrForbidden)

	count, err := store.CountRequests(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateRequest_StartsPending(t *testing.T) {
	ctx := context.Background()
	svc, store := newRequestFixture()

	created, err := svc.Create(ctx, "member@mail.com", &models.Request{Meal_id: "m1"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, "member@mail.com", created.User_email)
	assert.False(t, created.Requested_at.IsZero())

	stored, ok := store.GetRequest(created.ID.Hex())
	require.True(t, ok)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestAdvanceRequest_Delivers(t *testing.T) {
	ctx := context.Background()
	svc, store := newRequestFixture()

	created, err := svc.Create(ctx, "member@mail.com", &models.Request{Meal_id: "m1"})
	require.NoError(t, err)
	id := created.ID.Hex()

	require.NoError(t, svc.Advance(ctx, id))

	stored, ok := store.GetRequest(id)
	require.True(t, ok)
	assert.Equal(t, models.StatusDelivered, stored.Status)
}

func TestAdvanceRequest_IdempotentOnDelivered(t *testing.T) {
	ctx := context.Background()
	svc, store := newRequestFixture()

	created, err := svc.Create(ctx, "member@mail.com", &models.Request{Meal_id: "m1"})
	require.NoError(t, err)
	id := created.ID.Hex()

	require.NoError(t, svc.Advance(ctx, id))
	require.NoError(t, svc.Advance(ctx, id), "advancing a delivered request must not error")

	stored, ok := store.GetRequest(id)
	require.True(t, ok)
	assert.Equal(t, models.StatusDelivered, stored.Status)
}

func TestAdvanceRequest_NotFound(t *testing.T) {
	svc, _ := newRequestFixture()

	err := svc.Advance(context.Background(), "ffffffffffffffffffffffff")
	assert.ErrorIs(t, err, helper.ErrNotFound)
}

func TestDeleteRequest_AnyState(t *testing.T) {
	ctx := context.Background()
	svc, store := newRequestFixture()

	pending, err := svc.Create(ctx, "member@mail.com", &models.Request{Meal_id: "m1"})
	require.NoError(t, err)
	delivered, err := svc.Create(ctx, "member@mail.com", &models.Request{Meal_id: "m2"})
	require.NoError(t, err)
	require.NoError(t, svc.Advance(ctx, delivered.ID.Hex()))

	require.NoError(t, svc.Delete(ctx, pending.ID.Hex()))
	require.NoError(t, svc.Delete(ctx, delivered.ID.Hex()))

	count, err := store.CountRequests(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	err = svc.Delete(ctx, pending.ID.Hex())
	assert.ErrorIs(t, err, helper.ErrNotFound)
}
