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

// Requests runs the meal-request lifecycle: subscription-gated creation,
// the pending -> delivered transition, and deletion in any state.
type Requests struct {
	requests RequestStore
	users    UserStore
	log      *zap.Logger
}

func NewRequests(requests RequestStore, users UserStore, log *zap.Logger) *Requests {
	return &Requests{requests: requests, users: users, log: log}
}

// Create inserts a meal request in state pending for the given user.
// Fails with ErrForbidden before any mutation when the user has no active
// subscription.
func (s *Requests) Create(ctx context.Context, userEmail string, req *models.Request) (*models.Request, error) {
	user, err := s.users.GetUserByEmail(ctx, userEmail)
	if errors.Is(err, helper.ErrNotFound) {
		return nil, fmt.Errorf("subscription required to request meals: %w", helper.ErrForbidden)
	}
	if err != nil {
		return nil, err
	}
	if !user.Subscription {
		return nil, fmt.Errorf("subscription required to request meals: %w", helper.ErrForbidden)
	}

	req.User_email = userEmail
	req.Status = models.StatusPending
	req.Requested_at = time.Now()

	if _, err := s.requests.InsertRequest(ctx, req); err != nil {
		return nil, err
	}

	s.log.Info("meal request created",
		zap.String("meal_id", req.Meal_id),
		zap.String("email", userEmail))

	return req, nil
}

// Advance sets the request status to delivered. Advancing an already
// delivered request is a no-op in effect but succeeds; an absent request is
// ErrNotFound.
func (s *Requests) Advance(ctx context.Context, requestID string) error {
	if err := s.requests.MarkDelivered(ctx, requestID); err != nil {
		return err
	}
	s.log.Info("meal request delivered", zap.String("request_id", requestID))
	return nil
}

// Delete removes the request regardless of state. Owner-or-admin checks
// belong to the caller, not to this component.
func (s *Requests) Delete(ctx context.Context, requestID string) error {
	if err := s.requests.DeleteRequest(ctx, requestID); err != nil {
		return err
	}
	s.log.Info("meal request deleted", zap.String("request_id", requestID))
	return nil
}
