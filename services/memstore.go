package services

import (
	"context"
	"fmt"
	"math"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/showrov4g/hostel-management-server/helper"
	"github.com/showrov4g/hostel-management-server/models"
)

// MemoryStore is an in-memory implementation of all four store interfaces.
// The mutex is its atomic-update primitive: every operation on a document is
// one critical section, matching the single-document atomicity the Mongo
// store gets from pipeline updates.
type MemoryStore struct {
	mu       sync.Mutex
	meals    map[string]*models.Meal
	reviews  map[string]*models.Review
	requests map[string]*models.Request
	users    map[string]*models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		meals:    map[string]*models.Meal{},
		reviews:  map[string]*models.Review{},
		requests: map[string]*models.Request{},
		users:    map[string]*models.User{},
	}
}

// AddMeal seeds a meal and returns its id.
func (s *MemoryStore) AddMeal(meal models.Meal) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if meal.ID.IsZero() {
		meal.ID = primitive.NewObjectID()
	}
	id := meal.ID.Hex()
	s.meals[id] = &meal
	return id
}

// AddUser seeds a user keyed by email.
func (s *MemoryStore) AddUser(user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Email != nil {
		s.users[*user.Email] = &user
	}
}

// GetRequest returns a seeded or inserted request by id.
func (s *MemoryStore) GetRequest(requestID string) (*models.Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[requestID]
	if !ok {
		return nil, false
	}
	cp := *req
	return &cp, true
}

func copyMeal(meal *models.Meal) *models.Meal {
	cp := *meal
	cp.LikedBy = append([]string(nil), meal.LikedBy...)
	cp.Ratings = append([]models.RatingEntry(nil), meal.Ratings...)
	return &cp
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *MemoryStore) GetMeal(ctx context.Context, mealID string) (*models.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meal, ok := s.meals[mealID]
	if !ok {
		return nil, fmt.Errorf("meal %s: %w", mealID, helper.ErrNotFound)
	}
	return copyMeal(meal), nil
}

func (s *MemoryStore) ToggleLike(ctx context.Context, mealID, userID string) (*models.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meal, ok := s.meals[mealID]
	if !ok {
		return nil, fmt.Errorf("meal %s: %w", mealID, helper.ErrNotFound)
	}

	idx := -1
	for i, id := range meal.LikedBy {
		if id == userID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		meal.LikedBy = append(meal.LikedBy[:idx], meal.LikedBy[idx+1:]...)
	} else {
		meal.LikedBy = append(meal.LikedBy, userID)
	}
	meal.Likes = len(meal.LikedBy)

	return copyMeal(meal), nil
}

func (s *MemoryStore) UpsertRating(ctx context.Context, mealID, userID string, rating int) (*models.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meal, ok := s.meals[mealID]
	if !ok {
		return nil, fmt.Errorf("meal %s: %w", mealID, helper.ErrNotFound)
	}

	replaced := false
	for i := range meal.Ratings {
		if meal.Ratings[i].UserID == userID {
			meal.Ratings[i].Rating = rating
			replaced = true
			break
		}
	}
	if !replaced {
		meal.Ratings = append(meal.Ratings, models.RatingEntry{UserID: userID, Rating: rating})
	}

	sum := 0
	for _, entry := range meal.Ratings {
		sum += entry.Rating
	}
	meal.AverageRating = round2(float64(sum) / float64(len(meal.Ratings)))

	return copyMeal(meal), nil
}

func (s *MemoryStore) IncrementReviewsCount(ctx context.Context, mealID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meal, ok := s.meals[mealID]
	if !ok {
		return fmt.Errorf("meal %s: %w", mealID, helper.ErrNotFound)
	}
	meal.Reviews_count += delta
	return nil
}

func (s *MemoryStore) SetReviewsCount(ctx context.Context, mealID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	meal, ok := s.meals[mealID]
	if !ok {
		return fmt.Errorf("meal %s: %w", mealID, helper.ErrNotFound)
	}
	meal.Reviews_count = count
	return nil
}

func (s *MemoryStore) ListMealIDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.meals))
	for id := range s.meals {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MemoryStore) CountMeals(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.meals)), nil
}

func (s *MemoryStore) InsertReview(ctx context.Context, review *models.Review) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review.ID = primitive.NewObjectID()
	id := review.ID.Hex()
	cp := *review
	s.reviews[id] = &cp
	return id, nil
}

func (s *MemoryStore) CountForMeal(ctx context.Context, mealID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, review := range s.reviews {
		if review.ProductID == mealID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) CountReviews(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.reviews)), nil
}

func (s *MemoryStore) InsertRequest(ctx context.Context, req *models.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req.ID = primitive.NewObjectID()
	id := req.ID.Hex()
	cp := *req
	s.requests[id] = &cp
	return id, nil
}

func (s *MemoryStore) MarkDelivered(ctx context.Context, requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[requestID]
	if !ok {
		return fmt.Errorf("request %s: %w", requestID, helper.ErrNotFound)
	}
	req.Status = models.StatusDelivered
	return nil
}

func (s *MemoryStore) DeleteRequest(ctx context.Context, requestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[requestID]; !ok {
		return fmt.Errorf("request %s: %w", requestID, helper.ErrNotFound)
	}
	delete(s.requests, requestID)
	return nil
}

func (s *MemoryStore) CountRequests(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.requests)), nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, helper.ErrNotFound)
	}
	cp := *user
	return &cp, nil
}

func (s *MemoryStore) CountUsers(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}
