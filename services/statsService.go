package services

import "context"

// DashboardStats is an independent snapshot of each collection size at read
// time. The values are reported separately and carry no atomicity guarantee
// between them.
type DashboardStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalMeals    int64 `json:"totalMeals"`
	TotalRequests int64 `json:"totalRequests"`
	TotalReviews  int64 `json:"totalReviews"`
}

// Stats is the read-only dashboard fan-out over the four collections.
type Stats struct {
	users    UserStore
	meals    MealStore
	requests RequestStore
	reviews  ReviewStore
}

func NewStats(users UserStore, meals MealStore, requests RequestStore, reviews ReviewStore) *Stats {
	return &Stats{users: users, meals: meals, requests: requests, reviews: reviews}
}

func (s *Stats) Dashboard(ctx context.Context) (*DashboardStats, error) {
	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	meals, err := s.meals.CountMeals(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.CountRequests(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.CountReviews(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalUsers:    users,
		TotalMeals:    meals,
		TotalRequests: requests,
		TotalReviews:  reviews,
	}, nil
}
