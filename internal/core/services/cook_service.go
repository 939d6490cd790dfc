package services

import (
	"context"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
	"github.com/novaschool/stolovaya/cafeteria-client/pkg/logger"
)

// CookDashboard is the cook's screen: students waiting for today's meals
// and the cook's own purchase requests.
type CookDashboard struct {
	Date             string
	PaidBreakfast    []domain.PaidStudent
	PaidLunch        []domain.PaidStudent
	PurchaseRequests []domain.PurchaseRequest
}

// CookService is a thin read-modify-write surface over the cook endpoints.
type CookService struct {
	cache   *SessionCache
	backend ports.Backend
	clock   ports.Clock
	log     *logger.Logger
}

func NewCookService(cache *SessionCache, backend ports.Backend, clock ports.Clock, log *logger.Logger) *CookService {
	return &CookService{cache: cache, backend: backend, clock: clock, log: log}
}

// Dashboard loads the full cook view for today: the purchase requests plus
// both paid-student lists.
func (s *CookService) Dashboard(ctx context.Context) (*CookDashboard, error) {
	today := s.clock.Now().Format(domain.ISODate)

	requests, err := s.backend.CookDashboard(ctx)
	if err != nil {
		return nil, err
	}
	breakfast, err := s.backend.PaidStudents(ctx, today, domain.MealBreakfast)
	if err != nil {
		return nil, err
	}
	lunch, err := s.backend.PaidStudents(ctx, today, domain.MealLunch)
	if err != nil {
		return nil, err
	}

	return &CookDashboard{
		Date:             today,
		PaidBreakfast:    breakfast,
		PaidLunch:        lunch,
		PurchaseRequests: requests,
	}, nil
}

// IssueMeal hands a paid meal to a student and removes them from the
// dashboard's local list. The issued pair is also cached so the student
// view reflects it before the next server round-trip.
func (s *CookService) IssueMeal(ctx context.Context, dashboard *CookDashboard, userID int, meal domain.MealType) error {
	if err := s.backend.IssueMealForUser(ctx, userID, meal, dashboard.Date); err != nil {
		return err
	}

	switch meal {
	case domain.MealBreakfast:
		dashboard.PaidBreakfast = removeStudent(dashboard.PaidBreakfast, userID)
	case domain.MealLunch:
		dashboard.PaidLunch = removeStudent(dashboard.PaidLunch, userID)
	}

	issued := domain.IssuedMeal{Date: dashboard.Date, MealType: meal}
	if err := s.cache.RecordIssued(ctx, issued); err != nil {
		s.log.Warnw("failed to cache issued meal", "date", dashboard.Date, "meal", meal, "error", err)
	}
	return nil
}

// CreateRequest files a new purchase request and reloads the request list.
func (s *CookService) CreateRequest(ctx context.Context, productName string, quantity int, unit string) ([]domain.PurchaseRequest, error) {
	if err := s.backend.CreatePurchaseRequest(ctx, productName, quantity, unit); err != nil {
		return nil, err
	}
	return s.backend.CookDashboard(ctx)
}

func removeStudent(list []domain.PaidStudent, userID int) []domain.PaidStudent {
	out := list[:0]
	for _, s := range list {
		if s.ID != userID {
			out = append(out, s)
		}
	}
	return out
}
