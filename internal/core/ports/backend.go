package ports

import (
	"context"
	"fmt"
	"time"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
)

// BackendError carries the HTTP status and backend-reported message of a
// non-2xx response.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %s (HTTP %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("backend: HTTP %d", e.StatusCode)
}

// LoginResult is the token endpoint's response: the token pair plus the
// backend's view of the user.
type LoginResult struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	Role    domain.Role `json:"role"`
	User    domain.User `json:"user"`
}

// RawWeek is the weekly menu as the backend serves it: weekday keys "1".."7"
// (Monday..Sunday), each slot a list where only the first entry carries the
// offer.
type RawWeek map[string]RawDay

type RawDay struct {
	Breakfast []RawOffer `json:"breakfast"`
	Lunch     []RawOffer `json:"lunch"`
}

type RawOffer struct {
	ID                int    `json:"id"`
	MenuItems         string `json:"menu_items"`
	Price             string `json:"price"`
	AvailableQuantity int    `json:"available_quantity"`
}

// Backend is the REST surface of the cafeteria platform. All methods carry
// the caller's context; authenticated calls attach the cached bearer token.
type Backend interface {
	// Auth.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, username, password string) error
	RefreshToken(ctx context.Context, refresh string) (access string, err error)

	// Student surface.
	WeeklyMenu(ctx context.Context) (RawWeek, error)
	PayMeal(ctx context.Context, date string, meal domain.MealType, idempotencyKey string) error
	BuySubscription(ctx context.Context, startDate string, idempotencyKey string) error
	Me(ctx context.Context) (*domain.User, error)
	UpdateAllergies(ctx context.Context, allergies string) error
	MyReviews(ctx context.Context) ([]domain.Review, error)
	CreateReview(ctx context.Context, review domain.Review) error

	// Cook surface.
	CookDashboard(ctx context.Context) ([]domain.PurchaseRequest, error)
	PaidStudents(ctx context.Context, date string, meal domain.MealType) ([]domain.PaidStudent, error)
	IssueMealForUser(ctx context.Context, userID int, meal domain.MealType, date string) error
	CreatePurchaseRequest(ctx context.Context, productName string, quantity int, unit string) error

	// Admin surface.
	AdminStats(ctx context.Context) (*domain.AdminStats, error)
	AdminPurchaseRequests(ctx context.Context) ([]domain.PurchaseRequest, error)
	ApproveRequest(ctx context.Context, requestID int, approved bool) error
	DailyReport(ctx context.Context, date string) (*domain.DailyReport, error)

	// Ping probes backend reachability for health checks.
	Ping(ctx context.Context) error
}

// TokenSource supplies the current access token for outgoing requests.
// Implemented by the session cache.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Clock abstracts time for services that compute "today". Tests substitute a
// fixed clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
