package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
)

// PayMealCall records one PayMeal invocation.
type PayMealCall struct {
	Date           string
	Meal           domain.MealType
	IdempotencyKey string
}

// IssueCall records one IssueMealForUser invocation.
type IssueCall struct {
	UserID int
	Meal   domain.MealType
	Date   string
}

// MockBackend implements ports.Backend with scripted responses.
// Fields configure what each method returns; calls are recorded so tests can
// verify what reached the wire.
type MockBackend struct {
	mu sync.Mutex

	// Scripted responses
	LoginResult     *ports.LoginResult
	RefreshedAccess string
	Week            ports.RawWeek
	User            *domain.User
	Reviews         []domain.Review
	Requests        []domain.PurchaseRequest
	Paid            map[string][]domain.PaidStudent // keyed "date|meal"
	Stats           *domain.AdminStats
	AdminRequests   []domain.PurchaseRequest
	Reports         map[string]*domain.DailyReport // keyed by date

	// Call tracking for verification
	LoginCalls           [][2]string
	RegisterCalls        [][2]string
	RefreshCalls         []string
	WeekCalls            int
	PayMealCalls         []PayMealCall
	SubscriptionCalls    []PayMealCall // Date carries the start date
	UpdateAllergiesCalls []string
	CreateReviewCalls    []domain.Review
	PaidStudentsCalls    []string
	IssueCalls           []IssueCall
	CreateRequestCalls   []string
	ApproveCalls         [][2]int // [id, approved 0/1]

	// Error injection for testing error scenarios
	LoginError           error
	RegisterError        error
	RefreshError         error
	WeekError            error
	PayMealError         error
	SubscriptionError    error
	MeError              error
	UpdateAllergiesError error
	MyReviewsError       error
	CreateReviewError    error
	CookDashboardError   error
	PaidStudentsError    error
	IssueError           error
	CreateRequestError   error
	StatsError           error
	AdminRequestsError   error
	ApproveError         error
	ReportError          error
	PingError            error
}

// Ensure MockBackend implements ports.Backend at compile time.
var _ ports.Backend = (*MockBackend)(nil)

func NewMockBackend() *MockBackend {
	return &MockBackend{
		Paid:    make(map[string][]domain.PaidStudent),
		Reports: make(map[string]*domain.DailyReport),
	}
}

// PaidKey builds the lookup key for the Paid map.
func PaidKey(date string, meal domain.MealType) string {
	return fmt.Sprintf("%s|%s", date, meal)
}

func (m *MockBackend) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	m.mu.Lock()
	m.LoginCalls = append(m.LoginCalls, [2]string{username, password})
	m.mu.Unlock()
	if m.LoginError != nil {
		return nil, m.LoginError
	}
	return m.LoginResult, nil
}

func (m *MockBackend) Register(ctx context.Context, username, password string) error {
	m.mu.Lock()
	m.RegisterCalls = append(m.RegisterCalls, [2]string{username, password})
	m.mu.Unlock()
	return m.RegisterError
}

func (m *MockBackend) RefreshToken(ctx context.Context, refresh string) (string, error) {
	m.mu.Lock()
	m.RefreshCalls = append(m.RefreshCalls, refresh)
	m.mu.Unlock()
	if m.RefreshError != nil {
		return "", m.RefreshError
	}
	return m.RefreshedAccess, nil
}

func (m *MockBackend) WeeklyMenu(ctx context.Context) (ports.RawWeek, error) {
	m.mu.Lock()
	m.WeekCalls++
	m.mu.Unlock()
	if m.WeekError != nil {
		return nil, m.WeekError
	}
	return m.Week, nil
}

func (m *MockBackend) PayMeal(ctx context.Context, date string, meal domain.MealType, idempotencyKey string) error {
	m.mu.Lock()
	m.PayMealCalls = append(m.PayMealCalls, PayMealCall{Date: date, Meal: meal, IdempotencyKey: idempotencyKey})
	m.mu.Unlock()
	return m.PayMealError
}

func (m *MockBackend) BuySubscription(ctx context.Context, startDate string, idempotencyKey string) error {
	m.mu.Lock()
	m.SubscriptionCalls = append(m.SubscriptionCalls, PayMealCall{Date: startDate, IdempotencyKey: idempotencyKey})
	m.mu.Unlock()
	return m.SubscriptionError
}

func (m *MockBackend) Me(ctx context.Context) (*domain.User, error) {
	if m.MeError != nil {
		return nil, m.MeError
	}
	return m.User, nil
}

func (m *MockBackend) UpdateAllergies(ctx context.Context, allergies string) error {
	m.mu.Lock()
	m.UpdateAllergiesCalls = append(m.UpdateAllergiesCalls, allergies)
	m.mu.Unlock()
	return m.UpdateAllergiesError
}

func (m *MockBackend) MyReviews(ctx context.Context) ([]domain.Review, error) {
	if m.MyReviewsError != nil {
		return nil, m.MyReviewsError
	}
	return m.Reviews, nil
}

func (m *MockBackend) CreateReview(ctx context.Context, review domain.Review) error {
	m.mu.Lock()
	m.CreateReviewCalls = append(m.CreateReviewCalls, review)
	m.mu.Unlock()
	return m.CreateReviewError
}

func (m *MockBackend) CookDashboard(ctx context.Context) ([]domain.PurchaseRequest, error) {
	if m.CookDashboardError != nil {
		return nil, m.CookDashboardError
	}
	return m.Requests, nil
}

func (m *MockBackend) PaidStudents(ctx context.Context, date string, meal domain.MealType) ([]domain.PaidStudent, error) {
	m.mu.Lock()
	m.PaidStudentsCalls = append(m.PaidStudentsCalls, PaidKey(date, meal))
	m.mu.Unlock()
	if m.PaidStudentsError != nil {
		return nil, m.PaidStudentsError
	}
	return m.Paid[PaidKey(date, meal)], nil
}

func (m *MockBackend) IssueMealForUser(ctx context.Context, userID int, meal domain.MealType, date string) error {
	m.mu.Lock()
	m.IssueCalls = append(m.IssueCalls, IssueCall{UserID: userID, Meal: meal, Date: date})
	m.mu.Unlock()
	return m.IssueError
}

func (m *MockBackend) CreatePurchaseRequest(ctx context.Context, productName string, quantity int, unit string) error {
	m.mu.Lock()
	m.CreateRequestCalls = append(m.CreateRequestCalls, fmt.Sprintf("%s:%d:%s", productName, quantity, unit))
	m.mu.Unlock()
	return m.CreateRequestError
}

func (m *MockBackend) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	if m.StatsError != nil {
		return nil, m.StatsError
	}
	return m.Stats, nil
}

func (m *MockBackend) AdminPurchaseRequests(ctx context.Context) ([]domain.PurchaseRequest, error) {
	if m.AdminRequestsError != nil {
		return nil, m.AdminRequestsError
	}
	return m.AdminRequests, nil
}

func (m *MockBackend) ApproveRequest(ctx context.Context, requestID int, approved bool) error {
	flag := 0
	if approved {
		flag = 1
	}
	m.mu.Lock()
	m.ApproveCalls = append(m.ApproveCalls, [2]int{requestID, flag})
	m.mu.Unlock()
	return m.ApproveError
}

func (m *MockBackend) DailyReport(ctx context.Context, date string) (*domain.DailyReport, error) {
	if m.ReportError != nil {
		return nil, m.ReportError
	}
	report, ok := m.Reports[date]
	if !ok {
		return nil, &ports.BackendError{StatusCode: 404, Message: "no report for " + date}
	}
	return report, nil
}

func (m *MockBackend) Ping(ctx context.Context) error {
	return m.PingError
}
