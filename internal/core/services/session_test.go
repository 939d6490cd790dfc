package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/services"
	"github.com/novaschool/stolovaya/cafeteria-client/test/mocks"
)

func TestSessionCache_StoreLogin(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewMockKeyValue()
	cache := services.NewSessionCache(kv)

	result := &ports.LoginResult{
		Access:  "access-token",
		Refresh: "refresh-token",
		Role:    domain.RoleCook,
		User:    domain.User{ID: 7, Username: "maria", Role: domain.RoleCook},
	}
	if err := cache.StoreLogin(ctx, result); err != nil {
		t.Fatalf("StoreLogin() error = %v", err)
	}

	if kv.Value("access") != "access-token" || kv.Value("refresh") != "refresh-token" {
		t.Error("token pair not stored")
	}
	if kv.Value("user_role") != "cook" {
		t.Errorf("user_role = %q", kv.Value("user_role"))
	}
	user, err := cache.User(ctx)
	if err != nil || user == nil || user.Username != "maria" {
		t.Errorf("User() = %+v, %v", user, err)
	}
}

func TestSessionCache_MissingKeysReadAsEmpty(t *testing.T) {
	ctx := context.Background()
	cache := services.NewSessionCache(mocks.NewMockKeyValue())

	token, err := cache.AccessToken(ctx)
	if err != nil || token != "" {
		t.Errorf("AccessToken() = %q, %v", token, err)
	}
	user, err := cache.User(ctx)
	if err != nil || user != nil {
		t.Errorf("User() = %+v, %v", user, err)
	}
	payments, err := cache.MealPayments(ctx)
	if err != nil || payments != nil {
		t.Errorf("MealPayments() = %v, %v", payments, err)
	}
}

func TestSessionCache_AppendMealPayment(t *testing.T) {
	ctx := context.Background()
	cache := services.NewSessionCache(mocks.NewMockKeyValue())
	receipt := domain.PaymentReceipt{Date: "2025-01-15", MealType: domain.MealLunch, Amount: 250}

	if err := cache.AppendMealPayment(ctx, receipt); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := cache.AppendMealPayment(ctx, receipt); !errors.Is(err, services.ErrAlreadyPaid) {
		t.Fatalf("duplicate append error = %v, want ErrAlreadyPaid", err)
	}

	// Same day, other meal is a distinct pair.
	other := receipt
	other.MealType = domain.MealBreakfast
	if err := cache.AppendMealPayment(ctx, other); err != nil {
		t.Fatalf("other meal append: %v", err)
	}

	payments, err := cache.MealPayments(ctx)
	if err != nil || len(payments) != 2 {
		t.Errorf("MealPayments() = %v, %v", payments, err)
	}
}

func TestSessionCache_RecordIssuedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cache := services.NewSessionCache(mocks.NewMockKeyValue())
	meal := domain.IssuedMeal{Date: "2025-01-15", MealType: domain.MealLunch}

	for i := 0; i < 3; i++ {
		if err := cache.RecordIssued(ctx, meal); err != nil {
			t.Fatalf("RecordIssued() round %d: %v", i, err)
		}
	}
	issued, err := cache.IssuedMeals(ctx)
	if err != nil || len(issued) != 1 {
		t.Errorf("IssuedMeals() = %v, %v, want a single record", issued, err)
	}
}

func TestSessionCache_ClearWipesEverything(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewMockKeyValue()
	kv.Seed("access", "token")
	kv.Seed("mealPayments", `[{"date":"2025-01-15","meal_type":"lunch","amount":250}]`)
	cache := services.NewSessionCache(kv)

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if kv.Value("access") != "" || kv.Value("mealPayments") != "" {
		t.Error("session data survived Clear()")
	}
}

func TestSessionCache_CorruptListSurfacesError(t *testing.T) {
	ctx := context.Background()
	kv := mocks.NewMockKeyValue()
	kv.Seed("mealPayments", "{not json")
	cache := services.NewSessionCache(kv)

	if _, err := cache.MealPayments(ctx); err == nil {
		t.Error("corrupt list read succeeded")
	}
}
