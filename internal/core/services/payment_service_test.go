package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/services"
	"github.com/novaschool/stolovaya/cafeteria-client/pkg/logger"
	"github.com/novaschool/stolovaya/cafeteria-client/test/mocks"
)

var validCard = services.CardDetails{
	Number: "4111 1111 1111 1111",
	Expiry: "12/29",
	CVC:    "123",
}

func newRecorder(kv *mocks.MockKeyValue, backend *mocks.MockBackend) *services.PaymentRecorder {
	cache := services.NewSessionCache(kv)
	eval := services.NewEntitlementEvaluator(cache)
	return services.NewPaymentRecorder(cache, backend, eval, logger.Nop())
}

func TestCardDetails_Validate(t *testing.T) {
	tests := []struct {
		name    string
		card    services.CardDetails
		wantErr error
	}{
		{
			name: "valid_card_with_spaces",
			card: validCard,
		},
		{
			name: "valid_card_with_dashes",
			card: services.CardDetails{Number: "4111-1111-1111-1111", Expiry: "01/26", CVC: "000"},
		},
		{
			name:    "fifteen_digits_rejected",
			card:    services.CardDetails{Number: "411111111111111", Expiry: "12/29", CVC: "123"},
			wantErr: services.ErrInvalidCardNumber,
		},
		{
			name:    "month_thirteen_rejected",
			card:    services.CardDetails{Number: "4111111111111111", Expiry: "13/29", CVC: "123"},
			wantErr: services.ErrInvalidExpiry,
		},
		{
			name:    "month_zero_rejected",
			card:    services.CardDetails{Number: "4111111111111111", Expiry: "00/29", CVC: "123"},
			wantErr: services.ErrInvalidExpiry,
		},
		{
			name:    "four_digit_year_rejected",
			card:    services.CardDetails{Number: "4111111111111111", Expiry: "12/2029", CVC: "123"},
			wantErr: services.ErrInvalidExpiry,
		},
		{
			name:    "short_cvc_rejected",
			card:    services.CardDetails{Number: "4111111111111111", Expiry: "12/29", CVC: "12"},
			wantErr: services.ErrInvalidCVC,
		},
		{
			name:    "alphabetic_cvc_rejected",
			card:    services.CardDetails{Number: "4111111111111111", Expiry: "12/29", CVC: "abc"},
			wantErr: services.ErrInvalidCVC,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.card.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPaymentRecorder_PayMeal(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("success_appends_exact_receipt", func(t *testing.T) {
		kv := mocks.NewMockKeyValue()
		backend := mocks.NewMockBackend()
		recorder := newRecorder(kv, backend)

		result, err := recorder.Pay(ctx, validCard, day, domain.MealLunch, 250)
		if err != nil {
			t.Fatalf("Pay() error = %v", err)
		}
		if result.Amount != 250 || result.Subscription {
			t.Errorf("result = %+v, want one-time 250", result)
		}
		if len(backend.PayMealCalls) != 1 {
			t.Fatalf("expected one backend call, got %d", len(backend.PayMealCalls))
		}
		call := backend.PayMealCalls[0]
		if call.Date != "2025-01-15" || call.Meal != domain.MealLunch {
			t.Errorf("backend got %+v", call)
		}
		if call.IdempotencyKey == "" {
			t.Error("payment sent without an idempotency key")
		}
		stored := kv.Value("mealPayments")
		if !strings.Contains(stored, `"date":"2025-01-15"`) ||
			!strings.Contains(stored, `"meal_type":"lunch"`) ||
			!strings.Contains(stored, `"amount":250`) {
			t.Errorf("cached receipts = %s", stored)
		}
	})

	t.Run("invalid_card_never_reaches_the_backend", func(t *testing.T) {
		backend := mocks.NewMockBackend()
		recorder := newRecorder(mocks.NewMockKeyValue(), backend)

		bad := validCard
		bad.CVC = "1"
		if _, err := recorder.Pay(ctx, bad, day, domain.MealLunch, 250); !errors.Is(err, services.ErrInvalidCVC) {
			t.Fatalf("Pay() error = %v, want ErrInvalidCVC", err)
		}
		if len(backend.PayMealCalls) != 0 {
			t.Error("backend was called with an invalid card")
		}
	})

	t.Run("already_paid_fails_before_any_network_call", func(t *testing.T) {
		kv := mocks.NewMockKeyValue()
		kv.Seed("mealPayments", `[{"date":"2025-01-15","meal_type":"lunch","amount":250}]`)
		backend := mocks.NewMockBackend()
		recorder := newRecorder(kv, backend)

		if _, err := recorder.Pay(ctx, validCard, day, domain.MealLunch, 250); !errors.Is(err, services.ErrAlreadyPaid) {
			t.Fatalf("Pay() error = %v, want ErrAlreadyPaid", err)
		}
		if len(backend.PayMealCalls) != 0 {
			t.Error("backend was called for an already paid meal")
		}
	})

	t.Run("backend_failure_leaves_cache_untouched", func(t *testing.T) {
		kv := mocks.NewMockKeyValue()
		backend := mocks.NewMockBackend()
		backend.PayMealError = errors.New("boom")
		recorder := newRecorder(kv, backend)

		if _, err := recorder.Pay(ctx, validCard, day, domain.MealLunch, 250); err == nil {
			t.Fatal("Pay() succeeded despite backend failure")
		}
		if kv.Value("mealPayments") != "" {
			t.Errorf("receipt cached after failed payment: %s", kv.Value("mealPayments"))
		}
	})

	t.Run("fresh_idempotency_key_per_submission", func(t *testing.T) {
		backend := mocks.NewMockBackend()
		recorder := newRecorder(mocks.NewMockKeyValue(), backend)

		if _, err := recorder.Pay(ctx, validCard, day, domain.MealBreakfast, 150); err != nil {
			t.Fatal(err)
		}
		if _, err := recorder.Pay(ctx, validCard, day, domain.MealLunch, 250); err != nil {
			t.Fatal(err)
		}
		if backend.PayMealCalls[0].IdempotencyKey == backend.PayMealCalls[1].IdempotencyKey {
			t.Error("two submissions shared an idempotency key")
		}
	})
}

func TestPaymentRecorder_Subscription(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("subscription_price_dispatches_subscription_purchase", func(t *testing.T) {
		kv := mocks.NewMockKeyValue()
		backend := mocks.NewMockBackend()
		recorder := newRecorder(kv, backend)

		result, err := recorder.Pay(ctx, validCard, day, domain.MealLunch, domain.SubscriptionPrice)
		if err != nil {
			t.Fatalf("Pay() error = %v", err)
		}
		if !result.Subscription || result.Amount != domain.SubscriptionPrice {
			t.Errorf("result = %+v, want subscription", result)
		}
		if len(backend.PayMealCalls) != 0 || len(backend.SubscriptionCalls) != 1 {
			t.Fatalf("calls: meals %d subs %d", len(backend.PayMealCalls), len(backend.SubscriptionCalls))
		}
		if backend.SubscriptionCalls[0].Date != "2025-01-15" {
			t.Errorf("start date %q", backend.SubscriptionCalls[0].Date)
		}
		stored := kv.Value("subscriptions")
		if !strings.Contains(stored, `"start_date":"2025-01-15"`) ||
			!strings.Contains(stored, `"end_date":"2025-02-14"`) {
			t.Errorf("cached subscriptions = %s", stored)
		}
	})

	t.Run("active_subscription_rejects_overlapping_start", func(t *testing.T) {
		kv := mocks.NewMockKeyValue()
		kv.Seed("subscriptions", `[{"start_date":"2025-01-01","end_date":"2025-01-31"}]`)
		recorder := newRecorder(kv, mocks.NewMockBackend())

		_, err := recorder.Pay(ctx, validCard, day, domain.MealLunch, domain.SubscriptionPrice)
		if !errors.Is(err, services.ErrActiveSubscription) {
			t.Fatalf("Pay() error = %v, want ErrActiveSubscription", err)
		}
	})
}
