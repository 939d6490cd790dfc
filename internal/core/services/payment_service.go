package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
	"github.com/novaschool/stolovaya/cafeteria-client/pkg/logger"
)

// SuccessDisplayWindow is how long the success panel stays up after a
// completed payment before control returns to the caller.
const SuccessDisplayWindow = 4 * time.Second

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)

// CardDetails is the simulated payment form. The client only validates the
// shape; no card data ever reaches the backend.
type CardDetails struct {
	Number string
	Expiry string
	CVC    string
}

// Validate checks the form fields: 16 card digits after stripping
// separators, MM/YY expiry with a real month, 3-digit CVC.
func (c CardDetails) Validate() error {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, c.Number)
	if len(digits) != 16 {
		return ErrInvalidCardNumber
	}
	if !expiryPattern.MatchString(c.Expiry) {
		return ErrInvalidExpiry
	}
	if len(c.CVC) != 3 || strings.Trim(c.CVC, "0123456789") != "" {
		return ErrInvalidCVC
	}
	return nil
}

// PaymentResult reports what a successful submission recorded.
type PaymentResult struct {
	Amount       float64
	Subscription bool
}

// PaymentRecorder validates the payment form, dispatches the right backend
// call and appends the receipt to the session cache. Each submission carries
// a fresh idempotency key so a retry after a timeout cannot double-charge.
type PaymentRecorder struct {
	cache       *SessionCache
	backend     ports.Backend
	entitlement *EntitlementEvaluator
	log         *logger.Logger
}

func NewPaymentRecorder(cache *SessionCache, backend ports.Backend, entitlement *EntitlementEvaluator, log *logger.Logger) *PaymentRecorder {
	return &PaymentRecorder{cache: cache, backend: backend, entitlement: entitlement, log: log}
}

// Pay submits a payment for the given day. An amount equal to the fixed
// subscription price buys a subscription starting that day; anything else
// pays for the single meal. On backend success the matching receipt is
// appended atomically; on failure the cache is untouched and the caller may
// retry. The already-paid check runs before any network call.
func (p *PaymentRecorder) Pay(ctx context.Context, card CardDetails, day time.Time, meal domain.MealType, amount float64) (*PaymentResult, error) {
	if err := card.Validate(); err != nil {
		return nil, err
	}

	isoDate := day.Format(domain.ISODate)
	if amount == domain.SubscriptionPrice {
		return p.buySubscription(ctx, day, isoDate)
	}
	return p.payMeal(ctx, isoDate, meal, amount)
}

func (p *PaymentRecorder) payMeal(ctx context.Context, isoDate string, meal domain.MealType, amount float64) (*PaymentResult, error) {
	paid, err := p.entitlement.HasExactReceipt(ctx, isoDate, meal)
	if err != nil {
		return nil, err
	}
	if paid {
		return nil, ErrAlreadyPaid
	}

	key := uuid.NewString()
	if err := p.backend.PayMeal(ctx, isoDate, meal, key); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	receipt := domain.PaymentReceipt{Date: isoDate, MealType: meal, Amount: amount}
	if err := p.cache.AppendMealPayment(ctx, receipt); err != nil {
		// The backend accepted the payment; a lost receipt only degrades the
		// local view, it does not undo the charge.
		p.log.Warnw("paid but failed to cache receipt", "date", isoDate, "meal", meal, "error", err)
	}
	p.log.Infow("meal paid", "date", isoDate, "meal", meal, "amount", amount, "idempotency_key", key)
	return &PaymentResult{Amount: amount}, nil
}

func (p *PaymentRecorder) buySubscription(ctx context.Context, day time.Time, isoDate string) (*PaymentResult, error) {
	subs, err := p.cache.Subscriptions(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range subs {
		if s.Covers(isoDate) {
			return nil, ErrActiveSubscription
		}
	}

	key := uuid.NewString()
	if err := p.backend.BuySubscription(ctx, isoDate, key); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	receipt := domain.NewSubscriptionReceipt(day)
	if err := p.cache.AppendSubscription(ctx, receipt); err != nil {
		p.log.Warnw("subscription bought but failed to cache receipt", "start", isoDate, "error", err)
	}
	p.log.Infow("subscription bought", "start", receipt.StartDate, "end", receipt.EndDate, "idempotency_key", key)
	return &PaymentResult{Amount: domain.SubscriptionPrice, Subscription: true}, nil
}
