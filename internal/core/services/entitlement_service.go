package services

import (
	"context"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
)

// EntitlementEvaluator combines the cached receipts with the server-reported
// issued list into one status per (date, meal). It is a pure read over the
// session cache: evaluating twice with an unchanged cache yields identical
// results. An issued meal never invalidates a cached paid receipt; issuance
// simply outranks it.
type EntitlementEvaluator struct {
	cache *SessionCache
}

func NewEntitlementEvaluator(cache *SessionCache) *EntitlementEvaluator {
	return &EntitlementEvaluator{cache: cache}
}

// Evaluate resolves the status of one (date, meal) pair, in precedence
// order: issued, paid (exact receipt or subscription coverage), unavailable
// (no portions left), payable.
func (e *EntitlementEvaluator) Evaluate(ctx context.Context, isoDate string, meal domain.MealType, availableQuantity int) (domain.Entitlement, error) {
	issued, err := e.issued(ctx, isoDate, meal)
	if err != nil {
		return 0, err
	}
	if issued {
		return domain.EntitlementIssued, nil
	}

	paid, err := e.paid(ctx, isoDate, meal)
	if err != nil {
		return 0, err
	}
	if paid {
		return domain.EntitlementPaid, nil
	}

	if availableQuantity == 0 {
		return domain.EntitlementUnavailable, nil
	}
	return domain.EntitlementPayable, nil
}

// EvaluateSet resolves the combined breakfast+lunch offer for a day. The set
// is payable only when both meals are simultaneously payable; it is issued
// when both are issued and paid when both are settled (paid or issued) in
// any mix. Any other combination leaves the set unavailable.
func (e *EntitlementEvaluator) EvaluateSet(ctx context.Context, day domain.DayMenu) (domain.Entitlement, error) {
	breakfast, err := e.Evaluate(ctx, day.ISO(), domain.MealBreakfast, day.Quantity(domain.MealBreakfast))
	if err != nil {
		return 0, err
	}
	lunch, err := e.Evaluate(ctx, day.ISO(), domain.MealLunch, day.Quantity(domain.MealLunch))
	if err != nil {
		return 0, err
	}

	settled := func(s domain.Entitlement) bool {
		return s == domain.EntitlementPaid || s == domain.EntitlementIssued
	}
	switch {
	case breakfast == domain.EntitlementIssued && lunch == domain.EntitlementIssued:
		return domain.EntitlementIssued, nil
	case settled(breakfast) && settled(lunch):
		return domain.EntitlementPaid, nil
	case breakfast == domain.EntitlementPayable && lunch == domain.EntitlementPayable:
		return domain.EntitlementPayable, nil
	default:
		return domain.EntitlementUnavailable, nil
	}
}

// HasExactReceipt reports whether a single-meal receipt for the pair is
// cached. This is the pre-payment duplicate check; subscription coverage
// deliberately does not count here, the backend rejects those itself.
func (e *EntitlementEvaluator) HasExactReceipt(ctx context.Context, isoDate string, meal domain.MealType) (bool, error) {
	payments, err := e.cache.MealPayments(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range payments {
		if p.Date == isoDate && p.MealType == meal {
			return true, nil
		}
	}
	return false, nil
}

func (e *EntitlementEvaluator) paid(ctx context.Context, isoDate string, meal domain.MealType) (bool, error) {
	exact, err := e.HasExactReceipt(ctx, isoDate, meal)
	if err != nil || exact {
		return exact, err
	}
	subs, err := e.cache.Subscriptions(ctx)
	if err != nil {
		return false, err
	}
	for _, s := range subs {
		if s.Covers(isoDate) {
			return true, nil
		}
	}
	return false, nil
}

func (e *EntitlementEvaluator) issued(ctx context.Context, isoDate string, meal domain.MealType) (bool, error) {
	issued, err := e.cache.IssuedMeals(ctx)
	if err != nil {
		return false, err
	}
	for _, m := range issued {
		if m.Date == isoDate && m.MealType == meal {
			return true, nil
		}
	}
	return false, nil
}
