package domain

import "time"

// SubscriptionPrice is the fixed price of a 30-day subscription. A payment
// for exactly this amount is recorded as a subscription purchase, anything
// else as a single meal payment.
const SubscriptionPrice = 6000.00

// SubscriptionDays is the client-side derivation of the subscription length.
// The backend applies the same rule; there is no shared source of truth, so
// the cached end date can drift if the backend rule ever changes.
const SubscriptionDays = 30

// PaymentReceipt is a locally cached record of one paid (date, meal) pair.
// Receipts are append-only; nothing ever mutates or removes them.
type PaymentReceipt struct {
	Date     string   `json:"date"`
	MealType MealType `json:"meal_type"`
	Amount   float64  `json:"amount"`
}

// SubscriptionReceipt caches one purchased subscription interval, both ends
// inclusive.
type SubscriptionReceipt struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Covers reports whether the ISO date falls inside the interval. ISO dates
// order lexicographically, so plain string comparison is exact.
func (s SubscriptionReceipt) Covers(isoDate string) bool {
	return s.StartDate <= isoDate && isoDate <= s.EndDate
}

// NewSubscriptionReceipt derives the receipt for a subscription starting on
// the given date.
func NewSubscriptionReceipt(start time.Time) SubscriptionReceipt {
	return SubscriptionReceipt{
		StartDate: start.Format(ISODate),
		EndDate:   start.AddDate(0, 0, SubscriptionDays).Format(ISODate),
	}
}

// IssuedMeal caches the server-reported fact that a paid meal was handed out.
type IssuedMeal struct {
	Date     string   `json:"date"`
	MealType MealType `json:"meal_type"`
}
