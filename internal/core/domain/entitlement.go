package domain

import "fmt"

// Entitlement is the computed status of a (date, meal) pair. Precedence,
// strongest first: Issued, Paid, Unavailable, Payable.
type Entitlement int

const (
	// EntitlementPayable means the meal can still be paid for.
	EntitlementPayable Entitlement = iota
	// EntitlementUnavailable means no portions remain (or the slot is
	// unpublished), and no payment was recorded.
	EntitlementUnavailable
	// EntitlementPaid means a cached receipt or subscription covers the pair.
	EntitlementPaid
	// EntitlementIssued means the server reported the meal as handed out.
	EntitlementIssued
)

func (e Entitlement) String() string {
	switch e {
	case EntitlementPayable:
		return "payable"
	case EntitlementUnavailable:
		return "unavailable"
	case EntitlementPaid:
		return "paid"
	case EntitlementIssued:
		return "issued"
	}
	return fmt.Sprintf("entitlement(%d)", int(e))
}

// Actionable reports whether the pay action is enabled for this status.
func (e Entitlement) Actionable() bool {
	return e == EntitlementPayable
}

// Label is the pay-button text for a meal in this state.
func (e Entitlement) Label(meal MealType) string {
	switch e {
	case EntitlementIssued:
		return "Issued"
	case EntitlementPaid:
		return "Paid"
	case EntitlementUnavailable:
		return "Unavailable"
	}
	switch meal {
	case MealBreakfast:
		return "Pay breakfast"
	case MealLunch:
		return "Pay lunch"
	case MealCombined:
		return "Pay set meal"
	}
	return "Pay"
}
