package services

import "errors"

// Failure taxonomy. Authentication failures redirect to login with no
// further detail; validation and business-rule failures surface before any
// network call; everything else is recovered at the screen level.
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrRoleMismatch    = errors.New("selected role does not match account role")

	ErrInvalidCardNumber = errors.New("card number must be 16 digits")
	ErrInvalidExpiry     = errors.New("expiry must be MM/YY")
	ErrInvalidCVC        = errors.New("CVC must be 3 digits")

	ErrAlreadyPaid        = errors.New("this meal is already paid")
	ErrActiveSubscription = errors.New("an active subscription already covers this date")

	ErrEmptyComment  = errors.New("review comment must not be empty")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)
