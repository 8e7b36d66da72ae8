package service

import (
	"time"

	"minka/shared/failure"
)

const hoursPerNight = 24

// CalculateAmount prices a stay as nights times the nightly rate. The
// checkout date must fall strictly after the checkin date, so same-day
// stays are rejected rather than priced at zero.
func CalculateAmount(checkin, checkout time.Time, nightlyPrice int) (int, error) {
	if !checkout.After(checkin) {
		return 0, failure.Validation(failure.FieldError{
			Field:   "checkout_date",
			Message: "checkout date must be after checkin date",
		})
	}

	return CountNights(checkin, checkout) * nightlyPrice, nil
}

// CountNights counts whole nights between checkin and checkout.
func CountNights(checkin, checkout time.Time) int {
	return int(checkout.Sub(checkin).Hours() / hoursPerNight)
}

// IsWithinCapacity reports whether the party fits in the house.
func IsWithinCapacity(numberOfPeople, capacity int) bool {
	return numberOfPeople <= capacity
}
