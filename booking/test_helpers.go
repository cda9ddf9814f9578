package booking

import "github.com/stretchr/testify/mock"

// MatchBooking creates a custom matcher for booking arguments in mocks.
func MatchBooking(matcher func(Booking) bool) interface{} {
	return mock.MatchedBy(matcher)
}
