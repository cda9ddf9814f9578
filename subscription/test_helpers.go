package subscription

import "github.com/stretchr/testify/mock"

// MatchSubscription returns a mock matcher for a Subscription predicate.
func MatchSubscription(fn func(sub Subscription) bool) any {
	return mock.MatchedBy(fn)
}
