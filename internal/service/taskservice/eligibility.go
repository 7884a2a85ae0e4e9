package taskservice

import (
	"time"

	"github.com/taskpay-ng/taskpay/internal/domain"
)

// Calendar-day semantics are UTC-based: a check-in on day D blocks the next
// one until the UTC date changes, not until 24 hours have elapsed.

func dayStartUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameUTCDay(a, b time.Time) bool {
	return dayStartUTC(a).Equal(dayStartUTC(b))
}

// CanCheckIn is an advisory check: callers must re-verify it inside the
// locked section before mutating.
func CanCheckIn(user *domain.User, now time.Time) bool {
	if user.LastCheckIn == nil {
		return true
	}
	return dayStartUTC(now).After(dayStartUTC(*user.LastCheckIn))
}

// CanWatchAd reports whether adsToday leaves room under the daily cap.
func CanWatchAd(adsToday int) bool {
	return adsToday < MaxAdsPerDay
}
