package taskservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/taskpay-ng/taskpay/internal/domain"
)

func TestCanCheckIn(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		lastCheckIn *time.Time
		expected    bool
	}{
		{
			name:        "Never checked in",
			lastCheckIn: nil,
			expected:    true,
		},
		{
			name:        "Checked in yesterday",
			lastCheckIn: timePtr(now.AddDate(0, 0, -1)),
			expected:    true,
		},
		{
			name:        "Checked in earlier today",
			lastCheckIn: timePtr(now.Add(-6 * time.Hour)),
			expected:    false,
		},
		{
			name: "More than 24h elapsed but same UTC day",
			// 23:30 the previous day vs 00:15 today: under 24h elapsed,
			// yet the calendar day changed.
			lastCheckIn: timePtr(time.Date(2025, 6, 14, 23, 30, 0, 0, time.UTC)),
			expected:    true,
		},
		{
			name:        "Checked in just before midnight today",
			lastCheckIn: timePtr(time.Date(2025, 6, 15, 0, 0, 1, 0, time.UTC)),
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &domain.User{ID: 1, LastCheckIn: tt.lastCheckIn}
			assert.Equal(t, tt.expected, CanCheckIn(user, now))
		})
	}
}

func TestCanCheckInDayBoundary(t *testing.T) {
	checkedIn := time.Date(2025, 6, 14, 23, 59, 59, 0, time.UTC)
	user := &domain.User{ID: 1, LastCheckIn: &checkedIn}

	assert.False(t, CanCheckIn(user, time.Date(2025, 6, 14, 23, 59, 59, int(time.Second)-1, time.UTC)))
	assert.True(t, CanCheckIn(user, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
}

func TestCanWatchAd(t *testing.T) {
	assert.True(t, CanWatchAd(0))
	assert.True(t, CanWatchAd(4))
	assert.False(t, CanWatchAd(5))
	assert.False(t, CanWatchAd(6))
}

func TestDayStartUTC(t *testing.T) {
	// A local-zone timestamp maps onto its UTC date.
	loc := time.FixedZone("WAT", 60*60)
	local := time.Date(2025, 6, 15, 0, 30, 0, 0, loc) // 23:30 June 14 UTC
	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), dayStartUTC(local))
}

func timePtr(t time.Time) *time.Time {
	return &t
}
