package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour, min int) time.Time {
	return time.Date(2025, 1, 15, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name      string
		aStart    time.Time
		aEnd      time.Time
		bStart    time.Time
		bEnd      time.Time
		inclusive bool
		want      bool
	}{
		{"disjoint", ts(9, 0), ts(11, 0), ts(12, 0), ts(14, 0), true, false},
		{"proper overlap", ts(9, 0), ts(12, 0), ts(11, 0), ts(14, 0), true, true},
		{"contained", ts(9, 0), ts(18, 0), ts(10, 0), ts(12, 0), true, true},
		{"touching inclusive", ts(9, 0), ts(12, 0), ts(12, 0), ts(14, 0), true, true},
		{"touching exclusive", ts(9, 0), ts(12, 0), ts(12, 0), ts(14, 0), false, false},
		{"proper overlap exclusive", ts(9, 0), ts(12, 0), ts(11, 0), ts(14, 0), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, tt.inclusive))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd, tt.inclusive), "overlap must be symmetric")
		})
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains(ts(9, 0), ts(18, 0), ts(10, 0), ts(14, 0)))
	assert.True(t, Contains(ts(9, 0), ts(18, 0), ts(9, 0), ts(18, 0)))
	assert.False(t, Contains(ts(10, 0), ts(14, 0), ts(9, 0), ts(14, 0)))
	assert.False(t, Contains(ts(10, 0), ts(14, 0), ts(10, 0), ts(15, 0)))
}

func TestNightHours(t *testing.T) {
	// 21:30-22:30 crosses into the night window at 22:00.
	got := NightHours(ts(21, 30), ts(22, 30))
	assert.InDelta(t, 0.5, got, 0.001)

	// Entirely inside the window.
	got = NightHours(ts(22, 0), ts(23, 0))
	assert.InDelta(t, 1.0, got, 0.001)

	// Daytime shift has no night hours.
	got = NightHours(ts(9, 0), ts(17, 0))
	assert.Zero(t, got)

	// Crossing midnight: 23:00 to 01:00 next day.
	out := time.Date(2025, 1, 16, 1, 0, 0, 0, time.UTC)
	got = NightHours(ts(23, 0), out)
	assert.InDelta(t, 2.0, got, 0.001)

	// Early morning tail: 05:00-07:00 yields one night hour.
	got = NightHours(ts(5, 0), ts(7, 0))
	assert.InDelta(t, 1.0, got, 0.001)
}

func TestRestMinutes(t *testing.T) {
	assert.Equal(t, 0, RestMinutes(3*time.Hour+59*time.Minute))
	assert.Equal(t, 30, RestMinutes(4*time.Hour))
	assert.Equal(t, 30, RestMinutes(7*time.Hour+59*time.Minute))
	assert.Equal(t, 60, RestMinutes(8*time.Hour))
	assert.Equal(t, 60, RestMinutes(12*time.Hour))
}
