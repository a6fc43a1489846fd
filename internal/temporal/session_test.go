package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(offsets ...int) []time.Time {
	times := make([]time.Time, len(offsets))
	for i, m := range offsets {
		times[i] = baseTime.Add(time.Duration(m) * time.Minute)
	}
	return times
}

func TestEstimateHours(t *testing.T) {
	tests := []struct {
		name     string
		cfg      SessionConfig
		times    []time.Time
		expected int
	}{
		{
			name:     "no commits",
			cfg:      DefaultSessionConfig(),
			times:    nil,
			expected: 0,
		},
		{
			name:     "single commit",
			cfg:      DefaultSessionConfig(),
			times:    at(0),
			expected: 0,
		},
		{
			name:     "short gap then new session",
			cfg:      DefaultSessionConfig(),
			times:    at(0, 30, 500),
			expected: 13, // 10 + 0.5 + 2 = 12.5
		},
		{
			name:     "one continuous session",
			cfg:      DefaultSessionConfig(),
			times:    at(0, 60, 120),
			expected: 12, // 10 + 1 + 1
		},
		{
			name:     "identical timestamps stay in the same session",
			cfg:      DefaultSessionConfig(),
			times:    at(0, 0, 0),
			expected: 10,
		},
		{
			name:     "gap equal to the threshold opens a new session",
			cfg:      SessionConfig{MaxCommitDiff: 60 * time.Minute, FirstCommitAdd: 0},
			times:    at(0, 60),
			expected: 10,
		},
		{
			name:     "gap just under the threshold is added as worked time",
			cfg:      SessionConfig{MaxCommitDiff: 60 * time.Minute, FirstCommitAdd: 0},
			times:    at(0, 59),
			expected: 11, // 10 + 0.983
		},
		{
			name:     "custom thresholds",
			cfg:      SessionConfig{MaxCommitDiff: 30 * time.Minute, FirstCommitAdd: 45 * time.Minute},
			times:    at(0, 20, 80, 95),
			expected: 11, // 10 + 0.333 + 0.75 + 0.25
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewEstimator(tt.cfg).EstimateHours(tt.times)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEstimateHours_IgnoresSubSecondPrecision(t *testing.T) {
	times := []time.Time{
		baseTime.Add(900 * time.Millisecond),
		baseTime.Add(30*time.Minute + 100*time.Millisecond),
	}

	// 30 minutes exactly once the fractional seconds are dropped
	assert.Equal(t, 11, NewEstimator(DefaultSessionConfig()).EstimateHours(times))
}

func TestEstimateHours_FirstCommitAddIsMonotonic(t *testing.T) {
	times := at(0, 30, 500, 520, 1500)

	previous := -1
	for add := 0; add <= 600; add += 15 {
		cfg := SessionConfig{MaxCommitDiff: 120 * time.Minute, FirstCommitAdd: time.Duration(add) * time.Minute}
		got := NewEstimator(cfg).EstimateHours(times)
		assert.GreaterOrEqual(t, got, previous, "first_commit_add=%d", add)
		previous = got
	}
}

func TestSessions(t *testing.T) {
	e := NewEstimator(DefaultSessionConfig())

	assert.Equal(t, 0, e.Sessions(nil))
	assert.Equal(t, 1, e.Sessions(at(0)))
	assert.Equal(t, 1, e.Sessions(at(0, 60, 150)))
	assert.Equal(t, 2, e.Sessions(at(0, 30, 500)))
	assert.Equal(t, 3, e.Sessions(at(0, 120, 240)))
}
