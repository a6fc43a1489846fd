package temporal

import (
	"math"
	"time"
)

// BaseHours is the flat overhead every author with at least two commits starts from.
const BaseHours = 10.0

// SessionConfig holds the coding-session thresholds
type SessionConfig struct {
	// MaxCommitDiff is the largest gap between two commits that still counts as one session.
	MaxCommitDiff time.Duration
	// FirstCommitAdd is credited for the first commit of every session after the first.
	FirstCommitAdd time.Duration
}

// DefaultSessionConfig returns the two-hour session thresholds
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxCommitDiff:  120 * time.Minute,
		FirstCommitAdd: 120 * time.Minute,
	}
}

// Estimator turns an author's commit times into an hour count
type Estimator struct {
	cfg SessionConfig
}

// NewEstimator creates an estimator for cfg
func NewEstimator(cfg SessionConfig) *Estimator {
	return &Estimator{cfg: cfg}
}

// Config returns the thresholds the estimator was built with
func (e *Estimator) Config() SessionConfig {
	return e.cfg
}

// EstimateHours estimates hours worked from ascending commit times.
//
// Fewer than two commits estimate to zero. Otherwise the total starts at BaseHours; a gap
// shorter than MaxCommitDiff adds the gap itself, any longer gap opens a new session and
// adds FirstCommitAdd instead. The total is rounded to the nearest hour.
func (e *Estimator) EstimateHours(times []time.Time) int {
	if len(times) < 2 {
		return 0
	}

	maxDiff := e.cfg.MaxCommitDiff.Minutes()
	sessionStart := e.cfg.FirstCommitAdd.Minutes() / 60

	hours := BaseHours
	for i := 1; i < len(times); i++ {
		diffMinutes := float64(times[i].Unix()-times[i-1].Unix()) / 60

		if diffMinutes < maxDiff {
			hours += diffMinutes / 60
		} else {
			hours += sessionStart
		}
	}

	return int(math.Round(hours))
}

// Sessions counts the coding sessions in ascending commit times
func (e *Estimator) Sessions(times []time.Time) int {
	if len(times) == 0 {
		return 0
	}

	maxDiff := e.cfg.MaxCommitDiff.Minutes()
	sessions := 1
	for i := 1; i < len(times); i++ {
		if float64(times[i].Unix()-times[i-1].Unix())/60 >= maxDiff {
			sessions++
		}
	}
	return sessions
}
