package output

import (
	"fmt"
	"sort"
	"time"

	"github.com/rohankatakam/git-hours/internal/temporal"
)

// SortBy selects the report ordering
type SortBy string

const (
	SortByHours   SortBy = "hours"
	SortByCommits SortBy = "commits"
)

// ParseSortBy validates a sort key
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(s) {
	case SortByHours, SortByCommits:
		return SortBy(s), nil
	default:
		return "", fmt.Errorf("unknown sort %q (want hours or commits)", s)
	}
}

// HourEstimator reduces one author's ascending commit times
type HourEstimator interface {
	EstimateHours(times []time.Time) int
	Sessions(times []time.Time) int
}

// BuildReport estimates every author in times and orders the result ascending by
// sortBy. Authors are first ordered by key so equal values always come out the same way.
func BuildReport(times temporal.TimesByAuthor, est HourEstimator, sortBy SortBy) []AuthorReport {
	reports := make([]AuthorReport, 0, len(times))
	for author, authorTimes := range times {
		reports = append(reports, AuthorReport{
			Author:   string(author),
			Commits:  len(authorTimes),
			Hours:    est.EstimateHours(authorTimes),
			Sessions: est.Sessions(authorTimes),
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Author < reports[j].Author
	})

	switch sortBy {
	case SortByCommits:
		sort.SliceStable(reports, func(i, j int) bool {
			return reports[i].Commits < reports[j].Commits
		})
	default:
		sort.SliceStable(reports, func(i, j int) bool {
			return reports[i].Hours < reports[j].Hours
		})
	}

	return reports
}

// TotalHours sums the estimate over all authors
func TotalHours(reports []AuthorReport) int {
	total := 0
	for _, r := range reports {
		total += r.Hours
	}
	return total
}
