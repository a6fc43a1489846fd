package output

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/git-hours/internal/temporal"
)

var base = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

func minutes(ms ...int) []time.Time {
	times := make([]time.Time, len(ms))
	for i, m := range ms {
		times[i] = base.Add(time.Duration(m) * time.Minute)
	}
	return times
}

func TestBuildReport_SortsByHours(t *testing.T) {
	times := temporal.TimesByAuthor{
		"alice@example.com": minutes(0, 30, 500), // 13 hours
		"bob@example.com":   minutes(0),          // 0 hours
		"carol@example.com": minutes(0, 60, 120), // 12 hours
	}

	reports := BuildReport(times, temporal.NewEstimator(temporal.DefaultSessionConfig()), SortByHours)

	assert.Equal(t, []AuthorReport{
		{Author: "bob@example.com", Commits: 1, Hours: 0, Sessions: 1},
		{Author: "carol@example.com", Commits: 3, Hours: 12, Sessions: 1},
		{Author: "alice@example.com", Commits: 3, Hours: 13, Sessions: 2},
	}, reports)
	assert.Equal(t, 25, TotalHours(reports))
}

func TestBuildReport_TiesOrderedByAuthor(t *testing.T) {
	times := temporal.TimesByAuthor{
		"zed@example.com":   minutes(0, 60),
		"amy@example.com":   minutes(0, 60),
		"mia@example.com":   minutes(0, 60),
		"early@example.com": minutes(0),
	}
	est := temporal.NewEstimator(temporal.DefaultSessionConfig())

	for i := 0; i < 10; i++ {
		reports := BuildReport(times, est, SortByHours)
		require.Len(t, reports, 4)
		assert.Equal(t, "early@example.com", reports[0].Author)
		assert.Equal(t, "amy@example.com", reports[1].Author)
		assert.Equal(t, "mia@example.com", reports[2].Author)
		assert.Equal(t, "zed@example.com", reports[3].Author)
	}
}

func TestBuildReport_SortsByCommits(t *testing.T) {
	times := temporal.TimesByAuthor{
		"alice@example.com": minutes(0, 30, 500),
		"bob@example.com":   minutes(0, 10),
	}

	reports := BuildReport(times, temporal.NewEstimator(temporal.DefaultSessionConfig()), SortByCommits)
	require.Len(t, reports, 2)
	assert.Equal(t, "bob@example.com", reports[0].Author)
	assert.Equal(t, "alice@example.com", reports[1].Author)
}

func TestBuildReport_Empty(t *testing.T) {
	reports := BuildReport(temporal.TimesByAuthor{}, temporal.NewEstimator(temporal.DefaultSessionConfig()), SortByHours)
	assert.NotNil(t, reports)
	assert.Empty(t, reports)
}

func TestParseSortBy(t *testing.T) {
	got, err := ParseSortBy("commits")
	require.NoError(t, err)
	assert.Equal(t, SortByCommits, got)

	_, err = ParseSortBy("name")
	assert.Error(t, err)
}
