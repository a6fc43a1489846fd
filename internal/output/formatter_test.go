package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []AuthorReport{
	{Author: "bob@example.com", Commits: 1, Hours: 0, Sessions: 1},
	{Author: "alice@example.com", Commits: 3, Hours: 13, Sessions: 2},
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		reports []AuthorReport
		want    string
	}{
		{
			name:    "text",
			format:  FormatText,
			reports: sample,
			want:    "bob@example.com: 1 commits, 0 hours\nalice@example.com: 3 commits, 13 hours\n",
		},
		{
			name:    "text empty",
			format:  FormatText,
			reports: nil,
			want:    "",
		},
		{
			name:    "json",
			format:  FormatJSON,
			reports: sample[:1],
			want: `[
  {
    "author": "bob@example.com",
    "commits": 1,
    "hours": 0,
    "sessions": 1
  }
]
`,
		},
		{
			name:    "json empty",
			format:  FormatJSON,
			reports: nil,
			want:    "[]\n",
		},
		{
			name:    "yaml",
			format:  FormatYAML,
			reports: sample[1:],
			want:    "- author: alice@example.com\n  commits: 3\n  hours: 13\n  sessions: 2\n",
		},
		{
			name:    "yaml empty",
			format:  FormatYAML,
			reports: nil,
			want:    "[]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewFormatter(tt.format).Format(tt.reports, &buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"text", "json", "yaml"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewFormatter_FallsBackToText(t *testing.T) {
	assert.IsType(t, &TextFormatter{}, NewFormatter(Format("")))
}
