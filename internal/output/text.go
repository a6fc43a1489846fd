package output

import (
	"fmt"
	"io"
)

// TextFormatter writes "{author}: {commits} commits, {hours} hours" per author
type TextFormatter struct{}

func (f *TextFormatter) Format(reports []AuthorReport, w io.Writer) error {
	for _, r := range reports {
		if _, err := fmt.Fprintf(w, "%s: %d commits, %d hours\n", r.Author, r.Commits, r.Hours); err != nil {
			return err
		}
	}
	return nil
}
