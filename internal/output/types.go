package output

// AuthorReport is one line of the report
type AuthorReport struct {
	Author   string `json:"author" yaml:"author"`
	Commits  int    `json:"commits" yaml:"commits"`
	Hours    int    `json:"hours" yaml:"hours"`
	Sessions int    `json:"sessions" yaml:"sessions"`
}
