package temporal

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
)

// BranchSelector picks the branch heads a traversal starts from.
//
// An empty Branch selects every reference under refs/heads/. A plain name selects exactly
// refs/heads/<name>. A name containing glob metacharacters is matched against full
// reference paths, so "release/*" selects refs/heads/release/1.0 but not refs/heads/main.
type BranchSelector struct {
	Branch string
}

// IsPattern reports whether the branch is a glob pattern rather than a literal name
func (s BranchSelector) IsPattern() bool {
	return strings.ContainsAny(s.Branch, "*?[{")
}

// Prefix is the reference prefix handed to the commit source
func (s BranchSelector) Prefix() string {
	if s.Branch == "" || s.IsPattern() {
		return BranchNamespace
	}
	return BranchNamespace + s.Branch
}

// Match reports whether a reference returned for Prefix belongs to the start set
func (s BranchSelector) Match(refName string) bool {
	switch {
	case s.Branch == "":
		return strings.HasPrefix(refName, BranchNamespace)
	case s.IsPattern():
		ok, err := doublestar.Match(BranchNamespace+s.Branch, refName)
		return err == nil && ok
	default:
		return refName == BranchNamespace+s.Branch
	}
}

// CollectOptions controls which commits are attributed
type CollectOptions struct {
	// Branch restricts the start set; see BranchSelector.
	Branch string
	// MergeCommits attributes merge commits themselves. Their ancestry is walked either way.
	MergeCommits bool
	// Identity maps authors to keys. Nil means EmailIdentity.
	Identity IdentityResolver
}

// Collection is the outcome of one traversal
type Collection struct {
	Times TimesByAuthor
	Heads []Head

	Attributed    int // commits whose time was recorded
	SkippedMerges int // merge commits walked but not attributed
	Unresolved    int // ids whose object could not be read
	MissingAuthor int // commits without a readable author or time

	visited map[CommitID]struct{}
}

// Visited returns how many distinct commit ids were expanded
func (c *Collection) Visited() int {
	return len(c.visited)
}

// Collector walks the commit graph reachable from a set of branch heads
type Collector struct {
	source   CommitSource
	opts     CollectOptions
	identity IdentityResolver
	logger   logrus.FieldLogger
}

// NewCollector creates a collector over source. A nil logger discards output.
func NewCollector(source CommitSource, opts CollectOptions, logger logrus.FieldLogger) *Collector {
	identity := opts.Identity
	if identity == nil {
		identity = EmailIdentity{}
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	return &Collector{
		source:   source,
		opts:     opts,
		identity: identity,
		logger:   logger,
	}
}

// Collect walks every commit reachable from the selected heads exactly once and groups
// the authored times of qualifying commits by author. Each author's times are sorted
// ascending. Failing to list references is the only error; unreadable commits are skipped.
func (c *Collector) Collect() (*Collection, error) {
	selector := BranchSelector{Branch: c.opts.Branch}

	heads, err := c.source.HeadsWithPrefix(selector.Prefix())
	if err != nil {
		return nil, fmt.Errorf("listing branch heads: %w", err)
	}

	col := &Collection{
		Times:   make(TimesByAuthor),
		visited: make(map[CommitID]struct{}),
	}

	for _, head := range heads {
		if !selector.Match(head.Name) {
			continue
		}
		col.Heads = append(col.Heads, head)
		c.walk(head.Target, col)
	}

	if len(col.Heads) == 0 {
		c.logger.WithField("prefix", selector.Prefix()).Debug("no branch matched")
	}

	for _, times := range col.Times {
		sort.SliceStable(times, func(i, j int) bool {
			return times[i].Unix() < times[j].Unix()
		})
	}

	c.logger.WithFields(logrus.Fields{
		"heads":          len(col.Heads),
		"visited":        col.Visited(),
		"attributed":     col.Attributed,
		"skipped_merges": col.SkippedMerges,
		"unresolved":     col.Unresolved,
		"authors":        len(col.Times),
	}).Debug("commit graph walked")

	return col, nil
}

// walk runs an explicit-stack depth-first search from tip. An id already in the visited
// set is dropped without re-pushing its parents; they were pushed on the first visit.
func (c *Collector) walk(tip CommitID, col *Collection) {
	stack := []CommitID{tip}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := col.visited[id]; seen {
			continue
		}
		col.visited[id] = struct{}{}

		commit, err := c.source.Commit(id)
		if err != nil {
			col.Unresolved++
			c.logger.WithError(err).WithField("commit", id.String()).Debug("skipping unreadable commit")
			continue
		}

		// Parents go on the stack even when this commit is not attributed.
		stack = append(stack, commit.Parents...)

		if commit.Author == nil {
			col.MissingAuthor++
			continue
		}
		if commit.IsMerge() && !c.opts.MergeCommits {
			col.SkippedMerges++
			continue
		}

		key := c.identity.Resolve(*commit.Author)
		col.Times[key] = append(col.Times[key], commit.Author.When)
		col.Attributed++
	}
}
