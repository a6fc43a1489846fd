package temporal

import (
	"encoding/hex"
	"time"
)

// BranchNamespace is the reference namespace every traversal starts from.
const BranchNamespace = "refs/heads/"

// CommitID is the raw object id of a commit.
type CommitID [20]byte

// String returns the hex form of the id
func (id CommitID) String() string {
	return hex.EncodeToString(id[:])
}

// Signature is the author line of a commit. Only When.Unix() is used for arithmetic.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Commit is a read-only view of a commit object
type Commit struct {
	ID      CommitID
	Parents []CommitID
	// Author is nil when the object's author or timestamp could not be read.
	Author *Signature
}

// IsMerge reports whether the commit has more than one parent
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// Head is a branch reference resolved to the commit it points at
type Head struct {
	Name   string // full reference path, e.g. refs/heads/main
	Target CommitID
}

// AuthorKey groups commits for attribution
type AuthorKey string

// TimesByAuthor maps an author to the authored times of their qualifying commits
type TimesByAuthor map[AuthorKey][]time.Time

// CommitSource is the read-only repository view the collector walks.
type CommitSource interface {
	// HeadsWithPrefix lists references whose full name starts with prefix.
	// References that fail to resolve are left out.
	HeadsWithPrefix(prefix string) ([]Head, error)
	// Commit looks up a commit object by id.
	Commit(id CommitID) (*Commit, error)
}
