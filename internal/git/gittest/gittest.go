// Package gittest builds small commit graphs for tests without a git binary.
package gittest

import (
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

// EmptyTree is the id of the empty tree object
var EmptyTree = plumbing.NewHash("4b825dc642cb6eb9a060e54bf8d69288fbee4904")

// Builder writes commits and branches straight into a repository's object store
type Builder struct {
	t    testing.TB
	Repo *gogit.Repository
	Dir  string // empty for in-memory repositories
}

// NewMemory creates an empty in-memory repository
func NewMemory(t testing.TB) *Builder {
	t.Helper()
	repo, err := gogit.Init(memory.NewStorage(), nil)
	require.NoError(t, err)
	return &Builder{t: t, Repo: repo}
}

// NewOnDisk creates an empty non-bare repository in a temporary directory
func NewOnDisk(t testing.TB) *Builder {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return &Builder{t: t, Repo: repo, Dir: dir}
}

// Commit stores a commit authored by email at when and returns its id
func (b *Builder) Commit(email string, when time.Time, parents ...plumbing.Hash) plumbing.Hash {
	b.t.Helper()
	sig := object.Signature{
		Name:  strings.Split(email, "@")[0],
		Email: email,
		When:  when,
	}
	c := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      "change\n",
		TreeHash:     EmptyTree,
		ParentHashes: parents,
	}

	obj := b.Repo.Storer.NewEncodedObject()
	require.NoError(b.t, c.Encode(obj))
	hash, err := b.Repo.Storer.SetEncodedObject(obj)
	require.NoError(b.t, err)
	return hash
}

// RawCommit stores a commit object with the given body verbatim. Use it for objects
// go-git would never produce, such as a commit without an author line.
func (b *Builder) RawCommit(body string) plumbing.Hash {
	b.t.Helper()
	obj := b.Repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.CommitObject)
	w, err := obj.Writer()
	require.NoError(b.t, err)
	_, err = w.Write([]byte(body))
	require.NoError(b.t, err)
	require.NoError(b.t, w.Close())

	hash, err := b.Repo.Storer.SetEncodedObject(obj)
	require.NoError(b.t, err)
	return hash
}

// Branch points refs/heads/<name> at hash
func (b *Builder) Branch(name string, hash plumbing.Hash) {
	b.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), hash)
	require.NoError(b.t, b.Repo.Storer.SetReference(ref))
}

// Tag points refs/tags/<name> at hash
func (b *Builder) Tag(name string, hash plumbing.Hash) {
	b.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewTagReferenceName(name), hash)
	require.NoError(b.t, b.Repo.Storer.SetReference(ref))
}

// MarkShallow records hashes as shallow boundaries, as a depth-limited clone would
func (b *Builder) MarkShallow(hashes ...plumbing.Hash) {
	b.t.Helper()
	require.NoError(b.t, b.Repo.Storer.SetShallow(hashes))
}
