package git

import (
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/rohankatakam/git-hours/internal/errors"
	"github.com/rohankatakam/git-hours/internal/temporal"
)

// Repository is a read-only view of a local git repository backed by go-git.
// It implements temporal.CommitSource.
type Repository struct {
	repo *gogit.Repository
	path string
}

var _ temporal.CommitSource = (*Repository)(nil)

// shallowFile lists the commits whose parents a depth-limited clone never fetched
const shallowFile = "shallow"

// Open opens the repository containing path. The .git directory is searched for
// upwards from path, so any directory inside a working tree works.
func Open(path string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.RepositoryErrorf(err, "failed to open git repository at %s", path).
			WithContext("path", path)
	}
	return Wrap(repo, path), nil
}

// Wrap exposes an already opened go-git repository, e.g. one backed by memory storage.
func Wrap(repo *gogit.Repository, path string) *Repository {
	return &Repository{repo: repo, path: path}
}

// Path returns the path the repository was opened from
func (r *Repository) Path() string {
	return r.path
}

// IsShallow reports whether the repository has truncated history. The presence of a
// shallow file is enough, even an empty one; storages without a filesystem are asked
// for their shallow commits instead.
func (r *Repository) IsShallow() (bool, error) {
	if fs, ok := r.repo.Storer.(interface{ Filesystem() billy.Filesystem }); ok {
		_, err := fs.Filesystem().Stat(shallowFile)
		if err == nil {
			return true, nil
		}
		if !os.IsNotExist(err) {
			return false, errors.RepositoryError(err, "failed to read shallow state")
		}
	}

	hashes, err := r.repo.Storer.Shallow()
	if err != nil {
		return false, errors.RepositoryError(err, "failed to read shallow state")
	}
	return len(hashes) > 0, nil
}

// HeadBranch returns the branch HEAD points at, or "" when HEAD is detached.
func (r *Repository) HeadBranch() (string, error) {
	ref, err := r.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", errors.RepositoryError(err, "failed to read HEAD")
	}
	if ref.Type() != plumbing.SymbolicReference {
		return "", nil
	}
	return ref.Target().Short(), nil
}

// HeadsWithPrefix lists every reference whose full name starts with prefix, resolved to
// the commit it points at and sorted by name. Symbolic references that cannot be
// resolved are left out.
func (r *Repository) HeadsWithPrefix(prefix string) ([]temporal.Head, error) {
	iter, err := r.repo.References()
	if err != nil {
		return nil, errors.RepositoryError(err, "failed to list references")
	}
	defer iter.Close()

	var heads []temporal.Head
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}

		hash, ok := r.resolve(ref)
		if !ok {
			return nil
		}

		heads = append(heads, temporal.Head{Name: name, Target: temporal.CommitID(hash)})
		return nil
	})
	if err != nil {
		return nil, errors.RepositoryError(err, "failed to list references")
	}

	sort.Slice(heads, func(i, j int) bool {
		return heads[i].Name < heads[j].Name
	})

	return heads, nil
}

func (r *Repository) resolve(ref *plumbing.Reference) (plumbing.Hash, bool) {
	if ref.Type() == plumbing.HashReference {
		return ref.Hash(), !ref.Hash().IsZero()
	}

	resolved, err := r.repo.Reference(ref.Name(), true)
	if err != nil {
		return plumbing.ZeroHash, false
	}
	return resolved.Hash(), !resolved.Hash().IsZero()
}

// Commit looks up a commit object. A commit whose author line has no readable
// timestamp comes back with a nil Author.
func (r *Repository) Commit(id temporal.CommitID) (*temporal.Commit, error) {
	c, err := r.repo.CommitObject(plumbing.Hash(id))
	if err != nil {
		return nil, err
	}

	commit := &temporal.Commit{
		ID:      id,
		Parents: make([]temporal.CommitID, len(c.ParentHashes)),
	}
	for i, parent := range c.ParentHashes {
		commit.Parents[i] = temporal.CommitID(parent)
	}

	if author, ok := signature(c.Author); ok {
		commit.Author = &author
	}

	return commit, nil
}

func signature(sig object.Signature) (temporal.Signature, bool) {
	if sig.When.IsZero() {
		return temporal.Signature{}, false
	}
	return temporal.Signature{
		Name:  sig.Name,
		Email: sig.Email,
		When:  sig.When,
	}, true
}
