package temporal

// IdentityResolver maps a commit author to the key their work is attributed to.
type IdentityResolver interface {
	Resolve(author Signature) AuthorKey
}

// EmailIdentity attributes commits to the raw author email. Two commits belong to the
// same author only when their emails are byte-identical.
type EmailIdentity struct{}

// Resolve returns the author email unchanged
func (EmailIdentity) Resolve(author Signature) AuthorKey {
	return AuthorKey(author.Email)
}

