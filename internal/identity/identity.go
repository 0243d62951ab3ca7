// Package identity decides which owner a request's records belong to.
//
// Normally that is the authenticated user. When a primary owner is
// configured, every other user's reads and writes are redirected to the
// primary's records instead: a two-party data-sharing mode between the
// primary and whoever else is allowed to sign in.
package identity

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNoIdentity = errors.New("no authenticated identity")

// Resolution is the outcome of resolving a caller: the owner to scope all
// reads and writes by, and whether that differs from the caller itself.
type Resolution struct {
	OwnerID uuid.UUID
	Shared  bool
}

type Resolver struct {
	primary uuid.UUID
}

// NewResolver builds a resolver; a zero primary disables shared-data mode.
func NewResolver(primary uuid.UUID) *Resolver {
	return &Resolver{primary: primary}
}

// Resolve maps the authenticated user to the owner identity scoping their
// data. The result is returned, never stored: concurrent calls cannot
// observe each other.
func (r *Resolver) Resolve(authenticated uuid.UUID) (Resolution, error) {
	if authenticated == uuid.Nil {
		return Resolution{}, ErrNoIdentity
	}

	if r.primary != uuid.Nil && authenticated != r.primary {
		return Resolution{OwnerID: r.primary, Shared: true}, nil
	}

	return Resolution{OwnerID: authenticated}, nil
}
