// Package session confirms that a caller's claimed identity maps to an
// existing account that is allowed to transact.
package session

import (
	"context"

	"github.com/mahdisharifi109/Rewear-sub000/internal/market"
)

// User ids are uuids; anything shorter is malformed and rejected
// without a datastore round-trip.
const minIDLen = 16

type UserGetter interface {
	GetUser(ctx context.Context, id string) (*market.User, error)
}

type Validator struct {
	Users UserGetter
}

// Validate resolves the claimed id to a live account. Unknown ids fail
// with ErrUnauthorized, blocked accounts with ErrAccountSuspended. It
// performs no writes.
func (v *Validator) Validate(ctx context.Context, claimedUserID string) (*market.User, error) {
	if len(claimedUserID) < minIDLen {
		return nil, market.ErrUnauthorized
	}

	u, err := v.Users.GetUser(ctx, claimedUserID)
	if err != nil {
		return nil, err
	}
	if u.Status.Blocked() {
		return nil, market.ErrAccountSuspended
	}
	return u, nil
}
