package market

import "errors"

// Settlement error taxonomy. Every checkout failure surfaces as exactly
// one of these; the HTTP layer maps them to status codes and never
// exposes underlying datastore detail.
var (
	ErrValidation        = errors.New("insufficient checkout data")
	ErrRateLimited       = errors.New("too many checkout attempts, slow down")
	ErrUnauthorized      = errors.New("invalid session")
	ErrAccountSuspended  = errors.New("account is suspended")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCommit            = errors.New("could not complete the order")
)
