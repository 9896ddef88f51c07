// Package errs holds the typed validation and lookup errors used by the
// domain model and the repositories.
//
// Every type wraps one sentinel, so callers branch with errors.Is:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // the order, driver or customer is gone
//	}
//
// Sentinels: ErrObjectNotFound, ErrValueIsInvalid, ErrValueIsOutOfRange and
// ErrValueIsRequired. The typed errors carry the parameter name and an
// optional cause; their text never reaches a client directly.
package errs
