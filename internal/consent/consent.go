// Package consent gates entry into the intake flow behind the user's
// data-processing acknowledgments.  The persisted state is a single boolean;
// it is held behind a Store capability so callers never touch ambient
// storage directly and tests can swap in a double.
package consent

import "errors"

// ErrIncomplete is returned when consent is recorded without all three
// acknowledgments.  Prior state is left untouched.
var ErrIncomplete = errors.New("consent incomplete: terms, privacy and GDPR must all be accepted")

// Store persists the consent flag.
type Store interface {
	Read() (bool, error)
	Write(v bool) error
}

// Gate checks and records consent through an injected Store.
type Gate struct {
	store Store
}

// NewGate builds a Gate over the given store.
func NewGate(store Store) *Gate {
	return &Gate{store: store}
}

// HasConsented reports whether consent has been recorded.  Storage errors
// read as not-consented: the safe direction is to re-ask.
func (g *Gate) HasConsented() bool {
	ok, err := g.store.Read()
	if err != nil {
		return false
	}
	return ok
}

// Record persists consent when all three acknowledgments hold together.
// Partial acknowledgment returns ErrIncomplete without writing anything.
// Recording after consent is already set is idempotent.
func (g *Gate) Record(terms, privacy, gdpr bool) error {
	if !terms || !privacy || !gdpr {
		return ErrIncomplete
	}
	return g.store.Write(true)
}
