package drng

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// ErrInit reports that the deterministic source could not be installed.
var ErrInit = errors.New("deterministic rng initialization failed")

// scopeActive guards the single-scope invariant. The random source is
// process-wide state; two live scopes would fight over crypto/rand.Reader.
var scopeActive bool

// Scope routes the process random source through a deterministic
// generator for the duration of one operation. crypto/rand.Reader is the
// switch point because the primitives library draws its entropy there.
type Scope struct {
	prev     io.Reader
	released bool
}

// Open expands seed under the given domain tag, seeds the deterministic
// generator from the result, and installs it as crypto/rand.Reader. The
// caller must Close the scope when the operation ends, on every path:
//
//	scope, err := drng.Open(seed, domain)
//	if err != nil { ... }
//	defer scope.Close()
//
// The previous reader is captured before any step that can fail, so a
// partially completed Open still restores it. Opening a second scope
// while one is active is an initialization error and leaves the active
// scope untouched.
func Open(seed []byte, domain string) (*Scope, error) {
	if scopeActive {
		return nil, fmt.Errorf("%w: a scope is already active", ErrInit)
	}
	s := &Scope{prev: rand.Reader}
	scopeActive = true
	d, err := newDRBG(expandSeed(seed, domain))
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}
	rand.Reader = d
	return s, nil
}

// Close switches the process random source back to whatever was active
// when the scope was opened. Calling it again is a no-op.
func (s *Scope) Close() {
	if s.released {
		return
	}
	s.released = true
	scopeActive = false
	rand.Reader = s.prev
}
