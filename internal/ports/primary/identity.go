// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import "github.com/example/resale/internal/core/identity"

// Identity is the authenticated caller. Upstream middleware resolves it;
// every mutating operation takes it as a parameter.
type Identity = identity.Identity
