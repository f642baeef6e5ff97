package indicators

import "github.com/google/uuid"

// NewAnonymousID returns a fresh requirement id for callers that don't
// want to manage their own id namespace, e.g. ad-hoc registrations that
// have no natural id. Nested indicators built by composite families do not
// use it; they derive their ids from the parent's id.
func NewAnonymousID() string {
	return uuid.NewString()
}
