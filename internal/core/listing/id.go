package listing

import "github.com/google/uuid"

// IDPrefix prefixes every listing id.
const IDPrefix = "LST-"

// NewID returns a fresh listing id.
func NewID() string {
	return IDPrefix + uuid.NewString()
}
