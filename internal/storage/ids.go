package storage

import "github.com/google/uuid"

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id could have been produced by NewID.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}
