package core

import "github.com/google/uuid"

// ID identifies an engine object (scene, node, component) for its lifetime.
type ID = uuid.UUID

// NewID returns a fresh random identifier.
func NewID() ID {
	return uuid.New()
}

// ShortID is the first block of the identifier, handy in log lines.
func ShortID(id ID) string {
	return id.String()[:8]
}
