package models

import gonanoid "github.com/matoous/go-nanoid/v2"

// NewID returns an opaque short identifier used as the primary key for every
// table. Keys are strings, not auto-increment integers, so rows can be created
// from any process without coordination.
func NewID() (string, error) {
	return gonanoid.New()
}
