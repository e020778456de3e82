// util/identity.go

package util

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces record identifiers. Tests substitute a deterministic
// implementation.
type IDGenerator interface {
	NewID() string
}

// Clock abstracts time.Now for testability.
type Clock interface {
	Now() time.Time
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
