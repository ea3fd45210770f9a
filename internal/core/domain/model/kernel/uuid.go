package kernel

import (
	"bytes"
	"fmt"

	"freight/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("id")

// UUID is the identifier of every aggregate and entity in the freight domain.
// It wraps github.com/google/uuid so that the zero value is detectable and the
// domain never sees the nil UUID.
//
// Two flavours are produced:
//   - NewUUID: random (v4), used for loads, stops, other-pay rows and fleet records
//   - NewOrderedUUID: time-ordered (v7), used where ids double as an ordering
//     tie-break, such as chat messages
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random version 4 UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// NewOrderedUUID generates a version 7 UUID whose byte order follows creation time.
// It falls back to a random UUID if the clock source fails.
func NewOrderedUUID() UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return NewUUID()
	}
	return UUID{id: id}
}

// UUIDFromString parses the textual forms accepted by uuid.Parse
// (plain, braced, urn-prefixed, hyphen-less).
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from its 16 byte representation. The nil UUID is rejected.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical hyphenated form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID, used by persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both UUIDs hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Compare orders UUIDs by their bytes: -1, 0 or +1.
func (u UUID) Compare(other UUID) int {
	return bytes.Compare(u.id[:], other.id[:])
}

// Validate rejects the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := UUIDFromString(string(text))
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	*u = parsed
	return nil
}

// UUIDPtrEqual compares two optional references.
func UUIDPtrEqual(a, b *UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.IsEqual(*b)
}
