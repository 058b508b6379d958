package sim

import (
	"fmt"
	"reflect"
)

// An EventEnvironment is the surface that events use to change the set of
// entities in the world.
type EventEnvironment interface {
	// Entity returns the entity registered under id.
	Entity(id string) (Predictable, bool)

	// RemoveEntity removes the entity registered under id.
	RemoveEntity(id string)

	// AddEntity registers an entity under id.
	AddEntity(id string, p Predictable)
}

// LookupStatus is the outcome of looking up an entity by ID and type.
type LookupStatus int

// The possible outcomes of LookupEntity.
const (
	LookupFound LookupStatus = iota
	LookupWrongType
	LookupNotFound
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupWrongType:
		return "wrong type"
	case LookupNotFound:
		return "not found"
	default:
		return fmt.Sprintf("LookupStatus(%d)", int(s))
	}
}

// LookupEntity finds the entity registered under id and checks that it is a
// T.
func LookupEntity[T any](env EventEnvironment, id string) (T, LookupStatus) {
	var zero T

	p, ok := env.Entity(id)
	if !ok {
		return zero, LookupNotFound
	}

	t, ok := p.(T)
	if !ok {
		return zero, LookupWrongType
	}

	return t, LookupFound
}

// MustEntity is like LookupEntity, but turns a failed lookup into an error
// that wraps ErrEntityNotFound or ErrEntityTypeMismatch.
func MustEntity[T any](env EventEnvironment, id string) (T, error) {
	t, status := LookupEntity[T](env, id)

	switch status {
	case LookupFound:
		return t, nil
	case LookupWrongType:
		return t, fmt.Errorf("%w: %q is %T, want %s",
			ErrEntityTypeMismatch, id, mustRawEntity(env, id), reflect.TypeFor[T]())
	default:
		return t, fmt.Errorf("%w: %q", ErrEntityNotFound, id)
	}
}

func mustRawEntity(env EventEnvironment, id string) Predictable {
	p, _ := env.Entity(id)
	return p
}
