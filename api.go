package stockroom

import (
	"iter"
	"reflect"
)

// Storage is the primitive surface of an entity store. Higher layers (element
// facades, relationship lookups, schedulers) consume only this interface plus
// GetQuery.
type Storage interface {
	Spawn() Identity
	Despawn(Identity)
	DespawnAllWith(Component)
	IsAlive(Identity) bool
	AddComponent(Component, Identity, any) error
	RemoveComponent(Component, Identity)
	GetComponent(Component, Identity) any
	HasComponent(Component, Identity) bool
	Components(Identity) []ComponentType
	TypeOf(reflect.Type) (ComponentType, bool)
	Query(Mask) *Query
	Locked() bool
	Lock()
	Unlock() error
	Stats() Stats
}

// Stats is a point-in-time summary of a storage.
type Stats struct {
	Alive          int
	Free           int
	Capacity       int
	ComponentTypes int
	CachedQueries  int
	Pending        int
	Locks          int
}

// QueryFactory wraps a freshly seeded base query in a specialized query type.
type QueryFactory[Q any] func(base *Query) Q

type iCursor interface {
	Next() bool
	Current() Identity
	Values() []any
	Reset()
	Close() error
}

type iQuery interface {
	Has(Identity) bool
	Count() int
	Enumerate() *Cursor
	Entities() iter.Seq[Identity]
}
