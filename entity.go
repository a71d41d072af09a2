package stockroom

import "fmt"

// Entity is a chaining convenience over one identity. The first failing call
// is kept in Err and every later call becomes a no-op.
type Entity struct {
	sto *storage
	id  Identity
	err error
}

func newEntity(sto *storage, id Identity) *Entity {
	return &Entity{sto: sto, id: id}
}

func (e *Entity) Identity() Identity {
	return e.id
}

func (e *Entity) Err() error {
	return e.err
}

func (e *Entity) Alive() bool {
	return e.sto.IsAlive(e.id)
}

// Add attaches c with payload. A nil payload stores the zero value.
func (e *Entity) Add(c Component, payload any) *Entity {
	if e.err != nil {
		return e
	}
	if err := e.sto.AddComponent(c, e.id, payload); err != nil {
		e.err = fmt.Errorf("failed to add component to %v: %w", e.id, err)
	}
	return e
}

func (e *Entity) Remove(c Component) *Entity {
	if e.err != nil {
		return e
	}
	e.sto.RemoveComponent(c, e.id)
	return e
}

func (e *Entity) Has(c Component) bool {
	return e.sto.HasComponent(c, e.id)
}

func (e *Entity) Components() []ComponentType {
	return e.sto.Components(e.id)
}

func (e *Entity) Despawn() {
	e.sto.Despawn(e.id)
}
