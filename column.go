package stockroom

import "reflect"

// column is the type-erased view of a dense per-type array indexed by slot
// number. Cells of dead or never-spawned slots hold the zero value and must
// not be read as live data.
type column interface {
	componentType() ComponentType
	set(number uint32, payload any) error
	get(number uint32) any
	ptr(number uint32) any
	clear(number uint32)
	resize(capacity int)
	capacity() int
}

var _ column = &Column[struct{ X int }]{}

// Column stores every instance of one component type.
type Column[T any] struct {
	typ   ComponentType
	items []T
}

func newColumn[T any](typ ComponentType, capacity int) *Column[T] {
	return &Column[T]{
		typ:   typ,
		items: make([]T, capacity),
	}
}

// At returns the cell for number. The caller must have checked that the slot
// holds this component.
func (c *Column[T]) At(number uint32) *T {
	return &c.items[number]
}

func (c *Column[T]) Set(number uint32, value T) {
	c.items[number] = value
}

func (c *Column[T]) componentType() ComponentType {
	return c.typ
}

func (c *Column[T]) set(number uint32, payload any) error {
	if payload == nil {
		var zero T
		c.items[number] = zero
		return nil
	}
	value, ok := payload.(T)
	if !ok {
		return PayloadTypeError{Type: c.typ, Got: reflect.TypeOf(payload)}
	}
	c.items[number] = value
	return nil
}

func (c *Column[T]) get(number uint32) any {
	return c.items[number]
}

func (c *Column[T]) ptr(number uint32) any {
	return &c.items[number]
}

func (c *Column[T]) clear(number uint32) {
	var zero T
	c.items[number] = zero
}

func (c *Column[T]) resize(capacity int) {
	if capacity <= len(c.items) {
		return
	}
	grown := make([]T, capacity)
	copy(grown, c.items)
	c.items = grown
}

func (c *Column[T]) capacity() int {
	return len(c.items)
}
