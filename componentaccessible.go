package stockroom

// AccessibleComponent is a typed component handle bound to one storage. It
// holds a direct reference to the component's column, so reads skip every
// registry lookup.
type AccessibleComponent[T any] struct {
	ct     ComponentType
	sto    *storage
	column *Column[T] // nil for tags
}

func (c AccessibleComponent[T]) ComponentType() ComponentType {
	return c.ct
}

func (c AccessibleComponent[T]) ID() uint32 {
	return c.ct.id
}

func (c AccessibleComponent[T]) IsTag() bool {
	return c.ct.tag
}

func (c AccessibleComponent[T]) String() string {
	return c.ct.String()
}

// GetFromCursor returns the component of the cursor's current entity. The
// cursor's query must require this component.
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	if c.column == nil {
		return nil
	}
	return c.column.At(cursor.Current().Number)
}

// GetFromCursorSafe reports whether the cursor's current entity holds the
// component, and returns it if so.
func (c AccessibleComponent[T]) GetFromCursorSafe(cursor *Cursor) (bool, *T) {
	id := cursor.Current()
	if c.column == nil || !c.sto.HasComponent(c.ct, id) {
		return false, nil
	}
	return true, c.column.At(id.Number)
}

// GetFromEntity returns the component cell of id without liveness checks.
func (c AccessibleComponent[T]) GetFromEntity(id Identity) *T {
	if c.column == nil {
		return nil
	}
	return c.column.At(id.Number)
}

func (c AccessibleComponent[T]) TryGetFromEntity(id Identity) (*T, bool) {
	if c.column == nil || !c.sto.IsAlive(id) || !c.sto.HasComponent(c.ct, id) {
		return nil, false
	}
	return c.column.At(id.Number), true
}

func (c AccessibleComponent[T]) Add(id Identity, value T) error {
	return c.sto.AddComponent(c.ct, id, value)
}

func (c AccessibleComponent[T]) Remove(id Identity) {
	c.sto.RemoveComponent(c.ct, id)
}

func (c AccessibleComponent[T]) Check(id Identity) bool {
	return c.sto.HasComponent(c.ct, id)
}
