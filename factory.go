package stockroom

type factory struct{}

var Factory factory

func (f factory) NewStorage(opts ...Option) Storage {
	return newStorage(opts...)
}

func (f factory) NewBuilder(sto Storage) *Builder {
	return newBuilder(sto.(*storage))
}

func (f factory) On(sto Storage, id Identity) *Entity {
	return newEntity(sto.(*storage), id)
}

// Spawn allocates an identity and returns a chained handle for it.
func (f factory) Spawn(sto Storage) *Entity {
	return newEntity(sto.(*storage), sto.Spawn())
}

// FactoryNewComponent registers T with sto if needed and returns a typed
// handle for it.
func FactoryNewComponent[T any](sto Storage) AccessibleComponent[T] {
	s := sto.(*storage)
	ct := registerType[T](s.types)
	accessible := AccessibleComponent[T]{
		ct:  ct,
		sto: s,
	}
	if !ct.tag {
		accessible.column = s.columnFor(s.types.resolve(ct)).(*Column[T])
	}
	return accessible
}
