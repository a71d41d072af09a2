package stockroom

// Builder accumulates Has, Not and Any constraints. Insertion order does not
// matter: builders with the same constraint sets resolve to the same query.
type Builder struct {
	sto  *storage
	mask Mask
}

func newBuilder(sto *storage) *Builder {
	return &Builder{sto: sto}
}

func (b *Builder) Has(components ...Component) *Builder {
	for _, c := range components {
		b.mask.Has(b.sto.types.resolve(c).ComponentType)
	}
	return b
}

func (b *Builder) Not(components ...Component) *Builder {
	for _, c := range components {
		b.mask.Not(b.sto.types.resolve(c).ComponentType)
	}
	return b
}

func (b *Builder) Any(components ...Component) *Builder {
	for _, c := range components {
		b.mask.Any(b.sto.types.resolve(c).ComponentType)
	}
	return b
}

func (b *Builder) Mask() Mask {
	return b.mask.clone()
}

func (b *Builder) Build() *Query {
	return b.sto.Query(b.mask)
}

// BuildWith resolves the builder's query and wraps it with factory.
func BuildWith[Q any](b *Builder, factory QueryFactory[Q]) Q {
	return GetQuery(b.sto, b.mask, factory)
}
