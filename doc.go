/*
Package stockroom provides an in-process entity-component store.

Stockroom keeps one dense column per component type, indexed directly by
entity slot number, and maintains every query incrementally: adding or
removing a component updates only the queries that mention its type.

Core Concepts:

  - Identity: A slot number plus a reuse generation.
  - Component: A typed payload, or a zero-size tag, attached to an identity.
  - Mask: Has, Not and Any sets of component types.
  - Query: The live list of identities satisfying a Mask, cached per Mask.
  - Cursor: A lock-holding walk over a query's matches.

Basic Usage:

	storage := stockroom.Factory.NewStorage()

	position := stockroom.FactoryNewComponent[Position](storage)
	velocity := stockroom.FactoryNewComponent[Velocity](storage)
	frozen := stockroom.FactoryNewComponent[Frozen](storage)

	stockroom.Factory.Spawn(storage).
		Add(position, Position{}).
		Add(velocity, Velocity{X: 1})

	query := stockroom.Factory.NewBuilder(storage).
		Has(position, velocity).
		Not(frozen).
		Build()

	for range query.Entities() {
		// ...
	}

	cursor := query.Enumerate()
	for cursor.Next() {
		pos := position.GetFromCursor(cursor)
		vel := velocity.GetFromCursor(cursor)
		pos.X += vel.X
		pos.Y += vel.Y
	}
	cursor.Close()

Each query is indexed under every type its Mask names. Losing a Has type
drops the entity without further checks. Gaining or losing a Not or Any type
re-tests the whole Mask, since either change can flip the verdict.

Component type ids and mask bits are local to each storage. A storage holds
at most MaxComponentTypes types, the identity marker included; the m256, m512
and m1024 build tags of github.com/TheBitDrifter/mask widen the limit.

Structural writes (Despawn, AddComponent, RemoveComponent) issued while a
cursor is open are queued and replayed in order when the last lock is
released. The store is not safe for concurrent use.
*/
package stockroom
