package stockroom_test

import (
	"fmt"

	"github.com/TheBitDrifter/stockroom"
)

// Position is a simple component for 2D coordinates
type Position struct {
	X float64
	Y float64
}

// Velocity is a simple component for 2D movement
type Velocity struct {
	X float64
	Y float64
}

// Name is a simple component for entity identification
type Name struct {
	Value string
}

// Example shows basic stockroom usage with entity creation and queries
func Example_basic() {
	// Create storage
	storage := stockroom.Factory.NewStorage()

	// Define components
	position := stockroom.FactoryNewComponent[Position](storage)
	velocity := stockroom.FactoryNewComponent[Velocity](storage)
	name := stockroom.FactoryNewComponent[Name](storage)

	// Create entities
	for i := 0; i < 5; i++ {
		stockroom.Factory.Spawn(storage).Add(position, nil)
	}
	for i := 0; i < 3; i++ {
		stockroom.Factory.Spawn(storage).Add(position, nil).Add(velocity, nil)
	}

	// Create one named entity
	player := stockroom.Factory.Spawn(storage).
		Add(position, Position{X: 10, Y: 20}).
		Add(velocity, Velocity{X: 1, Y: 2}).
		Add(name, Name{Value: "Player"})
	if err := player.Err(); err != nil {
		fmt.Println(err)
		return
	}

	// Query for all entities with position and velocity
	moving := stockroom.Factory.NewBuilder(storage).Has(position, velocity).Build()
	fmt.Printf("Found %d entities with position and velocity\n", moving.Count())

	// Process the named entity
	named := stockroom.Factory.NewBuilder(storage).Has(name).Build()
	cursor := named.Enumerate()
	for cursor.Next() {
		pos := position.GetFromCursor(cursor)
		vel := velocity.GetFromCursor(cursor)
		nme := name.GetFromCursor(cursor)

		// Update position based on velocity
		pos.X += vel.X
		pos.Y += vel.Y

		fmt.Printf("Updated %s to position (%.1f, %.1f)\n", nme.Value, pos.X, pos.Y)
	}
	if err := cursor.Close(); err != nil {
		fmt.Println(err)
	}

	// Output:
	// Found 4 entities with position and velocity
	// Updated Player to position (11.0, 22.0)
}

// Example_queries shows how Has, Not and Any combine
func Example_queries() {
	storage := stockroom.Factory.NewStorage()

	position := stockroom.FactoryNewComponent[Position](storage)
	velocity := stockroom.FactoryNewComponent[Velocity](storage)
	name := stockroom.FactoryNewComponent[Name](storage)

	spawn := func(n int, components ...stockroom.Component) {
		for i := 0; i < n; i++ {
			e := stockroom.Factory.Spawn(storage)
			for _, c := range components {
				e.Add(c, nil)
			}
		}
	}

	// Create different entity types
	spawn(3, position)
	spawn(3, position, velocity)
	spawn(3, position, name)
	spawn(3, position, velocity, name)

	// Has: entities with position AND velocity
	hasQuery := stockroom.Factory.NewBuilder(storage).Has(position, velocity).Build()
	fmt.Printf("Has query matched %d entities\n", hasQuery.Count())

	// Any: entities with velocity OR name
	anyQuery := stockroom.Factory.NewBuilder(storage).Any(velocity, name).Build()
	fmt.Printf("Any query matched %d entities\n", anyQuery.Count())

	// Not: entities with position but NOT velocity
	notQuery := stockroom.Factory.NewBuilder(storage).Has(position).Not(velocity).Build()
	fmt.Printf("Not query matched %d entities\n", notQuery.Count())

	// Queries stay current as components change
	for id := range hasQuery.Entities() {
		velocity.Remove(id)
	}
	fmt.Printf("After removals: has=%d not=%d\n", hasQuery.Count(), notQuery.Count())

	// Output:
	// Has query matched 6 entities
	// Any query matched 9 entities
	// Not query matched 6 entities
	// After removals: has=0 not=12
}

// Example_deferred shows that writes issued during iteration wait for the
// cursor to close
func Example_deferred() {
	storage := stockroom.Factory.NewStorage()
	position := stockroom.FactoryNewComponent[Position](storage)

	for i := 0; i < 4; i++ {
		stockroom.Factory.Spawn(storage).Add(position, Position{X: float64(i)})
	}

	query := stockroom.Factory.NewBuilder(storage).Has(position).Build()
	for id := range query.Entities() {
		if position.GetFromEntity(id).X >= 2 {
			storage.Despawn(id)
			fmt.Printf("Despawn of %v pending, %d still matched\n", id, query.Count())
		}
	}
	fmt.Printf("After the loop: %d matched, %d alive\n", query.Count(), storage.Stats().Alive)

	// Output:
	// Despawn of 3v1 pending, 4 still matched
	// Despawn of 4v1 pending, 4 still matched
	// After the loop: 2 matched, 2 alive
}
