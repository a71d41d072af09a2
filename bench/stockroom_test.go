package bench

import (
	"io"
	"log/slog"
	"testing"

	"github.com/TheBitDrifter/stockroom"
)

const (
	nPos    = 9000
	nPosVel = 1000
)

type Position struct {
	X float64
	Y float64
}

type Velocity struct {
	X float64
	Y float64
}

func newBenchStorage() stockroom.Storage {
	return stockroom.Factory.NewStorage(
		stockroom.WithInitialCapacity(nPos+nPosVel+1),
		stockroom.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func BenchmarkIterStockroomGet(b *testing.B) {
	b.StopTimer()

	storage := newBenchStorage()
	velocity := stockroom.FactoryNewComponent[Velocity](storage)
	position := stockroom.FactoryNewComponent[Position](storage)

	for i := 0; i < nPosVel; i++ {
		stockroom.Factory.Spawn(storage).Add(position, nil).Add(velocity, Velocity{X: 1, Y: 1})
	}
	for i := 0; i < nPos; i++ {
		stockroom.Factory.Spawn(storage).Add(position, nil)
	}

	query := stockroom.Factory.NewBuilder(storage).Has(velocity, position).Build()

	b.StartTimer()

	for i := 0; i < b.N; i++ {
		cursor := query.Enumerate()
		for cursor.Next() {
			pos := position.GetFromCursor(cursor)
			vel := velocity.GetFromCursor(cursor)

			pos.X += vel.X
			pos.Y += vel.Y
		}
		_ = cursor.Close()
	}
}

func BenchmarkIterStockroomValues(b *testing.B) {
	b.StopTimer()

	storage := newBenchStorage()
	position := stockroom.FactoryNewComponent[Position](storage)
	velocity := stockroom.FactoryNewComponent[Velocity](storage)

	for i := 0; i < nPosVel; i++ {
		stockroom.Factory.Spawn(storage).Add(position, nil).Add(velocity, Velocity{X: 1, Y: 1})
	}
	for i := 0; i < nPos; i++ {
		stockroom.Factory.Spawn(storage).Add(position, nil)
	}

	query := stockroom.Factory.NewBuilder(storage).Has(position, velocity).Build()

	b.StartTimer()

	for i := 0; i < b.N; i++ {
		cursor := query.Enumerate()
		for cursor.Next() {
			values := cursor.Values()
			pos := values[0].(*Position)
			vel := values[1].(*Velocity)

			pos.X += vel.X
			pos.Y += vel.Y
		}
		_ = cursor.Close()
	}
}

func BenchmarkAddRemoveStockroom(b *testing.B) {
	b.StopTimer()

	storage := newBenchStorage()
	position := stockroom.FactoryNewComponent[Position](storage)
	velocity := stockroom.FactoryNewComponent[Velocity](storage)

	ids := make([]stockroom.Identity, nPos)
	for i := range ids {
		ids[i] = storage.Spawn()
		_ = position.Add(ids[i], Position{})
	}
	stockroom.Factory.NewBuilder(storage).Has(position, velocity).Build()
	stockroom.Factory.NewBuilder(storage).Has(position).Not(velocity).Build()

	b.StartTimer()

	for i := 0; i < b.N; i++ {
		for _, id := range ids {
			_ = velocity.Add(id, Velocity{})
		}
		for _, id := range ids {
			velocity.Remove(id)
		}
	}
}
