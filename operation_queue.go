package stockroom

import (
	"errors"
	"fmt"

	"github.com/TheBitDrifter/bark"
)

type operation struct {
	typ       operationType
	entity    Identity
	component *registeredType
	payload   any
}

type operationType int

const (
	opDespawn operationType = iota
	opAddComponent
	opRemoveComponent
)

func (t operationType) String() string {
	switch t {
	case opDespawn:
		return "despawn"
	case opAddComponent:
		return "add"
	case opRemoveComponent:
		return "remove"
	}
	return "unknown"
}

// opQueue holds structural writes issued while the storage is locked, in
// issuance order.
type opQueue struct {
	ops []operation
}

func (q *opQueue) enqueue(op operation) {
	q.ops = append(q.ops, op)
}

func (q *opQueue) len() int {
	return len(q.ops)
}

func (q *opQueue) drain() []operation {
	ops := q.ops
	q.ops = nil
	return ops
}

// processOperationQueue replays deferred writes FIFO. Operations whose target
// died earlier in the batch are skipped.
func (sto *storage) processOperationQueue() error {
	if sto.opQueue.len() == 0 {
		return nil
	}
	ops := sto.opQueue.drain()
	sto.logger.Debug("replaying deferred operations", "count", len(ops))

	var errs []error
	for _, op := range ops {
		if !sto.IsAlive(op.entity) {
			sto.logger.Debug("skipping deferred operation on dead entity",
				bark.KeyOperation, op.typ.String(),
				"entity", op.entity.String(),
			)
			continue
		}
		switch op.typ {
		case opDespawn:
			sto.Despawn(op.entity)
		case opAddComponent:
			if err := sto.AddComponent(op.component.ComponentType, op.entity, op.payload); err != nil {
				sto.logger.Warn("dropping deferred operation",
					bark.KeyOperation, op.typ.String(),
					"entity", op.entity.String(),
					bark.KeyComponent, op.component.String(),
					bark.KeyError, err,
				)
				errs = append(errs, fmt.Errorf("failed to add queued component: %w", err))
			}
		case opRemoveComponent:
			sto.RemoveComponent(op.component.ComponentType, op.entity)
		}
	}
	return errors.Join(errs...)
}
