package stockroom

import (
	"iter"
	"log/slog"
	"reflect"
	"slices"

	"github.com/TheBitDrifter/mask"
	iter_util "github.com/TheBitDrifter/util/iter"
)

var _ Storage = &storage{}

type slotMeta struct {
	identity   Identity
	generation uint32
	set        mask.Mask
	types      []ComponentType
}

type storage struct {
	logger *slog.Logger

	types  *typeRegistry
	marker ComponentType

	metas   []slotMeta
	highest uint32
	alive   int
	free    []uint32

	columns       []column
	queries       queryCache
	queriesByType map[uint32][]*Query

	lockCount int
	opQueue   opQueue
}

func newStorage(opts ...Option) Storage {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	sto := &storage{
		logger:        cfg.logger,
		types:         newTypeRegistry(),
		metas:         make([]slotMeta, cfg.initialCapacity),
		queries:       newQueryCache(),
		queriesByType: make(map[uint32][]*Query),
	}
	sto.marker = registerType[Identity](sto.types)
	return sto
}

func (sto *storage) Spawn() Identity {
	var number uint32
	if len(sto.free) > 0 {
		number = sto.free[0]
		sto.free = sto.free[1:]
	} else {
		sto.highest++
		number = sto.highest
		sto.grow(number)
	}

	meta := &sto.metas[number]
	meta.generation++
	if meta.generation == 0 {
		meta.generation++
	}
	id := Identity{Number: number, Generation: meta.generation}
	meta.identity = id
	meta.set = mask.Mask{}
	meta.types = meta.types[:0]
	sto.alive++

	// A fresh slot cannot already hold the marker.
	_ = sto.AddComponent(sto.marker, id, id)
	return id
}

func (sto *storage) Despawn(id Identity) {
	if !sto.IsAlive(id) {
		return
	}
	if sto.Locked() {
		sto.opQueue.enqueue(operation{typ: opDespawn, entity: id})
		return
	}

	meta := &sto.metas[id.Number]
	meta.identity = None
	attached := slices.Clone(meta.types)
	for i := len(attached) - 1; i >= 0; i-- {
		sto.detach(sto.types.resolve(attached[i]), id, meta)
	}
	meta.set = mask.Mask{}
	meta.types = meta.types[:0]

	sto.free = append(sto.free, id.Number)
	sto.alive--
}

func (sto *storage) DespawnAllWith(c Component) {
	var m Mask
	m.Has(sto.types.resolve(c).ComponentType)
	for _, id := range sto.Query(m).Snapshot() {
		sto.Despawn(id)
	}
}

func (sto *storage) IsAlive(id Identity) bool {
	if id.Number == 0 || int(id.Number) >= len(sto.metas) {
		return false
	}
	return sto.metas[id.Number].identity == id
}

func (sto *storage) AddComponent(c Component, id Identity, payload any) error {
	rt := sto.types.resolve(c)
	meta := &sto.metas[id.Number]
	if containsType(meta.types, rt.ComponentType) {
		return DuplicateComponentError{Component: rt.ComponentType, Entity: id}
	}
	if err := checkPayload(rt.ComponentType, payload); err != nil {
		return err
	}
	if sto.Locked() {
		sto.opQueue.enqueue(operation{typ: opAddComponent, entity: id, component: rt, payload: payload})
		return nil
	}
	return sto.attach(rt, id, meta, payload)
}

func (sto *storage) RemoveComponent(c Component, id Identity) {
	rt := sto.types.resolve(c)
	if sto.Locked() {
		sto.opQueue.enqueue(operation{typ: opRemoveComponent, entity: id, component: rt})
		return
	}
	meta := &sto.metas[id.Number]
	if !containsType(meta.types, rt.ComponentType) {
		return
	}
	sto.detach(rt, id, meta)
}

// GetComponent returns the payload stored for c on id, or nil for tags. It
// does not check liveness.
func (sto *storage) GetComponent(c Component, id Identity) any {
	rt := sto.types.resolve(c)
	if rt.tag {
		return nil
	}
	return sto.columnFor(rt).get(id.Number)
}

func (sto *storage) HasComponent(c Component, id Identity) bool {
	rt, ok := sto.types.tryResolve(c)
	if !ok || int(id.Number) >= len(sto.metas) {
		return false
	}
	return containsType(sto.metas[id.Number].types, rt.ComponentType)
}

// Components lists the types attached to id in id order.
func (sto *storage) Components(id Identity) []ComponentType {
	if !sto.IsAlive(id) {
		return nil
	}
	return iter_util.Collect(sto.componentSeq(id))
}

func (sto *storage) componentSeq(id Identity) iter.Seq[ComponentType] {
	return func(yield func(ComponentType) bool) {
		for _, ct := range sto.metas[id.Number].types {
			if !yield(ct) {
				return
			}
		}
	}
}

func (sto *storage) TypeOf(typ reflect.Type) (ComponentType, bool) {
	return sto.types.lookup(typ)
}

func (sto *storage) Locked() bool {
	return sto.lockCount > 0
}

func (sto *storage) Lock() {
	sto.lockCount++
}

// Unlock releases one lock. When the last lock is released the deferred
// operations replay in issuance order and any failures are returned joined.
func (sto *storage) Unlock() error {
	if sto.lockCount == 0 {
		return nil
	}
	sto.lockCount--
	if sto.lockCount > 0 {
		return nil
	}
	return sto.processOperationQueue()
}

func (sto *storage) Stats() Stats {
	return Stats{
		Alive:          sto.alive,
		Free:           len(sto.free),
		Capacity:       len(sto.metas),
		ComponentTypes: sto.types.len(),
		CachedQueries:  sto.queries.Len(),
		Pending:        sto.opQueue.len(),
		Locks:          sto.lockCount,
	}
}

func (sto *storage) attach(rt *registeredType, id Identity, meta *slotMeta, payload any) error {
	if !rt.tag {
		if err := sto.columnFor(rt).set(id.Number, payload); err != nil {
			return err
		}
	}
	meta.set.Mark(rt.bit)
	meta.types = insertSorted(meta.types, rt.ComponentType)
	sto.onComponentAdded(rt.ComponentType, id, meta)
	return nil
}

func (sto *storage) detach(rt *registeredType, id Identity, meta *slotMeta) {
	meta.set.Unmark(rt.bit)
	meta.types = removeSorted(meta.types, rt.ComponentType)
	sto.onComponentRemoved(rt.ComponentType, id, meta)
	if !rt.tag {
		sto.columnFor(rt).clear(id.Number)
	}
}

// onComponentAdded re-evaluates the queries indexed under ct. Match lists
// take the slot's current owner, never the caller's handle, so a stale
// handle cannot leave a dead identity behind.
func (sto *storage) onComponentAdded(ct ComponentType, id Identity, meta *slotMeta) {
	owner := meta.identity
	if owner.IsNone() {
		return
	}
	for _, q := range sto.queriesByType[ct.id] {
		if q.mask.Matches(meta.set) {
			q.members.add(owner)
		} else {
			q.members.remove(id)
		}
	}
}

// onComponentRemoved drops id from every query requiring ct without testing
// the rest of the mask. Queries that only exclude or optionally match ct are
// re-evaluated, since losing ct can make them match.
func (sto *storage) onComponentRemoved(ct ComponentType, id Identity, meta *slotMeta) {
	for _, q := range sto.queriesByType[ct.id] {
		if _, required := q.mask.involves(ct); required {
			q.members.remove(id)
			continue
		}
		if owner := meta.identity; !owner.IsNone() && q.mask.Matches(meta.set) {
			q.members.add(owner)
		} else {
			q.members.remove(id)
		}
	}
}

func (sto *storage) columnFor(rt *registeredType) column {
	if rt.tag {
		return nil
	}
	idx := int(rt.id) - 1
	if idx >= len(sto.columns) {
		sto.columns = append(sto.columns, make([]column, idx+1-len(sto.columns))...)
	}
	if sto.columns[idx] == nil {
		sto.columns[idx] = rt.newColumn(len(sto.metas))
	}
	return sto.columns[idx]
}

// grow doubles slot metadata and every column until number fits.
func (sto *storage) grow(number uint32) {
	if int(number) < len(sto.metas) {
		return
	}
	capacity := max(len(sto.metas)*2, int(number)+1)
	grown := make([]slotMeta, capacity)
	copy(grown, sto.metas)
	sto.metas = grown
	for _, col := range sto.columns {
		if col != nil {
			col.resize(capacity)
		}
	}
}

func checkPayload(ct ComponentType, payload any) error {
	if payload == nil {
		return nil
	}
	if got := reflect.TypeOf(payload); got != ct.typ {
		return PayloadTypeError{Type: ct, Got: got}
	}
	return nil
}

func insertSorted(types []ComponentType, ct ComponentType) []ComponentType {
	i, found := slices.BinarySearchFunc(types, ct.id, compareTypeID)
	if found {
		return types
	}
	return slices.Insert(types, i, ct)
}

func removeSorted(types []ComponentType, ct ComponentType) []ComponentType {
	i, found := slices.BinarySearchFunc(types, ct.id, compareTypeID)
	if !found {
		return types
	}
	return slices.Delete(types, i, i+1)
}
