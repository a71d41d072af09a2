package stockroom

import (
	"iter"
	"reflect"
	"slices"
)

var _ iQuery = &Query{}

// Query is a live list of the identities satisfying a Mask. The owning
// storage keeps it current as components are added and removed; it is never
// destroyed.
type Query struct {
	sto     *storage
	mask    Mask
	members membership

	// columns caches one column per non-tag Has type, in mask order.
	columns []column
	views   map[reflect.Type]any
}

func newQuery(sto *storage, m Mask) *Query {
	q := &Query{
		sto:     sto,
		mask:    m,
		members: newMembership(len(sto.metas)),
		views:   make(map[reflect.Type]any),
	}
	for _, ct := range m.hasTypes {
		rt := sto.types.resolve(ct)
		if rt.tag {
			continue
		}
		q.columns = append(q.columns, sto.columnFor(rt))
	}
	return q
}

// Query returns the cached query for m, seeding it with one scan of the live
// slots on first request.
func (sto *storage) Query(m Mask) *Query {
	m = sto.normalize(m)
	if idx, ok := sto.queries.GetIndex(m); ok {
		return sto.queries.GetItem(idx)
	}

	m = m.clone()
	q := newQuery(sto, m)
	for number := uint32(1); number <= sto.highest; number++ {
		meta := &sto.metas[number]
		if meta.identity.IsNone() {
			continue
		}
		if m.Matches(meta.set) {
			q.members.add(meta.identity)
		}
	}
	sto.queries.Register(q)

	for _, ct := range m.indexTypes() {
		sto.queriesByType[ct.id] = append(sto.queriesByType[ct.id], q)
	}
	sto.logger.Debug("query created",
		"has", len(m.hasTypes),
		"not", len(m.notTypes),
		"any", len(m.anyTypes),
		"matches", q.Count(),
	)
	return q
}

// normalize re-resolves every type of m against this storage and makes an
// empty Has set require the identity marker, so the query sees every spawn.
func (sto *storage) normalize(m Mask) Mask {
	var out Mask
	for _, ct := range m.hasTypes {
		out.Has(sto.types.resolve(ct).ComponentType)
	}
	for _, ct := range m.notTypes {
		out.Not(sto.types.resolve(ct).ComponentType)
	}
	for _, ct := range m.anyTypes {
		out.Any(sto.types.resolve(ct).ComponentType)
	}
	if len(out.hasTypes) == 0 {
		out.Has(sto.marker)
	}
	return out
}

// GetQuery returns the query for m wrapped by factory. The base query is
// shared by every caller asking for m; factory runs once per mask and
// result type.
func GetQuery[Q any](sto Storage, m Mask, factory QueryFactory[Q]) Q {
	base := sto.Query(m)
	key := reflect.TypeFor[Q]()
	if view, ok := base.views[key]; ok {
		return view.(Q)
	}
	view := factory(base)
	base.views[key] = view
	return view
}

// Has reports whether id currently satisfies the query.
func (q *Query) Has(id Identity) bool {
	return q.members.contains(id)
}

func (q *Query) Count() int {
	return len(q.members.matches)
}

func (q *Query) Mask() Mask {
	return q.mask.clone()
}

func (q *Query) Storage() Storage {
	return q.sto
}

// Snapshot copies the current match list.
func (q *Query) Snapshot() []Identity {
	return slices.Clone(q.members.matches)
}

// Enumerate locks the storage and returns a cursor over the matches. Close
// the cursor to release the lock.
func (q *Query) Enumerate() *Cursor {
	return newCursor(q)
}

// Entities yields every match while holding the storage lock. Writes issued
// inside the loop apply once the loop ends.
func (q *Query) Entities() iter.Seq[Identity] {
	return func(yield func(Identity) bool) {
		cursor := q.Enumerate()
		defer func() {
			_ = cursor.Close()
		}()
		for cursor.Next() {
			if !yield(cursor.Current()) {
				return
			}
		}
	}
}

const tombstone = -1

// membership is the match list plus a sparse position index keyed by slot
// number, so add, remove and contains are O(1).
type membership struct {
	positions []int
	matches   []Identity
}

func newMembership(capacity int) membership {
	m := membership{positions: make([]int, capacity)}
	for i := range m.positions {
		m.positions[i] = tombstone
	}
	return m
}

func (m *membership) position(number uint32) (int, bool) {
	if int(number) >= len(m.positions) {
		return 0, false
	}
	pos := m.positions[number]
	if pos == tombstone {
		return 0, false
	}
	return pos, true
}

func (m *membership) contains(id Identity) bool {
	pos, ok := m.position(id.Number)
	return ok && m.matches[pos] == id
}

func (m *membership) add(id Identity) {
	if _, ok := m.position(id.Number); ok {
		return
	}
	if int(id.Number) >= len(m.positions) {
		oldLen := len(m.positions)
		newLen := max(oldLen*2, int(id.Number)+1)
		grown := make([]int, newLen)
		copy(grown, m.positions)
		for i := oldLen; i < newLen; i++ {
			grown[i] = tombstone
		}
		m.positions = grown
	}
	m.positions[id.Number] = len(m.matches)
	m.matches = append(m.matches, id)
}

// remove swaps the last match into the vacated position.
func (m *membership) remove(id Identity) {
	pos, ok := m.position(id.Number)
	if !ok {
		return
	}
	last := len(m.matches) - 1
	moved := m.matches[last]
	m.matches[pos] = moved
	m.positions[moved.Number] = pos
	m.matches = m.matches[:last]
	m.positions[id.Number] = tombstone
}
