package stockroom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCacheRegisterAndLookup(t *testing.T) {
	sto := newTestStorage(t)
	position := TypeFor[Position](sto)
	velocity := TypeFor[Velocity](sto)

	var a, b Mask
	a.Has(position)
	b.Has(position)
	b.Has(velocity)

	cache := newQueryCache()
	qa := &Query{mask: a}
	qb := &Query{mask: b}

	assert.Equal(t, 0, cache.Register(qa))
	assert.Equal(t, 1, cache.Register(qb))
	assert.Equal(t, 2, cache.Len())

	idx, found := cache.GetIndex(b)
	require.True(t, found)
	assert.Same(t, qb, cache.GetItem(idx))

	var missing Mask
	missing.Not(position)
	_, found = cache.GetIndex(missing)
	assert.False(t, found)
}

// TestQueryCacheCollisions forces two masks into one hash bucket and checks
// that lookups still tell them apart.
func TestQueryCacheCollisions(t *testing.T) {
	sto := newTestStorage(t)
	position := TypeFor[Position](sto)
	frozen := TypeFor[Frozen](sto)

	var a, b Mask
	a.Has(position)
	a.Not(frozen)
	b.Has(position)
	b.Any(frozen)

	cache := newQueryCache()
	qa := &Query{mask: a}
	qb := &Query{mask: b}
	cache.Register(qa)
	cache.Register(qb)
	cache.itemIndices = map[uint64][]int{
		a.Hash(): {0, 1},
		b.Hash(): {0, 1},
	}

	idx, found := cache.GetIndex(a)
	require.True(t, found)
	assert.Same(t, qa, cache.GetItem(idx))

	idx, found = cache.GetIndex(b)
	require.True(t, found)
	assert.Same(t, qb, cache.GetItem(idx))
}
