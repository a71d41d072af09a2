package stockroom

// queryCache holds every query a storage has materialized. Queries are
// bucketed by mask hash and told apart by exact mask equality, so colliding
// masks never share a query.
type queryCache struct {
	items       []*Query
	itemIndices map[uint64][]int
}

func newQueryCache() queryCache {
	return queryCache{
		itemIndices: make(map[uint64][]int),
	}
}

func (c *queryCache) GetIndex(m Mask) (int, bool) {
	for _, idx := range c.itemIndices[m.Hash()] {
		if c.items[idx].mask.Equal(m) {
			return idx, true
		}
	}
	return -1, false
}

func (c *queryCache) GetItem(index int) *Query {
	return c.items[index]
}

func (c *queryCache) Register(q *Query) int {
	idx := len(c.items)
	hash := q.mask.Hash()
	c.itemIndices[hash] = append(c.itemIndices[hash], idx)
	c.items = append(c.items, q)
	return idx
}

func (c *queryCache) Len() int {
	return len(c.items)
}
