package stockroom

var _ iCursor = &Cursor{}

// Cursor walks a query's matches while holding the storage lock. A Cursor
// must come from Query.Enumerate; the zero value panics with
// InvalidEnumeratorError.
type Cursor struct {
	query   *Query
	index   int
	current Identity
	locked  bool
}

func newCursor(q *Query) *Cursor {
	q.sto.Lock()
	return &Cursor{
		query:  q,
		index:  -1,
		locked: true,
	}
}

func (c *Cursor) Next() bool {
	c.mustBeAttached()
	if c.index+1 >= len(c.query.members.matches) {
		c.index = len(c.query.members.matches)
		c.current = None
		return false
	}
	c.index++
	c.current = c.query.members.matches[c.index]
	return true
}

func (c *Cursor) Current() Identity {
	c.mustBeAttached()
	return c.current
}

// Values projects the current match through the query's cached columns: one
// pointer per non-tag Has type, in type id order.
func (c *Cursor) Values() []any {
	c.mustBeAttached()
	if c.current.IsNone() {
		return nil
	}
	values := make([]any, len(c.query.columns))
	for i, col := range c.query.columns {
		values[i] = col.ptr(c.current.Number)
	}
	return values
}

// Reset rewinds the cursor, taking the lock again if it was closed.
func (c *Cursor) Reset() {
	c.mustBeAttached()
	if !c.locked {
		c.query.sto.Lock()
		c.locked = true
	}
	c.index = -1
	c.current = None
}

// Close releases the cursor's lock. Deferred writes replay if this was the
// last lock; their failures are returned.
func (c *Cursor) Close() error {
	c.mustBeAttached()
	if !c.locked {
		return nil
	}
	c.locked = false
	c.current = None
	return c.query.sto.Unlock()
}

func (c *Cursor) RemainingMatches() int {
	c.mustBeAttached()
	return max(len(c.query.members.matches)-c.index-1, 0)
}

func (c *Cursor) mustBeAttached() {
	if c == nil || c.query == nil {
		panic(InvalidEnumeratorError{})
	}
}
