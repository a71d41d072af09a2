package stockroom

import (
	"math"
	"strconv"
)

// Identity is an opaque handle to a storage slot.
// Number 0 is reserved for None.
type Identity struct {
	Number     uint32
	Generation uint32
}

var (
	// None is the zero identity; no slot ever carries it.
	None = Identity{}
	// Wildcard matches any target in relationship lookups layered on top of
	// the storage. It is never issued to a live slot.
	Wildcard = Identity{Number: math.MaxUint32}
)

func (id Identity) IsNone() bool {
	return id == None
}

func (id Identity) IsWildcard() bool {
	return id == Wildcard
}

func (id Identity) String() string {
	return strconv.FormatUint(uint64(id.Number), 10) + "v" + strconv.FormatUint(uint64(id.Generation), 10)
}
