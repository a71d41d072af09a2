package stockroom

import (
	"cmp"
	"slices"

	"github.com/TheBitDrifter/mask"
)

// Mask is a boolean predicate over component types. An entity satisfies it
// when it holds every Has type, none of the Not types, and at least one Any
// type if any are listed.
type Mask struct {
	has, not, any                mask.Mask
	hasTypes, notTypes, anyTypes []ComponentType
}

func (m *Mask) Has(ct ComponentType) {
	m.hasTypes = insertType(&m.has, m.hasTypes, ct)
}

func (m *Mask) Not(ct ComponentType) {
	m.notTypes = insertType(&m.not, m.notTypes, ct)
}

func (m *Mask) Any(ct ComponentType) {
	m.anyTypes = insertType(&m.any, m.anyTypes, ct)
}

func (m Mask) HasTypes() []ComponentType { return slices.Clone(m.hasTypes) }
func (m Mask) NotTypes() []ComponentType { return slices.Clone(m.notTypes) }
func (m Mask) AnyTypes() []ComponentType { return slices.Clone(m.anyTypes) }

// Matches tests an attached-type set against the mask.
func (m Mask) Matches(set mask.Mask) bool {
	if !set.ContainsAll(m.has) {
		return false
	}
	if len(m.notTypes) > 0 && !set.ContainsNone(m.not) {
		return false
	}
	if len(m.anyTypes) > 0 && !set.ContainsAny(m.any) {
		return false
	}
	return true
}

// Equal reports whether both masks describe the same three type sets.
func (m Mask) Equal(other Mask) bool {
	return m.has == other.has && m.not == other.not && m.any == other.any
}

const (
	hasSalt uint64 = 0x9e3779b97f4a7c15
	notSalt uint64 = 0xc2b2ae3d27d4eb4f
	anySalt uint64 = 0x165667b19e3779f9
)

// Hash folds each set with a commutative sum over a strong mixer, so equal
// sets hash equally regardless of insertion order.
func (m Mask) Hash() uint64 {
	h := uint64(len(m.hasTypes))<<42 ^ uint64(len(m.notTypes))<<21 ^ uint64(len(m.anyTypes))
	for _, ct := range m.hasTypes {
		h += mix64(hasSalt ^ uint64(ct.id))
	}
	for _, ct := range m.notTypes {
		h += mix64(notSalt ^ uint64(ct.id))
	}
	for _, ct := range m.anyTypes {
		h += mix64(anySalt ^ uint64(ct.id))
	}
	return mix64(h)
}

// involves reports whether ct appears in any of the three sets, and whether
// it is a required type.
func (m Mask) involves(ct ComponentType) (involved, required bool) {
	if containsType(m.hasTypes, ct) {
		return true, true
	}
	return containsType(m.notTypes, ct) || containsType(m.anyTypes, ct), false
}

func (m Mask) clone() Mask {
	m.hasTypes = slices.Clone(m.hasTypes)
	m.notTypes = slices.Clone(m.notTypes)
	m.anyTypes = slices.Clone(m.anyTypes)
	return m
}

// indexTypes lists every type a change to which can flip the mask's verdict.
func (m Mask) indexTypes() []ComponentType {
	out := make([]ComponentType, 0, len(m.hasTypes)+len(m.notTypes)+len(m.anyTypes))
	for _, set := range [][]ComponentType{m.hasTypes, m.notTypes, m.anyTypes} {
		for _, ct := range set {
			if !slices.ContainsFunc(out, func(seen ComponentType) bool { return seen.id == ct.id }) {
				out = append(out, ct)
			}
		}
	}
	return out
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

func compareTypeID(ct ComponentType, id uint32) int {
	return cmp.Compare(ct.id, id)
}

func containsType(types []ComponentType, ct ComponentType) bool {
	_, found := slices.BinarySearchFunc(types, ct.id, compareTypeID)
	return found
}

func insertType(set *mask.Mask, types []ComponentType, ct ComponentType) []ComponentType {
	i, found := slices.BinarySearchFunc(types, ct.id, compareTypeID)
	if found {
		return types
	}
	set.Mark(ct.bit)
	return slices.Insert(slices.Clip(types), i, ct)
}
