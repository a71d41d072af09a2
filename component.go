package stockroom

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// MaxComponentTypes is the number of distinct component types a single
// storage can register, the identity marker included. It is the width of the
// component mask, so building with the m256, m512 or m1024 tag raises it.
const MaxComponentTypes = mask.MaxBits

// Component names a component type. ComponentType and AccessibleComponent
// both satisfy it, so either can be handed to builders and the primitive
// storage surface.
type Component interface {
	ComponentType() ComponentType
}

// ComponentType describes one registered component shape. Descriptors are
// ordered and compared by ID only.
type ComponentType struct {
	id   uint32
	bit  uint32
	typ  reflect.Type
	tag  bool
	elem table.ElementType
}

func (c ComponentType) ComponentType() ComponentType {
	return c
}

// ID is the stable numeric id assigned on first registration. Ids start at 1
// and are never reclaimed.
func (c ComponentType) ID() uint32 {
	return c.id
}

func (c ComponentType) Type() reflect.Type {
	return c.typ
}

// IsTag reports whether the component carries no instance data. Tags are
// recorded in slot metadata but own no column.
func (c ComponentType) IsTag() bool {
	return c.tag
}

// ElementType is the table element descriptor for the component's Go type.
// It is shared by every storage in the process.
func (c ComponentType) ElementType() table.ElementType {
	return c.elem
}

func (c ComponentType) Valid() bool {
	return c.id != 0
}

func (c ComponentType) String() string {
	if c.typ == nil {
		return fmt.Sprintf("%d <unregistered>", c.id)
	}
	return fmt.Sprintf("%d %s", c.id, c.typ.Name())
}

// TypeFor returns the descriptor for T in sto, registering it on first use.
func TypeFor[T any](sto Storage) ComponentType {
	return registerType[T](sto.(*storage).types)
}

type registeredType struct {
	ComponentType
	newColumn func(capacity int) column
}

// elementTypes holds one table element type per Go type. table numbers
// element types from a process-wide counter, so they are created once and
// shared rather than minted per storage.
var elementTypes sync.Map

func elementTypeFor[T any](typ reflect.Type) table.ElementType {
	if elem, ok := elementTypes.Load(typ); ok {
		return elem.(table.ElementType)
	}
	elem, _ := elementTypes.LoadOrStore(typ, table.FactoryNewElementType[T]())
	return elem.(table.ElementType)
}

// typeRegistry is owned by one storage. Ids and mask bits are local to it:
// the type with id n owns bit n-1.
type typeRegistry struct {
	byType  map[reflect.Type]*registeredType
	ordered []*registeredType
}

func newTypeRegistry() *typeRegistry {
	return &typeRegistry{
		byType: make(map[reflect.Type]*registeredType),
	}
}

func registerType[T any](r *typeRegistry) ComponentType {
	typ := reflect.TypeFor[T]()
	if rt, ok := r.byType[typ]; ok {
		return rt.ComponentType
	}
	if len(r.ordered) >= MaxComponentTypes {
		panic(TypeLimitError{Type: typ})
	}

	id := uint32(len(r.ordered)) + 1
	rt := &registeredType{
		ComponentType: ComponentType{
			id:   id,
			bit:  id - 1,
			typ:  typ,
			tag:  typ.Size() == 0,
			elem: elementTypeFor[T](typ),
		},
	}
	rt.newColumn = func(capacity int) column {
		return newColumn[T](rt.ComponentType, capacity)
	}
	r.byType[typ] = rt
	r.ordered = append(r.ordered, rt)
	return rt.ComponentType
}

func (r *typeRegistry) lookup(typ reflect.Type) (ComponentType, bool) {
	rt, ok := r.byType[typ]
	if !ok {
		return ComponentType{}, false
	}
	return rt.ComponentType, true
}

// resolve maps a descriptor, possibly issued by another storage, onto this
// registry's entry for the same Go type.
func (r *typeRegistry) resolve(c Component) *registeredType {
	rt, ok := r.tryResolve(c)
	if !ok {
		panic(UnregisteredComponentError{Type: c.ComponentType().typ})
	}
	return rt
}

func (r *typeRegistry) tryResolve(c Component) (*registeredType, bool) {
	ct := c.ComponentType()
	if ct.id != 0 && int(ct.id) <= len(r.ordered) {
		if rt := r.ordered[ct.id-1]; rt.typ == ct.typ {
			return rt, true
		}
	}
	rt, ok := r.byType[ct.typ]
	return rt, ok
}

func (r *typeRegistry) len() int {
	return len(r.ordered)
}
