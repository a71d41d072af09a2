package stockroom

import (
	"fmt"
	"reflect"
)

type DuplicateComponentError struct {
	Component ComponentType
	Entity    Identity
}

func (e DuplicateComponentError) Error() string {
	return fmt.Sprintf("component already exists on entity %v: %v", e.Entity, e.Component)
}

// InvalidEnumeratorError is the panic value raised when a cursor is used
// without a query attached.
type InvalidEnumeratorError struct{}

func (e InvalidEnumeratorError) Error() string {
	return "invalid enumerator: cursor has no query attached"
}

type PayloadTypeError struct {
	Type ComponentType
	Got  reflect.Type
}

func (e PayloadTypeError) Error() string {
	return fmt.Sprintf("payload of type %v does not fit component %v", e.Got, e.Type)
}

type TypeLimitError struct {
	Type reflect.Type
}

func (e TypeLimitError) Error() string {
	return fmt.Sprintf("cannot register %v: storage already holds %d component types", e.Type, MaxComponentTypes)
}

type UnregisteredComponentError struct {
	Type reflect.Type
}

func (e UnregisteredComponentError) Error() string {
	return fmt.Sprintf("component %v is not registered with this storage", e.Type)
}
