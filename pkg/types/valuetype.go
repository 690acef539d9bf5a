package types

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Predicate reports whether a value belongs to a basic kind.
type Predicate func(v any) bool

// ValueType describes what a collection accepts. It is either a basic kind,
// validated by a fixed predicate, or a required Go type, validated by
// assignability. A ValueType is immutable once built.
type ValueType struct {
	name      string
	predicate Predicate
	required  reflect.Type
}

// Name returns the name the value type was declared with.
func (vt ValueType) Name() string {
	return vt.name
}

// IsBasic reports whether vt is a basic kind.
func (vt ValueType) IsBasic() bool {
	return vt.predicate != nil
}

// Type returns the required Go type, or nil for a basic kind.
func (vt ValueType) Type() reflect.Type {
	return vt.required
}

// IsZero reports whether vt was never initialized.
func (vt ValueType) IsZero() bool {
	return vt.predicate == nil && vt.required == nil
}

// Accepts reports whether v satisfies vt. For a basic kind this is the kind's
// predicate. For a required type, v must be non-nil and its dynamic type must
// be assignable to the required type: the same concrete type, or any type
// implementing a required interface. A typed nil pointer, map, slice, func,
// or chan is not an instance of any type.
func (vt ValueType) Accepts(v any) bool {
	if vt.predicate != nil {
		return vt.predicate(v)
	}
	if vt.required == nil || v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if rv.IsNil() {
			return false
		}
	}
	return rv.Type().AssignableTo(vt.required)
}

func (vt ValueType) String() string {
	return vt.name
}

// Kind returns the registered basic kind called name.
func Kind(name string) (ValueType, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	p, ok := registry.kinds[name]
	if !ok {
		return ValueType{}, false
	}
	return ValueType{name: name, predicate: p}, true
}

// TypeOf returns a ValueType requiring values assignable to T. When T is an
// interface, any implementation is accepted.
func TypeOf[T any]() ValueType {
	t := reflect.TypeFor[T]()
	return ValueType{name: t.String(), required: t}
}

// ParseValueType resolves name to a ValueType. Basic kinds take precedence
// over registered types. Returns ErrUnknownValueType when name is neither.
func ParseValueType(name string) (ValueType, error) {
	if vt, ok := Kind(name); ok {
		return vt, nil
	}
	registry.mu.RLock()
	t, ok := registry.types[name]
	registry.mu.RUnlock()
	if ok {
		return ValueType{name: name, required: t}, nil
	}
	return ValueType{}, fmt.Errorf("%w: %q", ErrUnknownValueType, name)
}

// RegisterKind adds a basic kind. Returns ErrInvalidKind if name is empty,
// predicate is nil, or the name is already taken by a kind or a type.
func RegisterKind(name string, predicate Predicate) error {
	if name == "" || predicate == nil {
		return ErrInvalidKind
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.taken(name) {
		return fmt.Errorf("%w: %q already registered", ErrInvalidKind, name)
	}
	registry.kinds[name] = predicate
	return nil
}

// RegisterType binds name to the Go type T so ParseValueType can resolve it.
func RegisterType[T any](name string) error {
	return RegisterReflectType(name, reflect.TypeFor[T]())
}

// RegisterReflectType binds name to t. Returns ErrInvalidKind if name is
// empty, t is nil, or the name is already taken.
func RegisterReflectType(name string, t reflect.Type) error {
	if name == "" || t == nil {
		return ErrInvalidKind
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.taken(name) {
		return fmt.Errorf("%w: %q already registered", ErrInvalidKind, name)
	}
	registry.types[name] = t
	return nil
}

// Kinds returns the names of all registered basic kinds, sorted.
func Kinds() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.kinds))
	for name := range registry.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// kindRegistry holds the process-wide kind and type tables. Unlike
// collections, it is safe for concurrent use.
type kindRegistry struct {
	mu    sync.RWMutex
	kinds map[string]Predicate
	types map[string]reflect.Type
}

var registry = &kindRegistry{
	kinds: defaultKinds(),
	types: map[string]reflect.Type{},
}

// taken must be called with mu held.
func (r *kindRegistry) taken(name string) bool {
	_, isKind := r.kinds[name]
	_, isType := r.types[name]
	return isKind || isType
}
