// Package collection implements types.Collection with TypedCollection, an
// insertion-ordered container that validates every inserted value against a
// declared types.ValueType.
package collection

import (
	"iter"
	"reflect"
	"slices"

	"github.com/mesh-intelligence/collection/pkg/types"
)

// Version is the release of the collection module.
const Version = "0.3.0"

var _ types.Collection = (*TypedCollection)(nil)

// TypedCollection stores values of one declared type under integer or string
// keys, in insertion order.
//
// A TypedCollection is not safe for concurrent use. Values are stored as
// given, not copied: a caller that mutates a stored map, slice, or pointer
// after insertion can leave a value that no longer satisfies the declared
// type.
type TypedCollection struct {
	valueType types.ValueType
	keys      []types.Key
	values    map[types.Key]any

	// next is the index Add assigns. It stays above every integer key
	// written since the last Clear or ShiftFirst.
	next int
}

// New creates a collection of valueType and adds items in order. It fails
// with *types.TypeMismatchError on the first item that valueType rejects.
func New(valueType types.ValueType, items ...any) (*TypedCollection, error) {
	if valueType.IsZero() {
		return nil, types.ErrUnknownValueType
	}
	c := &TypedCollection{
		valueType: valueType,
		values:    make(map[types.Key]any, len(items)),
	}
	if err := c.SetItems(items...); err != nil {
		return nil, err
	}
	return c, nil
}

// NewNamed resolves name with types.ParseValueType and calls New.
func NewNamed(name string, items ...any) (*TypedCollection, error) {
	vt, err := types.ParseValueType(name)
	if err != nil {
		return nil, err
	}
	return New(vt, items...)
}

// SetItems adds items in order, stopping at the first rejected value.
// Items added before the failure stay in the collection.
func (c *TypedCollection) SetItems(items ...any) error {
	for _, item := range items {
		if err := c.Add(item); err != nil {
			return err
		}
	}
	return nil
}

// ValueType returns the declared value type.
func (c *TypedCollection) ValueType() types.ValueType {
	return c.valueType
}

// IsBasicType reports whether the declared type is a basic kind.
func (c *TypedCollection) IsBasicType() bool {
	return c.valueType.IsBasic()
}

// IsValidType reports whether value satisfies the declared type.
func (c *TypedCollection) IsValidType(value any) bool {
	return c.valueType.Accepts(value)
}

func (c *TypedCollection) mismatch(value any) error {
	return &types.TypeMismatchError{
		Expected: c.valueType.Name(),
		Actual:   typeName(value),
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// Add appends value under the next integer index.
func (c *TypedCollection) Add(value any) error {
	if !c.IsValidType(value) {
		return c.mismatch(value)
	}
	c.put(types.IntKey(c.next), value)
	return nil
}

// Set stores value under key. An existing key keeps its position.
func (c *TypedCollection) Set(key types.Key, value any) error {
	if !c.IsValidType(value) {
		return c.mismatch(value)
	}
	c.put(key, value)
	return nil
}

func (c *TypedCollection) put(key types.Key, value any) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
	if n, ok := key.Int(); ok && n >= c.next {
		c.next = n + 1
	}
}

// Remove deletes the entry under key.
func (c *TypedCollection) Remove(key types.Key) error {
	if _, ok := c.values[key]; !ok {
		return &types.IndexNotFoundError{Key: key}
	}
	delete(c.values, key)
	c.keys = slices.DeleteFunc(c.keys, func(k types.Key) bool { return k == key })
	return nil
}

// Get returns the value under key.
func (c *TypedCollection) Get(key types.Key) (any, error) {
	v, ok := c.values[key]
	if !ok {
		return nil, &types.IndexNotFoundError{Key: key}
	}
	return v, nil
}

// Exists reports whether key is present.
func (c *TypedCollection) Exists(key types.Key) bool {
	_, ok := c.values[key]
	return ok
}

// Count returns the number of entries.
func (c *TypedCollection) Count() int {
	return len(c.keys)
}

// Clear removes all entries and restarts indexing at zero.
func (c *TypedCollection) Clear() {
	c.keys = nil
	c.values = make(map[types.Key]any)
	c.next = 0
}

// First returns the earliest entry without removing it.
func (c *TypedCollection) First() (any, bool) {
	if len(c.keys) == 0 {
		return nil, false
	}
	return c.values[c.keys[0]], true
}

// Last returns the latest entry without removing it.
func (c *TypedCollection) Last() (any, bool) {
	if len(c.keys) == 0 {
		return nil, false
	}
	return c.values[c.keys[len(c.keys)-1]], true
}

// PopLast removes and returns the latest entry. Popping the highest
// appended index lets the next Add reuse it.
func (c *TypedCollection) PopLast() (any, bool) {
	if len(c.keys) == 0 {
		return nil, false
	}
	key := c.keys[len(c.keys)-1]
	value := c.values[key]
	c.keys = c.keys[:len(c.keys)-1]
	delete(c.values, key)
	if n, ok := key.Int(); ok && n == c.next-1 {
		c.next--
	}
	return value, true
}

// ShiftFirst removes and returns the earliest entry. Remaining integer keys
// are renumbered 0, 1, 2... in order; string keys are kept.
func (c *TypedCollection) ShiftFirst() (any, bool) {
	if len(c.keys) == 0 {
		return nil, false
	}
	first := c.keys[0]
	value := c.values[first]

	rest := c.keys[1:]
	keys := make([]types.Key, 0, len(rest))
	values := make(map[types.Key]any, len(rest))
	next := 0
	for _, k := range rest {
		v := c.values[k]
		if k.IsInt() {
			k = types.IntKey(next)
			next++
		}
		keys = append(keys, k)
		values[k] = v
	}
	c.keys, c.values, c.next = keys, values, next
	return value, true
}

// ToArray returns the entries as a plain Array. In a collection of a
// non-basic type, elements implementing types.Arrayable are replaced by
// their own conversion; other elements are kept as they are.
func (c *TypedCollection) ToArray() types.Array {
	out := make(types.Array, 0, len(c.keys))
	basic := c.IsBasicType()
	for _, k := range c.keys {
		v := c.values[k]
		if !basic {
			if a, ok := v.(types.Arrayable); ok {
				v = a.ToArray()
			}
		}
		out = append(out, types.Entry{Key: k, Value: v})
	}
	return out
}

// All yields a snapshot of the entries taken when All is called.
func (c *TypedCollection) All() iter.Seq2[types.Key, any] {
	keys := slices.Clone(c.keys)
	values := make([]any, len(keys))
	for i, k := range keys {
		values[i] = c.values[k]
	}
	return func(yield func(types.Key, any) bool) {
		for i, k := range keys {
			if !yield(k, values[i]) {
				return
			}
		}
	}
}

// ChangeKey moves the value under oldKey to newKey. The value is read before
// oldKey is removed, so oldKey may equal newKey. The moved entry goes to the
// end of the order unless newKey already exists, in which case newKey's
// value is overwritten in place.
func (c *TypedCollection) ChangeKey(oldKey, newKey types.Key) error {
	value, err := c.Get(oldKey)
	if err != nil {
		return err
	}
	if err := c.Remove(oldKey); err != nil {
		return err
	}
	return c.Set(newKey, value)
}

// ChangeMultipleKeys applies ChangeKey for each change in order. It stops at
// the first error and does not undo changes already applied.
func (c *TypedCollection) ChangeMultipleKeys(changes []types.KeyChange) error {
	for _, ch := range changes {
		if err := c.ChangeKey(ch.Old, ch.New); err != nil {
			return err
		}
	}
	return nil
}
