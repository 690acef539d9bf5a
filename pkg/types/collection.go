package types

import "iter"

// Collection is an ordered, key-addressable container whose values all
// satisfy one declared ValueType. Every insertion path validates its value
// and fails with a *TypeMismatchError when the value is rejected.
//
// Implementations are not safe for concurrent use. Callers sharing a
// Collection between goroutines must serialize access themselves.
type Collection interface {
	// Add appends value under the next integer index.
	Add(value any) error

	// Set stores value under key, inserting the key or overwriting it in
	// place. It never fails because the key is absent.
	Set(key Key, value any) error

	// Remove deletes the entry under key.
	// Returns *IndexNotFoundError if the key is absent.
	Remove(key Key) error

	// Get returns the value under key.
	// Returns *IndexNotFoundError if the key is absent.
	Get(key Key) (any, error)

	// Exists reports whether key is present.
	Exists(key Key) bool

	// First and Last return the earliest and latest surviving entries
	// without removing them. Both report false on an empty collection.
	First() (any, bool)
	Last() (any, bool)

	// PopLast removes and returns the latest entry. ShiftFirst removes and
	// returns the earliest entry and renumbers the remaining integer keys
	// from zero. Both report false on an empty collection.
	PopLast() (any, bool)
	ShiftFirst() (any, bool)

	// Count returns the number of entries.
	Count() int

	// ToArray converts the collection to a plain Array, flattening
	// Arrayable elements of non-basic collections.
	ToArray() Array

	// IsValidType reports whether value would be accepted by Add or Set.
	IsValidType(value any) bool

	// Clear removes every entry. The value type is unaffected.
	Clear()

	// ChangeKey moves the value under oldKey to newKey. oldKey may equal
	// newKey. Returns *IndexNotFoundError if oldKey is absent.
	ChangeKey(oldKey, newKey Key) error

	// ChangeMultipleKeys applies ChangeKey for each change in order and
	// stops at the first error. Changes applied before the error remain.
	ChangeMultipleKeys(changes []KeyChange) error

	// All yields the entries present when All is called, in order.
	All() iter.Seq2[Key, any]
}
