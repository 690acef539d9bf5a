package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry is one key/value pair of an Array.
type Entry struct {
	Key   Key
	Value any
}

// Array is the plain, ordered structure a collection converts to. Entries keep
// the order and keys of the source collection. Values are either plain Go
// values or nested Arrays.
type Array []Entry

// Arrayable is implemented by values that can convert themselves to an Array.
// Collections of non-basic types use it to flatten their elements.
type Arrayable interface {
	ToArray() Array
}

// Len returns the number of entries.
func (a Array) Len() int {
	return len(a)
}

// Keys returns the keys in order.
func (a Array) Keys() []Key {
	keys := make([]Key, len(a))
	for i, e := range a {
		keys[i] = e.Key
	}
	return keys
}

// Values returns the values in order.
func (a Array) Values() []any {
	values := make([]any, len(a))
	for i, e := range a {
		values[i] = e.Value
	}
	return values
}

// Get returns the value stored under k.
func (a Array) Get(k Key) (any, bool) {
	for _, e := range a {
		if e.Key == k {
			return e.Value, true
		}
	}
	return nil, false
}

// IsList reports whether the keys are exactly 0..n-1 in order. An empty
// Array is a list.
func (a Array) IsList() bool {
	for i, e := range a {
		if n, ok := e.Key.Int(); !ok || n != i {
			return false
		}
	}
	return true
}

// MarshalJSON encodes a list as a JSON array and any other Array as a JSON
// object whose members follow entry order.
func (a Array) MarshalJSON() ([]byte, error) {
	if a.IsList() {
		values := a.Values()
		return json.Marshal(values)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key.String())
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal value at %s: %w", e.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes a list as a YAML sequence and any other Array as a
// mapping whose pairs follow entry order.
func (a Array) MarshalYAML() (any, error) {
	if a.IsList() {
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range a {
			valueNode := &yaml.Node{}
			if err := valueNode.Encode(e.Value); err != nil {
				return nil, fmt.Errorf("encode value at %s: %w", e.Key, err)
			}
			node.Content = append(node.Content, valueNode)
		}
		return node, nil
	}

	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range a {
		keyNode := &yaml.Node{}
		var err error
		if n, ok := e.Key.Int(); ok {
			err = keyNode.Encode(n)
		} else {
			err = keyNode.Encode(e.Key.String())
		}
		if err != nil {
			return nil, fmt.Errorf("encode key %s: %w", e.Key, err)
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(e.Value); err != nil {
			return nil, fmt.Errorf("encode value at %s: %w", e.Key, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}
