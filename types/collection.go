// SPDX-License-Identifier: MIT
package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

type (
	// Collection is a flat collection of Records keyed by identifier.
	//
	// Insertion order is retained; overwriting a key keeps its original position. The zero value
	// is ready for use.
	Collection struct {
		keys    []string
		entries map[string]Record
	}
)

const collectionReadErrFmt = "read collection: %w"

// Collection errors.
var (
	ErrInvalidType = errors.New("invalid data type")
)

// NewCollection instantiates a Collection.
func NewCollection(capacity int) *Collection {
	return &Collection{
		keys:    make([]string, 0, capacity),
		entries: make(map[string]Record, capacity),
	}
}

// FromMap instantiates a Collection from a map, ordering its entries by key.
//
// Go maps lack an iteration order, sorting the keys keeps the result deterministic.
func FromMap(src map[string]Record) *Collection {
	keys := maps.Keys(src)
	slices.Sort(keys)

	c := NewCollection(len(keys))
	for _, key := range keys {
		c.Set(key, src[key])
	}

	return c
}

// Set a Record under key.
func (c *Collection) Set(key string, rec Record) {
	if c.entries == nil {
		c.entries = make(map[string]Record)
	}

	if _, ok := c.entries[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.entries[key] = rec
}

// Get the Record stored under key.
func (c *Collection) Get(key string) (rec Record, ok bool) {
	if c == nil {
		return
	}

	rec, ok = c.entries[key]
	return
}

// Has checks for the existence of key.
func (c *Collection) Has(key string) (ok bool) {
	_, ok = c.Get(key)
	return
}

// Delete the Record stored under key.
func (c *Collection) Delete(key string) {
	if !c.Has(key) {
		return
	}

	delete(c.entries, key)
	if index := slices.Index(c.keys, key); index > -1 {
		c.keys = slices.Delete(c.keys, index, index+1)
	}
}

// Len is the number of entries in the Collection.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}

	return len(c.keys)
}

// Keys lists the Collection's keys in insertion order.
func (c *Collection) Keys() []string {
	if c == nil {
		return []string{}
	}

	return slices.Clone(c.keys)
}

// Range calls fn for every entry in insertion order, stopping when fn returns false.
func (c *Collection) Range(fn func(key string, rec Record) bool) {
	if c == nil {
		return
	}

	for _, key := range c.keys {
		if !fn(key, c.entries[key]) {
			return
		}
	}
}

// Map copies the Collection's entries into an (unordered) map.
func (c *Collection) Map() map[string]Record {
	out := make(map[string]Record, c.Len())
	c.Range(func(key string, rec Record) bool {
		out[key] = rec
		return true
	})

	return out
}

// MarshalJSON encodes the Collection as a JSON object retaining the entry order.
func (c *Collection) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')

	var err error
	c.Range(func(key string, rec Record) bool {
		if buffer.Len() > 1 {
			buffer.WriteByte(',')
		}

		var encoded []byte
		if encoded, err = json.Marshal(key); err != nil {
			return false
		}
		buffer.Write(encoded)
		buffer.WriteByte(':')

		if encoded, err = json.Marshal(rec); err != nil {
			err = fmt.Errorf("(%s): %w", key, err)
			return false
		}
		buffer.Write(encoded)

		return true
	})
	if err != nil {
		return nil, err
	}
	buffer.WriteByte('}')

	return buffer.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the Collection, retaining the order of its members.
//
// Numbers are decoded as json.Number.
func (c *Collection) UnmarshalJSON(data []byte) (err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tok json.Token
	if tok, err = dec.Token(); err != nil {
		return fmt.Errorf(collectionReadErrFmt, err)
	}
	if tok == nil {
		*c = Collection{}
		return
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf(collectionReadErrFmt, ErrInvalidType)
	}

	out := NewCollection(0)
	for dec.More() {
		if tok, err = dec.Token(); err != nil {
			return fmt.Errorf(collectionReadErrFmt, err)
		}
		key, _ := tok.(string)

		var rec Record
		if err = dec.Decode(&rec); err != nil {
			return fmt.Errorf("read collection entry (%s): %w", key, err)
		}
		out.Set(key, rec)
	}
	if _, err = dec.Token(); err != nil {
		return fmt.Errorf(collectionReadErrFmt, err)
	}
	*c = *out

	return
}

// MarshalYAML encodes the Collection as a YAML mapping retaining the entry order.
func (c *Collection) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	var err error
	c.Range(func(key string, rec Record) bool {
		value := new(yaml.Node)
		if err = value.Encode(YAMLValue(rec)); err != nil {
			err = fmt.Errorf("(%s): %w", key, err)
			return false
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			value,
		)

		return true
	})
	if err != nil {
		return nil, err
	}

	return node, nil
}

// YAMLValue prepares a decoded value for YAML encoding.
//
// json.Number values are converted to int64 or float64 so they aren't emitted as quoted strings.
func YAMLValue(val any) any {
	switch v := val.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case Record:
		return yamlMap(v)
	case map[string]any:
		return yamlMap(v)
	case []Record:
		out := make([]any, len(v))
		for index := range v {
			out[index] = YAMLValue(v[index])
		}
		return out
	case []any:
		out := make([]any, len(v))
		for index := range v {
			out[index] = YAMLValue(v[index])
		}
		return out
	}

	return val
}

func yamlMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	out := make(map[string]any, len(src))
	for key, val := range src {
		out[key] = YAMLValue(val)
	}

	return out
}
