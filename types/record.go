// SPDX-License-Identifier: MIT
package types

import (
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/exp/maps"
)

type (
	// Record holds a single entity of unknown shape.
	//
	// Only the identifier, parent & children fields are interpreted; their names are supplied by
	// the caller.
	Record map[string]any
)

// Get a value from the Record.
//
// A nil value is reported as missing.
func (r Record) Get(key string) (out any, ok bool) {
	if out = r[key]; out != nil {
		ok = true
	}

	return
}

// GetString obtains a string value from the Record, values of other types are reported as
// missing.
func (r Record) GetString(key string) (strVal string, ok bool) {
	strVal, ok = r[key].(string)
	return
}

// Clone performs a shallow copy of the Record.
//
// A nil Record yields an empty one.
func (r Record) Clone() Record {
	if r == nil {
		return make(Record)
	}

	return maps.Clone(r)
}

// Children obtains the nested Records held under key.
//
// `[]Record`, `[]map[string]any` & `[]any` (of either) are understood; elements that aren't
// records are returned as nil entries so the caller can skip them. Any other value is treated as
// the lack of children.
func (r Record) Children(key string) (children []Record, ok bool) {
	switch val := r[key].(type) {
	case []Record:
		children, ok = val, true
	case []map[string]any:
		children = make([]Record, len(val))
		for index := range val {
			children[index] = val[index]
		}
		ok = true
	case []any:
		children = make([]Record, len(val))
		for index := range val {
			children[index] = AsRecord(val[index])
		}
		ok = true
	}

	return
}

// IDString obtains the string form of the value held under key.
//
// An absent or nil value yields an empty string.
func (r Record) IDString(key string) string { return StringOf(r[key]) }

// AsRecord converts a value to a Record, returning nil if it isn't one.
func AsRecord(val any) Record {
	switch v := val.(type) {
	case Record:
		return v
	case map[string]any:
		return v
	}

	return nil
}

// StringOf renders a field value in its string form.
func StringOf(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	}

	return fmt.Sprint(val)
}
