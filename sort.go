// SPDX-License-Identifier: MIT
package maptree

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
	"golang.org/x/text/collate"

	"gitlab.com/fisherprime/maptree/types"
)

type (
	// Comparator orders two sibling nodes, returning a negative number when a sorts before b, a
	// positive one when it sorts after & 0 otherwise.
	Comparator func(a, b types.Record) int

	// SortSpec selects how siblings are sorted by [BuildTree].
	//
	// The zero value disables sorting.
	SortSpec struct {
		kind  sortKind
		field string
		cmp   Comparator
	}

	sortKind int

	// Order is the direction siblings are sorted in.
	Order string
)

const (
	sortNone sortKind = iota
	sortByField
	sortByComparator
)

// Sort orders.
const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// NoSort keeps siblings in their insertion order.
func NoSort() SortSpec { return SortSpec{} }

// ByField sorts siblings by the value of a field.
//
// Missing or nil values sort first, numbers are compared arithmetically & everything else is
// compared by the locale-aware ordering of its string form.
func ByField(name string) SortSpec { return SortSpec{kind: sortByField, field: name} }

// ByComparator sorts siblings using cmp verbatim.
func ByComparator(cmp Comparator) SortSpec { return SortSpec{kind: sortByComparator, cmp: cmp} }

// IsZero reports whether the SortSpec disables sorting.
func (s SortSpec) IsZero() bool { return s.kind == sortNone }

// Field obtains the field a ByField SortSpec compares.
func (s SortSpec) Field() string { return s.field }

func (s SortSpec) String() string {
	switch s.kind {
	case sortByField:
		return fmt.Sprintf("by field (%s)", s.field)
	case sortByComparator:
		return "by comparator"
	}

	return "none"
}

func (s SortSpec) validate() error {
	switch s.kind {
	case sortNone:
	case sortByField:
		if s.field == "" {
			return fmt.Errorf("%w: empty field name", ErrInvalidSort)
		}
	case sortByComparator:
		if s.cmp == nil {
			return fmt.Errorf("%w: nil comparator", ErrInvalidSort)
		}
	default:
		return fmt.Errorf("%w: unknown kind (%d)", ErrInvalidSort, s.kind)
	}

	return nil
}

// ParseOrder converts a string to an Order, an empty string yields Asc.
func ParseOrder(s string) (Order, error) {
	o := Order(strings.ToLower(strings.TrimSpace(s)))
	if o == "" {
		return Asc, nil
	}

	return o, o.validate()
}

func (o Order) validate() error {
	switch o {
	case Asc, Desc:
		return nil
	}

	return fmt.Errorf("(%s) %w", string(o), ErrInvalidOrder)
}

// comparator derives the Comparator a Config describes, nil when sorting is disabled.
//
// The collator isn't safe for concurrent use, a fresh one is created for every call.
func (c *Config) comparator() Comparator {
	var cmp Comparator

	switch c.Sort.kind {
	case sortByField:
		cmp = fieldComparator(c.Sort.field, collate.New(c.Locale))
	case sortByComparator:
		cmp = c.Sort.cmp
	default:
		return nil
	}

	if c.Order == Desc {
		asc := cmp
		cmp = func(a, b types.Record) int { return -asc(a, b) }
	}

	return cmp
}

func fieldComparator(field string, coll *collate.Collator) Comparator {
	return func(a, b types.Record) int {
		aVal, aOK := a.Get(field)
		bVal, bOK := b.Get(field)

		switch {
		case !aOK && !bOK:
			return 0
		case !aOK:
			return -1
		case !bOK:
			return 1
		}

		if aNum, ok := numeric(aVal); ok {
			if bNum, ok := numeric(bVal); ok {
				return compareOrdered(aNum, bNum)
			}
		}

		return coll.CompareString(types.StringOf(aVal), types.StringOf(bVal))
	}
}

// sortSiblings sorts the roots & every children slice below them, one sibling group at a time.
//
// Levels are sorted before their children are visited; empty sibling groups are skipped.
func sortSiblings(roots []types.Record, childrenKey string, cmp Comparator) {
	stack := [][]types.Record{roots}

	for len(stack) > 0 {
		var siblings []types.Record
		siblings, stack = stack[len(stack)-1], stack[:len(stack)-1]

		slices.SortStableFunc(siblings, cmp)

		for _, node := range siblings {
			if children, ok := node[childrenKey].([]types.Record); ok && len(children) > 0 {
				stack = append(stack, children)
			}
		}
	}
}

func numeric(val any) (float64, bool) {
	switch v := val.(type) {
	case int:
		return toFloat(v), true
	case int8:
		return toFloat(v), true
	case int16:
		return toFloat(v), true
	case int32:
		return toFloat(v), true
	case int64:
		return toFloat(v), true
	case uint:
		return toFloat(v), true
	case uint8:
		return toFloat(v), true
	case uint16:
		return toFloat(v), true
	case uint32:
		return toFloat(v), true
	case uint64:
		return toFloat(v), true
	case float32:
		return toFloat(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}

	return 0, false
}

func toFloat[N constraints.Integer | constraints.Float](n N) float64 { return float64(n) }

func compareOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}
