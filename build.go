// SPDX-License-Identifier: MIT
package maptree

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"gitlab.com/fisherprime/maptree/types"
)

// Tree building errors.
var (
	ErrBuildTree = errors.New("failed to build tree")

	ErrPanicked = errors.New("recovery from panic")
)

// BuildTree nests the Records of a flat Collection under their parents, returning the roots.
//
// Parents are resolved against the Collection's keys. A Record whose parent field is missing,
// not a string, empty, refers to itself or refers to an absent key becomes a root. Every node
// carries a (possibly empty) []types.Record under the children key; the source Records are
// copied & never modified.
//
// Two Records claiming each other as parent attach to one another & are unreachable from the
// roots; cycles are not detected.
func BuildTree(src *types.Collection, options ...Option) (roots []types.Record, err error) {
	cfg := NewConfig(options...)

	defer func() {
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrBuildTree, err)
		}
	}()

	if err = cfg.Validate(); err != nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}

		if err == nil {
			return
		}

		// Skip expensive operation if not debug.
		if cfg.Debug {
			cfg.Logger.Debugf("roots: %s\nsource: %s", spew.Sprint(roots), spew.Sprint(src))
		}
		roots = nil
	}()

	keys := cfg.Keys
	working := types.NewCollection(src.Len())
	src.Range(func(key string, rec types.Record) bool {
		node := rec.Clone()
		node[keys.Children] = []types.Record{}
		working.Set(key, node)

		return true
	})

	roots = make([]types.Record, 0)
	working.Range(func(key string, node types.Record) bool {
		parentID, ok := node.GetString(keys.Parent)
		if !ok || parentID == "" || parentID == key {
			roots = append(roots, node)
			return true
		}

		parent, ok := working.Get(parentID)
		if !ok {
			if cfg.Debug {
				cfg.Logger.Debugf("parent (%s) of (%s) not found, treating as root", parentID, key)
			}
			roots = append(roots, node)

			return true
		}
		parent[keys.Children] = append(parent[keys.Children].([]types.Record), node)

		return true
	})

	if cmp := cfg.comparator(); cmp != nil {
		sortSiblings(roots, keys.Children, cmp)
	}

	if cfg.Debug {
		cfg.Logger.Debugf("built %d root(s) from %d record(s)", len(roots), working.Len())
	}

	return
}
