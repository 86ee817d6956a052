// SPDX-License-Identifier: MIT
package maptree

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"gitlab.com/fisherprime/maptree/types"
)

type (
	// flattenFrame is a pending node of a pre-order walk.
	flattenFrame struct {
		node     types.Record
		parentID string
		depth    int
	}
)

// Flattening errors.
var (
	ErrFlattenTree = errors.New("failed to flatten tree")

	ErrDepthExceeded = errors.New("depth limit exceeded")
)

// FlattenTree collects every node of a forest into a Collection keyed by the string form of the
// node's identifier.
//
// Nodes are visited depth-first in pre-order. Each entry is a shallow copy of its node lacking the
// children field; nodes below the roots have their parent field set to the string form of their
// parent's identifier, roots retain whatever parent field they carry. A node lacking an identifier
// is keyed by an empty string & its children keep their own parent field. Nodes sharing an
// identifier overwrite one another.
func FlattenTree(roots []types.Record, options ...Option) (flat *types.Collection, err error) {
	cfg := NewConfig(options...)

	defer func() {
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrFlattenTree, err)
		}
	}()

	if err = cfg.Validate(); err != nil {
		return
	}

	keys := cfg.Keys
	flat = types.NewCollection(len(roots))

	// Push in reverse so the first root is visited first.
	stack := make([]flattenFrame, 0, len(roots))
	stack = pushFrames(stack, roots, "", 1)

	for len(stack) > 0 {
		var frame flattenFrame
		frame, stack = stack[len(stack)-1], stack[:len(stack)-1]

		if cfg.MaxDepth > 0 && frame.depth > cfg.MaxDepth {
			if cfg.Debug {
				cfg.Logger.Debugf("node at depth %d: %s", frame.depth, spew.Sprint(frame.node))
			}

			return nil, fmt.Errorf("%w: %d", ErrDepthExceeded, cfg.MaxDepth)
		}

		node := frame.node
		id := node.IDString(keys.ID)
		if cfg.Debug {
			if _, ok := node.Get(keys.ID); !ok {
				cfg.Logger.Debugf("node lacks an identifier (%s), keyed by an empty string", keys.ID)
			}
		}

		entry := node.Clone()
		delete(entry, keys.Children)
		if frame.parentID != "" {
			entry[keys.Parent] = frame.parentID
		}
		flat.Set(id, entry)

		if children, ok := node.Children(keys.Children); ok && len(children) > 0 {
			stack = pushFrames(stack, children, id, frame.depth+1)
		}
	}

	return
}

// pushFrames adds nodes to the stack in reverse, skipping nil entries.
func pushFrames(stack []flattenFrame, nodes []types.Record, parentID string, depth int) []flattenFrame {
	for index := len(nodes) - 1; index >= 0; index-- {
		if nodes[index] == nil {
			continue
		}
		stack = append(stack, flattenFrame{node: nodes[index], parentID: parentID, depth: depth})
	}

	return stack
}
