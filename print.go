// SPDX-License-Identifier: MIT
package maptree

import (
	"fmt"

	"github.com/xlab/treeprint"

	"gitlab.com/fisherprime/maptree/types"
)

type printFrame struct {
	branch treeprint.Tree
	node   types.Record
	depth  int
}

// Sprint renders a forest as an indented text tree.
//
// Nodes are labelled by their identifier, followed by the Config.LabelKey field when set. An
// invalid Config, or a forest nested deeper than Config.MaxDepth, yields the error's text.
func Sprint(roots []types.Record, options ...Option) string {
	cfg := NewConfig(options...)
	if err := cfg.Validate(); err != nil {
		return err.Error()
	}

	tree := treeprint.New()

	stack := make([]printFrame, 0, len(roots))
	for index := len(roots) - 1; index >= 0; index-- {
		stack = append(stack, printFrame{branch: tree, node: roots[index], depth: 1})
	}

	for len(stack) > 0 {
		var frame printFrame
		frame, stack = stack[len(stack)-1], stack[:len(stack)-1]
		if frame.node == nil {
			continue
		}
		if cfg.MaxDepth > 0 && frame.depth > cfg.MaxDepth {
			return fmt.Errorf("%w: %d", ErrDepthExceeded, cfg.MaxDepth).Error()
		}

		label := frame.node.IDString(cfg.Keys.ID)
		if cfg.LabelKey != "" {
			if val, ok := frame.node.Get(cfg.LabelKey); ok {
				label = fmt.Sprintf("%s (%s)", label, types.StringOf(val))
			}
		}

		children, _ := frame.node.Children(cfg.Keys.Children)
		if len(children) < 1 {
			frame.branch.AddNode(label)
			continue
		}

		branch := frame.branch.AddBranch(label)
		for index := len(children) - 1; index >= 0; index-- {
			stack = append(stack, printFrame{branch: branch, node: children[index], depth: frame.depth + 1})
		}
	}

	return tree.String()
}
