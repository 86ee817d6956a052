// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/maptree"
	"gitlab.com/fisherprime/maptree/types"
)

func newFlattenCmd(root *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "flatten [file]",
		Short: "Flatten a JSON forest into a collection keyed by identifier",
		Long: `Reads a JSON array of root records, each optionally nesting its children, & prints an
object mapping every identifier to its record with the parent field filled in.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if root.format == formatText {
				return fmt.Errorf("(%s) %w for flatten", root.format, ErrUnknownFormat)
			}

			options, err := root.options()
			if err != nil {
				return
			}

			data, err := readInput(cmd, args)
			if err != nil {
				return
			}

			var roots []types.Record
			if err = decoder(data).Decode(&roots); err != nil {
				return
			}
			root.logger.Debugf("read %d root(s)", len(roots))

			flat, err := maptree.FlattenTree(roots, options...)
			if err != nil {
				return
			}

			return root.write(cmd, flat)
		},
	}
}
