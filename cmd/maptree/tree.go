// SPDX-License-Identifier: MIT
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/fisherprime/maptree"
	"gitlab.com/fisherprime/maptree/types"
)

type treeOpts struct {
	*rootOpts

	sortBy string
	order  string
	label  string
}

func newTreeCmd(root *rootOpts) *cobra.Command {
	opts := &treeOpts{rootOpts: root}

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Nest a flat JSON collection into a forest",
		Long: `Reads a JSON object mapping identifiers to records & prints the forest formed by
nesting every record under the record its parent field names.`,
		Args: cobra.MaximumNArgs(1),
		RunE: opts.run,
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.sortBy, "sort-by", "", "field to sort siblings by")
	flags.StringVar(&opts.order, "order", string(maptree.Asc), "sort order (asc, desc)")
	flags.StringVar(&opts.label, "label", "", "field shown next to identifiers in text output")

	return cmd
}

func (o *treeOpts) run(cmd *cobra.Command, args []string) (err error) {
	options, err := o.options()
	if err != nil {
		return
	}

	order, err := maptree.ParseOrder(o.order)
	if err != nil {
		return
	}
	options = append(options, maptree.WithOrder(order), maptree.WithLabelKey(o.label))
	if o.sortBy != "" {
		options = append(options, maptree.WithSort(maptree.ByField(o.sortBy)))
	}

	data, err := readInput(cmd, args)
	if err != nil {
		return
	}

	src := new(types.Collection)
	if err = json.Unmarshal(data, src); err != nil {
		return
	}
	o.logger.Debugf("read %d record(s)", src.Len())

	roots, err := maptree.BuildTree(src, options...)
	if err != nil {
		return
	}

	if o.format == formatText {
		_, err = fmt.Fprint(cmd.OutOrStdout(), maptree.Sprint(roots, options...))
		return
	}

	return o.write(cmd, roots)
}
