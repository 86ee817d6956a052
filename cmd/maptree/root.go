// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"gitlab.com/fisherprime/maptree"
	"gitlab.com/fisherprime/maptree/types"
)

type (
	// rootOpts holds the flags shared by every subcommand.
	rootOpts struct {
		logger *logrus.Logger

		keys   maptree.Keys
		locale string
		debug  bool
		format string
	}
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

// CLI errors.
var (
	ErrUnknownFormat = errors.New("unknown output format")
)

func newRootCmd() *cobra.Command {
	opts := &rootOpts{logger: logrus.New()}

	cmd := &cobra.Command{
		Use:           "maptree",
		Short:         "Convert between flat parent-referencing collections & nested trees",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.logger.SetOutput(cmd.ErrOrStderr())
			if opts.debug {
				opts.logger.SetLevel(logrus.DebugLevel)
			}

			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.keys.ID, "id-key", maptree.DefaultIDKey, "identifier field name")
	flags.StringVar(&opts.keys.Parent, "parent-key", maptree.DefaultParentKey, "parent identifier field name")
	flags.StringVar(&opts.keys.Children, "children-key", maptree.DefaultChildrenKey, "children field name")
	flags.StringVar(&opts.locale, "locale", "und", "BCP 47 locale used to compare strings when sorting")
	flags.StringVarP(&opts.format, "format", "f", formatJSON, "output format (json, yaml, text)")
	flags.BoolVar(&opts.debug, "debug", false, "log debug messages")

	cmd.AddCommand(newTreeCmd(opts), newFlattenCmd(opts))

	return cmd
}

// options converts the shared flags to maptree options.
func (o *rootOpts) options() ([]maptree.Option, error) {
	tag, err := language.Parse(o.locale)
	if err != nil {
		return nil, fmt.Errorf("locale (%s): %w", o.locale, err)
	}

	return []maptree.Option{
		maptree.WithKeys(o.keys),
		maptree.WithLocale(tag),
		maptree.WithLogger(o.logger),
		maptree.WithDebug(o.debug),
	}, nil
}

// readInput reads the file named by args or, lacking one, the command's input.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		return os.ReadFile(args[0])
	}

	return io.ReadAll(cmd.InOrStdin())
}

// decoder obtains a JSON decoder that keeps numbers as json.Number.
func decoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	return dec
}

// write encodes value to the command's output in a structured format.
func (o *rootOpts) write(cmd *cobra.Command, value any) error {
	out := cmd.OutOrStdout()

	switch o.format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(yamlValue(value)); err != nil {
			return err
		}
		return enc.Close()
	}

	return fmt.Errorf("(%s) %w", o.format, ErrUnknownFormat)
}

func yamlValue(value any) any {
	if roots, ok := value.([]types.Record); ok {
		return types.YAMLValue(roots)
	}

	return value
}
