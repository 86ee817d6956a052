// SPDX-License-Identifier: MIT
package maptree

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

type (
	// Keys names the record fields shared by [BuildTree] & [FlattenTree].
	//
	// A round trip is lossless when both operations use the same Keys.
	Keys struct {
		ID       string
		Parent   string
		Children string
	}

	// Config defines configuration options for the [BuildTree], [FlattenTree] & [Sprint]
	// operations.
	Config struct {
		// Logger for maptree messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger

		Keys Keys

		// Sort & Order apply to [BuildTree] only.
		Sort  SortSpec
		Order Order

		// Locale used when comparing the string form of sort field values.
		Locale language.Tag

		// LabelKey names a field appended to node labels by [Sprint].
		LabelKey string

		// MaxDepth bounds the nesting [FlattenTree] & [Sprint] will descend to, 0 disables the
		// check.
		MaxDepth int

		Debug bool
	}

	// Option defines the Config functional option type.
	Option func(*Config)
)

const (
	// DefaultIDKey is the default identifier field name.
	DefaultIDKey = "id"
	// DefaultParentKey is the default parent identifier field name.
	DefaultParentKey = "parentId"
	// DefaultChildrenKey is the default children field name.
	DefaultChildrenKey = "children"
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidOrder  = errors.New("invalid sort order")
	ErrInvalidSort   = errors.New("invalid sort specification")
)

// DefaultKeys obtains the default field names.
func DefaultKeys() Keys {
	return Keys{
		ID:       DefaultIDKey,
		Parent:   DefaultParentKey,
		Children: DefaultChildrenKey,
	}
}

// DefConfig obtains the package's default options.
func DefConfig() *Config {
	return &Config{
		Logger: logrus.New(),
		Keys:   DefaultKeys(),
		Order:  Asc,
		Locale: language.Und,
	}
}

// NewConfig instantiates a Config from the defaults & some options.
func NewConfig(options ...Option) *Config {
	c := DefConfig()
	for _, opt := range options {
		opt(c)
	}

	return c
}

// WithConfig replaces the Config being built with a copy of cfg.
//
// Options following it still apply.
func WithConfig(cfg *Config) Option {
	return func(c *Config) {
		if cfg != nil {
			*c = *cfg
		}
	}
}

// WithKeys configures all field names.
func WithKeys(keys Keys) Option { return func(c *Config) { c.Keys = keys } }

// WithIDKey configures the identifier field name.
func WithIDKey(key string) Option { return func(c *Config) { c.Keys.ID = key } }

// WithParentKey configures the parent identifier field name.
func WithParentKey(key string) Option { return func(c *Config) { c.Keys.Parent = key } }

// WithChildrenKey configures the children field name.
func WithChildrenKey(key string) Option { return func(c *Config) { c.Keys.Children = key } }

// WithSort configures sibling sorting for [BuildTree].
func WithSort(spec SortSpec) Option { return func(c *Config) { c.Sort = spec } }

// WithOrder configures the sort order.
func WithOrder(order Order) Option { return func(c *Config) { c.Order = order } }

// WithLocale configures the locale used for string comparison.
func WithLocale(tag language.Tag) Option { return func(c *Config) { c.Locale = tag } }

// WithLabelKey configures the field rendered alongside node identifiers by [Sprint].
func WithLabelKey(key string) Option { return func(c *Config) { c.LabelKey = key } }

// WithMaxDepth configures the nesting limit for [FlattenTree].
func WithMaxDepth(depth int) Option { return func(c *Config) { c.MaxDepth = depth } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(c *Config) { c.Logger = logger } }

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(c *Config) { c.Debug = debug } }

// Validate populates missing Config entries with defaults & rejects unusable ones.
//
// Field names are only defaulted when left empty, colliding names are an error.
func (c *Config) Validate() (err error) {
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	if c.Keys.ID == "" {
		c.Keys.ID = DefaultIDKey
	}
	if c.Keys.Parent == "" {
		c.Keys.Parent = DefaultParentKey
	}
	if c.Keys.Children == "" {
		c.Keys.Children = DefaultChildrenKey
	}
	if c.Order == "" {
		c.Order = Asc
	}

	switch {
	case c.Keys.ID == c.Keys.Parent,
		c.Keys.ID == c.Keys.Children,
		c.Keys.Parent == c.Keys.Children:
		return fmt.Errorf("%w: field names must be distinct: %+v", ErrInvalidConfig, c.Keys)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: negative depth limit (%d)", ErrInvalidConfig, c.MaxDepth)
	}

	if err = c.Order.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err = c.Sort.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return
}
