// Package config loads the table and demo settings from a TOML file.
//
// Every field has a default, so a file only needs the settings it changes:
//
//	[table]
//	spacing = 1
//	appear_duration = "200ms"
//
//	[keys]
//	line_down = ["down", "j"]
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ayn2op/dyntable"
	"github.com/ayn2op/dyntable/demo"
	"github.com/ayn2op/dyntable/keybind"
	"github.com/ayn2op/dyntable/reconcile"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the whole configuration file.
type Config struct {
	Table Table `toml:"table"`
	Keys  Keys  `toml:"keys"`
	Demo  Demo  `toml:"demo"`
}

// Table configures the DynamicTable.
type Table struct {
	Spacing          float64  `toml:"spacing"`
	DefaultRowHeight float64  `toml:"default_row_height"`
	AppearDuration   Duration `toml:"appear_duration"`
	MinZoom          float64  `toml:"min_zoom"`
	MaxZoom          float64  `toml:"max_zoom"`
	ScrollBar        bool     `toml:"scroll_bar"`
	Border           string   `toml:"border"`
}

// Keys lists the key names bound to each action. An empty list keeps the
// default binding.
type Keys struct {
	LineUp    []string `toml:"line_up"`
	LineDown  []string `toml:"line_down"`
	PageUp    []string `toml:"page_up"`
	PageDown  []string `toml:"page_down"`
	Top       []string `toml:"top"`
	Bottom    []string `toml:"bottom"`
	Left      []string `toml:"left"`
	Right     []string `toml:"right"`
	ZoomIn    []string `toml:"zoom_in"`
	ZoomOut   []string `toml:"zoom_out"`
	ZoomReset []string `toml:"zoom_reset"`

	Reload []string `toml:"reload"`
	Remove []string `toml:"remove"`
	Kind   []string `toml:"kind"`
	Help   []string `toml:"help"`
	Quit   []string `toml:"quit"`
}

// Demo configures the sample data source.
type Demo struct {
	Kind     string   `toml:"kind"`
	Catalog  string   `toml:"catalog"`
	Prefetch int      `toml:"prefetch"`
	Timeout  Duration `toml:"timeout"`
}

// Duration is a time.Duration written as a string such as "350ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Table: Table{
			Spacing:          1,
			DefaultRowHeight: 3,
			AppearDuration:   Duration{reconcile.DefaultAppearDuration},
			MinZoom:          dyntable.DefaultMinZoom,
			MaxZoom:          dyntable.DefaultMaxZoom,
			ScrollBar:        true,
			Border:           "round",
		},
		Keys: Keys{
			Reload: []string{"r", "ctrl+r"},
			Remove: []string{"x", "delete"},
			Kind:   []string{"tab"},
			Help:   []string{"?"},
			Quit:   []string{"q", "ctrl+c"},
		},
		Demo: Demo{
			Kind:     string(demo.KindText),
			Prefetch: 2,
			Timeout:  Duration{10 * time.Second},
		},
	}
}

// Load reads the file at path on top of the defaults and validates the
// result. Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys %s: %w", path, strings.Join(keys, ", "), ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the ranges of every setting.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid))
		}
	}

	t := c.Table
	check(t.Spacing >= 0, "table.spacing must not be negative, got %g", t.Spacing)
	check(t.DefaultRowHeight > 0, "table.default_row_height must be positive, got %g", t.DefaultRowHeight)
	check(t.AppearDuration.Duration >= 0, "table.appear_duration must not be negative, got %s", t.AppearDuration)
	check(t.MinZoom > 0, "table.min_zoom must be positive, got %g", t.MinZoom)
	check(t.MaxZoom >= t.MinZoom, "table.max_zoom %g is below table.min_zoom %g", t.MaxZoom, t.MinZoom)
	_, ok := dyntable.BorderSetByName(t.Border)
	check(ok, "table.border %q is not one of plain, round, thick, hidden", t.Border)

	for name, keys := range c.Keys.bindings() {
		for _, key := range keys {
			check(keybind.Normalize(key) != "", "keys.%s: %q is not a key", name, key)
		}
	}

	_, err := demo.ParseKind(c.Demo.Kind)
	check(err == nil, "demo.kind %q is not one of text, files, remote", c.Demo.Kind)
	check(c.Demo.Prefetch >= 0, "demo.prefetch must not be negative, got %d", c.Demo.Prefetch)
	check(c.Demo.Timeout.Duration > 0, "demo.timeout must be positive, got %s", c.Demo.Timeout)

	return errors.Join(errs...)
}

// Apply configures t.
func (c Config) Apply(t *dyntable.DynamicTable) {
	t.SetSpacing(c.Table.Spacing).
		SetDefaultRowHeight(c.Table.DefaultRowHeight).
		SetAppearDuration(c.Table.AppearDuration.Duration).
		SetZoomBounds(c.Table.MinZoom, c.Table.MaxZoom).
		SetScrollBarVisible(c.Table.ScrollBar).
		SetKeys(c.TableKeys())

	if set, ok := dyntable.BorderSetByName(c.Table.Border); ok && c.Table.Border != "hidden" {
		t.SetBorders(dyntable.BordersAll).SetBorderSet(set)
	}
}

// TableKeys returns the default table bindings with the configured keys
// applied.
func (c Config) TableKeys() dyntable.TableKeys {
	keys := dyntable.DefaultTableKeys()
	rebind(&keys.LineUp, c.Keys.LineUp)
	rebind(&keys.LineDown, c.Keys.LineDown)
	rebind(&keys.PageUp, c.Keys.PageUp)
	rebind(&keys.PageDown, c.Keys.PageDown)
	rebind(&keys.Top, c.Keys.Top)
	rebind(&keys.Bottom, c.Keys.Bottom)
	rebind(&keys.Left, c.Keys.Left)
	rebind(&keys.Right, c.Keys.Right)
	rebind(&keys.ZoomIn, c.Keys.ZoomIn)
	rebind(&keys.ZoomOut, c.Keys.ZoomOut)
	rebind(&keys.ZoomReset, c.Keys.ZoomReset)
	return keys
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

func (k Keys) bindings() map[string][]string {
	return map[string][]string{
		"line_up":    k.LineUp,
		"line_down":  k.LineDown,
		"page_up":    k.PageUp,
		"page_down":  k.PageDown,
		"top":        k.Top,
		"bottom":     k.Bottom,
		"left":       k.Left,
		"right":      k.Right,
		"zoom_in":    k.ZoomIn,
		"zoom_out":   k.ZoomOut,
		"zoom_reset": k.ZoomReset,
		"reload":     k.Reload,
		"remove":     k.Remove,
		"kind":       k.Kind,
		"help":       k.Help,
		"quit":       k.Quit,
	}
}

// rebind replaces the keys of kb and shows the first of them in help.
func rebind(kb *keybind.Keybind, keys []string) {
	if len(keys) == 0 {
		return
	}
	kb.SetKeys(keys...)
	kb.SetHelp(keys[0], kb.Help().Desc)
}
