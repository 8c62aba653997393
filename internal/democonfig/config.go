// Package democonfig loads the TOML file that drives the demo hosts.
package democonfig

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/go-theft-auto/vflow"
)

// ErrInvalid is returned for values that decode but make no sense.
var ErrInvalid = errors.New("invalid demo config")

// Config describes one demo session.
//
// Example file:
//
//	view = "list"
//	items = 100000
//	wrap = "word"
//	theme = "dark"
//
//	[window]
//	width = 1024
//	height = 768
type Config struct {
	// View selects the container: "list", "tree" or "table".
	View  string `toml:"view"`
	Items int    `toml:"items"`
	// Wrap is "none", "word", "char" or "auto".
	Wrap  string `toml:"wrap"`
	Theme string `toml:"theme"`
	// WheelStep is the number of pixels (GL) or rows (terminal) per wheel notch.
	WheelStep float64 `toml:"wheel_step"`
	Debug     bool    `toml:"debug"`

	Window Window `toml:"window"`
}

// Window sizes the GL demo window.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		View:      "list",
		Items:     100_000,
		Wrap:      "word",
		Theme:     "default",
		WheelStep: 40,
		Window: Window{
			Width:  800,
			Height: 600,
			Title:  "vflow",
		},
	}
}

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults. Unknown keys are rejected so
// typos do not pass silently.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	switch c.View {
	case "list", "tree", "table":
	default:
		return fmt.Errorf("%w: view %q", ErrInvalid, c.View)
	}
	if c.Items < 0 {
		return fmt.Errorf("%w: items %d", ErrInvalid, c.Items)
	}
	if c.WheelStep <= 0 {
		return fmt.Errorf("%w: wheel_step %v", ErrInvalid, c.WheelStep)
	}
	if _, err := c.WrapMode(); err != nil {
		return err
	}
	if _, err := c.Style(); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	return nil
}

var wrapModes = map[string]vflow.TextWrapMode{
	"":     vflow.WrapNone,
	"none": vflow.WrapNone,
	"word": vflow.WrapModeWord,
	"char": vflow.WrapModeChar,
	"auto": vflow.WrapModeAuto,
}

// WrapMode maps Wrap onto the label wrap mode.
func (c Config) WrapMode() (vflow.TextWrapMode, error) {
	m, ok := wrapModes[c.Wrap]
	if !ok {
		return vflow.WrapNone, fmt.Errorf("%w: wrap %q", ErrInvalid, c.Wrap)
	}
	return m, nil
}

// Style maps Theme onto a palette.
func (c Config) Style() (vflow.Style, error) {
	switch c.Theme {
	case "", "default":
		return vflow.DefaultStyle(), nil
	case "dark":
		return vflow.DarkStyle(), nil
	case "light":
		return vflow.LightStyle(), nil
	}
	return vflow.Style{}, fmt.Errorf("%w: theme %q", ErrInvalid, c.Theme)
}

// Options returns the view options for a validated config.
func (c Config) Options() []vflow.Option {
	wrap, _ := c.WrapMode()
	style, _ := c.Style()
	return []vflow.Option{
		vflow.WithWrap(wrap),
		vflow.WithStyle(style),
		vflow.WithWheelStep(c.WheelStep),
	}
}
