package layershell

import (
	"fmt"
	"os"
	"strings"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml"

	"github.com/dkolbly/layershell/toolkit"
	"github.com/dkolbly/layershell/wl"
)

// Config describes the layer surface and the component shown on it.
// Zero values are filled from DefaultConfig by the builder; Definition
// has no default and must be supplied.
type Config struct {
	Height                uint32
	Layer                 wl.Layer
	Margin                [4]int32 // top, right, bottom, left
	Anchor                wl.Anchor
	KeyboardInteractivity wl.KeyboardInteractivity
	ExclusiveZone         int32
	Namespace             string
	ScaleFactor           float32
	Definition            toolkit.ComponentDefinition

	// GLFactory builds the rendering context: the shm swapchain for
	// software toolkits, or NativeGLFactory for embedders holding
	// real EGL native handles. Leaving it nil fails Build with
	// ErrNoNativeHandle, since the pure Go connection cannot conjure
	// the C pointers EGL wants.
	GLFactory GLFactory
}

// GLFactory builds a rendering context for a configured surface. The
// shm global is nil when the compositor does not advertise one.
type GLFactory func(display *wl.Display, shm *wl.Shm, surface *wl.Surface, width, height uint32) (toolkit.GL, error)

func DefaultConfig() Config {
	return Config{
		Height:                30,
		Layer:                 wl.LayerTop,
		Anchor:                wl.AnchorTop | wl.AnchorLeft | wl.AnchorRight,
		KeyboardInteractivity: wl.KeyboardInteractivityOnDemand,
		ExclusiveZone:         -1,
		Namespace:             "layershell",
		ScaleFactor:           1.0,
	}
}

func (c *Config) validate() error {
	if c.Definition == nil {
		return fmt.Errorf("%w: component definition not set", ErrInvalidConfig)
	}
	if c.Height == 0 {
		return fmt.Errorf("%w: height must be positive", ErrInvalidConfig)
	}
	if c.ScaleFactor <= 0 {
		return fmt.Errorf("%w: scale factor must be positive", ErrInvalidConfig)
	}
	return nil
}

// fileConfig is the TOML shape of the panel settings. Only appearance
// options live in the file; the component definition always comes from
// code.
type fileConfig struct {
	Height                uint32   `toml:"height"`
	Layer                 string   `toml:"layer"`
	Anchor                []string `toml:"anchor"`
	MarginTop             int32    `toml:"margin_top"`
	MarginRight           int32    `toml:"margin_right"`
	MarginBottom          int32    `toml:"margin_bottom"`
	MarginLeft            int32    `toml:"margin_left"`
	KeyboardInteractivity string   `toml:"keyboard_interactivity"`
	ExclusiveZone         *int32   `toml:"exclusive_zone"`
	Namespace             string   `toml:"namespace"`
	ScaleFactor           float32  `toml:"scale_factor"`
}

// DefaultConfigPath locates the panel config under the XDG config
// directories, or returns "" when none exists.
func DefaultConfigPath() string {
	path, err := xdg.SearchConfigFile("layershell/config.toml")
	if err != nil {
		return ""
	}
	return path
}

// LoadConfig reads a TOML settings file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, path, err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	if fc.Height != 0 {
		cfg.Height = fc.Height
	}
	if fc.Layer != "" {
		layer, err := ParseLayer(fc.Layer)
		if err != nil {
			return cfg, err
		}
		cfg.Layer = layer
	}
	if len(fc.Anchor) != 0 {
		anchor, err := ParseAnchor(fc.Anchor)
		if err != nil {
			return cfg, err
		}
		cfg.Anchor = anchor
	}
	cfg.Margin = [4]int32{fc.MarginTop, fc.MarginRight, fc.MarginBottom, fc.MarginLeft}
	if fc.KeyboardInteractivity != "" {
		ki, err := ParseKeyboardInteractivity(fc.KeyboardInteractivity)
		if err != nil {
			return cfg, err
		}
		cfg.KeyboardInteractivity = ki
	}
	if fc.ExclusiveZone != nil {
		cfg.ExclusiveZone = *fc.ExclusiveZone
	}
	if fc.Namespace != "" {
		cfg.Namespace = fc.Namespace
	}
	if fc.ScaleFactor != 0 {
		cfg.ScaleFactor = fc.ScaleFactor
	}
	return cfg, nil
}

func ParseLayer(s string) (wl.Layer, error) {
	switch strings.ToLower(s) {
	case "background":
		return wl.LayerBackground, nil
	case "bottom":
		return wl.LayerBottom, nil
	case "top":
		return wl.LayerTop, nil
	case "overlay":
		return wl.LayerOverlay, nil
	default:
		return 0, fmt.Errorf("%w: unknown layer %q", ErrInvalidConfig, s)
	}
}

func ParseAnchor(edges []string) (wl.Anchor, error) {
	var anchor wl.Anchor
	for _, e := range edges {
		switch strings.ToLower(e) {
		case "top":
			anchor |= wl.AnchorTop
		case "bottom":
			anchor |= wl.AnchorBottom
		case "left":
			anchor |= wl.AnchorLeft
		case "right":
			anchor |= wl.AnchorRight
		default:
			return 0, fmt.Errorf("%w: unknown anchor edge %q", ErrInvalidConfig, e)
		}
	}
	return anchor, nil
}

func ParseKeyboardInteractivity(s string) (wl.KeyboardInteractivity, error) {
	switch strings.ToLower(s) {
	case "none":
		return wl.KeyboardInteractivityNone, nil
	case "exclusive":
		return wl.KeyboardInteractivityExclusive, nil
	case "on_demand", "on-demand":
		return wl.KeyboardInteractivityOnDemand, nil
	default:
		return 0, fmt.Errorf("%w: unknown keyboard interactivity %q", ErrInvalidConfig, s)
	}
}
