package layershell

import (
	"github.com/dkolbly/layershell/toolkit"
	"github.com/dkolbly/layershell/wl"
)

// Builder assembles a WindowingSystem configuration. Every field has a
// sensible default except the component definition, which Build
// requires.
type Builder struct {
	config Config
}

func NewBuilder() *Builder {
	return &Builder{config: DefaultConfig()}
}

// FromConfig starts the builder from an existing configuration, for
// example one produced by LoadConfig.
func FromConfig(config Config) *Builder {
	return &Builder{config: config}
}

func (b *Builder) WithHeight(height uint32) *Builder {
	b.config.Height = height
	return b
}

func (b *Builder) WithLayer(layer wl.Layer) *Builder {
	b.config.Layer = layer
	return b
}

func (b *Builder) WithMargin(top, right, bottom, left int32) *Builder {
	b.config.Margin = [4]int32{top, right, bottom, left}
	return b
}

func (b *Builder) WithAnchor(anchor wl.Anchor) *Builder {
	b.config.Anchor = anchor
	return b
}

func (b *Builder) WithKeyboardInteractivity(ki wl.KeyboardInteractivity) *Builder {
	b.config.KeyboardInteractivity = ki
	return b
}

// WithExclusiveZone reserves compositor space for the panel; negative
// values reserve none.
func (b *Builder) WithExclusiveZone(zone int32) *Builder {
	b.config.ExclusiveZone = zone
	return b
}

func (b *Builder) WithNamespace(namespace string) *Builder {
	b.config.Namespace = namespace
	return b
}

func (b *Builder) WithScaleFactor(scale float32) *Builder {
	b.config.ScaleFactor = scale
	return b
}

func (b *Builder) WithComponentDefinition(def toolkit.ComponentDefinition) *Builder {
	b.config.Definition = def
	return b
}

func (b *Builder) WithGLFactory(factory GLFactory) *Builder {
	b.config.GLFactory = factory
	return b
}

// Build validates the configuration and brings the windowing system
// all the way up: connection, globals, configured layer surface,
// rendering context and component instance.
func (b *Builder) Build() (*WindowingSystem, error) {
	if err := b.config.validate(); err != nil {
		return nil, err
	}
	return newWindowingSystem(b.config)
}
