// Package softui is a minimal software rendered toolkit for panels:
// a view draws onto an RGBA canvas, the swapchain moves the pixels to
// the compositor through wl_shm. It exists so a panel can run without
// a GPU, and it doubles as a reference for binding other frameworks
// to the windowing system's contracts.
package softui

import (
	"errors"
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dkolbly/layershell/toolkit"
)

// View is the drawable unit. Draw repaints the whole canvas.
type View interface {
	Draw(canvas *image.RGBA, scale float32)
}

// Animator is optionally implemented by views that change over time.
// Tick reports whether the view wants a redraw; NextTick bounds how
// long the event loop may sleep.
type Animator interface {
	Tick(now time.Time) bool
	NextTick(now time.Time) (time.Duration, bool)
}

// PointerHandler is optionally implemented by views that react to the
// pointer. The return value reports whether a redraw is needed.
type PointerHandler interface {
	PointerEvent(ev toolkit.Event) bool
}

// Definition wraps a root view as a component definition.
type Definition struct {
	Root View
}

func NewDefinition(root View) *Definition {
	return &Definition{Root: root}
}

func (d *Definition) Create(adapter toolkit.Adapter, gl toolkit.GL) (toolkit.Component, error) {
	if d.Root == nil {
		return nil, errors.New("softui: definition has no root view")
	}
	c := &Component{adapter: adapter, gl: gl, root: d.Root}
	c.sink = &eventSink{c: c}
	c.renderer = &renderer{c: c}
	return c, nil
}

// Component is an instantiated root view bound to a window adapter.
type Component struct {
	adapter  toolkit.Adapter
	gl       toolkit.GL
	root     View
	sink     *eventSink
	renderer *renderer
	canvas   *image.RGBA
}

func (c *Component) Show() error {
	c.adapter.RequestRedraw()
	return nil
}

func (c *Component) Window() toolkit.Window {
	return c.sink
}

func (c *Component) Renderer() toolkit.Renderer {
	return c.renderer
}

func (c *Component) UpdateTimersAndAnimations() {
	if a, ok := c.root.(Animator); ok {
		if a.Tick(time.Now()) {
			c.adapter.RequestRedraw()
		}
	}
}

// NextDeadline implements the event loop's optional timer contract.
func (c *Component) NextDeadline() (time.Duration, bool) {
	if a, ok := c.root.(Animator); ok {
		return a.NextTick(time.Now())
	}
	return 0, false
}

type eventSink struct {
	c *Component
}

func (s *eventSink) DispatchEvent(ev toolkit.Event) {
	switch ev.(type) {
	case toolkit.ResizedEvent, toolkit.ScaleFactorChangedEvent:
		s.c.adapter.RequestRedraw()
	default:
		if ph, ok := s.c.root.(PointerHandler); ok {
			if ph.PointerEvent(ev) {
				s.c.adapter.RequestRedraw()
			}
		}
	}
}

type renderer struct {
	c *Component
}

// Render paints the root view and stages the frame on the swapchain.
func (r *renderer) Render() error {
	c := r.c
	size := c.adapter.Size()
	if size.Width == 0 || size.Height == 0 {
		return nil
	}
	bounds := image.Rect(0, 0, int(size.Width), int(size.Height))
	if c.canvas == nil || c.canvas.Rect != bounds {
		c.canvas = image.NewRGBA(bounds)
	}
	c.root.Draw(c.canvas, c.adapter.ScaleFactor())

	p, ok := c.gl.(Presenter)
	if !ok {
		logrus.Warn("softui: rendering context cannot present software frames")
		return nil
	}
	return p.Present(c.canvas)
}
