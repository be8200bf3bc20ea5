// Package toolkit defines the narrow contracts between the windowing
// system and its two external collaborators: the UI framework that
// owns the retained scene, and the GPU drawing library invoked once
// per frame. The windowing system only ever talks to these interfaces;
// it has no opinion about what is drawn.
package toolkit

import "time"

// GL is what the drawing library needs from a rendering context. It is
// satisfied by *egl.Context and by test fakes.
type GL interface {
	// EnsureCurrent makes the context current on the calling thread.
	// It is idempotent: an already current context is left alone.
	EnsureCurrent() error

	// SwapBuffers presents the finished frame.
	SwapBuffers() error

	// Resize re-currents the context and resizes the drawable. Both
	// dimensions must be strictly positive.
	Resize(width, height uint32) error
}

// Renderer is the drawing library's per-frame entry point.
type Renderer interface {
	Render() error
}

// Adapter is the window adapter capability set the windowing system
// implements for the framework.
type Adapter interface {
	Size() PhysicalSize
	SetSize(WindowSize)
	RequestRedraw()
	ScaleFactor() float32
	Renderer() Renderer
}

// Window is the framework's event sink for one window.
type Window interface {
	DispatchEvent(Event)
}

// ComponentDefinition describes the root component. Create binds an
// instance of it to a window adapter and a rendering context.
type ComponentDefinition interface {
	Create(adapter Adapter, gl GL) (Component, error)
}

// Component is an instantiated root component.
type Component interface {
	// Show makes the component visible and requests the first frame.
	Show() error

	// Window is the event sink input and geometry events go to.
	Window() Window

	// Renderer is the drawing library pass that paints this
	// component's scene.
	Renderer() Renderer

	// UpdateTimersAndAnimations advances the framework clock. The
	// event loop calls it once per iteration.
	UpdateTimersAndAnimations()
}

// Deadline is optionally implemented by components with pending timers
// or animations; the event loop uses it to bound its poll timeout.
type Deadline interface {
	NextDeadline() (time.Duration, bool)
}
