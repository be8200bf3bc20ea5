package layershell

import (
	"github.com/sirupsen/logrus"

	"github.com/dkolbly/layershell/toolkit"
)

type renderState int

const (
	renderClean renderState = iota
	renderDirty
)

// Window is the render adapter: it implements the framework's window
// adapter capability set (toolkit.Adapter) on top of the rendering
// context. It is the sole owner of the context; the framework's window
// object holds only a non-owning way back in through the adapter
// interface, with the windowing system keeping the one strong
// reference.
type Window struct {
	gl        toolkit.GL
	renderer  toolkit.Renderer
	framework toolkit.Window

	renderState renderState
	size        toolkit.PhysicalSize
	scaleFactor float32
}

func newWindow(gl toolkit.GL) *Window {
	return &Window{gl: gl, scaleFactor: 1}
}

// bind attaches the instantiated component's window sink and renderer.
func (w *Window) bind(framework toolkit.Window, renderer toolkit.Renderer) {
	w.framework = framework
	w.renderer = renderer
}

// Size returns the last applied physical size.
func (w *Window) Size() toolkit.PhysicalSize {
	return w.size
}

// SetSize stores the physical size, resizes the drawable and notifies
// the framework of the new logical size.
func (w *Window) SetSize(size toolkit.WindowSize) {
	w.size = size.ToPhysical(w.scaleFactor)
	if w.gl != nil && w.size.Width > 0 && w.size.Height > 0 {
		if err := w.gl.Resize(w.size.Width, w.size.Height); err != nil {
			logrus.WithError(err).Error("resizing drawable")
		}
	}
	w.dispatch(toolkit.ResizedEvent{Size: size.ToLogical(w.scaleFactor)})
}

// RequestRedraw marks the window dirty. The next RenderFrameIfDirty
// call produces exactly one frame.
func (w *Window) RequestRedraw() {
	w.renderState = renderDirty
}

func (w *Window) ScaleFactor() float32 {
	return w.scaleFactor
}

// SetScaleFactor stores the factor and tells the framework to
// re-layout.
func (w *Window) SetScaleFactor(scale float32) {
	w.scaleFactor = scale
	w.dispatch(toolkit.ScaleFactorChangedEvent{Factor: scale})
}

func (w *Window) Renderer() toolkit.Renderer {
	return w.renderer
}

// DispatchEvent forwards an input event to the framework window.
func (w *Window) DispatchEvent(ev toolkit.Event) {
	w.dispatch(ev)
}

// RenderFrameIfDirty is called only by the event loop. It clears the
// dirty flag, runs the drawing library's render pass and presents the
// frame. Render errors are logged, not propagated: one dropped frame
// must not take the session down.
func (w *Window) RenderFrameIfDirty() {
	if w.renderState != renderDirty {
		return
	}
	w.renderState = renderClean
	if w.renderer == nil {
		return
	}
	if err := w.renderer.Render(); err != nil {
		logrus.WithError(err).Error("error rendering frame")
		return
	}
	if err := w.gl.SwapBuffers(); err != nil {
		logrus.WithError(err).Error("error presenting frame")
	}
}

func (w *Window) dispatch(ev toolkit.Event) {
	if w.framework == nil {
		return
	}
	w.framework.DispatchEvent(ev)
}
