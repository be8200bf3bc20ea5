package layershell

import (
	"github.com/sirupsen/logrus"

	"github.com/dkolbly/layershell/toolkit"
	"github.com/dkolbly/layershell/wl"
)

// eventHandler is the demultiplexer for every protocol callback the
// windowing system registers. One handler instance is attached to the
// layer surface, the output and the pointer; the type switch below is
// the closed set of events those objects produce.
type eventHandler struct {
	state *State
}

func newEventHandler(state *State) *eventHandler {
	return &eventHandler{state: state}
}

func (h *eventHandler) Handle(e interface{}) {
	switch ev := e.(type) {
	case wl.LayerSurfaceConfigureEvent:
		h.handleConfigure(ev)
	case wl.LayerSurfaceClosedEvent:
		logrus.Info("layer surface closed by compositor")
		h.state.markClosed()
	case wl.OutputModeEvent:
		logrus.WithFields(logrus.Fields{
			"width":  ev.Width,
			"height": ev.Height,
		}).Debug("output mode")
		h.state.setOutputSize(uint32(ev.Width), uint32(ev.Height))
	case wl.OutputGeometryEvent:
		logrus.WithFields(logrus.Fields{
			"make":  ev.Make,
			"model": ev.Model,
		}).Debug("output geometry")
	case wl.OutputScaleEvent:
		logrus.WithField("factor", ev.Factor).Debug("output scale")
	case wl.OutputNameEvent:
		logrus.WithField("name", ev.Name).Debug("output name")
	case wl.OutputDescriptionEvent:
		logrus.WithField("description", ev.Description).Debug("output description")
	case wl.OutputDoneEvent:
		logrus.Debug("output done")
	case wl.PointerEnterEvent:
		h.handlePointerMoved(ev.SurfaceX, ev.SurfaceY)
	case wl.PointerMotionEvent:
		h.handlePointerMoved(ev.SurfaceX, ev.SurfaceY)
	case wl.PointerLeaveEvent:
		h.dispatchToWindow(toolkit.PointerExitedEvent{})
	case wl.PointerButtonEvent:
		h.handlePointerButton(ev)
	default:
		logrus.WithField("event", e).Debug("unhandled event")
	}
}

// handleConfigure acks with the serial from this exact event, then
// reconciles the proposed geometry. A zero axis means the compositor
// declined to choose; the last known-good size is reapplied instead of
// collapsing the surface.
func (h *eventHandler) handleConfigure(ev wl.LayerSurfaceConfigureEvent) {
	logrus.WithFields(logrus.Fields{
		"serial": ev.Serial,
		"width":  ev.Width,
		"height": ev.Height,
	}).Debug("layer surface configure")

	state := h.state
	if ls := state.LayerSurface(); ls != nil {
		ls.AckConfigure(ev.Serial)
	}
	state.markConfigured()

	if ev.Width > 0 && ev.Height > 0 {
		state.updateSize(ev.Width, ev.Height)
		return
	}
	if size := state.Size(); size.Width > 0 && size.Height > 0 {
		state.updateSize(size.Width, size.Height)
		return
	}
	// Nothing negotiated yet: fall back to the output's reported
	// width and the configured panel height.
	if out := state.OutputSize(); out.Width > 0 {
		state.updateSize(out.Width, state.Height())
	}
}

func (h *eventHandler) handlePointerMoved(physicalX, physicalY float32) {
	h.state.setPointerPosition(physicalX, physicalY)
	h.dispatchToWindow(toolkit.PointerMovedEvent{Position: h.state.PointerPosition()})
}

// handlePointerButton forwards press and release at the last known
// pointer position. Button identity collapses to the primary button;
// an overlay panel has no use for anything finer.
func (h *eventHandler) handlePointerButton(ev wl.PointerButtonEvent) {
	position := h.state.PointerPosition()
	if ev.State == wl.PointerButtonStatePressed {
		h.dispatchToWindow(toolkit.PointerPressedEvent{
			Button:   toolkit.ButtonLeft,
			Position: position,
		})
	} else {
		h.dispatchToWindow(toolkit.PointerReleasedEvent{
			Button:   toolkit.ButtonLeft,
			Position: position,
		})
	}
}

func (h *eventHandler) dispatchToWindow(ev toolkit.Event) {
	if w := h.state.window; w != nil {
		w.DispatchEvent(ev)
	}
}
