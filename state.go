package layershell

import (
	"github.com/sirupsen/logrus"

	"github.com/dkolbly/layershell/toolkit"
	"github.com/dkolbly/layershell/wl"
)

// State owns the protocol surface, its layer surface role and the
// pointer handle, and tracks the sizes and pointer position the
// dispatcher feeds it. Everything here runs on the event loop thread.
type State struct {
	surface      *wl.Surface
	layerSurface *wl.LayerSurface
	pointer      *wl.Pointer

	size            toolkit.PhysicalSize
	outputSize      toolkit.PhysicalSize
	pointerPosition toolkit.LogicalPosition

	window *Window

	scaleFactor   float32
	height        uint32
	exclusiveZone int32
	configured    bool
	closed        bool
}

func newState(config Config) *State {
	return &State{
		scaleFactor:   config.ScaleFactor,
		height:        config.Height,
		exclusiveZone: config.ExclusiveZone,
	}
}

// updateSize applies a negotiated size: window adapter first, then the
// layer surface request, then the commit that makes it take effect.
// No-op once the compositor has closed the surface.
func (s *State) updateSize(width, height uint32) {
	if s.closed {
		return
	}
	s.size = toolkit.PhysicalSize{Width: width, Height: height}

	if s.window != nil {
		logrus.WithFields(logrus.Fields{
			"width":  width,
			"height": height,
		}).Debug("updating window size")
		s.window.SetSize(toolkit.Physical(width, height))
		s.window.SetScaleFactor(s.scaleFactor)
	}

	if s.layerSurface != nil {
		s.layerSurface.SetSize(width, height)
		s.layerSurface.SetExclusiveZone(s.exclusiveZone)
	}
	if s.surface != nil {
		s.surface.Commit()
	}
}

// setPointerPosition records the pointer in logical coordinates,
// derived from the physical ones the protocol delivers.
func (s *State) setPointerPosition(physicalX, physicalY float32) {
	s.pointerPosition = toolkit.LogicalPosition{
		X: physicalX / s.scaleFactor,
		Y: physicalY / s.scaleFactor,
	}
}

func (s *State) Size() toolkit.PhysicalSize {
	return s.size
}

func (s *State) OutputSize() toolkit.PhysicalSize {
	return s.outputSize
}

func (s *State) PointerPosition() toolkit.LogicalPosition {
	return s.pointerPosition
}

func (s *State) Surface() *wl.Surface {
	return s.surface
}

func (s *State) LayerSurface() *wl.LayerSurface {
	return s.layerSurface
}

func (s *State) Pointer() *wl.Pointer {
	return s.pointer
}

func (s *State) ScaleFactor() float32 {
	return s.scaleFactor
}

func (s *State) Height() uint32 {
	return s.height
}

// Configured reports whether the first configure round trip has
// completed.
func (s *State) Configured() bool {
	return s.configured
}

// Closed reports whether the compositor has closed the surface. A
// closed surface accepts no further resizes or commits.
func (s *State) Closed() bool {
	return s.closed
}

func (s *State) setOutputSize(width, height uint32) {
	s.outputSize = toolkit.PhysicalSize{Width: width, Height: height}
}

func (s *State) setSurface(surface *wl.Surface) {
	s.surface = surface
}

func (s *State) setLayerSurface(layerSurface *wl.LayerSurface) {
	s.layerSurface = layerSurface
}

func (s *State) setPointer(pointer *wl.Pointer) {
	s.pointer = pointer
}

func (s *State) setWindow(window *Window) {
	s.window = window
}

func (s *State) markConfigured() {
	s.configured = true
}

func (s *State) markClosed() {
	s.closed = true
}
