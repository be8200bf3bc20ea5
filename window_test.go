package layershell

import (
	"errors"
	"testing"

	"github.com/dkolbly/layershell/toolkit"
)

type fakeGL struct {
	resizes []toolkit.PhysicalSize
	swaps   int
	swapErr error
}

func (g *fakeGL) EnsureCurrent() error { return nil }

func (g *fakeGL) SwapBuffers() error {
	g.swaps++
	return g.swapErr
}

func (g *fakeGL) Resize(width, height uint32) error {
	g.resizes = append(g.resizes, toolkit.PhysicalSize{Width: width, Height: height})
	return nil
}

type fakeRenderer struct {
	renders int
	err     error
}

func (r *fakeRenderer) Render() error {
	r.renders++
	return r.err
}

type recordingSink struct {
	events []toolkit.Event
}

func (s *recordingSink) DispatchEvent(ev toolkit.Event) {
	s.events = append(s.events, ev)
}

func TestRenderFrameIfDirtyRendersExactlyOnce(t *testing.T) {
	gl := &fakeGL{}
	renderer := &fakeRenderer{}
	w := newWindow(gl)
	w.bind(&recordingSink{}, renderer)

	w.RenderFrameIfDirty()
	if renderer.renders != 0 {
		t.Fatalf("rendered %d frames while clean", renderer.renders)
	}

	w.RequestRedraw()
	w.RenderFrameIfDirty()
	w.RenderFrameIfDirty()
	if renderer.renders != 1 {
		t.Errorf("rendered %d frames for one redraw request, want 1", renderer.renders)
	}
	if gl.swaps != 1 {
		t.Errorf("swapped %d times, want 1", gl.swaps)
	}

	w.RequestRedraw()
	w.RenderFrameIfDirty()
	if renderer.renders != 2 || gl.swaps != 2 {
		t.Errorf("after second request: renders=%d swaps=%d, want 2/2",
			renderer.renders, gl.swaps)
	}
}

func TestRenderErrorSkipsPresent(t *testing.T) {
	gl := &fakeGL{}
	renderer := &fakeRenderer{err: errors.New("shader exploded")}
	w := newWindow(gl)
	w.bind(&recordingSink{}, renderer)

	w.RequestRedraw()
	w.RenderFrameIfDirty()
	if renderer.renders != 1 {
		t.Fatalf("renders = %d, want 1", renderer.renders)
	}
	if gl.swaps != 0 {
		t.Errorf("presented a failed frame (%d swaps)", gl.swaps)
	}

	// the failure consumed the dirty flag
	w.RenderFrameIfDirty()
	if renderer.renders != 1 {
		t.Errorf("failed frame retried without a redraw request")
	}
}

func TestSetSizeResizesAndNotifiesFramework(t *testing.T) {
	gl := &fakeGL{}
	sink := &recordingSink{}
	w := newWindow(gl)
	w.bind(sink, &fakeRenderer{})
	w.SetScaleFactor(2)
	sink.events = nil

	w.SetSize(toolkit.Physical(300, 30))

	if got := w.Size(); got.Width != 300 || got.Height != 30 {
		t.Errorf("Size() = %dx%d, want 300x30", got.Width, got.Height)
	}
	if len(gl.resizes) != 1 || gl.resizes[0] != (toolkit.PhysicalSize{Width: 300, Height: 30}) {
		t.Errorf("drawable resizes = %v, want one 300x30", gl.resizes)
	}
	if len(sink.events) != 1 {
		t.Fatalf("framework got %d events, want 1", len(sink.events))
	}
	resized, ok := sink.events[0].(toolkit.ResizedEvent)
	if !ok {
		t.Fatalf("framework event = %T, want ResizedEvent", sink.events[0])
	}
	if resized.Size.Width != 150 || resized.Size.Height != 15 {
		t.Errorf("logical size = %vx%v, want 150x15 at scale 2",
			resized.Size.Width, resized.Size.Height)
	}
}

func TestSetSizeZeroSkipsDrawableResize(t *testing.T) {
	gl := &fakeGL{}
	w := newWindow(gl)
	w.bind(&recordingSink{}, &fakeRenderer{})

	w.SetSize(toolkit.Physical(0, 30))
	if len(gl.resizes) != 0 {
		t.Errorf("resized drawable to degenerate size: %v", gl.resizes)
	}
}

func TestSetScaleFactorNotifiesFramework(t *testing.T) {
	sink := &recordingSink{}
	w := newWindow(&fakeGL{})
	w.bind(sink, &fakeRenderer{})

	w.SetScaleFactor(1.5)
	if got := w.ScaleFactor(); got != 1.5 {
		t.Errorf("ScaleFactor() = %v, want 1.5", got)
	}
	if len(sink.events) != 1 {
		t.Fatalf("framework got %d events, want 1", len(sink.events))
	}
	if ev, ok := sink.events[0].(toolkit.ScaleFactorChangedEvent); !ok || ev.Factor != 1.5 {
		t.Errorf("framework event = %#v, want ScaleFactorChangedEvent{1.5}", sink.events[0])
	}
}
