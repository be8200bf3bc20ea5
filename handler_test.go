package layershell

import (
	"testing"

	"github.com/dkolbly/layershell/toolkit"
	"github.com/dkolbly/layershell/wl"
)

func testHandler(config Config) (*eventHandler, *State) {
	state := newState(config)
	return newEventHandler(state), state
}

func TestConfigureAcceptsProposedSize(t *testing.T) {
	config := DefaultConfig()
	h, state := testHandler(config)

	h.Handle(wl.LayerSurfaceConfigureEvent{Serial: 1, Width: 300, Height: 30})

	if !state.Configured() {
		t.Error("state not marked configured")
	}
	if got := state.Size(); got.Width != 300 || got.Height != 30 {
		t.Errorf("size = %dx%d, want 300x30", got.Width, got.Height)
	}
}

func TestZeroConfigureReappliesLastSize(t *testing.T) {
	h, state := testHandler(DefaultConfig())

	h.Handle(wl.LayerSurfaceConfigureEvent{Serial: 1, Width: 300, Height: 30})
	h.Handle(wl.LayerSurfaceConfigureEvent{Serial: 2, Width: 0, Height: 0})

	if got := state.Size(); got.Width != 300 || got.Height != 30 {
		t.Errorf("size after zero configure = %dx%d, want unchanged 300x30",
			got.Width, got.Height)
	}
}

func TestZeroConfigureFallsBackToOutputWidth(t *testing.T) {
	config := DefaultConfig()
	config.Height = 30
	h, state := testHandler(config)

	h.Handle(wl.OutputModeEvent{Width: 1920, Height: 1080})
	h.Handle(wl.LayerSurfaceConfigureEvent{Serial: 1, Width: 0, Height: 0})

	if got := state.OutputSize(); got.Width != 1920 || got.Height != 1080 {
		t.Errorf("output size = %dx%d, want 1920x1080", got.Width, got.Height)
	}
	if got := state.Size(); got.Width != 1920 || got.Height != 30 {
		t.Errorf("size = %dx%d, want output width x configured height 1920x30",
			got.Width, got.Height)
	}
}

func TestZeroConfigureWithNothingKnown(t *testing.T) {
	h, state := testHandler(DefaultConfig())

	h.Handle(wl.LayerSurfaceConfigureEvent{Serial: 1, Width: 0, Height: 0})

	if !state.Configured() {
		t.Error("configure not acknowledged")
	}
	if got := state.Size(); got.Width != 0 || got.Height != 0 {
		t.Errorf("size = %dx%d, want still degenerate", got.Width, got.Height)
	}
}

func TestClosedStopsSizeUpdates(t *testing.T) {
	h, state := testHandler(DefaultConfig())

	h.Handle(wl.LayerSurfaceClosedEvent{})
	if !state.Closed() {
		t.Fatal("state not marked closed")
	}

	h.Handle(wl.LayerSurfaceConfigureEvent{Serial: 1, Width: 300, Height: 30})
	if got := state.Size(); got.Width != 0 || got.Height != 0 {
		t.Errorf("size changed after close: %dx%d", got.Width, got.Height)
	}
}

func TestPointerEventsScaleToLogical(t *testing.T) {
	config := DefaultConfig()
	config.ScaleFactor = 2
	h, state := testHandler(config)

	sink := &recordingSink{}
	window := newWindow(&fakeGL{})
	window.bind(sink, &fakeRenderer{})
	state.setWindow(window)

	h.Handle(wl.PointerEnterEvent{Serial: 1, SurfaceX: 100, SurfaceY: 50})

	want := toolkit.LogicalPosition{X: 50, Y: 25}
	if got := state.PointerPosition(); got != want {
		t.Errorf("pointer position = %+v, want %+v", got, want)
	}
	if len(sink.events) != 1 {
		t.Fatalf("framework got %d events, want 1", len(sink.events))
	}
	moved, ok := sink.events[0].(toolkit.PointerMovedEvent)
	if !ok || moved.Position != want {
		t.Errorf("framework event = %#v, want PointerMovedEvent at %+v", sink.events[0], want)
	}
}

func TestPointerButtonUsesLastPosition(t *testing.T) {
	h, state := testHandler(DefaultConfig())

	sink := &recordingSink{}
	window := newWindow(&fakeGL{})
	window.bind(sink, &fakeRenderer{})
	state.setWindow(window)

	h.Handle(wl.PointerMotionEvent{SurfaceX: 10, SurfaceY: 20})
	h.Handle(wl.PointerButtonEvent{Button: 0x110, State: wl.PointerButtonStatePressed})
	h.Handle(wl.PointerButtonEvent{Button: 0x110, State: wl.PointerButtonStateReleased})
	h.Handle(wl.PointerLeaveEvent{})

	if len(sink.events) != 4 {
		t.Fatalf("framework got %d events, want 4", len(sink.events))
	}
	pos := toolkit.LogicalPosition{X: 10, Y: 20}
	if ev, ok := sink.events[1].(toolkit.PointerPressedEvent); !ok ||
		ev.Button != toolkit.ButtonLeft || ev.Position != pos {
		t.Errorf("press = %#v, want left press at %+v", sink.events[1], pos)
	}
	if ev, ok := sink.events[2].(toolkit.PointerReleasedEvent); !ok ||
		ev.Button != toolkit.ButtonLeft || ev.Position != pos {
		t.Errorf("release = %#v, want left release at %+v", sink.events[2], pos)
	}
	if _, ok := sink.events[3].(toolkit.PointerExitedEvent); !ok {
		t.Errorf("leave = %#v, want PointerExitedEvent", sink.events[3])
	}
}
