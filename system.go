// Package layershell hosts a GPU rendered UI component as a Wayland
// layer surface: a borderless panel or overlay the compositor anchors
// and stacks itself. The windowing system owns the protocol handshake,
// the rendering context and the event loop; what gets drawn belongs to
// the UI framework behind the toolkit contracts.
package layershell

import (
	"fmt"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/dkolbly/layershell/egl"
	"github.com/dkolbly/layershell/toolkit"
	"github.com/dkolbly/layershell/wl"
)

// defaultGLFactory is used when the configuration names no rendering
// context. The connection here is pure Go: it has no wl_display or
// wl_surface C pointers to hand to EGL, so there is no context it
// could safely build.
func defaultGLFactory(*wl.Display, *wl.Shm, *wl.Surface, uint32, uint32) (toolkit.GL, error) {
	return nil, ErrNoNativeHandle
}

// NativeGLFactory builds EGL contexts on caller-supplied native
// handles. The handles must be real wl_display/wl_surface pointers,
// typically obtained from a libwayland connection sharing this
// client's socket; protocol object ids are not valid here.
func NativeGLFactory(displayHandle, surfaceHandle unsafe.Pointer) GLFactory {
	return func(_ *wl.Display, _ *wl.Shm, _ *wl.Surface, width, height uint32) (toolkit.GL, error) {
		return egl.NewContext(displayHandle, surfaceHandle, width, height)
	}
}

// WindowingSystem ties the pieces together: the connection, the bound
// globals, the configured layer surface, the render adapter and the
// component instance. Build it through Builder; it arrives fully
// constructed or not at all.
type WindowingSystem struct {
	config  Config
	conn    *wl.Connection
	display *wl.Display

	registry   *wl.Registry
	compositor *wl.Compositor
	output     *wl.Output
	layerShell *wl.LayerShell
	seat       *wl.Seat
	shm        *wl.Shm

	state     *State
	handler   *eventHandler
	window    *Window
	component toolkit.Component
}

func newWindowingSystem(config Config) (*WindowingSystem, error) {
	logrus.Info("initializing windowing system")
	display, err := wl.Connect("")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	return setupWindowingSystem(display, config)
}

// setupWindowingSystem runs every construction phase against an
// already connected display. Integration tests enter here with their
// own socketpair-backed connection.
func setupWindowingSystem(display *wl.Display, config Config) (*WindowingSystem, error) {
	s := &WindowingSystem{
		config:  config,
		conn:    display.Connection(),
		display: display,
		state:   newState(config),
	}
	s.handler = newEventHandler(s.state)

	if err := s.bindGlobals(); err != nil {
		s.conn.Close()
		return nil, err
	}
	if err := s.setupSurface(); err != nil {
		s.conn.Close()
		return nil, err
	}
	if err := s.waitForConfigure(); err != nil {
		s.conn.Close()
		return nil, err
	}
	if err := s.initializeRendererAndUI(); err != nil {
		s.conn.Close()
		return nil, err
	}
	return s, nil
}

// bindGlobals sweeps the registry once, bounded by a sync barrier, and
// binds the fixed set of required globals. Any one missing fails the
// whole initialization; there is no degraded mode.
func (s *WindowingSystem) bindGlobals() error {
	registry, err := s.display.GetRegistry()
	if err != nil {
		return fmt.Errorf("%w: get registry: %v", ErrGlobalInitialization, err)
	}
	s.registry = registry

	callback, err := s.display.Sync()
	if err != nil {
		return fmt.Errorf("%w: sync: %v", ErrGlobalInitialization, err)
	}

	barrier := &syncBarrier{}
	callback.AddDoneHandler(barrier)

	binder := &globalBinder{s: s}
	registry.AddGlobalHandler(binder)

	for !barrier.done {
		if _, err := s.conn.BlockingDispatch(); err != nil {
			return fmt.Errorf("%w: registry dispatch: %v", ErrGlobalInitialization, err)
		}
	}
	registry.RemoveGlobalHandler(binder)
	callback.RemoveDoneHandler(barrier)

	for _, required := range []struct {
		name  string
		bound bool
	}{
		{"wl_compositor", s.compositor != nil},
		{"wl_output", s.output != nil},
		{"zwlr_layer_shell_v1", s.layerShell != nil},
		{"wl_seat", s.seat != nil},
	} {
		if !required.bound {
			return fmt.Errorf("%w: missing global %s", ErrGlobalInitialization, required.name)
		}
	}
	logrus.Debug("globals bound")
	return nil
}

// syncBarrier flips once the display sync callback fires.
type syncBarrier struct {
	done bool
}

func (b *syncBarrier) Handle(ev interface{}) {
	if _, ok := ev.(wl.CallbackDoneEvent); ok {
		b.done = true
	}
}

// globalBinder binds announced globals during the registry sweep.
type globalBinder struct {
	s *WindowingSystem
}

func (b *globalBinder) Handle(ev interface{}) {
	global, ok := ev.(wl.RegistryGlobalEvent)
	if !ok {
		return
	}
	if err := b.s.bindInterface(global); err != nil {
		logrus.WithError(err).Error("binding global")
	}
}

func (s *WindowingSystem) bindInterface(ev wl.RegistryGlobalEvent) error {
	conn := s.conn
	switch ev.Interface {
	case "wl_compositor":
		if s.compositor != nil {
			return nil
		}
		ret := wl.NewCompositor(conn)
		if err := s.registry.Bind(ev.Name, ev.Interface, boundVersion(ev.Version, 4), ret); err != nil {
			return fmt.Errorf("bind wl_compositor: %w", err)
		}
		s.compositor = ret
	case "wl_output":
		// one output is all a single panel needs
		if s.output != nil {
			return nil
		}
		ret := wl.NewOutput(conn)
		if err := s.registry.Bind(ev.Name, ev.Interface, boundVersion(ev.Version, 4), ret); err != nil {
			return fmt.Errorf("bind wl_output: %w", err)
		}
		s.output = ret
	case "zwlr_layer_shell_v1":
		if s.layerShell != nil {
			return nil
		}
		ret := wl.NewLayerShell(conn)
		if err := s.registry.Bind(ev.Name, ev.Interface, boundVersion(ev.Version, 4), ret); err != nil {
			return fmt.Errorf("bind zwlr_layer_shell_v1: %w", err)
		}
		s.layerShell = ret
	case "wl_seat":
		if s.seat != nil {
			return nil
		}
		ret := wl.NewSeat(conn)
		if err := s.registry.Bind(ev.Name, ev.Interface, boundVersion(ev.Version, 5), ret); err != nil {
			return fmt.Errorf("bind wl_seat: %w", err)
		}
		s.seat = ret
	case "wl_shm":
		// optional, only software swapchains use it
		if s.shm != nil {
			return nil
		}
		ret := wl.NewShm(conn)
		if err := s.registry.Bind(ev.Name, ev.Interface, 1, ret); err != nil {
			return fmt.Errorf("bind wl_shm: %w", err)
		}
		s.shm = ret
	}
	return nil
}

func boundVersion(announced, supported uint32) uint32 {
	if announced < supported {
		return announced
	}
	return supported
}

// setupSurface creates the surface, gives it the layer role on the
// chosen output, applies the static configuration and commits it. The
// commit is what starts the configure handshake.
func (s *WindowingSystem) setupSurface() error {
	surface, err := s.compositor.CreateSurface()
	if err != nil {
		return fmt.Errorf("%w: create surface: %v", ErrGlobalInitialization, err)
	}
	layerSurface, err := s.layerShell.GetLayerSurface(surface, s.output, s.config.Layer, s.config.Namespace)
	if err != nil {
		return fmt.Errorf("%w: get layer surface: %v", ErrGlobalInitialization, err)
	}
	pointer, err := s.seat.GetPointer()
	if err != nil {
		return fmt.Errorf("%w: get pointer: %v", ErrGlobalInitialization, err)
	}

	s.state.setSurface(surface)
	s.state.setLayerSurface(layerSurface)
	s.state.setPointer(pointer)

	layerSurface.AddConfigureHandler(s.handler)
	layerSurface.AddClosedHandler(s.handler)
	s.output.AddGeometryHandler(s.handler)
	s.output.AddModeHandler(s.handler)
	s.output.AddDoneHandler(s.handler)
	s.output.AddScaleHandler(s.handler)
	s.output.AddNameHandler(s.handler)
	s.output.AddDescriptionHandler(s.handler)
	pointer.AddEnterHandler(s.handler)
	pointer.AddLeaveHandler(s.handler)
	pointer.AddMotionHandler(s.handler)
	pointer.AddButtonHandler(s.handler)

	layerSurface.SetAnchor(s.config.Anchor)
	m := s.config.Margin
	layerSurface.SetMargin(m[0], m[1], m[2], m[3])
	layerSurface.SetExclusiveZone(s.config.ExclusiveZone)
	layerSurface.SetKeyboardInteractivity(s.config.KeyboardInteractivity)
	// width 0: the compositor picks it from the anchored edges
	layerSurface.SetSize(0, s.config.Height)
	if err := surface.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrGlobalInitialization, err)
	}
	return nil
}

// waitForConfigure drives the connection until the compositor has
// acknowledged a usable geometry for the surface.
func (s *WindowingSystem) waitForConfigure() error {
	logrus.Info("waiting for surface configure")
	for {
		if _, err := s.conn.BlockingDispatch(); err != nil {
			return fmt.Errorf("%w: %v", ErrDispatch, err)
		}
		if s.state.Closed() {
			return ErrSurfaceClosed
		}
		size := s.state.Size()
		if s.state.Configured() && size.Width > 0 && size.Height > 0 {
			logrus.WithFields(logrus.Fields{
				"width":  size.Width,
				"height": size.Height,
			}).Debug("surface configured")
			// the ack and the size commit were only buffered by the
			// dispatch above; they must reach the compositor before
			// setup is considered done
			if err := s.conn.Flush(); err != nil {
				return fmt.Errorf("%w: %v", ErrDispatch, err)
			}
			return nil
		}
	}
}

// initializeRendererAndUI creates the rendering context, exactly once
// and only after the first valid configure fixed the geometry, then
// instantiates the component on it.
func (s *WindowingSystem) initializeRendererAndUI() error {
	size := s.state.Size()
	factory := s.config.GLFactory
	if factory == nil {
		factory = defaultGLFactory
	}
	gl, err := factory(s.display, s.shm, s.state.Surface(), size.Width, size.Height)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrContextCreation, err)
	}

	window := newWindow(gl)
	component, err := s.config.Definition.Create(window, gl)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrComponentCreation, err)
	}
	window.bind(component.Window(), component.Renderer())

	s.window = window
	s.component = component
	s.state.setWindow(window)

	window.SetScaleFactor(s.config.ScaleFactor)
	window.SetSize(toolkit.Physical(size.Width, size.Height))
	if err := component.Show(); err != nil {
		return fmt.Errorf("%w: show: %v", ErrComponentCreation, err)
	}
	window.RequestRedraw()
	return nil
}

// Window is the render adapter for the panel.
func (s *WindowingSystem) Window() *Window {
	return s.window
}

// Component is the instantiated root component.
func (s *WindowingSystem) Component() toolkit.Component {
	return s.component
}

// State exposes the surface state for inspection.
func (s *WindowingSystem) State() *State {
	return s.state
}

// Display is the connection's display proxy.
func (s *WindowingSystem) Display() *wl.Display {
	return s.display
}

// Close tears the whole system down: surface role, surface, rendering
// context and connection go together, there is no partial teardown.
func (s *WindowingSystem) Close() error {
	if ls := s.state.LayerSurface(); ls != nil {
		ls.Destroy()
	}
	if surface := s.state.Surface(); surface != nil {
		surface.Destroy()
	}
	s.conn.Flush()
	if s.window != nil {
		if d, ok := s.window.gl.(interface{ Destroy() }); ok {
			d.Destroy()
		}
	}
	return s.conn.Close()
}
