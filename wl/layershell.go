package wl

// Bindings for the zwlr_layer_shell_v1 extension, the surface role for
// panels, docks and other chrome that the compositor positions itself.

// Layer is the stacking layer a surface is rendered on.
type Layer uint32

const (
	LayerBackground Layer = 0
	LayerBottom     Layer = 1
	LayerTop        Layer = 2
	LayerOverlay    Layer = 3
)

// Anchor is a bitmask of the screen edges a surface sticks to.
type Anchor uint32

const (
	AnchorTop    Anchor = 1
	AnchorBottom Anchor = 2
	AnchorLeft   Anchor = 4
	AnchorRight  Anchor = 8
)

// KeyboardInteractivity selects how the surface takes keyboard focus.
type KeyboardInteractivity uint32

const (
	KeyboardInteractivityNone      KeyboardInteractivity = 0
	KeyboardInteractivityExclusive KeyboardInteractivity = 1
	KeyboardInteractivityOnDemand  KeyboardInteractivity = 2
)

const (
	_LAYER_SHELL_GET_LAYER_SURFACE = 0
	_LAYER_SHELL_DESTROY           = 1
)

// LayerShell is the zwlr_layer_shell_v1 global.
type LayerShell struct {
	BaseProxy
}

func NewLayerShell(conn *Connection) *LayerShell {
	ret := new(LayerShell)
	conn.Register(ret)
	return ret
}

// GetLayerSurface assigns the layer surface role to a plain surface.
// The output may be nil to let the compositor pick one.
func (p *LayerShell) GetLayerSurface(surface *Surface, output *Output, layer Layer, namespace string) (*LayerSurface, error) {
	ret := NewLayerSurface(p.Connection())
	if output == nil {
		// null object argument
		return ret, p.Connection().SendRequest(p, _LAYER_SHELL_GET_LAYER_SURFACE, ret, surface, uint32(0), uint32(layer), namespace)
	}
	return ret, p.Connection().SendRequest(p, _LAYER_SHELL_GET_LAYER_SURFACE, ret, surface, output, uint32(layer), namespace)
}

func (p *LayerShell) Destroy() error {
	err := p.Connection().SendRequest(p, _LAYER_SHELL_DESTROY)
	p.Connection().Unregister(p)
	return err
}

// LayerShell has no events.
func (p *LayerShell) Dispatch(event *Event) {}

const (
	_LAYER_SURFACE_SET_SIZE                   = 0
	_LAYER_SURFACE_SET_ANCHOR                 = 1
	_LAYER_SURFACE_SET_EXCLUSIVE_ZONE         = 2
	_LAYER_SURFACE_SET_MARGIN                 = 3
	_LAYER_SURFACE_SET_KEYBOARD_INTERACTIVITY = 4
	_LAYER_SURFACE_GET_POPUP                  = 5
	_LAYER_SURFACE_ACK_CONFIGURE              = 6
	_LAYER_SURFACE_DESTROY                    = 7
	_LAYER_SURFACE_SET_LAYER                  = 8
)

const (
	_LAYER_SURFACE_EVENT_CONFIGURE = 0
	_LAYER_SURFACE_EVENT_CLOSED    = 1
)

// LayerSurface controls anchoring, margins, exclusive zone and the
// size negotiation of a layer surface. Every attribute change is
// double buffered; the owning Surface must be committed for it to
// take effect.
type LayerSurface struct {
	BaseProxy
	configureHandlers handlerList
	closedHandlers    handlerList
}

type LayerSurfaceConfigureEvent struct {
	Serial uint32
	Width  uint32
	Height uint32
}

type LayerSurfaceClosedEvent struct{}

func NewLayerSurface(conn *Connection) *LayerSurface {
	ret := new(LayerSurface)
	conn.Register(ret)
	return ret
}

// SetSize requests a size; zero on an axis asks the compositor to
// choose, which only works when the surface is anchored to both
// opposite edges of that axis.
func (p *LayerSurface) SetSize(width, height uint32) error {
	return p.Connection().SendRequest(p, _LAYER_SURFACE_SET_SIZE, width, height)
}

func (p *LayerSurface) SetAnchor(anchor Anchor) error {
	return p.Connection().SendRequest(p, _LAYER_SURFACE_SET_ANCHOR, uint32(anchor))
}

// SetExclusiveZone reserves compositor space along the anchored edge.
// Zero reserves nothing, negative values let the surface overlap other
// exclusive zones.
func (p *LayerSurface) SetExclusiveZone(zone int32) error {
	return p.Connection().SendRequest(p, _LAYER_SURFACE_SET_EXCLUSIVE_ZONE, zone)
}

func (p *LayerSurface) SetMargin(top, right, bottom, left int32) error {
	return p.Connection().SendRequest(p, _LAYER_SURFACE_SET_MARGIN, top, right, bottom, left)
}

func (p *LayerSurface) SetKeyboardInteractivity(ki KeyboardInteractivity) error {
	return p.Connection().SendRequest(p, _LAYER_SURFACE_SET_KEYBOARD_INTERACTIVITY, uint32(ki))
}

// AckConfigure acknowledges a configure event using the serial carried
// by that exact event. The compositor treats a client that commits
// without acking as unresponsive.
func (p *LayerSurface) AckConfigure(serial uint32) error {
	return p.Connection().SendRequest(p, _LAYER_SURFACE_ACK_CONFIGURE, serial)
}

func (p *LayerSurface) SetLayer(layer Layer) error {
	return p.Connection().SendRequest(p, _LAYER_SURFACE_SET_LAYER, uint32(layer))
}

func (p *LayerSurface) Destroy() error {
	err := p.Connection().SendRequest(p, _LAYER_SURFACE_DESTROY)
	p.Connection().Unregister(p)
	return err
}

func (p *LayerSurface) AddConfigureHandler(h Handler) {
	p.configureHandlers.add(h)
}

func (p *LayerSurface) RemoveConfigureHandler(h Handler) {
	p.configureHandlers.remove(h)
}

func (p *LayerSurface) AddClosedHandler(h Handler) {
	p.closedHandlers.add(h)
}

func (p *LayerSurface) RemoveClosedHandler(h Handler) {
	p.closedHandlers.remove(h)
}

func (p *LayerSurface) Dispatch(event *Event) {
	switch event.opcode {
	case _LAYER_SURFACE_EVENT_CONFIGURE:
		ev := LayerSurfaceConfigureEvent{}
		ev.Serial = event.Uint32()
		ev.Width = event.Uint32()
		ev.Height = event.Uint32()
		p.configureHandlers.emit(ev)
	case _LAYER_SURFACE_EVENT_CLOSED:
		p.closedHandlers.emit(LayerSurfaceClosedEvent{})
	}
}
