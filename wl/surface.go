package wl

import "github.com/sirupsen/logrus"

const (
	_COMPOSITOR_CREATE_SURFACE = 0
	_COMPOSITOR_CREATE_REGION  = 1
)

// Compositor is the surface factory global.
type Compositor struct {
	BaseProxy
}

func NewCompositor(conn *Connection) *Compositor {
	ret := new(Compositor)
	conn.Register(ret)
	return ret
}

func (p *Compositor) CreateSurface() (*Surface, error) {
	ret := NewSurface(p.Connection())
	return ret, p.Connection().SendRequest(p, _COMPOSITOR_CREATE_SURFACE, ret)
}

// Compositor has no events; the dispatcher only satisfies the
// requirement that every bound object can receive one.
func (p *Compositor) Dispatch(event *Event) {
	logrus.WithField("opcode", event.opcode).Debug("wl_compositor event ignored")
}

const (
	_SURFACE_DESTROY              = 0
	_SURFACE_ATTACH               = 1
	_SURFACE_DAMAGE               = 2
	_SURFACE_FRAME                = 3
	_SURFACE_SET_OPAQUE_REGION    = 4
	_SURFACE_SET_INPUT_REGION     = 5
	_SURFACE_COMMIT               = 6
	_SURFACE_SET_BUFFER_TRANSFORM = 7
	_SURFACE_SET_BUFFER_SCALE     = 8
)

const (
	_SURFACE_EVENT_ENTER = 0
	_SURFACE_EVENT_LEAVE = 1
)

// Surface is a compositor drawing target. Attribute changes are
// double buffered by the server and take effect on Commit.
type Surface struct {
	BaseProxy
	enterHandlers handlerList
	leaveHandlers handlerList
}

type SurfaceEnterEvent struct {
	Output *Output
}

type SurfaceLeaveEvent struct {
	Output *Output
}

func NewSurface(conn *Connection) *Surface {
	ret := new(Surface)
	conn.Register(ret)
	return ret
}

func (p *Surface) Destroy() error {
	err := p.Connection().SendRequest(p, _SURFACE_DESTROY)
	p.Connection().Unregister(p)
	return err
}

func (p *Surface) Attach(buffer *Buffer, x, y int32) error {
	if buffer == nil {
		// null buffer detaches the surface content
		return p.Connection().SendRequest(p, _SURFACE_ATTACH, uint32(0), x, y)
	}
	return p.Connection().SendRequest(p, _SURFACE_ATTACH, buffer, x, y)
}

func (p *Surface) Damage(x, y, width, height int32) error {
	return p.Connection().SendRequest(p, _SURFACE_DAMAGE, x, y, width, height)
}

func (p *Surface) Frame() (*Callback, error) {
	ret := NewCallback(p.Connection())
	return ret, p.Connection().SendRequest(p, _SURFACE_FRAME, ret)
}

func (p *Surface) Commit() error {
	return p.Connection().SendRequest(p, _SURFACE_COMMIT)
}

func (p *Surface) SetBufferScale(scale int32) error {
	return p.Connection().SendRequest(p, _SURFACE_SET_BUFFER_SCALE, scale)
}

func (p *Surface) AddEnterHandler(h Handler) {
	p.enterHandlers.add(h)
}

func (p *Surface) RemoveEnterHandler(h Handler) {
	p.enterHandlers.remove(h)
}

func (p *Surface) AddLeaveHandler(h Handler) {
	p.leaveHandlers.add(h)
}

func (p *Surface) RemoveLeaveHandler(h Handler) {
	p.leaveHandlers.remove(h)
}

func (p *Surface) Dispatch(event *Event) {
	switch event.opcode {
	case _SURFACE_EVENT_ENTER:
		ev := SurfaceEnterEvent{}
		ev.Output, _ = event.Proxy(p.Connection()).(*Output)
		p.enterHandlers.emit(ev)
	case _SURFACE_EVENT_LEAVE:
		ev := SurfaceLeaveEvent{}
		ev.Output, _ = event.Proxy(p.Connection()).(*Output)
		p.leaveHandlers.emit(ev)
	}
}
