package wl

import "github.com/sirupsen/logrus"

const (
	_POINTER_SET_CURSOR = 0
	_POINTER_RELEASE    = 1
)

const (
	_POINTER_EVENT_ENTER  = 0
	_POINTER_EVENT_LEAVE  = 1
	_POINTER_EVENT_MOTION = 2
	_POINTER_EVENT_BUTTON = 3
	_POINTER_EVENT_AXIS   = 4
	_POINTER_EVENT_FRAME  = 5
)

const (
	PointerButtonStateReleased = 0
	PointerButtonStatePressed  = 1
)

// Pointer delivers the seat's pointer focus and motion stream.
// Coordinates are surface local, in the 24.8 fixed format.
type Pointer struct {
	BaseProxy
	enterHandlers  handlerList
	leaveHandlers  handlerList
	motionHandlers handlerList
	buttonHandlers handlerList
}

type PointerEnterEvent struct {
	Serial   uint32
	Surface  *Surface
	SurfaceX float32
	SurfaceY float32
}

type PointerLeaveEvent struct {
	Serial  uint32
	Surface *Surface
}

type PointerMotionEvent struct {
	Time     uint32
	SurfaceX float32
	SurfaceY float32
}

type PointerButtonEvent struct {
	Serial uint32
	Time   uint32
	Button uint32
	State  uint32
}

func NewPointer(conn *Connection) *Pointer {
	ret := new(Pointer)
	conn.Register(ret)
	return ret
}

func (p *Pointer) SetCursor(serial uint32, surface *Surface, hotspotX, hotspotY int32) error {
	return p.Connection().SendRequest(p, _POINTER_SET_CURSOR, serial, surface, hotspotX, hotspotY)
}

func (p *Pointer) Release() error {
	err := p.Connection().SendRequest(p, _POINTER_RELEASE)
	p.Connection().Unregister(p)
	return err
}

func (p *Pointer) AddEnterHandler(h Handler) {
	p.enterHandlers.add(h)
}

func (p *Pointer) RemoveEnterHandler(h Handler) {
	p.enterHandlers.remove(h)
}

func (p *Pointer) AddLeaveHandler(h Handler) {
	p.leaveHandlers.add(h)
}

func (p *Pointer) RemoveLeaveHandler(h Handler) {
	p.leaveHandlers.remove(h)
}

func (p *Pointer) AddMotionHandler(h Handler) {
	p.motionHandlers.add(h)
}

func (p *Pointer) RemoveMotionHandler(h Handler) {
	p.motionHandlers.remove(h)
}

func (p *Pointer) AddButtonHandler(h Handler) {
	p.buttonHandlers.add(h)
}

func (p *Pointer) RemoveButtonHandler(h Handler) {
	p.buttonHandlers.remove(h)
}

func (p *Pointer) Dispatch(event *Event) {
	switch event.opcode {
	case _POINTER_EVENT_ENTER:
		ev := PointerEnterEvent{}
		ev.Serial = event.Uint32()
		ev.Surface, _ = event.Proxy(p.Connection()).(*Surface)
		ev.SurfaceX = event.Float32()
		ev.SurfaceY = event.Float32()
		p.enterHandlers.emit(ev)
	case _POINTER_EVENT_LEAVE:
		ev := PointerLeaveEvent{}
		ev.Serial = event.Uint32()
		ev.Surface, _ = event.Proxy(p.Connection()).(*Surface)
		p.leaveHandlers.emit(ev)
	case _POINTER_EVENT_MOTION:
		ev := PointerMotionEvent{}
		ev.Time = event.Uint32()
		ev.SurfaceX = event.Float32()
		ev.SurfaceY = event.Float32()
		p.motionHandlers.emit(ev)
	case _POINTER_EVENT_BUTTON:
		ev := PointerButtonEvent{}
		ev.Serial = event.Uint32()
		ev.Time = event.Uint32()
		ev.Button = event.Uint32()
		ev.State = event.Uint32()
		p.buttonHandlers.emit(ev)
	default:
		// axis, frame and the finer grained scroll events carry no
		// meaning for a panel surface
		logrus.WithField("opcode", event.opcode).Debug("wl_pointer event ignored")
	}
}
