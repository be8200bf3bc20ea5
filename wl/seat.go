package wl

import "github.com/sirupsen/logrus"

const (
	_SEAT_GET_POINTER  = 0
	_SEAT_GET_KEYBOARD = 1
	_SEAT_GET_TOUCH    = 2
	_SEAT_RELEASE      = 3
)

const (
	_SEAT_EVENT_CAPABILITIES = 0
	_SEAT_EVENT_NAME         = 1
)

const (
	SeatCapabilityPointer  = 1
	SeatCapabilityKeyboard = 2
	SeatCapabilityTouch    = 4
)

// Seat is one group of input devices.
type Seat struct {
	BaseProxy
	capabilitiesHandlers handlerList
	nameHandlers         handlerList
}

type SeatCapabilitiesEvent struct {
	Capabilities uint32
}

type SeatNameEvent struct {
	Name string
}

func NewSeat(conn *Connection) *Seat {
	ret := new(Seat)
	conn.Register(ret)
	return ret
}

func (p *Seat) GetPointer() (*Pointer, error) {
	ret := NewPointer(p.Connection())
	return ret, p.Connection().SendRequest(p, _SEAT_GET_POINTER, ret)
}

func (p *Seat) GetKeyboard() (*Keyboard, error) {
	ret := NewKeyboard(p.Connection())
	return ret, p.Connection().SendRequest(p, _SEAT_GET_KEYBOARD, ret)
}

func (p *Seat) GetTouch() (*Touch, error) {
	ret := NewTouch(p.Connection())
	return ret, p.Connection().SendRequest(p, _SEAT_GET_TOUCH, ret)
}

func (p *Seat) Release() error {
	err := p.Connection().SendRequest(p, _SEAT_RELEASE)
	p.Connection().Unregister(p)
	return err
}

func (p *Seat) AddCapabilitiesHandler(h Handler) {
	p.capabilitiesHandlers.add(h)
}

func (p *Seat) RemoveCapabilitiesHandler(h Handler) {
	p.capabilitiesHandlers.remove(h)
}

func (p *Seat) AddNameHandler(h Handler) {
	p.nameHandlers.add(h)
}

func (p *Seat) RemoveNameHandler(h Handler) {
	p.nameHandlers.remove(h)
}

func (p *Seat) Dispatch(event *Event) {
	switch event.opcode {
	case _SEAT_EVENT_CAPABILITIES:
		ev := SeatCapabilitiesEvent{}
		ev.Capabilities = event.Uint32()
		p.capabilitiesHandlers.emit(ev)
	case _SEAT_EVENT_NAME:
		ev := SeatNameEvent{}
		ev.Name = event.String()
		p.nameHandlers.emit(ev)
	}
}

// Keyboard and Touch are bound only so their events have somewhere to
// go; the panel never interprets them.

type Keyboard struct {
	BaseProxy
}

func NewKeyboard(conn *Connection) *Keyboard {
	ret := new(Keyboard)
	conn.Register(ret)
	return ret
}

func (p *Keyboard) Dispatch(event *Event) {
	logrus.WithField("opcode", event.opcode).Debug("wl_keyboard event ignored")
}

type Touch struct {
	BaseProxy
}

func NewTouch(conn *Connection) *Touch {
	ret := new(Touch)
	conn.Register(ret)
	return ret
}

func (p *Touch) Dispatch(event *Event) {
	logrus.WithField("opcode", event.opcode).Debug("wl_touch event ignored")
}
