package wl

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	_DISPLAY_SYNC         = 0
	_DISPLAY_GET_REGISTRY = 1
)

const (
	_DISPLAY_EVENT_ERROR     = 0
	_DISPLAY_EVENT_DELETE_ID = 1
)

// Display is the core global object, id 1 on every connection.
type Display struct {
	BaseProxy
	errorHandlers handlerList
}

type DisplayErrorEvent struct {
	ObjectId Proxy
	Code     uint32
	Message  string
}

func NewDisplay(conn *Connection) *Display {
	ret := new(Display)
	conn.Register(ret)
	return ret
}

// Sync asks the server for a barrier callback. The returned callback
// fires once every request sent before it has been processed.
func (p *Display) Sync() (*Callback, error) {
	ret := NewCallback(p.Connection())
	return ret, p.Connection().SendRequest(p, _DISPLAY_SYNC, ret)
}

func (p *Display) GetRegistry() (*Registry, error) {
	ret := NewRegistry(p.Connection())
	return ret, p.Connection().SendRequest(p, _DISPLAY_GET_REGISTRY, ret)
}

func (p *Display) AddErrorHandler(h Handler) {
	p.errorHandlers.add(h)
}

func (p *Display) RemoveErrorHandler(h Handler) {
	p.errorHandlers.remove(h)
}

func (p *Display) Dispatch(event *Event) {
	switch event.opcode {
	case _DISPLAY_EVENT_ERROR:
		ev := DisplayErrorEvent{}
		ev.ObjectId = event.Proxy(p.Connection())
		ev.Code = event.Uint32()
		ev.Message = event.String()
		logrus.WithFields(logrus.Fields{
			"code":    ev.Code,
			"message": ev.Message,
		}).Error("wayland display error")
		p.Connection().setProtocolError(fmt.Errorf("wl: display error %d: %s", ev.Code, ev.Message))
		p.errorHandlers.emit(ev)
	case _DISPLAY_EVENT_DELETE_ID:
		id := ProxyId(event.Uint32())
		p.Connection().unregisterId(id)
	}
}

const _CALLBACK_EVENT_DONE = 0

type Callback struct {
	BaseProxy
	doneHandlers handlerList
}

type CallbackDoneEvent struct {
	CallbackData uint32
}

func NewCallback(conn *Connection) *Callback {
	ret := new(Callback)
	conn.Register(ret)
	return ret
}

func (p *Callback) AddDoneHandler(h Handler) {
	p.doneHandlers.add(h)
}

func (p *Callback) RemoveDoneHandler(h Handler) {
	p.doneHandlers.remove(h)
}

func (p *Callback) Dispatch(event *Event) {
	switch event.opcode {
	case _CALLBACK_EVENT_DONE:
		ev := CallbackDoneEvent{}
		ev.CallbackData = event.Uint32()
		p.doneHandlers.emit(ev)
	}
}
