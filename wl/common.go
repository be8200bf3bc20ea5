package wl

import "sync"

type ProxyId uint32

// Dispatcher decodes one incoming event for the proxy it belongs to and
// hands it to the registered handlers.
type Dispatcher interface {
	Dispatch(*Event)
}

// Handler receives decoded protocol events. Handlers are registered per
// event type on the proxy the event belongs to.
type Handler interface {
	Handle(ev interface{})
}

type HandlerFunc func(interface{})

func (f HandlerFunc) Handle(ev interface{}) {
	f(ev)
}

type Proxy interface {
	Connection() *Connection
	SetConnection(c *Connection)
	Id() ProxyId
	SetId(id ProxyId)
}

type BaseProxy struct {
	id   ProxyId
	conn *Connection
}

func (p *BaseProxy) Id() ProxyId {
	return p.id
}

func (p *BaseProxy) SetId(id ProxyId) {
	p.id = id
}

func (p *BaseProxy) Connection() *Connection {
	return p.conn
}

func (p *BaseProxy) SetConnection(c *Connection) {
	p.conn = c
}

// handlerList is the per-event handler registry embedded in protocol
// objects.
type handlerList struct {
	mu       sync.RWMutex
	handlers []Handler
}

func (l *handlerList) add(h Handler) {
	if h == nil {
		return
	}
	l.mu.Lock()
	l.handlers = append(l.handlers, h)
	l.mu.Unlock()
}

func (l *handlerList) remove(h Handler) {
	l.mu.Lock()
	for i, e := range l.handlers {
		if e == h {
			l.handlers = append(l.handlers[:i], l.handlers[i+1:]...)
			break
		}
	}
	l.mu.Unlock()
}

func (l *handlerList) emit(ev interface{}) {
	l.mu.RLock()
	handlers := make([]Handler, len(l.handlers))
	copy(handlers, l.handlers)
	l.mu.RUnlock()
	for _, h := range handlers {
		h.Handle(ev)
	}
}
