package wl

import (
	"bytes"
)

// Event is one decoded message from the compositor, positioned at the
// start of its arguments. Argument accessors consume the payload in
// protocol order; they panic on a truncated message because that can
// only mean the wire parser or the binding is wrong.
type Event struct {
	pid    ProxyId
	opcode uint32
	data   *bytes.Buffer
	conn   *Connection
}

// newEventBuffer copies the payload out of the receive buffer, which
// gets resliced as further messages are decoded.
func newEventBuffer(b []byte) *bytes.Buffer {
	data := make([]byte, len(b))
	copy(data, b)
	return bytes.NewBuffer(data)
}

func (e *Event) ProxyId() ProxyId {
	return e.pid
}

func (e *Event) Opcode() uint32 {
	return e.opcode
}

// Proxy resolves an object argument against the connection's proxy
// table. Returns nil for a null object or an id the client no longer
// tracks.
func (e *Event) Proxy(c *Connection) Proxy {
	id := ProxyId(e.Uint32())
	if id == 0 {
		return nil
	}
	return c.lookupProxy(id)
}

// FD pops the next file descriptor received alongside this batch of
// events. Descriptors arrive out of band and are consumed in order.
func (e *Event) FD() uintptr {
	return e.conn.takeFd()
}

func (e *Event) String() string {
	l := int(e.Uint32())
	buf := e.data.Next(l)
	if len(buf) != l {
		panic("wl: unable to read string")
	}
	ret := string(bytes.TrimRight(buf, "\x00"))
	// padding to 32 bit boundary
	if (l & 0x3) != 0 {
		e.data.Next(4 - (l & 0x3))
	}
	return ret
}

func (e *Event) Int32() int32 {
	return int32(e.Uint32())
}

func (e *Event) Uint32() uint32 {
	buf := e.data.Next(4)
	if len(buf) != 4 {
		panic("wl: unable to read unsigned int")
	}
	return order.Uint32(buf)
}

func (e *Event) Float32() float32 {
	return float32(fixedToFloat64(e.Int32()))
}

func (e *Event) Array() []int32 {
	l := e.Uint32()
	arr := make([]int32, l/4)
	for i := range arr {
		arr[i] = e.Int32()
	}
	return arr
}
