package wl

import (
	"golang.org/x/sys/unix"
)

// Request is one outgoing message under construction. Marshalled bytes
// accumulate in the connection's outgoing buffer on Send; nothing hits
// the socket until the connection is flushed.
type Request struct {
	pid    ProxyId
	opcode uint32
	data   []byte
	oob    []byte
}

func NewRequest(p Proxy, opcode uint32) *Request {
	req := new(Request)
	req.pid = p.Id()
	req.opcode = opcode
	return req
}

func (r *Request) PutUint32(u uint32) {
	var buf [4]byte
	order.PutUint32(buf[:], u)
	r.data = append(r.data, buf[:]...)
}

func (r *Request) PutProxy(p Proxy) {
	if p == nil {
		r.PutUint32(0)
		return
	}
	r.PutUint32(uint32(p.Id()))
}

func (r *Request) PutInt32(i int32) {
	r.PutUint32(uint32(i))
}

func (r *Request) PutFloat32(f float32) {
	fx := float64ToFixed(float64(f))
	r.PutUint32(uint32(fx))
}

// PutString writes the string's length including its NUL terminator,
// then the bytes padded out to the 32 bit boundary.
func (r *Request) PutString(s string) {
	r.PutUint32(uint32(len(s) + 1))
	r.data = append(r.data, []byte(s)...)
	padded := (len(s) + 1 + 3) &^ 3
	r.data = append(r.data, make([]byte, padded-len(s))...)
}

func (r *Request) PutArray(a []int32) {
	r.PutUint32(uint32(len(a) * 4))
	for _, e := range a {
		r.PutUint32(uint32(e))
	}
}

func (r *Request) PutFd(fd uintptr) {
	rights := unix.UnixRights(int(fd))
	r.oob = append(r.oob, rights...)
}

func (r *Request) Write(arg interface{}) {
	switch t := arg.(type) {
	case Proxy:
		r.PutProxy(t)
	case uint32:
		r.PutUint32(t)
	case int32:
		r.PutInt32(t)
	case float32:
		r.PutFloat32(t)
	case string:
		r.PutString(t)
	case []int32:
		r.PutArray(t)
	case uintptr:
		r.PutFd(t)
	default:
		panic("wl: invalid request parameter type")
	}
}

// header returns the 8 byte message header: object id, then message
// size in the upper 16 bits of the second word with the opcode in the
// lower 16.
func (r *Request) header() []byte {
	size := uint32(len(r.data) + 8)
	var buf [8]byte
	order.PutUint32(buf[0:4], uint32(r.pid))
	order.PutUint32(buf[4:8], size<<16|r.opcode&0x0000ffff)
	return buf[:]
}
