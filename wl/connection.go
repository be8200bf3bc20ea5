package wl

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

var (
	// ErrConnectionClosed is returned for operations on a connection
	// that has been closed or never established.
	ErrConnectionClosed = errors.New("wl: connection closed")

	// ErrReadGuardHeld reports a second PrepareRead while a guard from
	// an earlier prepare is still outstanding. The protocol allows at
	// most one reader of the incoming queue at a time.
	ErrReadGuardHeld = errors.New("wl: read already prepared")
)

// Connection is the transport to the compositor. It owns the proxy
// table, the outgoing request buffer and the queue of decoded but not
// yet dispatched events.
//
// Requests are buffered by SendRequest and only written by Flush.
// Incoming bytes are pulled off the socket by a ReadGuard and decoded
// into the pending queue; DispatchPending drains that queue in arrival
// order.
type Connection struct {
	mu        sync.RWMutex
	conn      *net.UnixConn
	fd        int
	currentId ProxyId
	objects   map[ProxyId]Proxy

	out []byte // marshalled requests awaiting Flush
	oob []byte // control data (fds) awaiting Flush

	in      []byte // partially received message bytes
	fds     []uintptr
	pending []*Event
	reading bool

	protoErr error
}

// Connect dials the compositor socket and returns the Display proxy.
// An empty name falls back to $WAYLAND_DISPLAY, then "wayland-0".
// Relative names resolve under the XDG runtime directory.
func Connect(name string) (*Display, error) {
	if name == "" {
		name = os.Getenv("WAYLAND_DISPLAY")
	}
	if name == "" {
		name = "wayland-0"
	}
	if !filepath.IsAbs(name) {
		if xdg.RuntimeDir == "" {
			return nil, errors.New("wl: XDG_RUNTIME_DIR not set in the environment")
		}
		name = filepath.Join(xdg.RuntimeDir, name)
	}
	conn, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: name, Net: "unix"})
	if err != nil {
		return nil, fmt.Errorf("wl: connect to %s: %w", name, err)
	}
	return newDisplayConnection(conn)
}

// FromConn wraps an already connected unix socket. Tests use this with
// one end of a socketpair.
func FromConn(conn *net.UnixConn) (*Display, error) {
	return newDisplayConnection(conn)
}

func newDisplayConnection(conn *net.UnixConn) (*Display, error) {
	c := &Connection{
		conn:    conn,
		fd:      -1,
		objects: make(map[ProxyId]Proxy),
	}
	raw, err := conn.SyscallConn()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("wl: raw connection: %w", err)
	}
	cerr := raw.Control(func(fd uintptr) { c.fd = int(fd) })
	if cerr != nil {
		conn.Close()
		return nil, fmt.Errorf("wl: socket fd: %w", cerr)
	}
	return NewDisplay(c), nil
}

// Fd is the socket descriptor, for readiness polling only.
func (c *Connection) Fd() int {
	return c.fd
}

func (c *Connection) Register(proxy Proxy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentId += 1
	proxy.SetId(c.currentId)
	proxy.SetConnection(c)
	c.objects[c.currentId] = proxy
}

func (c *Connection) Unregister(proxy Proxy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.objects, proxy.Id())
}

func (c *Connection) lookupProxy(id ProxyId) Proxy {
	c.mu.RLock()
	proxy, ok := c.objects[id]
	c.mu.RUnlock()
	if !ok {
		return nil
	}
	return proxy
}

func (c *Connection) unregisterId(id ProxyId) {
	c.mu.Lock()
	delete(c.objects, id)
	c.mu.Unlock()
}

// SendRequest marshals a request into the outgoing buffer. The wire
// write happens on the next Flush.
func (c *Connection) SendRequest(proxy Proxy, opcode uint32, args ...interface{}) error {
	if c.conn == nil {
		return ErrConnectionClosed
	}
	msg := NewRequest(proxy, opcode)
	for _, arg := range args {
		msg.Write(arg)
	}
	c.mu.Lock()
	c.out = append(c.out, msg.header()...)
	c.out = append(c.out, msg.data...)
	c.oob = append(c.oob, msg.oob...)
	c.mu.Unlock()
	return nil
}

// Flush writes all buffered requests to the socket.
func (c *Connection) Flush() error {
	if c.conn == nil {
		return ErrConnectionClosed
	}
	c.mu.Lock()
	out, oob := c.out, c.oob
	c.out, c.oob = nil, nil
	c.mu.Unlock()
	if len(out) == 0 && len(oob) == 0 {
		return nil
	}
	n, oobn, err := c.conn.WriteMsgUnix(out, oob, nil)
	if err != nil {
		return fmt.Errorf("wl: flush: %w", err)
	}
	if oobn != len(oob) {
		return errors.New("wl: flush: control data truncated")
	}
	// sendmsg on a stream socket may write short; push the tail
	// through the plain write path.
	for n < len(out) {
		m, err := c.conn.Write(out[n:])
		if err != nil {
			return fmt.Errorf("wl: flush: %w", err)
		}
		n += m
	}
	return nil
}

// ReadGuard is the exclusive right to pull bytes off the socket once.
// It is consumed by Read or released by Cancel within the same loop
// iteration.
type ReadGuard struct {
	c    *Connection
	done bool
}

// PrepareRead claims the reader slot. The second return is false while
// a previous guard is outstanding.
func (c *Connection) PrepareRead() (*ReadGuard, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reading {
		return nil, false
	}
	c.reading = true
	return &ReadGuard{c: c}, true
}

// Read performs one receive and decodes every complete message into
// the pending queue. It blocks until at least some bytes arrive, so
// callers gate it on poll readiness.
func (g *ReadGuard) Read() error {
	if g.done {
		return ErrReadGuardHeld
	}
	err := g.c.readOnce()
	g.release()
	return err
}

// Cancel releases the reader slot without touching the socket.
func (g *ReadGuard) Cancel() {
	g.release()
}

func (g *ReadGuard) release() {
	if g.done {
		return
	}
	g.done = true
	g.c.mu.Lock()
	g.c.reading = false
	g.c.mu.Unlock()
}

func (c *Connection) readOnce() error {
	if c.conn == nil {
		return ErrConnectionClosed
	}
	buf := make([]byte, 4096)
	oob := make([]byte, 256)
	n, oobn, _, _, err := c.conn.ReadMsgUnix(buf, oob)
	if err != nil {
		return fmt.Errorf("wl: read: %w", err)
	}
	if oobn > 0 {
		scms, err := unix.ParseSocketControlMessage(oob[:oobn])
		if err != nil {
			return fmt.Errorf("wl: control message parse: %w", err)
		}
		for _, scm := range scms {
			fds, err := unix.ParseUnixRights(&scm)
			if err != nil {
				continue
			}
			for _, fd := range fds {
				c.fds = append(c.fds, uintptr(fd))
			}
		}
	}
	c.in = append(c.in, buf[:n]...)
	return c.decodePending()
}

// decodePending splits the receive buffer into complete messages and
// queues them. A trailing partial message stays buffered for the next
// read.
func (c *Connection) decodePending() error {
	for len(c.in) >= 8 {
		word2 := order.Uint32(c.in[4:8])
		size := int(word2 >> 16)
		if size < 8 {
			return fmt.Errorf("wl: invalid message size %d", size)
		}
		if len(c.in) < size {
			break
		}
		ev := &Event{
			pid:    ProxyId(order.Uint32(c.in[0:4])),
			opcode: word2 & 0xffff,
			data:   newEventBuffer(c.in[8:size]),
			conn:   c,
		}
		c.in = c.in[size:]
		c.pending = append(c.pending, ev)
	}
	return nil
}

// DispatchPending routes every queued event to its proxy, in arrival
// order, and reports how many were delivered. Events for ids the
// client no longer tracks are dropped. A display error received during
// the drain surfaces as the returned error.
func (c *Connection) DispatchPending() (int, error) {
	count := 0
	for {
		c.mu.Lock()
		if len(c.pending) == 0 {
			c.mu.Unlock()
			break
		}
		ev := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()

		proxy := c.lookupProxy(ev.pid)
		if proxy == nil {
			logrus.WithField("id", ev.pid).Debug("event for unknown proxy dropped")
			continue
		}
		if d, ok := proxy.(Dispatcher); ok {
			d.Dispatch(ev)
			count++
		} else {
			logrus.WithField("id", ev.pid).Debug("proxy has no dispatcher")
		}
	}
	if c.protoErr != nil {
		err := c.protoErr
		c.protoErr = nil
		return count, err
	}
	return count, nil
}

// BlockingDispatch flushes, waits for incoming events and dispatches
// them. The setup phase uses it to drive protocol round trips before
// the main loop exists.
func (c *Connection) BlockingDispatch() (int, error) {
	if err := c.Flush(); err != nil {
		return 0, err
	}
	c.mu.RLock()
	havePending := len(c.pending) > 0
	c.mu.RUnlock()
	if !havePending {
		guard, ok := c.PrepareRead()
		if !ok {
			return 0, ErrReadGuardHeld
		}
		if err := guard.Read(); err != nil {
			return 0, err
		}
	}
	return c.DispatchPending()
}

func (c *Connection) takeFd() uintptr {
	if len(c.fds) == 0 {
		return 0
	}
	fd := c.fds[0]
	c.fds = c.fds[1:]
	return fd
}

func (c *Connection) setProtocolError(err error) {
	if c.protoErr == nil {
		c.protoErr = err
	}
}

func (c *Connection) Close() error {
	if c.conn == nil {
		return ErrConnectionClosed
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
