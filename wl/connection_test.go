package wl

import (
	"errors"
	"net"
	"os"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func socketPair(t *testing.T) (*net.UnixConn, *net.UnixConn) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		t.Fatalf("socketpair: %v", err)
	}
	wrap := func(fd int, name string) *net.UnixConn {
		f := os.NewFile(uintptr(fd), name)
		defer f.Close()
		c, err := net.FileConn(f)
		if err != nil {
			t.Fatalf("wrapping %s fd: %v", name, err)
		}
		return c.(*net.UnixConn)
	}
	return wrap(fds[0], "client"), wrap(fds[1], "server")
}

func testDisplay(t *testing.T) (*Display, *net.UnixConn) {
	t.Helper()
	client, server := socketPair(t)
	display, err := FromConn(client)
	if err != nil {
		t.Fatalf("FromConn: %v", err)
	}
	t.Cleanup(func() {
		display.Connection().Close()
		server.Close()
	})
	return display, server
}

// serverMsg marshals one compositor-to-client message.
func serverMsg(id ProxyId, opcode uint32, args ...interface{}) []byte {
	r := &Request{pid: id, opcode: opcode}
	for _, a := range args {
		r.Write(a)
	}
	return append(r.header(), r.data...)
}

func readAndDispatch(t *testing.T, c *Connection) (int, error) {
	t.Helper()
	guard, ok := c.PrepareRead()
	if !ok {
		t.Fatal("PrepareRead denied")
	}
	if err := guard.Read(); err != nil {
		t.Fatalf("Read: %v", err)
	}
	return c.DispatchPending()
}

func TestSendRequestBuffersUntilFlush(t *testing.T) {
	display, server := testDisplay(t)
	conn := display.Connection()

	callback, err := display.Sync()
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	buf := make([]byte, 64)
	server.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
	if n, err := server.Read(buf); err == nil {
		t.Fatalf("server saw %d bytes before flush", n)
	}

	if err := conn.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	server.SetReadDeadline(time.Now().Add(time.Second))
	n, err := server.Read(buf)
	if err != nil {
		t.Fatalf("server read: %v", err)
	}
	if n != 12 {
		t.Fatalf("sync request is %d bytes, want 12", n)
	}
	if got := order.Uint32(buf[0:4]); got != 1 {
		t.Errorf("request object id = %d, want display id 1", got)
	}
	word2 := order.Uint32(buf[4:8])
	if got := word2 & 0xffff; got != _DISPLAY_SYNC {
		t.Errorf("opcode = %d, want %d", got, _DISPLAY_SYNC)
	}
	if got := ProxyId(order.Uint32(buf[8:12])); got != callback.Id() {
		t.Errorf("new callback id = %d, want %d", got, callback.Id())
	}
}

func TestReadGuardSingleReader(t *testing.T) {
	display, _ := testDisplay(t)
	conn := display.Connection()

	guard, ok := conn.PrepareRead()
	if !ok {
		t.Fatal("first PrepareRead denied")
	}
	if _, ok := conn.PrepareRead(); ok {
		t.Fatal("second PrepareRead succeeded while guard held")
	}
	guard.Cancel()
	if err := guard.Read(); !errors.Is(err, ErrReadGuardHeld) {
		t.Errorf("Read on released guard = %v, want ErrReadGuardHeld", err)
	}

	second, ok := conn.PrepareRead()
	if !ok {
		t.Fatal("PrepareRead denied after Cancel")
	}
	second.Cancel()
}

func TestDispatchInArrivalOrder(t *testing.T) {
	display, server := testDisplay(t)
	conn := display.Connection()

	first, _ := display.Sync()
	second, _ := display.Sync()

	var got []uint32
	record := HandlerFunc(func(e interface{}) {
		got = append(got, e.(CallbackDoneEvent).CallbackData)
	})
	first.AddDoneHandler(record)
	second.AddDoneHandler(record)

	payload := append(
		serverMsg(first.Id(), _CALLBACK_EVENT_DONE, uint32(10)),
		serverMsg(second.Id(), _CALLBACK_EVENT_DONE, uint32(20))...)
	if _, err := server.Write(payload); err != nil {
		t.Fatalf("server write: %v", err)
	}

	n, err := readAndDispatch(t, conn)
	if err != nil {
		t.Fatalf("DispatchPending: %v", err)
	}
	if n != 2 {
		t.Errorf("dispatched %d events, want 2", n)
	}
	if len(got) != 2 || got[0] != 10 || got[1] != 20 {
		t.Errorf("delivery order = %v, want [10 20]", got)
	}
}

func TestDeleteIdDropsProxy(t *testing.T) {
	display, server := testDisplay(t)
	conn := display.Connection()

	callback, _ := display.Sync()
	fired := false
	callback.AddDoneHandler(HandlerFunc(func(interface{}) { fired = true }))

	server.Write(serverMsg(display.Id(), _DISPLAY_EVENT_DELETE_ID, uint32(callback.Id())))
	if _, err := readAndDispatch(t, conn); err != nil {
		t.Fatalf("dispatch delete_id: %v", err)
	}

	server.Write(serverMsg(callback.Id(), _CALLBACK_EVENT_DONE, uint32(1)))
	n, err := readAndDispatch(t, conn)
	if err != nil {
		t.Fatalf("dispatch stale event: %v", err)
	}
	if n != 0 || fired {
		t.Errorf("event for deleted id reached handler (n=%d fired=%v)", n, fired)
	}
}

func TestDisplayErrorSurfacesFromDispatch(t *testing.T) {
	display, server := testDisplay(t)
	conn := display.Connection()

	server.Write(serverMsg(display.Id(), _DISPLAY_EVENT_ERROR,
		uint32(display.Id()), uint32(3), "bad request"))

	_, err := readAndDispatch(t, conn)
	if err == nil {
		t.Fatal("display error did not surface from DispatchPending")
	}

	// one-shot: the next drain is clean
	if _, err := conn.DispatchPending(); err != nil {
		t.Errorf("second DispatchPending = %v, want nil", err)
	}
}

func TestBlockingDispatchRoundTrip(t *testing.T) {
	display, server := testDisplay(t)
	conn := display.Connection()

	callback, _ := display.Sync()
	done := false
	callback.AddDoneHandler(HandlerFunc(func(interface{}) { done = true }))

	go func() {
		buf := make([]byte, 64)
		if _, err := server.Read(buf); err != nil {
			return
		}
		server.Write(serverMsg(callback.Id(), _CALLBACK_EVENT_DONE, uint32(0)))
	}()

	n, err := conn.BlockingDispatch()
	if err != nil {
		t.Fatalf("BlockingDispatch: %v", err)
	}
	if n != 1 || !done {
		t.Errorf("BlockingDispatch delivered %d events (done=%v)", n, done)
	}
}

func TestPartialMessageStaysBuffered(t *testing.T) {
	display, server := testDisplay(t)
	conn := display.Connection()

	callback, _ := display.Sync()
	done := false
	callback.AddDoneHandler(HandlerFunc(func(interface{}) { done = true }))

	whole := serverMsg(callback.Id(), _CALLBACK_EVENT_DONE, uint32(0))
	server.Write(whole[:5])
	if _, err := readAndDispatch(t, conn); err != nil {
		t.Fatalf("dispatch partial: %v", err)
	}
	if done {
		t.Fatal("handler ran on a partial message")
	}

	server.Write(whole[5:])
	if _, err := readAndDispatch(t, conn); err != nil {
		t.Fatalf("dispatch remainder: %v", err)
	}
	if !done {
		t.Error("handler did not run once the message completed")
	}
}
