package wl

import (
	"testing"
	"time"
)

// readRequests drains the server side into (id, opcode, args) tuples.
func readRequests(t *testing.T, server interface {
	SetReadDeadline(time.Time) error
	Read([]byte) (int, error)
}) [][3]interface{} {
	t.Helper()
	server.SetReadDeadline(time.Now().Add(time.Second))
	buf := make([]byte, 4096)
	n, err := server.Read(buf)
	if err != nil {
		t.Fatalf("server read: %v", err)
	}
	var msgs [][3]interface{}
	data := buf[:n]
	for len(data) >= 8 {
		id := order.Uint32(data[0:4])
		word2 := order.Uint32(data[4:8])
		size := int(word2 >> 16)
		if size < 8 || size > len(data) {
			t.Fatalf("malformed request framing: size=%d have=%d", size, len(data))
		}
		args := make([]byte, size-8)
		copy(args, data[8:size])
		msgs = append(msgs, [3]interface{}{id, word2 & 0xffff, args})
		data = data[size:]
	}
	return msgs
}

func TestLayerSurfaceRequestEncoding(t *testing.T) {
	display, server := testDisplay(t)
	conn := display.Connection()

	compositor := NewCompositor(conn)
	surface, err := compositor.CreateSurface()
	if err != nil {
		t.Fatalf("CreateSurface: %v", err)
	}
	shell := NewLayerShell(conn)
	ls, err := shell.GetLayerSurface(surface, nil, LayerOverlay, "panel")
	if err != nil {
		t.Fatalf("GetLayerSurface: %v", err)
	}
	ls.SetSize(0, 30)
	ls.SetAnchor(AnchorTop | AnchorLeft | AnchorRight)
	ls.SetMargin(1, 2, 3, 4)
	ls.AckConfigure(7)

	if err := conn.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	msgs := readRequests(t, server)
	if len(msgs) != 6 {
		t.Fatalf("server saw %d requests, want 6", len(msgs))
	}

	// get_layer_surface: new id, surface, null output, layer, namespace
	gls := msgs[1]
	if gls[0].(uint32) != uint32(shell.Id()) || gls[1].(uint32) != _LAYER_SHELL_GET_LAYER_SURFACE {
		t.Fatalf("second request = id %v opcode %v, want layer shell get_layer_surface", gls[0], gls[1])
	}
	args := gls[2].([]byte)
	if got := ProxyId(order.Uint32(args[0:4])); got != ls.Id() {
		t.Errorf("new layer surface id = %d, want %d", got, ls.Id())
	}
	if got := ProxyId(order.Uint32(args[4:8])); got != surface.Id() {
		t.Errorf("surface arg = %d, want %d", got, surface.Id())
	}
	if got := order.Uint32(args[8:12]); got != 0 {
		t.Errorf("output arg = %d, want null object 0", got)
	}
	if got := order.Uint32(args[12:16]); got != uint32(LayerOverlay) {
		t.Errorf("layer arg = %d, want overlay", got)
	}

	expect := []struct {
		opcode uint32
		args   []uint32
	}{
		{_LAYER_SURFACE_SET_SIZE, []uint32{0, 30}},
		{_LAYER_SURFACE_SET_ANCHOR, []uint32{uint32(AnchorTop | AnchorLeft | AnchorRight)}},
		{_LAYER_SURFACE_SET_MARGIN, []uint32{1, 2, 3, 4}},
		{_LAYER_SURFACE_ACK_CONFIGURE, []uint32{7}},
	}
	for i, want := range expect {
		msg := msgs[i+2]
		if msg[0].(uint32) != uint32(ls.Id()) {
			t.Errorf("request %d sent to id %v, want layer surface %d", i+2, msg[0], ls.Id())
		}
		if msg[1].(uint32) != want.opcode {
			t.Errorf("request %d opcode = %v, want %d", i+2, msg[1], want.opcode)
		}
		raw := msg[2].([]byte)
		if len(raw) != 4*len(want.args) {
			t.Fatalf("request %d payload %d bytes, want %d", i+2, len(raw), 4*len(want.args))
		}
		for j, a := range want.args {
			if got := order.Uint32(raw[4*j : 4*j+4]); got != a {
				t.Errorf("request %d arg %d = %d, want %d", i+2, j, got, a)
			}
		}
	}
}

func TestLayerSurfaceMarginArgumentOrder(t *testing.T) {
	display, server := testDisplay(t)
	conn := display.Connection()

	ls := NewLayerSurface(conn)
	ls.SetMargin(10, 20, 30, 40) // top, right, bottom, left
	conn.Flush()

	msgs := readRequests(t, server)
	args := msgs[0][2].([]byte)
	want := []int32{10, 20, 30, 40}
	for i, v := range want {
		if got := int32(order.Uint32(args[4*i : 4*i+4])); got != v {
			t.Errorf("margin arg %d = %d, want %d", i, got, v)
		}
	}
}
