package wl

import (
	"math"
	"testing"
)

type stubProxy struct {
	BaseProxy
}

func newStubProxy(id ProxyId) *stubProxy {
	p := &stubProxy{}
	p.SetId(id)
	return p
}

func TestRequestHeader(t *testing.T) {
	r := NewRequest(newStubProxy(3), 2)
	r.PutUint32(7)

	h := r.header()
	if got := order.Uint32(h[0:4]); got != 3 {
		t.Errorf("object id = %d, want 3", got)
	}
	word2 := order.Uint32(h[4:8])
	if got := word2 >> 16; got != 12 {
		t.Errorf("message size = %d, want 12", got)
	}
	if got := word2 & 0xffff; got != 2 {
		t.Errorf("opcode = %d, want 2", got)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "hi", "abc", "abcd", "wl_compositor"} {
		r := NewRequest(newStubProxy(1), 0)
		r.PutString(s)
		if len(r.data)%4 != 0 {
			t.Errorf("%q: marshalled length %d not 32 bit aligned", s, len(r.data))
		}
		ev := &Event{data: newEventBuffer(r.data)}
		if got := ev.String(); got != s {
			t.Errorf("round trip %q = %q", s, got)
		}
	}
}

func TestStringWireFormat(t *testing.T) {
	cases := []struct {
		s       string
		length  uint32
		payload int
	}{
		{"", 1, 4},
		{"abc", 4, 4},
		{"abcd", 5, 8},
		{"layershell", 11, 12},
	}
	for _, c := range cases {
		r := NewRequest(newStubProxy(1), 0)
		r.PutString(c.s)
		if got := order.Uint32(r.data[0:4]); got != c.length {
			t.Errorf("%q: length field = %d, want NUL-inclusive %d", c.s, got, c.length)
		}
		if got := len(r.data) - 4; got != c.payload {
			t.Errorf("%q: padded payload = %d bytes, want %d", c.s, got, c.payload)
		}
		if string(r.data[4:4+len(c.s)]) != c.s {
			t.Errorf("%q: payload bytes corrupted", c.s)
		}
		for _, b := range r.data[4+len(c.s):] {
			if b != 0 {
				t.Errorf("%q: terminator/padding not zeroed", c.s)
			}
		}
	}
}

func TestStringFollowedByUint(t *testing.T) {
	r := NewRequest(newStubProxy(1), 0)
	r.PutString("odd")
	r.PutUint32(42)

	ev := &Event{data: newEventBuffer(r.data)}
	if got := ev.String(); got != "odd" {
		t.Fatalf("string = %q", got)
	}
	if got := ev.Uint32(); got != 42 {
		t.Errorf("trailing uint = %d, want 42", got)
	}
}

func TestArrayRoundTrip(t *testing.T) {
	want := []int32{1, -2, 3, 1 << 20}
	r := NewRequest(newStubProxy(1), 0)
	r.PutArray(want)

	ev := &Event{data: newEventBuffer(r.data)}
	got := ev.Array()
	if len(got) != len(want) {
		t.Fatalf("array length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("array[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFixedConversions(t *testing.T) {
	cases := []struct {
		fixed int32
		value float64
	}{
		{0, 0},
		{256, 1},
		{-256, -1},
		{128, 0.5},
		{6016, 23.5},
		{25632, 100.125},
	}
	for _, c := range cases {
		if got := fixedToFloat64(c.fixed); got != c.value {
			t.Errorf("fixedToFloat64(%d) = %v, want %v", c.fixed, got, c.value)
		}
		if got := float64ToFixed(c.value); got != c.fixed {
			t.Errorf("float64ToFixed(%v) = %d, want %d", c.value, got, c.fixed)
		}
	}
}

func TestFixedRoundTrip(t *testing.T) {
	for fixed := int32(-1 << 20); fixed <= 1<<20; fixed += 257 {
		if got := float64ToFixed(fixedToFloat64(fixed)); got != fixed {
			t.Fatalf("round trip %d = %d", fixed, got)
		}
	}
	// largest magnitudes the 24.8 format represents
	for _, fixed := range []int32{math.MaxInt32, math.MinInt32} {
		if got := float64ToFixed(fixedToFloat64(fixed)); got != fixed {
			t.Errorf("round trip %d = %d", fixed, got)
		}
	}
}

func TestEventBufferCopiesPayload(t *testing.T) {
	raw := []byte{1, 0, 0, 0}
	ev := &Event{data: newEventBuffer(raw)}
	raw[0] = 99
	if got := ev.Uint32(); got != 1 {
		t.Errorf("payload = %d after mutating source, want 1", got)
	}
}
