package wl

import (
	"encoding/binary"
	"math"
	"unsafe"
)

var order binary.ByteOrder

func init() {
	var x uint32 = 0x01020304
	if *(*byte)(unsafe.Pointer(&x)) == 0x01 {
		order = binary.BigEndian
	} else {
		order = binary.LittleEndian
	}
}

// Wayland encodes fractional coordinates as signed 24.8 fixed point.
// The conversions below use the double-rounding bit trick from the C
// implementation instead of a divide, so they agree with libwayland for
// every representable value.

func fixedToFloat64(fixed int32) float64 {
	dat := ((int64(1023 + 44)) << 52) + (1 << 51) + int64(fixed)
	return math.Float64frombits(uint64(dat)) - float64(3<<43)
}

func float64ToFixed(v float64) int32 {
	dat := v + float64(int64(3)<<(51-8))
	return int32(math.Float64bits(dat))
}
