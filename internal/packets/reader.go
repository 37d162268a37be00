package packets

import (
	"encoding/binary"
	"math"
)

// reader is a positional little-endian cursor over a datagram. It never reads past the end of
// the buffer: a read without enough bytes left yields the zero value, so every decode stage
// checks remaining() up front.
type reader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

// next returns the next n bytes and advances, or nil if fewer than n bytes remain
func (r *reader) next(n int) []byte {
	if r.remaining() < n {
		r.pos = len(r.data)
		return nil
	}

	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) u8() uint8 {
	b := r.next(1)
	if b == nil {
		return 0
	}

	return b[0]
}

func (r *reader) i8() int8 {
	return int8(r.u8()) //nolint:gosec // two's complement reinterpretation
}

func (r *reader) u16() uint16 {
	b := r.next(2)
	if b == nil {
		return 0
	}

	return binary.LittleEndian.Uint16(b)
}

func (r *reader) i16() int16 {
	return int16(r.u16()) //nolint:gosec // two's complement reinterpretation
}

func (r *reader) u32() uint32 {
	b := r.next(4)
	if b == nil {
		return 0
	}

	return binary.LittleEndian.Uint32(b)
}

func (r *reader) u64() uint64 {
	b := r.next(8)
	if b == nil {
		return 0
	}

	return binary.LittleEndian.Uint64(b)
}

func (r *reader) f32() float32 {
	return math.Float32frombits(r.u32())
}
