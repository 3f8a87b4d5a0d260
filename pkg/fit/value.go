package fit

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/ssargent/fitkit/pkg/profile"
)

// readValues decodes the elements of one field. It returns nil when every element
// holds the base type's invalid marker, or when a string field is empty.
func readValues(b []byte, bt profile.BaseType, order binary.ByteOrder) []any {
	if bt == profile.BaseString {
		return splitStrings(b)
	}
	info := bt.Info()
	n := len(b) / info.Size
	if n == 0 {
		return nil
	}
	out := make([]any, n)
	allInvalid := true
	for i := range out {
		bits := readBits(b[i*info.Size:(i+1)*info.Size], order)
		if bits != info.Invalid {
			allInvalid = false
		}
		out[i] = bitsToValue(bits, bt)
	}
	if allInvalid {
		return nil
	}
	return out
}

func splitStrings(b []byte) []any {
	var out []any
	for _, part := range strings.Split(string(b), "\x00") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func readBits(b []byte, order binary.ByteOrder) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(order.Uint16(b))
	case 4:
		return uint64(order.Uint32(b))
	case 8:
		return order.Uint64(b)
	}
	return 0
}

// bitsToValue widens a raw bit pattern to int64, uint64 (64-bit unsigned types) or
// float64
func bitsToValue(bits uint64, bt profile.BaseType) any {
	switch bt {
	case profile.BaseFloat32:
		return float64(math.Float32frombits(uint32(bits)))
	case profile.BaseFloat64:
		return math.Float64frombits(bits)
	case profile.BaseSint8:
		return int64(int8(bits))
	case profile.BaseSint16:
		return int64(int16(bits))
	case profile.BaseSint32:
		return int64(int32(bits))
	case profile.BaseSint64:
		return int64(bits)
	case profile.BaseUint64, profile.BaseUint64z:
		return bits
	}
	return int64(bits)
}

func appendBits(buf []byte, bits uint64, size int, order binary.ByteOrder) []byte {
	var tmp [8]byte
	switch size {
	case 1:
		tmp[0] = byte(bits)
	case 2:
		order.PutUint16(tmp[:2], uint16(bits))
	case 4:
		order.PutUint32(tmp[:4], uint32(bits))
	case 8:
		order.PutUint64(tmp[:8], bits)
	}
	return append(buf, tmp[:size]...)
}

// toFloat converts a decoded numeric value to float64
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// toInt64 converts a decoded numeric value to int64, rounding floats
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case float64:
		return int64(math.Round(n)), true
	}
	return 0, false
}

// toBits reinterprets a decoded numeric value as an unsigned bit pattern for the
// component bit stream
func toBits(v any) uint64 {
	switch n := v.(type) {
	case int64:
		return uint64(n)
	case uint64:
		return n
	case float64:
		if n < 0 {
			return uint64(int64(math.Round(n)))
		}
		return uint64(math.Round(n))
	}
	return 0
}

// normalizeRaw turns integral float64 values produced by component expansion back
// into int64 so unscaled output keeps integer types
func normalizeRaw(v any) any {
	if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return v
}

// bitStream reads bit runs LSB first across the elements of an array value
type bitStream struct {
	values []uint64
	width  int
	index  int
	bit    int
}

func newBitStream(values []any, bt profile.BaseType) *bitStream {
	bs := &bitStream{values: make([]uint64, len(values)), width: bt.Size() * 8}
	for i, v := range values {
		bs.values[i] = toBits(v)
	}
	return bs
}

func (b *bitStream) bitsAvailable() int {
	return (len(b.values)-b.index)*b.width - b.bit
}

func (b *bitStream) read(n int) uint64 {
	var out uint64
	for i := 0; i < n && b.index < len(b.values); i++ {
		out |= ((b.values[b.index] >> uint(b.bit)) & 1) << uint(i)
		b.bit++
		if b.bit == b.width {
			b.bit = 0
			b.index++
		}
	}
	return out
}

type accumulatorKey struct {
	mesg  profile.MesgNum
	field uint8
}

type accumulatedField struct {
	last  uint64
	value uint64
}

// accumulator rebuilds full-width counters from the truncated values carried by
// accumulating components
type accumulator struct {
	fields map[accumulatorKey]*accumulatedField
}

func newAccumulator() *accumulator {
	return &accumulator{fields: make(map[accumulatorKey]*accumulatedField)}
}

// set establishes the baseline from a directly decoded value
func (a *accumulator) set(mesg profile.MesgNum, field uint8, v uint64) {
	a.fields[accumulatorKey{mesg, field}] = &accumulatedField{last: v, value: v}
}

func (a *accumulator) accumulate(mesg profile.MesgNum, field uint8, v uint64, bits uint8) uint64 {
	key := accumulatorKey{mesg, field}
	f := a.fields[key]
	if f == nil {
		f = &accumulatedField{}
		a.fields[key] = f
	}
	mask := uint64(math.MaxUint64)
	if bits < 64 {
		mask = uint64(1)<<bits - 1
	}
	f.value += (v - f.last) & mask
	f.last = v
	return f.value
}
