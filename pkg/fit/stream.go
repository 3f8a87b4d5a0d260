package fit

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/cockroachdb/errors"
)

// Byte orders accepted by the typed read helpers
var (
	LittleEndian binary.ByteOrder = binary.LittleEndian
	BigEndian    binary.ByteOrder = binary.BigEndian
)

// Stream is a byte cursor over a caller-owned buffer. Every byte consumed by a read
// (never by a peek or slice) is fed to the attached CrcCalculator, if any.
//
// A Stream created with NewWriteStream grows as it is written and backs the Encoder.
type Stream struct {
	buf       []byte
	pos       int
	bytesRead int
	crc       *CrcCalculator
}

// NewStream wraps buf for reading. The buffer is not copied.
func NewStream(buf []byte) *Stream {
	return &Stream{buf: buf}
}

// StreamFromBytes is an alias of NewStream
func StreamFromBytes(buf []byte) *Stream { return NewStream(buf) }

// NewStreamFromReader reads r to EOF and wraps the result
func NewStreamFromReader(r io.Reader) (*Stream, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "fit: read stream source")
	}
	return NewStream(buf), nil
}

// NewWriteStream creates an empty growable stream
func NewWriteStream() *Stream {
	return &Stream{buf: make([]byte, 0, 512)}
}

// Len is the total size of the buffer
func (s *Stream) Len() int { return len(s.buf) }

// Position is the offset of the next read or write
func (s *Stream) Position() int { return s.pos }

// BytesRead counts the bytes consumed by reads since creation or Reset
func (s *Stream) BytesRead() int { return s.bytesRead }

// Remaining is the number of bytes between the position and the end of the buffer
func (s *Stream) Remaining() int { return len(s.buf) - s.pos }

// SetCRCCalculator attaches c; pass nil to detach
func (s *Stream) SetCRCCalculator(c *CrcCalculator) { s.crc = c }

// CRCCalculator returns the attached calculator, or nil
func (s *Stream) CRCCalculator() *CrcCalculator { return s.crc }

// ResetCRC clears the attached calculator's accumulator
func (s *Stream) ResetCRC() {
	if s.crc != nil {
		s.crc.Reset()
	}
}

// Reset rewinds to the start of the buffer. The checksum state is kept.
func (s *Stream) Reset() {
	s.pos = 0
	s.bytesRead = 0
}

// Seek implements io.Seeker. Positions outside [0, Len] fail with ErrOutOfRange.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(s.pos) + offset
	case io.SeekEnd:
		abs = int64(len(s.buf)) + offset
	default:
		return int64(s.pos), errors.Newf("fit: invalid whence %d", whence)
	}
	if abs < 0 || abs > int64(len(s.buf)) {
		return int64(s.pos), errors.Wrapf(ErrOutOfRange, "seek to %d of %d", abs, len(s.buf))
	}
	s.pos = int(abs)
	return abs, nil
}

// SetPosition is Seek relative to the start of the buffer
func (s *Stream) SetPosition(pos int) error {
	_, err := s.Seek(int64(pos), io.SeekStart)
	return err
}

// PeekByte returns the byte at the position without consuming it
func (s *Stream) PeekByte() (byte, error) {
	if s.pos >= len(s.buf) {
		return 0, errors.Wrapf(ErrOutOfRange, "peek at %d of %d", s.pos, len(s.buf))
	}
	return s.buf[s.pos], nil
}

// Slice returns a copy of buf[start:end] without moving the position
func (s *Stream) Slice(start, end int) ([]byte, error) {
	if start < 0 || end < start || end > len(s.buf) {
		return nil, errors.Wrapf(ErrOutOfRange, "slice [%d:%d] of %d", start, end, len(s.buf))
	}
	out := make([]byte, end-start)
	copy(out, s.buf[start:end])
	return out, nil
}

// ReadByte consumes one byte
func (s *Stream) ReadByte() (byte, error) {
	b, err := s.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadBytes consumes n bytes. The returned slice aliases the buffer and must not be
// modified. On failure the position is unchanged.
func (s *Stream) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > len(s.buf)-s.pos {
		return nil, errors.Wrapf(ErrOutOfRange, "read %d bytes at %d of %d", n, s.pos, len(s.buf))
	}
	out := s.buf[s.pos : s.pos+n]
	s.pos += n
	s.bytesRead += n
	if s.crc != nil {
		s.crc.AddBytes(out, 0, n)
	}
	return out, nil
}

// ReadUint8 consumes a uint8
func (s *Stream) ReadUint8() (uint8, error) { return s.ReadByte() }

// ReadInt8 consumes an int8
func (s *Stream) ReadInt8() (int8, error) {
	b, err := s.ReadByte()
	return int8(b), err
}

// ReadUint16 consumes a uint16 in the given byte order
func (s *Stream) ReadUint16(order binary.ByteOrder) (uint16, error) {
	b, err := s.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(b), nil
}

// ReadInt16 consumes an int16 in the given byte order
func (s *Stream) ReadInt16(order binary.ByteOrder) (int16, error) {
	v, err := s.ReadUint16(order)
	return int16(v), err
}

// ReadUint32 consumes a uint32 in the given byte order
func (s *Stream) ReadUint32(order binary.ByteOrder) (uint32, error) {
	b, err := s.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(b), nil
}

// ReadInt32 consumes an int32 in the given byte order
func (s *Stream) ReadInt32(order binary.ByteOrder) (int32, error) {
	v, err := s.ReadUint32(order)
	return int32(v), err
}

// ReadUint64 consumes a uint64 in the given byte order
func (s *Stream) ReadUint64(order binary.ByteOrder) (uint64, error) {
	b, err := s.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return order.Uint64(b), nil
}

// ReadInt64 consumes an int64 in the given byte order
func (s *Stream) ReadInt64(order binary.ByteOrder) (int64, error) {
	v, err := s.ReadUint64(order)
	return int64(v), err
}

// ReadFloat32 consumes an IEEE-754 float32
func (s *Stream) ReadFloat32(order binary.ByteOrder) (float32, error) {
	v, err := s.ReadUint32(order)
	return math.Float32frombits(v), err
}

// ReadFloat64 consumes an IEEE-754 float64
func (s *Stream) ReadFloat64(order binary.ByteOrder) (float64, error) {
	v, err := s.ReadUint64(order)
	return math.Float64frombits(v), err
}

// ReadString consumes n bytes and returns the text up to the first null byte
func (s *Stream) ReadString(n int) (string, error) {
	b, err := s.ReadBytes(n)
	if err != nil {
		return "", err
	}
	for i, c := range b {
		if c == 0 {
			return string(b[:i]), nil
		}
	}
	return string(b), nil
}

// Write appends or overwrites at the position, growing the buffer as needed
func (s *Stream) Write(p []byte) (int, error) {
	end := s.pos + len(p)
	if end > len(s.buf) {
		if end > cap(s.buf) {
			grown := make([]byte, len(s.buf), 2*cap(s.buf)+len(p))
			copy(grown, s.buf)
			s.buf = grown
		}
		s.buf = s.buf[:end]
	}
	copy(s.buf[s.pos:], p)
	s.pos = end
	return len(p), nil
}

// WriteByte writes one byte at the position
func (s *Stream) WriteByte(b byte) error {
	_, err := s.Write([]byte{b})
	return err
}

// WriteBytes writes p at the position
func (s *Stream) WriteBytes(p []byte) error {
	_, err := s.Write(p)
	return err
}

// WriteAt overwrites bytes already in the buffer without moving the position
func (s *Stream) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(len(s.buf)) {
		return 0, errors.Wrapf(ErrOutOfRange, "write %d bytes at %d of %d", len(p), off, len(s.buf))
	}
	copy(s.buf[off:], p)
	return len(p), nil
}

// Bytes returns the underlying buffer
func (s *Stream) Bytes() []byte { return s.buf }
