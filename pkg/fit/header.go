package fit

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// Header layout constants
const (
	HeaderSizeNoCRC   = 12
	HeaderSizeWithCRC = 14
	CRCSize           = 2
	DataTypeFIT       = ".FIT"

	ProtocolVersion10 uint8 = 0x10
	ProtocolVersion20 uint8 = 0x20
)

// FileHeader is the fixed preamble of a FIT file
type FileHeader struct {
	Size            uint8  `json:"size"`
	ProtocolVersion uint8  `json:"protocolVersion"`
	ProfileVersion  uint16 `json:"profileVersion"`
	DataSize        uint32 `json:"dataSize"`
	DataType        string `json:"dataType"`
	CRC             uint16 `json:"crc,omitempty"` // only present when Size is 14
}

// HasCRC reports whether the header carries its own checksum
func (h FileHeader) HasCRC() bool { return h.Size >= HeaderSizeWithCRC }

// FileSize is header plus data plus trailer
func (h FileHeader) FileSize() int {
	return int(h.Size) + int(h.DataSize) + CRCSize
}

// Marshal encodes the header. For 14 byte headers the CRC of the first 12 bytes is
// computed and stored.
func (h FileHeader) Marshal() []byte {
	size := int(h.Size)
	if size != HeaderSizeWithCRC {
		size = HeaderSizeNoCRC
	}
	buf := make([]byte, size)
	buf[0] = byte(size)
	buf[1] = h.ProtocolVersion
	binary.LittleEndian.PutUint16(buf[2:], h.ProfileVersion)
	binary.LittleEndian.PutUint32(buf[4:], h.DataSize)
	copy(buf[8:12], DataTypeFIT)
	if size == HeaderSizeWithCRC {
		binary.LittleEndian.PutUint16(buf[12:], CalculateCRC(buf, 0, HeaderSizeNoCRC))
	}
	return buf
}

// parseHeader decodes a header from b without touching any stream state
func parseHeader(b []byte) (FileHeader, error) {
	if len(b) < HeaderSizeNoCRC {
		return FileHeader{}, errors.Wrapf(ErrOutOfRange, "header needs %d bytes, have %d", HeaderSizeNoCRC, len(b))
	}
	size := b[0]
	if size != HeaderSizeNoCRC && size != HeaderSizeWithCRC {
		return FileHeader{}, errors.Wrapf(ErrInvalidHeader, "header size %d", size)
	}
	if len(b) < int(size) {
		return FileHeader{}, errors.Wrapf(ErrOutOfRange, "header needs %d bytes, have %d", size, len(b))
	}
	h := FileHeader{
		Size:            size,
		ProtocolVersion: b[1],
		ProfileVersion:  binary.LittleEndian.Uint16(b[2:]),
		DataSize:        binary.LittleEndian.Uint32(b[4:]),
		DataType:        string(b[8:12]),
	}
	if h.DataType != DataTypeFIT {
		return h, errors.Wrapf(ErrBadMagic, "data type %q", h.DataType)
	}
	if size == HeaderSizeWithCRC {
		h.CRC = binary.LittleEndian.Uint16(b[12:])
	}
	return h, nil
}

// ReadFileHeader consumes a header at the stream position. Failures are structural.
func ReadFileHeader(s *Stream) (FileHeader, error) {
	start := s.Position()
	size, err := s.PeekByte()
	if err != nil {
		return FileHeader{}, structural(start, err)
	}
	n := int(size)
	if n != HeaderSizeNoCRC && n != HeaderSizeWithCRC {
		return FileHeader{}, structural(start, errors.Wrapf(ErrInvalidHeader, "header size %d", size))
	}
	b, err := s.ReadBytes(n)
	if err != nil {
		return FileHeader{}, structural(start, err)
	}
	h, err := parseHeader(b)
	if err != nil {
		return h, structural(start, err)
	}
	return h, nil
}

// PeekFileHeader decodes the header at the stream position without consuming it
func PeekFileHeader(s *Stream) (FileHeader, error) {
	end := s.Position() + HeaderSizeWithCRC
	if end > s.Len() {
		end = s.Len()
	}
	b, err := s.Slice(s.Position(), end)
	if err != nil {
		return FileHeader{}, err
	}
	return parseHeader(b)
}

// IsFIT reports whether a FIT header starts at the stream position and the stream
// is long enough to hold the header and a trailer. The position is not changed.
func IsFIT(s *Stream) bool {
	h, err := PeekFileHeader(s)
	if err != nil {
		return false
	}
	return s.Remaining() >= int(h.Size)+CRCSize
}
