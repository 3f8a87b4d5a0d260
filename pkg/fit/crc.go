package fit

// crcTable is the nibble table of CRC-16/ARC (reflected polynomial 0xA001)
var crcTable = [16]uint16{
	0x0000, 0xCC01, 0xD801, 0x1400, 0xF001, 0x3C00, 0x2800, 0xE401,
	0xA001, 0x6C00, 0x7800, 0xB401, 0x5000, 0x9C01, 0x8801, 0x4400,
}

// CrcCalculator is the running 16-bit checksum used for file headers and trailers.
// The zero value is ready to use.
type CrcCalculator struct {
	crc uint16
}

// NewCrcCalculator creates a calculator with a zero accumulator
func NewCrcCalculator() *CrcCalculator {
	return &CrcCalculator{}
}

// CRC returns the current accumulator value
func (c *CrcCalculator) CRC() uint16 { return c.crc }

// Reset clears the accumulator
func (c *CrcCalculator) Reset() { c.crc = 0 }

// AddByte feeds one byte and returns the updated value
func (c *CrcCalculator) AddByte(b byte) uint16 {
	c.crc = updateCRC(c.crc, b)
	return c.crc
}

// AddBytes feeds buf[offset:offset+count] and returns the updated value
func (c *CrcCalculator) AddBytes(buf []byte, offset, count int) uint16 {
	for _, b := range buf[offset : offset+count] {
		c.crc = updateCRC(c.crc, b)
	}
	return c.crc
}

// Write implements io.Writer so the calculator can sit behind an io.MultiWriter
func (c *CrcCalculator) Write(p []byte) (int, error) {
	c.AddBytes(p, 0, len(p))
	return len(p), nil
}

// CalculateCRC computes the checksum of buf[offset:offset+count] from a zero start
func CalculateCRC(buf []byte, offset, count int) uint16 {
	var c CrcCalculator
	return c.AddBytes(buf, offset, count)
}

func updateCRC(crc uint16, b byte) uint16 {
	// low nibble
	tmp := crcTable[crc&0xF]
	crc = (crc >> 4) & 0x0FFF
	crc = crc ^ tmp ^ crcTable[b&0xF]

	// high nibble
	tmp = crcTable[crc&0xF]
	crc = (crc >> 4) & 0x0FFF
	return crc ^ tmp ^ crcTable[(b>>4)&0xF]
}
