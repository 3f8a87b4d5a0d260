package fit

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/fitkit/pkg/profile"
)

// Record header bits
const (
	headerCompressedMask   byte = 0x80
	headerDefinitionMask   byte = 0x40
	headerDevDataMask      byte = 0x20
	headerReservedMask     byte = 0x10
	headerLocalMesgNumMask byte = 0x0F

	compressedLocalMesgNumMask  byte = 0x60
	compressedLocalMesgNumShift      = 5
	compressedTimeMask          byte = 0x1F

	// LocalMesgNums is the size of the local message table
	LocalMesgNums = 16
)

// Architecture is the byte order declared by a definition record
type Architecture uint8

// Architectures
const (
	ArchLittleEndian Architecture = 0
	ArchBigEndian    Architecture = 1
)

// ByteOrder maps the architecture onto encoding/binary
func (a Architecture) ByteOrder() binary.ByteOrder {
	if a == ArchBigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (a Architecture) String() string {
	if a == ArchBigEndian {
		return "bigEndian"
	}
	return "littleEndian"
}

// FieldDefinition declares one field of a data record
type FieldDefinition struct {
	Num      uint8            `json:"fieldDefinitionNumber"`
	Size     uint8            `json:"size"`
	BaseType profile.BaseType `json:"baseType"`
}

// effectiveBaseType is the type used to read the field. Unknown base types and sizes
// that are not a multiple of the element width fall back to byte.
func (f FieldDefinition) effectiveBaseType() profile.BaseType {
	if !f.BaseType.IsValid() || int(f.Size)%f.BaseType.Size() != 0 {
		return profile.BaseByte
	}
	return f.BaseType
}

// Count is the number of array elements the field holds
func (f FieldDefinition) Count() int {
	return int(f.Size) / f.effectiveBaseType().Size()
}

// DeveloperFieldDefinition declares one developer field of a data record
type DeveloperFieldDefinition struct {
	Num                uint8 `json:"fieldDefinitionNumber"`
	Size               uint8 `json:"size"`
	DeveloperDataIndex uint8 `json:"developerDataIndex"`
}

// MessageDefinition binds a local message number to a record layout
type MessageDefinition struct {
	LocalNum                  uint8                      `json:"localMesgNum"`
	GlobalNum                 profile.MesgNum            `json:"globalMessageNumber"`
	Architecture              Architecture               `json:"architecture"`
	FieldDefinitions          []FieldDefinition          `json:"fieldDefinitions"`
	DeveloperFieldDefinitions []DeveloperFieldDefinition `json:"developerFieldDefinitions,omitempty"`
}

// DataSize is the byte length of a data record's content for this definition
func (d *MessageDefinition) DataSize() int {
	n := 0
	for _, f := range d.FieldDefinitions {
		n += int(f.Size)
	}
	for _, f := range d.DeveloperFieldDefinitions {
		n += int(f.Size)
	}
	return n
}

// Equal compares layouts, ignoring the local message number
func (d *MessageDefinition) Equal(o *MessageDefinition) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.GlobalNum != o.GlobalNum || d.Architecture != o.Architecture ||
		len(d.FieldDefinitions) != len(o.FieldDefinitions) ||
		len(d.DeveloperFieldDefinitions) != len(o.DeveloperFieldDefinitions) {
		return false
	}
	for i := range d.FieldDefinitions {
		if d.FieldDefinitions[i] != o.FieldDefinitions[i] {
			return false
		}
	}
	for i := range d.DeveloperFieldDefinitions {
		if d.DeveloperFieldDefinitions[i] != o.DeveloperFieldDefinitions[i] {
			return false
		}
	}
	return true
}

// Marshal encodes the definition record, record header byte included
func (d *MessageDefinition) Marshal() []byte {
	order := d.Architecture.ByteOrder()
	buf := make([]byte, 0, 6+3*len(d.FieldDefinitions)+1+3*len(d.DeveloperFieldDefinitions))

	header := headerDefinitionMask | (d.LocalNum & headerLocalMesgNumMask)
	if len(d.DeveloperFieldDefinitions) > 0 {
		header |= headerDevDataMask
	}
	buf = append(buf, header, 0, byte(d.Architecture))
	var num [2]byte
	order.PutUint16(num[:], uint16(d.GlobalNum))
	buf = append(buf, num[0], num[1], byte(len(d.FieldDefinitions)))
	for _, f := range d.FieldDefinitions {
		buf = append(buf, f.Num, f.Size, byte(f.BaseType))
	}
	if len(d.DeveloperFieldDefinitions) > 0 {
		buf = append(buf, byte(len(d.DeveloperFieldDefinitions)))
		for _, f := range d.DeveloperFieldDefinitions {
			buf = append(buf, f.Num, f.Size, f.DeveloperDataIndex)
		}
	}
	return buf
}

// readDefinition parses the content of a definition record whose header byte has
// already been consumed
func readDefinition(s *Stream, header byte) (*MessageDefinition, error) {
	fixed, err := s.ReadBytes(5)
	if err != nil {
		return nil, err
	}
	def := &MessageDefinition{
		LocalNum:     header & headerLocalMesgNumMask,
		Architecture: Architecture(fixed[1]),
	}
	if def.Architecture != ArchLittleEndian && def.Architecture != ArchBigEndian {
		return nil, errors.Wrapf(ErrInvalidHeader, "definition architecture %d", fixed[1])
	}
	def.GlobalNum = profile.MesgNum(def.Architecture.ByteOrder().Uint16(fixed[2:4]))

	count := int(fixed[4])
	raw, err := s.ReadBytes(3 * count)
	if err != nil {
		return nil, err
	}
	def.FieldDefinitions = make([]FieldDefinition, count)
	for i := range def.FieldDefinitions {
		def.FieldDefinitions[i] = FieldDefinition{
			Num:      raw[3*i],
			Size:     raw[3*i+1],
			BaseType: profile.BaseType(raw[3*i+2]),
		}
	}

	if header&headerDevDataMask != 0 {
		devCount, err := s.ReadByte()
		if err != nil {
			return nil, err
		}
		raw, err := s.ReadBytes(3 * int(devCount))
		if err != nil {
			return nil, err
		}
		def.DeveloperFieldDefinitions = make([]DeveloperFieldDefinition, devCount)
		for i := range def.DeveloperFieldDefinitions {
			def.DeveloperFieldDefinitions[i] = DeveloperFieldDefinition{
				Num:                raw[3*i],
				Size:               raw[3*i+1],
				DeveloperDataIndex: raw[3*i+2],
			}
		}
	}
	return def, nil
}

// plausibleDefinition reports whether buf[at:end] starts with something that parses
// as a definition record. It is the resynchronisation test after a missing definition.
func plausibleDefinition(buf []byte, at, end int) bool {
	if end > len(buf) {
		end = len(buf)
	}
	if at+6 > end {
		return false
	}
	h := buf[at]
	if h&headerCompressedMask != 0 || h&headerDefinitionMask == 0 || h&headerReservedMask != 0 {
		return false
	}
	if buf[at+1] != 0 || buf[at+2] > byte(ArchBigEndian) {
		return false
	}
	count := int(buf[at+5])
	p := at + 6
	if p+3*count > end {
		return false
	}
	for i := 0; i < count; i++ {
		size, bt := buf[p+1], profile.BaseType(buf[p+2])
		if size == 0 || !bt.IsValid() || int(size)%bt.Size() != 0 {
			return false
		}
		p += 3
	}
	devCount := 0
	if h&headerDevDataMask != 0 {
		if p >= end {
			return false
		}
		devCount = int(buf[p])
		p++
		if p+3*devCount > end {
			return false
		}
		for i := 0; i < devCount; i++ {
			if buf[p+1] == 0 {
				return false
			}
			p += 3
		}
	}
	return count+devCount > 0
}
