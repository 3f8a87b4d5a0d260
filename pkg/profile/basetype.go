package profile

// BaseType is the on-the-wire type of a field as declared in a definition record.
// Bit 7 marks multi-byte types whose byte order follows the record architecture.
type BaseType uint8

// FIT base types
const (
	BaseEnum    BaseType = 0x00
	BaseSint8   BaseType = 0x01
	BaseUint8   BaseType = 0x02
	BaseSint16  BaseType = 0x83
	BaseUint16  BaseType = 0x84
	BaseSint32  BaseType = 0x85
	BaseUint32  BaseType = 0x86
	BaseString  BaseType = 0x07
	BaseFloat32 BaseType = 0x88
	BaseFloat64 BaseType = 0x89
	BaseUint8z  BaseType = 0x0A
	BaseUint16z BaseType = 0x8B
	BaseUint32z BaseType = 0x8C
	BaseByte    BaseType = 0x0D
	BaseSint64  BaseType = 0x8E
	BaseUint64  BaseType = 0x8F
	BaseUint64z BaseType = 0x90
)

// BaseTypeInfo describes size, invalid marker and numeric class of a base type
type BaseTypeInfo struct {
	Name    string
	Size    int
	Invalid uint64 // bit pattern of the invalid value, zero-extended to 64 bits
	Signed  bool
	Float   bool
}

var baseTypes = map[BaseType]BaseTypeInfo{
	BaseEnum:    {Name: "enum", Size: 1, Invalid: 0xFF},
	BaseSint8:   {Name: "sint8", Size: 1, Invalid: 0x7F, Signed: true},
	BaseUint8:   {Name: "uint8", Size: 1, Invalid: 0xFF},
	BaseSint16:  {Name: "sint16", Size: 2, Invalid: 0x7FFF, Signed: true},
	BaseUint16:  {Name: "uint16", Size: 2, Invalid: 0xFFFF},
	BaseSint32:  {Name: "sint32", Size: 4, Invalid: 0x7FFFFFFF, Signed: true},
	BaseUint32:  {Name: "uint32", Size: 4, Invalid: 0xFFFFFFFF},
	BaseString:  {Name: "string", Size: 1, Invalid: 0x00},
	BaseFloat32: {Name: "float32", Size: 4, Invalid: 0xFFFFFFFF, Signed: true, Float: true},
	BaseFloat64: {Name: "float64", Size: 8, Invalid: 0xFFFFFFFFFFFFFFFF, Signed: true, Float: true},
	BaseUint8z:  {Name: "uint8z", Size: 1, Invalid: 0x00},
	BaseUint16z: {Name: "uint16z", Size: 2, Invalid: 0x0000},
	BaseUint32z: {Name: "uint32z", Size: 4, Invalid: 0x00000000},
	BaseByte:    {Name: "byte", Size: 1, Invalid: 0xFF},
	BaseSint64:  {Name: "sint64", Size: 8, Invalid: 0x7FFFFFFFFFFFFFFF, Signed: true},
	BaseUint64:  {Name: "uint64", Size: 8, Invalid: 0xFFFFFFFFFFFFFFFF},
	BaseUint64z: {Name: "uint64z", Size: 8, Invalid: 0x0000000000000000},
}

var baseTypesByName = func() map[string]BaseType {
	m := make(map[string]BaseType, len(baseTypes))
	for bt, info := range baseTypes {
		m[info.Name] = bt
	}
	return m
}()

// BaseTypes returns every known base type
func BaseTypes() []BaseType {
	return []BaseType{
		BaseEnum, BaseSint8, BaseUint8, BaseSint16, BaseUint16, BaseSint32, BaseUint32,
		BaseString, BaseFloat32, BaseFloat64, BaseUint8z, BaseUint16z, BaseUint32z,
		BaseByte, BaseSint64, BaseUint64, BaseUint64z,
	}
}

// BaseTypeByName resolves a base type from its profile name ("uint16", "sint32", ...)
func BaseTypeByName(name string) (BaseType, bool) {
	bt, ok := baseTypesByName[name]
	return bt, ok
}

// IsValid reports whether b is a known base type
func (b BaseType) IsValid() bool {
	_, ok := baseTypes[b]
	return ok
}

// Info returns the descriptor for b. Unknown base types describe as byte.
func (b BaseType) Info() BaseTypeInfo {
	if info, ok := baseTypes[b]; ok {
		return info
	}
	return baseTypes[BaseByte]
}

// Size returns the width in bytes of a single element
func (b BaseType) Size() int { return b.Info().Size }

// Name returns the profile name of the base type
func (b BaseType) Name() string { return b.Info().Name }

func (b BaseType) String() string { return b.Name() }

// IsInteger reports whether values of b decode to integers
func (b BaseType) IsInteger() bool {
	info := b.Info()
	return !info.Float && b != BaseString
}

// IsFloat reports whether b is an IEEE-754 type
func (b BaseType) IsFloat() bool { return b.Info().Float }
