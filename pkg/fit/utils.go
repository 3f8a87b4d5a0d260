package fit

import (
	"time"

	"github.com/ssargent/fitkit/pkg/profile"
)

// FIT date-times count seconds since 1989-12-31T00:00:00Z
const (
	FITEpochMS      int64 = 631065600000
	fitEpochSeconds int64 = FITEpochMS / 1000

	// values below this are relative to device power-on rather than absolute
	minDateTime uint32 = 0x10000000
)

// ConvertDateTimeToDate converts a FIT date-time to a UTC time
func ConvertDateTimeToDate(dt uint32) time.Time {
	return time.Unix(int64(dt)+fitEpochSeconds, 0).UTC()
}

// ConvertDateToDateTime converts a time to a FIT date-time, truncating to seconds.
// Times before the FIT epoch map to 0.
func ConvertDateToDateTime(t time.Time) uint32 {
	s := t.Unix() - fitEpochSeconds
	if s < 0 {
		return 0
	}
	return uint32(s)
}

// IsAbsoluteDateTime reports whether dt is an absolute time rather than a
// system-relative offset
func IsAbsoluteDateTime(dt uint32) bool { return dt >= minDateTime }

// BaseTypeToFieldType returns the field type name of a base type
func BaseTypeToFieldType(bt profile.BaseType) string { return bt.Name() }

// FieldTypeToBaseType returns the base type that stores a field type. Enum tables
// are stored as enum, except where the profile says otherwise per field.
func FieldTypeToBaseType(typ string) (profile.BaseType, bool) {
	if bt, ok := profile.BaseTypeByName(typ); ok {
		return bt, true
	}
	switch typ {
	case profile.TypeBool:
		return profile.BaseEnum, true
	case profile.TypeDateTime, profile.TypeLocalDateTime:
		return profile.BaseUint32, true
	}
	if profile.IsEnumType(typ) {
		return profile.BaseEnum, true
	}
	return 0, false
}
