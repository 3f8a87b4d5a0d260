// Package profile is the static FIT profile: message and field metadata, enum type
// tables, and the resolution rules for sub-fields and components.
//
// The tables are built once at package init and are read-only afterwards, so the
// package is safe for concurrent use by any number of decoders and encoders.
package profile

import (
	"sort"
	"strconv"
)

// Version identifies the revision of the profile tables
type Version struct {
	Major int
	Minor int
	Patch int
	Type  string
}

// ProfileVersion is the version number written into encoded file headers (major*1000+minor)
func (v Version) ProfileVersion() uint16 {
	return uint16(v.Major*1000 + v.Minor)
}

func (v Version) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
}

// CurrentVersion is the version of the tables in this package
var CurrentVersion = Version{Major: 21, Minor: 158, Patch: 0, Type: "Release"}

// Field numbers shared by every message
const (
	FieldPartIndex    uint8 = 250
	FieldTimestamp    uint8 = 253
	FieldMessageIndex uint8 = 254
)

// CommonFields exposes the shared field numbers by name
var CommonFields = struct {
	PartIndex    uint8
	Timestamp    uint8
	MessageIndex uint8
}{FieldPartIndex, FieldTimestamp, FieldMessageIndex}

// Field type names with special handling in the codec
const (
	TypeDateTime      = "dateTime"
	TypeLocalDateTime = "localDateTime"
	TypeBool          = "bool"
	TypeString        = "string"
	TypeByte          = "byte"
)

// Component maps a run of bits of a source field onto a destination field
type Component struct {
	FieldNum   uint8 // destination field in the same message
	Bits       uint8
	Scale      float64
	Offset     float64
	Accumulate bool
}

// SubFieldMap selects a sub-field when the referenced sibling field holds RefValue
type SubFieldMap struct {
	RefFieldNum uint8
	RefValue    int64
}

// SubField is an alternative interpretation of a field, chosen by another field's value
type SubField struct {
	Name       string
	Type       string
	BaseType   BaseType
	Scale      float64
	Offset     float64
	Units      string
	Maps       []SubFieldMap
	Components []Component
}

// FieldProfile is the profile entry of a single field
type FieldProfile struct {
	Num        uint8
	Name       string
	Type       string
	BaseType   BaseType
	Array      bool
	Scale      float64
	Offset     float64
	Units      string
	Accumulate bool
	Components []Component
	SubFields  []SubField
}

// Layout is the concrete interpretation of a field occurrence after sub-field resolution
type Layout struct {
	Name       string
	Type       string
	BaseType   BaseType
	Array      bool
	Scale      float64
	Offset     float64
	Units      string
	Components []Component
	IsSubField bool
}

// RefLookup returns the raw decoded value of a sibling field in the same message
type RefLookup func(fieldNum uint8) (int64, bool)

// Layout returns the field's own interpretation
func (f *FieldProfile) Layout() Layout {
	return Layout{
		Name:       f.Name,
		Type:       f.Type,
		BaseType:   f.BaseType,
		Array:      f.Array,
		Scale:      f.Scale,
		Offset:     f.Offset,
		Units:      f.Units,
		Components: f.Components,
	}
}

// Resolve picks the layout that applies to this occurrence of the field. The first
// sub-field whose reference map matches a sibling's raw value wins; otherwise the
// field's own layout is returned.
func (f *FieldProfile) Resolve(ref RefLookup) Layout {
	if ref != nil {
		for i := range f.SubFields {
			sf := &f.SubFields[i]
			if sf.matches(ref) {
				return sf.layout(f)
			}
		}
	}
	return f.Layout()
}

// SubFieldByName finds a sub-field layout by its name
func (f *FieldProfile) SubFieldByName(name string) (Layout, bool) {
	for i := range f.SubFields {
		if f.SubFields[i].Name == name {
			return f.SubFields[i].layout(f), true
		}
	}
	return Layout{}, false
}

// HasComponents reports whether the field expands into other fields
func (f *FieldProfile) HasComponents() bool { return len(f.Components) > 0 }

func (sf *SubField) matches(ref RefLookup) bool {
	for _, m := range sf.Maps {
		if v, ok := ref(m.RefFieldNum); ok && v == m.RefValue {
			return true
		}
	}
	return false
}

func (sf *SubField) layout(parent *FieldProfile) Layout {
	return Layout{
		Name:       sf.Name,
		Type:       sf.Type,
		BaseType:   sf.BaseType,
		Array:      parent.Array,
		Scale:      sf.Scale,
		Offset:     sf.Offset,
		Units:      sf.Units,
		Components: sf.Components,
		IsSubField: true,
	}
}

// MessageProfile is the profile entry of a global message
type MessageProfile struct {
	Num         MesgNum
	Name        string
	MessagesKey string
	FieldList   []*FieldProfile

	fields map[uint8]*FieldProfile
	byName map[string]*FieldProfile
}

// Field returns the profile of field num, or nil when the profile does not know it
func (m *MessageProfile) Field(num uint8) *FieldProfile {
	return m.fields[num]
}

// FieldByName returns a main field by its name
func (m *MessageProfile) FieldByName(name string) *FieldProfile {
	return m.byName[name]
}

// LookupName resolves a name that may be a main field or a sub-field. For
// sub-fields the parent field and the sub-field layout are returned.
func (m *MessageProfile) LookupName(name string) (*FieldProfile, Layout, bool) {
	if f := m.byName[name]; f != nil {
		return f, f.Layout(), true
	}
	for _, f := range m.FieldList {
		if l, ok := f.SubFieldByName(name); ok {
			return f, l, true
		}
	}
	return nil, Layout{}, false
}

func (m *MessageProfile) index() {
	m.fields = make(map[uint8]*FieldProfile, len(m.FieldList))
	m.byName = make(map[string]*FieldProfile, len(m.FieldList))
	if m.MessagesKey == "" {
		m.MessagesKey = m.Name + "Mesgs"
	}
	for _, f := range m.FieldList {
		normalizeField(f)
		m.fields[f.Num] = f
		m.byName[f.Name] = f
	}
	// destination fields of accumulating components carry the accumulator baseline
	for _, f := range m.FieldList {
		markAccumulated(m, f.Components)
		for _, sf := range f.SubFields {
			markAccumulated(m, sf.Components)
		}
	}
}

func markAccumulated(m *MessageProfile, comps []Component) {
	for _, c := range comps {
		if c.Accumulate {
			if dst := m.fields[c.FieldNum]; dst != nil {
				dst.Accumulate = true
			}
		}
	}
}

func normalizeField(f *FieldProfile) {
	if f.Scale == 0 {
		f.Scale = 1
	}
	if f.Type == "" {
		f.Type = f.BaseType.Name()
	}
	normalizeComponents(f.Components)
	for i := range f.SubFields {
		sf := &f.SubFields[i]
		if sf.Scale == 0 {
			sf.Scale = 1
		}
		if sf.BaseType == 0 && sf.Type == "" {
			sf.BaseType = f.BaseType
		}
		if sf.Type == "" {
			sf.Type = sf.BaseType.Name()
		}
		normalizeComponents(sf.Components)
	}
}

func normalizeComponents(comps []Component) {
	for i := range comps {
		if comps[i].Scale == 0 {
			comps[i].Scale = 1
		}
	}
}

var (
	messages       map[MesgNum]*MessageProfile
	messagesByName map[string]*MessageProfile
)

func init() {
	sort.Slice(messageTable, func(i, j int) bool { return messageTable[i].Num < messageTable[j].Num })
	messages = make(map[MesgNum]*MessageProfile, len(messageTable))
	messagesByName = make(map[string]*MessageProfile, len(messageTable))
	for _, m := range messageTable {
		m.index()
		messages[m.Num] = m
		messagesByName[m.Name] = m
	}
}

// Message returns the profile for a global message number, or nil if unknown
func Message(num MesgNum) *MessageProfile {
	return messages[num]
}

// MessageByName returns the profile for a message name such as "record"
func MessageByName(name string) *MessageProfile {
	return messagesByName[name]
}

// Messages returns every message profile ordered by message number
func Messages() []*MessageProfile {
	out := make([]*MessageProfile, len(messageTable))
	copy(out, messageTable)
	return out
}

// ApplyScaleAndOffset converts a stored integer into its real-world value
func ApplyScaleAndOffset(v, scale, offset float64) float64 {
	if scale == 0 {
		scale = 1
	}
	return v/scale - offset
}

// RemoveScaleAndOffset converts a real-world value back into its stored form
func RemoveScaleAndOffset(v, scale, offset float64) float64 {
	if scale == 0 {
		scale = 1
	}
	return (v + offset) * scale
}
