package fit

import (
	"encoding/binary"
	"math"
	"reflect"
	"sort"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/fitkit/pkg/profile"
)

// DeveloperField pairs a developer data id message with one of its field
// descriptions. Values for it are written under the same key in
// Message.DeveloperFields.
type DeveloperField struct {
	DeveloperDataIDMesg  Message
	FieldDescriptionMesg Message
}

type encoderOptions struct {
	headerSize        int
	protocolVersion   uint8
	profileVersion    uint16
	fileCRC           bool
	fieldDescriptions map[int]DeveloperField
	skipExpanded      bool
}

// EncoderOption configures an Encoder
type EncoderOption func(*encoderOptions)

// WithHeaderSize selects a 12 or 14 byte header. 14 byte headers carry a header CRC.
func WithHeaderSize(n int) EncoderOption {
	return func(o *encoderOptions) { o.headerSize = n }
}

// WithProtocolVersion overrides the protocol version byte
func WithProtocolVersion(v uint8) EncoderOption {
	return func(o *encoderOptions) { o.protocolVersion = v }
}

// WithProfileVersion overrides the profile version written to the header
func WithProfileVersion(v uint16) EncoderOption {
	return func(o *encoderOptions) { o.profileVersion = v }
}

// WithFileCRC makes the trailer cover header and data records, the way devices
// write it, instead of the data records only
func WithFileCRC() EncoderOption {
	return func(o *encoderOptions) { o.fileCRC = true }
}

// WithFieldDescriptions registers developer fields up front, keyed like AddDeveloperField
func WithFieldDescriptions(fields map[int]DeveloperField) EncoderOption {
	return func(o *encoderOptions) { o.fieldDescriptions = fields }
}

// WithoutExpandedComponents drops fields that are component targets of another field
// in the same message. Use it when re-encoding decoded messages, whose expanded
// values (speed into enhancedSpeed) would otherwise be written next to their source
// and decode a second time as merged sequences.
func WithoutExpandedComponents() EncoderOption {
	return func(o *encoderOptions) { o.skipExpanded = true }
}

type devFieldInfo struct {
	num        uint8
	devIndex   uint8
	baseType   profile.BaseType
	scale      float64
	offset     float64
	descriptor Message
}

// Encoder serialises messages into a FIT file. Definition records are emitted only
// when a message's layout has no live local message number. Not safe for concurrent use.
type Encoder struct {
	stream    *Stream
	opts      encoderOptions
	locals    [LocalMesgNums]*MessageDefinition
	nextLocal int
	devFields map[int]*devFieldInfo
	closed    bool
	listenErr error
}

// NewEncoder creates an encoder and writes a placeholder header
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	o := encoderOptions{
		headerSize:      HeaderSizeNoCRC,
		protocolVersion: ProtocolVersion20,
		profileVersion:  profile.CurrentVersion.ProfileVersion(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.headerSize != HeaderSizeNoCRC && o.headerSize != HeaderSizeWithCRC {
		return nil, errors.Wrapf(ErrInvalidHeader, "header size %d", o.headerSize)
	}

	e := &Encoder{
		stream:    NewWriteStream(),
		opts:      o,
		devFields: make(map[int]*devFieldInfo),
	}
	for key, f := range o.fieldDescriptions {
		if err := e.AddDeveloperField(key, f.DeveloperDataIDMesg, f.FieldDescriptionMesg); err != nil {
			return nil, err
		}
	}
	if err := e.stream.WriteBytes(e.header(0).Marshal()); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Encoder) header(dataSize uint32) FileHeader {
	return FileHeader{
		Size:            uint8(e.opts.headerSize),
		ProtocolVersion: e.opts.protocolVersion,
		ProfileVersion:  e.opts.profileVersion,
		DataSize:        dataSize,
		DataType:        DataTypeFIT,
	}
}

// AddDeveloperField registers a developer field under key. The field description
// must name its developer data index, field definition number and base type.
func (e *Encoder) AddDeveloperField(key int, developerDataIDMesg, fieldDescriptionMesg Message) error {
	if e.closed {
		return ErrEncoderClosed
	}
	fields := fieldDescriptionMesg.Fields
	num, ok1 := intField(fields, "fieldDefinitionNumber")
	devIndex, ok2 := intField(fields, "developerDataIndex")
	if !ok1 || !ok2 {
		return errors.Wrap(ErrUnregisteredDeveloperField,
			"field description needs fieldDefinitionNumber and developerDataIndex")
	}
	bt, ok := baseTypeField(fields["fitBaseTypeId"])
	if !ok {
		return errors.Wrap(ErrUnregisteredDeveloperField, "field description has no valid fitBaseTypeId")
	}
	if idIndex, ok := intField(developerDataIDMesg.Fields, "developerDataIndex"); ok && idIndex != devIndex {
		return errors.Wrapf(ErrUnregisteredDeveloperField,
			"developer data index %d does not match field description index %d", idIndex, devIndex)
	}
	info := &devFieldInfo{num: uint8(num), devIndex: uint8(devIndex), baseType: bt, scale: 1, descriptor: fieldDescriptionMesg}
	if v, ok := floatField(fields, "scale"); ok && v > 0 {
		info.scale = v
	}
	if v, ok := floatField(fields, "offset"); ok {
		info.offset = v
	}
	e.devFields[key] = info
	return nil
}

// OnMesg encodes msg as message num. Its signature matches MesgListener, see
// MesgListener for use as a decoder listener. Messages decoded with component
// expansion carry both the packed source and its targets; pair with
// WithoutExpandedComponents to write only the sources.
func (e *Encoder) OnMesg(num profile.MesgNum, msg Message) error {
	msg.Num = num
	return e.WriteMesg(msg)
}

// MesgListener adapts OnMesg to a decoder listener. The first error is kept and
// returned by Close.
func (e *Encoder) MesgListener() MesgListener {
	return func(num profile.MesgNum, msg Message) {
		if err := e.OnMesg(num, msg); err != nil && e.listenErr == nil {
			e.listenErr = err
		}
	}
}

type encodedField struct {
	def    FieldDefinition
	layout profile.Layout
	data   []byte
}

// WriteMesg encodes one message. Field names the profile does not know are skipped.
// Component targets are written as given, so a field and the fields it expands into
// are both encoded unless WithoutExpandedComponents is set.
func (e *Encoder) WriteMesg(msg Message) error {
	if e.closed {
		return ErrEncoderClosed
	}
	mp := profile.Message(msg.Num)
	if mp == nil {
		return errors.Wrapf(ErrUnknownMessage, "message number %d", msg.Num)
	}

	byNum := make(map[uint8]encodedField, len(msg.Fields))
	subFieldOnly := make(map[uint8]bool)
	for _, name := range msg.FieldNames() {
		fp, layout, ok := mp.LookupName(name)
		if !ok {
			continue
		}
		if _, done := byNum[fp.Num]; done && !(subFieldOnly[fp.Num] && !layout.IsSubField) {
			continue
		}
		data, err := encodeField(msg.Fields[name], fp.BaseType, layout)
		if err != nil {
			return errors.Wrapf(err, "%s.%s", mp.Name, name)
		}
		if data == nil {
			continue
		}
		if len(data) > math.MaxUint8 {
			return errors.Wrapf(ErrValueOutOfRange, "%s.%s encodes to %d bytes", mp.Name, name, len(data))
		}
		byNum[fp.Num] = encodedField{
			def:    FieldDefinition{Num: fp.Num, Size: uint8(len(data)), BaseType: fp.BaseType},
			layout: layout,
			data:   data,
		}
		subFieldOnly[fp.Num] = layout.IsSubField
	}
	if e.opts.skipExpanded {
		dropComponentTargets(byNum)
	}

	nums := make([]int, 0, len(byNum))
	for num := range byNum {
		nums = append(nums, int(num))
	}
	sort.Ints(nums)

	def := &MessageDefinition{GlobalNum: msg.Num, Architecture: ArchLittleEndian}
	payload := make([]byte, 0, 64)
	for _, num := range nums {
		f := byNum[uint8(num)]
		def.FieldDefinitions = append(def.FieldDefinitions, f.def)
		payload = append(payload, f.data...)
	}

	devKeys := make([]int, 0, len(msg.DeveloperFields))
	for key := range msg.DeveloperFields {
		devKeys = append(devKeys, key)
	}
	sort.Ints(devKeys)
	for _, key := range devKeys {
		info := e.devFields[key]
		if info == nil {
			return errors.Wrapf(ErrUnregisteredDeveloperField, "developer field key %d", key)
		}
		layout := profile.Layout{Type: info.baseType.Name(), BaseType: info.baseType, Scale: info.scale, Offset: info.offset}
		data, err := encodeField(msg.DeveloperFields[key], info.baseType, layout)
		if err != nil {
			return errors.Wrapf(err, "developer field key %d", key)
		}
		if data == nil {
			continue
		}
		if len(data) > math.MaxUint8 {
			return errors.Wrapf(ErrValueOutOfRange, "developer field key %d encodes to %d bytes", key, len(data))
		}
		def.DeveloperFieldDefinitions = append(def.DeveloperFieldDefinitions, DeveloperFieldDefinition{
			Num:                info.num,
			Size:               uint8(len(data)),
			DeveloperDataIndex: info.devIndex,
		})
		payload = append(payload, data...)
	}

	local, err := e.localFor(def)
	if err != nil {
		return err
	}
	if err := e.stream.WriteByte(local & headerLocalMesgNumMask); err != nil {
		return err
	}
	return e.stream.WriteBytes(payload)
}

// dropComponentTargets removes fields another present field expands into
func dropComponentTargets(byNum map[uint8]encodedField) {
	targets := make(map[uint8]bool)
	for num, f := range byNum {
		for _, c := range f.layout.Components {
			if c.FieldNum != num {
				targets[c.FieldNum] = true
			}
		}
	}
	for num := range targets {
		delete(byNum, num)
	}
}

// localFor returns the local number bound to an equal definition, or binds the next
// one round robin and writes the definition record
func (e *Encoder) localFor(def *MessageDefinition) (uint8, error) {
	for i, live := range e.locals {
		if live.Equal(def) {
			return uint8(i), nil
		}
	}
	local := uint8(e.nextLocal)
	e.nextLocal = (e.nextLocal + 1) % LocalMesgNums
	def.LocalNum = local
	e.locals[local] = def
	return local, e.stream.WriteBytes(def.Marshal())
}

// Close back-patches the header, appends the trailer CRC and returns the file.
// The encoder rejects writes afterwards.
func (e *Encoder) Close() ([]byte, error) {
	if e.closed {
		return nil, ErrEncoderClosed
	}
	e.closed = true
	if e.listenErr != nil {
		return nil, e.listenErr
	}

	buf := e.stream.Bytes()
	dataSize := len(buf) - e.opts.headerSize
	if dataSize < 0 || int64(dataSize) > math.MaxUint32 {
		return nil, errors.Wrapf(ErrValueOutOfRange, "data size %d", dataSize)
	}
	if _, err := e.stream.WriteAt(e.header(uint32(dataSize)).Marshal(), 0); err != nil {
		return nil, err
	}

	var crc uint16
	if e.opts.fileCRC {
		crc = CalculateCRC(buf, 0, len(buf))
	} else {
		crc = CalculateCRC(buf, e.opts.headerSize, dataSize)
	}
	var trailer [CRCSize]byte
	binary.LittleEndian.PutUint16(trailer[:], crc)
	if err := e.stream.WriteBytes(trailer[:]); err != nil {
		return nil, err
	}
	return e.stream.Bytes(), nil
}

// encodeField serialises a field value with the definition base type bt, using
// layout for unit and enum conversion. A nil value encodes nothing.
func encodeField(v any, bt profile.BaseType, layout profile.Layout) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	if bt == profile.BaseString {
		var out []byte
		switch t := v.(type) {
		case string:
			out = append([]byte(t), 0)
		case []any:
			for _, item := range t {
				str, ok := item.(string)
				if !ok {
					return nil, errors.Wrapf(ErrValueOutOfRange, "string field got %T", item)
				}
				out = append(append(out, str...), 0)
			}
		default:
			return nil, errors.Wrapf(ErrValueOutOfRange, "string field got %T", v)
		}
		return out, nil
	}

	elems := sliceElems(v)
	if elems == nil {
		elems = []any{v}
	}
	info := bt.Info()
	out := make([]byte, 0, len(elems)*info.Size)
	for _, el := range elems {
		bits, err := elementBits(el, bt, layout)
		if err != nil {
			return nil, err
		}
		out = appendBits(out, bits, info.Size, binary.LittleEndian)
	}
	return out, nil
}

// sliceElems flattens any slice other than string into []any; nil for non-slices
func sliceElems(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []byte:
		out := make([]any, len(t))
		for i, b := range t {
			out[i] = int64(b)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func elementBits(v any, bt profile.BaseType, layout profile.Layout) (uint64, error) {
	info := bt.Info()
	var f float64
	scaled := true
	switch t := v.(type) {
	case nil:
		return info.Invalid, nil
	case time.Time:
		f, scaled = float64(ConvertDateToDateTime(t)), false
	case bool:
		f, scaled = 0, false
		if t {
			f = 1
		}
	case string:
		n, ok := profile.TypeValue(layout.Type, t)
		if !ok {
			return 0, errors.Wrapf(ErrValueOutOfRange, "%q is not a %s value", t, layout.Type)
		}
		f, scaled = float64(n), false
	case uint64:
		if layout.Scale == 1 && layout.Offset == 0 && !info.Float {
			return checkUnsigned(t, bt)
		}
		f = float64(t)
	case int64:
		if layout.Scale == 1 && layout.Offset == 0 && !info.Float {
			return checkSigned(t, bt)
		}
		f = float64(t)
	default:
		n, ok := numeric(v)
		if !ok {
			return 0, errors.Wrapf(ErrValueOutOfRange, "unsupported value type %T", v)
		}
		f = n
	}

	if scaled && (layout.Scale != 1 || layout.Offset != 0) && layout.Scale != 0 {
		f = profile.RemoveScaleAndOffset(f, layout.Scale, layout.Offset)
	}

	switch bt {
	case profile.BaseFloat32:
		return uint64(math.Float32bits(float32(f))), nil
	case profile.BaseFloat64:
		return math.Float64bits(f), nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Wrapf(ErrValueOutOfRange, "%v", f)
	}
	r := math.Round(f)
	if info.Signed {
		if r < math.MinInt64 || r > math.MaxInt64 {
			return 0, errors.Wrapf(ErrValueOutOfRange, "%v", f)
		}
		return checkSigned(int64(r), bt)
	}
	if r < 0 || r > math.MaxUint64 {
		return 0, errors.Wrapf(ErrValueOutOfRange, "%v does not fit %s", f, bt)
	}
	return checkUnsigned(uint64(r), bt)
}

func numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

func checkSigned(n int64, bt profile.BaseType) (uint64, error) {
	info := bt.Info()
	if !info.Signed {
		if n < 0 {
			return 0, errors.Wrapf(ErrValueOutOfRange, "%d does not fit %s", n, bt)
		}
		return checkUnsigned(uint64(n), bt)
	}
	bits := uint(info.Size * 8)
	lo, hi := int64(-1)<<(bits-1), int64(1)<<(bits-1)-1
	if bits == 64 {
		lo, hi = math.MinInt64, math.MaxInt64
	}
	if n < lo || n > hi {
		return 0, errors.Wrapf(ErrValueOutOfRange, "%d does not fit %s", n, bt)
	}
	return uint64(n) & sizeMask(info.Size), nil
}

func checkUnsigned(n uint64, bt profile.BaseType) (uint64, error) {
	info := bt.Info()
	if info.Signed {
		if n > math.MaxInt64 {
			return 0, errors.Wrapf(ErrValueOutOfRange, "%d does not fit %s", n, bt)
		}
		return checkSigned(int64(n), bt)
	}
	if n > sizeMask(info.Size) {
		return 0, errors.Wrapf(ErrValueOutOfRange, "%d does not fit %s", n, bt)
	}
	return n, nil
}

func sizeMask(size int) uint64 {
	if size >= 8 {
		return math.MaxUint64
	}
	return uint64(1)<<(uint(size)*8) - 1
}

func intField(fields map[string]any, name string) (int64, bool) {
	v, ok := fields[name]
	if !ok {
		return 0, false
	}
	if n, ok := toInt64(first(v)); ok {
		return n, true
	}
	f, ok := numeric(first(v))
	return int64(f), ok
}

func floatField(fields map[string]any, name string) (float64, bool) {
	v, ok := fields[name]
	if !ok {
		return 0, false
	}
	if f, ok := toFloat(first(v)); ok {
		return f, true
	}
	return numeric(first(v))
}

// baseTypeField accepts a base type as number or name
func baseTypeField(v any) (profile.BaseType, bool) {
	if name, ok := v.(string); ok {
		return profile.BaseTypeByName(name)
	}
	n, ok := toInt64(v)
	if !ok {
		f, ok2 := numeric(v)
		n, ok = int64(f), ok2
	}
	bt := profile.BaseType(n)
	return bt, ok && bt.IsValid()
}
