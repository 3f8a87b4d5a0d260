package fit

import (
	"encoding/binary"
	"log/slog"
	"math"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/fitkit/pkg/profile"
)

// DecoderState is the position of a Decoder in its state machine
type DecoderState int

// Decoder states
const (
	StateExpectHeader DecoderState = iota
	StateExpectRecord
	StateDefinitionRecord
	StateDataRecord
	StateExpectTrailingChecksum
	StateDone
	StateFailed
)

func (s DecoderState) String() string {
	switch s {
	case StateExpectHeader:
		return "expectHeader"
	case StateExpectRecord:
		return "expectRecord"
	case StateDefinitionRecord:
		return "definitionRecord"
	case StateDataRecord:
		return "dataRecord"
	case StateExpectTrailingChecksum:
		return "expectTrailingChecksum"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

type developerData struct {
	idMesg Message
	fields map[uint8]*fieldDescription
}

type fieldDescription struct {
	key      int
	num      uint8
	baseType profile.BaseType
	scale    float64 // 0 when the description carries none
	offset   float64
	mesg     Message
}

// Decoder reads FIT files from a Stream. A Decoder owns its pass state and is not
// safe for concurrent use; give every goroutine its own Stream and Decoder.
type Decoder struct {
	stream *Stream
	state  DecoderState
	opts   ReadOptions
	logger *slog.Logger
	result *ReadResult

	locals        [LocalMesgNums]*MessageDefinition
	accumulator   *accumulator
	developerData map[uint8]*developerData
	nextDevKey    int
	lastTimestamp uint32
	files         int
}

// NewDecoder creates a decoder over s
func NewDecoder(s *Stream) *Decoder {
	return &Decoder{stream: s, logger: discardLogger}
}

// Decode is a convenience for NewDecoder(NewStream(buf)).Read(opts...)
func Decode(buf []byte, opts ...Option) (*ReadResult, error) {
	return NewDecoder(NewStream(buf)).Read(opts...)
}

// State returns the current state
func (d *Decoder) State() DecoderState { return d.state }

// IsFIT reports whether the stream holds a FIT header at its position
func (d *Decoder) IsFIT() bool { return IsFIT(d.stream) }

// CheckIntegrity reports whether every file in the stream has a valid header and
// matching checksums
func (d *Decoder) CheckIntegrity() bool {
	return d.VerifyIntegrity() == nil
}

// VerifyIntegrity checks every (possibly chained) file in the stream from offset 0.
// The trailer may cover either the data records or the whole file. A non-zero header
// CRC of a 14 byte header is checked too. Decode state is not touched.
func (d *Decoder) VerifyIntegrity() error {
	buf := d.stream.Bytes()
	if len(buf) == 0 {
		return structural(0, errors.Wrap(ErrOutOfRange, "empty stream"))
	}
	offset := 0
	for offset < len(buf) {
		h, err := parseHeader(buf[offset:])
		if err != nil {
			return structural(offset, err)
		}
		end := offset + int(h.Size) + int(h.DataSize)
		if end+CRCSize > len(buf) {
			return structural(offset, errors.Wrapf(ErrOutOfRange,
				"file needs %d bytes, have %d", h.FileSize(), len(buf)-offset))
		}
		if h.HasCRC() && h.CRC != 0 {
			if actual := CalculateCRC(buf, offset, HeaderSizeNoCRC); actual != h.CRC {
				return &ChecksumMismatchError{Offset: offset, Expected: h.CRC, Actual: actual}
			}
		}
		stored := binary.LittleEndian.Uint16(buf[end:])
		whole := CalculateCRC(buf, offset, end-offset)
		if stored != whole && stored != CalculateCRC(buf, offset+int(h.Size), int(h.DataSize)) {
			return &ChecksumMismatchError{Offset: end, Expected: stored, Actual: whole}
		}
		offset = end + CRCSize
	}
	return nil
}

// Read decodes every record. Per-record problems are collected in ReadResult.Errors;
// a structural failure stops the pass and is returned together with the partial
// result (and also appended to Errors).
func (d *Decoder) Read(opts ...Option) (*ReadResult, error) {
	o := DefaultReadOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d.opts = o
	d.logger = o.Logger
	if d.logger == nil {
		d.logger = discardLogger
	}
	d.result = newReadResult()
	d.nextDevKey = 0
	d.files = 0
	result := d.result
	defer func() { d.result = nil }()

	if !o.SkipHeader {
		if _, err := PeekFileHeader(d.stream); err != nil {
			return d.fail(structural(d.stream.Position(), err))
		}
	}

	for {
		if err := d.decodeFile(); err != nil {
			return d.fail(err)
		}
		if o.SkipHeader || d.stream.Remaining() == 0 {
			break
		}
	}

	d.state = StateDone
	d.postProcess()
	return result, nil
}

func (d *Decoder) fail(err error) (*ReadResult, error) {
	d.state = StateFailed
	d.result.Errors = append(d.result.Errors, err)
	return d.result, err
}

func (d *Decoder) resetFileState() {
	d.locals = [LocalMesgNums]*MessageDefinition{}
	d.accumulator = newAccumulator()
	d.developerData = make(map[uint8]*developerData)
	d.lastTimestamp = 0
}

func (d *Decoder) decodeFile() error {
	d.resetFileState()
	s := d.stream
	fileStart := s.Position()
	crc := NewCrcCalculator()
	s.SetCRCCalculator(crc)
	defer s.SetCRCCalculator(nil)

	d.state = StateExpectHeader
	dataStart, end := fileStart, s.Len()-CRCSize
	if !d.opts.SkipHeader {
		h, err := ReadFileHeader(s)
		if err != nil {
			return err
		}
		if d.files == 0 {
			d.result.ProfileVersion = h.ProfileVersion
		}
		dataStart = s.Position()
		end = dataStart + int(h.DataSize)
		d.logger.Debug("fit file header", "offset", fileStart, "headerSize", h.Size,
			"dataSize", h.DataSize, "profileVersion", h.ProfileVersion)
	}
	d.files++

	d.state = StateExpectRecord
	for s.Position() < end {
		if err := d.decodeRecord(end); err != nil {
			return err
		}
	}

	d.state = StateExpectTrailingChecksum
	computed := crc.CRC()
	trailerAt := s.Position()
	stored, err := s.ReadUint16(LittleEndian)
	if err != nil {
		return structural(trailerAt, err)
	}
	if !d.opts.SkipHeader && stored != computed && end <= s.Len() &&
		stored != CalculateCRC(s.Bytes(), dataStart, end-dataStart) {
		d.logger.Warn("fit file checksum mismatch", "offset", trailerAt,
			"stored", stored, "computed", computed)
	}
	return nil
}

func (d *Decoder) decodeRecord(end int) error {
	s := d.stream
	start := s.Position()
	header, err := s.ReadByte()
	if err != nil {
		return structural(start, err)
	}

	switch {
	case header&headerCompressedMask != 0:
		local := (header & compressedLocalMesgNumMask) >> compressedLocalMesgNumShift
		offset := uint32(header & compressedTimeMask)
		d.lastTimestamp += (offset - (d.lastTimestamp & uint32(compressedTimeMask))) & uint32(compressedTimeMask)
		ts := d.lastTimestamp
		return d.decodeData(start, local, &ts, end)

	case header&headerDefinitionMask != 0:
		d.state = StateDefinitionRecord
		def, err := readDefinition(s, header)
		if err != nil {
			return structural(start, err)
		}
		d.locals[def.LocalNum] = def
		d.logger.Debug("fit definition", "offset", start, "local", def.LocalNum,
			"mesgNum", def.GlobalNum, "fields", len(def.FieldDefinitions),
			"developerFields", len(def.DeveloperFieldDefinitions))
		if l := d.opts.MesgDefinitionListener; l != nil {
			d.safely("definition", func() { l(*def) })
		}
		d.state = StateExpectRecord
		return nil
	}

	return d.decodeData(start, header&headerLocalMesgNumMask, nil, end)
}

func (d *Decoder) decodeData(start int, local uint8, ts *uint32, end int) error {
	def := d.locals[local]
	if def == nil {
		d.result.Errors = append(d.result.Errors, &MissingDefinitionError{LocalNum: local, Offset: start})
		return d.resync(end)
	}

	d.state = StateDataRecord
	msg, ok, err := d.readMessage(def, ts)
	if err != nil {
		return structural(start, err)
	}
	d.state = StateExpectRecord
	if ok {
		d.deliver(msg)
	}
	return nil
}

// resync skips forward to the next offset that starts a plausible run of records:
// a definition record, or data records for defined locals whose sizes chain to the
// end of the region or to a definition. The skipped bytes are still fed to the
// checksum. Without a candidate the rest of the data region is abandoned.
func (d *Decoder) resync(end int) error {
	s := d.stream
	buf := s.Bytes()
	limit := end
	if limit > len(buf) {
		limit = len(buf)
	}
	from := s.Position()
	next := limit
	for at := from; at < limit; at++ {
		if d.recordChainAt(buf, at, limit, resyncChainDepth) {
			next = at
			break
		}
	}
	d.logger.Debug("fit resync after missing definition", "from", from-1, "to", next, "abandoned", next == limit)
	if next <= from {
		return nil
	}
	if _, err := s.ReadBytes(next - from); err != nil {
		return structural(from, err)
	}
	return nil
}

// resyncChainDepth is how many consecutive data records must line up before a
// data header is trusted as a resync point
const resyncChainDepth = 3

func (d *Decoder) recordChainAt(buf []byte, at, end, depth int) bool {
	if at >= end {
		return false
	}
	if plausibleDefinition(buf, at, end) {
		return true
	}
	def := d.liveDataDefinition(buf[at])
	if def == nil {
		return false
	}
	next := at + 1 + def.DataSize()
	switch {
	case next == end:
		return true
	case next > end:
		return false
	case depth <= 1:
		return true
	}
	return d.recordChainAt(buf, next, end, depth-1)
}

// liveDataDefinition returns the definition a data record header refers to, or nil
// when h is not a data header or its local number is undefined
func (d *Decoder) liveDataDefinition(h byte) *MessageDefinition {
	if h&headerCompressedMask != 0 {
		return d.locals[(h&compressedLocalMesgNumMask)>>compressedLocalMesgNumShift]
	}
	if h&(headerDefinitionMask|headerDevDataMask|headerReservedMask) != 0 {
		return nil
	}
	return d.locals[h&headerLocalMesgNumMask]
}

type decodedField struct {
	name   string
	num    uint8
	field  *profile.FieldProfile // nil for fields the profile does not know
	layout profile.Layout
	values []any
}

type fieldSet struct {
	list   []*decodedField
	byName map[string]*decodedField
}

func (fs *fieldSet) add(f *decodedField) {
	fs.list = append(fs.list, f)
	fs.byName[f.name] = f
}

func (d *Decoder) readMessage(def *MessageDefinition, ts *uint32) (Message, bool, error) {
	s := d.stream
	o := d.opts
	order := def.Architecture.ByteOrder()
	mp := profile.Message(def.GlobalNum)

	raw := make(map[uint8][]any, len(def.FieldDefinitions))
	fs := &fieldSet{byName: make(map[string]*decodedField, len(def.FieldDefinitions))}

	for _, fd := range def.FieldDefinitions {
		b, err := s.ReadBytes(int(fd.Size))
		if err != nil {
			return Message{}, false, err
		}
		bt := fd.effectiveBaseType()
		vals := readValues(b, bt, order)
		if vals == nil {
			continue
		}
		raw[fd.Num] = vals

		var fp *profile.FieldProfile
		if mp != nil {
			fp = mp.Field(fd.Num)
		}
		if fp == nil {
			if o.IncludeUnknownData {
				name := strconv.Itoa(int(fd.Num))
				fs.add(&decodedField{
					name:   name,
					num:    fd.Num,
					layout: profile.Layout{Name: name, Type: bt.Name(), BaseType: bt, Scale: 1},
					values: vals,
				})
			}
			continue
		}
		if fp.Accumulate {
			d.setAccumulatedBaseline(mp, fp, vals)
		}
		fs.add(&decodedField{name: fp.Name, num: fp.Num, field: fp, layout: fp.Layout(), values: vals})
	}

	var devValues map[int]any
	for _, dd := range def.DeveloperFieldDefinitions {
		b, err := s.ReadBytes(int(dd.Size))
		if err != nil {
			return Message{}, false, err
		}
		desc := d.fieldDescription(dd.DeveloperDataIndex, dd.Num)
		if desc == nil {
			if !o.IgnoreUnresolvedDeveloperFields {
				d.result.Errors = append(d.result.Errors, &UnresolvedDeveloperFieldError{
					DeveloperDataIndex: dd.DeveloperDataIndex,
					FieldNum:           dd.Num,
				})
			}
			continue
		}
		if v, ok := d.developerValue(desc, b, order); ok {
			if devValues == nil {
				devValues = make(map[int]any)
			}
			devValues[desc.key] = v
		}
	}

	if ts != nil {
		if _, ok := raw[profile.FieldTimestamp]; !ok {
			vals := []any{int64(*ts)}
			raw[profile.FieldTimestamp] = vals
			f := &decodedField{
				name:   "timestamp",
				num:    profile.FieldTimestamp,
				layout: profile.Layout{Name: "timestamp", Type: profile.TypeDateTime, BaseType: profile.BaseUint32, Scale: 1},
				values: vals,
			}
			if mp != nil {
				if fp := mp.Field(profile.FieldTimestamp); fp != nil {
					f.name, f.field, f.layout = fp.Name, fp, fp.Layout()
				}
			}
			fs.add(f)
		}
	} else if v, ok := raw[profile.FieldTimestamp]; ok {
		if n, ok := toInt64(v[0]); ok {
			d.lastTimestamp = uint32(n)
		}
	}

	if mp == nil && !o.IncludeUnknownData {
		return Message{}, false, nil
	}

	ref := func(num uint8) (int64, bool) {
		v, ok := raw[num]
		if !ok || len(v) == 0 {
			return 0, false
		}
		return toInt64(v[0])
	}

	if o.ExpandSubFields {
		for _, f := range fs.list {
			if f.field == nil || len(f.field.SubFields) == 0 {
				continue
			}
			layout := f.field.Resolve(ref)
			if !layout.IsSubField {
				continue
			}
			fs.add(&decodedField{
				name:   layout.Name,
				num:    f.num,
				field:  f.field,
				layout: layout,
				values: append([]any(nil), f.values...),
			})
		}
	}

	if o.ExpandComponents && mp != nil {
		d.expandComponents(mp, fs)
	}

	msg := Message{
		Num:             def.GlobalNum,
		Name:            mesgName(def.GlobalNum),
		Fields:          make(map[string]any, len(fs.list)),
		DeveloperFields: devValues,
	}
	for _, f := range fs.list {
		if v, ok := d.transform(f); ok {
			msg.Fields[f.name] = v
		}
	}

	switch def.GlobalNum {
	case profile.MesgNumDeveloperDataID:
		d.registerDeveloperDataID(raw, msg)
	case profile.MesgNumFieldDescription:
		d.registerFieldDescription(raw, msg)
	}
	return msg, true, nil
}

func (d *Decoder) expandComponents(mp *profile.MessageProfile, fs *fieldSet) {
	var queue []*decodedField
	for _, f := range fs.list {
		if len(f.layout.Components) > 0 {
			queue = append(queue, f)
		}
	}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		if !f.layout.BaseType.IsInteger() {
			continue
		}
		bs := newBitStream(f.values, f.layout.BaseType)
		for _, c := range f.layout.Components {
			if bs.bitsAvailable() < int(c.Bits) {
				break
			}
			v := bs.read(int(c.Bits))
			target := mp.Field(c.FieldNum)
			if target == nil {
				continue
			}
			if c.Accumulate {
				v = d.accumulator.accumulate(mp.Num, target.Num, v, c.Bits)
			}
			value := float64(v)/c.Scale - c.Offset
			rawValue := (value + target.Offset) * target.Scale

			dst := fs.byName[target.Name]
			if dst == nil {
				dst = &decodedField{name: target.Name, num: target.Num, field: target, layout: target.Layout()}
				fs.add(dst)
				if target.HasComponents() {
					queue = append(queue, dst)
				}
			}
			dst.values = append(dst.values, rawValue)
		}
	}
}

// setAccumulatedBaseline seeds the accumulator from a directly decoded value,
// converted into the units of the component that accumulates into the field
func (d *Decoder) setAccumulatedBaseline(mp *profile.MessageProfile, fp *profile.FieldProfile, vals []any) {
	comp, hasComp := accumulatingComponent(mp, fp.Num)
	for _, v := range vals {
		f, ok := toFloat(v)
		if !ok {
			continue
		}
		if hasComp {
			f = ((f/fp.Scale - fp.Offset) + comp.Offset) * comp.Scale
		}
		if f < 0 {
			f = 0
		}
		d.accumulator.set(mp.Num, fp.Num, uint64(math.Round(f)))
	}
}

func accumulatingComponent(mp *profile.MessageProfile, num uint8) (profile.Component, bool) {
	for _, f := range mp.FieldList {
		for _, c := range f.Components {
			if c.FieldNum == num && c.Accumulate {
				return c, true
			}
		}
		for _, sf := range f.SubFields {
			for _, c := range sf.Components {
				if c.FieldNum == num && c.Accumulate {
					return c, true
				}
			}
		}
	}
	return profile.Component{}, false
}

func (d *Decoder) transform(f *decodedField) (any, bool) {
	if len(f.values) == 0 {
		return nil, false
	}
	out := make([]any, len(f.values))
	for i, v := range f.values {
		out[i] = d.transformValue(f, v)
	}
	if len(out) == 1 && !f.layout.Array {
		return out[0], true
	}
	return out, true
}

func (d *Decoder) transformValue(f *decodedField, v any) any {
	if _, ok := v.(string); ok || f.field == nil {
		return normalizeRaw(v)
	}
	l := f.layout
	o := d.opts
	if o.ConvertTypesToStrings {
		if l.Type == profile.TypeBool {
			if n, ok := toInt64(v); ok {
				return n != 0
			}
		}
		if profile.IsEnumType(l.Type) {
			if n, ok := toInt64(v); ok {
				if name, ok := profile.TypeName(l.Type, n); ok {
					return name
				}
			}
			return normalizeRaw(v)
		}
	}
	if o.ConvertDateTimesToDates && l.Type == profile.TypeDateTime {
		if n, ok := toInt64(v); ok {
			return ConvertDateTimeToDate(uint32(n))
		}
	}
	if o.ApplyScaleAndOffset && (l.Scale != 1 || l.Offset != 0) {
		if fv, ok := toFloat(v); ok {
			return profile.ApplyScaleAndOffset(fv, l.Scale, l.Offset)
		}
	}
	return normalizeRaw(v)
}

func (d *Decoder) fieldDescription(devIndex, num uint8) *fieldDescription {
	dd := d.developerData[devIndex]
	if dd == nil {
		return nil
	}
	return dd.fields[num]
}

func (d *Decoder) developerValue(desc *fieldDescription, b []byte, order binary.ByteOrder) (any, bool) {
	bt := desc.baseType
	if !bt.IsValid() || len(b)%bt.Size() != 0 {
		bt = profile.BaseByte
	}
	vals := readValues(b, bt, order)
	if vals == nil {
		return nil, false
	}
	scaled := d.opts.ApplyScaleAndOffset && desc.scale > 0 && (desc.scale != 1 || desc.offset != 0)
	for i, v := range vals {
		if f, ok := toFloat(v); ok && scaled {
			vals[i] = profile.ApplyScaleAndOffset(f, desc.scale, desc.offset)
			continue
		}
		vals[i] = normalizeRaw(v)
	}
	if len(vals) == 1 {
		return vals[0], true
	}
	return vals, true
}

func firstInt(raw map[uint8][]any, num uint8) (int64, bool) {
	v, ok := raw[num]
	if !ok || len(v) == 0 {
		return 0, false
	}
	return toInt64(v[0])
}

func (d *Decoder) registerDeveloperDataID(raw map[uint8][]any, msg Message) {
	idx, ok := firstInt(raw, 3)
	if !ok {
		d.logger.Debug("fit developer data id without developer data index")
		return
	}
	d.developerData[uint8(idx)] = &developerData{idMesg: msg, fields: make(map[uint8]*fieldDescription)}
}

func (d *Decoder) registerFieldDescription(raw map[uint8][]any, msg Message) {
	idx, ok1 := firstInt(raw, 0)
	num, ok2 := firstInt(raw, 1)
	bt, ok3 := firstInt(raw, 2)
	if !ok1 || !ok2 || !ok3 {
		d.logger.Debug("fit field description is incomplete", "fields", msg.FieldNames())
		return
	}
	dd := d.developerData[uint8(idx)]
	if dd == nil {
		dd = &developerData{idMesg: NewMessage(profile.MesgNumDeveloperDataID), fields: make(map[uint8]*fieldDescription)}
		d.developerData[uint8(idx)] = dd
	}
	desc := &fieldDescription{key: d.nextDevKey, num: uint8(num), baseType: profile.BaseType(bt), mesg: msg}
	d.nextDevKey++
	if v, ok := firstInt(raw, 6); ok {
		desc.scale = float64(v)
	}
	if v, ok := firstInt(raw, 7); ok {
		desc.offset = float64(v)
	}
	dd.fields[uint8(num)] = desc

	if l := d.opts.FieldDescriptionListener; l != nil {
		d.safely("field description", func() { l(desc.key, dd.idMesg, msg) })
	}
}

func (d *Decoder) deliver(msg Message) {
	if !d.opts.DataOnly {
		d.result.append(messagesKey(msg.Num), msg)
	}
	if l := d.opts.MesgListener; l != nil {
		d.safely("message", func() { l(msg.Num, msg) })
	}
}

// safely runs a listener, recording a panic as a non-fatal error
func (d *Decoder) safely(listener string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.result.Errors = append(d.result.Errors, errors.Wrapf(ErrListenerPanic, "%s listener: %v", listener, r))
		}
	}()
	fn()
}

func (d *Decoder) postProcess() {
	if d.opts.DataOnly {
		return
	}
	if d.opts.MergeHeartRates && len(d.result.Mesgs(profile.MesgNumHr)) > 0 {
		if !d.opts.ApplyScaleAndOffset || !d.opts.ExpandComponents {
			d.result.Errors = append(d.result.Errors, ErrMergeHeartRates)
		} else {
			mergeHeartRates(d.result.Mesgs(profile.MesgNumHr), d.result.Mesgs(profile.MesgNumRecord))
		}
	}
	if d.opts.DecodeMemoGlobs {
		decodeMemoGlobs(d.result)
	}
}
