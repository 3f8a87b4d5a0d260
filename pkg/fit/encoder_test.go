package fit

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/fitkit/pkg/profile"
)

var created = time.Date(2021, time.June, 5, 7, 30, 0, 0, time.UTC)

func fileIDMesg() Message {
	return NewMessage(profile.MesgNumFileID).
		Set("type", "activity").
		Set("manufacturer", "garmin").
		Set("product", 1).
		Set("timeCreated", created)
}

func encode(t *testing.T, opts []EncoderOption, mesgs ...Message) []byte {
	t.Helper()
	e, err := NewEncoder(opts...)
	require.NoError(t, err)
	for _, m := range mesgs {
		require.NoError(t, e.WriteMesg(m))
	}
	out, err := e.Close()
	require.NoError(t, err)
	return out
}

func TestEncodeSingleMessage(t *testing.T) {
	out := encode(t, nil, fileIDMesg())

	h, err := parseHeader(out)
	require.NoError(t, err)
	assert.Equal(t, uint8(HeaderSizeNoCRC), h.Size)
	assert.Equal(t, ProtocolVersion20, h.ProtocolVersion)
	assert.Equal(t, profile.CurrentVersion.ProfileVersion(), h.ProfileVersion)

	// 4 fields: definition is 6+4*3 bytes, data is 1+1+2+2+4 bytes
	defSize, dataSize := 6+4*3, 1+1+2+2+4
	assert.Equal(t, uint32(defSize+dataSize), h.DataSize)
	require.Len(t, out, HeaderSizeNoCRC+defSize+dataSize+CRCSize)

	trailer := binary.LittleEndian.Uint16(out[len(out)-2:])
	assert.Equal(t, CalculateCRC(out, HeaderSizeNoCRC, int(h.DataSize)), trailer)

	assert.Equal(t, byte(0x40), out[HeaderSizeNoCRC], "definition for local 0")
	assert.Equal(t, byte(0x00), out[HeaderSizeNoCRC+defSize], "data record for local 0")

	assert.True(t, NewDecoder(NewStream(out)).CheckIntegrity())
}

func TestEncodeRoundTrip(t *testing.T) {
	ts := created.Add(time.Minute)
	record := NewMessage(profile.MesgNumRecord).
		Set("timestamp", ts).
		Set("heartRate", 150).
		Set("altitude", 100.0).
		Set("speed1s", []float64{1, 2}).
		Set("activityType", "running")
	device := NewMessage(profile.MesgNumFileID).
		Set("type", "activity").
		Set("manufacturer", "development").
		Set("productName", "edge")

	out := encode(t, nil, fileIDMesg(), record, device)
	result, err := Decode(out)
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	assert.Equal(t, profile.CurrentVersion.ProfileVersion(), result.ProfileVersion)

	ids := result.Mesgs(profile.MesgNumFileID)
	require.Len(t, ids, 2)
	assert.Equal(t, "activity", ids[0].Fields["type"])
	assert.Equal(t, "garmin", ids[0].Fields["manufacturer"])
	assert.Equal(t, int64(1), ids[0].Fields["product"])
	assert.Equal(t, "hrm1", ids[0].Fields["garminProduct"])
	assert.Equal(t, created, ids[0].Fields["timeCreated"])
	assert.Equal(t, "development", ids[1].Fields["manufacturer"])
	assert.Equal(t, "edge", ids[1].Fields["productName"])

	records := result.Mesgs(profile.MesgNumRecord)
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, ts, r.Fields["timestamp"])
	assert.Equal(t, int64(150), r.Fields["heartRate"])
	assert.Equal(t, 100.0, r.Fields["altitude"])
	assert.Equal(t, []any{1.0, 2.0}, r.Fields["speed1s"])
}

func TestEncodeReencodesDecodedMessages(t *testing.T) {
	e, err := NewEncoder()
	require.NoError(t, err)

	first, err := Decode(fileIDFile(), WithMesgListener(e.MesgListener()))
	require.NoError(t, err)
	out, err := e.Close()
	require.NoError(t, err)

	second, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, first.Mesgs(profile.MesgNumFileID)[0].Fields, second.Mesgs(profile.MesgNumFileID)[0].Fields)
}

func TestEncodeMainFieldWinsOverSubField(t *testing.T) {
	both := NewMessage(profile.MesgNumFileID).
		Set("manufacturer", "garmin").
		Set("product", 5).
		Set("garminProduct", "hrm1")
	subOnly := NewMessage(profile.MesgNumFileID).
		Set("manufacturer", "garmin").
		Set("garminProduct", "hrm1")

	result, err := Decode(encode(t, nil, both, subOnly))
	require.NoError(t, err)
	ids := result.Mesgs(profile.MesgNumFileID)
	require.Len(t, ids, 2)
	assert.Equal(t, int64(5), ids[0].Fields["product"])
	assert.Equal(t, int64(1), ids[1].Fields["product"])
	assert.Equal(t, "hrm1", ids[1].Fields["garminProduct"])
}

func TestEncodeReusesLocalNumbers(t *testing.T) {
	hr := func(v int) Message { return NewMessage(profile.MesgNumRecord).Set("heartRate", v) }
	hrCad := NewMessage(profile.MesgNumRecord).Set("heartRate", 100).Set("cadence", 80)

	out := encode(t, nil, hr(90), hrCad, hr(91), hr(92))

	var defs []MessageDefinition
	result, err := Decode(out, WithMesgDefinitionListener(func(def MessageDefinition) { defs = append(defs, def) }))
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, uint8(0), defs[0].LocalNum)
	assert.Equal(t, uint8(1), defs[1].LocalNum)
	assert.Len(t, result.Mesgs(profile.MesgNumRecord), 4)
}

func TestEncodeLocalNumbersRoundRobin(t *testing.T) {
	names := []string{
		"heartRate", "cadence", "power", "resistance", "temperature", "gpsAccuracy",
		"calories", "leftRightBalance", "activityType", "batterySoc", "positionLat",
		"positionLong", "grade", "cycleLength", "totalCycles", "accumulatedPower",
		"absolutePressure",
	}
	mesgs := make([]Message, len(names))
	for i, name := range names {
		mesgs[i] = NewMessage(profile.MesgNumRecord).Set(name, 1)
	}

	var locals []uint8
	result, err := Decode(encode(t, nil, mesgs...),
		WithMesgDefinitionListener(func(def MessageDefinition) { locals = append(locals, def.LocalNum) }))
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Len(t, locals, len(names))
	for i, local := range locals {
		assert.Equal(t, uint8(i%LocalMesgNums), local)
	}
	assert.Len(t, result.Mesgs(profile.MesgNumRecord), len(names))
}

func TestEncodeFileCRCAndHeaderCRC(t *testing.T) {
	out := encode(t, []EncoderOption{WithHeaderSize(HeaderSizeWithCRC), WithFileCRC(), WithProfileVersion(2132)}, fileIDMesg())

	h, err := parseHeader(out)
	require.NoError(t, err)
	assert.Equal(t, uint8(HeaderSizeWithCRC), h.Size)
	assert.Equal(t, uint16(2132), h.ProfileVersion)
	assert.Equal(t, CalculateCRC(out, 0, HeaderSizeNoCRC), h.CRC)
	assert.Equal(t, uint16(0), CalculateCRC(out, 0, len(out)), "trailer covers the whole file")

	d := NewDecoder(NewStream(out))
	require.NoError(t, d.VerifyIntegrity())
	result, err := d.Read()
	require.NoError(t, err)
	assert.Len(t, result.Mesgs(profile.MesgNumFileID), 1)
}

func TestEncodeByteFlipFailsIntegrity(t *testing.T) {
	out := encode(t, nil, fileIDMesg())
	for _, at := range []int{HeaderSizeNoCRC + 1, len(out) - 3} {
		flipped := append([]byte(nil), out...)
		flipped[at] ^= 0x10
		assert.False(t, NewDecoder(NewStream(flipped)).CheckIntegrity(), "flip at %d", at)
	}
}

func TestEncoderClosed(t *testing.T) {
	e, err := NewEncoder()
	require.NoError(t, err)
	_, err = e.Close()
	require.NoError(t, err)

	assert.True(t, errors.Is(e.WriteMesg(fileIDMesg()), ErrEncoderClosed))
	assert.True(t, errors.Is(e.OnMesg(profile.MesgNumFileID, fileIDMesg()), ErrEncoderClosed))
	assert.True(t, errors.Is(e.AddDeveloperField(0, Message{}, Message{}), ErrEncoderClosed))
	_, err = e.Close()
	assert.True(t, errors.Is(err, ErrEncoderClosed))
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want error
	}{
		{"unknown message", NewMessage(profile.MesgNum(0xFF42)).Set("x", 1), ErrUnknownMessage},
		{"out of range", NewMessage(profile.MesgNumRecord).Set("heartRate", 300), ErrValueOutOfRange},
		{"negative unsigned", NewMessage(profile.MesgNumRecord).Set("heartRate", -1), ErrValueOutOfRange},
		{"unknown enum name", NewMessage(profile.MesgNumFileID).Set("manufacturer", "acme"), ErrValueOutOfRange},
		{"unsupported type", NewMessage(profile.MesgNumRecord).Set("heartRate", struct{}{}), ErrValueOutOfRange},
		{"string too long", NewMessage(profile.MesgNumFileID).Set("productName", string(make([]byte, 300))), ErrValueOutOfRange},
		{"unregistered developer field", Message{Num: profile.MesgNumRecord, DeveloperFields: map[int]any{3: 1}}, ErrUnregisteredDeveloperField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEncoder()
			require.NoError(t, err)
			err = e.WriteMesg(tt.msg)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestEncodeSkipsUnknownFieldNames(t *testing.T) {
	msg := NewMessage(profile.MesgNumRecord).Set("heartRate", 100).Set("notAField", 5).Set("cadence", nil)
	result, err := Decode(encode(t, nil, msg))
	require.NoError(t, err)
	r := result.Mesgs(profile.MesgNumRecord)[0]
	assert.Equal(t, map[string]any{"heartRate": int64(100)}, r.Fields)
}

func TestEncodeListenerErrorSurfacesOnClose(t *testing.T) {
	e, err := NewEncoder()
	require.NoError(t, err)
	l := e.MesgListener()
	l(profile.MesgNumRecord, NewMessage(profile.MesgNumRecord).Set("heartRate", 999))
	l(profile.MesgNumRecord, NewMessage(profile.MesgNumRecord).Set("heartRate", 100))

	_, err = e.Close()
	assert.True(t, errors.Is(err, ErrValueOutOfRange))
}

func TestNewEncoderRejectsHeaderSize(t *testing.T) {
	_, err := NewEncoder(WithHeaderSize(13))
	assert.True(t, errors.Is(err, ErrInvalidHeader))
}

func developerMesgs() (Message, Message) {
	id := NewMessage(profile.MesgNumDeveloperDataID).Set("developerDataIndex", 0)
	desc := NewMessage(profile.MesgNumFieldDescription).
		Set("developerDataIndex", 0).
		Set("fieldDefinitionNumber", 0).
		Set("fitBaseTypeId", "uint16").
		Set("fieldName", "power2").
		Set("scale", 10)
	return id, desc
}

func TestEncodeDeveloperFields(t *testing.T) {
	id, desc := developerMesgs()

	e, err := NewEncoder()
	require.NoError(t, err)
	require.NoError(t, e.AddDeveloperField(0, id, desc))
	require.NoError(t, e.WriteMesg(id))
	require.NoError(t, e.WriteMesg(desc))

	record := NewMessage(profile.MesgNumRecord).Set("heartRate", 120)
	record.DeveloperFields = map[int]any{0: 123.4}
	require.NoError(t, e.WriteMesg(record))
	out, err := e.Close()
	require.NoError(t, err)

	result, err := Decode(out)
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	r := result.Mesgs(profile.MesgNumRecord)[0]
	assert.InDelta(t, 123.4, r.DeveloperFields[0], 1e-9)
}

func TestEncodeWithFieldDescriptions(t *testing.T) {
	id, desc := developerMesgs()
	_, err := NewEncoder(WithFieldDescriptions(map[int]DeveloperField{
		0: {DeveloperDataIDMesg: id, FieldDescriptionMesg: desc},
	}))
	require.NoError(t, err)

	bad := NewMessage(profile.MesgNumFieldDescription).Set("developerDataIndex", 0)
	_, err = NewEncoder(WithFieldDescriptions(map[int]DeveloperField{
		0: {DeveloperDataIDMesg: id, FieldDescriptionMesg: bad},
	}))
	assert.True(t, errors.Is(err, ErrUnregisteredDeveloperField))
}

func TestElementBits(t *testing.T) {
	tests := []struct {
		name   string
		v      any
		bt     profile.BaseType
		layout profile.Layout
		want   uint64
	}{
		{"nil is invalid", nil, profile.BaseUint16, profile.Layout{Scale: 1}, 0xFFFF},
		{"bool", true, profile.BaseEnum, profile.Layout{Type: profile.TypeBool, Scale: 1}, 1},
		{"scaled", 2.5, profile.BaseUint16, profile.Layout{Scale: 1000}, 2500},
		{"offset", 100.0, profile.BaseUint16, profile.Layout{Scale: 5, Offset: 500}, 3000},
		{"negative signed", -2, profile.BaseSint16, profile.Layout{Scale: 1}, 0xFFFE},
		{"int64 fast path", int64(-5), profile.BaseSint8, profile.Layout{Scale: 1}, 0xFB},
		{"uint64", uint64(1) << 40, profile.BaseUint64, profile.Layout{Scale: 1}, 1 << 40},
		{"float32", float32(1.5), profile.BaseFloat32, profile.Layout{Scale: 1}, 0x3FC00000},
		{"datetime", created, profile.BaseUint32, profile.Layout{Type: profile.TypeDateTime, Scale: 1},
			uint64(ConvertDateToDateTime(created))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := elementBits(tt.v, tt.bt, tt.layout)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeWithoutExpandedComponents(t *testing.T) {
	decoded, err := Decode(encode(t, nil, fileIDMesg(),
		NewMessage(profile.MesgNumRecord).Set("speed", 3.5).Set("altitude", 100.0)))
	require.NoError(t, err)
	r := decoded.Mesgs(profile.MesgNumRecord)[0]
	require.Contains(t, r.Fields, "enhancedSpeed")

	tests := []struct {
		name string
		opts []EncoderOption
		want int
	}{
		{"keeps targets by default", nil, 4},
		{"drops targets", []EncoderOption{WithoutExpandedComponents()}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := encode(t, tt.opts, r)

			var defs []MessageDefinition
			_, err := NewDecoder(NewStream(out)).Read(WithMesgDefinitionListener(func(def MessageDefinition) {
				defs = append(defs, def)
			}))
			require.NoError(t, err)
			require.Len(t, defs, 1)
			assert.Len(t, defs[0].FieldDefinitions, tt.want)
		})
	}

	again, err := Decode(encode(t, []EncoderOption{WithoutExpandedComponents()}, r))
	require.NoError(t, err)
	rr := again.Mesgs(profile.MesgNumRecord)[0]
	assert.InDelta(t, 3.5, rr.Fields["speed"], 1e-9)
	assert.InDelta(t, 3.5, rr.Fields["enhancedSpeed"], 1e-9)
	assert.InDelta(t, 100.0, rr.Fields["altitude"], 1e-9)
	assert.InDelta(t, 100.0, rr.Fields["enhancedAltitude"], 1e-9)
}
