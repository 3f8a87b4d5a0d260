package fit

import (
	"encoding/binary"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/fitkit/pkg/profile"
)

// buildFIT wraps records in a 12 byte header and a whole-file trailer CRC
func buildFIT(records ...[]byte) []byte {
	var data []byte
	for _, r := range records {
		data = append(data, r...)
	}
	h := FileHeader{Size: HeaderSizeNoCRC, ProtocolVersion: ProtocolVersion20, ProfileVersion: 2132, DataSize: uint32(len(data))}
	out := append(h.Marshal(), data...)
	return binary.LittleEndian.AppendUint16(out, CalculateCRC(out, 0, len(out)))
}

func defRecord(local uint8, global profile.MesgNum, fields ...FieldDefinition) []byte {
	def := MessageDefinition{LocalNum: local, GlobalNum: global, FieldDefinitions: fields}
	return def.Marshal()
}

func dataRecord(local uint8, payload ...byte) []byte {
	return append([]byte{local}, payload...)
}

func fd(num, size uint8, bt profile.BaseType) FieldDefinition {
	return FieldDefinition{Num: num, Size: size, BaseType: bt}
}

func le16(v uint16) []byte { return binary.LittleEndian.AppendUint16(nil, v) }

func le32(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func fileIDFile() []byte {
	return buildFIT(
		defRecord(0, profile.MesgNumFileID,
			fd(0, 1, profile.BaseEnum),
			fd(1, 2, profile.BaseUint16),
			fd(2, 2, profile.BaseUint16),
			fd(4, 4, profile.BaseUint32),
		),
		dataRecord(0, concat([]byte{4}, le16(1), le16(1), le32(1000000000))...),
	)
}

func TestDecodeEmptyFile(t *testing.T) {
	d := NewDecoder(NewStream(emptyFIT))
	assert.True(t, d.IsFIT())
	assert.True(t, d.CheckIntegrity())

	result, err := d.Read()
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count())
	assert.Empty(t, result.Errors)
	assert.Equal(t, uint16(2132), result.ProfileVersion)
	assert.Equal(t, StateDone, d.State())
}

func TestDecodeFileID(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		result, err := Decode(fileIDFile())
		require.NoError(t, err)
		require.Empty(t, result.Errors)

		mesgs := result.Mesgs(profile.MesgNumFileID)
		require.Len(t, mesgs, 1)
		m := mesgs[0]
		assert.Equal(t, "fileId", m.Name)
		assert.Equal(t, "activity", m.Fields["type"])
		assert.Equal(t, "garmin", m.Fields["manufacturer"])
		assert.Equal(t, int64(1), m.Fields["product"], "main field is kept next to the sub-field")
		assert.Equal(t, "hrm1", m.Fields["garminProduct"])
		assert.Equal(t, ConvertDateTimeToDate(1000000000), m.Fields["timeCreated"])
		assert.Equal(t, map[string]int{"fileIdMesgs": 1}, result.Counts())
	})

	t.Run("raw", func(t *testing.T) {
		result, err := Decode(fileIDFile(),
			WithConvertTypesToStrings(false),
			WithConvertDateTimesToDates(false),
			WithExpandSubFields(false),
		)
		require.NoError(t, err)
		m := result.Mesgs(profile.MesgNumFileID)[0]
		assert.Equal(t, int64(4), m.Fields["type"])
		assert.Equal(t, int64(1), m.Fields["manufacturer"])
		assert.Equal(t, int64(1000000000), m.Fields["timeCreated"])
		assert.NotContains(t, m.Fields, "garminProduct")
	})
}

func TestDecodeScaleAndOffset(t *testing.T) {
	file := buildFIT(
		defRecord(0, profile.MesgNumRecord,
			fd(253, 4, profile.BaseUint32),
			fd(2, 2, profile.BaseUint16),
			fd(3, 1, profile.BaseUint8),
		),
		dataRecord(0, concat(le32(1000), le16(3000), []byte{150})...),
	)

	tests := []struct {
		name        string
		opts        []Option
		altitude    any
		enhancedAlt any
		hasEnhanced bool
	}{
		{"scaled", nil, 100.0, 100.0, true},
		{"raw", []Option{WithApplyScaleAndOffset(false)}, int64(3000), int64(3000), true},
		{"no components", []Option{WithExpandComponents(false)}, 100.0, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Decode(file, tt.opts...)
			require.NoError(t, err)
			records := result.Mesgs(profile.MesgNumRecord)
			require.Len(t, records, 1)
			r := records[0]

			assert.Equal(t, tt.altitude, r.Fields["altitude"])
			assert.Equal(t, int64(150), r.Fields["heartRate"])
			if tt.hasEnhanced {
				assert.Equal(t, tt.enhancedAlt, r.Fields["enhancedAltitude"])
			} else {
				assert.NotContains(t, r.Fields, "enhancedAltitude")
			}
		})
	}
}

func TestDecodeInvalidFieldIsDropped(t *testing.T) {
	file := buildFIT(
		defRecord(0, profile.MesgNumRecord, fd(3, 1, profile.BaseUint8), fd(4, 1, profile.BaseUint8)),
		dataRecord(0, 0xFF, 90),
	)
	result, err := Decode(file)
	require.NoError(t, err)
	r := result.Mesgs(profile.MesgNumRecord)[0]
	assert.NotContains(t, r.Fields, "heartRate")
	assert.Equal(t, int64(90), r.Fields["cadence"])
}

func TestDecodeCompressedSpeedDistance(t *testing.T) {
	// 12 bits speed (x100) then 12 bits distance (x16, accumulated)
	file := buildFIT(
		defRecord(0, profile.MesgNumRecord, fd(8, 3, profile.BaseByte)),
		dataRecord(0, 0xF4, 0x01, 0x0A), // speed 500, distance 160
		dataRecord(0, 0xF4, 0x01, 0x01), // speed 500, distance 16 after wrapping
	)

	result, err := Decode(file)
	require.NoError(t, err)
	records := result.Mesgs(profile.MesgNumRecord)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, []any{int64(0xF4), int64(0x01), int64(0x0A)}, first.Fields["compressedSpeedDistance"])
	assert.InDelta(t, 5.0, first.Fields["speed"], 1e-9)
	assert.InDelta(t, 5.0, first.Fields["enhancedSpeed"], 1e-9)
	assert.InDelta(t, 10.0, first.Fields["distance"], 1e-9)

	second := records[1]
	assert.InDelta(t, 257.0, second.Fields["distance"], 1e-9)
}

func TestDecodeAccumulatorBaseline(t *testing.T) {
	// totalCycles seeds the accumulator, cycles then adds the 8 bit delta
	file := buildFIT(
		defRecord(0, profile.MesgNumRecord, fd(19, 4, profile.BaseUint32)),
		dataRecord(0, le32(1000)...),
		defRecord(1, profile.MesgNumRecord, fd(18, 1, profile.BaseUint8)),
		dataRecord(1, byte((1000+20)&0xFF)),
	)

	result, err := Decode(file)
	require.NoError(t, err)
	records := result.Mesgs(profile.MesgNumRecord)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1000), records[0].Fields["totalCycles"])
	assert.Equal(t, int64(1020), records[1].Fields["totalCycles"])
}

func TestDecodeSubFieldFromEvent(t *testing.T) {
	file := buildFIT(
		defRecord(0, profile.MesgNumEvent,
			fd(0, 1, profile.BaseEnum),
			fd(1, 1, profile.BaseEnum),
			fd(3, 4, profile.BaseUint32),
		),
		dataRecord(0, concat([]byte{0, 0}, le32(0))...),
	)

	result, err := Decode(file)
	require.NoError(t, err)
	ev := result.Mesgs(profile.MesgNumEvent)[0]
	assert.Equal(t, "timer", ev.Fields["event"])
	assert.Equal(t, "start", ev.Fields["eventType"])
	assert.Equal(t, int64(0), ev.Fields["data"])
	assert.Equal(t, "manual", ev.Fields["timerTrigger"])
}

func TestDecodeUnknownData(t *testing.T) {
	file := buildFIT(
		defRecord(0, profile.MesgNum(0xFF42), fd(0, 1, profile.BaseUint8)),
		dataRecord(0, 7),
		defRecord(1, profile.MesgNumRecord, fd(3, 1, profile.BaseUint8), fd(200, 1, profile.BaseUint8)),
		dataRecord(1, 120, 9),
	)

	t.Run("dropped by default", func(t *testing.T) {
		result, err := Decode(file)
		require.NoError(t, err)
		assert.Empty(t, result.Errors)
		assert.NotContains(t, result.Messages, "65346")
		r := result.Mesgs(profile.MesgNumRecord)[0]
		assert.Equal(t, map[string]any{"heartRate": int64(120)}, r.Fields)
	})

	t.Run("included", func(t *testing.T) {
		result, err := Decode(file, WithIncludeUnknownData(true))
		require.NoError(t, err)
		unknown := result.Messages["65346"]
		require.Len(t, unknown, 1)
		assert.Equal(t, "65346", unknown[0].Name)
		assert.Equal(t, int64(7), unknown[0].Fields["0"])

		r := result.Mesgs(profile.MesgNumRecord)[0]
		assert.Equal(t, int64(9), r.Fields["200"])
	})
}

func TestDecodeMissingDefinition(t *testing.T) {
	t.Run("abandons the data region", func(t *testing.T) {
		result, err := Decode(buildFIT([]byte{0x01, 0x02, 0x03}))
		require.NoError(t, err)
		require.Len(t, result.Errors, 1)

		var missing *MissingDefinitionError
		require.True(t, errors.As(result.Errors[0], &missing))
		assert.Equal(t, uint8(1), missing.LocalNum)
		assert.Equal(t, HeaderSizeNoCRC, missing.Offset)
		assert.True(t, errors.Is(result.Errors[0], ErrMissingDefinition))
		assert.False(t, IsFatal(result.Errors[0]))
		assert.Equal(t, 0, result.Count())
	})

	t.Run("resumes at the next definition", func(t *testing.T) {
		file := buildFIT(
			[]byte{0x02, 0xAA},
			defRecord(0, profile.MesgNumRecord, fd(3, 1, profile.BaseUint8)),
			dataRecord(0, 100),
		)
		result, err := Decode(file)
		require.NoError(t, err)
		require.Len(t, result.Errors, 1)
		assert.True(t, errors.Is(result.Errors[0], ErrMissingDefinition))

		records := result.Mesgs(profile.MesgNumRecord)
		require.Len(t, records, 1)
		assert.Equal(t, int64(100), records[0].Fields["heartRate"])
	})

	t.Run("resumes at data records of defined locals", func(t *testing.T) {
		file := buildFIT(
			defRecord(0, profile.MesgNumRecord, fd(3, 1, profile.BaseUint8)),
			dataRecord(0, 100),
			[]byte{0x02, 0xAA},
			dataRecord(0, 101),
			dataRecord(0, 102),
		)
		result, err := Decode(file)
		require.NoError(t, err)
		require.Len(t, result.Errors, 1)
		assert.True(t, errors.Is(result.Errors[0], ErrMissingDefinition))

		records := result.Mesgs(profile.MesgNumRecord)
		require.Len(t, records, 3)
		assert.Equal(t, int64(100), records[0].Fields["heartRate"])
		assert.Equal(t, int64(101), records[1].Fields["heartRate"])
		assert.Equal(t, int64(102), records[2].Fields["heartRate"])
	})

	t.Run("rejects data headers that do not chain", func(t *testing.T) {
		// 0x00 looks like a local 0 header but its record would overrun the region
		file := buildFIT(
			defRecord(0, profile.MesgNumRecord, fd(253, 4, profile.BaseUint32)),
			[]byte{0x03, 0x00, 0x00},
		)
		result, err := Decode(file)
		require.NoError(t, err)
		require.Len(t, result.Errors, 1)
		assert.Empty(t, result.Mesgs(profile.MesgNumRecord))
	})
}

func TestDecodeCompressedTimestamp(t *testing.T) {
	file := buildFIT(
		defRecord(0, profile.MesgNumRecord, fd(253, 4, profile.BaseUint32), fd(3, 1, profile.BaseUint8)),
		dataRecord(0, concat(le32(1000), []byte{100})...),
		defRecord(1, profile.MesgNumRecord, fd(3, 1, profile.BaseUint8)),
		[]byte{0x80 | 1<<5 | 10, 101},
		[]byte{0x80 | 1<<5 | 3, 102},
	)

	result, err := Decode(file, WithConvertDateTimesToDates(false))
	require.NoError(t, err)
	records := result.Mesgs(profile.MesgNumRecord)
	require.Len(t, records, 3)

	assert.Equal(t, int64(1000), records[0].Fields["timestamp"])
	assert.Equal(t, int64(1002), records[1].Fields["timestamp"])
	assert.Equal(t, int64(101), records[1].Fields["heartRate"])
	assert.Equal(t, int64(1027), records[2].Fields["timestamp"], "offset rolls over the 5 bit window")
}

func developerFile(recordDevIndex uint8) []byte {
	recordDef := MessageDefinition{
		LocalNum:         2,
		GlobalNum:        profile.MesgNumRecord,
		FieldDefinitions: []FieldDefinition{fd(3, 1, profile.BaseUint8)},
		DeveloperFieldDefinitions: []DeveloperFieldDefinition{
			{Num: 0, Size: 2, DeveloperDataIndex: recordDevIndex},
		},
	}
	return buildFIT(
		defRecord(0, profile.MesgNumDeveloperDataID, fd(3, 1, profile.BaseUint8)),
		dataRecord(0, 0),
		defRecord(1, profile.MesgNumFieldDescription,
			fd(0, 1, profile.BaseUint8),
			fd(1, 1, profile.BaseUint8),
			fd(2, 1, profile.BaseUint8),
			fd(3, 8, profile.BaseString),
			fd(6, 1, profile.BaseUint8),
			fd(7, 1, profile.BaseSint8),
		),
		dataRecord(1, concat([]byte{0, 0, byte(profile.BaseUint16)}, []byte("power2\x00\x00"), []byte{10, 0})...),
		recordDef.Marshal(),
		dataRecord(2, concat([]byte{120}, le16(1234))...),
	)
}

func TestDecodeDeveloperFields(t *testing.T) {
	type description struct {
		key      int
		devIndex any
		name     any
	}
	var seen []description

	result, err := Decode(developerFile(0), WithFieldDescriptionListener(func(key int, id, desc Message) {
		seen = append(seen, description{key: key, devIndex: id.Fields["developerDataIndex"], name: desc.Fields["fieldName"]})
	}))
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	require.Len(t, seen, 1)
	assert.Equal(t, description{key: 0, devIndex: int64(0), name: "power2"}, seen[0])

	desc := result.Mesgs(profile.MesgNumFieldDescription)[0]
	assert.Equal(t, "uint16", desc.Fields["fitBaseTypeId"])

	r := result.Mesgs(profile.MesgNumRecord)[0]
	assert.Equal(t, int64(120), r.Fields["heartRate"])
	require.Contains(t, r.DeveloperFields, 0)
	assert.InDelta(t, 123.4, r.DeveloperFields[0], 1e-9)

	raw, err := Decode(developerFile(0), WithApplyScaleAndOffset(false))
	require.NoError(t, err)
	assert.Equal(t, int64(1234), raw.Mesgs(profile.MesgNumRecord)[0].DeveloperFields[0])
}

func TestDecodeUnresolvedDeveloperField(t *testing.T) {
	result, err := Decode(developerFile(1))
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)

	var unresolved *UnresolvedDeveloperFieldError
	require.True(t, errors.As(result.Errors[0], &unresolved))
	assert.Equal(t, uint8(1), unresolved.DeveloperDataIndex)
	assert.Equal(t, uint8(0), unresolved.FieldNum)

	r := result.Mesgs(profile.MesgNumRecord)[0]
	assert.Empty(t, r.DeveloperFields)
	assert.Equal(t, int64(120), r.Fields["heartRate"])

	result, err = Decode(developerFile(1), WithIgnoreUnresolvedDeveloperFields(true))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
}

func TestDecodeChainedFiles(t *testing.T) {
	second := buildFIT(
		defRecord(0, profile.MesgNumRecord, fd(3, 1, profile.BaseUint8)),
		dataRecord(0, 77),
	)
	binary.LittleEndian.PutUint16(second[2:], 2200)
	// header bytes changed, so recompute the trailer
	binary.LittleEndian.PutUint16(second[len(second)-2:], CalculateCRC(second, 0, len(second)-2))

	chained := concat(fileIDFile(), second)
	d := NewDecoder(NewStream(chained))
	require.NoError(t, d.VerifyIntegrity())

	result, err := d.Read()
	require.NoError(t, err)
	assert.Len(t, result.Mesgs(profile.MesgNumFileID), 1)
	require.Len(t, result.Mesgs(profile.MesgNumRecord), 1)
	assert.Equal(t, uint16(2132), result.ProfileVersion, "profile version comes from the first file")
}

func TestDecodeChainedFilesResetDefinitions(t *testing.T) {
	// the second file reuses local 0 without defining it
	second := buildFIT(dataRecord(0, 1))
	result, err := Decode(concat(fileIDFile(), second))
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.True(t, errors.Is(result.Errors[0], ErrMissingDefinition))
}

func TestDecodeTruncated(t *testing.T) {
	file := buildFIT(
		defRecord(0, profile.MesgNumRecord, fd(3, 1, profile.BaseUint8)),
		dataRecord(0, 100),
		defRecord(1, profile.MesgNumRecord, fd(253, 4, profile.BaseUint32)),
		dataRecord(1, le32(1000)...),
	)
	cut := file[:len(file)-4]

	d := NewDecoder(NewStream(cut))
	result, err := d.Read()
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Equal(t, StateFailed, d.State())

	require.NotNil(t, result)
	assert.Len(t, result.Mesgs(profile.MesgNumRecord), 1, "messages before the failure are kept")
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, err, result.Errors[len(result.Errors)-1])
}

func TestDecodeBadHeader(t *testing.T) {
	result, err := Decode([]byte("not a fit file at all"))
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	require.NotNil(t, result)
	assert.Equal(t, 0, result.Count())
}

func TestDecodeListenerPanic(t *testing.T) {
	calls := 0
	result, err := Decode(fileIDFile(), WithMesgListener(func(num profile.MesgNum, msg Message) {
		calls++
		panic("boom")
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.Len(t, result.Errors, 1)
	assert.True(t, errors.Is(result.Errors[0], ErrListenerPanic))
	assert.Len(t, result.Mesgs(profile.MesgNumFileID), 1)
}

func TestDecodeDataOnly(t *testing.T) {
	var nums []profile.MesgNum
	var defs []MessageDefinition
	result, err := Decode(fileIDFile(),
		WithDataOnly(true),
		WithMesgListener(func(num profile.MesgNum, msg Message) { nums = append(nums, num) }),
		WithMesgDefinitionListener(func(def MessageDefinition) { defs = append(defs, def) }),
	)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count())
	assert.Equal(t, []profile.MesgNum{profile.MesgNumFileID}, nums)
	require.Len(t, defs, 1)
	assert.Equal(t, profile.MesgNumFileID, defs[0].GlobalNum)
	assert.Len(t, defs[0].FieldDefinitions, 4)
}

func TestDecodeSkipHeader(t *testing.T) {
	file := fileIDFile()
	s := NewStream(file)
	require.NoError(t, s.SetPosition(HeaderSizeNoCRC))

	result, err := NewDecoder(s).Read(WithSkipHeader(true))
	require.NoError(t, err)
	assert.Len(t, result.Mesgs(profile.MesgNumFileID), 1)
	assert.Equal(t, uint16(0), result.ProfileVersion)
}

func TestDecodeChecksumMismatch(t *testing.T) {
	file := fileIDFile()
	file[len(file)-1] ^= 0xFF

	d := NewDecoder(NewStream(file))
	result, err := d.Read()
	require.NoError(t, err, "a bad trailer is not fatal when reading")
	assert.Len(t, result.Mesgs(profile.MesgNumFileID), 1)

	err = d.VerifyIntegrity()
	var mismatch *ChecksumMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.True(t, errors.Is(err, ErrChecksumMismatch))
	assert.False(t, d.CheckIntegrity())
}

func TestVerifyIntegrity(t *testing.T) {
	dataCRC := fileIDFile()
	size := len(dataCRC)
	binary.LittleEndian.PutUint16(dataCRC[size-2:], CalculateCRC(dataCRC, HeaderSizeNoCRC, size-HeaderSizeNoCRC-2))

	withHeaderCRC := concat(FileHeader{Size: 14, ProtocolVersion: ProtocolVersion20, DataSize: 0}.Marshal(), []byte{0, 0})
	badHeaderCRC := append([]byte(nil), withHeaderCRC...)
	badHeaderCRC[12] ^= 0x01
	zeroHeaderCRC := append([]byte(nil), withHeaderCRC...)
	zeroHeaderCRC[12], zeroHeaderCRC[13] = 0, 0

	tests := []struct {
		name string
		buf  []byte
		want error
	}{
		{"whole file crc", fileIDFile(), nil},
		{"data region crc", dataCRC, nil},
		{"header crc", withHeaderCRC, nil},
		{"zero header crc is not checked", zeroHeaderCRC, nil},
		{"bad header crc", badHeaderCRC, ErrChecksumMismatch},
		{"empty", nil, ErrOutOfRange},
		{"truncated", fileIDFile()[:20], ErrOutOfRange},
		{"trailing garbage", concat(fileIDFile(), []byte{1, 2, 3}), ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDecoder(NewStream(tt.buf)).VerifyIntegrity()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestDecodeMergeHeartRatesRequiresScaling(t *testing.T) {
	file := buildFIT(
		defRecord(0, profile.MesgNumHr, fd(6, 1, profile.BaseUint8)),
		dataRecord(0, 80),
	)

	result, err := Decode(file, WithApplyScaleAndOffset(false))
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.True(t, errors.Is(result.Errors[0], ErrMergeHeartRates))

	result, err = Decode(file, WithMergeHeartRates(false), WithApplyScaleAndOffset(false))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
}

func TestDecoderStateString(t *testing.T) {
	assert.Equal(t, "expectHeader", StateExpectHeader.String())
	assert.Equal(t, "done", StateDone.String())
	assert.Equal(t, "state(42)", DecoderState(42).String())
}
