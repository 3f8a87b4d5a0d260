// Package fit reads and writes files in the Flexible and Interoperable Data
// Transfer (FIT) binary format used by fitness devices.
//
// # File Format
//
// A FIT file is a header, a run of records and a trailing checksum:
//
//	[HeaderSize(1)][Protocol(1)][Profile(2)][DataSize(4)][".FIT"(4)][HeaderCRC(2)?]
//	[Record]...[Record][CRC(2)]
//
// Fields:
//   - HeaderSize: 12, or 14 when the header carries its own CRC
//   - Protocol: protocol version, 0x10 or 0x20
//   - Profile: profile version the file was written with (little-endian)
//   - DataSize: byte length of the records (little-endian)
//   - HeaderCRC: CRC of the first 12 header bytes, zero when not computed
//   - CRC: CRC of the records, or of header and records, depending on the writer
//
// Several files may be concatenated; each one is decoded with a fresh set of
// definitions.
//
// # Records
//
// Every record starts with a one byte header. Definition records bind a local
// message number (0-15) to a global message number and a field layout. Data
// records carry the field values for a previously defined local number. Compressed
// timestamp headers pack a 5 bit time offset and a 2 bit local number into the
// header byte.
//
// Field values are interpreted with the profile in package profile: sub-fields,
// components, accumulated counters, scale and offset, enum names and date-times.
// ReadOptions toggles each of these steps.
//
// # Decoding
//
//	result, err := fit.Decode(buf, fit.WithExpandComponents(true))
//	if err != nil {
//	    return err // structural failure; result holds what was read before it
//	}
//	for _, rec := range result.Mesgs(profile.MesgNumRecord) {
//	    fmt.Println(rec.Fields["timestamp"], rec.Fields["heartRate"])
//	}
//
// Per-record problems such as a data record without a definition or a developer
// field without a description do not stop decoding. They are collected in
// ReadResult.Errors.
//
// # Encoding
//
//	enc, _ := fit.NewEncoder()
//	_ = enc.WriteMesg(fit.NewMessage(profile.MesgNumFileID).Set("type", "activity"))
//	buf, err := enc.Close()
//
// The encoder converts real-world values back to stored integers, emits a
// definition only when a message layout changes, and patches the header and the
// trailer CRC on Close.
//
// # Thread Safety
//
// Stream, Decoder and Encoder hold mutable position and state and must not be
// shared between goroutines. The profile tables are read-only and may be used
// concurrently.
package fit
