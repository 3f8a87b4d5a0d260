package storage

import (
	"encoding/binary"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how raw FIT bytes are stored. The value is written as the
// first byte of every stored blob.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionLZ4  Compression = 1
	CompressionZSTD Compression = 2
)

// blob layout: [codec uint8][uncompressed size uint32 LE][payload]
const blobHeaderSize = 5

// maxBlobSize bounds the size a stored blob may claim before anything is allocated
const maxBlobSize = 256 << 20

var ErrCorruptBlob = errors.New("storage: corrupt blob")

// ParseCompression maps a configured name onto a Compression
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	}
	return CompressionNone, errors.Newf("storage: unknown compression %q", name)
}

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	}
	return "unknown"
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxBlobSize))
}

// compressBlob encodes data with c. Data that does not shrink is stored as is.
func compressBlob(data []byte, c Compression) ([]byte, error) {
	if len(data) > maxBlobSize {
		return nil, errors.Newf("storage: %d bytes exceeds the %d byte blob limit", len(data), maxBlobSize)
	}
	var payload []byte
	switch c {
	case CompressionNone:
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, errors.Wrap(err, "lz4 compress")
		}
		payload = buf[:n]
	case CompressionZSTD:
		enc, err := getZstdEncoder()
		if err != nil {
			return nil, errors.Wrap(err, "zstd encoder")
		}
		payload = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, errors.Newf("storage: unknown compression %d", c)
	}

	if len(payload) == 0 || len(payload) >= len(data) {
		c, payload = CompressionNone, data
	}

	out := make([]byte, blobHeaderSize+len(payload))
	out[0] = byte(c)
	binary.LittleEndian.PutUint32(out[1:], uint32(len(data)))
	copy(out[blobHeaderSize:], payload)
	return out, nil
}

func decompressBlob(blob []byte) ([]byte, error) {
	if len(blob) < blobHeaderSize {
		return nil, errors.Wrapf(ErrCorruptBlob, "blob of %d bytes", len(blob))
	}
	size := binary.LittleEndian.Uint32(blob[1:])
	if size > maxBlobSize {
		return nil, errors.Wrapf(ErrCorruptBlob, "claimed size %d exceeds limit", size)
	}
	payload := blob[blobHeaderSize:]

	switch Compression(blob[0]) {
	case CompressionNone:
		if uint32(len(payload)) != size {
			return nil, errors.Wrapf(ErrCorruptBlob, "size %d, have %d", size, len(payload))
		}
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil
	case CompressionLZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "lz4 decompress"), ErrCorruptBlob)
		}
		if uint32(n) != size {
			return nil, errors.Wrapf(ErrCorruptBlob, "size %d, decoded %d", size, n)
		}
		return out, nil
	case CompressionZSTD:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, errors.Wrap(err, "zstd decoder")
		}
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(payload, make([]byte, 0, size))
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "zstd decompress"), ErrCorruptBlob)
		}
		if uint32(len(out)) != size {
			return nil, errors.Wrapf(ErrCorruptBlob, "size %d, decoded %d", size, len(out))
		}
		return out, nil
	}
	return nil, errors.Wrapf(ErrCorruptBlob, "unknown codec %d", blob[0])
}
