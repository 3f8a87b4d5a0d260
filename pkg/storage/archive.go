// Package storage keeps FIT activities in a pebble database. Raw files are stored
// compressed next to a JSON summary; both are keyed by a KSUID so listing returns
// activities in archive order.
package storage

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	json "github.com/goccy/go-json"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/fitkit/pkg/fit"
)

var ErrNotFound = errors.New("storage: activity not found")

const (
	rawPrefix     = "raw/"
	summaryPrefix = "sum/"
)

func rawKey(id ksuid.KSUID) []byte     { return append([]byte(rawPrefix), id.Bytes()...) }
func summaryKey(id ksuid.KSUID) []byte { return append([]byte(summaryPrefix), id.Bytes()...) }

// prefixUpperBound returns the smallest key greater than every key with prefix
func prefixUpperBound(prefix string) []byte {
	end := []byte(prefix)
	end[len(end)-1]++
	return end
}

// Archive is safe for concurrent use.
type Archive struct {
	db          *pebble.DB
	compression Compression
	readOpts    fit.ReadOptions
	logger      *slog.Logger
	now         func() time.Time
}

type ArchiveOption func(*Archive)

// WithCompression sets the codec for newly stored files
func WithCompression(c Compression) ArchiveOption {
	return func(a *Archive) { a.compression = c }
}

// WithReadOptions sets the decode options used to build summaries
func WithReadOptions(o fit.ReadOptions) ArchiveOption {
	return func(a *Archive) { a.readOpts = o }
}

func WithLogger(l *slog.Logger) ArchiveOption {
	return func(a *Archive) { a.logger = l }
}

// Open opens (or creates) the archive at path
func Open(path string, opts ...ArchiveOption) (*Archive, error) {
	a := &Archive{
		compression: CompressionZSTD,
		readOpts:    fit.DefaultReadOptions(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open archive %s", path)
	}
	a.db = db
	return a, nil
}

// Import summarizes raw and stores it under a new id
func (a *Archive) Import(ctx context.Context, name string, raw []byte) (Summary, error) {
	summary, err := Summarize(raw, a.readOpts)
	if err != nil {
		return Summary{}, err
	}
	summary.Name = name
	id, err := a.Put(ctx, raw, summary)
	if err != nil {
		return Summary{}, err
	}
	return a.Get(ctx, id)
}

// Put stores raw with summary and returns the new id. The summary's id, sizes,
// compression and archive time are filled in.
func (a *Archive) Put(ctx context.Context, raw []byte, summary Summary) (ksuid.KSUID, error) {
	if err := ctx.Err(); err != nil {
		return ksuid.Nil, err
	}

	blob, err := compressBlob(raw, a.compression)
	if err != nil {
		return ksuid.Nil, err
	}

	id := ksuid.New()
	summary.ID = id.String()
	summary.Size = len(raw)
	summary.StoredSize = len(blob)
	summary.Compression = Compression(blob[0]).String()
	summary.ArchivedAt = a.now().UTC()

	meta, err := json.Marshal(summary)
	if err != nil {
		return ksuid.Nil, errors.Wrap(err, "marshal summary")
	}

	batch := a.db.NewBatch()
	defer batch.Close()
	if err := batch.Set(rawKey(id), blob, nil); err != nil {
		return ksuid.Nil, errors.Wrap(err, "stage raw")
	}
	if err := batch.Set(summaryKey(id), meta, nil); err != nil {
		return ksuid.Nil, errors.Wrap(err, "stage summary")
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return ksuid.Nil, errors.Wrap(err, "commit activity")
	}

	a.logger.Debug("archived activity", "id", summary.ID, "size", summary.Size,
		"stored", summary.StoredSize, "compression", summary.Compression)
	return id, nil
}

func (a *Archive) get(key []byte) ([]byte, error) {
	data, closer, err := a.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "read archive")
	}
	defer closer.Close()
	return append([]byte(nil), data...), nil
}

// Get returns the summary of id
func (a *Archive) Get(ctx context.Context, id ksuid.KSUID) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	meta, err := a.get(summaryKey(id))
	if err != nil {
		return Summary{}, errors.Wrapf(err, "activity %s", id)
	}
	var s Summary
	if err := json.Unmarshal(meta, &s); err != nil {
		return Summary{}, errors.Wrapf(err, "decode summary %s", id)
	}
	return s, nil
}

// GetRaw returns the original FIT bytes of id
func (a *Archive) GetRaw(ctx context.Context, id ksuid.KSUID) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	blob, err := a.get(rawKey(id))
	if err != nil {
		return nil, errors.Wrapf(err, "activity %s", id)
	}
	return decompressBlob(blob)
}

// Delete removes id. Deleting an unknown id returns ErrNotFound.
func (a *Archive) Delete(ctx context.Context, id ksuid.KSUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := a.get(summaryKey(id)); err != nil {
		return errors.Wrapf(err, "activity %s", id)
	}

	batch := a.db.NewBatch()
	defer batch.Close()
	if err := batch.Delete(rawKey(id), nil); err != nil {
		return errors.Wrap(err, "stage delete")
	}
	if err := batch.Delete(summaryKey(id), nil); err != nil {
		return errors.Wrap(err, "stage delete")
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return errors.Wrap(err, "commit delete")
	}
	a.logger.Debug("deleted activity", "id", id.String())
	return nil
}

// List returns every summary, oldest first
func (a *Archive) List(ctx context.Context) ([]Summary, error) {
	iter, err := a.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(summaryPrefix),
		UpperBound: prefixUpperBound(summaryPrefix),
	})
	if err != nil {
		return nil, errors.Wrap(err, "list archive")
	}
	defer iter.Close()

	out := []Summary{}
	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var s Summary
		if err := json.Unmarshal(iter.Value(), &s); err != nil {
			return nil, errors.Wrapf(err, "decode summary at %q", iter.Key())
		}
		out = append(out, s)
	}
	return out, errors.Wrap(iter.Error(), "list archive")
}

func (a *Archive) Close() error {
	return a.db.Close()
}
