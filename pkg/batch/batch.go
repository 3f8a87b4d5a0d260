// Package batch decodes many FIT files concurrently.
package batch

import (
	"context"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ssargent/fitkit/pkg/fit"
)

// FileResult is the outcome for one path. Err holds a read or structural decode
// failure; Result may still carry the records decoded before it.
type FileResult struct {
	Path      string
	Result    *fit.ReadResult
	Integrity bool
	Duration  time.Duration
	Err       error
}

// DecodeFiles decodes paths with at most concurrency files in flight. Results are
// returned in the order of paths. Per-file failures are reported in FileResult.Err;
// the returned error is only set when ctx ends before every file is done.
func DecodeFiles(ctx context.Context, paths []string, opts []fit.Option, concurrency int) ([]FileResult, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	results := make([]FileResult, len(paths))

	// gctx is cancelled once Wait returns; only the caller's ctx decides the result
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		i, path := i, path
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = decodeFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func decodeFile(path string, opts []fit.Option) FileResult {
	start := time.Now()
	res := FileResult{Path: path}

	f, err := os.Open(path)
	if err != nil {
		res.Err = errors.Wrapf(err, "open %s", path)
		return res
	}
	defer f.Close()

	stream, err := fit.NewStreamFromReader(f)
	if err != nil {
		res.Err = errors.Wrapf(err, "read %s", path)
		return res
	}

	dec := fit.NewDecoder(stream)
	if !dec.IsFIT() {
		res.Err = errors.Wrapf(fit.ErrInvalidHeader, "%s is not a FIT file", path)
		return res
	}
	res.Integrity = dec.CheckIntegrity()
	res.Result, res.Err = dec.Read(opts...)
	res.Duration = time.Since(start)
	return res
}
