package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/fitkit/pkg/fit"
	"github.com/ssargent/fitkit/pkg/profile"
)

func writeActivity(t *testing.T, dir, name string, heartRates ...int) string {
	t.Helper()
	enc, err := fit.NewEncoder()
	require.NoError(t, err)
	require.NoError(t, enc.WriteMesg(fit.NewMessage(profile.MesgNumFileID).Set("type", "activity")))
	for _, hr := range heartRates {
		require.NoError(t, enc.WriteMesg(fit.NewMessage(profile.MesgNumRecord).Set("heartRate", hr)))
	}
	out, err := enc.Close()
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, out, 0600))
	return path
}

func TestDecodeFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeActivity(t, dir, "one.fit", 120),
		writeActivity(t, dir, "two.fit", 130, 131),
		filepath.Join(dir, "missing.fit"),
		writeActivity(t, dir, "three.fit", 140, 141, 142),
	}
	junk := filepath.Join(dir, "junk.fit")
	require.NoError(t, os.WriteFile(junk, []byte("hello"), 0600))
	paths = append(paths, junk)

	for _, concurrency := range []int{0, 1, 3, 8} {
		results, err := DecodeFiles(context.Background(), paths, nil, concurrency)
		require.NoError(t, err)
		require.Len(t, results, len(paths))

		for i, want := range []int{1, 2, -1, 3} {
			r := results[i]
			assert.Equal(t, paths[i], r.Path)
			if want < 0 {
				assert.Error(t, r.Err)
				continue
			}
			require.NoError(t, r.Err)
			assert.True(t, r.Integrity)
			assert.Len(t, r.Result.Mesgs(profile.MesgNumRecord), want)
		}
		assert.True(t, errors.Is(results[4].Err, fit.ErrInvalidHeader))
	}
}

func TestDecodeFilesOptions(t *testing.T) {
	path := writeActivity(t, t.TempDir(), "raw.fit", 150)

	results, err := DecodeFiles(context.Background(), []string{path},
		[]fit.Option{fit.WithConvertTypesToStrings(false)}, 2)
	require.NoError(t, err)
	require.NoError(t, results[0].Err)

	id := results[0].Result.Mesgs(profile.MesgNumFileID)[0]
	assert.Equal(t, int64(4), id.Fields["type"])
}

func TestDecodeFilesCancelled(t *testing.T) {
	path := writeActivity(t, t.TempDir(), "a.fit", 100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := DecodeFiles(ctx, []string{path, path}, nil, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, results, 2)
}

func TestDecodeFilesLeavesCallerContextUsable(t *testing.T) {
	path := writeActivity(t, t.TempDir(), "a.fit", 100)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		results, err := DecodeFiles(ctx, []string{path}, nil, 2)
		require.NoError(t, err)
		require.NoError(t, results[0].Err)
		assert.Len(t, results[0].Result.Mesgs(profile.MesgNumRecord), 1)
	}
	assert.NoError(t, ctx.Err())
}
