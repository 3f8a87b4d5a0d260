package fit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/fitkit/pkg/profile"
)

func TestMergeHeartRates(t *testing.T) {
	t0 := time.Date(2022, time.March, 1, 9, 0, 0, 0, time.UTC)
	hr := []Message{{
		Num: profile.MesgNumHr,
		Fields: map[string]any{
			"timestamp":           t0,
			"fractionalTimestamp": 0.5,
			"eventTimestamp":      []any{100.0, 101.0, 102.0},
			"filteredBpm":         []any{int64(60), int64(62), int64(64)},
		},
	}}
	records := []Message{
		{Num: profile.MesgNumRecord, Fields: map[string]any{"timestamp": t0.Add(time.Second)}},
		{Num: profile.MesgNumRecord, Fields: map[string]any{"timestamp": t0.Add(3 * time.Second)}},
		{Num: profile.MesgNumRecord, Fields: map[string]any{"timestamp": t0.Add(10 * time.Second), "heartRate": int64(1)}},
	}

	mergeHeartRates(hr, records)

	assert.Equal(t, int64(60), records[0].Fields["heartRate"])
	assert.Equal(t, int64(63), records[1].Fields["heartRate"])
	assert.Equal(t, int64(1), records[2].Fields["heartRate"], "no samples in window leaves the record alone")
}

func TestExpandHeartRatesNeedsAnchor(t *testing.T) {
	unanchored := []Message{{Num: profile.MesgNumHr, Fields: map[string]any{
		"eventTimestamp": []any{1.0},
		"filteredBpm":    []any{int64(70)},
	}}}
	assert.Empty(t, expandHeartRates(unanchored))

	anchored := append([]Message{{Num: profile.MesgNumHr, Fields: map[string]any{
		"timestamp":      int64(1000),
		"eventTimestamp": []any{0.5},
		"filteredBpm":    []any{int64(80)},
	}}}, unanchored...)

	samples := expandHeartRates(anchored)
	require.Len(t, samples, 2)
	base := float64(1000 + fitEpochSeconds)
	assert.Equal(t, hrSample{at: base, bpm: 80}, samples[0])
	assert.Equal(t, hrSample{at: base + 0.5, bpm: 70}, samples[1])
}

func TestDecodeMergesHeartRates(t *testing.T) {
	t0 := time.Date(2022, time.March, 1, 9, 0, 0, 0, time.UTC)
	hr := NewMessage(profile.MesgNumHr).
		Set("timestamp", t0).
		Set("eventTimestamp", []float64{100, 101, 102}).
		Set("filteredBpm", []int{60, 62, 64})
	rec1 := NewMessage(profile.MesgNumRecord).Set("timestamp", t0.Add(time.Second))
	rec2 := NewMessage(profile.MesgNumRecord).Set("timestamp", t0.Add(2*time.Second))

	out := encode(t, nil, hr, rec1, rec2)

	result, err := Decode(out)
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	records := result.Mesgs(profile.MesgNumRecord)
	require.Len(t, records, 2)
	assert.Equal(t, int64(62), records[0].Fields["heartRate"])
	assert.Equal(t, int64(64), records[1].Fields["heartRate"])

	unmerged, err := Decode(out, WithMergeHeartRates(false))
	require.NoError(t, err)
	assert.NotContains(t, unmerged.Mesgs(profile.MesgNumRecord)[0].Fields, "heartRate")
}
