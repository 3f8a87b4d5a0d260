package fit

import (
	"math"
	"time"
)

type hrSample struct {
	at  float64 // unix seconds
	bpm float64
}

// fieldSeconds reads a date-time field as unix seconds, whether or not it was
// converted to a time.Time
func fieldSeconds(v any) (float64, bool) {
	switch t := first(v).(type) {
	case time.Time:
		return float64(t.Unix()), true
	case nil:
		return 0, false
	default:
		f, ok := toFloat(t)
		if !ok {
			return 0, false
		}
		return f + float64(fitEpochSeconds), true
	}
}

func first(v any) any {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		return list[0]
	}
	return v
}

func floats(v any) []float64 {
	list, ok := v.([]any)
	if !ok {
		list = []any{v}
	}
	out := make([]float64, 0, len(list))
	for _, item := range list {
		if f, ok := toFloat(item); ok {
			out = append(out, f)
		}
	}
	return out
}

// expandHeartRates turns hr messages into timestamped samples. A message with a
// timestamp anchors the event timestamps that follow it.
func expandHeartRates(hrMesgs []Message) []hrSample {
	var (
		out         []hrSample
		anchorTime  float64
		anchorEvent float64
		anchored    bool
	)
	for _, m := range hrMesgs {
		events := floats(m.Fields["eventTimestamp"])
		if ts, ok := fieldSeconds(m.Fields["timestamp"]); ok && len(events) > 0 {
			frac, _ := toFloat(first(m.Fields["fractionalTimestamp"]))
			anchorTime = ts + frac
			anchorEvent = events[0]
			anchored = true
		}
		if !anchored {
			continue
		}
		bpms := floats(m.Fields["filteredBpm"])
		n := len(events)
		if len(bpms) < n {
			n = len(bpms)
		}
		for i := 0; i < n; i++ {
			out = append(out, hrSample{at: anchorTime + (events[i] - anchorEvent), bpm: bpms[i]})
		}
	}
	return out
}

// mergeHeartRates sets each record's heartRate to the rounded mean of the samples in
// (previous record time, record time]. The first record's window is one second wide.
func mergeHeartRates(hrMesgs, records []Message) {
	samples := expandHeartRates(hrMesgs)
	if len(samples) == 0 {
		return
	}
	idx := 0
	var start float64
	started := false
	for _, rec := range records {
		end, ok := fieldSeconds(rec.Fields["timestamp"])
		if !ok {
			continue
		}
		if !started {
			start = end - 1
			started = true
		}
		sum, n := 0.0, 0
		for idx < len(samples) && samples[idx].at <= end {
			if samples[idx].at > start {
				sum += samples[idx].bpm
				n++
			}
			idx++
		}
		if n > 0 {
			rec.Fields["heartRate"] = int64(math.Round(sum / float64(n)))
		}
		start = end
	}
}
