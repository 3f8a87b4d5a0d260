package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ssargent/fitkit/pkg/fit"
	"github.com/ssargent/fitkit/pkg/profile"
)

var created = time.Date(2024, time.May, 1, 6, 0, 0, 0, time.UTC)

// writeActivity encodes a small activity file into dir
func writeActivity(t *testing.T, dir, name string, heartRates ...int) string {
	t.Helper()
	enc, err := fit.NewEncoder()
	require.NoError(t, err)
	require.NoError(t, enc.WriteMesg(fit.NewMessage(profile.MesgNumFileID).
		Set("type", "activity").
		Set("manufacturer", "development").
		Set("timeCreated", created)))
	for _, hr := range heartRates {
		require.NoError(t, enc.WriteMesg(fit.NewMessage(profile.MesgNumRecord).Set("heartRate", hr)))
	}
	out, err := enc.Close()
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, out, 0600))
	return path
}
