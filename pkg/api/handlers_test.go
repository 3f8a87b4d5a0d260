package api

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/fitkit/pkg/fit"
	"github.com/ssargent/fitkit/pkg/profile"
	"github.com/ssargent/fitkit/pkg/storage"
)

const testAPIKey = "test-key"

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// setupTestServer creates a router over a temporary archive
func setupTestServer(t *testing.T, maxUpload int64) (http.Handler, *Server) {
	t.Helper()
	archive, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { archive.Close() })

	registry := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := NewServer(archive, ServerConfig{
		APIKey:        testAPIKey,
		MaxUploadSize: maxUpload,
		ReadOptions:   fit.DefaultReadOptions(),
	}, NewMetrics(registry), logger)

	return NewRouter(server, registry), server
}

func do(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func activityFile(t *testing.T, heartRates ...int) []byte {
	t.Helper()
	enc, err := fit.NewEncoder()
	require.NoError(t, err)
	require.NoError(t, enc.WriteMesg(fit.NewMessage(profile.MesgNumFileID).
		Set("type", "activity").
		Set("manufacturer", "development")))
	for _, hr := range heartRates {
		require.NoError(t, enc.WriteMesg(fit.NewMessage(profile.MesgNumRecord).Set("heartRate", hr)))
	}
	out, err := enc.Close()
	require.NoError(t, err)
	return out
}

func TestServer_handleHealth(t *testing.T) {
	h, s := setupTestServer(t, 0)

	w := do(t, h, "GET", "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeBody[map[string]string](t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "healthy", env.Data["status"])
	assert.Equal(t, profile.CurrentVersion.String(), env.Data["profile"])
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.healthChecksTotal.WithLabelValues(statusSuccess)))
}

func TestServer_Auth(t *testing.T) {
	h, s := setupTestServer(t, 0)

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/health", nil)
	req.Header.Set("X-API-Key", "wrong")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.authRequestsTotal.WithLabelValues(statusError)))

	// metrics are served without a key
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fitkit_auth_requests_total")
}

func TestServer_handleDecode(t *testing.T) {
	h, s := setupTestServer(t, 0)

	w := do(t, h, "POST", "/api/v1/decode", activityFile(t, 120, 121))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decodeBody[DecodeResponse](t, w)
	assert.True(t, env.Success)
	assert.True(t, env.Data.Integrity)
	assert.Equal(t, profile.CurrentVersion.ProfileVersion(), env.Data.ProfileVersion)
	assert.Equal(t, 2, env.Data.Counts["recordMesgs"])
	require.Len(t, env.Data.Messages["fileIdMesgs"], 1)
	assert.Equal(t, "activity", env.Data.Messages["fileIdMesgs"][0].Fields["type"])
	assert.Equal(t, 121.0, env.Data.Messages["recordMesgs"][1].Fields["heartRate"])

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.decodeFilesTotal.WithLabelValues(statusSuccess)))
	assert.Equal(t, 3.0, testutil.ToFloat64(s.metrics.decodeMessagesTotal))
}

func TestServer_handleDecodeOptions(t *testing.T) {
	h, _ := setupTestServer(t, 0)

	w := do(t, h, "POST", "/api/v1/decode?convertTypesToStrings=false", activityFile(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decodeBody[DecodeResponse](t, w)
	fields := env.Data.Messages["fileIdMesgs"][0].Fields
	assert.Equal(t, 4.0, fields["type"])
	assert.Equal(t, 255.0, fields["manufacturer"])

	w = do(t, h, "POST", "/api/v1/decode?applyScaleAndOffset=maybe", activityFile(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody[any](t, w).Error, "applyScaleAndOffset")
}

func TestServer_handleDecodeRejects(t *testing.T) {
	file := activityFile(t, 100, 101)

	tests := []struct {
		name           string
		maxUpload      int64
		body           []byte
		expectedStatus int
	}{
		{"empty body", 0, []byte{}, http.StatusBadRequest},
		{"not a FIT file", 0, []byte("definitely not a fit file"), http.StatusBadRequest},
		{"truncated", 0, file[:len(file)-4], http.StatusUnprocessableEntity},
		{"too large", 16, file, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupTestServer(t, tt.maxUpload)
			w := do(t, h, "POST", "/api/v1/decode", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.False(t, decodeBody[any](t, w).Success)
		})
	}
}

func TestServer_handleCheck(t *testing.T) {
	h, _ := setupTestServer(t, 0)
	file := activityFile(t, 90)

	w := do(t, h, "POST", "/api/v1/check", file)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeBody[CheckResponse](t, w)
	assert.True(t, env.Data.IsFIT)
	assert.True(t, env.Data.Integrity)
	require.NotNil(t, env.Data.Header)
	assert.Equal(t, uint8(fit.HeaderSizeNoCRC), env.Data.Header.Size)
	assert.Equal(t, ".FIT", env.Data.Header.DataType)

	corrupt := append([]byte(nil), file...)
	corrupt[len(corrupt)-3] ^= 0xFF
	w = do(t, h, "POST", "/api/v1/check", corrupt)
	env = decodeBody[CheckResponse](t, w)
	assert.True(t, env.Data.IsFIT)
	assert.False(t, env.Data.Integrity)
	assert.Contains(t, env.Data.Error, "checksum")

	w = do(t, h, "POST", "/api/v1/check", []byte("nope, not fit"))
	env = decodeBody[CheckResponse](t, w)
	assert.False(t, env.Data.IsFIT)
	assert.False(t, env.Data.Integrity)
	assert.Nil(t, env.Data.Header)
}

func TestServer_Activities(t *testing.T) {
	h, s := setupTestServer(t, 0)
	file := activityFile(t, 130, 131, 132)

	w := do(t, h, "POST", "/api/v1/activities?name=ride.fit", file)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody[storage.Summary](t, w).Data
	assert.Equal(t, "ride.fit", created.Name)
	assert.Equal(t, "activity", created.FileType)
	assert.Equal(t, 3, created.Counts["recordMesgs"])
	require.NotEmpty(t, created.ID)

	w = do(t, h, "GET", "/api/v1/activities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody[[]storage.Summary](t, w).Data
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.archiveActivities))

	w = do(t, h, "GET", "/api/v1/activities/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decodeBody[storage.Summary](t, w).Data.ID)

	w = do(t, h, "GET", "/api/v1/activities/"+created.ID+"/raw", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, file, w.Body.Bytes())
	assert.Equal(t, "application/vnd.ant.fit", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="ride.fit"`)

	w = do(t, h, "DELETE", "/api/v1/activities/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, "GET", "/api/v1/activities/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, h, "DELETE", "/api/v1/activities/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.archiveOperationsTotal.WithLabelValues("put", statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.archiveOperationsTotal.WithLabelValues("delete", statusError)))
}

func TestServer_ActivityErrors(t *testing.T) {
	h, _ := setupTestServer(t, 0)

	tests := []struct {
		name           string
		method         string
		target         string
		body           []byte
		expectedStatus int
	}{
		{"invalid id", "GET", "/api/v1/activities/not-a-ksuid", nil, http.StatusBadRequest},
		{"invalid raw id", "GET", "/api/v1/activities/xyz/raw", nil, http.StatusBadRequest},
		{"unknown id", "GET", "/api/v1/activities/0ujtsYcgvSTl8PAuAdqWYSMnLOv", nil, http.StatusNotFound},
		{"not a FIT file", "POST", "/api/v1/activities", []byte("plain text"), http.StatusBadRequest},
		{"empty upload", "POST", "/api/v1/activities", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestParseReadOptions(t *testing.T) {
	base := fit.DefaultReadOptions()

	o, err := parseReadOptions(base, map[string][]string{
		"expandComponents":   {"false"},
		"includeUnknownData": {"1"},
		"unrelated":          {"whatever"},
	})
	require.NoError(t, err)
	assert.False(t, o.ExpandComponents)
	assert.True(t, o.IncludeUnknownData)
	assert.True(t, o.ApplyScaleAndOffset)

	_, err = parseReadOptions(base, map[string][]string{"mergeHeartRates": {"sometimes"}})
	assert.Error(t, err)
}
