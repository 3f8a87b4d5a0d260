package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/fitkit/pkg/fit"
	"github.com/ssargent/fitkit/pkg/profile"
	"github.com/ssargent/fitkit/pkg/storage"
)

// Server holds the API server state
type Server struct {
	archive ActivityArchive
	config  ServerConfig
	metrics *Metrics
	logger  *slog.Logger
}

// NewServer creates a new API server
func NewServer(archive ActivityArchive, config ServerConfig, metrics *Metrics, logger *slog.Logger) *Server {
	return &Server{
		archive: archive,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// readOptionParams maps query parameters onto decoder switches
var readOptionParams = map[string]func(*fit.ReadOptions) *bool{
	"expandSubFields":                 func(o *fit.ReadOptions) *bool { return &o.ExpandSubFields },
	"expandComponents":                func(o *fit.ReadOptions) *bool { return &o.ExpandComponents },
	"applyScaleAndOffset":             func(o *fit.ReadOptions) *bool { return &o.ApplyScaleAndOffset },
	"convertTypesToStrings":           func(o *fit.ReadOptions) *bool { return &o.ConvertTypesToStrings },
	"convertDateTimesToDates":         func(o *fit.ReadOptions) *bool { return &o.ConvertDateTimesToDates },
	"includeUnknownData":              func(o *fit.ReadOptions) *bool { return &o.IncludeUnknownData },
	"mergeHeartRates":                 func(o *fit.ReadOptions) *bool { return &o.MergeHeartRates },
	"decodeMemoGlobs":                 func(o *fit.ReadOptions) *bool { return &o.DecodeMemoGlobs },
	"ignoreUnresolvedDeveloperFields": func(o *fit.ReadOptions) *bool { return &o.IgnoreUnresolvedDeveloperFields },
}

// parseReadOptions applies boolean query parameters on top of base
func parseReadOptions(base fit.ReadOptions, q url.Values) (fit.ReadOptions, error) {
	o := base
	for name, values := range q {
		field, ok := readOptionParams[name]
		if !ok || len(values) == 0 {
			continue
		}
		v, err := strconv.ParseBool(values[0])
		if err != nil {
			return o, fmt.Errorf("invalid value for %s: %q", name, values[0])
		}
		*field(&o) = v
	}
	return o, nil
}

// readBody reads the request body up to the configured upload limit
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body := r.Body
	if s.config.MaxUploadSize > 0 {
		body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadSize)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sendError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	if len(data) == 0 {
		sendError(w, "Request body is empty", http.StatusBadRequest)
		return nil, false
	}
	return data, true
}

// handleHealth reports service health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{
		"status":  "healthy",
		"profile": profile.CurrentVersion.String(),
	})
}

// handleDecode decodes the FIT file in the request body.
// Query parameters named after the decoder options override the server defaults.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	opts, err := parseReadOptions(s.config.ReadOptions, r.URL.Query())
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}

	start := time.Now()
	dec := fit.NewDecoder(fit.NewStream(data))
	if !dec.IsFIT() {
		s.metrics.RecordDecode(false, len(data), 0, 0, time.Since(start))
		sendError(w, "Body is not a FIT file", http.StatusBadRequest)
		return
	}
	integrity := dec.CheckIntegrity()

	opts.Logger = s.logger
	opts.DataOnly = false
	opts.SkipHeader = false
	result, err := dec.Read(fit.WithReadOptions(opts))
	if err != nil {
		n := 0
		if result != nil {
			n = result.Count()
		}
		s.metrics.RecordDecode(false, len(data), n, 1, time.Since(start))
		s.logger.Warn("decode failed", "error", err, "bytes", len(data))
		sendError(w, fmt.Sprintf("Failed to decode FIT file: %v", err), http.StatusUnprocessableEntity)
		return
	}
	s.metrics.RecordDecode(true, len(data), result.Count(), len(result.Errors), time.Since(start))

	sendSuccess(w, DecodeResponse{
		ProfileVersion: result.ProfileVersion,
		Integrity:      integrity,
		Counts:         result.Counts(),
		Messages:       result.Messages,
		Errors:         result.ErrorStrings(),
	})
}

// handleCheck reports whether the body is a FIT file with valid checksums
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}

	stream := fit.NewStream(data)
	dec := fit.NewDecoder(stream)
	resp := CheckResponse{IsFIT: dec.IsFIT()}
	if resp.IsFIT {
		if h, err := fit.PeekFileHeader(stream); err == nil {
			resp.Header = &h
		}
	}
	if err := dec.VerifyIntegrity(); err != nil {
		resp.Error = err.Error()
	} else {
		resp.Integrity = true
	}
	sendSuccess(w, resp)
}

// handleCreateActivity archives the FIT file in the request body
func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}

	summary, err := s.archive.Import(r.Context(), r.URL.Query().Get("name"), data)
	s.metrics.RecordArchiveOperation("put", err == nil)
	if err != nil {
		if errors.Is(err, storage.ErrNotFIT) {
			sendError(w, "Body is not a FIT file", http.StatusBadRequest)
			return
		}
		if fit.IsFatal(err) {
			sendError(w, fmt.Sprintf("Failed to decode FIT file: %v", err), http.StatusUnprocessableEntity)
			return
		}
		s.logger.Error("archive put failed", "error", err)
		sendError(w, "Failed to archive activity", http.StatusInternalServerError)
		return
	}

	s.logger.Info("activity archived", "id", summary.ID, "name", summary.Name, "messages", summary.Messages)
	sendCreated(w, summary)
}

// handleListActivities lists archived activities, oldest first
func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	list, err := s.archive.List(r.Context())
	s.metrics.RecordArchiveOperation("list", err == nil)
	if err != nil {
		s.logger.Error("archive list failed", "error", err)
		sendError(w, "Failed to list activities", http.StatusInternalServerError)
		return
	}
	s.metrics.SetArchiveActivities(len(list))
	sendSuccess(w, list)
}

// activityID parses the {id} route parameter
func activityID(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, bool) {
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid activity id", http.StatusBadRequest)
		return ksuid.Nil, false
	}
	return id, true
}

// sendArchiveError maps archive failures onto status codes
func (s *Server) sendArchiveError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		sendError(w, "Activity not found", http.StatusNotFound)
		return
	}
	s.logger.Error("archive "+op+" failed", "error", err)
	sendError(w, fmt.Sprintf("Failed to %s activity", op), http.StatusInternalServerError)
}

// handleGetActivity returns an activity summary
func (s *Server) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := activityID(w, r)
	if !ok {
		return
	}
	summary, err := s.archive.Get(r.Context(), id)
	s.metrics.RecordArchiveOperation("get", err == nil)
	if err != nil {
		s.sendArchiveError(w, "get", err)
		return
	}
	sendSuccess(w, summary)
}

// handleGetActivityRaw streams the original FIT bytes
func (s *Server) handleGetActivityRaw(w http.ResponseWriter, r *http.Request) {
	id, ok := activityID(w, r)
	if !ok {
		return
	}
	raw, err := s.archive.GetRaw(r.Context(), id)
	s.metrics.RecordArchiveOperation("get_raw", err == nil)
	if err != nil {
		s.sendArchiveError(w, "get", err)
		return
	}

	name := id.String() + ".fit"
	if summary, err := s.archive.Get(r.Context(), id); err == nil && summary.Name != "" {
		name = path.Base(summary.Name)
	}
	w.Header().Set("Content-Type", "application/vnd.ant.fit")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(raw)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// handleDeleteActivity removes an activity
func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := activityID(w, r)
	if !ok {
		return
	}
	err := s.archive.Delete(r.Context(), id)
	s.metrics.RecordArchiveOperation("delete", err == nil)
	if err != nil {
		s.sendArchiveError(w, "delete", err)
		return
	}
	sendSuccess(w, map[string]string{"id": id.String(), "status": "deleted"})
}
