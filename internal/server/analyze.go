package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/observability"
	"github.com/matzehuels/techradar/pkg/pipeline"
	"github.com/matzehuels/techradar/pkg/radar"
	"github.com/matzehuels/techradar/pkg/render"
)

// Event types of the analysis stream.
const (
	EventProgress = "progress"
	EventComplete = "complete"
	EventError    = "error"
)

// Event is one frame of the analysis stream.
type Event struct {
	Type    string        `json:"type"`
	Message string        `json:"message,omitempty"`
	Data    *radar.Matrix `json:"data,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// eventStream writes server-sent events. Progress arrives from concurrent
// analysis workers, so writes are serialized.
type eventStream struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	closed  bool
}

func (s *eventStream) send(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		s.closed = true
		return err
	}
	s.flusher.Flush()
	return nil
}

// progress is a pipeline progress callback. It stops writing once the
// stream is closed.
func (s *eventStream) progress(format string, args ...any) {
	_ = s.send(Event{Type: EventProgress, Message: fmt.Sprintf(format, args...)})
}

// close drops later progress from workers that outlive the request.
func (s *eventStream) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// handleAnalyze runs an analysis and streams its progress.
//
// Query parameters: repoUrl (or path, with AllowLocal), skipHistory,
// refresh and save. The stream ends with a "complete" or an "error" frame.
// Request errors detected before streaming starts are plain JSON.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		RepoURL:     strings.TrimSpace(q.Get("repoUrl")),
		RepoPath:    strings.TrimSpace(q.Get("path")),
		SkipHistory: queryBool(q.Get("skipHistory")),
		Refresh:     queryBool(q.Get("refresh")),
		Save:        queryBool(q.Get("save")),
		Formats:     []string{render.FormatJSON},
		AllowLocal:  s.opts.AllowLocal,
	}
	switch {
	case opts.RepoPath != "" && !s.opts.AllowLocal:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "local paths are not enabled on this server"))
		return
	case opts.RepoURL == "" && opts.RepoPath == "":
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Repository URL is required", Code: string(errors.ErrCodeInvalidInput)})
		return
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeInternal, "streaming unsupported"))
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	stream := &eventStream{w: w, flusher: flusher}
	defer stream.close()
	opts.Progress = stream.progress

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		if r.Context().Err() != nil {
			s.opts.Logger.Debug("analysis cancelled by client", "repo", opts.RepoURL+opts.RepoPath)
			return
		}
		s.opts.Logger.Warn("analysis failed", "repo", opts.RepoURL+opts.RepoPath, "error", err)
		observability.HTTP().OnError(r.Context(), r.Method, r.Host, r.URL.Path, err)
		_ = stream.send(Event{Type: EventError, Error: errors.UserMessage(err)})
		return
	}
	m := res.Matrix
	_ = stream.send(Event{Type: EventComplete, Data: &m})
}

func queryBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}
