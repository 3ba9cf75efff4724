package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/techradar/pkg/buildinfo"
	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/radar"
	"github.com/matzehuels/techradar/pkg/store"
)

// maxBodyBytes bounds PUT bodies.
const maxBodyBytes = 4 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Current()})
}

// ecosystem describes one supported language.
type ecosystem struct {
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Manifests    []string `json:"manifests"`
	Technologies int      `json:"technologies"`
}

func (s *Server) handleEcosystems(w http.ResponseWriter, r *http.Request) {
	a := s.runner.Analyzer
	var out []ecosystem
	for _, l := range a.Registry().Languages() {
		e := ecosystem{Name: l.Name, Title: l.Title, Manifests: []string{}}
		for _, p := range l.Manifests() {
			e.Manifests = append(e.Manifests, p.Patterns()...)
		}
		if t := a.Config().Table(l.Name); t != nil {
			e.Technologies = t.Len()
		}
		out = append(out, e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListRadars(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetRadar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Load(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if rec == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no saved radar %s", id))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// putRadarRequest is the body of PUT /api/radars/{id}.
type putRadarRequest struct {
	RepoURL string       `json:"repoUrl"`
	Matrix  radar.Matrix `json:"matrix"`
}

// handlePutRadar saves a radar edited by a client, typically after moving
// technologies into the curated stages.
func (s *Server) handlePutRadar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req putRadarRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid radar body"))
		return
	}
	if req.RepoURL != "" && store.RepoDocID(req.RepoURL) != id {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "repoUrl does not match radar id %s", id))
		return
	}
	if req.RepoURL == "" {
		if prev, err := s.store.Load(r.Context(), id); err == nil && prev != nil {
			req.RepoURL = prev.RepoURL
		}
	}

	rec := &store.Record{ID: id, RepoURL: req.RepoURL, Matrix: req.Matrix.Normalized()}
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteRadar(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
