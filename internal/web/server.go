// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves a single-user browser UI over the upload controller,
// the conversion orchestrator, and the presenter.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/docview/internal/convert"
	"github.com/pdiddy/docview/internal/present"
	"github.com/pdiddy/docview/internal/upload"
	"github.com/pdiddy/docview/pkg/types"
)

const defaultMaxUploadBytes = 50 << 20

// Server is the HTTP handler for the local web UI. One Server is one
// session: it holds a single controller, orchestrator, and presenter.
type Server struct {
	router chi.Router
	upload *upload.Controller
	orch   *convert.Orchestrator
	pres   *present.Presenter
	log    *slog.Logger
	cfg    types.ServeConfig

	// ctx is the parent of every conversion started from the UI, so
	// requests outlive the browser round trip that triggered them.
	ctx context.Context

	unsubscribe func()
}

// NewServer wires the components together and configures routes. The
// presenter is subscribed to the orchestrator and re-derives its view on
// every state change.
func NewServer(ctx context.Context, ctl *upload.Controller, orch *convert.Orchestrator, pres *present.Presenter, log *slog.Logger, cfg types.ServeConfig) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	s := &Server{
		upload: ctl,
		orch:   orch,
		pres:   pres,
		log:    log,
		cfg:    cfg,
		ctx:    ctx,
	}
	s.unsubscribe = orch.Subscribe(func(snap convert.Snapshot) {
		pres.Show(snap.Document)
	})
	pres.Show(orch.Snapshot().Document)
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close detaches the presenter from the orchestrator.
func (s *Server) Close() {
	s.unsubscribe()
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Post("/convert", s.handleConvert)
	r.Post("/view/toggle", s.handleToggle)
	r.Get("/api/state", s.handleState)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.orch.Snapshot()
	data := pageData{
		CSS:            template.CSS(present.BaseCSS + present.Stylesheet(present.DefaultHighlightStyle) + uiCSS),
		Notice:         snap.Notice,
		Status:         snap.State.Status,
		Processing:     snap.State.InFlight(),
		LoadingMethods: choices(types.LoadingMethods, string(s.upload.LoadingMethod()), string(types.LoadingMineru)),
		ParsingOptions: choices(types.ParsingOptions, string(s.upload.ParsingOption()), string(types.ParsingOne)),
		FileSelected:   s.upload.File() != nil,
		DisplayName:    s.upload.DisplayName(),
		Mode:           s.pres.Mode(),
		OtherMode:      s.pres.Mode().Toggle(),
		View:           template.HTML(s.pres.View()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.log.Error("rendering page", "error", err)
	}
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.cfg.MaxUploadBytes {
		http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	// A form posted without a file keeps the previous selection.
	if f, hdr, err := r.FormFile("file"); err == nil {
		data, readErr := io.ReadAll(f)
		f.Close()
		if readErr != nil {
			http.Error(w, "reading upload: "+readErr.Error(), http.StatusBadRequest)
			return
		}
		s.upload.SelectFile(&types.FileBlob{Name: hdr.Filename, Data: data})
	} else if !errors.Is(err, http.ErrMissingFile) {
		http.Error(w, "reading upload: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.upload.SetLoadingMethod(r.FormValue("loading_method"))
	s.upload.SetParsingOption(r.FormValue("parsing_option"))

	// Validation and busy rejections surface through the orchestrator's
	// notice; the page is shown either way.
	sub, _ := s.upload.Submission()
	if _, err := s.orch.Submit(s.ctx, sub); err != nil {
		s.log.Info("conversion not started", "error", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	mode := s.pres.Toggle()
	s.log.Debug("view toggled", "mode", mode)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// stateResponse is the JSON shape of GET /api/state.
type stateResponse struct {
	State    types.RequestState    `json:"state"`
	Notice   string                `json:"notice,omitempty"`
	View     types.ViewMode        `json:"view"`
	Document *types.ParsedDocument `json:"document,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.orch.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stateResponse{
		State:    snap.State,
		Notice:   snap.Notice,
		View:     s.pres.Mode(),
		Document: snap.Document,
	})
}
