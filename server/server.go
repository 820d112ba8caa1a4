package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"story_generator/export"
	"story_generator/generator"
)

//go:embed web
var embeddedStatic embed.FS

const generateTimeout = 90 * time.Second

type Server struct {
	genAgent *generator.Agent
	defaults generator.GenerationRequest
	store    *sessionStore
	staticFS http.Handler
	now      func() time.Time
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*generator.Session
}

func newStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*generator.Session)}
}

func (s *sessionStore) set(id string, sess *generator.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
}

func (s *sessionStore) get(id string) (*generator.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// New builds the HTTP server. defaults pre-fills every incoming request
// (model, variant, temperature from the config).
func New(genAgent *generator.Agent, defaults generator.GenerationRequest) (*Server, error) {
	if genAgent == nil {
		return nil, errors.New("generator agent required")
	}

	sub, err := fs.Sub(embeddedStatic, "web")
	if err != nil {
		return nil, err
	}

	return &Server{
		genAgent: genAgent,
		defaults: defaults,
		store:    newStore(),
		staticFS: http.FileServer(http.FS(sub)),
		now:      time.Now,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/options", s.handleOptions)
	mux.HandleFunc("/api/sessions", s.handleSessionCreate)
	mux.HandleFunc("/api/sessions/", s.handleSessionByID)
	mux.Handle("/", s.staticHandler())
	return logMiddleware(mux)
}

func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		if r.URL.Path != "/" && r.URL.Path != "/index.html" {
			http.NotFound(w, r)
			return
		}
		r.URL.Path = "/"
		s.staticFS.ServeHTTP(w, r)
	})
}

// --- Handlers ---

type optionsResp struct {
	Variants  []generator.Variant         `json:"variants"`
	Catalogue generator.Catalogue         `json:"catalogue"`
	Models    []generator.ModelGroup      `json:"models"`
	Defaults  generator.GenerationRequest `json:"defaults"`
	Formats   []export.Format             `json:"formats"`
}

type sessionResp struct {
	SessionID string                `json:"session_id"`
	Usage     generator.Usage       `json:"usage"`
	Result    *generator.Result     `json:"result,omitempty"`
	Plan      *generator.PlanResult `json:"plan,omitempty"`
}

type errorResp struct {
	SessionID string           `json:"session_id,omitempty"`
	Error     string           `json:"error"`
	Kind      string           `json:"kind"`
	Field     string           `json:"field,omitempty"`
	RawText   string           `json:"raw_text,omitempty"`
	Usage     *generator.Usage `json:"usage,omitempty"`
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	v := s.defaults.Variant
	if q := r.URL.Query().Get("variant"); q != "" {
		parsed, err := generator.ParseVariant(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		v = parsed
	}
	defaults := s.baseRequest()
	defaults.Variant = v
	writeJSON(w, http.StatusOK, optionsResp{
		Variants:  []generator.Variant{generator.VariantStandard, generator.VariantViral},
		Catalogue: generator.CatalogueFor(v),
		Models:    generator.Models(),
		Defaults:  defaults.Normalize(),
		Formats:   export.Formats,
	})
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, err := s.decodeRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	sess := generator.NewSession(id, s.genAgent)
	s.store.set(id, sess)
	if r.URL.Query().Get("kind") == "plan" {
		s.generatePlan(w, r, sess, req)
		return
	}
	s.generate(w, r, sess, req)
}

func (s *Server) handleSessionByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/sessions/"), "/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	sess, ok := s.store.get(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	switch action {
	case "":
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, sessionState(sess))
		case http.MethodPost:
			req, err := s.decodeRequest(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			s.generate(w, r, sess, req)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	case "plan":
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		req, err := s.decodeRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.generatePlan(w, r, sess, req)
	case "export":
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handleExport(w, r, sess)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, sess *generator.Session, req generator.GenerationRequest) {
	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()
	res, err := sess.Generate(ctx, req)
	if err != nil {
		usage := sess.Usage()
		writeError(w, sess.ID, err, &usage)
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{SessionID: sess.ID, Usage: sess.Usage(), Result: &res})
}

func (s *Server) generatePlan(w http.ResponseWriter, r *http.Request, sess *generator.Session, req generator.GenerationRequest) {
	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()
	res, err := sess.GenerateWeekPlan(ctx, req)
	if err != nil {
		usage := sess.Usage()
		writeError(w, sess.ID, err, &usage)
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{SessionID: sess.ID, Usage: sess.Usage(), Plan: &res})
}

// handleExport serves the last story (or, with kind=plan, the last week plan)
// as a downloadable file.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	q := r.URL.Query()
	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		buf    bytes.Buffer
		prefix string
	)
	if q.Get("kind") == "plan" {
		res, ok := sess.LastPlan()
		if !ok {
			http.Error(w, "no week plan generated yet", http.StatusNotFound)
			return
		}
		if err := export.WritePlan(&buf, format, res.Plan); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		prefix = "ig_week_plan"
	} else {
		res, ok := sess.Last()
		if !ok {
			http.Error(w, "no story generated yet", http.StatusNotFound)
			return
		}
		if err := export.Write(&buf, format, res.Content, res.Request.Variant); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		prefix = "ig_story"
		if res.Request.Variant == generator.VariantViral {
			prefix = "viral_ig_story"
		}
	}

	name := export.FileName(prefix, format, s.now())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(buf.Bytes())
}

// --- Helpers ---

func sessionState(sess *generator.Session) sessionResp {
	resp := sessionResp{SessionID: sess.ID, Usage: sess.Usage()}
	if res, ok := sess.Last(); ok {
		resp.Result = &res
	}
	if plan, ok := sess.LastPlan(); ok {
		resp.Plan = &plan
	}
	return resp
}

// decodeRequest overlays the JSON body onto the configured defaults.
func (s *Server) decodeRequest(r *http.Request) (generator.GenerationRequest, error) {
	req := s.baseRequest()
	if r.Body == nil || r.ContentLength == 0 {
		return req, nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return generator.GenerationRequest{}, fmt.Errorf("invalid request body: %w", err)
	}
	return req, nil
}

func (s *Server) baseRequest() generator.GenerationRequest {
	req := s.defaults
	if s.defaults.Temperature != nil {
		t := *s.defaults.Temperature
		req.Temperature = &t
	}
	return req
}

func writeError(w http.ResponseWriter, sessionID string, err error, usage *generator.Usage) {
	resp := errorResp{SessionID: sessionID, Error: err.Error(), Usage: usage}
	status := http.StatusInternalServerError

	var (
		valErr *generator.ValidationError
		trErr  *generator.TransportError
		decErr *generator.DecodeError
	)
	switch {
	case errors.As(err, &valErr):
		status, resp.Kind, resp.Field = http.StatusBadRequest, "validation", valErr.Field
	case errors.As(err, &decErr):
		status, resp.Kind, resp.RawText = http.StatusUnprocessableEntity, "decode", decErr.RawText
	case errors.As(err, &trErr):
		status, resp.Kind = http.StatusBadGateway, "transport"
	default:
		resp.Kind = "internal"
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		fields := []logx.LogField{
			logx.Field("method", r.Method),
			logx.Field("path", path),
			logx.Field("status", rec.status),
			logx.Field("duration", time.Since(start).String()),
		}
		if rec.status >= http.StatusInternalServerError {
			logx.WithContext(r.Context()).Errorw("http request", fields...)
			return
		}
		logx.WithContext(r.Context()).Infow("http request", fields...)
	})
}
