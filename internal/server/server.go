package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formkit/internal/demo"
	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/validation"
)

const shutdownTimeout = 5 * time.Second

// Deps carries collaborators. Zero values are replaced with defaults built
// from the Config.
type Deps struct {
	Logger  zerolog.Logger
	Schema  *SchemaHolder
	Metrics *Metrics
}

// Server serves the form page and the JSON API.
type Server struct {
	cfg       Config
	logger    zerolog.Logger
	schemas   *SchemaHolder
	metrics   *Metrics
	forms     *render.FormRenderer
	renderers *render.Registry
	page      *page
	marker    render.HiddenField
	formOpts  render.FormOptions
}

// New wires the server. When cfg.WatchSchema is set the schema file is
// watched until Close.
func New(cfg Config, deps Deps) (*Server, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("server: validate config: %w", err)
	}

	schemas := deps.Schema
	if schemas == nil {
		if cfg.SchemaPath == "" {
			schemas = StaticSchema(demo.Product())
		} else {
			var err error
			if schemas, err = NewSchemaHolder(cfg.SchemaPath, deps.Logger); err != nil {
				return nil, err
			}
		}
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = NewMetrics(cfg.MetricsPrefix)
	}

	pg, err := newPage()
	if err != nil {
		return nil, err
	}

	var renderOpts []render.Option
	if !cfg.AllowMarkup {
		renderOpts = append(renderOpts, render.StrictValues())
	}
	marker := render.SubmissionMarker(cfg.Marker.Name, cfg.Marker.Value)
	formOpts := render.FormOptions{
		Method:       http.MethodPost,
		SubmitLabel:  cfg.SubmitLabel,
		HiddenValues: cfg.HiddenValues,
		Extra:        []render.HiddenField{marker},
	}

	s := &Server{
		cfg:       cfg,
		logger:    deps.Logger,
		schemas:   schemas,
		metrics:   metrics,
		forms:     render.NewFormRenderer(renderOpts...),
		renderers: render.NewDefaultRegistry(formOpts, renderOpts...),
		page:      pg,
		marker:    marker,
		formOpts:  formOpts,
	}

	schemas.OnReload(metrics.ObserveReload)
	schemas.OnChange(func(schema *model.Schema) {
		s.logger.Info().Strs("fields", schema.IDs()).Msg("serving reloaded schema")
	})
	if cfg.WatchSchema {
		if err := schemas.WatchFile(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Close stops schema watching.
func (s *Server) Close() {
	s.schemas.Stop()
}

// Marker returns the submission marker embedded in every rendered form.
func (s *Server) Marker() render.HiddenField {
	return s.marker
}

// Router returns the HTTP routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleForm)
	r.Post("/", s.handleSubmit)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/validate", s.handleAPIValidate)
		r.Get("/schema", s.handleAPISchema)
		r.Get("/schema/{renderer}", s.handleAPISchema)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr).Msg("serving form")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.logger.Error().Err(err).Msg("server stopped")
		return fmt.Errorf("server: listen: %w", err)
	}
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, s.schemas.Get(), nil, nil)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	raw := validation.FlattenValues(r.PostForm)
	if !render.IsSubmission(raw, s.marker) {
		s.logger.Debug().Msg("post without submission marker, rendering blank form")
		s.writePage(w, s.schemas.Get(), nil, nil)
		return
	}

	schema := s.schemas.Get()
	result := validation.New(schema).Validate(raw)
	s.metrics.Observe("form", result)

	var notice *markup.Node
	if result.IsValid() {
		s.logger.Info().Msg("form submission valid")
		notice = render.InfoList(s.cfg.SuccessMessage)
	} else {
		s.logger.Info().Strs("fields", result.FieldsInError()).Msg("form submission invalid")
		notice = render.ErrorList(result)
	}
	s.writePage(w, schema, notice, result)
}

func (s *Server) writePage(w http.ResponseWriter, schema *model.Schema, notice *markup.Node, prior *validation.Result) {
	body := markup.El("div")
	if notice != nil {
		body.AppendChildren(notice)
	}
	body.AppendChildren(s.forms.BuildForm(schema, prior, s.formOpts))

	var out strings.Builder
	if err := s.page.Render(&out, s.cfg.Title, body.String()); err != nil {
		s.logger.Error().Err(err).Msg("render page failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(out.String()))
}

func (s *Server) handleAPIValidate(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeSubmission(r)
	if err != nil {
		s.logger.Debug().Err(err).Msg("rejecting submission body")
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result := validation.New(s.schemas.Get()).Validate(raw)
	s.metrics.Observe("api", result)

	status := http.StatusOK
	if !result.IsValid() {
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, result.Report())
}

func (s *Server) handleAPISchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "renderer")
	if name == "" {
		name = "json"
	}
	renderer, err := s.renderers.Get(name)
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	payload, err := renderer.Render(r.Context(), s.schemas.Get(), nil)
	if err != nil {
		s.logger.Error().Err(err).Str("renderer", name).Msg("schema render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	_, _ = w.Write(payload)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "fields": s.schemas.Get().Len()})
}

// decodeSubmission reads a JSON object or a form-encoded body into the raw
// string map the validator expects.
func decodeSubmission(r *http.Request) (map[string]string, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		return validation.FlattenValues(r.PostForm), nil
	}

	var body map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	raw := make(map[string]string, len(body))
	for key, value := range body {
		switch v := value.(type) {
		case nil:
		case string:
			raw[key] = v
		case json.Number:
			raw[key] = v.String()
		case bool:
			raw[key] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("field %q must be a string or a number", key)
		}
	}
	return raw, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error().Err(err).Msg("encode json response failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
