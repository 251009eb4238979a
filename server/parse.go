package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/teranos/qntx-dims/am"
	"github.com/teranos/qntx-dims/dimension"
	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/extract"
	"github.com/teranos/qntx-dims/locale"
	"github.com/teranos/qntx-dims/logger"
	"github.com/teranos/qntx-dims/version"
)

// ParseRequest is the body of POST /api/parse and of each websocket frame.
// Unset fields take the configured parse defaults; an unset reference time
// is the server clock.
type ParseRequest struct {
	ID              string   `json:"id,omitempty"`
	Text            string   `json:"text"`
	Locale          string   `json:"locale,omitempty"`
	Dims            []string `json:"dims,omitempty"`
	ReferenceTime   string   `json:"reference_time,omitempty"`
	Timezone        string   `json:"timezone,omitempty"`
	WithLatent      *bool    `json:"with_latent,omitempty"`
	MaxAlternatives *int     `json:"max_alternatives,omitempty"`
}

// ParseResponse lists the extracted entities
type ParseResponse struct {
	ID            string             `json:"id,omitempty"`
	Locale        string             `json:"locale"`
	ReferenceTime string             `json:"reference_time"`
	Entities      []dimension.Entity `json:"entities"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

// HealthResponse is returned by /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// DimInfo describes one dimension kind
type DimInfo struct {
	Name         string   `json:"name"`
	Dependencies []string `json:"dependencies"`
}

// parseCall is a request with every default applied
type parseCall struct {
	text     string
	loc      locale.Locale
	kinds    []dimension.Kind
	pctx     dimension.Context
	tz       string
	opts     dimension.Options
	explicit bool // reference time came from the caller
}

// resolve applies cfg defaults to req and validates the result
func (s *Server) resolve(req ParseRequest, cfg *am.Config) (parseCall, error) {
	call := parseCall{text: req.Text, opts: cfg.GetOptions()}

	name := req.Locale
	if name == "" {
		name = cfg.Parse.Locale
	}
	loc, err := locale.Parse(name)
	if err != nil {
		return call, err
	}
	call.loc = loc

	dims := req.Dims
	if len(dims) == 0 {
		dims = cfg.Parse.Dims
	}
	if len(dims) == 0 {
		call.kinds = dimension.AllKinds()
	} else if call.kinds, err = dimension.ParseKinds(dims); err != nil {
		return call, err
	}

	ref := s.now()
	if req.ReferenceTime != "" {
		ref, err = time.Parse(time.RFC3339, req.ReferenceTime)
		if err != nil {
			return call, errors.WrapInvalidInput(err, "reference_time")
		}
		call.explicit = true
	}

	call.tz = req.Timezone
	if call.tz == "" {
		call.tz = cfg.Parse.Timezone
	}
	if call.pctx, err = extract.NewContext(ref, call.tz); err != nil {
		return call, err
	}

	if req.WithLatent != nil {
		call.opts.WithLatent = *req.WithLatent
	}
	if req.MaxAlternatives != nil {
		call.opts.MaxAlternatives = *req.MaxAlternatives
	}
	return call, nil
}

// key is the canonical cache key of a call
func (c parseCall) key() string {
	names := make([]string, len(c.kinds))
	for i, k := range c.kinds {
		names[i] = k.String()
	}
	return strings.Join([]string{
		c.loc.String(),
		strings.Join(names, ","),
		c.pctx.ReferenceTime.UTC().Format(time.RFC3339Nano),
		c.tz,
		strconv.FormatBool(c.opts.WithLatent),
		strconv.Itoa(c.opts.Alternatives()),
		c.text,
	}, "\x00")
}

// Parse answers one request with the current config defaults. Results
// are cached only for requests with an explicit reference time, since the
// server clock makes every other request unique.
func (s *Server) Parse(ctx context.Context, req ParseRequest) (*ParseResponse, error) {
	cfg := s.Config()
	call, err := s.resolve(req, cfg)
	if err != nil {
		return nil, err
	}

	c := s.cache.Load()
	useCache := c != nil && call.explicit
	var key string
	if useCache {
		key = call.key()
		if hit, ok := c.Get(key); ok {
			resp := *hit.(*ParseResponse)
			resp.ID = req.ID
			return &resp, nil
		}
	}

	entities, err := s.extractor.Parse(ctx, call.text, call.loc, call.kinds, call.pctx, call.opts)
	if err != nil {
		return nil, err
	}
	resp := &ParseResponse{
		Locale:        call.loc.String(),
		ReferenceTime: call.pctx.ReferenceTime.Format(time.RFC3339),
		Entities:      entities,
	}
	if useCache {
		c.Set(key, resp, cache.DefaultExpiration)
	}

	out := *resp
	out.ID = req.ID
	return &out, nil
}

// HandleParse serves POST /api/parse
func (s *Server) HandleParse(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req ParseRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}

	resp, err := s.Parse(r.Context(), req)
	if err != nil {
		if !errors.IsInvalidInputError(err) {
			s.logger.Errorw("Parse failed",
				append(logger.FieldsFromContext(r.Context()), logger.FieldError, err)...)
		}
		writeErrorFor(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleDims serves GET /api/dims
func (s *Server) HandleDims(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, Dims())
}

// Dims describes every dimension kind in declaration order
func Dims() []DimInfo {
	kinds := dimension.AllKinds()
	out := make([]DimInfo, len(kinds))
	for i, k := range kinds {
		deps := make([]string, 0, len(k.Dependencies()))
		for _, d := range k.Dependencies() {
			deps = append(deps, d.String())
		}
		out[i] = DimInfo{Name: k.String(), Dependencies: deps}
	}
	return out
}

// HandleHealth serves GET /health
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	info := version.Get()
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: info.Version, Commit: info.Short()})
}

// decodeRequest decodes one websocket frame
func decodeRequest(data []byte) (ParseRequest, error) {
	var req ParseRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return req, errors.WrapInvalidInput(err, "invalid request frame")
	}
	return req, nil
}
