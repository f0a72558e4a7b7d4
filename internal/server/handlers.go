package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gauthierbraillon/folio/internal/aggregator"
	"github.com/gauthierbraillon/folio/internal/identity"
	"github.com/gauthierbraillon/folio/internal/markdown"
	"github.com/gauthierbraillon/folio/internal/medium"
)

type renderRequest struct {
	Content string `json:"content"`
	Mode    string `json:"mode"`
}

type renderResponse struct {
	HTML string `json:"html"`
}

type excerptRequest struct {
	Content string `json:"content"`
	Length  int    `json:"length"`
}

type excerptResponse struct {
	Excerpt string `json:"excerpt"`
}

type postView struct {
	medium.Post
	ReadTime int `json:"read_time"`
}

type postsResponse struct {
	Posts []postView `json:"posts"`
}

type deviceResponse struct {
	DeviceID string `json:"device_id"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

// render accepts either a JSON renderRequest or a raw text/markdown body
// with the mode in the query string.
func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if isMarkdown(r.Header.Get("Content-Type")) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, "could not read body")
			return
		}
		req = renderRequest{Content: string(body), Mode: r.URL.Query().Get("mode")}
	} else if !s.decode(w, r, &req) {
		return
	}

	mode := s.defaultMode
	if req.Mode != "" {
		m, err := markdown.ParseMode(req.Mode)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		mode = m
	}

	html := s.engines[mode].Render(req.Content)
	s.metrics.RenderTotal.WithLabelValues(s.engineName, string(mode)).Inc()
	s.writeJSON(w, r, http.StatusOK, renderResponse{HTML: html})
}

func (s *Server) excerpt(w http.ResponseWriter, r *http.Request) {
	var req excerptRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Length < 0 {
		s.writeError(w, r, http.StatusBadRequest, "length must not be negative")
		return
	}
	if req.Length == 0 {
		req.Length = markdown.DefaultExcerptLength
	}
	s.writeJSON(w, r, http.StatusOK, excerptResponse{Excerpt: markdown.Excerpt(req.Content, req.Length)})
}

// mediumPosts serves the cached feed. Query parameters: limit (defaults to
// the configured limit), category (repeatable), since and until (YYYY-MM-DD).
func (s *Server) mediumPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := aggregator.FeedOptions{Limit: s.defaultLimit, Categories: q["category"]}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		opts.Limit = n
	}
	for key, dst := range map[string]*time.Time{"since": &opts.Since, "until": &opts.Until} {
		if v := q.Get(key); v != "" {
			t, err := time.Parse(time.DateOnly, v)
			if err != nil {
				s.writeError(w, r, http.StatusBadRequest, key+" must be a YYYY-MM-DD date")
				return
			}
			*dst = t
		}
	}
	if !opts.Until.IsZero() {
		opts.Until = opts.Until.Add(24*time.Hour - time.Nanosecond)
	}

	posts, err := s.posts.Recent(r.Context(), 0)
	if err != nil {
		s.logger.WarnContext(r.Context(), "Medium feed unavailable", slog.Any("err", err))
		s.writeError(w, r, http.StatusBadGateway, "medium feed unavailable")
		return
	}

	agg := aggregator.New()
	agg.AddPosts(posts)
	filtered := agg.GetFeed(opts)

	views := make([]postView, 0, len(filtered))
	for _, p := range filtered {
		views = append(views, postView{Post: p, ReadTime: p.ReadTime()})
	}
	s.writeJSON(w, r, http.StatusOK, postsResponse{Posts: views})
}

func (s *Server) mediumRefresh(w http.ResponseWriter, r *http.Request) {
	s.posts.Refresh()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) device(w http.ResponseWriter, r *http.Request) {
	var provider identity.Provider = identity.NewCookieProvider(w, r, s.cfg.SecureCookies)
	id, err := provider.DeviceID(r.Context())
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, "could not issue device id")
		return
	}
	s.writeJSON(w, r, http.StatusOK, deviceResponse{DeviceID: id})
}

// decode reads a JSON body into v, writing a 400 response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		msg := "invalid JSON body"
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			msg = "body too large"
		}
		s.writeError(w, r, http.StatusBadRequest, msg)
		return false
	}
	return true
}

func isMarkdown(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "text/markdown" || strings.HasPrefix(mt, "text/plain")
}
