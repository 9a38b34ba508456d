package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gaurav-prasanna/wikiplain/core/fetch"
	"github.com/gaurav-prasanna/wikiplain/core/wikitext"
)

type convertResponse struct {
	Title    string             `json:"title,omitempty"`
	URL      string             `json:"url,omitempty"`
	Text     string             `json:"text"`
	Sections []wikitext.Section `json:"sections"`
	Warnings []string           `json:"warnings,omitempty"`
}

type parseErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Offset    int    `json:"offset"`
	Construct string `json:"construct,omitempty"`
}

// handleConvert converts a wikitext request body. The body is plain
// wikitext unless encoded=true, in which case it is already a JSON string
// literal as returned by the MediaWiki API.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	strip, err := boolParam(r, "strip_references")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	encoded, err := boolParam(r, "encoded")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if int64(len(body)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	markup := string(body)
	if !encoded {
		markup = wikitext.EncodeBody(markup)
	}
	s.convert(w, markup, strip, convertResponse{})
}

// handleArticle fetches an article by its wiki URL and converts it.
func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	link := r.URL.Query().Get("url")
	if link == "" {
		jsonError(w, "url is required", http.StatusBadRequest)
		return
	}
	ref, err := fetch.ArticleRefFromURL(link)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	article, err := s.articles.FetchArticle(r.Context(), ref)
	if errors.Is(err, fetch.ErrArticleNotFound) {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("fetch failed", "url", link, "error", err)
		jsonError(w, "fetch failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	s.convert(w, article.Markup, ref.IsDefaultEdition(), convertResponse{
		Title: article.Title,
		URL:   fetch.ArticleURL(ref),
	})
}

func (s *Server) convert(w http.ResponseWriter, markup string, strip bool, resp convertResponse) {
	result, err := s.converter(strip).Convert(markup)
	var perr *wikitext.ParseError
	if errors.As(err, &perr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(parseErrorResponse{
			Error:     perr.Error(),
			Kind:      perr.Kind.String(),
			Offset:    perr.Offset,
			Construct: perr.Construct,
		})
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.Text = result.Text
	resp.Sections = result.Sections
	if resp.Sections == nil {
		resp.Sections = []wikitext.Section{}
	}
	for _, warn := range result.Warnings {
		resp.Warnings = append(resp.Warnings, warn.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func boolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", name, v)
	}
	return b, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
