// Package ufcstatstest serves canned ufcstats.com pages for tests.
package ufcstatstest

import (
	"embed"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

//go:embed testdata
var pages embed.FS

// the live site links to itself with absolute urls, fixtures are rewritten
// to point at the test server instead
const siteUrl = "http://ufcstats.com"

// Server is an httptest server that answers fighter listing and detail
// requests from the embedded fixtures.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
	failing  map[string]int
}

// Profiles maps a detail page slug to its fixture.
var Profiles = map[string]string{
	"jon-jones":    "testdata/jon_jones.html",
	"chang-ho-lee": "testdata/chang_ho_lee.html",
}

// Listings holds the letters with a listing fixture, every other letter
// serves an empty table.
var Listings = map[string]string{
	"j": "testdata/listing_j.html",
	"l": "testdata/listing_l.html",
}

func NewServer() *Server {
	s := &Server{failing: map[string]int{}}
	mux := http.NewServeMux()
	mux.HandleFunc("/statistics/fighters", s.listing)
	mux.HandleFunc("/fighter-details/", s.profile)
	s.Server = httptest.NewServer(mux)
	return s
}

// Fail makes the next n requests for path answer with a 500.
func (s *Server) Fail(path string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[path] = n
}

// Requests returns every request path (with query) served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// ProfileUrl is the absolute detail page url of slug on this server.
func (s *Server) ProfileUrl(slug string) string {
	return s.URL + "/fighter-details/" + slug
}

func (s *Server) record(r *http.Request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r.URL.RequestURI())
	if n := s.failing[r.URL.Path]; n > 0 {
		s.failing[r.URL.Path] = n - 1
		return false
	}
	return true
}

func (s *Server) listing(w http.ResponseWriter, r *http.Request) {
	if !s.record(r) {
		http.Error(w, "unavailable", http.StatusInternalServerError)
		return
	}
	file, ok := Listings[r.URL.Query().Get("char")]
	if !ok {
		file = "testdata/listing_empty.html"
	}
	s.serve(w, file)
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	if !s.record(r) {
		http.Error(w, "unavailable", http.StatusInternalServerError)
		return
	}
	slug := strings.TrimPrefix(r.URL.Path, "/fighter-details/")
	file, ok := Profiles[slug]
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.serve(w, file)
}

func (s *Server) serve(w http.ResponseWriter, file string) {
	contents, err := pages.ReadFile(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("content-type", "text/html; charset=utf-8")
	w.Write([]byte(strings.ReplaceAll(string(contents), siteUrl, s.URL)))
}
