// Package site serves the static assets of the dashboard page.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("static asset serve failed")
)

// Prefix is the URL path the assets are served under.
const Prefix = "/static/"

// Register attaches the embedded static assets to mux under Prefix.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle(Prefix, http.StripPrefix(Prefix, NewAssetsHandler()))
}

// AssetsHandler serves embedded files with a short cache lifetime.
type AssetsHandler struct {
	files http.Handler
}

// NewAssetsHandler creates a new assets handler.
func NewAssetsHandler() *AssetsHandler {
	return &AssetsHandler{files: http.FileServer(FS())}
}

// ServeHTTP implements http.Handler.
func (h *AssetsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "" || r.URL.Path == "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=300")
	h.files.ServeHTTP(w, r)
}
