package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/IgnacioJofreGrra/deceroacien-core/internal/logging"
)

// SPAHandler serves files below Dir and answers every path that does not
// name a regular file with Index, so client-side routing can take over.
type SPAHandler struct {
	Dir    string
	Index  string
	logger logging.Logger
}

func NewSPAHandler(dir, index string, logger logging.Logger) *SPAHandler {
	return &SPAHandler{Dir: dir, Index: index, logger: logger}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// os.Root refuses names and symlinks that leave Dir.
	root, err := os.OpenRoot(h.Dir)
	if err != nil {
		h.logger.Error("Failed to open asset root", "dir", h.Dir, "error", err)
		http.NotFound(w, r)
		return
	}
	defer root.Close()

	name := assetName(r.URL.Path)
	if name == "" {
		name = h.Index
	}

	f, info, ok := openRegular(root, name)
	if !ok {
		h.logger.Debug("SPA fallback", "path", r.URL.Path)
		f, info, ok = openRegular(root, h.Index)
		if !ok {
			h.logger.Error("Fallback document missing", "dir", h.Dir, "index", h.Index)
			http.NotFound(w, r)
			return
		}
	}
	defer f.Close()

	// content type comes from the extension of the served file
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// assetName turns a URL path into a name relative to the asset root. ".."
// elements cannot climb above the root.
func assetName(urlPath string) string {
	cleaned := path.Clean("/" + urlPath)
	return filepath.FromSlash(strings.TrimPrefix(cleaned, "/"))
}

func openRegular(root *os.Root, name string) (*os.File, os.FileInfo, bool) {
	f, err := root.Open(name)
	if err != nil {
		return nil, nil, false
	}
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, false
	}
	return f, info, true
}

// IndexExists reports whether the fallback document can be served.
func (h *SPAHandler) IndexExists() bool {
	root, err := os.OpenRoot(h.Dir)
	if err != nil {
		return false
	}
	defer root.Close()
	f, _, ok := openRegular(root, h.Index)
	if ok {
		f.Close()
	}
	return ok
}
