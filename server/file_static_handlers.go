package server

import (
	"embed"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
)

//go:embed static/*
var staticFiles embed.FS

// staticFS is the embedded asset tree rooted at static/
var staticFS = mustSub(staticFiles, "static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic("embedded " + dir + " tree: " + err.Error())
	}
	return sub
}

// StreamFile writes one embedded asset. HEAD requests get the headers only.
func StreamFile(w http.ResponseWriter, r *http.Request, name string) error {
	data, err := fs.ReadFile(staticFS, name)
	if err != nil {
		return fmt.Errorf("static asset %s: %w", name, err)
	}

	w.Header().Set("Content-Type", assetContentType(name, data))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if r.Method == http.MethodHead {
		return nil
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func assetContentType(name string, data []byte) string {
	ctype := mime.TypeByExtension(strings.ToLower(path.Ext(name)))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	if strings.HasPrefix(ctype, "text/") && !strings.Contains(ctype, "charset=") {
		ctype += "; charset=utf-8"
	}
	return ctype
}

// serveFileHandler streams {file} from one directory of the embedded static tree
func (s *Server) serveFileHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file := r.PathValue("file")
		if file == "" || strings.Contains(file, "..") {
			http.NotFound(w, r)
			return
		}
		name := path.Join(dir, file)
		if err := StreamFile(w, r, name); err != nil {
			logError(r.Method, name, err.Error())
			http.NotFound(w, r)
		}
	}
}
