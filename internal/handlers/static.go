package handlers

import (
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

const indexFile = "index.html"

// StaticHandler serves the single-page app bundle, or a sitemap of the API
// in development mode.
type StaticHandler struct {
	Files fs.FS
	Dev   bool
}

func NewStaticHandler(files fs.FS, dev bool) *StaticHandler {
	return &StaticHandler{Files: files, Dev: dev}
}

var sitemapTmpl = template.Must(template.New("sitemap").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>API sitemap</title></head>
<body>
<div style="text-align: center;">
<h1>Welcome to your API</h1>
<p>Specify a real endpoint path like:</p>
<ul style="text-align: left; display: inline-block;">
{{- range .}}
<li><a href="{{.}}">{{.}}</a></li>
{{- end}}
</ul>
</div>
</body>
</html>
`))

// Root serves the sitemap in development and index.html otherwise.
func (h *StaticHandler) Root(w http.ResponseWriter, r *http.Request) {
	if h.Dev {
		h.sitemap(w, r)
		return
	}
	h.send(w, r, indexFile)
}

// ServeFile serves the requested file from the bundle, falling back to
// index.html for anything that is not a regular file.
func (h *StaticHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	name := cleanName(chi.URLParam(r, "*"))
	if !h.isFile(name) {
		name = indexFile
	}
	w.Header().Set("Cache-Control", "max-age=0")
	h.send(w, r, name)
}

// cleanName roots p so it can never climb out of the bundle.
func cleanName(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

func (h *StaticHandler) isFile(name string) bool {
	if name == "" || !fs.ValidPath(name) {
		return false
	}
	st, err := fs.Stat(h.Files, name)
	return err == nil && st.Mode().IsRegular()
}

func (h *StaticHandler) send(w http.ResponseWriter, r *http.Request, name string) {
	f, err := h.Files.Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil || st.IsDir() {
		http.NotFound(w, r)
		return
	}

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, "file is not seekable", http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, st.Name(), st.ModTime(), rs)
}

func (h *StaticHandler) sitemap(w http.ResponseWriter, r *http.Request) {
	links, err := sitemapLinks(chi.RouteContext(r.Context()).Routes)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = sitemapTmpl.Execute(w, links)
}

// sitemapLinks lists GET routes that take no URL parameters.
func sitemapLinks(routes chi.Routes) ([]string, error) {
	seen := map[string]struct{}{}
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if method != http.MethodGet || strings.ContainsAny(route, "{*") {
			return nil
		}
		seen[route] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	links := make([]string, 0, len(seen))
	for l := range seen {
		links = append(links, l)
	}
	sort.Strings(links)
	return links, nil
}
