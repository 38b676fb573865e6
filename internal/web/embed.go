package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed static
var staticFS embed.FS

// PageHandler serves the embedded single-page widget. Unknown paths fall
// back to index.html.
func PageHandler() http.Handler {
	subFS, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("web: failed to create sub filesystem: " + err.Error())
	}
	fileServer := http.FileServer(http.FS(subFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f, err := subFS.Open(trimSlash(r.URL.Path)); err != nil {
			r.URL.Path = "/"
		} else {
			f.Close()
		}
		fileServer.ServeHTTP(w, r)
	})
}

func trimSlash(p string) string {
	if p = strings.TrimLeft(p, "/"); p == "" {
		return "index.html"
	}
	return p
}
