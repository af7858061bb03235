package api

import (
	"net/http"
	"path"
	"path/filepath"
)

// SPA serves a built single-page app from dir. Paths that do not name a file
// get index.html so client-side routes resolve.
func SPA(dir string) http.Handler {
	root := http.Dir(dir)
	files := http.FileServer(root)
	index := filepath.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := path.Clean("/" + r.URL.Path)
		if p == "/" {
			http.ServeFile(w, r, index)
			return
		}
		if f, err := root.Open(p); err == nil {
			info, statErr := f.Stat()
			f.Close()
			if statErr == nil && !info.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}
		http.ServeFile(w, r, index)
	})
}
