// Package tmpl renders the application's HTML pages from templates
// embedded in the binary. Page design is out of scope; the templates
// are deliberately minimal.
package tmpl

import (
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "templates/*.html"))

// Render writes one named page with the given status code. A template
// failure after the header is written can only be logged.
func Render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("tmpl: render %s: %v", name, err)
	}
}
