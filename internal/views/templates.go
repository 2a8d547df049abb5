package views

import (
	"embed"
	"html/template"
	"strings"

	"github.com/veyrascripts/gallery/internal/gallery"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

func funcs() template.FuncMap {
	return template.FuncMap{
		"join": strings.Join,
		"shownTags": func(tags []string) []string {
			shown, _ := gallery.CardTags(tags)
			return shown
		},
		"moreTags": func(tags []string) int {
			_, more := gallery.CardTags(tags)
			return more
		},
	}
}

// Templates parses the embedded page templates. Pages are addressed by file
// name, e.g. "gallery.tmpl".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs()).ParseFS(templateFS, "templates/*.tmpl")
}

func MustTemplates() *template.Template {
	return template.Must(Templates())
}
