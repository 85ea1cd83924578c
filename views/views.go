package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

const (
	PlantsList = "plants_list"
	About      = "about"
	Create     = "create"
	Detail     = "detail"
	Edit       = "edit"
)

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{PlantsList, About, Create, Detail, Edit} {
		pages[name] = template.Must(template.ParseFS(templateFiles, "templates/base.html", "templates/"+name+".html"))
	}
}

// Render executes the named page into a buffer first so a template error
// never leaves a half-written response behind.
func Render(w http.ResponseWriter, status int, name string, data any) error {
	tmpl, ok := pages[name]
	if !ok {
		return fmt.Errorf("views: unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("views: render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static is the embedded asset tree served under /static/.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
