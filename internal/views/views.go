package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templates embed.FS

// Layout is the layout every page renders inside.
const Layout = "layouts/main"

// New returns the HTML engine serving the embedded page templates.
func New() (*html.Engine, error) {
	root, err := fs.Sub(templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("open templates: %w", err)
	}

	engine := html.NewFileSystem(http.FS(root), ".html")
	engine.AddFuncMap(Funcs())

	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	return engine, nil
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"percent":    percent,
		"initials":   initials,
		"badgeClass": badgeClass,
	}
}

func percent(value float64) string {
	return fmt.Sprintf("%.1f", value)
}

func initials(name string) string {
	var letters []rune
	for _, part := range strings.Fields(name) {
		letters = append(letters, []rune(strings.ToUpper(part))[0])
		if len(letters) == 2 {
			break
		}
	}
	if len(letters) == 0 {
		return "?"
	}
	return string(letters)
}

func badgeClass(badge string) string {
	switch badge {
	case "Completed":
		return "bg-green-100 text-green-800"
	case "Due Soon":
		return "bg-red-100 text-red-800"
	default:
		return "bg-yellow-100 text-yellow-800"
	}
}
