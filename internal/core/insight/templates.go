package insight

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/osteele/liquid"
)

//go:embed templates/*.liquid
var templateFS embed.FS

// renderer holds the parsed report templates keyed by file name without
// extension.
type renderer struct {
	templates map[string]*liquid.Template
}

func newRenderer() (*renderer, error) {
	engine := liquid.NewEngine()
	files, err := fs.Glob(templateFS, "templates/*.liquid")
	if err != nil {
		return nil, err
	}

	r := &renderer{templates: make(map[string]*liquid.Template, len(files))}
	for _, name := range files {
		src, err := templateFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		tpl, perr := engine.ParseTemplate(src)
		if perr != nil {
			return nil, fmt.Errorf("parse %s: %w", name, perr)
		}
		r.templates[strings.TrimSuffix(path.Base(name), ".liquid")] = tpl
	}
	return r, nil
}

func (r *renderer) render(name string, b liquid.Bindings) (string, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown report template %q", name)
	}
	out, err := tpl.RenderString(b)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(out), nil
}
