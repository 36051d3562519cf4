// renderer/renderer.go
package renderer

import (
	"html/template"

	"github.com/rmaulana/go-catalog/app/utils/format"
	"github.com/unrolled/render"
)

func New(templateDir string) *render.Render {
	return render.New(render.Options{
		Directory:  templateDir,
		Layout:     "layout",
		Extensions: []string{".html"},
		Funcs: []template.FuncMap{
			{
				"money": format.Money,
				"add":   func(a, b int) int { return a + b },
				"sub":   func(a, b int) int { return a - b },
			},
		},
	})
}
