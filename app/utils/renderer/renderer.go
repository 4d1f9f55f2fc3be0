package renderer

import (
	"html/template"

	"github.com/unrolled/render"
	"github.com/yogaprasetya/go-storefront/app/helpers"
)

func New() *render.Render {
	return render.New(render.Options{
		Layout:     "layout",
		Extensions: []string{".html"},
		Funcs: []template.FuncMap{
			{
				"formatPrice": helpers.FormatPrice,
				"add":         func(a, b int) int { return a + b },
				"sub":         func(a, b int) int { return a - b },
				"until": func(count int) []int {
					items := make([]int, count)
					for i := 0; i < count; i++ {
						items[i] = i
					}
					return items
				},
			},
		},
	})
}
