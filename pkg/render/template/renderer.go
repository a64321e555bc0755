package template

import (
	"io"
)

// TemplateRenderer executes the page templates for the vanilla renderer. The
// pongo engine is the only shipped implementation; callers can swap it in
// through vanilla.WithTemplateRenderer. Data is addressed by json tag names and
// out, when given, receives a copy of the rendered page.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
