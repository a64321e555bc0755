package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-fnaform/pkg/model"
	"github.com/goliatone/go-fnaform/pkg/render"
	rendertemplate "github.com/goliatone/go-fnaform/pkg/render/template"
	"github.com/goliatone/go-fnaform/pkg/render/template/pongo"
)

const (
	// Name identifies the renderer in a render.Registry.
	Name = "vanilla"

	formTemplate      = "templates/form.tmpl"
	defaultStylesheet = "/assets/" + StylesheetName
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
	classes          map[string]string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir layers a directory on disk over the template bundle.
// Templates found under path win; anything missing there is read from the
// bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet sets the href of the page stylesheet. An empty href omits the
// link element.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// WithChromeClass overrides one of the chrome CSS classes.
func WithChromeClass(slot ChromeClass, class string) Option {
	return func(cfg *config) {
		class = strings.TrimSpace(class)
		if class == "" {
			return
		}
		if key, ok := slotKeys[slot]; ok {
			cfg.classes[key] = class
		}
	}
}

// Renderer produces the full HTML page for a FormModel.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
	classes    map[string]string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		stylesheet: defaultStylesheet,
		classes:    defaultClasses(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithBaseDir(cfg.templatesDir),
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:  renderer,
		stylesheet: cfg.stylesheet,
		classes:    cfg.classes,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes the form template. Text that came from the prediction
// service is sanitised before it reaches the template.
func (r *Renderer) Render(_ context.Context, form model.FormModel) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	sections := make([]map[string]any, 0, len(form.Sections))
	for _, section := range form.Sections {
		sections = append(sections, map[string]any{
			"key":    section.Key,
			"title":  section.Title,
			"icon":   sectionIcons[section.Key],
			"fields": section.Fields,
		})
	}

	data := map[string]any{
		"form":       form,
		"sections":   sections,
		"classes":    r.classes,
		"stylesheet": r.stylesheet,
	}
	if form.Result != nil {
		data["result"] = map[string]any{
			"heading":  form.Result.Heading,
			"value":    render.SanitizeHTML(form.Result.Value),
			"message":  render.SanitizeHTML(form.Result.Message),
			"cssClass": form.Result.CSSClass,
		}
	}

	result, err := r.templates.RenderTemplate(formTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
