package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-fnaform/pkg/controller"
	"github.com/goliatone/go-fnaform/pkg/model"
	"github.com/goliatone/go-fnaform/pkg/render"
	"github.com/goliatone/go-fnaform/pkg/renderers/tui"
	"github.com/goliatone/go-fnaform/pkg/renderers/vanilla"
)

const defaultRendererName = vanilla.Name

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRegistry replaces the renderer registry. The default registry holds the
// vanilla HTML renderer and the pretty-text terminal renderer.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// WithDefaultRenderer names the renderer used when a request leaves it empty.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		if name != "" {
			o.defaultRenderer = name
		}
	}
}

// WithVanillaOptions configures the default HTML renderer. Ignored when a
// custom registry is supplied.
func WithVanillaOptions(options ...vanilla.Option) Option {
	return func(o *Orchestrator) {
		o.vanillaOptions = append(o.vanillaOptions, options...)
	}
}

// WithBuilderOptions applies model builder options to every request.
func WithBuilderOptions(options ...model.BuilderOption) Option {
	return func(o *Orchestrator) {
		o.builderOptions = append(o.builderOptions, options...)
	}
}

// Orchestrator turns a controller view into rendered output: it builds the
// FormModel and hands it to the selected renderer.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	vanillaOptions  []vanilla.Option
	builderOptions  []model.BuilderOption
}

// New constructs an Orchestrator, registering the built-in renderers when no
// registry was provided.
func New(options ...Option) (*Orchestrator, error) {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}

	if o.registry == nil {
		o.registry = render.NewRegistry()
		html, err := vanilla.New(o.vanillaOptions...)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: default renderer: %w", err)
		}
		o.registry.MustRegister(html)
		o.registry.MustRegister(tui.New(tui.WithOutputFormat(tui.OutputFormatPrettyText)))
	}
	return o, nil
}

// Request describes one render.
type Request struct {
	// View is the controller snapshot to render.
	View controller.View

	// Renderer names the renderer to use. Empty selects the default.
	Renderer string

	// BuilderOptions are applied after the orchestrator-wide ones.
	BuilderOptions []model.BuilderOption
}

// Output is the rendered payload and its media type.
type Output struct {
	Renderer    string
	ContentType string
	Body        []byte
}

// Generate builds the form model for req.View and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Output, error) {
	if ctx == nil {
		return Output{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Output{}, err
	}

	opts := make([]model.BuilderOption, 0, len(o.builderOptions)+len(req.BuilderOptions))
	opts = append(opts, o.builderOptions...)
	opts = append(opts, req.BuilderOptions...)
	form := model.Build(req.View, opts...)

	body, err := renderer.Render(ctx, form)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return Output{
		Renderer:    renderer.Name(),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	return o.registry.List()
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Get(target)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	renderer, err = o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}
