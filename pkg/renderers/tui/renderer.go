package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-fnaform/pkg/model"
	"github.com/goliatone/go-fnaform/pkg/render"
)

// Name identifies the renderer in a render.Registry.
const Name = "tui"

// Renderer implements render.Renderer for terminals: a plain-text summary of
// the form or a JSON snapshot of its values and outcome.
type Renderer struct {
	outputFormat OutputFormat
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a renderer. Pretty text is the default format.
func New(options ...Option) *Renderer {
	cfg := config{outputFormat: OutputFormatPrettyText}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Renderer{outputFormat: cfg.outputFormat}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatJSON {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

// Render serializes form in the configured format.
func (r *Renderer) Render(ctx context.Context, form model.FormModel) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch r.outputFormat {
	case OutputFormatJSON:
		return renderJSON(form)
	case OutputFormatPrettyText:
		return []byte(renderText(form)), nil
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
}

type snapshot struct {
	Values  map[string]string `json:"values"`
	Loading bool              `json:"loading"`
	Result  *snapshotResult   `json:"result,omitempty"`
	Error   string            `json:"error,omitempty"`
}

type snapshotResult struct {
	Prediction int    `json:"prediction"`
	Result     string `json:"result"`
	Message    string `json:"message"`
}

func renderJSON(form model.FormModel) ([]byte, error) {
	snap := snapshot{
		Values:  make(map[string]string, form.FieldCount()),
		Loading: form.Loading,
		Error:   form.Error,
	}
	for _, section := range form.Sections {
		for _, field := range section.Fields {
			snap.Values[field.Name] = field.Value
		}
	}
	if form.Result != nil {
		snap.Result = &snapshotResult{
			Prediction: form.Result.Prediction,
			Result:     render.PlainText(form.Result.Value),
			Message:    render.PlainText(form.Result.Message),
		}
	}
	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: encode snapshot: %w", err)
	}
	return append(out, '\n'), nil
}

func renderText(form model.FormModel) string {
	var b strings.Builder
	b.WriteString(form.Title)
	b.WriteByte('\n')
	if form.Subtitle != "" {
		b.WriteString(form.Subtitle)
		b.WriteByte('\n')
	}

	width := 0
	for _, section := range form.Sections {
		for _, field := range section.Fields {
			width = max(width, len(field.Label))
		}
	}

	for _, section := range form.Sections {
		fmt.Fprintf(&b, "\n%s\n", section.Title)
		for _, field := range section.Fields {
			value := field.Value
			if strings.TrimSpace(value) == "" {
				value = "-"
			}
			fmt.Fprintf(&b, "  %-*s  %s\n", width, field.Label, value)
		}
	}

	b.WriteString(outcomeText(form))
	return b.String()
}

// outcomeText renders the status block shown under the fields, or "" when
// there is nothing to report.
func outcomeText(form model.FormModel) string {
	switch {
	case form.Loading:
		return "\n" + form.Actions.SubmitLabel + "\n"
	case form.Error != "":
		return "\nError: " + form.Error + "\n"
	case form.Result != nil:
		var b strings.Builder
		fmt.Fprintf(&b, "\n%s: %s\n", form.Result.Heading, render.PlainText(form.Result.Value))
		if msg := render.PlainText(form.Result.Message); msg != "" {
			b.WriteString(msg)
			b.WriteByte('\n')
		}
		return b.String()
	default:
		return ""
	}
}
