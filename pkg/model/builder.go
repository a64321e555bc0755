package model

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-fnaform/pkg/controller"
)

const (
	DefaultTitle        = "Breast Cancer Detection"
	DefaultSubtitle     = "Enter cell nucleus measurements from FNA biopsy analysis"
	DefaultRequiredNote = "All fields are required"
	DefaultFooter       = "This tool is intended for research and educational purposes only. Always consult a qualified healthcare professional for medical diagnosis."
	ResultHeading       = "Prediction Result"

	CSSClassBenign    = "result-benign"
	CSSClassMalignant = "result-malignant"
)

// BuilderOption configures Build.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	action   string
	method   string
	title    string
	subtitle string
	metadata map[string]string
}

// WithAction sets the form action path.
func WithAction(action string) BuilderOption {
	return func(opts *builderOptions) {
		if trimmed := strings.TrimSpace(action); trimmed != "" {
			opts.action = trimmed
		}
	}
}

// WithMethod overrides the form method (POST by default).
func WithMethod(method string) BuilderOption {
	return func(opts *builderOptions) {
		if trimmed := strings.TrimSpace(method); trimmed != "" {
			opts.method = strings.ToUpper(trimmed)
		}
	}
}

// WithTitle replaces the page heading and subtitle. Empty values keep the
// defaults.
func WithTitle(title, subtitle string) BuilderOption {
	return func(opts *builderOptions) {
		if title != "" {
			opts.title = title
		}
		if subtitle != "" {
			opts.subtitle = subtitle
		}
	}
}

// WithMetadata attaches renderer hints. Later keys win.
func WithMetadata(metadata map[string]string) BuilderOption {
	return func(opts *builderOptions) {
		for key, value := range metadata {
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			if opts.metadata == nil {
				opts.metadata = make(map[string]string, len(metadata))
			}
			opts.metadata[key] = value
		}
	}
}

// Build converts a controller view into a FormModel.
func Build(view controller.View, options ...BuilderOption) FormModel {
	opts := builderOptions{
		action:   "/",
		method:   http.MethodPost,
		title:    DefaultTitle,
		subtitle: DefaultSubtitle,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	form := FormModel{
		Title:    opts.title,
		Subtitle: opts.subtitle,
		Action:   opts.action,
		Method:   opts.method,
		Sections: make([]Section, 0, len(view.Sections)),
		Actions: Actions{
			SubmitLabel:    view.SubmitLabel,
			SubmitDisabled: view.SubmitDisabled,
			ResetLabel:     view.ResetLabel,
			RequiredNote:   DefaultRequiredNote,
		},
		Loading:  view.Loading,
		Error:    view.Error,
		Footer:   DefaultFooter,
		Metadata: opts.metadata,
	}

	for _, section := range view.Sections {
		built := Section{
			Key:    section.Key,
			Title:  section.Title,
			Fields: make([]Field, 0, len(section.Fields)),
		}
		for _, def := range section.Fields {
			built.Fields = append(built.Fields, Field{
				Name:        def.ID,
				Type:        FieldTypeNumber,
				Label:       def.Label,
				Placeholder: def.Placeholder,
				Value:       view.Values[def.ID],
				Required:    true,
				Step:        "any",
			})
		}
		form.Sections = append(form.Sections, built)
	}

	if view.Result != nil && view.Error == "" {
		card := &ResultCard{
			Heading:    ResultHeading,
			Prediction: view.Result.Prediction,
			Value:      view.Result.Result,
			Message:    view.Result.Message,
			CSSClass:   CSSClassBenign,
		}
		if view.Result.IsMalignant() {
			card.CSSClass = CSSClassMalignant
		}
		form.Result = card
	}

	return form
}
