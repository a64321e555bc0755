// Package fnaform is the top-level entry point: it binds the measurement form
// controller to the HTTP prediction client and renders the result.
package fnaform

import (
	"context"

	"github.com/goliatone/go-fnaform/pkg/client"
	"github.com/goliatone/go-fnaform/pkg/controller"
	"github.com/goliatone/go-fnaform/pkg/orchestrator"
	"github.com/goliatone/go-fnaform/pkg/prediction"
	"github.com/goliatone/go-fnaform/pkg/registry"
)

// Controller aliases controller.Controller.
type Controller = controller.Controller

// View aliases controller.View.
type View = controller.View

// Result aliases prediction.Result.
type Result = prediction.Result

// FieldDefinition aliases registry.FieldDefinition.
type FieldDefinition = registry.FieldDefinition

// New builds a controller that submits to the prediction service at baseURL.
// An empty baseURL selects client.DefaultBaseURL.
func New(baseURL string, clientOptions []client.Option, options ...controller.Option) (*Controller, error) {
	if baseURL == "" {
		baseURL = client.DefaultBaseURL
	}
	c, err := client.New(baseURL, clientOptions...)
	if err != nil {
		return nil, err
	}
	return controller.New(c, options...)
}

// RenderHTML renders view as a standalone HTML page.
func RenderHTML(ctx context.Context, view View, options ...orchestrator.Option) ([]byte, error) {
	o, err := orchestrator.New(options...)
	if err != nil {
		return nil, err
	}
	out, err := o.Generate(ctx, orchestrator.Request{View: view})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
