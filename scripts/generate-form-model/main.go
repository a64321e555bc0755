package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-fnaform/pkg/controller"
	"github.com/goliatone/go-fnaform/pkg/model"
	"github.com/goliatone/go-fnaform/pkg/orchestrator"
	"github.com/goliatone/go-fnaform/pkg/prediction"
	"github.com/goliatone/go-fnaform/pkg/render"
)

const snapshotRendererName = "form-model-snapshot"

// snapshotRenderer writes the FormModel as JSON so template authors can see
// exactly what the page template receives.
type snapshotRenderer struct {
	path string
}

func (r *snapshotRenderer) Name() string {
	return snapshotRendererName
}

func (r *snapshotRenderer) ContentType() string {
	return "application/json"
}

func (r *snapshotRenderer) Render(_ context.Context, form model.FormModel) ([]byte, error) {
	payload, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(r.path, payload, 0o644); err != nil {
		return nil, err
	}
	return payload, nil
}

func main() {
	var (
		outputPath = flag.String("output", "form_model.json", "output path for the serialized form model")
		state      = flag.String("state", "empty", "controller state to snapshot: empty, benign, malignant or error")
	)
	flag.Parse()

	ctx := context.Background()

	view, err := viewFor(ctx, *state)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	registry := render.NewRegistry()
	registry.MustRegister(&snapshotRenderer{path: *outputPath})

	generator, err := orchestrator.New(orchestrator.WithRegistry(registry))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if _, err := generator.Generate(ctx, orchestrator.Request{View: view, Renderer: snapshotRendererName}); err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("form model written to %s\n", *outputPath)
}

func viewFor(ctx context.Context, state string) (controller.View, error) {
	var predictor prediction.PredictorFunc
	switch state {
	case "empty", "benign":
		predictor = func(context.Context, prediction.Payload) (prediction.Result, error) {
			return prediction.Result{Prediction: prediction.Benign, Result: "Benign", Message: "The tumor is classified as Benign"}, nil
		}
	case "malignant":
		predictor = func(context.Context, prediction.Payload) (prediction.Result, error) {
			return prediction.Result{Prediction: prediction.Malignant, Result: "Malignant", Message: "The tumor is classified as Malignant"}, nil
		}
	case "error":
		predictor = func(context.Context, prediction.Payload) (prediction.Result, error) {
			return prediction.Result{}, fmt.Errorf("snapshot: simulated outage")
		}
	default:
		return controller.View{}, fmt.Errorf("unknown state %q", state)
	}

	ctrl, err := controller.New(predictor)
	if err != nil {
		return controller.View{}, err
	}
	if state != "empty" {
		if err := ctrl.HandleSubmit(ctx); err != nil {
			return controller.View{}, err
		}
	}
	return ctrl.View(), nil
}
