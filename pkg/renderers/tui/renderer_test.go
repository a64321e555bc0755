package tui

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fnaform/pkg/controller"
	"github.com/goliatone/go-fnaform/pkg/model"
	"github.com/goliatone/go-fnaform/pkg/prediction"
)

func formWithResult(t *testing.T, result prediction.Result) model.FormModel {
	t.Helper()
	ctrl, err := controller.New(prediction.PredictorFunc(func(context.Context, prediction.Payload) (prediction.Result, error) {
		return result, nil
	}))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	if err := ctrl.HandleChange("radius_mean", "14.13"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if err := ctrl.HandleSubmit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	return model.Build(ctrl.View())
}

func TestRendererPrettyText(t *testing.T) {
	form := formWithResult(t, prediction.Result{
		Prediction: prediction.Malignant,
		Result:     "<b>Malignant</b>",
		Message:    "The tumor is classified as Malignant",
	})

	r := New()
	if r.Name() != "tui" || r.ContentType() != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected metadata %s %s", r.Name(), r.ContentType())
	}
	out, err := r.Render(context.Background(), form)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)
	for _, want := range []string{
		"Breast Cancer Detection\n",
		"\nSize Measurements\n",
		"14.13\n",
		"Prediction Result: Malignant\nThe tumor is classified as Malignant\n",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
	if strings.Contains(text, "<b>") {
		t.Fatalf("markup must be stripped")
	}
}

func TestRendererJSON(t *testing.T) {
	form := formWithResult(t, prediction.Result{Prediction: prediction.Benign, Result: "Benign", Message: "ok"})

	r := New(WithOutputFormat(OutputFormatJSON))
	if r.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %s", r.ContentType())
	}
	out, err := r.Render(context.Background(), form)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got snapshot
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Values["radius_mean"] != "14.13" || got.Values["area_mean"] != "" || len(got.Values) != form.FieldCount() {
		t.Fatalf("unexpected values %v", got.Values)
	}
	want := &snapshotResult{Prediction: 0, Result: "Benign", Message: "ok"}
	if diff := cmp.Diff(want, got.Result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestRendererCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Render(ctx, model.FormModel{}); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}
