package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fnaform/pkg/controller"
	"github.com/goliatone/go-fnaform/pkg/model"
	"github.com/goliatone/go-fnaform/pkg/orchestrator"
	"github.com/goliatone/go-fnaform/pkg/prediction"
	"github.com/goliatone/go-fnaform/pkg/render"
)

type recordingRenderer struct {
	forms []model.FormModel
}

func (r *recordingRenderer) Name() string        { return "recording" }
func (r *recordingRenderer) ContentType() string { return "text/x-recording" }
func (r *recordingRenderer) Render(_ context.Context, form model.FormModel) ([]byte, error) {
	r.forms = append(r.forms, form)
	return []byte(form.Title), nil
}

func emptyView(t *testing.T) controller.View {
	t.Helper()
	ctrl, err := controller.New(prediction.PredictorFunc(func(context.Context, prediction.Payload) (prediction.Result, error) {
		return prediction.Result{}, nil
	}))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl.View()
}

func TestDefaultRenderers(t *testing.T) {
	o, err := orchestrator.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if diff := cmp.Diff([]string{"tui", "vanilla"}, o.Renderers()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}

	out, err := o.Generate(context.Background(), orchestrator.Request{View: emptyView(t)})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out.Renderer != "vanilla" || out.ContentType != "text/html; charset=utf-8" {
		t.Fatalf("unexpected default output %s %s", out.Renderer, out.ContentType)
	}
	if !strings.Contains(string(out.Body), "<form") {
		t.Fatalf("expected HTML form")
	}

	text, err := o.Generate(context.Background(), orchestrator.Request{View: emptyView(t), Renderer: "tui"})
	if err != nil {
		t.Fatalf("generate text: %v", err)
	}
	if !strings.HasPrefix(string(text.Body), "Breast Cancer Detection\n") {
		t.Fatalf("unexpected text output %q", text.Body)
	}

	if _, err := o.Generate(context.Background(), orchestrator.Request{View: emptyView(t), Renderer: "preact"}); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestBuilderOptionsApplyInOrder(t *testing.T) {
	rec := &recordingRenderer{}
	reg := render.NewRegistry()
	reg.MustRegister(rec)

	o, err := orchestrator.New(
		orchestrator.WithRegistry(reg),
		orchestrator.WithDefaultRenderer("missing"),
		orchestrator.WithBuilderOptions(model.WithTitle("Global", ""), model.WithAction("/form")),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := o.Generate(context.Background(), orchestrator.Request{
		View:           emptyView(t),
		BuilderOptions: []model.BuilderOption{model.WithTitle("Per request", "")},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out.Body) != "Per request" || out.Renderer != "recording" {
		t.Fatalf("unexpected output %+v", out)
	}
	if rec.forms[0].Action != "/form" {
		t.Fatalf("expected global builder option to apply, got action %q", rec.forms[0].Action)
	}
}

func TestGenerateRequiresLiveContext(t *testing.T) {
	o, err := orchestrator.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := o.Generate(ctx, orchestrator.Request{View: emptyView(t)}); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}
