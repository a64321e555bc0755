package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fnaform/pkg/model"
	"github.com/goliatone/go-fnaform/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, model.FormModel) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(namedRenderer("vanilla"))
	reg.MustRegister(namedRenderer("text"))

	if err := reg.Register(namedRenderer("vanilla")); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := reg.Register(namedRenderer("")); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}

	if diff := cmp.Diff([]string{"text", "vanilla"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("text") || reg.Has("preact") {
		t.Fatalf("unexpected Has results")
	}
	if _, err := reg.Get("preact"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
	got, err := reg.Get("vanilla")
	if err != nil || got.Name() != "vanilla" {
		t.Fatalf("get vanilla: %v %v", got, err)
	}
}
