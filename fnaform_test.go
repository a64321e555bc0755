package fnaform_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	fnaform "github.com/goliatone/go-fnaform"
	"github.com/goliatone/go-fnaform/pkg/client"
	"github.com/goliatone/go-fnaform/pkg/testsupport"
)

func TestNewSubmitsToService(t *testing.T) {
	svc := testsupport.NewFakeService(t)
	ctrl, err := fnaform.New(svc.URL(), []client.Option{client.WithHTTPClient(svc.Client())})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := ctrl.HandleChanges(testsupport.SampleValues()); err != nil {
		t.Fatalf("changes: %v", err)
	}
	if err := ctrl.HandleSubmit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	result, ok := ctrl.Result()
	if !ok || result.Result != "Benign" {
		t.Fatalf("unexpected result %+v (ok=%v)", result, ok)
	}

	html, err := fnaform.RenderHTML(context.Background(), ctrl.View())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), "result-card result-benign") {
		t.Fatalf("expected benign result card in page")
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	if _, err := fnaform.New("ftp://example.com", nil); err == nil {
		t.Fatalf("expected error for non-http base URL")
	}
}

func TestEmbeddedFiles(t *testing.T) {
	if _, err := fs.Stat(fnaform.EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("template missing: %v", err)
	}
	if _, err := fs.Stat(fnaform.AssetsFS(), "fnaform.css"); err != nil {
		t.Fatalf("stylesheet missing: %v", err)
	}
}
