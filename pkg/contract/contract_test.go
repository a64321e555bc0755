package contract_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fnaform/pkg/contract"
	"github.com/goliatone/go-fnaform/pkg/registry"
)

func load(t *testing.T) *contract.Contract {
	t.Helper()
	c, err := contract.Load(context.Background())
	if err != nil {
		t.Fatalf("load contract: %v", err)
	}
	return c
}

func TestRegistryMatchesRequestSchema(t *testing.T) {
	c := load(t)
	if err := c.Verify(registry.IDs()); err != nil {
		t.Fatalf("registry does not match contract: %v", err)
	}

	ids := registry.IDs()
	sort.Strings(ids)
	if diff := cmp.Diff(ids, c.RequestFields()); diff != "" {
		t.Fatalf("request fields mismatch (-registry +contract):\n%s", diff)
	}
	if diff := cmp.Diff(ids, c.RequiredFields()); diff != "" {
		t.Fatalf("required fields mismatch (-registry +contract):\n%s", diff)
	}
}

func TestResponseFields(t *testing.T) {
	c := load(t)
	want := []string{"message", "prediction", "result"}
	if diff := cmp.Diff(want, c.ResponseFields()); diff != "" {
		t.Fatalf("response fields mismatch (-want +got):\n%s", diff)
	}
	if c.PredictOperationID() != "predict" {
		t.Fatalf("unexpected operation id %q", c.PredictOperationID())
	}
	if !c.HasHealth() {
		t.Fatalf("expected /health to be described")
	}
}

func TestVerifyReportsMismatch(t *testing.T) {
	c := load(t)
	ids := append(registry.IDs()[1:], "concave points_mean")

	err := c.Verify(ids)
	var mismatch *contract.MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if diff := cmp.Diff([]string{"radius_mean"}, mismatch.Missing); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"concave points_mean"}, mismatch.Unexpected); diff != "" {
		t.Fatalf("unexpected mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsDocumentWithoutPredict(t *testing.T) {
	doc := []byte(`openapi: 3.0.3
info: {title: other, version: "1"}
paths:
  /health:
    get:
      responses:
        '200': {description: ok}
`)
	if _, err := contract.Parse(context.Background(), doc); err == nil {
		t.Fatalf("expected error for document without /predict")
	}
	if _, err := contract.Parse(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestRawIsCopy(t *testing.T) {
	raw := contract.Raw()
	raw[0] = 'X'
	if contract.Raw()[0] == 'X' {
		t.Fatalf("Raw leaked internal buffer")
	}
}
