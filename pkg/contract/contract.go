package contract

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed predict.openapi.yaml
var document []byte

const (
	predictPath = "/predict"
	healthPath  = "/health"
	jsonMedia   = "application/json"
)

// Contract is the parsed OpenAPI description of the prediction service.
type Contract struct {
	spec             *openapi3.T
	requestFields    []string
	requiredFields   []string
	responseFields   []string
	predictOperation string
}

// Raw returns a copy of the embedded OpenAPI YAML.
func Raw() []byte {
	return append([]byte(nil), document...)
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Contract, error) {
	return Parse(ctx, document)
}

// Parse builds a Contract from an arbitrary OpenAPI payload that exposes the
// same /predict operation.
func Parse(ctx context.Context, raw []byte) (*Contract, error) {
	if len(raw) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}
	if spec.Paths == nil {
		return nil, errors.New("contract: document does not contain any paths")
	}

	item := spec.Paths.Map()[predictPath]
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("contract: POST %s is not described", predictPath)
	}

	request, err := requestSchema(item.Post)
	if err != nil {
		return nil, err
	}
	response, err := successSchema(item.Post)
	if err != nil {
		return nil, err
	}

	return &Contract{
		spec:             spec,
		requestFields:    propertyNames(request),
		requiredFields:   sortedCopy(request.Required),
		responseFields:   propertyNames(response),
		predictOperation: item.Post.OperationID,
	}, nil
}

// Title reports the document title.
func (c *Contract) Title() string {
	if c == nil || c.spec == nil || c.spec.Info == nil {
		return ""
	}
	return c.spec.Info.Title
}

// PredictOperationID returns the operationId of POST /predict.
func (c *Contract) PredictOperationID() string {
	return c.predictOperation
}

// RequestFields lists the /predict request properties, sorted.
func (c *Contract) RequestFields() []string {
	return append([]string(nil), c.requestFields...)
}

// RequiredFields lists the request properties marked required, sorted.
func (c *Contract) RequiredFields() []string {
	return append([]string(nil), c.requiredFields...)
}

// ResponseFields lists the properties of the 200 response body, sorted.
func (c *Contract) ResponseFields() []string {
	return append([]string(nil), c.responseFields...)
}

// HasHealth reports whether GET /health is described.
func (c *Contract) HasHealth() bool {
	item := c.spec.Paths.Map()[healthPath]
	return item != nil && item.Get != nil
}

// MismatchError lists the differences between a set of form ids and the
// request schema.
type MismatchError struct {
	Missing    []string
	Unexpected []string
}

func (e *MismatchError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing from form: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unexpected) > 0 {
		parts = append(parts, "not accepted by service: "+strings.Join(e.Unexpected, ", "))
	}
	return "contract: field mismatch (" + strings.Join(parts, "; ") + ")"
}

// Verify checks that ids covers exactly the required request properties and
// nothing the service does not accept.
func (c *Contract) Verify(ids []string) error {
	given := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		given[id] = struct{}{}
	}
	accepted := make(map[string]struct{}, len(c.requestFields))
	for _, name := range c.requestFields {
		accepted[name] = struct{}{}
	}

	mismatch := &MismatchError{}
	for _, name := range c.requiredFields {
		if _, ok := given[name]; !ok {
			mismatch.Missing = append(mismatch.Missing, name)
		}
	}
	for _, id := range sortedCopy(ids) {
		if _, ok := accepted[id]; !ok {
			mismatch.Unexpected = append(mismatch.Unexpected, id)
		}
	}
	if len(mismatch.Missing) == 0 && len(mismatch.Unexpected) == 0 {
		return nil
	}
	return mismatch
}

func requestSchema(op *openapi3.Operation) (*openapi3.Schema, error) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, fmt.Errorf("contract: POST %s has no request body", predictPath)
	}
	media, ok := op.RequestBody.Value.Content[jsonMedia]
	if !ok || media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("contract: POST %s request is not %s", predictPath, jsonMedia)
	}
	return media.Schema.Value, nil
}

func successSchema(op *openapi3.Operation) (*openapi3.Schema, error) {
	if op.Responses == nil {
		return nil, fmt.Errorf("contract: POST %s has no responses", predictPath)
	}
	ref := op.Responses.Map()["200"]
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("contract: POST %s has no 200 response", predictPath)
	}
	media, ok := ref.Value.Content[jsonMedia]
	if !ok || media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, fmt.Errorf("contract: POST %s 200 response is not %s", predictPath, jsonMedia)
	}
	return media.Schema.Value, nil
}

func propertyNames(schema *openapi3.Schema) []string {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
