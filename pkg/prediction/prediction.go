// Package prediction defines the request/response types exchanged with the
// remote classification service and the Predictor seam the form controller
// depends on.
package prediction

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrValueRequired is returned by ValidateValue for blank input.
	ErrValueRequired = errors.New("required")
	// ErrValueNotNumber is returned by ValidateValue for anything that is not a
	// finite decimal number.
	ErrValueNotNumber = errors.New("must be a number")
)

// decimalPattern is the grammar of an HTML number input: optional minus,
// decimal digits with an optional fraction, optional exponent. NaN, Inf and
// hex floats are not numbers here even though strconv accepts them.
var decimalPattern = regexp.MustCompile(`^-?(?:[0-9]+(?:\.[0-9]+)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

const (
	// Benign is the prediction code for a benign classification.
	Benign = 0
	// Malignant is the prediction code for a malignant classification.
	Malignant = 1
)

// Result mirrors the service response body.
type Result struct {
	Prediction int    `json:"prediction"`
	Result     string `json:"result"`
	Message    string `json:"message"`
}

// IsMalignant reports whether the service flagged the sample as malignant.
func (r Result) IsMalignant() bool {
	return r.Prediction == Malignant
}

// Payload maps field ids to parsed measurements. Values that failed to parse
// are NaN and serialise as JSON null so the service decides how to reject them.
type Payload map[string]float64

// MarshalJSON encodes non-finite values as null; encoding/json would otherwise
// refuse the whole payload.
func (p Payload) MarshalJSON() ([]byte, error) {
	out := make(map[string]*float64, len(p))
	for key, value := range p {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			out[key] = nil
			continue
		}
		v := value
		out[key] = &v
	}
	return json.Marshal(out)
}

// ValidateValue reports whether raw, ignoring surrounding whitespace, is a
// finite decimal number.
func ValidateValue(raw string) error {
	_, err := parseDecimal(raw)
	return err
}

// ParseValue converts raw user input into a float. Surrounding whitespace is
// ignored; anything ValidateValue rejects yields NaN.
func ParseValue(raw string) float64 {
	v, err := parseDecimal(raw)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseDecimal(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, ErrValueRequired
	}
	if !decimalPattern.MatchString(trimmed) {
		return 0, ErrValueNotNumber
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, ErrValueNotNumber
	}
	return v, nil
}

// NewPayload coerces every raw value into a Payload entry.
func NewPayload(values map[string]string) Payload {
	out := make(Payload, len(values))
	for key, raw := range values {
		out[key] = ParseValue(raw)
	}
	return out
}

// Predictor classifies a payload. Implementations must be safe for concurrent
// use.
type Predictor interface {
	Predict(ctx context.Context, payload Payload) (Result, error)
}

// PredictorFunc adapts a function into a Predictor.
type PredictorFunc func(ctx context.Context, payload Payload) (Result, error)

// Predict calls f.
func (f PredictorFunc) Predict(ctx context.Context, payload Payload) (Result, error) {
	return f(ctx, payload)
}
