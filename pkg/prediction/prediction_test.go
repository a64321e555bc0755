package prediction_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fnaform/pkg/prediction"
)

func TestParseValue(t *testing.T) {
	cases := map[string]float64{
		"14.13":    14.13,
		" 0.0489 ": 0.0489,
		"1e2":      100,
		"-3":       -3,
	}
	for raw, want := range cases {
		if got := prediction.ParseValue(raw); got != want {
			t.Fatalf("ParseValue(%q) = %v, want %v", raw, got, want)
		}
	}

	for _, raw := range []string{"", "   ", "abc", "12,5", "1e999", "NaN", "Inf", "-infinity", "0x1p-2", "1_000", "+3"} {
		if got := prediction.ParseValue(raw); !math.IsNaN(got) {
			t.Fatalf("ParseValue(%q) = %v, want NaN", raw, got)
		}
	}
}

func TestValidateValue(t *testing.T) {
	cases := map[string]error{
		"14.13":  nil,
		".5":     nil,
		"-2E-3":  nil,
		" ":      prediction.ErrValueRequired,
		"NaN":    prediction.ErrValueNotNumber,
		"Inf":    prediction.ErrValueNotNumber,
		"0x1p-2": prediction.ErrValueNotNumber,
		"1e999":  prediction.ErrValueNotNumber,
		"12abc":  prediction.ErrValueNotNumber,
		"1.2.3":  prediction.ErrValueNotNumber,
	}
	for raw, want := range cases {
		if got := prediction.ValidateValue(raw); !errors.Is(got, want) {
			t.Fatalf("ValidateValue(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestPayloadMarshalNonFiniteAsNull(t *testing.T) {
	payload := prediction.NewPayload(map[string]string{
		"radius_mean": "14.13",
		"area_mean":   "oops",
	})

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]*float64
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["area_mean"] != nil {
		t.Fatalf("expected area_mean to be null, got %v", *decoded["area_mean"])
	}
	if decoded["radius_mean"] == nil || *decoded["radius_mean"] != 14.13 {
		t.Fatalf("unexpected radius_mean: %v", decoded["radius_mean"])
	}
	if diff := cmp.Diff(`{"area_mean":null,"radius_mean":14.13}`, string(data)); diff != "" {
		t.Fatalf("payload json mismatch (-want +got):\n%s", diff)
	}
}

func TestResultIsMalignant(t *testing.T) {
	if (prediction.Result{Prediction: prediction.Benign}).IsMalignant() {
		t.Fatalf("benign result reported as malignant")
	}
	if !(prediction.Result{Prediction: prediction.Malignant}).IsMalignant() {
		t.Fatalf("malignant result not detected")
	}
}
