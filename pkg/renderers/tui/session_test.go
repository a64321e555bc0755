package tui

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fnaform/pkg/controller"
	"github.com/goliatone/go-fnaform/pkg/prediction"
	"github.com/goliatone/go-fnaform/pkg/registry"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	inputCfgs    []InputConfig
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.inputCfgs = append(s.inputCfgs, cfg)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

var sampleInputs = []string{
	"14.13", "91.97", "654.89",
	"0.0964", "0.1041", "0.0869", "0.0489",
	"19.29", "0.1812", "0.0628",
}

type recordingPredictor struct {
	payloads []prediction.Payload
	result   prediction.Result
	err      error
}

func (p *recordingPredictor) Predict(_ context.Context, payload prediction.Payload) (prediction.Result, error) {
	p.payloads = append(p.payloads, payload)
	return p.result, p.err
}

func newSession(t *testing.T, predictor prediction.Predictor, driver *stubDriver) (*Session, *controller.Controller) {
	t.Helper()
	ctrl, err := controller.New(predictor)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	session, err := NewSession(ctrl, WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session, ctrl
}

func TestSessionCollectsAndSubmits(t *testing.T) {
	predictor := &recordingPredictor{result: prediction.Result{
		Prediction: prediction.Benign,
		Result:     "Benign",
		Message:    "The tumor is classified as Benign",
	}}
	driver := &stubDriver{
		inputs:    sampleInputs,
		selectIdx: []int{0, 3},
	}
	session, ctrl := newSession(t, predictor, driver)

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(predictor.payloads) != 1 {
		t.Fatalf("expected one prediction request, got %d", len(predictor.payloads))
	}
	if got := predictor.payloads[0]["radius_mean"]; got != 14.13 {
		t.Fatalf("expected radius 14.13, got %v", got)
	}
	if len(predictor.payloads[0]) != len(registry.IDs()) {
		t.Fatalf("payload missing fields: %v", predictor.payloads[0])
	}

	var labels []string
	for _, cfg := range driver.inputCfgs {
		labels = append(labels, cfg.Message)
	}
	var want []string
	for _, def := range registry.Fields() {
		want = append(want, def.Label)
	}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{"Prediction Result: Benign\nThe tumor is classified as Benign"}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if _, ok := ctrl.Result(); !ok {
		t.Fatalf("expected controller to hold the result")
	}
}

func TestSessionRepromptsInvalidInput(t *testing.T) {
	inputs := []string{"", "abc", "NaN", "14.13", "Inf", "0x1p-2", "91.97"}
	inputs = append(inputs, sampleInputs[2:]...)
	predictor := &recordingPredictor{}
	driver := &stubDriver{inputs: inputs, selectIdx: []int{0, 3}}
	session, ctrl := newSession(t, predictor, driver)

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{
		"! Invalid radius_mean: required",
		"! Invalid radius_mean: must be a number",
		"! Invalid radius_mean: must be a number",
		"! Invalid perimeter_mean: must be a number",
		"! Invalid perimeter_mean: must be a number",
		"Prediction Result:",
	}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if v, _ := ctrl.Value("radius_mean"); v != "14.13" {
		t.Fatalf("expected radius to be stored, got %q", v)
	}

	if len(predictor.payloads) != 1 {
		t.Fatalf("expected one prediction request, got %d", len(predictor.payloads))
	}
	for id, value := range predictor.payloads[0] {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			t.Fatalf("field %s reached the service as %v", id, value)
		}
	}
	if got := predictor.payloads[0]["perimeter_mean"]; got != 91.97 {
		t.Fatalf("expected perimeter 91.97, got %v", got)
	}

	for _, cfg := range driver.inputCfgs {
		if cfg.Validator == nil {
			t.Fatalf("prompt %q has no validator", cfg.Message)
		}
		if err := cfg.Validator("Inf"); err == nil {
			t.Fatalf("prompt %q validator accepted Inf", cfg.Message)
		}
	}
}

func TestSessionSubmitFailureShowsFixedMessage(t *testing.T) {
	driver := &stubDriver{inputs: sampleInputs, selectIdx: []int{0, 3}}
	session, _ := newSession(t, &recordingPredictor{err: errors.New("connection refused")}, driver)

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{"! " + controller.ErrorMessage}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionEditAndClear(t *testing.T) {
	inputs := append(append([]string{}, sampleInputs...), "20.5")
	driver := &stubDriver{
		inputs:    inputs,
		selectIdx: []int{1, 0, 2, 2, 3},
		confirm:   []bool{false, true},
	}
	session, ctrl := newSession(t, &recordingPredictor{}, driver)

	// edit radius, cancel clear, confirm clear, quit
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff(registry.EmptyValues(), ctrl.Values()); diff != "" {
		t.Fatalf("expected cleared values (-want +got):\n%s", diff)
	}
	if got := driver.inputCfgs[len(driver.inputCfgs)-1]; got.Message != "Radius (Mean)" {
		t.Fatalf("expected edit to target the first field, got %q", got.Message)
	}
	if diff := cmp.Diff([]string{"All fields cleared."}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionAbort(t *testing.T) {
	driver := &stubDriver{}
	session, _ := newSession(t, &recordingPredictor{}, driver)
	if err := session.Run(context.Background()); err == nil {
		t.Fatalf("expected driver error to propagate")
	}
	if _, err := NewSession(nil); err == nil {
		t.Fatalf("expected nil controller to be rejected")
	}
	if !strings.HasPrefix(ErrAborted.Error(), "tui:") {
		t.Fatalf("unexpected sentinel text %q", ErrAborted)
	}
}
