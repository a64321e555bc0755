package testsupport

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fnaform/pkg/prediction"
)

// ServiceOption configures a FakeService.
type ServiceOption func(*FakeService)

// WithStatus makes /predict answer with code and an empty body when code is
// not 2xx.
func WithStatus(code int) ServiceOption {
	return func(s *FakeService) {
		s.status = code
	}
}

// WithResult sets the body returned by a successful /predict call.
func WithResult(result prediction.Result) ServiceOption {
	return func(s *FakeService) {
		s.result = result
	}
}

// WithRawBody replaces the /predict body with raw bytes, for decode failures.
func WithRawBody(body string) ServiceOption {
	return func(s *FakeService) {
		s.rawBody = body
	}
}

// WithGate blocks every /predict call until gate is closed. Started receives
// one value per request once the handler is parked on the gate.
func WithGate(gate <-chan struct{}, started chan<- struct{}) ServiceOption {
	return func(s *FakeService) {
		s.gate = gate
		s.started = started
	}
}

// WithHealthStatus sets the status string reported by /health.
func WithHealthStatus(status string) ServiceOption {
	return func(s *FakeService) {
		s.health = status
	}
}

// FakeService is an in-process stand-in for the prediction backend. It records
// every decoded /predict payload; null members decode as nil pointers.
type FakeService struct {
	server *httptest.Server

	status  int
	result  prediction.Result
	rawBody string
	health  string
	gate    <-chan struct{}
	started chan<- struct{}

	mu       sync.Mutex
	requests []RecordedRequest
}

// RecordedRequest captures one /predict call.
type RecordedRequest struct {
	ContentType string
	Payload     map[string]*float64
}

// NewFakeService starts the fake and registers its shutdown with t.Cleanup.
func NewFakeService(t *testing.T, options ...ServiceOption) *FakeService {
	t.Helper()

	s := &FakeService{
		status: http.StatusOK,
		result: prediction.Result{
			Prediction: prediction.Benign,
			Result:     "Benign",
			Message:    "The tumor is classified as Benign",
		},
		health: "ok",
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /predict", s.handlePredict)
	mux.HandleFunc("GET /health", s.handleHealth)
	s.server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// URL returns the base URL of the fake.
func (s *FakeService) URL() string {
	return s.server.URL
}

// Client returns an HTTP client bound to the fake's transport.
func (s *FakeService) Client() *http.Client {
	return s.server.Client()
}

// Close stops the server and drops idle keep-alive connections.
func (s *FakeService) Close() {
	s.server.CloseClientConnections()
	s.server.Close()
}

// Requests returns a copy of the recorded /predict calls.
func (s *FakeService) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

func (s *FakeService) handlePredict(w http.ResponseWriter, r *http.Request) {
	var payload map[string]*float64
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusUnprocessableEntity)
		return
	}
	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		ContentType: r.Header.Get("Content-Type"),
		Payload:     payload,
	})
	s.mu.Unlock()

	if s.gate != nil {
		if s.started != nil {
			s.started <- struct{}{}
		}
		select {
		case <-s.gate:
		case <-r.Context().Done():
			return
		}
	}

	if s.status < 200 || s.status >= 300 {
		w.WriteHeader(s.status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if s.rawBody != "" {
		_, _ = w.Write([]byte(s.rawBody))
		return
	}
	_ = json.NewEncoder(w).Encode(s.result)
}

func (s *FakeService) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": s.health})
}

// ClosedURL returns the base URL of a listener that has already been closed,
// so dialing it fails with connection refused.
func ClosedURL(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	if err := ln.Close(); err != nil {
		t.Fatalf("close listener: %v", err)
	}
	return "http://" + addr
}

// SampleValues returns the placeholder measurements as raw form input.
func SampleValues() map[string]string {
	return map[string]string{
		"radius_mean":            "14.13",
		"perimeter_mean":         "91.97",
		"area_mean":              "654.89",
		"smoothness_mean":        "0.0964",
		"compactness_mean":       "0.1041",
		"concavity_mean":         "0.0869",
		"concave_points_mean":    "0.0489",
		"texture_mean":           "19.29",
		"symmetry_mean":          "0.1812",
		"fractal_dimension_mean": "0.0628",
	}
}

// Diff reports a cmp diff between want and got.
func Diff(want, got any) string {
	return cmp.Diff(want, got)
}
