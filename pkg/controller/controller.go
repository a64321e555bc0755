package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-fnaform/pkg/prediction"
	"github.com/goliatone/go-fnaform/pkg/registry"
)

const (
	// ErrorMessage is the only failure text ever shown to the user.
	ErrorMessage = "Failed to get prediction. Make sure the backend server is running."
	// SubmitLabel is the idle caption of the submit control.
	SubmitLabel = "Run Analysis"
	// LoadingLabel replaces SubmitLabel while a request is pending.
	LoadingLabel = "Analyzing..."
	// ResetLabel is the caption of the clear control.
	ResetLabel = "Clear"
)

var (
	// ErrUnknownField is returned when a change targets an id outside the registry.
	ErrUnknownField = errors.New("controller: unknown field")
	// ErrSubmitInFlight is returned when a submit arrives while one is pending.
	ErrSubmitInFlight = errors.New("controller: submission already in progress")
)

// Controller owns the form state: raw values, the loading flag and the
// mutually exclusive result/error pair.
type Controller struct {
	mu        sync.Mutex
	predictor prediction.Predictor
	logger    *zap.Logger

	values  map[string]string
	loading bool
	result  *prediction.Result
	errMsg  string
}

// New constructs a controller with every registry field set to "".
func New(predictor prediction.Predictor, options ...Option) (*Controller, error) {
	if predictor == nil {
		return nil, errors.New("controller: predictor is required")
	}
	cfg := config{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	return &Controller{
		predictor: predictor,
		logger:    cfg.logger,
		values:    registry.EmptyValues(),
	}, nil
}

// HandleChange stores the raw input for id and clears any result or error.
func (c *Controller) HandleChange(id, raw string) error {
	if !registry.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownField, id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[id] = raw
	c.result = nil
	c.errMsg = ""
	return nil
}

// HandleChanges applies HandleChange for every entry whose value differs from
// the current one. It returns the number of fields that changed. Unknown ids
// abort before anything is applied.
func (c *Controller) HandleChanges(values map[string]string) (int, error) {
	for id := range values {
		if !registry.Has(id) {
			return 0, fmt.Errorf("%w: %q", ErrUnknownField, id)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	changed := 0
	for id, raw := range values {
		if c.values[id] == raw {
			continue
		}
		c.values[id] = raw
		changed++
	}
	if changed > 0 {
		c.result = nil
		c.errMsg = ""
	}
	return changed, nil
}

// HandleReset empties every field and clears any result or error.
func (c *Controller) HandleReset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values = registry.EmptyValues()
	c.result = nil
	c.errMsg = ""
}

// HandleSubmit coerces the current values into a payload and asks the
// predictor for a classification. Failures never surface as errors: they are
// logged and replaced by ErrorMessage in the controller state. The lock is not
// held during the call so views can observe the loading state.
func (c *Controller) HandleSubmit(ctx context.Context) error {
	if ctx == nil {
		return errors.New("controller: context is required")
	}

	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.loading = true
	c.errMsg = ""
	c.result = nil
	payload := prediction.NewPayload(c.values)
	c.mu.Unlock()

	result, err := c.predictor.Predict(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.logger.Warn("prediction request failed", zap.Error(err))
		c.errMsg = ErrorMessage
		return nil
	}
	c.result = &result
	c.logger.Debug("prediction received",
		zap.Int("prediction", result.Prediction),
		zap.String("result", result.Result),
	)
	return nil
}

// Value returns the raw input stored for id.
func (c *Controller) Value(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[id]
	return v, ok
}

// Values returns a copy of the raw inputs.
func (c *Controller) Values() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneValues(c.values)
}

// Loading reports whether a submission is pending.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Result returns the last classification, if any.
func (c *Controller) Result() (prediction.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return prediction.Result{}, false
	}
	return *c.result, true
}

// Error returns the user-facing failure message, or "".
func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// View captures a consistent snapshot for renderers.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := View{
		Sections:       registry.Sections(),
		Values:         cloneValues(c.values),
		Loading:        c.loading,
		SubmitLabel:    SubmitLabel,
		SubmitDisabled: c.loading,
		ResetLabel:     ResetLabel,
		Error:          c.errMsg,
	}
	if c.loading {
		view.SubmitLabel = LoadingLabel
	}
	if c.result != nil {
		result := *c.result
		view.Result = &result
	}
	return view
}

func cloneValues(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
