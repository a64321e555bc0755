package controller

import (
	"github.com/goliatone/go-fnaform/pkg/prediction"
	"github.com/goliatone/go-fnaform/pkg/registry"
)

// View is a render-ready snapshot of the controller state. Result and Error
// are never both set.
type View struct {
	Sections       []registry.Section `json:"sections"`
	Values         map[string]string  `json:"values"`
	Loading        bool               `json:"loading"`
	SubmitLabel    string             `json:"submitLabel"`
	SubmitDisabled bool               `json:"submitDisabled"`
	ResetLabel     string             `json:"resetLabel"`
	Result         *prediction.Result `json:"result"`
	Error          string             `json:"error,omitempty"`
}
