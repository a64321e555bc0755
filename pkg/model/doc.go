// Package model defines the render-facing form model. A FormModel is built
// from a controller.View snapshot and carries sections in registry order, one
// required number input per measurement (step "any"), the submit/clear chrome
// and at most one of a result card or an error message. Renderers only ever
// see this type, never the controller.
package model
