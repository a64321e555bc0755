// Package registry holds the static field table for the FNA measurement form.
// Ten cell-nucleus measurements are grouped into three sections (size, shape,
// texture) whose order is fixed; renderers iterate Sections() and never sort.
// Field ids double as the JSON keys sent to the prediction service, so they must
// stay in sync with the request schema published by pkg/contract.
package registry
