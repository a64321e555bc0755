// Package render defines the Renderer contract shared by the HTML and terminal
// front-ends, a name-keyed Registry, and bluemonday-backed helpers that
// neutralise text coming back from the prediction service before display.
package render
