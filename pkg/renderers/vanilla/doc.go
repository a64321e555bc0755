// Package vanilla renders the measurement form as a standalone HTML page using
// the pongo2 engine and an embedded template plus stylesheet. The page works
// without JavaScript: both buttons post back to the form action.
package vanilla
