// Package tui provides the terminal front-end: a Renderer that prints a form
// as text or JSON and a Session that collects measurements through survey
// prompts and drives the controller from a small menu.
package tui
