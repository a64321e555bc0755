// Package controller implements the form controller behind every front-end.
//
// A Controller holds the raw string value of each registry field, a loading
// flag and either a prediction result or a user-facing error. Front-ends feed
// it change, reset and submit events and render View snapshots:
//
//	ctrl, _ := controller.New(client)
//	_ = ctrl.HandleChange("radius_mean", "14.13")
//	_ = ctrl.HandleSubmit(ctx)
//	view := ctrl.View()
//
// Submission failures of any kind (transport, non-2xx status, undecodable
// body) collapse into ErrorMessage; the cause is only logged.
package controller
