// Package contract embeds the OpenAPI description of the prediction service
// and exposes the pieces the form relies on: the request property names (which
// must match the field registry) and the response shape. Parsing goes through
// kin-openapi so the document is validated before anyone trusts it.
package contract
