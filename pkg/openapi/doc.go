// Package openapi derives table definitions from OpenAPI component schemas.
// The kin-openapi based conversion lives in internal/openapi so consumers do
// not depend on it directly.
package openapi
