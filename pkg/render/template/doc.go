// Package template defines the layout seam the page renderer draws documents
// through. The pongo subpackage provides the pongo2 implementation.
package template
