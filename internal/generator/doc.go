// Package generator orchestrates one compilation of a manifest: parsing,
// core cross-reference validation, backend-specific validation, dependency
// resolution with root-agent discovery, code emission through the selected
// provider, and persistence of the emitted file map.
package generator
