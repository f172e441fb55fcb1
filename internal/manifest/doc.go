// Package manifest defines the typed resource model for Konductor manifests
// and the machinery that turns a multi-document YAML stream into a
// ParsedManifest: a kind registry with per-kind constructors, a streaming
// parser, a JSON-schema shape check for the common document envelope, and a
// cross-reference validator over the parsed result.
package manifest
