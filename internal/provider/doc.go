// Package provider defines the pluggable backend contract: the CodeGenerator
// interface every target framework implements, the Dependency type for
// declared runtime requirements, and the Registry that maps provider names to
// backends. The registry is an explicit value built at process start and
// threaded through the orchestrator; there is no global mutable state.
package provider
