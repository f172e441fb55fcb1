// Package resolver derives the agent dependency graph of a parsed manifest,
// produces a topological ordering of it, detects reference cycles, and
// discovers the root agents that serve as generation entry points.
package resolver
