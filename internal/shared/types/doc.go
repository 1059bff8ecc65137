// Package types defines the shared contracts between service providers and
// the server layer: service/tool definitions for discovery, the execution
// Context, and the Result envelope every operation returns.
//
// Result is the uniform outcome shape: either Success with a data payload, or
// a structured Error carrying a kind, a human-readable message, and the
// underlying cause. Operations never panic or throw across a provider
// boundary; they return a Result.
package types
