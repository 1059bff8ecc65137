// Package server wires the HTTP surface: router, middleware, and routes
// over the service registry.
package server
