// Package service provides the service registry for provider management.
//
// The registry maintains a catalog of available service providers and handles
// service lookup and tool execution.
//
// Components:
//   - Registry: Central service catalog
//   - Provider: Interface for service implementations
//
// Features:
//   - Thread-safe service registration
//   - Category-based filtering
//   - Tool execution with context passing
//   - Service statistics
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(filesystemProvider)
//	result, err := registry.Execute(ctx, "filesystem.read", params, appCtx)
package service
