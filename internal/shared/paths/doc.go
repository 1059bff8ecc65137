// Package paths resolves platform-appropriate storage directories (cache,
// persistent data, temp) so the rest of the system can consume a single
// layout regardless of host platform.
package paths
