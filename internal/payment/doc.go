// Package payment hosts the embedded payment surface and the broadcast
// channel that carries its completion sentinel back to the wizard.
//
// The channel is deliberately unauthenticated: the practice environment wants
// automation to be able to fire the sentinel at will. Pointing the harness
// at a sub-context that is not fully trusted requires validating the
// sender's origin before acting on the sentinel; that is a required
// hardening step, not an optional one.
package payment
