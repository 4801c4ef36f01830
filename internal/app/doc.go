// Package app contains the core application logic. It wires one dataset's
// store, registry, engine and metrics together from a validated Config,
// decoupled from any specific entrypoint like a CLI or server.
package app
