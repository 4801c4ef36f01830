// Package cli builds the colengine command tree, validates user input and
// maps failures to process exit codes. It translates CLI flags into the
// application's internal configuration.
package cli
