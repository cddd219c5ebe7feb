// Package cli turns command-line arguments into an app.Config, runs the
// chosen command and maps failures to process exit codes.
package cli
