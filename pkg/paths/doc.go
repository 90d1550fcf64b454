// Package paths provides centralized path handling for archup.
//
// It resolves the working directory the provisioning steps operate in,
// the XDG config and state directories archup keeps its own files in,
// and the home-relative paths users write in configuration (~/.bashrc).
package paths
