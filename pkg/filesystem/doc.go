// Package filesystem provides filesystem implementations for archup.
//
// Steps that touch files (the rc file, .env, package.json, the build
// directory) go through the FS interface so tests can run them against
// an in-memory afero filesystem and dry runs can write to an overlay
// instead of the disk.
package filesystem
