// Package testutil provides utilities for testing archup components.
//
// Key components:
//   - FakeRunner: records external commands and replays scripted results
//   - FakePrompter: scripted answers for interactive questions
//   - NewMemFS: in-memory filesystem seeded with fixture files
//   - CaptureLogs: redirects the global zerolog logger into a buffer
//
// Steps are tested against FakeRunner and an in-memory filesystem; only
// pkg/runner and pkg/filesystem tests touch the real system.
package testutil
