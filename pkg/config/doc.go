// Package config loads archup's layered configuration.
//
// Layers, later wins:
//
//  1. embedded/defaults.toml, compiled into the binary
//  2. the user file, ~/.config/archup/config.toml or --config
//  3. ARCHUP_<SECTION>__<KEY> environment variables
//
// Per-project values (database name, project name) do not live here;
// they come from the env file passed on the command line, see pkg/envfile.
package config
