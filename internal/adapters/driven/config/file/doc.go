// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - EnvOverrides: PROPDESK_* environment overrides, optionally from .env files
package file
