// Package file provides file-based implementations of driven port interfaces.
// These adapters read configuration from the local filesystem.
//
// Adapters:
//   - JobConfigStore: TOML-based training job configuration (vertex.toml)
package file
