// Package domain defines the core business entities for vtrain.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Category: An object class from the label list
//   - SplitSpec: Deterministic train/val partitioning parameters
//   - StoragePath: A gs://bucket/prefix object reference
//   - TrainingJob: A custom training job to submit
//   - Submission: A ledger record of a submitted job
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
