// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// Each command wires only what it needs:
//
//   - ImagePlacer: Materialises dataset images into split directories (convert)
//   - ObjectStore: Remote object listing and download (fetch, run)
//   - ProcessRunner: Process replacement for the training command (run)
//   - JobConfigStore: Job config file loading (submit)
//   - JobClient: Custom job creation and state lookup (submit, jobs)
//   - SubmissionStore: Local ledger of submitted jobs (submit, jobs)
//
// # Optional Interfaces
//
// These can be absent - the application degrades gracefully:
//
//   - ProgressReporter: Live progress display. NopProgress is the default.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or format package
package driven
