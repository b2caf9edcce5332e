// Package driving defines interfaces that external actors (the CLI) use
// to interact with core services. These are the "driving" ports in hexagonal
// architecture terminology - they drive the application.
//
// One port per command family: DatasetConverter (convert), DataStager
// (fetch), TrainingLauncher (run), JobSubmitter (submit, jobs).
//
// Implementations of these interfaces live in internal/core/services.
package driving
