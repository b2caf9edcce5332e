// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// One service per command family: ConversionService, StagingService,
// LaunchService, SubmitService.
package services
