// Package gcp provides shared infrastructure for the Google Cloud adapters.
//
// This package contains common utilities used by the gcs and vertex
// adapters including:
//   - Application Default Credentials resolution
//   - Error mapping for common Google API errors (404, 429)
//   - Rate limiting to respect Google API quotas
//
// # Authentication
//
// All Google Cloud adapters authenticate through Application Default
// Credentials, which covers gcloud user credentials, service account keys
// pointed at by GOOGLE_APPLICATION_CREDENTIALS, and workload identity when
// running on GCP:
//
//	creds, err := gcp.Credentials(ctx, storage.DevstorageReadOnlyScope)
//	svc, err := storage.NewService(ctx, option.WithTokenSource(creds.TokenSource))
package gcp
