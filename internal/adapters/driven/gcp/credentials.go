package gcp

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
)

// Credentials resolves Application Default Credentials for the given scopes.
// The returned credentials carry both a token source for API clients and the
// project ID the credentials belong to, which is used as a fallback when no
// project is configured explicitly.
func Credentials(ctx context.Context, scopes ...string) (*google.Credentials, error) {
	creds, err := google.FindDefaultCredentials(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf(
			"find default credentials (try `gcloud auth application-default login`): %w", err,
		)
	}
	return creds, nil
}
