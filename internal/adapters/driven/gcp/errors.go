package gcp

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
)

// IsRateLimited returns true if the error is an HTTP 429 from a Google API.
func IsRateLimited(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}

// WrapError maps a Google API error onto the matching domain sentinel so
// callers can test with errors.Is without importing googleapi. Errors that
// have no sentinel pass through unchanged.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch gerr.Code {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	default:
		return err
	}
}
