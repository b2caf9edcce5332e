package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Conversion Errors.

	// ErrMalformedLabel indicates a label file line could not be parsed.
	ErrMalformedLabel = errors.New("malformed label line")

	// ErrUnknownCategory indicates a label line references a class index
	// outside the label list. Conversion stops rather than emit a dataset
	// with silently dropped boxes.
	ErrUnknownCategory = errors.New("unknown category index")

	// ErrEmptyDataset indicates no convertible images were found.
	ErrEmptyDataset = errors.New("no images to convert")

	// Staging Errors.

	// ErrInvalidStoragePath indicates a remote reference is not a valid gs:// path.
	ErrInvalidStoragePath = errors.New("invalid storage path")

	// ErrStageFailed indicates one or more objects failed to download.
	// Training never starts on a partially staged dataset.
	ErrStageFailed = errors.New("staging failed")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Submission Errors.

	// ErrMissingImageURI indicates the job config names no container image.
	ErrMissingImageURI = errors.New("container image URI not configured")

	// ErrMissingProject indicates no GCP project could be determined from
	// config, environment, or application default credentials.
	ErrMissingProject = errors.New("GCP project not configured")
)
