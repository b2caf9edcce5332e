package domain

import (
	"fmt"
	"strings"
)

// StoragePath identifies a set of objects in a Cloud Storage bucket.
type StoragePath struct {
	// Bucket is the bucket name, without the gs:// scheme.
	Bucket string

	// Prefix is the object name prefix. Either empty (the whole bucket)
	// or normalised to end with "/".
	Prefix string
}

// ParseStoragePath parses a gs://bucket/prefix reference.
//
// A trailing "/*" glob is accepted and stripped, since that is how people
// habitually write bucket paths on the command line. A non-empty prefix is
// normalised to end with "/" so relative object paths never start with a
// partial directory name.
func ParseStoragePath(ref string) (StoragePath, error) {
	rest, ok := strings.CutPrefix(ref, "gs://")
	if !ok {
		return StoragePath{}, fmt.Errorf("%w: %q does not start with gs://", ErrInvalidStoragePath, ref)
	}
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return StoragePath{}, fmt.Errorf("%w: %q names no bucket", ErrInvalidStoragePath, ref)
	}
	prefix = strings.TrimSuffix(prefix, "*")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return StoragePath{Bucket: bucket, Prefix: prefix}, nil
}

// String renders the path in gs:// form.
func (p StoragePath) String() string {
	return "gs://" + p.Bucket + "/" + p.Prefix
}

// Relative returns the object name with the prefix removed. The second
// return is false when the object does not live under this path's prefix.
func (p StoragePath) Relative(object string) (string, bool) {
	return strings.CutPrefix(object, p.Prefix)
}
