package rnaseqprep

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

const GoogleStoragePrefix = "gs://"

// IsGoogleStorage reports whether path names a Google Storage object or
// prefix.
func IsGoogleStorage(path string) bool {
	return strings.HasPrefix(path, GoogleStoragePrefix)
}

// AnyGoogleStorage reports whether any of paths is on Google Storage, so
// that callers only construct a storage client when one is needed.
func AnyGoogleStorage(paths ...string) bool {
	for _, p := range paths {
		if IsGoogleStorage(p) {
			return true
		}
	}

	return false
}

// SplitGoogleStoragePath splits gs://bucket/some/object into its bucket and
// object name. The object part may be empty when the whole bucket is meant.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	if !IsGoogleStorage(path) {
		return "", "", fmt.Errorf("%s is not a %s path", path, GoogleStoragePrefix)
	}

	pathParts := strings.SplitN(strings.TrimPrefix(path, GoogleStoragePrefix), "/", 2)
	if pathParts[0] == "" {
		return "", "", fmt.Errorf("%s: no bucket name", path)
	}

	if len(pathParts) == 1 {
		return pathParts[0], "", nil
	}

	return pathParts[0], pathParts[1], nil
}

// OpenLocalOrGoogleStorage opens a local file, or a gs:// object through
// client.
func OpenLocalOrGoogleStorage(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	if !IsGoogleStorage(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		return f, nil
	}

	if client == nil {
		return nil, fmt.Errorf("%s: no Google Storage client", path)
	}

	bucketName, objectName, err := SplitGoogleStoragePath(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	if objectName == "" {
		return nil, fmt.Errorf("%s: no object name", path)
	}

	rdr, err := client.Bucket(bucketName).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return rdr, nil
}
