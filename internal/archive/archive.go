// Package archive keeps parsed exports in a GCS bucket for long-term
// retention. Uploads assume Application Default Credentials are configured
// (gcloud auth application-default login).
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// Uploader abstracts the storage backend so commands can be tested without
// touching GCS.
type Uploader interface {
	UploadFile(ctx context.Context, bucketName, objectName, filePath string) error
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// GCSUploader is the concrete Uploader backed by Google Cloud Storage.
type GCSUploader struct{}

func NewGCSUploader() *GCSUploader {
	return &GCSUploader{}
}

// UploadFile uploads a local file to a GCS bucket under the given object name.
func (u *GCSUploader) UploadFile(ctx context.Context, bucketName, objectName, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("archive.UploadFile: open file %q: %w", filePath, err)
	}
	defer f.Close()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("archive.UploadFile: create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return fmt.Errorf("archive.UploadFile: copy to writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("archive.UploadFile: finalize upload: %w", err)
	}
	return nil
}

// Fetch downloads the object bytes from a gs:// URI.
func (u *GCSUploader) Fetch(ctx context.Context, uri string) ([]byte, error) {
	bucketName, objectPath, err := SplitURI(uri)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("archive.Fetch: creating storage client: %w", err)
	}
	defer client.Close()

	rc, err := client.Bucket(bucketName).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("archive.Fetch: reading object %s/%s: %w", bucketName, objectPath, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("archive.Fetch: reading bytes: %w", err)
	}
	return data, nil
}

// SplitURI splits a gs://bucket/path/to/object URI into bucket and object.
func SplitURI(uri string) (bucket, object string, err error) {
	if !strings.HasPrefix(uri, "gs://") {
		return "", "", fmt.Errorf("archive.SplitURI: invalid GCS URI: %s", uri)
	}
	parts := strings.SplitN(strings.TrimPrefix(uri, "gs://"), "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", fmt.Errorf("archive.SplitURI: invalid GCS URI (no object path): %s", uri)
	}
	return parts[0], parts[1], nil
}

// DefaultObjectName builds a dated object path for an export file, so
// uploads from successive months land in separate prefixes:
// faturas/2025/11/fatura_parsed.csv.
func DefaultObjectName(filePath string, at time.Time) string {
	return path.Join("faturas",
		fmt.Sprintf("%04d", at.Year()),
		fmt.Sprintf("%02d", at.Month()),
		filepath.Base(filePath))
}
