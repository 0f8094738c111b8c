package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"
)

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the minimal S3-compatible operations report archiving needs.
type ObjectStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	UploadObject(ctx context.Context, key string, data []byte) error
}

// ReportPrefix is the archive folder for reports generated on day.
func ReportPrefix(day time.Time) string {
	return fmt.Sprintf("reports/%s/", day.Format("20060102"))
}

// UploadReports copies the given local files under ReportPrefix(day), keyed by
// their base name, and returns the uploaded keys in input order.
func UploadReports(ctx context.Context, store ObjectStorage, day time.Time, files []string) ([]string, error) {
	prefix := ReportPrefix(day)
	keys := make([]string, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return keys, fmt.Errorf("failed reading %s: %w", file, err)
		}
		key := path.Join(prefix, filepath.Base(file))
		if err := store.UploadObject(ctx, key, data); err != nil {
			return keys, fmt.Errorf("failed uploading %s: %w", key, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}
