package storage

import (
	"context"
	"fmt"
	"os"
)

// FromEnv builds a Source from environment configuration.
// STORAGE_DRIVER selects the backend: "local" (default) or "s3".
func FromEnv(ctx context.Context) (Source, error) {
	driver := os.Getenv("STORAGE_DRIVER")
	if driver == "" {
		driver = "local"
	}

	switch driver {
	case "local":
		return NewLocal(os.Getenv("STORAGE_LOCAL_DIR")), nil
	case "s3":
		bucket := os.Getenv("STORAGE_S3_BUCKET")
		if bucket == "" {
			return nil, fmt.Errorf("storage: STORAGE_S3_BUCKET is required for the s3 driver")
		}
		return NewS3(ctx, S3Config{
			Region: os.Getenv("AWS_REGION"),
			Bucket: bucket,
			Prefix: os.Getenv("STORAGE_S3_PREFIX"),
		})
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", driver)
	}
}
