package storage

import (
	"context"
	"errors"
)

// ErrStorageDisabled is returned when no resource bucket is configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

// DisabledStore rejects every operation. It stands in for the bucket when
// the deployment runs without S3 configuration.
type DisabledStore struct{}

func (DisabledStore) PresignUpload(_ context.Context, _ string, _ string) (PresignedUpload, error) {
	return PresignedUpload{}, ErrStorageDisabled
}

func (DisabledStore) DeleteImage(_ context.Context, _ string) error {
	return ErrStorageDisabled
}
