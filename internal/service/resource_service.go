package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"craftshop-admin/internal/model"
	"craftshop-admin/internal/storage"
)

type ResourceStore interface {
	ResourceByID(ctx context.Context, id string) (model.Resource, error)
	CreateResource(ctx context.Context, resource model.Resource) (model.Resource, error)
	DeleteResource(ctx context.Context, id string) error
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ResourceService manages item-image resources. Bytes never pass through
// this service: a row is recorded, the client uploads against a presigned
// URL, and deletes fan out to the bucket.
type ResourceService struct {
	resources ResourceStore
	objects   storage.ObjectStore
}

func NewResourceService(resources ResourceStore, objects storage.ObjectStore) *ResourceService {
	return &ResourceService{resources: resources, objects: objects}
}

// CreateUpload records a resource row and returns the presigned upload the
// client performs against the bucket.
func (s *ResourceService) CreateUpload(ctx context.Context, fileName string, itemID *string) (model.Resource, storage.PresignedUpload, error) {
	ext := strings.ToLower(path.Ext(fileName))
	if !allowedImageExts[ext] {
		return model.Resource{}, storage.PresignedUpload{}, fmt.Errorf("%w: unsupported image extension %q", model.ErrInvalidInput, ext)
	}

	id := uuid.NewString()
	resource := model.Resource{
		ID:     id,
		ItemID: itemID,
		Key:    id + ext,
	}

	stored, err := s.resources.CreateResource(ctx, resource)
	if err != nil {
		return model.Resource{}, storage.PresignedUpload{}, err
	}

	upload, err := s.objects.PresignUpload(ctx, stored.Key, stored.ID)
	if err != nil {
		// The row without an object is harmless but pointless; best effort
		// cleanup keeps the table tidy.
		_ = s.resources.DeleteResource(ctx, stored.ID)
		return model.Resource{}, storage.PresignedUpload{}, err
	}

	return stored, upload, nil
}

// Delete removes the resource row and its bucket objects. A missing row is
// reported; a missing object is not (the bucket delete is fire-and-forget
// over a list of derived keys).
func (s *ResourceService) Delete(ctx context.Context, id string) error {
	resource, err := s.resources.ResourceByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return err
	}

	if err := s.resources.DeleteResource(ctx, id); err != nil {
		return err
	}

	return s.objects.DeleteImage(ctx, resource.Key)
}
