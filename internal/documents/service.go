package documents

import (
	"context"
	"fmt"
	"time"

	"docstore-backend/internal/shared/metrics"
	"docstore-backend/internal/shared/storage/object"
	"docstore-backend/internal/shared/util"
)

// Service contains the upload, list and download flows.
type Service struct {
	Store object.Store
	Now   func() time.Time
}

// NewService constructs a Service backed by store.
func NewService(store object.Store) *Service {
	return &Service{Store: store, Now: time.Now}
}

// UploadResult describes a stored upload.
type UploadResult struct {
	Key         string
	FileName    string
	ContentType string
	Fields      FormFields
}

// Upload validates the file type, then writes the file with its metadata in a single store call.
func (s *Service) Upload(ctx context.Context, file ExtractedFile, fields FormFields) (UploadResult, error) {
	contentType, err := ResolveContentType(file.FileName, file.MimeType)
	if err != nil {
		return UploadResult{}, err
	}

	name, err := util.SanitizeFileName(file.FileName)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	key := fmt.Sprintf("%s%d-%s", KeyPrefix, s.now().UnixMilli(), name)
	if err := s.Store.Put(ctx, key, file.Data, contentType, fields.Metadata()); err != nil {
		return UploadResult{}, err
	}
	metrics.AddUploadedBytes(len(file.Data))

	return UploadResult{
		Key:         key,
		FileName:    name,
		ContentType: contentType,
		Fields:      fields,
	}, nil
}

// List returns every document under KeyPrefix from a single store listing.
func (s *Service) List(ctx context.Context) ([]Document, error) {
	infos, err := s.Store.List(ctx, KeyPrefix)
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(infos))
	for _, info := range infos {
		docs = append(docs, Document{
			Key:          info.Key,
			FileName:     FileNameFromKey(info.Key),
			Size:         info.Size,
			LastModified: info.LastModified,
		})
	}
	return docs, nil
}

// Download fetches a document by key.
func (s *Service) Download(ctx context.Context, key string) (Download, error) {
	if key == "" {
		return Download{}, ErrMissingKey
	}
	obj, err := s.Store.Get(ctx, key)
	if err != nil {
		return Download{}, err
	}
	return Download{
		Key:                   key,
		FileName:              FileNameFromKey(key),
		ContentType:           obj.ContentType,
		Data:                  obj.Data,
		DocumentValueCode:     orNA(obj.Metadata[MetaDocumentValueCode]),
		DocumentValueTypeCode: orNA(obj.Metadata[MetaDocumentValueTypeCode]),
	}, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
