package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"docstore-backend/internal/shared/storage/object"
)

// maxListKeys mirrors the single-page limit of the S3 backend.
const maxListKeys = 1000

// Options configures a MinIO-backed store.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	UseSSL    bool
}

// Store implements object.Store on top of minio-go.
type Store struct {
	client *minio.Client
	bucket string
}

// New creates a MinIO client for the configured endpoint.
func New(opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}
	if strings.TrimSpace(opts.Endpoint) == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}

	client, err := minio.New(endpointHost(opts.Endpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &Store{client: client, bucket: opts.Bucket}, nil
}

// Put stores data with content type and user metadata.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	})
	if err != nil {
		return fmt.Errorf("%w: minio put object bucket=%s key=%s: %v", object.ErrWrite, s.bucket, key, err)
	}
	return nil
}

// List returns up to maxListKeys objects under prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]object.ObjectInfo, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	infos := []object.ObjectInfo{}
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
		MaxKeys:   maxListKeys,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("%w: minio list objects bucket=%s prefix=%s: %v", object.ErrRead, s.bucket, prefix, info.Err)
		}
		infos = append(infos, object.ObjectInfo{
			Key:          info.Key,
			Size:         info.Size,
			LastModified: info.LastModified,
		})
		if len(infos) == maxListKeys {
			break
		}
	}
	return infos, nil
}

// Get loads an object with its content type and metadata.
func (s *Store) Get(ctx context.Context, key string) (object.Object, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return object.Object{}, classify(err, s.bucket, key)
	}
	defer obj.Close()

	stat, err := obj.Stat()
	if err != nil {
		return object.Object{}, classify(err, s.bucket, key)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return object.Object{}, classify(err, s.bucket, key)
	}

	return object.Object{
		Key:         key,
		Data:        data,
		ContentType: stat.ContentType,
		Metadata:    object.NormalizeMetadata(stat.UserMetadata),
	}, nil
}

func classify(err error, bucket, key string) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return object.ErrNotFound
	}
	return fmt.Errorf("%w: minio get object bucket=%s key=%s: %v", object.ErrRead, bucket, key, err)
}

// endpointHost strips a URL scheme; minio-go wants host[:port].
func endpointHost(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	return strings.TrimRight(endpoint, "/")
}

var _ object.Store = (*Store)(nil)
