package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"docstore-backend/internal/shared/storage/object"
)

const metaSuffix = ".meta.json"

// Store implements object.Store using the local filesystem.
type Store struct {
	baseDir string
}

type sidecar struct {
	ContentType string            `json:"contentType"`
	Metadata    map[string]string `json:"metadata"`
}

// New creates a new local object store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Put writes data to disk at key with a sidecar holding content type and metadata.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", object.ErrWrite, err)
	}

	fullPath, err := s.resolve(key)
	if err != nil {
		return fmt.Errorf("%w: %v", object.ErrWrite, err)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir: %v", object.ErrWrite, err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return fmt.Errorf("%w: write body: %v", object.ErrWrite, err)
	}

	meta, err := json.Marshal(sidecar{ContentType: contentType, Metadata: metadata})
	if err != nil {
		return fmt.Errorf("%w: encode metadata: %v", object.ErrWrite, err)
	}
	if err := os.WriteFile(fullPath+metaSuffix, meta, 0o644); err != nil {
		return fmt.Errorf("%w: write metadata: %v", object.ErrWrite, err)
	}
	return nil
}

// List walks the directory tree and returns objects whose key starts with prefix, sorted by key.
func (s *Store) List(ctx context.Context, prefix string) ([]object.ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", object.ErrRead, err)
	}

	infos := []object.ObjectInfo{}
	err := filepath.WalkDir(s.baseDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() || strings.HasSuffix(p, metaSuffix) {
			return nil
		}
		rel, err := filepath.Rel(s.baseDir, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		infos = append(infos, object.ObjectInfo{
			Key:          key,
			Size:         info.Size(),
			LastModified: info.ModTime().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walk %s: %v", object.ErrRead, s.baseDir, err)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

// Get reads an object and its sidecar. Without a sidecar the content type is sniffed.
func (s *Store) Get(ctx context.Context, key string) (object.Object, error) {
	if err := ctx.Err(); err != nil {
		return object.Object{}, fmt.Errorf("%w: %v", object.ErrRead, err)
	}

	fullPath, err := s.resolve(key)
	if err != nil {
		return object.Object{}, fmt.Errorf("%w: %v", object.ErrRead, err)
	}
	if fi, err := os.Stat(fullPath); err == nil && fi.IsDir() {
		return object.Object{}, object.ErrNotFound
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return object.Object{}, object.ErrNotFound
		}
		return object.Object{}, fmt.Errorf("%w: read body: %v", object.ErrRead, err)
	}

	obj := object.Object{Key: key, Data: data, Metadata: map[string]string{}}
	raw, err := os.ReadFile(fullPath + metaSuffix)
	switch {
	case err == nil:
		var meta sidecar
		if err := json.Unmarshal(raw, &meta); err != nil {
			return object.Object{}, fmt.Errorf("%w: decode metadata: %v", object.ErrRead, err)
		}
		obj.ContentType = meta.ContentType
		obj.Metadata = object.NormalizeMetadata(meta.Metadata)
	case errors.Is(err, fs.ErrNotExist):
		obj.ContentType = mimetype.Detect(data).String()
	default:
		return object.Object{}, fmt.Errorf("%w: read metadata: %v", object.ErrRead, err)
	}
	return obj, nil
}

func (s *Store) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	if strings.HasSuffix(clean, metaSuffix) {
		return "", fmt.Errorf("reserved storage key %q", key)
	}
	return filepath.Join(s.baseDir, clean), nil
}

var _ object.Store = (*Store)(nil)
