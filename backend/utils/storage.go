package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// BlobStore is the boundary to wherever uploaded files live. The core only
// needs put-and-get-a-URL semantics.
type BlobStore interface {
	Put(name string, data []byte) (string, error)
}

// LocalStore writes blobs to a directory served under /static.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{Dir: dir, BaseURL: baseURL}
}

func (s *LocalStore) Put(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}

	// Uploads are stored flat; strip any path the client sent.
	name = filepath.Base(name)
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/static/%s", s.BaseURL, name), nil
}
