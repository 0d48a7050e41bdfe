// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509crl

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultDir is the directory used when none is configured.
const DefaultDir = "./crls"

// Store persists raw CRL bytes by cache key.
type Store interface {
	// Load returns the stored bytes and whether the key exists.
	Load(key string) ([]byte, bool, error)
	// Save stores data under key, replacing any existing entry.
	Save(key string, data []byte) error
}

// DiskStore keeps one file per key under a root directory.
//
// NOTE: Save relies on rename being atomic, which holds on UNIX-like
// platforms. On Windows a concurrent reader may observe a missing file.
type DiskStore struct {
	root string
}

// NewDiskStore creates root if needed and returns a store rooted there.
func NewDiskStore(root string) (*DiskStore, error) {
	if root == "" {
		root = DefaultDir
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, &CacheIOError{Op: "mkdir", Path: root, Err: err}
	}
	return &DiskStore{root: root}, nil
}

// Root returns the store directory.
func (s *DiskStore) Root() string { return s.root }

// Load reads the file for key.
func (s *DiskStore) Load(key string) ([]byte, bool, error) {
	path := filepath.Join(s.root, key)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &CacheIOError{Op: "read", Path: path, Err: err}
	}
	return data, true, nil
}

// Save writes data to a temporary file in the store directory and renames
// it over the key, so readers see either the old or the new complete file.
func (s *DiskStore) Save(key string, data []byte) (err error) {
	path := filepath.Join(s.root, key)

	tmp, err := os.CreateTemp(s.root, ".crl-*")
	if err != nil {
		return &CacheIOError{Op: "write", Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return &CacheIOError{Op: "write", Path: path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &CacheIOError{Op: "write", Path: path, Err: err}
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return &CacheIOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
