package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache 是基于单个 JSON 文件的 Cache 实现，
// 给 CLI 这种跨进程短生命周期的场景用。ttl 不生效。
type FileCache struct {
	path string
}

func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

func (f *FileCache) load() (map[string]json.RawMessage, error) {
	data := make(map[string]json.RawMessage)
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (f *FileCache) save(data map[string]json.RawMessage) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o600)
}

func (f *FileCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := f.load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	data[key] = raw
	return f.save(data)
}

func (f *FileCache) Get(_ context.Context, key string, target interface{}) error {
	data, err := f.load()
	if err != nil {
		return err
	}
	raw, ok := data[key]
	if !ok {
		return ErrMiss
	}
	return json.Unmarshal(raw, target)
}

func (f *FileCache) Delete(_ context.Context, key string) error {
	data, err := f.load()
	if err != nil {
		return err
	}
	delete(data, key)
	return f.save(data)
}
