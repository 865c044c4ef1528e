package store

import (
	"context"
	"slices"
	"sync"
)

// KV は値を丸ごと1つ保持するスロットの集合です。
// 部分読み込みやインデックスは持ちません。
type KV interface {
	// Get はキーに対応する値を返します。存在しない場合は nil, nil を返します。
	Get(ctx context.Context, key string) ([]byte, error)
	// Set はキーの値を丸ごと置き換えます。
	Set(ctx context.Context, key string, value []byte) error
}

// MemoryKV はプロセス内だけで完結する KV 実装です。
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV は空の MemoryKV を返します。
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(v), nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = slices.Clone(value)
	return nil
}
