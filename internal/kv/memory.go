package kv

import (
	"context"
	"sync"
)

// Memory implements Store with plain maps. It backs unit tests and the
// --memory development mode; contents vanish on process exit.
type Memory struct {
	mu     sync.RWMutex
	hashes map[string]map[string]string
	sets   map[string]map[string]struct{}
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		hashes: make(map[string]map[string]string),
		sets:   make(map[string]map[string]struct{}),
		values: make(map[string]string),
	}
}

func (m *Memory) HGetAll(_ context.Context, key string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.hashes[key]))
	for f, v := range m.hashes[key] {
		out[f] = v
	}
	return out, nil
}

func (m *Memory) HGet(_ context.Context, key, field string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.hashes[key][field]
	return v, ok, nil
}

func (m *Memory) HSet(_ context.Context, key string, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hset(key, fields)
	return nil
}

func (m *Memory) HDel(_ context.Context, key string, fields ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hdel(key, fields)
	return nil
}

func (m *Memory) HLen(_ context.Context, key string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.hashes[key])), nil
}

func (m *Memory) SAdd(_ context.Context, key string, members ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sadd(key, members)
	return nil
}

func (m *Memory) SRem(_ context.Context, key string, members ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.srem(key, members)
	return nil
}

func (m *Memory) SMembers(_ context.Context, key string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.sets[key]))
	for member := range m.sets[key] {
		out = append(out, member)
	}
	return out, nil
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	delete(m.hashes, key)
	delete(m.sets, key)
	return nil
}

// Tx buffers the batch and applies it under a single lock acquisition, so
// concurrent readers never observe a half-applied group.
func (m *Memory) Tx(_ context.Context, fn func(b Batch) error) error {
	batch := &memoryBatch{}
	if err := fn(batch); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range batch.ops {
		op(m)
	}
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }

// Unlocked mutators shared by direct calls and batch replay.

func (m *Memory) hset(key string, fields map[string]string) {
	h, ok := m.hashes[key]
	if !ok {
		h = make(map[string]string, len(fields))
		m.hashes[key] = h
	}
	for f, v := range fields {
		h[f] = v
	}
}

func (m *Memory) hdel(key string, fields []string) {
	for _, f := range fields {
		delete(m.hashes[key], f)
	}
	if len(m.hashes[key]) == 0 {
		delete(m.hashes, key)
	}
}

func (m *Memory) sadd(key string, members []string) {
	s, ok := m.sets[key]
	if !ok {
		s = make(map[string]struct{}, len(members))
		m.sets[key] = s
	}
	for _, member := range members {
		s[member] = struct{}{}
	}
}

func (m *Memory) srem(key string, members []string) {
	for _, member := range members {
		delete(m.sets[key], member)
	}
	if len(m.sets[key]) == 0 {
		delete(m.sets, key)
	}
}

type memoryBatch struct {
	ops []func(*Memory)
}

func (b *memoryBatch) HSet(key string, fields map[string]string) {
	copied := make(map[string]string, len(fields))
	for f, v := range fields {
		copied[f] = v
	}
	b.ops = append(b.ops, func(m *Memory) { m.hset(key, copied) })
}

func (b *memoryBatch) HDel(key string, fields ...string) {
	b.ops = append(b.ops, func(m *Memory) { m.hdel(key, fields) })
}

func (b *memoryBatch) SAdd(key string, members ...string) {
	b.ops = append(b.ops, func(m *Memory) { m.sadd(key, members) })
}

func (b *memoryBatch) SRem(key string, members ...string) {
	b.ops = append(b.ops, func(m *Memory) { m.srem(key, members) })
}

func (b *memoryBatch) Set(key, value string) {
	b.ops = append(b.ops, func(m *Memory) { m.values[key] = value })
}

func (b *memoryBatch) Del(key string) {
	b.ops = append(b.ops, func(m *Memory) {
		delete(m.values, key)
		delete(m.hashes, key)
		delete(m.sets, key)
	})
}
