package kv

import (
	"context"
	"sort"
	"testing"
)

func TestMemoryHashOps(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.HSet(ctx, "h", map[string]string{"a": "1", "b": "2"}); err != nil {
		t.Fatalf("HSet failed: %v", err)
	}

	v, ok, err := m.HGet(ctx, "h", "a")
	if err != nil || !ok || v != "1" {
		t.Fatalf("HGet = (%q, %v, %v), want (1, true, nil)", v, ok, err)
	}

	if _, ok, _ := m.HGet(ctx, "h", "missing"); ok {
		t.Fatal("HGet on missing field reported ok")
	}

	all, err := m.HGetAll(ctx, "h")
	if err != nil || len(all) != 2 {
		t.Fatalf("HGetAll = (%v, %v), want 2 fields", all, err)
	}

	n, err := m.HLen(ctx, "h")
	if err != nil || n != 2 {
		t.Fatalf("HLen = (%d, %v), want 2", n, err)
	}

	if err := m.HDel(ctx, "h", "a"); err != nil {
		t.Fatalf("HDel failed: %v", err)
	}
	if _, ok, _ := m.HGet(ctx, "h", "a"); ok {
		t.Fatal("field still present after HDel")
	}
}

func TestMemorySetOps(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.SAdd(ctx, "s", "x", "y", "x"); err != nil {
		t.Fatalf("SAdd failed: %v", err)
	}
	members, err := m.SMembers(ctx, "s")
	if err != nil {
		t.Fatalf("SMembers failed: %v", err)
	}
	sort.Strings(members)
	if len(members) != 2 || members[0] != "x" || members[1] != "y" {
		t.Fatalf("SMembers = %v, want [x y]", members)
	}

	if err := m.SRem(ctx, "s", "x"); err != nil {
		t.Fatalf("SRem failed: %v", err)
	}
	members, _ = m.SMembers(ctx, "s")
	if len(members) != 1 || members[0] != "y" {
		t.Fatalf("SMembers after SRem = %v, want [y]", members)
	}
}

func TestMemoryScalarOps(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatal("Get on unset key reported ok")
	}
	if err := m.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("Get = (%q, %v, %v), want (v, true, nil)", v, ok, err)
	}
	if err := m.Del(ctx, "k"); err != nil {
		t.Fatalf("Del failed: %v", err)
	}
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatal("key still present after Del")
	}
}

func TestMemoryDelClearsEveryNamespace(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_ = m.HSet(ctx, "k", map[string]string{"f": "v"})
	_ = m.SAdd(ctx, "k", "member")
	_ = m.Set(ctx, "k", "scalar")

	if err := m.Del(ctx, "k"); err != nil {
		t.Fatalf("Del failed: %v", err)
	}
	if all, _ := m.HGetAll(ctx, "k"); len(all) != 0 {
		t.Fatal("hash survived Del")
	}
	if members, _ := m.SMembers(ctx, "k"); len(members) != 0 {
		t.Fatal("set survived Del")
	}
}

func TestMemoryTxAppliesAllWrites(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.HSet(ctx, "h", map[string]string{"old": "1"})

	err := m.Tx(ctx, func(b Batch) error {
		b.HSet("h", map[string]string{"new": "2"})
		b.HDel("h", "old")
		b.SAdd("s", "member")
		b.Set("k", "v")
		return nil
	})
	if err != nil {
		t.Fatalf("Tx failed: %v", err)
	}

	if _, ok, _ := m.HGet(ctx, "h", "old"); ok {
		t.Fatal("old field survived Tx")
	}
	if v, ok, _ := m.HGet(ctx, "h", "new"); !ok || v != "2" {
		t.Fatal("new field missing after Tx")
	}
	if members, _ := m.SMembers(ctx, "s"); len(members) != 1 {
		t.Fatal("set member missing after Tx")
	}
	if v, ok, _ := m.Get(ctx, "k"); !ok || v != "v" {
		t.Fatal("scalar missing after Tx")
	}
}

func TestMemoryTxErrorAppliesNothing(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	wantErr := context.Canceled
	err := m.Tx(ctx, func(b Batch) error {
		b.Set("k", "v")
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("Tx error = %v, want %v", err, wantErr)
	}
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatal("write applied despite batch error")
	}
}
