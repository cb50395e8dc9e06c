/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package cache

import (
	"testing"
	"time"

	"gotest.tools/assert"
)

func TestStoreSetGet(t *testing.T) {
	store := NewStore(time.Minute)

	_, ok := store.Get("missing")
	assert.Assert(t, !ok)

	store.Set("k", 42)
	val, ok := store.Get("k")
	assert.Assert(t, ok)
	assert.Equal(t, 42, val)
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(20 * time.Millisecond)

	store.Set("k", "v")
	_, ok := store.Get("k")
	assert.Assert(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok = store.Get("k")
	assert.Assert(t, !ok)
}

func TestStoreInvalidateAndPurge(t *testing.T) {
	store := NewStore(time.Minute)
	store.Set("a", 1)
	store.Set("b", 2)

	store.Invalidate("a")
	_, ok := store.Get("a")
	assert.Assert(t, !ok)
	_, ok = store.Get("b")
	assert.Assert(t, ok)

	store.Purge()
	_, ok = store.Get("b")
	assert.Assert(t, !ok)
}

func TestStoreDisabled(t *testing.T) {
	store := NewStore(0)

	store.Set("k", "v")
	_, ok := store.Get("k")
	assert.Assert(t, !ok)

	var nilStore *Store
	nilStore.Set("k", "v")
	_, ok = nilStore.Get("k")
	assert.Assert(t, !ok)
	nilStore.Purge()
}
