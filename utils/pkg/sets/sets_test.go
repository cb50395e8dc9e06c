/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package sets

import (
	"reflect"
	"testing"

	"gotest.tools/assert"
)

func TestBasic(t *testing.T) {
	s1 := NewSet()
	s1.Insert("a1", "a2")
	assert.Equal(t, s1.Len(), 2)
	assert.Equal(t, s1.Has("a1"), true)
	assert.Equal(t, s1.Has("a3"), false)

	s1.Insert("a3")
	assert.Equal(t, s1.Has("a3"), true)

	s1.Delete("a1")
	assert.Equal(t, s1.Has("a1"), false)
	assert.Equal(t, s1.Len(), 2)

	keys := s1.SortedList()
	assert.Equal(t, reflect.DeepEqual(keys, []string{"a2", "a3"}), true)
}

func TestNewEmptyValues(t *testing.T) {
	var nullList []string
	s := NewSetByKeys(nullList...)
	assert.Equal(t, s.Len(), 0)
}

func TestNilSetHas(t *testing.T) {
	var s Set
	assert.Equal(t, s.Has("a1"), false)
}
