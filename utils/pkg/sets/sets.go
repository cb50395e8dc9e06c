/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package sets

import "sort"

type Set map[string]struct{}

// NewSet creates and returns a new empty Set
func NewSet() Set {
	return make(Set)
}

// NewSetByKeys creates a new Set and inserts the provided keys into it
func NewSetByKeys(keys ...string) Set {
	set := NewSet()
	set.Insert(keys...)
	return set
}

// Insert adds one or more keys to the set and returns the set
func (s Set) Insert(keys ...string) Set {
	for _, key := range keys {
		s[key] = struct{}{}
	}
	return s
}

// Delete removes one or more keys from the set and returns the set
func (s Set) Delete(keys ...string) Set {
	for _, key := range keys {
		delete(s, key)
	}
	return s
}

// Has checks if a key exists in the set, returns false if set is nil
func (s Set) Has(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s[key]
	return ok
}

// Len returns the number of elements in the set
func (s Set) Len() int {
	return len(s)
}

// UnsortedList returns all elements in the set as a slice (order not guaranteed)
func (s Set) UnsortedList() []string {
	results := make([]string, 0, s.Len())
	for k := range s {
		results = append(results, k)
	}
	return results
}

// SortedList returns all elements in the set in ascending order
func (s Set) SortedList() []string {
	results := s.UnsortedList()
	sort.Strings(results)
	return results
}
