/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package gpu

import (
	"testing"

	"gotest.tools/assert"
)

func TestIsFleetNode(t *testing.T) {
	parser := NewNameParser(testConfig())

	tests := []struct {
		name  string
		node  string
		match bool
	}{
		{"standard name", "violet-h100-001", true},
		{"ordinal 000 is valid", "violet-h100-000", true},
		{"ordinal 999", "violet-mi300x-999", true},
		{"one digit ordinal", "violet-modelX-1", false},
		{"two digit ordinal", "violet-h100-01", false},
		{"four digit ordinal", "violet-h100-0001", false},
		{"non-numeric ordinal", "violet-h100-0ab", false},
		{"wrong prefix", "indigo-h100-001", false},
		{"missing model", "violet--001", false},
		{"trailing junk", "violet-h100-001-extra", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, parser.IsFleetNode(tt.node))
		})
	}
}

func TestModel(t *testing.T) {
	parser := NewNameParser(testConfig())

	assert.Equal(t, "H100", parser.Model("violet-h100-023"))
	assert.Equal(t, "MI300X", parser.Model("violet-mi300x-000"))
	assert.Equal(t, "UNKNOWN", parser.Model("not-a-fleet-node"))
}

func TestNameParserQuotesPrefix(t *testing.T) {
	cfg := testConfig()
	cfg.NodePrefix = "a.b"
	parser := NewNameParser(cfg)

	assert.Assert(t, parser.IsFleetNode("a.b-h100-001"))
	// the dot must not act as a regex wildcard
	assert.Assert(t, !parser.IsFleetNode("aXb-h100-001"))
}
