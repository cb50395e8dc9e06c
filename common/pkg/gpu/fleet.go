/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package gpu

import (
	"fmt"
	"regexp"
	"strings"

	commonconfig "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/config"
)

const unknownModel = "UNKNOWN"

// NameParser recognizes the fleet naming convention
// <prefix>-<gpu-model>-<3-digit-ordinal>, e.g. violet-h100-001.
// The ordinal must be exactly three digits; 000 is a valid ordinal.
type NameParser struct {
	pattern *regexp.Regexp
}

// NewNameParser builds a NameParser for the configured fleet prefix.
func NewNameParser(cfg *commonconfig.Config) *NameParser {
	expr := fmt.Sprintf(`^%s-([a-zA-Z0-9]+)-\d{3}$`, regexp.QuoteMeta(cfg.NodePrefix))
	return &NameParser{pattern: regexp.MustCompile(expr)}
}

// IsFleetNode returns true if the node name conforms to the fleet pattern.
// Non-matching nodes are an inventory filter, not a fault.
func (p *NameParser) IsFleetNode(name string) bool {
	return p.pattern.MatchString(name)
}

// Model extracts the GPU model from a fleet node name, upper-cased
// (violet-h100-023 -> H100). Returns UNKNOWN for non-fleet names.
func (p *NameParser) Model(name string) string {
	match := p.pattern.FindStringSubmatch(name)
	if match == nil {
		return unknownModel
	}
	return strings.ToUpper(match[1])
}
