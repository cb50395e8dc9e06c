/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package utils

import (
	"regexp"
	"strings"
	"testing"

	"gotest.tools/assert"
	utilvalidation "k8s.io/apimachinery/pkg/util/validation"
)

func TestGenerateJobName(t *testing.T) {
	pattern := regexp.MustCompile(`^job-\d{14}-[a-z0-9]{5}$`)

	name := GenerateJobName()
	assert.Assert(t, pattern.MatchString(name), "unexpected job name %q", name)
	assert.Equal(t, 0, len(utilvalidation.IsDNS1123Subdomain(name)))

	// two names generated back to back must not collide
	assert.Assert(t, name != GenerateJobName())
}

func TestGenerateName(t *testing.T) {
	name := GenerateName("train")
	assert.Assert(t, strings.HasPrefix(name, "train-"))
	assert.Equal(t, len("train")+randomLength+1, len(name))

	assert.Equal(t, "", GenerateName(""))
	assert.Equal(t, "", GenerateName(strings.Repeat("a", MaxNameLength)))
}

func TestGetBaseByGenerateName(t *testing.T) {
	assert.Equal(t, "train", GetBaseByGenerateName(GenerateName("train")))
	assert.Equal(t, "abc", GetBaseByGenerateName("abc"))
}
