/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package utils

import (
	"fmt"
	"time"

	utilrand "k8s.io/apimachinery/pkg/util/rand"
)

const (
	JobPrefix     = "job"
	MaxNameLength = 63
	randomLength  = 5

	jobTimestampLayout = "20060102150405"
)

// GenerateJobName returns a fresh job name of the form
// job-<timestamp>-<random>, unique enough that concurrent submitters
// do not collide within the same second.
func GenerateJobName() string {
	return fmt.Sprintf("%s-%s-%s", JobPrefix, time.Now().Format(jobTimestampLayout), utilrand.String(randomLength))
}

// GenerateName appends a random suffix to base, or returns "" when the
// result would not fit a Kubernetes object name.
func GenerateName(base string) string {
	if base == "" || len(base) > MaxNameLength-randomLength-1 {
		return ""
	}
	return fmt.Sprintf("%s-%s", base, utilrand.String(randomLength))
}

// GetBaseByGenerateName strips the random suffix added by GenerateName.
func GetBaseByGenerateName(name string) string {
	if len(name) <= randomLength+1 {
		return name
	}
	return name[0 : len(name)-randomLength-1]
}
