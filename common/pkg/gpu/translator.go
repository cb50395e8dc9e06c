/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package gpu

import (
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"

	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/common"
	commonconfig "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/config"
)

// Translator maps GPU resource keys between the two recognized prefix forms:
// the prefix this process emits (canonical) and the vendor prefix cluster
// objects may be authored with. It is pure and total: a key that is not a
// GPU key under either prefix passes through unchanged.
type Translator struct {
	canonical string
	vendor    string
}

// NewTranslator builds a Translator from the immutable process config.
func NewTranslator(cfg *commonconfig.Config) *Translator {
	return &Translator{
		canonical: cfg.ResourcePrefix,
		vendor:    cfg.VendorPrefix,
	}
}

// CanonicalResource returns the GPU resource key under the canonical prefix.
func (t *Translator) CanonicalResource() corev1.ResourceName {
	return corev1.ResourceName(fmt.Sprintf("%s/%s", t.canonical, common.GPUResourceSuffix))
}

// VendorResource returns the GPU resource key under the vendor prefix.
func (t *Translator) VendorResource() corev1.ResourceName {
	return corev1.ResourceName(fmt.Sprintf("%s/%s", t.vendor, common.GPUResourceSuffix))
}

// IsGPUResource returns true if name is the GPU key under either prefix.
func (t *Translator) IsGPUResource(name corev1.ResourceName) bool {
	return name == t.CanonicalResource() || name == t.VendorResource()
}

// ToCanonical rewrites a vendor-prefixed GPU key to the canonical form.
// Non-GPU keys are returned unchanged.
func (t *Translator) ToCanonical(name corev1.ResourceName) corev1.ResourceName {
	if name == t.VendorResource() {
		return t.CanonicalResource()
	}
	return name
}

// ToVendor rewrites a canonical-prefixed GPU key to the vendor form.
// Non-GPU keys are returned unchanged.
func (t *Translator) ToVendor(name corev1.ResourceName) corev1.ResourceName {
	if name == t.CanonicalResource() {
		return t.VendorResource()
	}
	return name
}

// TranslateToCanonical rewrites every vendor GPU key in the list to the
// canonical form, merging quantities if both forms are present.
func (t *Translator) TranslateToCanonical(list corev1.ResourceList) corev1.ResourceList {
	if len(list) == 0 {
		return nil
	}
	result := make(corev1.ResourceList, len(list))
	for key, val := range list {
		key = t.ToCanonical(key)
		v2 := val.DeepCopy()
		if prev, ok := result[key]; ok {
			v2.Add(prev)
		}
		result[key] = v2
	}
	return result
}

// GPUQuantity returns the GPU count requested in the list, recognizing the
// key under either prefix form.
func (t *Translator) GPUQuantity(list corev1.ResourceList) int64 {
	var total int64
	for key, val := range list {
		if t.IsGPUResource(key) {
			total += val.Value()
		}
	}
	return total
}

// HasGPUPrefix returns true when the key sits under either configured domain,
// regardless of suffix (e.g. nvidia.com/gpucores).
func (t *Translator) HasGPUPrefix(name corev1.ResourceName) bool {
	return strings.HasPrefix(string(name), t.canonical+"/") ||
		strings.HasPrefix(string(name), t.vendor+"/")
}
