/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

// Package v1 contains API Schema definitions for the fleet.amd.com v1 API group
// +kubebuilder:object:generate=true
// +groupName=fleet.amd.com
// +k8s:deepcopy-gen=package
package v1
