/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package common

const (
	// DefaultQPS and DefaultBurst bound client-side throttling against the
	// cluster API server.
	DefaultQPS   = 50.0
	DefaultBurst = 100

	// NodeNameSelector is the pod field selector prefix for per-node listing.
	NodeNameSelector = "spec.nodeName="

	// GPUResourceSuffix is the resource-name suffix under either prefix form.
	GPUResourceSuffix = "gpu"
)

const (
	FleetRouterRootPath = "api/v1"

	// gin path parameter names
	Name      = "name"
	Namespace = "namespace"
)

const (
	// ReadRetryAttempts and ReadRetryBase bound retries of transient
	// read-path failures before they surface as UpstreamUnavailable.
	// Mutations are never retried automatically.
	ReadRetryAttempts = 3
	ReadRetryBaseMs   = 200
)
