/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package config

const (
	// server
	serverPrefix = "server."
	serverPort   = serverPrefix + "port"

	// health_check
	healthCheckPrefix = "health_check."
	healthCheckEnable = healthCheckPrefix + "enable"
	healthCheckPort   = healthCheckPrefix + "port"

	// gpu
	// resource_prefix is the domain this process emits GPU resource keys
	// under; vendor_prefix is the other recognized form. Both refer to the
	// same physical resource.
	gpuPrefix         = "gpu."
	gpuResourcePrefix = gpuPrefix + "resource_prefix"
	gpuVendorPrefix   = gpuPrefix + "vendor_prefix"

	// fleet
	fleetPrefix            = "fleet."
	fleetNodePrefix        = fleetPrefix + "node_prefix"
	fleetNamespaces        = fleetPrefix + "namespaces"
	fleetNodeTimeoutSecond = fleetPrefix + "node_timeout_second"
	fleetCacheTTLSecond    = fleetPrefix + "cache_ttl_second"
)

const (
	defaultResourcePrefix = "example.com"
	defaultVendorPrefix   = "nvidia.com"
	defaultNodePrefix     = "violet"
	defaultNodeTimeout    = 10
)
