/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the immutable process configuration. It is materialized once at
// startup from the loaded config file and passed explicitly into component
// constructors; component logic never reads ambient state.
type Config struct {
	// ServerPort is the API server listen port.
	ServerPort int
	// HealthCheckEnable toggles the standalone health/metrics listener.
	HealthCheckEnable bool
	// HealthCheckPort is the health/metrics listen port.
	HealthCheckPort int

	// ResourcePrefix is the GPU resource-name prefix this process emits
	// (e.g. example.com). Every GPU key leaving the system uses it.
	ResourcePrefix string
	// VendorPrefix is the other recognized GPU prefix form (e.g. nvidia.com)
	// that cluster objects may be authored with.
	VendorPrefix string

	// NodePrefix is the fleet node-name prefix; fleet nodes are named
	// <NodePrefix>-<gpu-model>-<3-digit-ordinal>.
	NodePrefix string
	// Namespaces limits workload scans; empty means all namespaces.
	Namespaces []string
	// NodeTimeout bounds every per-node sub-read during fan-out.
	NodeTimeout time.Duration
	// CacheTTL bounds the aggregated-view cache. Zero disables caching.
	CacheTTL time.Duration
}

// SetValue sets a configuration value for the specified key.
func SetValue(key, value string) {
	viper.Set(key, value)
}

// LoadConfig loads configuration from the specified file path.
func LoadConfig(path string) error {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	return viper.ReadInConfig()
}

// New materializes the immutable Config from the loaded configuration.
func New() *Config {
	return &Config{
		ServerPort:        getInt(serverPort, 0),
		HealthCheckEnable: getBool(healthCheckEnable, true),
		HealthCheckPort:   getInt(healthCheckPort, 0),
		ResourcePrefix:    getString(gpuResourcePrefix, defaultResourcePrefix),
		VendorPrefix:      getString(gpuVendorPrefix, defaultVendorPrefix),
		NodePrefix:        getString(fleetNodePrefix, defaultNodePrefix),
		Namespaces:        getStrings(fleetNamespaces),
		NodeTimeout:       time.Duration(getInt(fleetNodeTimeoutSecond, defaultNodeTimeout)) * time.Second,
		CacheTTL:          time.Duration(getInt(fleetCacheTTLSecond, 0)) * time.Second,
	}
}

func getString(key, defaultValue string) string {
	if !viper.IsSet(key) {
		return defaultValue
	}
	return viper.GetString(key)
}

func getBool(key string, defaultValue bool) bool {
	if !viper.IsSet(key) {
		return defaultValue
	}
	return viper.GetBool(key)
}

func getInt(key string, defaultValue int) int {
	if !viper.IsSet(key) {
		return defaultValue
	}
	return viper.GetInt(key)
}

func getStrings(key string) []string {
	val := viper.GetString(key)
	return removeBlank(strings.Split(val, ","))
}

func removeBlank(slice []string) []string {
	var result []string
	for _, val := range slice {
		if trim := strings.TrimSpace(val); trim != "" {
			result = append(result, trim)
		}
	}
	return result
}
