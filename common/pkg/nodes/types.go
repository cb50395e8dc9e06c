/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package nodes

// NodeInfo is the normalized inventory view of one fleet node. It is
// reconstructed fresh on every read; nothing here is cached across requests.
type NodeInfo struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	// Capacity is the total GPU count advertised by the node.
	Capacity int64 `json:"capacity"`
	// Allocatable never exceeds Capacity.
	Allocatable int64 `json:"allocatable"`
}

// GPUDevice is the device-level view derived from a node's inventory and the
// pods scheduled on it. A device is held by at most one pod.
type GPUDevice struct {
	ID        string `json:"id"`
	Model     string `json:"model"`
	Allocated bool   `json:"allocated"`
	// Pod holding the device; empty when free.
	PodName      string `json:"podName,omitempty"`
	PodNamespace string `json:"podNamespace,omitempty"`
	// Owner identity from the pod annotations; empty when unknown.
	User string `json:"user,omitempty"`
	Team string `json:"team,omitempty"`
}

// PodGPU is one pod's GPU footprint on a node.
type PodGPU struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	GPUCount  int64  `json:"gpuCount"`
	User      string `json:"user,omitempty"`
	Team      string `json:"team,omitempty"`
}

// NodeUsage reports steady-state GPU occupancy for one fleet node. Pods in a
// terminal phase are excluded even if the cluster has not released their
// claim yet.
type NodeUsage struct {
	NodeInfo `json:",inline"`
	Used     int64    `json:"used"`
	Free     int64    `json:"free"`
	Pods     []PodGPU `json:"pods"`
	// Degraded marks a node whose pod sub-read timed out or failed; its
	// usage numbers are unknown, not zero.
	Degraded bool `json:"degraded,omitempty"`
}

// UsageReport is the aggregated correlation result. Degraded lists the nodes
// whose sub-reads were incomplete; the report itself is still a success.
type UsageReport struct {
	Nodes    []NodeUsage `json:"nodes"`
	Degraded []string    `json:"degraded,omitempty"`
}
