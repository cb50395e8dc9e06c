/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package fleet_handlers

import (
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/nodes"
	commonworkload "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/workload"
)

type ListNodesResponse struct {
	Total int              `json:"total"`
	Nodes []nodes.NodeInfo `json:"nodes"`
}

type ListNodeGPUsResponse struct {
	Node string             `json:"node"`
	GPUs []nodes.GPUDevice  `json:"gpus"`
	// Segments groups the node's devices by owner, so per-user and per-team
	// occupancy can be read off directly.
	Segments []GPUSegment `json:"segments"`
}

// GPUSegment is the device count one owner holds on a node. Devices with no
// owner annotations fall into a segment with empty user and team.
type GPUSegment struct {
	User  string `json:"user,omitempty"`
	Team  string `json:"team,omitempty"`
	Count int    `json:"count"`
}

type PendingWorkloadsResponse struct {
	Total     int                               `json:"total"`
	Workloads []commonworkload.PendingWorkload  `json:"workloads"`
}

type SubmitJobResponse struct {
	JobId string `json:"jobId"`
}

type PatchJobPriorityRequest struct {
	Priority int64 `json:"priority"`
}
