/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package fleet_handlers

import (
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/common"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/nodes"
)

func (h *Handler) ListNodes(c *gin.Context) {
	handle(c, h.listNodes)
}

func (h *Handler) GetNode(c *gin.Context) {
	handle(c, h.getNode)
}

func (h *Handler) ListNodeGPUs(c *gin.Context) {
	handle(c, h.listNodeGPUs)
}

func (h *Handler) GetNodeUsage(c *gin.Context) {
	handle(c, h.getNodeUsage)
}

func (h *Handler) listNodes(c *gin.Context) (interface{}, error) {
	fleetNodes, err := h.reader.ListFleetNodes(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return &ListNodesResponse{
		Total: len(fleetNodes),
		Nodes: fleetNodes,
	}, nil
}

func (h *Handler) getNode(c *gin.Context) (interface{}, error) {
	return h.reader.GetNode(c.Request.Context(), c.Param(common.Name))
}

func (h *Handler) listNodeGPUs(c *gin.Context) (interface{}, error) {
	name := c.Param(common.Name)
	gpus, err := h.reader.ListGPUsForNode(c.Request.Context(), name)
	if err != nil {
		return nil, err
	}
	return &ListNodeGPUsResponse{
		Node:     name,
		GPUs:     gpus,
		Segments: segmentByOwner(gpus),
	}, nil
}

// getNodeUsage fans out per-node pod reads; nodes whose sub-read failed come
// back degraded inside a successful response.
func (h *Handler) getNodeUsage(c *gin.Context) (interface{}, error) {
	return h.reader.GPUUsageByNode(c.Request.Context())
}

func segmentByOwner(gpus []nodes.GPUDevice) []GPUSegment {
	type owner struct{ user, team string }
	counts := make(map[owner]int)
	for _, device := range gpus {
		if !device.Allocated {
			continue
		}
		counts[owner{device.User, device.Team}]++
	}
	segments := make([]GPUSegment, 0, len(counts))
	for key, count := range counts {
		segments = append(segments, GPUSegment{User: key.user, Team: key.team, Count: count})
	}
	sort.Slice(segments, func(i, j int) bool {
		if segments[i].Team != segments[j].Team {
			return segments[i].Team < segments[j].Team
		}
		return segments[i].User < segments[j].User
	})
	return segments
}
