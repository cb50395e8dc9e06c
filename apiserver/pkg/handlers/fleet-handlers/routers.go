/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package fleet_handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/common"
)

// InitFleetRouters registers the fleet API routes with the Gin engine.
// Read endpoints cover node inventory, GPU correlation, pending workloads
// and the per-model aggregated view; write endpoints cover job submission,
// priority patching and deletion.
func InitFleetRouters(e *gin.Engine, h *Handler) {
	group := e.Group(common.FleetRouterRootPath)
	{
		group.GET("nodes", h.ListNodes)
		group.GET("nodes/usage", h.GetNodeUsage)
		group.GET(fmt.Sprintf("nodes/:%s", common.Name), h.GetNode)
		group.GET(fmt.Sprintf("nodes/:%s/gpus", common.Name), h.ListNodeGPUs)

		group.GET("workloads/pending", h.ListPendingWorkloads)

		group.GET("cluster/models", h.ListModelViews)

		group.POST("jobs", h.SubmitJob)
		group.POST("jobs/native", h.SubmitNativeJob)
		group.PATCH(fmt.Sprintf("jobs/:%s/:%s/priority", common.Namespace, common.Name), h.PatchJobPriority)
		group.DELETE(fmt.Sprintf("jobs/:%s/:%s", common.Namespace, common.Name), h.DeleteJob)
	}
}
