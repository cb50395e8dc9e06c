/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package fleet_handlers

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListModelViews(c *gin.Context) {
	handle(c, h.listModelViews)
}

// listModelViews joins fleet usage and pending workloads per GPU model.
// Models present on only one side are omitted from the join.
func (h *Handler) listModelViews(c *gin.Context) (interface{}, error) {
	return h.facade.ModelViews(c.Request.Context())
}
