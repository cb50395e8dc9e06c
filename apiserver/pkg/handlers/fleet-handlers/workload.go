/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package fleet_handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	apiutils "github.com/AMD-AIG-AIMA/fleet-apiserver/apiserver/pkg/utils"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/common"
	commonerrors "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/errors"
	commonworkload "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/workload"
)

func (h *Handler) ListPendingWorkloads(c *gin.Context) {
	handle(c, h.listPendingWorkloads)
}

func (h *Handler) SubmitJob(c *gin.Context) {
	handle(c, h.submitJob)
}

func (h *Handler) SubmitNativeJob(c *gin.Context) {
	handle(c, h.submitNativeJob)
}

func (h *Handler) PatchJobPriority(c *gin.Context) {
	handle(c, h.patchJobPriority)
}

func (h *Handler) DeleteJob(c *gin.Context) {
	handle(c, h.deleteJob)
}

// listPendingWorkloads reports workloads waiting for admission in dispatch
// order. The admitted set is read alongside and wins on disagreement.
func (h *Handler) listPendingWorkloads(c *gin.Context) (interface{}, error) {
	ctx := c.Request.Context()
	pending, err := h.engine.ListPendingWorkloads(ctx)
	if err != nil {
		return nil, err
	}
	admitted, err := h.engine.ListAdmittedKeys(ctx)
	if err != nil {
		return nil, err
	}
	pending = commonworkload.ReconcileAdmittedMismatch(pending, admitted)
	return &PendingWorkloadsResponse{
		Total:     len(pending),
		Workloads: pending,
	}, nil
}

func (h *Handler) submitJob(c *gin.Context) (interface{}, error) {
	req := &commonworkload.SubmitRequest{}
	if _, err := getBodyFromRequest(c.Request, req); err != nil {
		return nil, err
	}
	name, err := h.manager.SubmitStructured(c.Request.Context(), req)
	if err != nil {
		return nil, err
	}
	return &SubmitJobResponse{JobId: name}, nil
}

// submitNativeJob forwards the manifest exactly as authored.
func (h *Handler) submitNativeJob(c *gin.Context) (interface{}, error) {
	body, err := apiutils.ReadBody(c.Request)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, commonerrors.NewValidation("manifest body is required")
	}
	name, err := h.manager.SubmitNative(c.Request.Context(), body)
	if err != nil {
		return nil, err
	}
	return &SubmitJobResponse{JobId: name}, nil
}

func (h *Handler) patchJobPriority(c *gin.Context) (interface{}, error) {
	req := &PatchJobPriorityRequest{}
	body, err := getBodyFromRequest(c.Request, req)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, commonerrors.NewValidation("request body is required")
	}
	namespace, name := c.Param(common.Namespace), c.Param(common.Name)
	if err = h.manager.PatchPriority(c.Request.Context(), namespace, name, req.Priority); err != nil {
		return nil, err
	}
	klog.Infof("patched priority, job: %s/%s, priority: %d", namespace, name, req.Priority)
	return gin.H{}, nil
}

func (h *Handler) deleteJob(c *gin.Context) (interface{}, error) {
	strict := false
	if raw, ok := c.GetQuery("strict"); ok {
		val, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, commonerrors.NewValidation("strict must be a boolean")
		}
		strict = val
	}
	namespace, name := c.Param(common.Namespace), c.Param(common.Name)
	if err := h.manager.Delete(c.Request.Context(), namespace, name, strict); err != nil {
		return nil, err
	}
	return gin.H{}, nil
}
