/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package workload

import (
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	utilvalidation "k8s.io/apimachinery/pkg/util/validation"

	commonerrors "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/errors"
)

// PendingWorkload is the operator-facing view of one non-admitted workload.
// Resource requests are reported under the canonical GPU prefix regardless of
// the prefix the cluster object was authored with.
type PendingWorkload struct {
	Name      string    `json:"name"`
	Namespace string    `json:"namespace"`
	Priority  int32     `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
	GPUModel  string    `json:"gpuModel,omitempty"`
	// User and Team are empty when the owner annotations are absent;
	// unknown ownership is normal, not an error.
	User             string              `json:"user,omitempty"`
	Team             string              `json:"team,omitempty"`
	ResourceRequests corev1.ResourceList `json:"resourceRequests,omitempty"`
}

// Key returns the namespace/name identity used to join workload sets.
func (w *PendingWorkload) Key() string {
	return w.Namespace + "/" + w.Name
}

// SubmitRequest is the structured job submission input. The manager
// synthesizes the cluster-native manifest from it.
type SubmitRequest struct {
	// Name of the job; generated when empty.
	Name      string `json:"name,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Queue     string `json:"queue,omitempty"`
	// GPUCount must be at least 1.
	GPUCount int64  `json:"gpuCount"`
	GPUModel string `json:"gpuModel,omitempty"`
	Image    string `json:"image"`
	Command  []string `json:"command,omitempty"`
	Priority *int32 `json:"priority,omitempty"`
	User     string `json:"user"`
	Team     string `json:"team"`
}

// Validate reports the first malformed field of a structured submission.
func (req *SubmitRequest) Validate() error {
	if req == nil {
		return commonerrors.NewValidation("request body is required")
	}
	if req.GPUCount <= 0 {
		return commonerrors.NewValidation(fmt.Sprintf("gpuCount must be positive, got %d", req.GPUCount))
	}
	if req.Image == "" {
		return commonerrors.NewValidation("image is required")
	}
	if req.User == "" {
		return commonerrors.NewValidation("user is required")
	}
	if req.Name != "" {
		if msgs := utilvalidation.IsDNS1123Subdomain(req.Name); len(msgs) > 0 {
			return commonerrors.NewValidation(fmt.Sprintf("invalid name %q: %s", req.Name, msgs[0]))
		}
	}
	if req.Namespace != "" {
		if msgs := utilvalidation.IsDNS1123Label(req.Namespace); len(msgs) > 0 {
			return commonerrors.NewValidation(fmt.Sprintf("invalid namespace %q: %s", req.Namespace, msgs[0]))
		}
	}
	return nil
}
