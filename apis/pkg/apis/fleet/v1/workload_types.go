/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package v1

import (
	"math"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

type WorkloadPhase string

const (
	WorkloadKind = "Workload"

	WorkloadPending   WorkloadPhase = "Pending"
	WorkloadAdmitted  WorkloadPhase = "Admitted"
	WorkloadRunning   WorkloadPhase = "Running"
	WorkloadSucceeded WorkloadPhase = "Succeeded"
	WorkloadFailed    WorkloadPhase = "Failed"
)

const (
	// AdmittedCondition is the condition set by the admission layer once a
	// workload has been granted quota. A workload with this condition absent
	// or false is pending.
	AdmittedCondition = "Admitted"

	// UserAnnotation and TeamAnnotation carry the owner identity of a
	// workload. Both are optional; absence means the owner is unknown.
	UserAnnotation = "user"
	TeamAnnotation = "team"
)

// LowestPriority is reported for workloads whose priority is missing so that
// they sort after every explicitly prioritized workload.
const LowestPriority int32 = math.MinInt32

type WorkloadSpec struct {
	// Name of the admission queue this workload is submitted to
	Queue string `json:"queue,omitempty"`
	// Admission priority. Higher values admit first. Optional; a workload
	// without a priority is treated as the lowest possible priority.
	Priority *int32 `json:"priority,omitempty"`
	// The address of the image used by the workload
	Image string `json:"image,omitempty"`
	// Container entrypoint
	Command []string `json:"command,omitempty"`
	// GPU model requested by the workload (e.g. H100). Used to group
	// pending work against fleet inventory of the same model.
	GPUModel string `json:"gpuModel,omitempty"`
	// Requested resources keyed by resource name. The GPU entry is keyed
	// under either recognized resource-name prefix.
	ResourceRequests corev1.ResourceList `json:"resourceRequests,omitempty"`
}

type WorkloadStatus struct {
	// Conditions reported by the admission layer. The "Admitted" condition
	// is the sole source of truth for admission status.
	Conditions []metav1.Condition `json:"conditions,omitempty"`
	// Phase of the workload lifecycle
	Phase WorkloadPhase `json:"phase,omitempty"`
}

// +genclient
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status

// Workload is a unit of batch work subject to quota-aware admission.
type Workload struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   WorkloadSpec   `json:"spec,omitempty"`
	Status WorkloadStatus `json:"status,omitempty"`
}

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object
// +kubebuilder:object:root=true

// WorkloadList contains a list of Workload.
type WorkloadList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Workload `json:"items"`
}

func init() {
	SchemeBuilder.Register(&Workload{}, &WorkloadList{})
}

// IsAdmitted returns true if the cluster reported a true "Admitted"
// condition. Admission status is never inferred locally.
func (w *Workload) IsAdmitted() bool {
	return meta.IsStatusConditionTrue(w.Status.Conditions, AdmittedCondition)
}

// PriorityValue returns the workload priority, or LowestPriority when the
// spec does not carry one.
func (w *Workload) PriorityValue() int32 {
	if w.Spec.Priority == nil {
		return LowestPriority
	}
	return *w.Spec.Priority
}

// Owner returns the user and team identity from the workload annotations.
// Missing annotations yield empty strings, not an error.
func (w *Workload) Owner() (string, string) {
	return w.GetAnnotations()[UserAnnotation], w.GetAnnotations()[TeamAnnotation]
}

// IsTerminal returns true once the workload reached a final phase.
func (w *Workload) IsTerminal() bool {
	return w.Status.Phase == WorkloadSucceeded || w.Status.Phase == WorkloadFailed
}
