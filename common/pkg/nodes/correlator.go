/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package nodes

import (
	"context"
	"sort"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/klog/v2"

	fleetv1 "github.com/AMD-AIG-AIMA/fleet-apiserver/apis/pkg/apis/fleet/v1"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/common"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/gpu"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/monitoring"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/quantity"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/utils/pkg/concurrent"
)

// GPUUsageByNode correlates the pods scheduled on every fleet node with the
// node GPU inventory. Per-node pod reads fan out concurrently, each bounded
// by the configured node timeout; a slow node degrades only its own entry.
// The report is assembled after every sub-read finished or timed out.
func (r *Reader) GPUUsageByNode(ctx context.Context) (*UsageReport, error) {
	fleetNodes, err := r.ListFleetNodes(ctx)
	if err != nil {
		return nil, err
	}

	usages, errs := concurrent.ForEach(ctx, len(fleetNodes), r.cfg.NodeTimeout,
		func(subCtx context.Context, idx int) (NodeUsage, error) {
			pods, err := r.listActivePodsOnNode(subCtx, fleetNodes[idx].Name)
			if err != nil {
				return NodeUsage{}, err
			}
			return buildUsage(fleetNodes[idx], pods, r.translator), nil
		})

	report := &UsageReport{}
	for i, subErr := range errs {
		if subErr == nil {
			continue
		}
		klog.ErrorS(subErr, "node usage sub-read degraded", "node", fleetNodes[i].Name)
		monitoring.FanoutDegradedInc(fleetNodes[i].Name)
		usages[i] = NodeUsage{NodeInfo: fleetNodes[i], Degraded: true}
		report.Degraded = append(report.Degraded, fleetNodes[i].Name)
	}
	report.Nodes = usages
	return report, nil
}

// listActivePodsOnNode lists the pods scheduled on a node within the
// configured namespace set, excluding pods in a terminal phase. The
// correlator models steady-state occupancy, not raw reservation.
func (r *Reader) listActivePodsOnNode(ctx context.Context, nodeName string) ([]corev1.Pod, error) {
	namespaces := r.cfg.Namespaces
	if len(namespaces) == 0 {
		namespaces = []string{metav1.NamespaceAll}
	}
	var results []corev1.Pod
	for _, ns := range namespaces {
		start := time.Now()
		podList, err := r.clientSet.CoreV1().Pods(ns).List(ctx, metav1.ListOptions{
			FieldSelector: common.NodeNameSelector + nodeName,
		})
		monitoring.ObserveUpstream("list_pods", start, err)
		if err != nil {
			return nil, err
		}
		for i := range podList.Items {
			if !IsPodActive(&podList.Items[i]) {
				continue
			}
			results = append(results, podList.Items[i])
		}
	}
	return results, nil
}

// IsPodActive returns true for pods occupying node resources: not succeeded,
// not failed, not deleting, and assigned to a node.
func IsPodActive(p *corev1.Pod) bool {
	return p.Status.Phase != corev1.PodSucceeded &&
		p.Status.Phase != corev1.PodFailed &&
		p.DeletionTimestamp.IsZero() &&
		p.Spec.NodeName != ""
}

// buildUsage sums the translated GPU requests of the given pods against one
// node's inventory.
func buildUsage(info NodeInfo, pods []corev1.Pod, translator *gpu.Translator) NodeUsage {
	podUsages := podGPUs(pods, translator)
	var used int64
	for _, p := range podUsages {
		used += p.GPUCount
	}
	free := info.Allocatable - used
	if free < 0 {
		free = 0
	}
	return NodeUsage{
		NodeInfo: info,
		Used:     used,
		Free:     free,
		Pods:     podUsages,
	}
}

// podGPUs extracts the per-pod GPU footprint, dropping pods that request no
// GPUs. The result is ordered by namespace/name so device assignment is
// deterministic.
func podGPUs(pods []corev1.Pod, translator *gpu.Translator) []PodGPU {
	results := make([]PodGPU, 0, len(pods))
	for i := range pods {
		pod := &pods[i]
		count := translator.GPUQuantity(quantity.PodRequests(pod))
		if count <= 0 {
			continue
		}
		annotations := pod.GetAnnotations()
		results = append(results, PodGPU{
			Name:      pod.Name,
			Namespace: pod.Namespace,
			GPUCount:  count,
			User:      annotations[fleetv1.UserAnnotation],
			Team:      annotations[fleetv1.TeamAnnotation],
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Namespace != results[j].Namespace {
			return results[i].Namespace < results[j].Namespace
		}
		return results[i].Name < results[j].Name
	})
	return results
}
