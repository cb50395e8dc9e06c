/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package quantity

import (
	corev1 "k8s.io/api/core/v1"
)

// AddResource combines multiple ResourceLists by adding corresponding
// resource quantities.
func AddResource(resources ...corev1.ResourceList) corev1.ResourceList {
	result := corev1.ResourceList{}
	for _, res := range resources {
		for k, v := range res {
			v2 := v.DeepCopy()
			if s, ok := result[k]; ok {
				v2.Add(s)
			}
			result[k] = v2
		}
	}
	return result
}

// PodRequests sums the resource requests of every container in the pod spec.
func PodRequests(pod *corev1.Pod) corev1.ResourceList {
	lists := make([]corev1.ResourceList, 0, len(pod.Spec.Containers))
	for i := range pod.Spec.Containers {
		if len(pod.Spec.Containers[i].Resources.Requests) == 0 {
			continue
		}
		lists = append(lists, pod.Spec.Containers[i].Resources.Requests)
	}
	return AddResource(lists...)
}

// Value returns the integer value of the named resource, or 0 when absent.
func Value(list corev1.ResourceList, name corev1.ResourceName) int64 {
	if val, ok := list[name]; ok {
		return val.Value()
	}
	return 0
}
