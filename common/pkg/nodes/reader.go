/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package nodes

import (
	"context"
	"fmt"
	"sort"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/klog/v2"

	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/common"
	commonconfig "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/config"
	commonerrors "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/gpu"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/monitoring"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/quantity"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/utils/pkg/backoff"
)

const nodeKind = "Node"

// Reader queries the cluster control plane for fleet nodes and their GPU
// inventory. Reads always go straight to the API server; nothing is cached.
type Reader struct {
	clientSet  kubernetes.Interface
	translator *gpu.Translator
	parser     *gpu.NameParser
	cfg        *commonconfig.Config
}

// NewReader creates a Reader bound to the immutable process config.
func NewReader(clientSet kubernetes.Interface, translator *gpu.Translator,
	parser *gpu.NameParser, cfg *commonconfig.Config) *Reader {
	return &Reader{
		clientSet:  clientSet,
		translator: translator,
		parser:     parser,
		cfg:        cfg,
	}
}

// ListFleetNodes lists cluster nodes and keeps only those matching the fleet
// naming convention, normalizing GPU capacity and allocatable counts.
// Non-matching nodes are an intentional inventory filter, never an error.
// Transient list failures are retried with bounded backoff before surfacing
// as UpstreamUnavailable.
func (r *Reader) ListFleetNodes(ctx context.Context) ([]NodeInfo, error) {
	var nodeList *corev1.NodeList
	op := func() error {
		start := time.Now()
		var err error
		nodeList, err = r.clientSet.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
		monitoring.ObserveUpstream("list_nodes", start, err)
		return err
	}
	if err := backoff.RetryCount(op, common.ReadRetryAttempts, common.ReadRetryBaseMs*time.Millisecond); err != nil {
		klog.ErrorS(err, "failed to list nodes after retries")
		return nil, commonerrors.NewUpstreamUnavailable(err.Error())
	}

	results := make([]NodeInfo, 0, len(nodeList.Items))
	for i := range nodeList.Items {
		node := &nodeList.Items[i]
		if !r.parser.IsFleetNode(node.Name) {
			continue
		}
		results = append(results, r.normalize(node))
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}

// GetNode returns the normalized inventory of one fleet node. Absent nodes
// and nodes outside the fleet naming convention both report NotFound.
func (r *Reader) GetNode(ctx context.Context, name string) (*NodeInfo, error) {
	if !r.parser.IsFleetNode(name) {
		return nil, commonerrors.NewNotFound(nodeKind, name)
	}
	start := time.Now()
	node, err := r.clientSet.CoreV1().Nodes().Get(ctx, name, metav1.GetOptions{})
	monitoring.ObserveUpstream("get_node", start, err)
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, commonerrors.NewNotFound(nodeKind, name)
		}
		klog.ErrorS(err, "failed to get node", "node", name)
		return nil, commonerrors.NewUpstreamUnavailable(err.Error())
	}
	info := r.normalize(node)
	return &info, nil
}

// ListGPUsForNode returns the device-level GPU breakdown for one fleet node.
// Device identifiers are synthesized from the node name when the device
// plugin does not expose them. Devices are assigned to the active pods on the
// node in deterministic order so that no device is double-counted.
func (r *Reader) ListGPUsForNode(ctx context.Context, name string) ([]GPUDevice, error) {
	info, err := r.GetNode(ctx, name)
	if err != nil {
		return nil, err
	}
	pods, err := r.listActivePodsOnNode(ctx, name)
	if err != nil {
		return nil, err
	}

	devices := make([]GPUDevice, 0, info.Capacity)
	for i := int64(0); i < info.Capacity; i++ {
		devices = append(devices, GPUDevice{
			ID:    fmt.Sprintf("GPU-%s-%03d", name, i),
			Model: info.Model,
		})
	}

	next := 0
	for _, p := range podGPUs(pods, r.translator) {
		for i := int64(0); i < p.GPUCount && next < len(devices); i++ {
			devices[next].Allocated = true
			devices[next].PodName = p.Name
			devices[next].PodNamespace = p.Namespace
			devices[next].User = p.User
			devices[next].Team = p.Team
			next++
		}
	}
	return devices, nil
}

// normalize extracts the GPU inventory numbers from a node object,
// recognizing the GPU key under either prefix form.
func (r *Reader) normalize(node *corev1.Node) NodeInfo {
	capacity := r.gpuCount(node.Status.Capacity)
	allocatable := r.gpuCount(node.Status.Allocatable)
	if allocatable > capacity {
		// The cluster should never report this; clamp rather than propagate
		// an impossible inventory.
		klog.InfoS("node reports allocatable above capacity, clamping",
			"node", node.Name, "capacity", capacity, "allocatable", allocatable)
		allocatable = capacity
	}
	return NodeInfo{
		Name:        node.Name,
		Model:       r.parser.Model(node.Name),
		Capacity:    capacity,
		Allocatable: allocatable,
	}
}

func (r *Reader) gpuCount(list corev1.ResourceList) int64 {
	if n := quantity.Value(list, r.translator.CanonicalResource()); n > 0 {
		return n
	}
	return quantity.Value(list, r.translator.VendorResource())
}
