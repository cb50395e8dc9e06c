/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package cluster

import (
	"context"
	"sort"
	"strings"

	"k8s.io/klog/v2"

	commonconfig "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/config"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/gpu"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/nodes"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/workload"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/utils/pkg/cache"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/utils/pkg/concurrent"
)

const modelViewsCacheKey = "cluster/model-views"

// joinInput carries one side of the concurrent read pair.
type joinInput struct {
	report  *nodes.UsageReport
	pending []workload.PendingWorkload
}

// ModelView is the combined per-GPU-model picture: the fleet nodes carrying
// that model joined with the pending workloads asking for it. Models with
// nodes but no pending work, or pending work but no nodes, are omitted.
type ModelView struct {
	Model            string                     `json:"model"`
	Nodes            []nodes.NodeUsage          `json:"nodes"`
	PendingWorkloads []workload.PendingWorkload `json:"pendingWorkloads"`
	// TotalFree sums free GPUs across the model's non-degraded nodes.
	TotalFree int64 `json:"totalFree"`
	// PendingGPURequests sums canonical GPU requests of the pending side.
	PendingGPURequests int64 `json:"pendingGPURequests"`
}

// ClusterView is the aggregated response. Degraded lists nodes whose
// sub-reads failed; their usage is unknown, the rest of the view is valid.
type ClusterView struct {
	Models   []ModelView `json:"models"`
	Degraded []string    `json:"degraded,omitempty"`
}

// Facade composes the inventory/correlation reader and the workload engine
// into aggregated views. Both sides are read concurrently; the joined result
// is consistent only to the extent the two reads landed close together.
type Facade struct {
	reader     *nodes.Reader
	engine     *workload.Engine
	translator *gpu.Translator
	cfg        *commonconfig.Config
	views      *cache.Store
}

func NewFacade(reader *nodes.Reader, engine *workload.Engine, translator *gpu.Translator, cfg *commonconfig.Config, views *cache.Store) *Facade {
	return &Facade{
		reader:     reader,
		engine:     engine,
		translator: translator,
		cfg:        cfg,
		views:      views,
	}
}

// ModelViews returns the per-GPU-model join of fleet usage and pending
// workloads. Either side failing fails the call; a degraded node inside a
// successful usage read does not.
func (f *Facade) ModelViews(ctx context.Context) (*ClusterView, error) {
	if cached, ok := f.views.Get(modelViewsCacheKey); ok {
		return cached.(*ClusterView), nil
	}

	inputs, errs := concurrent.ForEach(ctx, 2, 0, func(subCtx context.Context, idx int) (joinInput, error) {
		var in joinInput
		var err error
		if idx == 0 {
			in.report, err = f.reader.GPUUsageByNode(subCtx)
		} else {
			in.pending, err = f.engine.ListPendingWorkloads(subCtx)
		}
		return in, err
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	view := f.assemble(inputs[0].report, inputs[1].pending)
	f.views.Set(modelViewsCacheKey, view)
	return view, nil
}

func (f *Facade) assemble(report *nodes.UsageReport, pending []workload.PendingWorkload) *ClusterView {
	nodesByModel := make(map[string][]nodes.NodeUsage)
	for _, usage := range report.Nodes {
		nodesByModel[usage.Model] = append(nodesByModel[usage.Model], usage)
	}
	pendingByModel := make(map[string][]workload.PendingWorkload)
	for _, wl := range pending {
		model := strings.ToUpper(wl.GPUModel)
		if model == "" {
			continue
		}
		pendingByModel[model] = append(pendingByModel[model], wl)
	}

	view := &ClusterView{Degraded: report.Degraded}
	for model, modelNodes := range nodesByModel {
		matched, ok := pendingByModel[model]
		if !ok {
			klog.V(4).InfoS("model has no pending workloads, omitted from join", "model", model)
			continue
		}
		mv := ModelView{
			Model:            model,
			Nodes:            modelNodes,
			PendingWorkloads: matched,
		}
		for _, usage := range modelNodes {
			if usage.Degraded {
				continue
			}
			mv.TotalFree += usage.Free
		}
		for i := range matched {
			if quantity, ok := matched[i].ResourceRequests[f.translator.CanonicalResource()]; ok {
				mv.PendingGPURequests += quantity.Value()
			}
		}
		view.Models = append(view.Models, mv)
	}
	sort.Slice(view.Models, func(i, j int) bool {
		return view.Models[i].Model < view.Models[j].Model
	})
	return view
}
