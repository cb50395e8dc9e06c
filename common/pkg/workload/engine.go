/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package workload

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"sigs.k8s.io/controller-runtime/pkg/client"

	fleetv1 "github.com/AMD-AIG-AIMA/fleet-apiserver/apis/pkg/apis/fleet/v1"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/common"
	commonconfig "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/config"
	commonerrors "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/gpu"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/monitoring"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/utils/pkg/backoff"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/utils/pkg/sets"
)

// Engine answers read-only workload queries. Reads hit the cluster directly
// and are retried; callers see UpstreamUnavailable once retries are spent.
type Engine struct {
	cli        client.Client
	translator *gpu.Translator
	cfg        *commonconfig.Config
}

func NewEngine(cli client.Client, translator *gpu.Translator, cfg *commonconfig.Config) *Engine {
	return &Engine{
		cli:        cli,
		translator: translator,
		cfg:        cfg,
	}
}

// ListPendingWorkloads returns every workload whose admission condition is
// false or absent, sorted by the dispatch order an operator expects: highest
// priority first, then oldest first, then namespace/name for stability.
// A workload that carries no priority sorts below every explicit priority.
func (e *Engine) ListPendingWorkloads(ctx context.Context) ([]PendingWorkload, error) {
	items, err := e.listWorkloads(ctx)
	if err != nil {
		return nil, err
	}

	pending := make([]PendingWorkload, 0, len(items))
	for i := range items {
		wl := &items[i]
		if wl.IsAdmitted() {
			continue
		}
		pending = append(pending, e.toView(wl))
	}
	sortPending(pending)
	return pending, nil
}

// ListAdmittedKeys returns the namespace/name identities of workloads whose
// admission condition is currently true.
func (e *Engine) ListAdmittedKeys(ctx context.Context) (sets.Set, error) {
	items, err := e.listWorkloads(ctx)
	if err != nil {
		return nil, err
	}
	admitted := sets.NewSet()
	for i := range items {
		if items[i].IsAdmitted() {
			admitted.Insert(items[i].Namespace + "/" + items[i].Name)
		}
	}
	return admitted, nil
}

// ReconcileAdmittedMismatch drops pending entries that a fresher admitted set
// already claims. List reads are not transactional, so the same workload can
// appear in both sets; the admitted observation wins.
func ReconcileAdmittedMismatch(pending []PendingWorkload, admitted sets.Set) []PendingWorkload {
	if admitted.Len() == 0 {
		return pending
	}
	result := pending[:0]
	for i := range pending {
		if admitted.Has(pending[i].Key()) {
			klog.V(4).InfoS("dropping workload admitted mid-query", "workload", pending[i].Key())
			continue
		}
		result = append(result, pending[i])
	}
	return result
}

func (e *Engine) listWorkloads(ctx context.Context) ([]fleetv1.Workload, error) {
	var items []fleetv1.Workload
	listOne := func(namespace string) error {
		start := time.Now()
		workloadList := &fleetv1.WorkloadList{}
		err := backoff.RetryCount(func() error {
			return e.cli.List(ctx, workloadList, client.InNamespace(namespace))
		}, common.ReadRetryAttempts, common.ReadRetryBaseMs*time.Millisecond)
		monitoring.ObserveUpstream("list_workloads", start, err)
		if err != nil {
			return errors.Wrapf(err, "failed to list workloads in %s", namespace)
		}
		items = append(items, workloadList.Items...)
		return nil
	}

	namespaces := e.cfg.Namespaces
	if len(namespaces) == 0 {
		namespaces = []string{""}
	}
	for _, namespace := range namespaces {
		if err := listOne(namespace); err != nil {
			klog.ErrorS(err, "workload list exhausted retries", "namespace", namespace)
			return nil, commonerrors.NewUpstreamUnavailable(err.Error())
		}
	}
	return items, nil
}

func (e *Engine) toView(wl *fleetv1.Workload) PendingWorkload {
	user, team := wl.Owner()
	return PendingWorkload{
		Name:             wl.Name,
		Namespace:        wl.Namespace,
		Priority:         wl.PriorityValue(),
		CreatedAt:        wl.CreationTimestamp.Time,
		GPUModel:         wl.Spec.GPUModel,
		User:             user,
		Team:             team,
		ResourceRequests: e.translator.TranslateToCanonical(wl.Spec.ResourceRequests),
	}
}

func sortPending(pending []PendingWorkload) {
	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].Priority != pending[j].Priority {
			return pending[i].Priority > pending[j].Priority
		}
		if !pending[i].CreatedAt.Equal(pending[j].CreatedAt) {
			return pending[i].CreatedAt.Before(pending[j].CreatedAt)
		}
		if pending[i].Namespace != pending[j].Namespace {
			return pending[i].Namespace < pending[j].Namespace
		}
		return pending[i].Name < pending[j].Name
	})
}
