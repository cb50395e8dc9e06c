/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package workload

import (
	"context"
	"fmt"
	"math"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"

	fleetv1 "github.com/AMD-AIG-AIMA/fleet-apiserver/apis/pkg/apis/fleet/v1"
	commonconfig "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/config"
	commonerrors "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/gpu"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/monitoring"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/utils"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/utils/pkg/cache"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/utils/pkg/json"
)

const (
	defaultNamespace = "default"
	defaultQueue     = "default"
)

// Manager performs workload mutations. Mutations are never retried on
// conflict; the caller decides whether to re-submit against fresher state.
// Every successful mutation purges the aggregated-view cache so readers do
// not serve state the cluster no longer has.
type Manager struct {
	cli        client.Client
	translator *gpu.Translator
	cfg        *commonconfig.Config
	views      *cache.Store
}

func NewManager(cli client.Client, translator *gpu.Translator, cfg *commonconfig.Config, views *cache.Store) *Manager {
	return &Manager{
		cli:        cli,
		translator: translator,
		cfg:        cfg,
		views:      views,
	}
}

// SubmitStructured validates the request, synthesizes the workload manifest
// and creates it. GPU requests are written under the canonical prefix. The
// returned string is the created workload's name, generated when the request
// carries none.
func (m *Manager) SubmitStructured(ctx context.Context, req *SubmitRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	name := req.Name
	if name == "" {
		name = utils.GenerateJobName()
	}
	namespace := req.Namespace
	if namespace == "" {
		namespace = defaultNamespace
	}
	queue := req.Queue
	if queue == "" {
		queue = defaultQueue
	}

	wl := &fleetv1.Workload{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Annotations: map[string]string{
				fleetv1.UserAnnotation: req.User,
			},
		},
		Spec: fleetv1.WorkloadSpec{
			Queue:    queue,
			Priority: req.Priority,
			Image:    req.Image,
			Command:  req.Command,
			GPUModel: req.GPUModel,
			ResourceRequests: corev1.ResourceList{
				m.translator.CanonicalResource(): *resource.NewQuantity(req.GPUCount, resource.DecimalSI),
			},
		},
	}
	if req.Team != "" {
		wl.Annotations[fleetv1.TeamAnnotation] = req.Team
	}

	start := time.Now()
	err := m.cli.Create(ctx, wl)
	monitoring.ObserveUpstream("create_workload", start, err)
	if err != nil {
		if apierrors.IsAlreadyExists(err) {
			return "", commonerrors.NewConflict(fmt.Sprintf("workload %s/%s already exists", namespace, name))
		}
		return "", err
	}
	klog.InfoS("workload submitted", "workload", klog.KRef(namespace, name), "user", req.User, "gpuCount", req.GPUCount)
	m.views.Purge()
	return name, nil
}

// SubmitNative creates a workload from a verbatim YAML or JSON manifest.
// The manifest is forwarded as authored: resource keys are deliberately not
// translated, so an expert can exercise vendor-prefixed requests directly.
func (m *Manager) SubmitNative(ctx context.Context, manifest []byte) (string, error) {
	obj, err := json.ParseYamlToJson(string(manifest))
	if err != nil {
		return "", commonerrors.NewValidation(fmt.Sprintf("malformed manifest: %v", err))
	}
	gvk := obj.GroupVersionKind()
	if gvk.Group != fleetv1.SchemeGroupVersion.Group || gvk.Kind != fleetv1.WorkloadKind {
		return "", commonerrors.NewValidation(fmt.Sprintf("unsupported manifest kind %s, want %s.%s",
			gvk.String(), fleetv1.WorkloadKind, fleetv1.SchemeGroupVersion.Group))
	}
	if obj.GetName() == "" {
		return "", commonerrors.NewValidation("manifest metadata.name is required")
	}
	if obj.GetNamespace() == "" {
		obj.SetNamespace(defaultNamespace)
	}

	start := time.Now()
	err = m.cli.Create(ctx, obj)
	monitoring.ObserveUpstream("create_workload", start, err)
	if err != nil {
		if apierrors.IsAlreadyExists(err) {
			return "", commonerrors.NewConflict(fmt.Sprintf("workload %s/%s already exists", obj.GetNamespace(), obj.GetName()))
		}
		return "", err
	}
	klog.InfoS("native workload submitted", "workload", klog.KRef(obj.GetNamespace(), obj.GetName()))
	m.views.Purge()
	return obj.GetName(), nil
}

// PatchPriority sets the workload's priority. Patching to the value the
// workload already has succeeds without touching the cluster. A mid-flight
// concurrent update surfaces as Conflict; it is never retried here.
func (m *Manager) PatchPriority(ctx context.Context, namespace, name string, priority int64) error {
	if priority > math.MaxInt32 || priority < math.MinInt32 {
		return commonerrors.NewValidation(fmt.Sprintf("priority %d out of range", priority))
	}

	wl := &fleetv1.Workload{}
	if err := m.cli.Get(ctx, client.ObjectKey{Namespace: namespace, Name: name}, wl); err != nil {
		if apierrors.IsNotFound(err) {
			return commonerrors.NewNotFound(fleetv1.WorkloadKind, namespace+"/"+name)
		}
		return err
	}

	target := int32(priority)
	if wl.Spec.Priority != nil && *wl.Spec.Priority == target {
		klog.V(2).InfoS("priority already set, nothing to patch", "workload", klog.KRef(namespace, name), "priority", target)
		return nil
	}

	patch := client.MergeFrom(wl.DeepCopy())
	wl.Spec.Priority = ptr.To(target)

	start := time.Now()
	err := m.cli.Patch(ctx, wl, patch)
	monitoring.ObserveUpstream("patch_workload", start, err)
	if err != nil {
		if apierrors.IsConflict(err) {
			return commonerrors.NewConflict(fmt.Sprintf("workload %s/%s was updated concurrently", namespace, name))
		}
		if apierrors.IsNotFound(err) {
			return commonerrors.NewNotFound(fleetv1.WorkloadKind, namespace+"/"+name)
		}
		return err
	}
	klog.InfoS("workload priority patched", "workload", klog.KRef(namespace, name), "priority", target)
	m.views.Purge()
	return nil
}

// Delete removes the workload. Deleting an absent workload is success
// unless strict is set, in which case the caller asked to be told.
func (m *Manager) Delete(ctx context.Context, namespace, name string, strict bool) error {
	wl := &fleetv1.Workload{
		ObjectMeta: metav1.ObjectMeta{
			Namespace: namespace,
			Name:      name,
		},
	}

	start := time.Now()
	err := m.cli.Delete(ctx, wl)
	monitoring.ObserveUpstream("delete_workload", start, err)
	if err != nil {
		if apierrors.IsNotFound(err) {
			if strict {
				return commonerrors.NewNotFound(fleetv1.WorkloadKind, namespace+"/"+name)
			}
			klog.V(2).InfoS("workload already gone", "workload", klog.KRef(namespace, name))
			return nil
		}
		return err
	}
	klog.InfoS("workload deleted", "workload", klog.KRef(namespace, name))
	m.views.Purge()
	return nil
}
