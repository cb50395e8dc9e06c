/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package workload

import (
	"context"
	"strings"
	"testing"
	"time"

	"gotest.tools/assert"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"

	fleetv1 "github.com/AMD-AIG-AIMA/fleet-apiserver/apis/pkg/apis/fleet/v1"
	commonclient "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/k8sclient"
	commonerrors "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/errors"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/gpu"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/utils/pkg/cache"
)

func newTestManager(t *testing.T, workloads ...*fleetv1.Workload) (*Manager, client.Client, *cache.Store) {
	t.Helper()
	builder := fake.NewClientBuilder().WithScheme(commonclient.Scheme)
	for _, wl := range workloads {
		builder = builder.WithObjects(wl)
	}
	cli := builder.Build()
	cfg := testConfig()
	views := cache.NewStore(time.Minute)
	return NewManager(cli, gpu.NewTranslator(cfg), cfg, views), cli, views
}

func validSubmitRequest() *SubmitRequest {
	return &SubmitRequest{
		Namespace: "default",
		GPUCount:  2,
		GPUModel:  "h100",
		Image:     "registry.local/train:v1",
		Command:   []string{"sh", "-c", "train.sh"},
		Priority:  ptr.To(int32(100)),
		User:      "alice",
		Team:      "ml-team",
	}
}

func TestSubmitStructured(t *testing.T) {
	manager, cli, views := newTestManager(t)
	views.Set("k", "v")

	name, err := manager.SubmitStructured(context.Background(), validSubmitRequest())
	assert.NilError(t, err)
	assert.Assert(t, strings.HasPrefix(name, "job-"))

	created := &fleetv1.Workload{}
	err = cli.Get(context.Background(), client.ObjectKey{Namespace: "default", Name: name}, created)
	assert.NilError(t, err)

	user, team := created.Owner()
	assert.Equal(t, "alice", user)
	assert.Equal(t, "ml-team", team)
	assert.Equal(t, "default", created.Spec.Queue)
	assert.Equal(t, int32(100), *created.Spec.Priority)

	// the GPU request is written under the canonical prefix
	qty, ok := created.Spec.ResourceRequests["example.com/gpu"]
	assert.Assert(t, ok)
	assert.Equal(t, int64(2), qty.Value())

	// a successful mutation purges cached views
	_, hit := views.Get("k")
	assert.Assert(t, !hit)
}

func TestSubmitStructuredValidation(t *testing.T) {
	manager, _, _ := newTestManager(t)

	tests := []struct {
		name   string
		mutate func(*SubmitRequest)
	}{
		{"zero gpu count", func(r *SubmitRequest) { r.GPUCount = 0 }},
		{"negative gpu count", func(r *SubmitRequest) { r.GPUCount = -1 }},
		{"missing image", func(r *SubmitRequest) { r.Image = "" }},
		{"missing user", func(r *SubmitRequest) { r.User = "" }},
		{"bad name", func(r *SubmitRequest) { r.Name = "Not_A_DNS_Name" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmitRequest()
			tt.mutate(req)
			_, err := manager.SubmitStructured(context.Background(), req)
			assert.Assert(t, commonerrors.IsValidation(err))
		})
	}
}

func TestSubmitStructuredDuplicateIsConflict(t *testing.T) {
	manager, _, _ := newTestManager(t)

	req := validSubmitRequest()
	req.Name = "job-fixed"
	_, err := manager.SubmitStructured(context.Background(), req)
	assert.NilError(t, err)

	_, err = manager.SubmitStructured(context.Background(), req)
	assert.Assert(t, commonerrors.IsConflict(err))
}

func TestSubmitNative(t *testing.T) {
	manager, cli, _ := newTestManager(t)

	manifest := `apiVersion: fleet.amd.com/v1
kind: Workload
metadata:
  name: expert-job
  namespace: default
spec:
  queue: default
  gpuModel: h100
  resourceRequests:
    nvidia.com/gpu: "2"
`
	name, err := manager.SubmitNative(context.Background(), []byte(manifest))
	assert.NilError(t, err)
	assert.Equal(t, "expert-job", name)

	created := &fleetv1.Workload{}
	err = cli.Get(context.Background(), client.ObjectKey{Namespace: "default", Name: "expert-job"}, created)
	assert.NilError(t, err)
	// native manifests are forwarded verbatim, resource keys untranslated
	qty, ok := created.Spec.ResourceRequests["nvidia.com/gpu"]
	assert.Assert(t, ok)
	assert.Equal(t, int64(2), qty.Value())
}

func TestSubmitNativeRejectsForeignKind(t *testing.T) {
	manager, _, _ := newTestManager(t)

	manifest := `apiVersion: v1
kind: Pod
metadata:
  name: sneaky
`
	_, err := manager.SubmitNative(context.Background(), []byte(manifest))
	assert.Assert(t, commonerrors.IsValidation(err))

	_, err = manager.SubmitNative(context.Background(), []byte("{not yaml"))
	assert.Assert(t, commonerrors.IsValidation(err))
}

func TestPatchPriority(t *testing.T) {
	wl := genWorkload("default", "job-1", ptr.To(int32(10)), time.Now(), false)
	manager, cli, views := newTestManager(t, wl)
	views.Set("k", "v")

	err := manager.PatchPriority(context.Background(), "default", "job-1", 200)
	assert.NilError(t, err)

	patched := &fleetv1.Workload{}
	assert.NilError(t, cli.Get(context.Background(), client.ObjectKey{Namespace: "default", Name: "job-1"}, patched))
	assert.Equal(t, int32(200), *patched.Spec.Priority)

	_, hit := views.Get("k")
	assert.Assert(t, !hit)
}

func TestPatchPriorityIdempotent(t *testing.T) {
	wl := genWorkload("default", "job-1", ptr.To(int32(10)), time.Now(), false)
	manager, cli, _ := newTestManager(t, wl)

	before := &fleetv1.Workload{}
	assert.NilError(t, cli.Get(context.Background(), client.ObjectKey{Namespace: "default", Name: "job-1"}, before))

	// patching to the current value succeeds without a cluster write
	err := manager.PatchPriority(context.Background(), "default", "job-1", 10)
	assert.NilError(t, err)

	after := &fleetv1.Workload{}
	assert.NilError(t, cli.Get(context.Background(), client.ObjectKey{Namespace: "default", Name: "job-1"}, after))
	assert.Equal(t, before.ResourceVersion, after.ResourceVersion)
}

func TestPatchPriorityErrors(t *testing.T) {
	wl := genWorkload("default", "job-1", ptr.To(int32(10)), time.Now(), false)
	manager, _, _ := newTestManager(t, wl)

	err := manager.PatchPriority(context.Background(), "default", "absent", 5)
	assert.Assert(t, commonerrors.IsNotFound(err))

	// values outside int32 are rejected before touching the cluster
	err = manager.PatchPriority(context.Background(), "default", "job-1", int64(1)<<40)
	assert.Assert(t, commonerrors.IsValidation(err))
}

func TestPatchPrioritySurfacesConflict(t *testing.T) {
	wl := genWorkload("default", "job-1", ptr.To(int32(10)), time.Now(), false)
	cli := fake.NewClientBuilder().
		WithScheme(commonclient.Scheme).
		WithObjects(wl).
		WithInterceptorFuncs(interceptor.Funcs{
			Patch: func(_ context.Context, _ client.WithWatch, obj client.Object, _ client.Patch, _ ...client.PatchOption) error {
				return apierrors.NewConflict(
					schema.GroupResource{Group: fleetv1.SchemeGroupVersion.Group, Resource: "workloads"},
					obj.GetName(), nil)
			},
		}).
		Build()
	cfg := testConfig()
	manager := NewManager(cli, gpu.NewTranslator(cfg), cfg, cache.NewStore(time.Minute))

	// the conflict is surfaced, never retried
	err := manager.PatchPriority(context.Background(), "default", "job-1", 200)
	assert.Assert(t, commonerrors.IsConflict(err))
}

func TestDelete(t *testing.T) {
	wl := genWorkload("default", "job-1", ptr.To(int32(10)), time.Now(), false)
	manager, cli, views := newTestManager(t, wl)
	views.Set("k", "v")

	assert.NilError(t, manager.Delete(context.Background(), "default", "job-1", false))

	err := cli.Get(context.Background(), types.NamespacedName{Namespace: "default", Name: "job-1"}, &fleetv1.Workload{})
	assert.Assert(t, apierrors.IsNotFound(err))

	_, hit := views.Get("k")
	assert.Assert(t, !hit)

	// deleting again is success unless strict
	assert.NilError(t, manager.Delete(context.Background(), "default", "job-1", false))
	err = manager.Delete(context.Background(), "default", "job-1", true)
	assert.Assert(t, commonerrors.IsNotFound(err))
}
