/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package workload

import (
	"context"
	"testing"
	"time"

	"gotest.tools/assert"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	fleetv1 "github.com/AMD-AIG-AIMA/fleet-apiserver/apis/pkg/apis/fleet/v1"
	commonconfig "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/config"
	commonclient "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/k8sclient"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/gpu"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/utils/pkg/sets"
)

func testConfig() *commonconfig.Config {
	return &commonconfig.Config{
		ResourcePrefix: "example.com",
		VendorPrefix:   "nvidia.com",
		NodePrefix:     "violet",
	}
}

func genWorkload(namespace, name string, priority *int32, created time.Time, admitted bool) *fleetv1.Workload {
	wl := &fleetv1.Workload{
		ObjectMeta: metav1.ObjectMeta{
			Namespace:         namespace,
			Name:              name,
			CreationTimestamp: metav1.NewTime(created),
			Annotations: map[string]string{
				fleetv1.UserAnnotation: "alice",
				fleetv1.TeamAnnotation: "ml-team",
			},
		},
		Spec: fleetv1.WorkloadSpec{
			Queue:    "default",
			Priority: priority,
			GPUModel: "h100",
			ResourceRequests: corev1.ResourceList{
				"nvidia.com/gpu": resource.MustParse("2"),
			},
		},
	}
	if admitted {
		wl.Status.Conditions = []metav1.Condition{{
			Type:               fleetv1.AdmittedCondition,
			Status:             metav1.ConditionTrue,
			Reason:             "QuotaReserved",
			LastTransitionTime: metav1.Now(),
		}}
	}
	return wl
}

func newTestEngine(t *testing.T, workloads ...*fleetv1.Workload) *Engine {
	t.Helper()
	builder := fake.NewClientBuilder().WithScheme(commonclient.Scheme)
	for _, wl := range workloads {
		builder = builder.WithObjects(wl)
	}
	cfg := testConfig()
	return NewEngine(builder.Build(), gpu.NewTranslator(cfg), cfg)
}

func TestListPendingWorkloadsSortContract(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	engine := newTestEngine(t,
		genWorkload("default", "low", ptr.To(int32(1)), base, false),
		genWorkload("default", "high", ptr.To(int32(100)), base.Add(time.Hour), false),
		genWorkload("default", "older", ptr.To(int32(100)), base, false),
		// same priority and timestamp as "older": namespace/name breaks the tie
		genWorkload("alpha", "older", ptr.To(int32(100)), base, false),
		// missing priority sorts below every explicit priority
		genWorkload("default", "no-priority", nil, base.Add(-time.Hour), false),
	)

	pending, err := engine.ListPendingWorkloads(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, 5, len(pending))

	assert.Equal(t, "alpha/older", pending[0].Key())
	assert.Equal(t, "default/older", pending[1].Key())
	assert.Equal(t, "default/high", pending[2].Key())
	assert.Equal(t, "default/low", pending[3].Key())
	assert.Equal(t, "default/no-priority", pending[4].Key())
	assert.Equal(t, fleetv1.LowestPriority, pending[4].Priority)
}

func TestListPendingWorkloadsExcludesAdmitted(t *testing.T) {
	now := time.Now()
	engine := newTestEngine(t,
		genWorkload("default", "waiting", ptr.To(int32(10)), now, false),
		genWorkload("default", "running", ptr.To(int32(10)), now, true),
	)

	pending, err := engine.ListPendingWorkloads(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, 1, len(pending))
	assert.Equal(t, "waiting", pending[0].Name)
	assert.Equal(t, "alice", pending[0].User)
	assert.Equal(t, "ml-team", pending[0].Team)
	assert.Equal(t, "h100", pending[0].GPUModel)

	// requests are reported under the canonical prefix
	qty, ok := pending[0].ResourceRequests["example.com/gpu"]
	assert.Assert(t, ok)
	assert.Equal(t, int64(2), qty.Value())
	_, hasVendor := pending[0].ResourceRequests["nvidia.com/gpu"]
	assert.Assert(t, !hasVendor)
}

func TestListAdmittedKeys(t *testing.T) {
	now := time.Now()
	engine := newTestEngine(t,
		genWorkload("default", "waiting", ptr.To(int32(10)), now, false),
		genWorkload("default", "running", ptr.To(int32(10)), now, true),
	)

	admitted, err := engine.ListAdmittedKeys(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, 1, admitted.Len())
	assert.Assert(t, admitted.Has("default/running"))
}

func TestReconcileAdmittedMismatch(t *testing.T) {
	pending := []PendingWorkload{
		{Namespace: "default", Name: "a"},
		{Namespace: "default", Name: "b"},
		{Namespace: "default", Name: "c"},
	}

	result := ReconcileAdmittedMismatch(pending, sets.NewSetByKeys("default/b"))
	assert.Equal(t, 2, len(result))
	assert.Equal(t, "a", result[0].Name)
	assert.Equal(t, "c", result[1].Name)

	// empty admitted set leaves the slice untouched
	result = ReconcileAdmittedMismatch(result, sets.NewSet())
	assert.Equal(t, 2, len(result))
}
