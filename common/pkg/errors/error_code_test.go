/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package errors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"gotest.tools/assert"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

func TestErrorClassification(t *testing.T) {
	assert.Assert(t, IsValidation(NewValidation("bad field")))
	assert.Assert(t, IsConflict(NewConflict("duplicate")))
	assert.Assert(t, IsInternal(NewInternalError("boom")))
	assert.Assert(t, IsUpstreamUnavailable(NewUpstreamUnavailable("api down")))

	assert.Assert(t, !IsValidation(NewConflict("duplicate")))
	assert.Assert(t, !IsFleet(errors.New("plain")))
	assert.Assert(t, !IsValidation(nil))
}

func TestIsConflictRecognizesK8sConflicts(t *testing.T) {
	k8sConflict := apierrors.NewConflict(
		schema.GroupResource{Resource: "workloads"}, "job-1", nil)
	assert.Assert(t, IsConflict(k8sConflict))
}

func TestNotFoundCarriesKindCode(t *testing.T) {
	workloadErr := NewNotFound("Workload", "default/job-1")
	assert.Assert(t, IsNotFound(workloadErr))
	assert.Equal(t, WorkloadNotFound, GetErrorCode(workloadErr))

	nodeErr := NewNotFound("Node", "violet-h100-001")
	assert.Equal(t, NodeNotFound, GetErrorCode(nodeErr))

	otherErr := NewNotFound("Queue", "default")
	assert.Equal(t, NotFound, GetErrorCode(otherErr))
}

func TestHttpCodes(t *testing.T) {
	assert.Equal(t, int32(http.StatusBadRequest), NewValidation("x").Status().Code)
	assert.Equal(t, int32(http.StatusConflict), NewConflict("x").Status().Code)
	assert.Equal(t, int32(http.StatusNotFound), NewNotFound("Workload", "x").Status().Code)
	assert.Equal(t, int32(http.StatusServiceUnavailable), NewUpstreamUnavailable("x").Status().Code)
	assert.Equal(t, int32(http.StatusInternalServerError), NewInternalError("x").Status().Code)
}

func TestIgnoreFound(t *testing.T) {
	assert.NilError(t, IgnoreFound(nil))
	assert.NilError(t, IgnoreFound(NewNotFound("Workload", "gone")))
	assert.NilError(t, IgnoreFound(apierrors.NewNotFound(
		schema.GroupResource{Resource: "workloads"}, "gone")))
	assert.Assert(t, IgnoreFound(NewConflict("kept")) != nil)
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, Validation, GetErrorCode(NewValidation("x")))
	assert.Equal(t, "", GetErrorCode(errors.New("plain")))
	assert.Equal(t, "", GetErrorCode(nil))
}
