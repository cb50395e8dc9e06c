/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package errors

import (
	"fmt"
	"net/http"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const FleetPrefix = "Fleet."

/*
   5-digit Error Code Convention: [xx][yyy]
   [xx] Business ID (00-99), used to distinguish errors from different business interfaces.
   00: General errors
   01: Workload-related errors
   02: Node-related errors
   [yyy] Error code range (000-999)
*/

// public: 00xxx
const (
	InternalError       = FleetPrefix + "00001"
	Validation          = FleetPrefix + "00002"
	Conflict            = FleetPrefix + "00003"
	NotFound            = FleetPrefix + "00004"
	UpstreamUnavailable = FleetPrefix + "00005"
	RequestEntityTooLarge = FleetPrefix + "00006"
)

// workload: 01xxx
const (
	WorkloadNotFound = FleetPrefix + "01001"
)

// node: 02xxx
const (
	NodeNotFound = FleetPrefix + "02001"
)

// IsFleet returns true if the specified error carries a fleet error reason.
func IsFleet(err error) bool {
	if err == nil {
		return false
	}
	return strings.HasPrefix(string(apierrors.ReasonForError(err)), FleetPrefix)
}

func IsValidation(err error) bool {
	return apierrors.ReasonForError(err) == Validation
}

func IsConflict(err error) bool {
	return apierrors.ReasonForError(err) == Conflict || apierrors.IsConflict(err)
}

func IsInternal(err error) bool {
	return apierrors.ReasonForError(err) == InternalError
}

func IsNotFound(err error) bool {
	reason := apierrors.ReasonForError(err)
	if reason == NotFound || reason == WorkloadNotFound || reason == NodeNotFound {
		return true
	}
	return false
}

func IsUpstreamUnavailable(err error) bool {
	return apierrors.ReasonForError(err) == UpstreamUnavailable
}

// IgnoreFound returns nil when the error only signals absence.
func IgnoreFound(err error) error {
	if err == nil || IsNotFound(err) || apierrors.IsNotFound(err) {
		return nil
	}
	return err
}

// GetErrorCode returns the fleet error code carried by err, or empty.
func GetErrorCode(err error) string {
	if err == nil || !IsFleet(err) {
		return ""
	}
	return string(apierrors.ReasonForError(err))
}

// NewValidation reports malformed input to a mutation.
func NewValidation(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusBadRequest,
		Reason:  Validation,
		Message: fmt.Sprintf("Invalid request. %s", message),
	}}
}

// NewConflict reports a concurrent-write collision or duplicate submission.
func NewConflict(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusConflict,
		Reason:  Conflict,
		Message: message,
	}}
}

func NewInternalError(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusInternalServerError,
		Reason:  InternalError,
		Message: fmt.Sprintf("Internal error. %s", message),
	}}
}

func NotFoundErrorCode(kind string) metav1.StatusReason {
	switch kind {
	case "Workload":
		return WorkloadNotFound
	case "Node":
		return NodeNotFound
	default:
		return NotFound
	}
}

// NewNotFound reports an absent entity, keyed by kind and name so the
// transport layer can render which entity was missing.
func NewNotFound(kind, name string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status: metav1.StatusFailure,
		Code:   http.StatusNotFound,
		Reason: NotFoundErrorCode(kind),
		Details: &metav1.StatusDetails{
			Kind: kind,
			Name: name,
		},
		Message: fmt.Sprintf("%s %s not found.", kind, name),
	}}
}

func NewNotFoundWithMessage(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusNotFound,
		Reason:  NotFound,
		Message: message,
	}}
}

// NewUpstreamUnavailable reports an unreachable cluster API or exhausted
// read retries.
func NewUpstreamUnavailable(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusServiceUnavailable,
		Reason:  UpstreamUnavailable,
		Message: fmt.Sprintf("Upstream unavailable. %s", message),
	}}
}

func NewRequestEntityTooLargeError(message string) *apierrors.StatusError {
	return &apierrors.StatusError{ErrStatus: metav1.Status{
		Status:  metav1.StatusFailure,
		Code:    http.StatusRequestEntityTooLarge,
		Reason:  RequestEntityTooLarge,
		Message: fmt.Sprintf("Request entity is too large: %s", message),
	}}
}
