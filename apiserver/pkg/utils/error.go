/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	commonerrors "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/errors"
)

type FleetApiError struct {
	HttpCode     int    `json:"-"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

func (err *FleetApiError) Error() string {
	return err.ErrorMessage
}

func AbortWithApiError(c *gin.Context, err error) {
	handleErrors(c, err)
	rsp := cvtToErrResponse(err)
	c.AbortWithStatusJSON(rsp.HttpCode, rsp)
}

func cvtToErrResponse(err error) FleetApiError {
	var result *FleetApiError
	if errors.As(err, &result) {
		return *result
	}
	// Non-fleet errors, including raw cluster StatusErrors, are normalized
	// so clients only ever see fleet error codes.
	var err2 *apierrors.StatusError
	if !errors.As(err, &err2) || !commonerrors.IsFleet(err2) {
		switch {
		case apierrors.IsNotFound(err):
			err2 = commonerrors.NewNotFoundWithMessage(err.Error())
		case apierrors.IsBadRequest(err), apierrors.IsInvalid(err):
			err2 = commonerrors.NewValidation(err.Error())
		case apierrors.IsAlreadyExists(err), apierrors.IsConflict(err):
			err2 = commonerrors.NewConflict(err.Error())
		case apierrors.IsServiceUnavailable(err), apierrors.IsServerTimeout(err), apierrors.IsTimeout(err):
			err2 = commonerrors.NewUpstreamUnavailable(err.Error())
		case apierrors.IsRequestEntityTooLargeError(err):
			err2 = commonerrors.NewRequestEntityTooLargeError(err.Error())
		default:
			err2 = commonerrors.NewInternalError(err.Error())
		}
	}
	return FleetApiError{
		HttpCode:     int(err2.Status().Code),
		ErrorCode:    string(err2.Status().Reason),
		ErrorMessage: err2.Error(),
	}
}

func handleErrors(c *gin.Context, err error) {
	var errs []error
	if aggregate, ok := err.(utilerrors.Aggregate); ok {
		errs = aggregate.Errors()
	} else {
		errs = []error{err}
	}
	for _, val := range errs {
		if val != nil {
			_ = c.Error(val)
		}
	}
}
