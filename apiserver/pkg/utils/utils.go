/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package utils

import (
	"fmt"
	"io"
	"net/http"

	commonerrors "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/errors"
	jsonutils "github.com/AMD-AIG-AIMA/fleet-apiserver/utils/pkg/json"
)

const (
	DefaultMaxRequestBodyBytes = int64(2 * 1024 * 1024)
)

// ReadBody reads the HTTP request body with a size limit to prevent excessive
// memory consumption. The request body is closed after reading.
func ReadBody(req *http.Request) ([]byte, error) {
	defer req.Body.Close()
	var lr *io.LimitedReader
	data, err := func() ([]byte, error) {
		lr = &io.LimitedReader{
			R: req.Body,
			N: DefaultMaxRequestBodyBytes + 1,
		}
		return io.ReadAll(lr)
	}()
	if err != nil {
		return nil, commonerrors.NewInternalError(err.Error())
	}
	if lr != nil && lr.N <= 0 {
		return nil, commonerrors.NewRequestEntityTooLargeError(
			fmt.Sprintf("the max length is %d bytes", DefaultMaxRequestBodyBytes))
	}
	return data, nil
}

// ParseRequestBody reads the request body and unmarshals it into the provided
// struct. An empty body returns nil for both body and error.
func ParseRequestBody(req *http.Request, bodyStruct interface{}) ([]byte, error) {
	body, err := ReadBody(req)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}
	if err = jsonutils.Unmarshal(body, bodyStruct); err != nil {
		return body, commonerrors.NewValidation(err.Error())
	}
	return body, nil
}
