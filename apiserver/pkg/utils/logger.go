/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package utils

import (
	"time"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"
)

// Logger returns a gin middleware that logs one line per request, plus any
// errors the handlers attached to the context.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		for _, ginErr := range c.Errors {
			klog.ErrorS(ginErr.Err, "request failed",
				"method", c.Request.Method, "path", c.Request.URL.Path)
		}
		klog.V(2).InfoS("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"durationMs", time.Since(start).Milliseconds(),
			"clientIP", c.ClientIP())
	}
}
