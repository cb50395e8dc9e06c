/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package klog

import (
	"flag"
	"strconv"

	"k8s.io/klog/v2"
)

// Init configures klog to write to the given file while mirroring to stderr.
// An empty path keeps stderr-only logging, which is what containerized
// deployments use.
func Init(logfilePath string, logFileSize int) error {
	klog.InitFlags(nil)
	settings := map[string]string{
		"skip_log_headers": "true",
	}
	if logfilePath != "" {
		settings["log_file"] = logfilePath
		settings["alsologtostderr"] = "true"
		settings["logtostderr"] = "false"
	}
	if logFileSize > 0 {
		settings["log_file_max_size"] = strconv.Itoa(logFileSize)
	}
	for name, value := range settings {
		if err := flag.Set(name, value); err != nil {
			return err
		}
	}
	flag.Parse()
	return nil
}
