/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package k8sclient

import (
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"k8s.io/client-go/kubernetes"
	clientscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/config"

	fleetv1 "github.com/AMD-AIG-AIMA/fleet-apiserver/apis/pkg/apis/fleet/v1"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/common"
)

// Scheme carries the built-in types plus the fleet API group.
var Scheme = runtime.NewScheme()

func init() {
	utilruntime.Must(clientscheme.AddToScheme(Scheme))
	utilruntime.Must(fleetv1.AddToScheme(Scheme))
}

// GetRestConfig retrieves the REST configuration. An explicit kubeconfig
// path takes precedence; otherwise KUBECONFIG and in-cluster credentials are
// honored in the standard resolution order.
func GetRestConfig(kubeConfig string) (*rest.Config, error) {
	var restCfg *rest.Config
	var err error
	if kubeConfig != "" {
		restCfg, err = clientcmd.BuildConfigFromFlags("", kubeConfig)
	} else {
		restCfg, err = config.GetConfig()
	}
	if err != nil {
		return nil, err
	}
	restCfg.QPS = common.DefaultQPS
	restCfg.Burst = common.DefaultBurst
	return restCfg, nil
}

// NewClientSet creates a typed clientset for core resource reads.
func NewClientSet(kubeConfig string) (kubernetes.Interface, *rest.Config, error) {
	restConfig, err := GetRestConfig(kubeConfig)
	if err != nil {
		return nil, nil, err
	}
	cli, err := NewClientSetWithRestConfig(restConfig)
	return cli, restConfig, err
}

// NewClientSetWithRestConfig creates a clientset from the given REST config.
func NewClientSetWithRestConfig(cfg *rest.Config) (kubernetes.Interface, error) {
	return kubernetes.NewForConfig(cfg)
}

// NewCtrlClient creates an uncached controller-runtime client for the fleet
// API group. Reads deliberately go straight to the API server so every
// inventory read reconstructs fresh state.
func NewCtrlClient(cfg *rest.Config) (client.Client, error) {
	return client.New(cfg, client.Options{Scheme: Scheme})
}
