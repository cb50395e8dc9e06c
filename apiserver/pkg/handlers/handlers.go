/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"k8s.io/client-go/kubernetes"
	"sigs.k8s.io/controller-runtime/pkg/client"

	fleethandlers "github.com/AMD-AIG-AIMA/fleet-apiserver/apiserver/pkg/handlers/fleet-handlers"
	apiutils "github.com/AMD-AIG-AIMA/fleet-apiserver/apiserver/pkg/utils"
	commonconfig "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/config"
	commonerrors "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/errors"
)

// InitHttpHandlers initializes the HTTP handlers for the API server.
// It creates a new Gin engine, sets up logging and recovery middleware, and
// registers the fleet API routes.
func InitHttpHandlers(_ context.Context, clientSet kubernetes.Interface,
	ctrlClient client.Client, cfg *commonconfig.Config) (*gin.Engine, error) {
	engine := gin.New()
	engine.Use(apiutils.Logger(), gin.Recovery())
	engine.NoRoute(func(c *gin.Context) {
		apiutils.AbortWithApiError(c, commonerrors.NewNotFoundWithMessage(c.Request.RequestURI+" not found"))
	})

	fleetHandler := fleethandlers.NewHandler(clientSet, ctrlClient, cfg)
	fleethandlers.InitFleetRouters(engine, fleetHandler)
	return engine, nil
}
