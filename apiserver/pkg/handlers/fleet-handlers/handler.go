/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package fleet_handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/client-go/kubernetes"
	"sigs.k8s.io/controller-runtime/pkg/client"

	apiutils "github.com/AMD-AIG-AIMA/fleet-apiserver/apiserver/pkg/utils"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/cluster"
	commonconfig "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/config"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/gpu"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/nodes"
	commonworkload "github.com/AMD-AIG-AIMA/fleet-apiserver/common/pkg/workload"
	"github.com/AMD-AIG-AIMA/fleet-apiserver/utils/pkg/cache"
)

var (
	jsonContentType = "application/json; charset=utf-8"
)

type Handler struct {
	reader  *nodes.Reader
	engine  *commonworkload.Engine
	manager *commonworkload.Manager
	facade  *cluster.Facade
	cfg     *commonconfig.Config
}

// NewHandler wires the read and mutation paths around one shared view cache
// so every successful mutation invalidates what readers may have cached.
func NewHandler(clientSet kubernetes.Interface, ctrlClient client.Client, cfg *commonconfig.Config) *Handler {
	translator := gpu.NewTranslator(cfg)
	parser := gpu.NewNameParser(cfg)
	views := cache.NewStore(cfg.CacheTTL)

	reader := nodes.NewReader(clientSet, translator, parser, cfg)
	engine := commonworkload.NewEngine(ctrlClient, translator, cfg)
	return &Handler{
		reader:  reader,
		engine:  engine,
		manager: commonworkload.NewManager(ctrlClient, translator, cfg, views),
		facade:  cluster.NewFacade(reader, engine, translator, cfg, views),
		cfg:     cfg,
	}
}

type handleFunc func(*gin.Context) (interface{}, error)

func handle(c *gin.Context, fn handleFunc) {
	rsp, err := fn(c)
	if err != nil {
		apiutils.AbortWithApiError(c, err)
		return
	}
	code := http.StatusOK
	// If a status was previously set, use that status in the response.
	if c.Writer.Status() > 0 {
		code = c.Writer.Status()
	}
	switch rspType := rsp.(type) {
	case []byte:
		c.Data(code, jsonContentType, rspType)
	case string:
		c.Data(code, jsonContentType, []byte(rspType))
	default:
		c.JSON(code, rspType)
	}
}

func getBodyFromRequest(req *http.Request, bodyStruct interface{}) ([]byte, error) {
	return apiutils.ParseRequestBody(req, bodyStruct)
}
