package main

import (
	"github.com/gin-gonic/gin"

	"contractflow.backend/internal/interfaces/http/handlers"
	"contractflow.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	blueprintHandler      *handlers.BlueprintHandler
	contractHandler       *handlers.ContractHandler
	actorMiddleware       gin.HandlerFunc
	idempotencyMiddleware gin.HandlerFunc
}

func newRouter(d routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, d)
	registerNotFound(r)
	return r
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	v1.Use(d.actorMiddleware)
	{
		blueprints := v1.Group("/blueprints")
		{
			blueprints.POST("", d.blueprintHandler.CreateBlueprint)
			blueprints.GET("", d.blueprintHandler.ListBlueprints)
			blueprints.GET("/:id", d.blueprintHandler.GetBlueprint)
			blueprints.PUT("/:id", d.blueprintHandler.UpdateBlueprint)
			blueprints.DELETE("/:id", d.blueprintHandler.DeleteBlueprint)
		}

		contracts := v1.Group("/contracts")
		{
			contracts.POST("", d.idempotencyMiddleware, d.contractHandler.CreateContract)
			contracts.GET("", d.contractHandler.ListContracts)
			contracts.GET("/:id", d.contractHandler.GetContract)
			contracts.PATCH("/:id/status", d.contractHandler.UpdateStatus)
			contracts.GET("/:id/transitions", d.contractHandler.ListTransitions)
		}
	}
}
