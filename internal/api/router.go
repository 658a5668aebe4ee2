package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handler, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/states", h.ListStates)

		v1.POST("/applications", h.CreateApplication)
		v1.GET("/applications/:id", h.GetApplication)
		v1.GET("/applications/:id/next-states", h.NextStates)
		v1.POST("/applications/:id/documents", h.AttachDocument)
		v1.POST("/applications/:id/transitions", h.Transition)

		v1.GET("/export/applications", h.ExportRegistry)
	}

	return router
}
