package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vergoReports/contracts"
)

const ApiVersion = "v1"

const evaluatePath = "evaluate"
const aggregatePath = "aggregate"
const validatePath = "validate"
const subscribePath = "subscribe"

func SetupRouter(controller contracts.ApiController) *gin.Engine {
	router := gin.New()

	apiRouterGroup := router.Group("/api/" + ApiVersion)
	apiRouterGroup.POST("/sheets/:sheet_id/"+evaluatePath, controller.EvaluateAction)
	apiRouterGroup.POST("/sheets/:sheet_id/"+aggregatePath, controller.AggregateAction)
	apiRouterGroup.POST("/sheets/:sheet_id/"+validatePath, controller.ValidateAction)
	apiRouterGroup.POST("/sheets/:sheet_id/"+subscribePath, controller.SubscribeAction)

	apiRouterGroup.PUT("/sheets/:sheet_id", controller.SaveSheetAction)
	apiRouterGroup.GET("/sheets/:sheet_id", controller.GetSheetAction)
	apiRouterGroup.GET("/sheets", controller.ListSheetsAction)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}
