package contracts

import "github.com/gin-gonic/gin"

type ApiController interface {
	SaveSheetAction(c *gin.Context)
	GetSheetAction(c *gin.Context)
	ListSheetsAction(c *gin.Context)
	EvaluateAction(c *gin.Context)
	AggregateAction(c *gin.Context)
	ValidateAction(c *gin.Context)
	SubscribeAction(c *gin.Context)
}
