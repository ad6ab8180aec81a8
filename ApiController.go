package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vergoReports/contracts"
	"vergoReports/formula"
)

type ApiController struct {
	SheetRepository   contracts.SheetRepository
	WebhookDispatcher contracts.WebhookDispatcher
}

type SheetEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
}

type SaveSheetRequest struct {
	Columns []contracts.Column `json:"columns" binding:"required"`
	Rows    []contracts.Row    `json:"rows"`
}

type EvaluateRequest struct {
	Expression  string `json:"expression" binding:"required"`
	RowIndex    int    `json:"row_index"`
	IdentityKey string `json:"identity_key"`
}

type AggregateRequest struct {
	Expression string `json:"expression" binding:"required"`
	ResultType string `json:"result_type"`
	ColumnKey  string `json:"column_key"`
}

type ValidateRequest struct {
	Expression string `json:"expression" binding:"required"`
}

type SubscribeRequest struct {
	WebhookUrl string `json:"webhook_url" binding:"required"`
}

type EvaluateResponse struct {
	Value     any    `json:"value"`
	Formatted string `json:"formatted"`
}

func NewApiController(sheetRepository contracts.SheetRepository, webhookDispatcher contracts.WebhookDispatcher) *ApiController {
	return &ApiController{
		SheetRepository:   sheetRepository,
		WebhookDispatcher: webhookDispatcher,
	}
}

func (api *ApiController) SaveSheetAction(c *gin.Context) {
	params := SheetEndpointParams{}
	request := SaveSheetRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	var cells []*contracts.Cell
	if err == nil {
		cells, err = api.SheetRepository.SaveSheet(params.SheetId, &contracts.SheetData{
			Columns: request.Columns,
			Rows:    request.Rows,
		})
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusCreated, gin.H{"cells": cells})
	}
}

func (api *ApiController) GetSheetAction(c *gin.Context) {
	params := SheetEndpointParams{}
	var response *contracts.SheetData

	err := c.ShouldBindUri(&params)
	if err == nil {
		response, err = api.SheetRepository.GetSheet(params.SheetId)
	}

	if errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) ListSheetsAction(c *gin.Context) {
	sheetIds, err := api.SheetRepository.ListSheets()

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, gin.H{"sheets": sheetIds})
	}
}

// EvaluateAction evaluates a row formula at a row cursor. Evaluation
// failures come back as unprocessable, not as a server fault: a bad
// formula is user input, not a bug.
func (api *ApiController) EvaluateAction(c *gin.Context) {
	params := SheetEndpointParams{}
	request := EvaluateRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	data, ctx, err := api.buildContext(params.SheetId, request.IdentityKey)
	if err != nil {
		api.sheetError(c, err)
		return
	}

	if request.RowIndex < 0 || request.RowIndex >= len(data.Rows) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "row index out of range"})
		return
	}

	result, err := formula.EvaluateExpression(request.Expression, ctx, formula.RowCursor{
		Index: request.RowIndex,
		Row:   data.Rows[request.RowIndex],
	})

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, EvaluateResponse{Value: result.Value, Formatted: result.Formatted()})
	}
}

// AggregateAction evaluates a totals-row formula at a column cursor.
func (api *ApiController) AggregateAction(c *gin.Context) {
	params := SheetEndpointParams{}
	request := AggregateRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	_, ctx, err := api.buildContext(params.SheetId, "")
	if err != nil {
		api.sheetError(c, err)
		return
	}

	result, err := formula.EvaluateRowFormula(formula.Formula{
		Expression: request.Expression,
		ResultType: request.ResultType,
	}, ctx, request.ColumnKey)

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, EvaluateResponse{Value: result.Value, Formatted: result.Formatted()})
	}
}

// ValidateAction is the strict pre-save check: parse errors and
// unresolved references both make the formula unsavable.
func (api *ApiController) ValidateAction(c *gin.Context) {
	params := SheetEndpointParams{}
	request := ValidateRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	_, ctx, err := api.buildContext(params.SheetId, "")
	if err != nil {
		api.sheetError(c, err)
		return
	}

	if err := formula.ValidateExpression(request.Expression, ctx); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"valid": false, "error": err.Error()})
	} else {
		c.JSON(http.StatusOK, gin.H{"valid": true})
	}
}

func (api *ApiController) SubscribeAction(c *gin.Context) {
	params := SheetEndpointParams{}
	request := SubscribeRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	api.WebhookDispatcher.SetWebhookUrl(params.SheetId, request.WebhookUrl)
	c.JSON(http.StatusOK, gin.H{"webhook_url": request.WebhookUrl})
}

func (api *ApiController) buildContext(sheetId string, identityKey string) (*contracts.SheetData, *formula.Context, error) {
	data, err := api.SheetRepository.GetSheet(sheetId)
	if err != nil {
		return nil, nil, err
	}

	sheets := []contracts.Sheet{{Id: data.Id, Label: data.Id, Rows: data.Rows}}
	return data, formula.NewContext(data.Id, sheets, data.Columns, identityKey), nil
}

func (api *ApiController) sheetError(c *gin.Context, err error) {
	if errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
