package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/capisen/backoffice/internal/dto"
)

// GenerateMailHandler serves both conversation phases from one route:
// a body carrying messages is a refinement turn, anything else starts a
// new transcript from the form fields.
func (ctrl *Controller) GenerateMailHandler(c *gin.Context) {
	var req dto.GenerateMailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind GenerateMailRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var resp *dto.GenerateMailResponse
	var err error
	if len(req.Messages) > 0 {
		resp, err = ctrl.mailSvc.Refine(c.Request.Context(), req.Messages, req.Refinement)
	} else {
		resp, err = ctrl.mailSvc.StartGeneration(c.Request.Context(), req)
	}
	if err != nil {
		respondError(c, err, "Generation not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) SaveGenerationHandler(c *gin.Context) {
	var req dto.SaveGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.mailSvc.Persist(req)
	if err != nil {
		respondError(c, err, "Generation not found")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (ctrl *Controller) GetGenerationsHandler(c *gin.Context) {
	var memberID *uint
	if memberIDStr := c.Query("member_id"); memberIDStr != "" {
		val, err := strconv.ParseUint(memberIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid member_id format"})
			return
		}
		parsed := uint(val)
		memberID = &parsed
	}
	generations, err := ctrl.mailSvc.History(memberID)
	if err != nil {
		respondError(c, err, "Generation history not found")
		return
	}
	c.JSON(http.StatusOK, generations)
}

func (ctrl *Controller) DeleteGenerationHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.mailSvc.DeleteGeneration(id); err != nil {
		respondError(c, err, "Generation not found")
		return
	}
	c.Status(http.StatusNoContent)
}
