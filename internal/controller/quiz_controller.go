package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/capisen/backoffice/internal/dto"
)

// SaveQuizHandler replaces the whole quiz definition of a formation.
// Refused once any attempt has been recorded.
func (ctrl *Controller) SaveQuizHandler(c *gin.Context) {
	formationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.QuizDefinitionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind QuizDefinitionDTO")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.quizSvc.SaveQuiz(formationID, req)
	if err != nil {
		respondError(c, err, "Formation not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) GetQuizHandler(c *gin.Context) {
	formationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseMemberQuery(c)
	if !ok {
		return
	}
	resp, err := ctrl.quizSvc.GetQuiz(formationID, memberID)
	if err != nil {
		respondError(c, err, "Quiz not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) SubmitQuizAttemptHandler(c *gin.Context) {
	formationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.quizSvc.SubmitAttempt(formationID, req)
	if err != nil {
		respondError(c, err, "Quiz not found")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (ctrl *Controller) GetQuizAttemptHandler(c *gin.Context) {
	formationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseMemberQuery(c)
	if !ok {
		return
	}
	resp, err := ctrl.quizSvc.GetAttempt(formationID, memberID)
	if err != nil {
		respondError(c, err, "Attempt not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}
