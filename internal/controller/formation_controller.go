package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/capisen/backoffice/internal/dto"
)

func (ctrl *Controller) CreateFormationHandler(c *gin.Context) {
	var req dto.FormationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind FormationRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.formationSvc.Create(req)
	if err != nil {
		respondError(c, err, "Formation not found")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (ctrl *Controller) GetFormationHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.formationSvc.GetByID(id)
	if err != nil {
		respondError(c, err, "Formation not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) GetAllFormationsHandler(c *gin.Context) {
	var pole *string
	if poleStr := c.Query("pole"); poleStr != "" {
		pole = &poleStr
	}
	formations, err := ctrl.formationSvc.GetAll(pole)
	if err != nil {
		respondError(c, err, "Formations not found")
		return
	}
	c.JSON(http.StatusOK, formations)
}

func (ctrl *Controller) UpdateFormationHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.FormationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.formationSvc.Update(id, req)
	if err != nil {
		respondError(c, err, "Formation not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) DeleteFormationHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.formationSvc.Delete(id); err != nil {
		respondError(c, err, "Formation not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadStepDocumentHandler attaches a reference file to a step from a
// multipart form with a single "file" field.
func (ctrl *Controller) UploadStepDocumentHandler(c *gin.Context) {
	stepID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Missing file upload"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Unreadable file upload"})
		return
	}
	defer file.Close()

	resp, err := ctrl.formationSvc.AddStepDocument(stepID, fileHeader.Filename, file)
	if err != nil {
		respondError(c, err, "Step not found")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// --- Learner progress ---

type enrollRequest struct {
	MemberID uint `json:"member_id" binding:"required"`
}

func (ctrl *Controller) EnrollHandler(c *gin.Context) {
	formationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.progressSvc.Enroll(formationID, req.MemberID)
	if err != nil {
		respondError(c, err, "Formation not found")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (ctrl *Controller) GetProgressHandler(c *gin.Context) {
	formationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseMemberQuery(c)
	if !ok {
		return
	}
	resp, err := ctrl.progressSvc.GetProgress(formationID, memberID)
	if err != nil {
		respondError(c, err, "Formation not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) CompleteStepHandler(c *gin.Context) {
	stepID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CompleteStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.progressSvc.CompleteStep(stepID, req)
	if err != nil {
		respondError(c, err, "Step not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitStepFileHandler accepts one evidence file from a multipart form
// carrying "file" and "member_id" fields.
func (ctrl *Controller) SubmitStepFileHandler(c *gin.Context) {
	stepID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	memberID, err := parseFormUint(c, "member_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid member_id format"})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Missing file upload"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Unreadable file upload"})
		return
	}
	defer file.Close()

	resp, err := ctrl.progressSvc.SubmitFile(stepID, memberID, fileHeader.Filename, file)
	if err != nil {
		respondError(c, err, "Step not found")
		return
	}
	c.JSON(http.StatusCreated, resp)
}
