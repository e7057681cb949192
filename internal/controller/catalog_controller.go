package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/capisen/backoffice/internal/dto"
)

// --- Contacts ---

func (ctrl *Controller) CreateContactHandler(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind ContactRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.contactSvc.Create(req)
	if err != nil {
		respondError(c, err, "Contact not found")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (ctrl *Controller) GetContactHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.contactSvc.GetByID(id)
	if err != nil {
		respondError(c, err, "Contact not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) GetAllContactsHandler(c *gin.Context) {
	contacts, err := ctrl.contactSvc.GetAll()
	if err != nil {
		respondError(c, err, "Contacts not found")
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (ctrl *Controller) UpdateContactHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.contactSvc.Update(id, req)
	if err != nil {
		respondError(c, err, "Contact not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) DeleteContactHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.contactSvc.Delete(id); err != nil {
		respondError(c, err, "Contact not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Templates ---

func (ctrl *Controller) CreateTemplateHandler(c *gin.Context) {
	var req dto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind TemplateRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.templateSvc.Create(req)
	if err != nil {
		respondError(c, err, "Template not found")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (ctrl *Controller) GetTemplateHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.templateSvc.GetByID(id)
	if err != nil {
		respondError(c, err, "Template not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) GetAllTemplatesHandler(c *gin.Context) {
	templates, err := ctrl.templateSvc.GetAll()
	if err != nil {
		respondError(c, err, "Templates not found")
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (ctrl *Controller) UpdateTemplateHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.templateSvc.Update(id, req)
	if err != nil {
		respondError(c, err, "Template not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) DeleteTemplateHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.templateSvc.Delete(id); err != nil {
		respondError(c, err, "Template not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Offres ---

func (ctrl *Controller) CreateOffreHandler(c *gin.Context) {
	var req dto.OffreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind OffreRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.offreSvc.Create(req)
	if err != nil {
		respondError(c, err, "Offre not found")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (ctrl *Controller) GetOffreHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.offreSvc.GetByID(id)
	if err != nil {
		respondError(c, err, "Offre not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) GetAllOffresHandler(c *gin.Context) {
	offres, err := ctrl.offreSvc.GetAll()
	if err != nil {
		respondError(c, err, "Offres not found")
		return
	}
	c.JSON(http.StatusOK, offres)
}

func (ctrl *Controller) UpdateOffreHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.OffreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.offreSvc.Update(id, req)
	if err != nil {
		respondError(c, err, "Offre not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) DeleteOffreHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.offreSvc.Delete(id); err != nil {
		respondError(c, err, "Offre not found")
		return
	}
	c.Status(http.StatusNoContent)
}
