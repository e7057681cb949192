package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/capisen/backoffice/internal/dto"
)

func (ctrl *Controller) CreateMemberHandler(c *gin.Context) {
	var req dto.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind MemberRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.memberSvc.Create(req)
	if err != nil {
		respondError(c, err, "Member not found")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (ctrl *Controller) GetMemberHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.memberSvc.GetByID(id)
	if err != nil {
		respondError(c, err, "Member not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) GetAllMembersHandler(c *gin.Context) {
	members, err := ctrl.memberSvc.GetAll()
	if err != nil {
		respondError(c, err, "Members not found")
		return
	}
	c.JSON(http.StatusOK, members)
}

func (ctrl *Controller) UpdateMemberHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.memberSvc.Update(id, req)
	if err != nil {
		respondError(c, err, "Member not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *Controller) DeleteMemberHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.memberSvc.Delete(id); err != nil {
		respondError(c, err, "Member not found")
		return
	}
	c.Status(http.StatusNoContent)
}
