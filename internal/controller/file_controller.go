package controller

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/capisen/backoffice/internal/dto"
)

// DownloadFileHandler redeems a signed download token. Expired or
// tampered tokens fail with 403; the underlying object never leaks its
// storage path to the client.
func (ctrl *Controller) DownloadFileHandler(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Missing token"})
		return
	}
	key, fileName, err := ctrl.store.Verify(token)
	if err != nil {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "Invalid or expired download link"})
		return
	}
	file, err := ctrl.store.Open(key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to open stored object")
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "File not found"})
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Download interrupted")
	}
}

func parseFormUint(c *gin.Context, field string) (uint, error) {
	val, err := strconv.ParseUint(c.PostForm(field), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(val), nil
}
